package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lookandhate/ArmoredWarfareAPI/lib/scrapers/armata"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	playerMode  string
	playerID    int64
	playerTank  int64
	playerClass string
	playerDay   int
	playerJson  bool
)

func init() {
	playerCmd.Flags().StringVar(&playerMode, "mode", "pvp", "Game mode: pvp, pve, low, glops, ranked (rb).")
	playerCmd.Flags().Int64Var(&playerID, "id", 0, "Look up the player by id instead of nickname.")
	playerCmd.Flags().Int64Var(&playerTank, "tank", 0, "Only show statistics of the vehicle with this id.")
	playerCmd.Flags().StringVar(&playerClass, "class", "all", "Vehicle class: all, mbt, lt, td, afv.")
	playerCmd.Flags().IntVar(&playerDay, "day", 0, "Filter statistics by date or battle count.")
	playerCmd.Flags().BoolVar(&playerJson, "json", false, "Print the statistics as json.")
	rootCmd.AddCommand(playerCmd)
}

var playerCmd = &cobra.Command{
	Use:   "player [nickname]",
	Short: "Prints the statistics of a player.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := armata.PlayerQuery{
			PlayerID: playerID,
			TankID:   playerTank,
			Day:      playerDay,
		}
		if len(args) > 0 {
			query.Nickname = args[0]
		}

		var err error
		query.Mode, err = armata.ParseGameMode(playerMode)
		if err != nil {
			serviceutil.Fatal("invalid --mode", err)
		}
		query.VehicleClass, err = armata.ParseVehicleClass(playerClass)
		if err != nil {
			serviceutil.Fatal("invalid --class", err)
		}

		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		client, err := createClient(cfg)
		if err != nil {
			serviceutil.Fatal("failed to create client", err)
		}
		defer client.Close()

		stats, err := client.PlayerStatistics(cmd.Context(), query)
		if err != nil {
			serviceutil.Fatal("failed to fetch player statistics", err)
		}

		if playerJson {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			err = encoder.Encode(stats)
			if err != nil {
				serviceutil.Fatal("failed to encode statistics", err)
			}
			return
		}

		t := newTable()
		t.SetTitle(fmt.Sprintf("%s (%s)", stats.Nickname, query.Mode))
		t.AppendHeader(table.Row{"Field", "Value"})
		for _, field := range stats.Fields() {
			value, _ := stats.Get(field)
			if value == nil {
				value = "-"
			}
			t.AppendRow(table.Row{strings.ReplaceAll(field, "_", " "), value})
		}
		t.Render()
	},
}
