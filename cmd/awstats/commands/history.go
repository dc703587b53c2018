package commands

import (
	"fmt"
	"time"

	"github.com/lookandhate/ArmoredWarfareAPI/lib/scrapers/armata"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyMode string

func init() {
	historyCmd.Flags().StringVar(&historyMode, "mode", "pvp", "Game mode: pvp, pve, low, glops, ranked (rb).")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [nickname]",
	Short: "Prints the stored snapshots of a player, or every tracked player if no nickname is given.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		service, database, err := openSnapshots(cfg)
		if err != nil {
			serviceutil.Fatal("failed to open snapshots", err)
		}
		defer database.Close()

		t := newTable()

		if len(args) == 0 {
			players, err := service.TrackedPlayers(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to list tracked players", err)
			}
			t.AppendHeader(table.Row{"Nickname", "Mode", "Snapshots", "Last snapshot"})
			for _, p := range players {
				t.AppendRow(table.Row{p.Nickname, p.Mode.String(), p.Snapshots, p.LastTime.Format(time.DateTime)})
			}
			t.Render()
			return
		}

		mode, err := armata.ParseGameMode(historyMode)
		if err != nil {
			serviceutil.Fatal("invalid --mode", err)
		}
		snapshots, err := service.Pull(cmd.Context(), args[0], mode)
		if err != nil {
			serviceutil.Fatal("failed to pull snapshots", err)
		}

		t.SetTitle(fmt.Sprintf("%s (%s)", args[0], mode))
		t.AppendHeader(table.Row{"Date", "Battles", "Winrate", "Damage", "Spotting", "Kills", "Level", "Battalion"})
		for _, s := range snapshots {
			t.AppendRow(table.Row{
				s.Time.Format(time.DateOnly),
				s.Stats.Battles,
				fmt.Sprintf("%.2f%%", s.Stats.Winrate),
				fmt.Sprintf("%.2f", s.Stats.Damage),
				fmt.Sprintf("%.2f", s.Stats.AverageSpotting),
				fmt.Sprintf("%.2f", s.Stats.AverageKills),
				formatLevel(s.Stats.AverageLevel),
				formatOptional(s.Stats.BattalionFull),
			})
		}
		t.Render()
	},
}

func formatLevel(level *float64) string {
	if level == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *level)
}
