package commands

import (
	"fmt"
	"strconv"

	"github.com/lookandhate/ArmoredWarfareAPI/lib/scrapers/armata"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/serviceutil"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var battalionFind string

func init() {
	battalionCmd.Flags().StringVar(&battalionFind, "find", "", "Only show the members whose nickname is closest to this one.")
	rootCmd.AddCommand(battalionCmd)
}

var battalionCmd = &cobra.Command{
	Use:   "battalion <id> [--find <nickname>]",
	Short: "Prints the roster of a battalion.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		battalionID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			serviceutil.Fatal("battalion id must be a number", err)
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

		members, err := client.BattalionMembers(cmd.Context(), battalionID)
		if err != nil {
			serviceutil.Fatal("failed to fetch battalion members", err)
		}

		t := newTable()
		t.SetTitle(fmt.Sprintf("Battalion %d", battalionID))

		if battalionFind == "" {
			t.AppendHeader(table.Row{"ID", "Nickname", "Role"})
			for _, m := range members {
				t.AppendRow(table.Row{m.ID, m.Nickname, formatOptional(m.Role)})
			}
			t.AppendFooter(table.Row{"", "Total", len(members)})
			t.Render()
			return
		}

		byNickname := map[string]armata.BattalionMemberEntry{}
		nicknames := make([]string, len(members))
		for i, m := range members {
			nicknames[i] = m.Nickname
			byNickname[m.Nickname] = m
		}

		t.AppendHeader(table.Row{"ID", "Nickname", "Role", "Similarity"})
		for _, match := range textutil.ClosestNames(battalionFind, nicknames, 5) {
			m := byNickname[match.Name]
			t.AppendRow(table.Row{m.ID, m.Nickname, formatOptional(m.Role), fmt.Sprintf("%.2f", match.Similarity)})
		}
		t.Render()
	},
}
