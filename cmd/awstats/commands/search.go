package commands

import (
	"github.com/lookandhate/ArmoredWarfareAPI/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Searches battalions by name, the site requires at least 4 characters.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		client, err := createClient(cfg)
		if err != nil {
			serviceutil.Fatal("failed to create client", err)
		}
		defer client.Close()

		results, err := client.SearchBattalions(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to search battalions", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Name"})
		for _, r := range results {
			t.AppendRow(table.Row{r.ID, r.FullName})
		}
		t.Render()
	},
}
