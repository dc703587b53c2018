package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lookandhate/ArmoredWarfareAPI/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	dumpDir    string
)

var otelTelemetry telemetry.Telemetry

var rootCmd = &cobra.Command{
	Use:   "awstats",
	Short: "awstats is a CLI for fetching and tracking Armored Warfare player and battalion statistics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)

		setup, err := telemetry.SetupFromEnv(cmd.Context(), "awstats")
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("telemetry.json5 not found, spans and metrics will not be exported")
			return
		}
		if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
			return
		}
		otelTelemetry = setup
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := otelTelemetry.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "awstats.json5", "The config file to read.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logs.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump-dir", "", "If set, every http request and response is written to this directory.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
