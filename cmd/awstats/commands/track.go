package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/chrono"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/scrapers/armata"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/serviceutil"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/telemetry"
	"github.com/lookandhate/ArmoredWarfareAPI/services/statsnapshots"

	"github.com/spf13/cobra"
)

var (
	trackMode     string
	trackInterval time.Duration
	trackSchedule string
)

func init() {
	trackCmd.Flags().StringVar(&trackMode, "mode", "pvp", "Game mode: pvp, pve, low, glops, ranked (rb).")
	trackCmd.Flags().DurationVar(&trackInterval, "interval", 0, "If set, keep taking snapshots at this interval until interrupted.")
	trackCmd.Flags().StringVar(&trackSchedule, "schedule", "", "If set, take snapshots on this cron schedule (server time, e.g. \"0 6 * * *\") until interrupted.")
	trackCmd.MarkFlagsMutuallyExclusive("interval", "schedule")
	rootCmd.AddCommand(trackCmd)
}

type statsFetcher interface {
	PlayerStatistics(ctx context.Context, query armata.PlayerQuery) (armata.PlayerStatistics, error)
}

// takeSnapshots stores the statistics of every player. Failures for a single
// player are logged and skipped, an expired session stops the round and is
// returned since every other request would fail the same way.
func takeSnapshots(ctx context.Context, client statsFetcher, service statsnapshots.Service, mode armata.GameMode, nicknames []string) error {
	for _, nickname := range nicknames {
		stats, err := client.PlayerStatistics(ctx, armata.PlayerQuery{
			Nickname: nickname,
			Mode:     mode,
		})
		if errors.Is(err, armata.ErrNotAuthenticated) {
			return fmt.Errorf("session cookies are invalid or expired: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.Warn("failed to fetch player statistics", "nickname", nickname, "err", err)
			continue
		}

		err = service.Push(ctx, statsnapshots.Snapshot{Mode: mode, Stats: stats})
		if err != nil {
			slog.Error("failed to store snapshot", "nickname", nickname, "err", err)
			continue
		}
		slog.Info(
			"snapshot taken",
			"nickname", stats.Nickname,
			"mode", mode.String(),
			"battles", stats.Battles,
		)
	}
	return nil
}

var trackCmd = &cobra.Command{
	Use:   "track <nickname>... [--interval <duration> | --schedule <cron>]",
	Short: "Stores a snapshot of the statistics of players, at most one per player, mode and day is kept.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode, err := armata.ParseGameMode(trackMode)
		if err != nil {
			serviceutil.Fatal("invalid --mode", err)
		}
		if trackSchedule != "" {
			err = chrono.ValidateCronSpec(trackSchedule)
			if err != nil {
				serviceutil.Fatal("invalid --schedule", err)
			}
		}

		err = runTrack(cmd.Context(), mode, args)
		if err != nil {
			serviceutil.Fatal("failed to track players", err)
		}
	},
}

// runTrack owns every resource of the command so they are released before
// the caller decides to exit.
func runTrack(ctx context.Context, mode armata.GameMode, nicknames []string) error {
	cfg, err := readConfig()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	client, err := createClient(cfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	service, database, err := openSnapshots(cfg)
	if err != nil {
		return fmt.Errorf("open snapshots: %w", err)
	}
	defer database.Close()

	err = takeSnapshots(ctx, client, service, mode, nicknames)
	if err == nil {
		switch {
		case trackSchedule != "":
			telemetry.InstrumentPerfStats(ctx, time.Minute)
			err = trackOnSchedule(ctx, client, service, mode, nicknames)
		case trackInterval > 0:
			telemetry.InstrumentPerfStats(ctx, trackInterval)
			err = trackOnInterval(ctx, client, service, mode, nicknames)
		}
	}
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		slog.Info("stopped tracking")
		return nil
	}
	return err
}

func trackOnInterval(ctx context.Context, client statsFetcher, service statsnapshots.Service, mode armata.GameMode, nicknames []string) error {
	ticker := time.NewTicker(trackInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := takeSnapshots(ctx, client, service, mode, nicknames)
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func trackOnSchedule(ctx context.Context, client statsFetcher, service statsnapshots.Service, mode armata.GameMode, nicknames []string) error {
	clock, err := chrono.NewStandardImpl()
	if err != nil {
		return fmt.Errorf("load server timezone: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var once sync.Once
	var roundErr error

	cronner := chrono.NewStandardCron(clock.Location(), tel)
	defer func() { <-cronner.Stop().Done() }()

	err = cronner.Cron(trackSchedule, func() {
		err := takeSnapshots(ctx, client, service, mode, nicknames)
		if err != nil && ctx.Err() == nil {
			once.Do(func() {
				roundErr = err
				cancel()
			})
		}
	})
	if err != nil {
		return fmt.Errorf("schedule snapshots: %w", err)
	}

	<-ctx.Done()
	<-cronner.Stop().Done()
	if roundErr != nil {
		return roundErr
	}
	return ctx.Err()
}
