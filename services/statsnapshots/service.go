package statsnapshots

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/assert"
	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/chrono"
	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/telemetry"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/scrapers/armata"
	"github.com/lookandhate/ArmoredWarfareAPI/services/statsnapshots/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/statsnapshots")

const (
	report_service_push   = "service.push"
	report_service_pull   = "service.pull"
	report_service_player = "service.tracked-players"
)

// Snapshot is the statistics of a player in a game mode at some point in time.
type Snapshot struct {
	Mode  armata.GameMode
	Time  time.Time
	Stats armata.PlayerStatistics
}

// TrackedPlayer summarizes the snapshots stored for a nickname and mode.
type TrackedPlayer struct {
	Nickname  string
	Mode      armata.GameMode
	Snapshots int64
	LastTime  time.Time
}

// Service keeps at most one snapshot per player, mode and game server day.
type Service struct {
	db    *sql.DB
	qry   *db.Queries
	clock chrono.API
	tel   telemetry.API
}

func NewService(database *sql.DB, clock chrono.API, tel telemetry.API) Service {
	assert.NotNil(database, "database")
	assert.NotNil(clock, "clock")
	assert.NotNil(tel, "tel")

	return Service{
		db:    database,
		qry:   db.New(database),
		clock: clock,
		tel:   telemetry.NewScopedAPI("statsnapshots", tel),
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// Push stores a snapshot, replacing any snapshot of the same player and
// mode taken earlier on the same day. A zero Time means now.
func (s Service) Push(ctx context.Context, snapshot Snapshot) error {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()

	nickname := snapshot.Stats.Nickname
	span.SetAttributes(
		attribute.String("nickname", nickname),
		attribute.String("mode", snapshot.Mode.String()),
	)

	if nickname == "" {
		return fmt.Errorf("snapshot has no nickname")
	}
	if !snapshot.Mode.Valid() {
		return fmt.Errorf("invalid game mode %d", int(snapshot.Mode))
	}

	snapshotTime := snapshot.Time
	if snapshotTime.IsZero() {
		snapshotTime = s.clock.Now()
	}
	startOfToday := chrono.StartOfDay(snapshotTime, s.clock.Location())
	startOfTomorrow := startOfToday.AddDate(0, 0, 1)

	err := s.push(ctx, snapshot, snapshotTime, startOfToday, startOfTomorrow)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken(report_service_push, err, nickname)
		return err
	}
	return nil
}

func (s Service) push(ctx context.Context, snapshot Snapshot, snapshotTime, after, before time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	stats := snapshot.Stats
	err = txqry.DeleteStatSnapshotsIn(ctx, db.DeleteStatSnapshotsInParams{
		Nickname: stats.Nickname,
		Mode:     int64(snapshot.Mode),
		After:    after.Unix(),
		Before:   before.Unix(),
	})
	if err != nil {
		return fmt.Errorf("delete same day snapshots: %w", err)
	}

	err = txqry.CreateStatSnapshot(ctx, db.CreateStatSnapshotParams{
		Nickname:        stats.Nickname,
		Mode:            int64(snapshot.Mode),
		Time:            snapshotTime.Unix(),
		Winrate:         stats.Winrate,
		Battles:         int64(stats.Battles),
		Damage:          stats.Damage,
		Clantag:         nullString(stats.Clantag),
		BattalionFull:   nullString(stats.BattalionFull),
		AverageSpotting: stats.AverageSpotting,
		AverageKills:    stats.AverageKills,
		AverageLevel:    nullFloat(stats.AverageLevel),
	})
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	return tx.Commit()
}

// Pull returns every snapshot of a player in a mode, oldest first.
func (s Service) Pull(ctx context.Context, nickname string, mode armata.GameMode) ([]Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Pull")
	defer span.End()

	span.SetAttributes(
		attribute.String("nickname", nickname),
		attribute.String("mode", mode.String()),
	)

	rows, err := s.qry.GetStatSnapshots(ctx, db.GetStatSnapshotsParams{
		Nickname: nickname,
		Mode:     int64(mode),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken(report_service_pull, err, nickname)
		return nil, err
	}

	snapshots := make([]Snapshot, len(rows))
	for i, r := range rows {
		stats := armata.PlayerStatistics{
			Nickname:        r.Nickname,
			Winrate:         r.Winrate,
			Battles:         int(r.Battles),
			Damage:          r.Damage,
			AverageSpotting: r.AverageSpotting,
			AverageKills:    r.AverageKills,
		}
		if r.Clantag.Valid {
			clantag := r.Clantag.String
			stats.Clantag = &clantag
		}
		if r.BattalionFull.Valid {
			full := r.BattalionFull.String
			stats.BattalionFull = &full
		}
		if r.AverageLevel.Valid {
			level := r.AverageLevel.Float64
			stats.AverageLevel = &level
		}

		snapshots[i] = Snapshot{
			Mode:  armata.GameMode(r.Mode),
			Time:  time.Unix(r.Time, 0).In(s.clock.Location()),
			Stats: stats,
		}
	}

	s.tel.ReportCount(report_service_pull, int64(len(snapshots)))
	return snapshots, nil
}

// TrackedPlayers lists every nickname and mode that has snapshots.
func (s Service) TrackedPlayers(ctx context.Context) ([]TrackedPlayer, error) {
	ctx, span := tracer.Start(ctx, "TrackedPlayers")
	defer span.End()

	rows, err := s.qry.GetTrackedPlayers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken(report_service_player, err)
		return nil, err
	}

	players := make([]TrackedPlayer, len(rows))
	for i, r := range rows {
		players[i] = TrackedPlayer{
			Nickname:  r.Nickname,
			Mode:      armata.GameMode(r.Mode),
			Snapshots: r.Snapshots,
			LastTime:  time.Unix(r.LastTime, 0).In(s.clock.Location()),
		}
	}
	return players, nil
}
