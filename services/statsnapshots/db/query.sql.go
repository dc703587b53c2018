package db

import (
	"context"
	"database/sql"
)

const createStatSnapshot = `-- name: CreateStatSnapshot :exec
insert into StatSnapshot(
    nickname, mode, time, winrate, battles, damage, clantag, battalion_full,
    average_spotting, average_kills, average_level
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateStatSnapshotParams struct {
	Nickname        string
	Mode            int64
	Time            int64
	Winrate         float64
	Battles         int64
	Damage          float64
	Clantag         sql.NullString
	BattalionFull   sql.NullString
	AverageSpotting float64
	AverageKills    float64
	AverageLevel    sql.NullFloat64
}

func (q *Queries) CreateStatSnapshot(ctx context.Context, arg CreateStatSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, createStatSnapshot,
		arg.Nickname,
		arg.Mode,
		arg.Time,
		arg.Winrate,
		arg.Battles,
		arg.Damage,
		arg.Clantag,
		arg.BattalionFull,
		arg.AverageSpotting,
		arg.AverageKills,
		arg.AverageLevel,
	)
	return err
}

const deleteStatSnapshotsIn = `-- name: DeleteStatSnapshotsIn :exec
delete from StatSnapshot
where nickname = ? and mode = ? and time >= ? and time < ?
`

type DeleteStatSnapshotsInParams struct {
	Nickname string
	Mode     int64
	After    int64
	Before   int64
}

func (q *Queries) DeleteStatSnapshotsIn(ctx context.Context, arg DeleteStatSnapshotsInParams) error {
	_, err := q.db.ExecContext(ctx, deleteStatSnapshotsIn,
		arg.Nickname,
		arg.Mode,
		arg.After,
		arg.Before,
	)
	return err
}

const getStatSnapshots = `-- name: GetStatSnapshots :many
select nickname, mode, time, winrate, battles, damage, clantag, battalion_full,
    average_spotting, average_kills, average_level
from StatSnapshot
where nickname = ? and mode = ?
order by time asc
`

type GetStatSnapshotsParams struct {
	Nickname string
	Mode     int64
}

func (q *Queries) GetStatSnapshots(ctx context.Context, arg GetStatSnapshotsParams) ([]StatSnapshot, error) {
	rows, err := q.db.QueryContext(ctx, getStatSnapshots, arg.Nickname, arg.Mode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StatSnapshot
	for rows.Next() {
		var i StatSnapshot
		if err := rows.Scan(
			&i.Nickname,
			&i.Mode,
			&i.Time,
			&i.Winrate,
			&i.Battles,
			&i.Damage,
			&i.Clantag,
			&i.BattalionFull,
			&i.AverageSpotting,
			&i.AverageKills,
			&i.AverageLevel,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTrackedPlayers = `-- name: GetTrackedPlayers :many
select nickname, mode, count(*) as snapshots, max(time) as last_time
from StatSnapshot
group by nickname, mode
order by nickname asc, mode asc
`

type GetTrackedPlayersRow struct {
	Nickname  string
	Mode      int64
	Snapshots int64
	LastTime  int64
}

func (q *Queries) GetTrackedPlayers(ctx context.Context) ([]GetTrackedPlayersRow, error) {
	rows, err := q.db.QueryContext(ctx, getTrackedPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetTrackedPlayersRow
	for rows.Next() {
		var i GetTrackedPlayersRow
		if err := rows.Scan(
			&i.Nickname,
			&i.Mode,
			&i.Snapshots,
			&i.LastTime,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
