package db

import (
	"database/sql"
)

type StatSnapshot struct {
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
