package armata

import (
	"fmt"
	"strconv"
)

// PlayerQuery selects whose statistics to fetch and how to filter them.
type PlayerQuery struct {
	Nickname string
	Mode     GameMode
	// PlayerID takes precedence over Nickname when it is not 0.
	PlayerID int64
	// TankID is the static id of a vehicle, 0 means all vehicles.
	TankID       int64
	VehicleClass VehicleClass
	// Day filters statistics by date or battle count, 0 means no filter.
	Day int
}

func (q PlayerQuery) Validate() error {
	if q.Nickname == "" && q.PlayerID == 0 {
		return fmt.Errorf("either a nickname or a player id is required")
	}
	if !q.Mode.Valid() {
		return fmt.Errorf("invalid game mode %d", int(q.Mode))
	}
	if !q.VehicleClass.Valid() {
		return fmt.Errorf("invalid vehicle class %d", int(q.VehicleClass))
	}
	if q.PlayerID < 0 || q.TankID < 0 || q.Day < 0 {
		return fmt.Errorf("player id, tank id and day must not be negative")
	}
	return nil
}

func (q PlayerQuery) params() map[string]string {
	return map[string]string{
		"a":        "stats",
		"name":     q.Nickname,
		"mode":     strconv.Itoa(int(q.Mode)),
		"data":     strconv.FormatInt(q.PlayerID, 10),
		"type":     strconv.FormatInt(q.TankID, 10),
		"maintype": strconv.Itoa(int(q.VehicleClass)),
		"day":      strconv.Itoa(q.Day),
		// the page layout differs for ajax requests
		"ajax": "0",
	}
}
