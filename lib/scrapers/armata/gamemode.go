package armata

import (
	"fmt"
	"strconv"
	"strings"
)

type GameMode int

const (
	PVP GameMode = iota
	PVE
	LOW
	GLOPS
	RANKED
)

// RB is the in-game name of ranked battles.
const RB = RANKED

var gameModeNames = []string{"PVP", "PVE", "LOW", "GLOPS", "RANKED"}

func (m GameMode) Valid() bool {
	return m >= PVP && m <= RANKED
}

func (m GameMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("GameMode(%d)", int(m))
	}
	return gameModeNames[m]
}

// ParseGameMode accepts a mode name (case insensitive, RB included) or its number.
func ParseGameMode(s string) (GameMode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "RB" {
		return RB, nil
	}
	for i, name := range gameModeNames {
		if name == s {
			return GameMode(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err == nil && GameMode(n).Valid() {
		return GameMode(n), nil
	}
	return 0, fmt.Errorf("unknown game mode '%s'", s)
}

// VehicleClass is the `maintype` filter of the statistics page.
type VehicleClass int

const (
	AllClasses VehicleClass = iota
	MBT
	LT
	TD
	AFV
)

var vehicleClassNames = []string{"ALL", "MBT", "LT", "TD", "AFV"}

func (c VehicleClass) Valid() bool {
	return c >= AllClasses && c <= AFV
}

func (c VehicleClass) String() string {
	if !c.Valid() {
		return fmt.Sprintf("VehicleClass(%d)", int(c))
	}
	return vehicleClassNames[c]
}

func ParseVehicleClass(s string) (VehicleClass, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range vehicleClassNames {
		if name == s {
			return VehicleClass(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err == nil && VehicleClass(n).Valid() {
		return VehicleClass(n), nil
	}
	return 0, fmt.Errorf("unknown vehicle class '%s'", s)
}
