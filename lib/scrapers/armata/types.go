package armata

import "fmt"

// PlayerStatistics is the overall statistics of a player in one game mode,
// optionally narrowed down to a single vehicle or vehicle class.
type PlayerStatistics struct {
	Nickname string `json:"nickname"`
	// percentage in range 0-100
	Winrate float64 `json:"winrate"`
	Battles int     `json:"battles"`
	// average damage per battle
	Damage float64 `json:"damage"`
	// Clantag and BattalionFull are either both nil or both set.
	Clantag         *string `json:"clantag"`
	BattalionFull   *string `json:"battalion_full"`
	AverageSpotting float64 `json:"average_spotting"`
	AverageKills    float64 `json:"average_kills"`
	// AverageLevel is the battle weighted mean of vehicle tiers, it is nil
	// when there are no battles or the page has no tier breakdown.
	AverageLevel *float64 `json:"average_level"`
}

var playerStatisticsFields = []string{
	"winrate",
	"battles",
	"damage",
	"clantag",
	"battalion_full",
	"average_spotting",
	"average_kills",
	"average_level",
	"nickname",
}

// Fields returns the names accepted by Get.
func (s PlayerStatistics) Fields() []string {
	out := make([]string, len(playerStatisticsFields))
	copy(out, playerStatisticsFields)
	return out
}

// Get looks up a field by its snake_case name. Nil optionals are returned
// as a nil value with ok set to true.
func (s PlayerStatistics) Get(field string) (value any, ok bool) {
	switch field {
	case "winrate":
		return s.Winrate, true
	case "battles":
		return s.Battles, true
	case "damage":
		return s.Damage, true
	case "clantag":
		if s.Clantag == nil {
			return nil, true
		}
		return *s.Clantag, true
	case "battalion_full":
		if s.BattalionFull == nil {
			return nil, true
		}
		return *s.BattalionFull, true
	case "average_spotting":
		return s.AverageSpotting, true
	case "average_kills":
		return s.AverageKills, true
	case "average_level":
		if s.AverageLevel == nil {
			return nil, true
		}
		return *s.AverageLevel, true
	case "nickname":
		return s.Nickname, true
	}
	return nil, false
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s PlayerStatistics) Equal(other PlayerStatistics) bool {
	return s.Nickname == other.Nickname &&
		s.Winrate == other.Winrate &&
		s.Battles == other.Battles &&
		s.Damage == other.Damage &&
		equalPtr(s.Clantag, other.Clantag) &&
		equalPtr(s.BattalionFull, other.BattalionFull) &&
		s.AverageSpotting == other.AverageSpotting &&
		s.AverageKills == other.AverageKills &&
		equalPtr(s.AverageLevel, other.AverageLevel)
}

// BattalionMemberEntry is a single row of a battalion roster.
type BattalionMemberEntry struct {
	Nickname    string  `json:"nickname"`
	ID          int64   `json:"id"`
	Role        *string `json:"role"`
	BattalionID int64   `json:"battalion_id"`
}

// Equal does not compare nicknames, a player keeps their id across renames.
func (e BattalionMemberEntry) Equal(other BattalionMemberEntry) bool {
	return e.ID == other.ID &&
		equalPtr(e.Role, other.Role) &&
		e.BattalionID == other.BattalionID
}

func (e BattalionMemberEntry) String() string {
	return fmt.Sprintf("%s (ID: %d) is a member of battalion %d", e.Nickname, e.ID, e.BattalionID)
}

type BattalionSearchResultEntry struct {
	FullName string `json:"full_name"`
	ID       int64  `json:"id"`
}

func (e BattalionSearchResultEntry) Equal(other BattalionSearchResultEntry) bool {
	return e.FullName == other.FullName && e.ID == other.ID
}

func (e BattalionSearchResultEntry) String() string {
	return fmt.Sprintf("%s (ID: %d)", e.FullName, e.ID)
}
