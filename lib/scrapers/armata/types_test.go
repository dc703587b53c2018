package armata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayerStatisticsGet(t *testing.T) {
	stats := PlayerStatistics{
		Nickname:        "Googlemen",
		Winrate:         87.5,
		Battles:         48,
		Damage:          2598.97,
		Clantag:         ptr("R7GEx"),
		BattalionFull:   ptr("RAGE_Team"),
		AverageSpotting: 900.875,
		AverageKills:    1.19,
	}

	for _, field := range stats.Fields() {
		_, ok := stats.Get(field)
		require.True(t, ok, field)
	}

	value, ok := stats.Get("clantag")
	require.True(t, ok)
	require.Equal(t, "R7GEx", value)

	value, ok = stats.Get("battles")
	require.True(t, ok)
	require.Equal(t, 48, value)

	value, ok = stats.Get("average_level")
	require.True(t, ok)
	require.Nil(t, value)

	_, ok = stats.Get("Winrate")
	require.False(t, ok)

	// the returned slice is a copy
	fields := stats.Fields()
	fields[0] = "changed"
	require.Equal(t, "winrate", stats.Fields()[0])
}

func TestPlayerStatisticsEqual(t *testing.T) {
	a := PlayerStatistics{Nickname: "a", Battles: 1, AverageLevel: ptr(5.0)}
	b := PlayerStatistics{Nickname: "a", Battles: 1, AverageLevel: ptr(5.0)}
	require.True(t, a.Equal(b))

	b.AverageLevel = nil
	require.False(t, a.Equal(b))
	a.AverageLevel = nil
	require.True(t, a.Equal(b))

	b.Clantag = ptr("")
	require.False(t, a.Equal(b))
}

func TestPlayerStatisticsJson(t *testing.T) {
	encoded, err := json.Marshal(PlayerStatistics{Nickname: "a", Clantag: ptr("T")})
	require.NoError(t, err)
	require.JSONEq(t, `{
		"nickname": "a",
		"winrate": 0,
		"battles": 0,
		"damage": 0,
		"clantag": "T",
		"battalion_full": null,
		"average_spotting": 0,
		"average_kills": 0,
		"average_level": null
	}`, string(encoded))
}

func TestBattalionMemberEntryEqual(t *testing.T) {
	a := BattalionMemberEntry{Nickname: "RUBIN", ID: 1, Role: ptr("Командир"), BattalionID: 2}
	renamed := a
	renamed.Nickname = "RUBIN_old"
	require.True(t, a.Equal(renamed))

	demoted := a
	demoted.Role = ptr("Рядовой")
	require.False(t, a.Equal(demoted))

	noRole := a
	noRole.Role = nil
	require.False(t, a.Equal(noRole))
}

func TestBattalionSearchResultEntry(t *testing.T) {
	a := BattalionSearchResultEntry{FullName: "ArmoredLabs", ID: 335779}
	require.True(t, a.Equal(BattalionSearchResultEntry{FullName: "ArmoredLabs", ID: 335779}))
	require.False(t, a.Equal(BattalionSearchResultEntry{FullName: "ArmoredLabs", ID: 1}))
	require.Equal(t, "ArmoredLabs (ID: 335779)", a.String())
}

func TestParseGameMode(t *testing.T) {
	testCases := []struct {
		input    string
		expected GameMode
	}{
		{input: "pvp", expected: PVP},
		{input: "PVE", expected: PVE},
		{input: " low ", expected: LOW},
		{input: "glops", expected: GLOPS},
		{input: "ranked", expected: RANKED},
		{input: "rb", expected: RANKED},
		{input: "3", expected: GLOPS},
	}
	for _, test := range testCases {
		mode, err := ParseGameMode(test.input)
		require.NoError(t, err, test.input)
		require.Equal(t, test.expected, mode, test.input)
	}

	_, err := ParseGameMode("5")
	require.Error(t, err)
	_, err = ParseGameMode("arcade")
	require.Error(t, err)

	require.Equal(t, "RANKED", RB.String())
	require.Equal(t, "GameMode(9)", GameMode(9).String())
	require.False(t, GameMode(-1).Valid())
}

func TestParseVehicleClass(t *testing.T) {
	class, err := ParseVehicleClass("td")
	require.NoError(t, err)
	require.Equal(t, TD, class)

	class, err = ParseVehicleClass("0")
	require.NoError(t, err)
	require.Equal(t, AllClasses, class)

	_, err = ParseVehicleClass("SPG")
	require.Error(t, err)
}
