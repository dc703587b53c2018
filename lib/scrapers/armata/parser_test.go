package armata

import (
	"embed"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/telemetry"
	"github.com/stretchr/testify/require"
)

//go:embed testdata
var testdata embed.FS

func fixture(t testing.TB, name string) string {
	contents, err := testdata.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return string(contents)
}

func ptr[T any](v T) *T {
	return &v
}

func newTestParser() (Parser, *telemetry.Recorder) {
	rec := &telemetry.Recorder{}
	return NewParser(rec), rec
}

func TestPlayerStatistics(t *testing.T) {
	testCases := []struct {
		fixture  string
		nickname string
		expected PlayerStatistics
	}{
		{
			fixture:  "player_iterasugr1njo_pvp.html",
			nickname: "IterasuGr1njo",
			expected: PlayerStatistics{
				Nickname:        "IterasuGr1njo",
				Winrate:         65.6,
				Battles:         326,
				Damage:          6815.85,
				AverageSpotting: 613.4325153374233,
				AverageKills:    2.25,
				AverageLevel:    ptr(8.223926380368098),
			},
		},
		{
			fixture:  "player_googlemen_low.html",
			nickname: "Googlemen",
			expected: PlayerStatistics{
				Nickname:        "Googlemen",
				Winrate:         87.5,
				Battles:         48,
				Damage:          2598.97,
				Clantag:         ptr("R7GEx"),
				BattalionFull:   ptr("RAGE_Team"),
				AverageSpotting: 900.875,
				AverageKills:    1.19,
				AverageLevel:    ptr(7.333333333333333),
			},
		},
		{
			// looked up by player id, the nickname comes from the page
			fixture:  "player_tank.html",
			nickname: "",
			expected: PlayerStatistics{
				Nickname:        "IterasuGr1njo",
				Winrate:         65.6,
				Battles:         32,
				Damage:          8611.4,
				AverageSpotting: 422.28125,
				AverageKills:    2.81,
			},
		},
		{
			fixture:  "player_zero_battles.html",
			nickname: "Novice_2021",
			expected: PlayerStatistics{
				Nickname: "Novice_2021",
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.fixture, func(t *testing.T) {
			parser, rec := newTestParser()
			stats, err := parser.PlayerStatistics(fixture(t, test.fixture), test.nickname)
			require.NoError(t, err)

			diff := cmp.Diff(test.expected, stats)
			if diff != "" {
				t.Fatal(diff)
			}
			require.Empty(t, rec.IDs(telemetry.KindBroken))
			require.Empty(t, rec.IDs(telemetry.KindWarning))
		})
	}
}

func TestPlayerStatisticsInvariants(t *testing.T) {
	parser, _ := newTestParser()
	fixtures := []string{
		"player_iterasugr1njo_pvp.html",
		"player_googlemen_low.html",
		"player_tank.html",
		"player_zero_battles.html",
	}

	for _, name := range fixtures {
		page := fixture(t, name)
		stats, err := parser.PlayerStatistics(page, "")
		require.NoError(t, err)

		require.Equal(t, stats.Clantag == nil, stats.BattalionFull == nil, name)
		if stats.Battles == 0 {
			require.Nil(t, stats.AverageLevel, name)
			require.Equal(t, 0.0, stats.AverageSpotting, name)
		}

		again, err := parser.PlayerStatistics(page, "")
		require.NoError(t, err)
		require.True(t, stats.Equal(again), name)
	}
}

func TestPlayerStatisticsSoftErrors(t *testing.T) {
	testCases := []struct {
		fixture string
		check   func(t *testing.T, err error)
	}{
		{
			fixture: "player_not_authenticated.html",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrNotAuthenticated)
			},
		},
		{
			fixture: "player_not_authenticated_signup.html",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrNotAuthenticated)
			},
		},
		{
			fixture: "player_not_found.html",
			check: func(t *testing.T, err error) {
				var target PlayerNotFoundError
				require.ErrorAs(t, err, &target)
				require.Equal(t, "SomePlayer", target.Nickname)
			},
		},
		{
			fixture: "player_closed.html",
			check: func(t *testing.T, err error) {
				var target StatisticsClosedError
				require.ErrorAs(t, err, &target)
				require.Equal(t, "SomePlayer", target.Nickname)
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.fixture, func(t *testing.T) {
			parser, rec := newTestParser()
			_, err := parser.PlayerStatistics(fixture(t, test.fixture), "SomePlayer")
			require.Error(t, err)
			test.check(t, err)

			require.Equal(t, []string{report_parser_player_statistics}, rec.IDs(telemetry.KindWarning))
			require.Empty(t, rec.IDs(telemetry.KindBroken))
		})
	}
}

func TestPlayerStatisticsClassificationPrecedence(t *testing.T) {
	parser, _ := newTestParser()

	notAuth := `<p>Для просмотра данной страницы вам необходимо авторизоваться или <a href="/user/register/">зарегистрироваться</a> на сайте.</p>`
	valid := fixture(t, "player_googlemen_low.html")
	page := strings.Replace(valid, "<body>", "<body>\n"+notAuth, 1)

	_, err := parser.PlayerStatistics(page, "Googlemen")
	require.ErrorIs(t, err, ErrNotAuthenticated)

	// not authenticated wins over the not found notice that follows it
	notFound := `<div class="node_notice warn border">Пользователь не найден!</div>`
	page = "<html><body>" + notAuth + notFound + "</body></html>"
	_, err = parser.PlayerStatistics(page, "Googlemen")
	require.ErrorIs(t, err, ErrNotAuthenticated)

	// a notice that is not the first one is ignored
	page = strings.Replace(valid, "</body>", notFound+"\n</body>", 1)
	stats, err := parser.PlayerStatistics(page, "Googlemen")
	require.NoError(t, err)
	require.Equal(t, "Googlemen", stats.Nickname)
}

func TestPlayerStatisticsMalformed(t *testing.T) {
	valid := fixture(t, "player_iterasugr1njo_pvp.html")

	testCases := []struct {
		name  string
		page  string
		field string
	}{
		{
			name:  "missing name",
			page:  strings.Replace(valid, `class="name"`, `class="renamed"`, 1),
			field: "nickname",
		},
		{
			name:  "missing clan",
			page:  strings.Replace(valid, `class="clan"`, `class="guild"`, 1),
			field: "battalion",
		},
		{
			name:  "bad battles",
			page:  strings.Replace(valid, "<span>326</span>", "<span>3x6</span>", 1),
			field: "battles",
		},
		{
			name:  "bad damage",
			page:  strings.Replace(valid, "6815.85", "6815,85", 1),
			field: "damage",
		},
		{
			name:  "bad winrate",
			page:  strings.Replace(valid, "65.6%", "n/a", 1),
			field: "winrate",
		},
		{
			name:  "bad tier",
			page:  strings.Replace(valid, `<div class="diag_val">69</div>`, `<div class="diag_val">-</div>`, 1),
			field: "tier 7 battles",
		},
		{
			name:  "empty page",
			page:  "",
			field: "notices",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			parser, rec := newTestParser()
			_, err := parser.PlayerStatistics(test.page, "IterasuGr1njo")

			var target ExtractionError
			require.ErrorAs(t, err, &target)
			require.Equal(t, test.field, target.Field)
			require.Equal(t, []string{report_parser_player_statistics}, rec.IDs(telemetry.KindBroken))
		})
	}
}

func TestPlayerStatisticsNicknameEntities(t *testing.T) {
	page := strings.Replace(
		fixture(t, "player_googlemen_low.html"),
		"<div class=\"name\">\nGooglemen\n",
		"<div class=\"name\">\n  Tom&amp;Jerry&#39;s\n",
		1,
	)
	parser, _ := newTestParser()
	stats, err := parser.PlayerStatistics(page, "Tom&Jerry's")
	require.NoError(t, err)
	require.Equal(t, "Tom&Jerry's", stats.Nickname)
}

func TestExtractionErrorMessage(t *testing.T) {
	err := ExtractionError{
		Field: "damage",
		Found: "ср.\n\t  6815,85  \n",
		Err:   errors.New("invalid syntax"),
	}
	require.Equal(t, "armata: extract damage from 'ср. 6815,85': invalid syntax", err.Error())
	require.Equal(t, "armata: extract roster: container not found", missing("roster").Error())
}

func TestBattalionRoster(t *testing.T) {
	parser, _ := newTestParser()

	members, err := parser.BattalionRoster(fixture(t, "battalion_roster.html"), 302260)
	require.NoError(t, err)

	expected := []BattalionMemberEntry{
		{Nickname: "RUBIN", ID: 485633946, Role: ptr("Командир"), BattalionID: 302260},
		{Nickname: "T57Heavy-Tank", ID: 458829630, Role: ptr("Рядовой"), BattalionID: 302260},
		{Nickname: "iLuvSasha", ID: 463381012, Role: ptr("Офицер"), BattalionID: 302260},
		{Nickname: "rubin_2", ID: 512947211, Role: ptr("Рядовой"), BattalionID: 302260},
	}
	diff := cmp.Diff(expected, members)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, "RUBIN (ID: 485633946) is a member of battalion 302260", members[0].String())
}

func rosterPage(rows ...string) string {
	return "<html><body>\n" +
		`<div class="alliance_head"><div class="alliance_name">test</div></div>` + "\n" +
		`<div class="cont">` + "\n" +
		strings.Join(rows, "\n") + "\n" +
		"</div>\n</body></html>"
}

func TestBattalionRosterRows(t *testing.T) {
	parser, _ := newTestParser()

	members, err := parser.BattalionRoster(rosterPage(
		`<div><a href="/user/stats?data=1">NoRole</a></div>`,
		`<div><a href="/user/stats?data=2">EmptyRole</a><br><span></span></div>`,
		`<div class="title">not a member</div>`,
	), 9)
	require.NoError(t, err)
	diff := cmp.Diff([]BattalionMemberEntry{
		{Nickname: "NoRole", ID: 1, BattalionID: 9},
		{Nickname: "EmptyRole", ID: 2, BattalionID: 9},
	}, members)
	if diff != "" {
		t.Fatal(diff)
	}

	members, err = parser.BattalionRoster(rosterPage(), 9)
	require.NoError(t, err)
	require.Empty(t, members)

	// roles with spaces cannot be told apart from the nickname
	_, err = parser.BattalionRoster(rosterPage(
		`<div><a href="/user/stats?data=3">Deputy</a><br><span>Зам командира</span></div>`,
	), 9)
	var target ExtractionError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "roster row", target.Field)
	require.Contains(t, target.Found, "Deputy")

	_, err = parser.BattalionRoster(rosterPage(
		`<div><a href="/user/stats?data=abc">BadId</a><br><span>Рядовой</span></div>`,
	), 9)
	require.ErrorAs(t, err, &target)
	require.Equal(t, "member id", target.Field)
}

func TestBattalionRosterSoftErrors(t *testing.T) {
	parser, rec := newTestParser()

	_, err := parser.BattalionRoster(fixture(t, "battalion_not_found.json"), 42)
	var notFound BattalionNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, int64(42), notFound.ID)

	_, err = parser.BattalionRoster(fixture(t, "battalion_not_authenticated.html"), 42)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	require.Equal(
		t,
		[]string{report_parser_battalion_roster, report_parser_battalion_roster},
		rec.IDs(telemetry.KindWarning),
	)

	// a single notice is not enough to classify the page
	_, err = parser.BattalionRoster(`<div class="cont"></div>`, 42)
	var extraction ExtractionError
	require.ErrorAs(t, err, &extraction)
	require.ErrorIs(t, err, errTooFewNotices)

	// the sentinel is only recognized verbatim
	_, err = parser.BattalionRoster(` {"redirect":"\/alliance\/top"}`, 42)
	require.False(t, errors.As(err, &notFound))
}

func TestSearchResults(t *testing.T) {
	parser, _ := newTestParser()

	results, err := parser.SearchResults(fixture(t, "search_rage.json"), "RAGE")
	require.NoError(t, err)
	diff := cmp.Diff([]BattalionSearchResultEntry{
		{FullName: "RAGE TEAM", ID: 167635},
		{FullName: "RAGE AGAINST THE MACHINE#1", ID: 275033},
		{FullName: "161 rus", ID: 287761},
		{FullName: "Rage Against The Mashine", ID: 292883},
		{FullName: "RageWolves", ID: 293774},
		{FullName: "RAGE_Team", ID: 302260},
	}, results)
	if diff != "" {
		t.Fatal(diff)
	}

	results, err = parser.SearchResults(fixture(t, "search_labs.json"), "LABS")
	require.NoError(t, err)
	require.Equal(t, "ArmoredLabs", results[0].FullName)
	require.Equal(t, int64(335779), results[0].ID)
}

func TestSearchResultsErrors(t *testing.T) {
	parser, _ := newTestParser()

	_, err := parser.SearchResults(fixture(t, "search_too_short.json"), "RAG")
	var tooShort TooShortQueryError
	require.ErrorAs(t, err, &tooShort)
	require.Equal(t, 3, tooShort.Length)

	// length is counted in characters
	_, err = parser.SearchResults(fixture(t, "search_too_short.json"), "РАГ")
	require.ErrorAs(t, err, &tooShort)
	require.Equal(t, 3, tooShort.Length)

	_, err = parser.SearchResults(fixture(t, "search_not_found.json"), "NOSUCHBATTALION")
	var notFound BattalionNotFoundByNameError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "NOSUCHBATTALION", notFound.Name)

	var extraction ExtractionError
	_, err = parser.SearchResults(`{"error":5,"data":[]}`, "RAGE")
	require.ErrorAs(t, err, &extraction)
	_, err = parser.SearchResults(`<html>`, "RAGE")
	require.ErrorAs(t, err, &extraction)
	_, err = parser.SearchResults(`{"error":0,"data":{"x":"RAGE"}}`, "RAGE")
	require.ErrorAs(t, err, &extraction)

	results, err := parser.SearchResults(`{"error":0,"data":[]}`, "RAGE")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestDropRunes(t *testing.T) {
	require.Equal(t, "2.25", dropRunes("ср.2.25", 3))
	require.Equal(t, "", dropRunes("ср.", 3))
	require.Equal(t, "", dropRunes("ab", 3))
	require.Equal(t, "abc", dropRunes("abc", 0))
}
