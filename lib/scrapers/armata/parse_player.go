package armata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/htmlutil"
)

const (
	battlesSuffix  = "сыграно"
	spottingSuffix = "разведданным"
	// "ср." in front of averages
	averageLabelWidth = 3
)

// PlayerStatistics extracts the statistics of a player from the page
// returned by /dynamic/user/. requestedNickname is only used for errors,
// the nickname in the returned record is the one shown on the page.
func (p Parser) PlayerStatistics(page string, requestedNickname string) (PlayerStatistics, error) {
	doc, err := newDocument("player page", page)
	if err != nil {
		p.tel.ReportBroken(report_parser_player_statistics, err)
		return PlayerStatistics{}, err
	}

	kind, err := classifyPlayerPage(doc)
	if err != nil {
		p.tel.ReportBroken(report_parser_player_statistics, err)
		return PlayerStatistics{}, err
	}
	switch kind {
	case pageNotAuthenticated:
		p.tel.ReportWarning(report_parser_player_statistics, ErrNotAuthenticated)
		return PlayerStatistics{}, ErrNotAuthenticated
	case pagePlayerNotFound:
		err := PlayerNotFoundError{Nickname: requestedNickname}
		p.tel.ReportWarning(report_parser_player_statistics, err)
		return PlayerStatistics{}, err
	case pageStatisticsClosed:
		err := StatisticsClosedError{Nickname: requestedNickname}
		p.tel.ReportWarning(report_parser_player_statistics, err)
		return PlayerStatistics{}, err
	}

	stats, err := extractPlayerStatistics(doc)
	if err != nil {
		p.tel.ReportBroken(report_parser_player_statistics, err, requestedNickname)
		return PlayerStatistics{}, err
	}
	return stats, nil
}

func extractPlayerStatistics(doc *goquery.Document) (PlayerStatistics, error) {
	var stats PlayerStatistics
	var err error

	stats.Nickname, err = extractNickname(doc)
	if err != nil {
		return PlayerStatistics{}, err
	}
	stats.Clantag, stats.BattalionFull, err = extractBattalion(doc)
	if err != nil {
		return PlayerStatistics{}, err
	}
	stats.Battles, err = extractBattles(doc)
	if err != nil {
		return PlayerStatistics{}, err
	}

	var spottingTotal float64
	stats.Damage, spottingTotal, err = extractDamage(doc)
	if err != nil {
		return PlayerStatistics{}, err
	}
	if stats.Battles > 0 {
		stats.AverageSpotting = spottingTotal / float64(stats.Battles)
	}

	stats.AverageKills, err = extractKills(doc)
	if err != nil {
		return PlayerStatistics{}, err
	}
	stats.Winrate, err = extractWinrate(doc)
	if err != nil {
		return PlayerStatistics{}, err
	}
	stats.AverageLevel, err = extractAverageLevel(doc, stats.Battles)
	if err != nil {
		return PlayerStatistics{}, err
	}

	return stats, nil
}

func extractNickname(doc *goquery.Document) (string, error) {
	sel := doc.Find("div.name").First()
	if sel.Length() == 0 {
		return "", missing("nickname")
	}
	// the level badge follows the nickname on its own line
	nickname := htmlutil.FirstLine(htmlutil.GetText(sel.Get(0)))
	if nickname == "" {
		return "", ExtractionError{Field: "nickname", Found: sel.Text(), Err: fmt.Errorf("empty nickname")}
	}
	return nickname, nil
}

// matches "[TAG] [FULL NAME]"
var battalionRegex = regexp.MustCompile(`^\[([^\]]*)\]\s*\[([^\]]*)\]`)

func extractBattalion(doc *goquery.Document) (clantag, full *string, err error) {
	sel := doc.Find("div.clan").First()
	if sel.Length() == 0 {
		return nil, nil, missing("battalion")
	}
	children := sel.Children()
	if children.Length() < 2 {
		return nil, nil, ExtractionError{
			Field: "battalion",
			Found: strings.TrimSpace(sel.Text()),
			Err:   fmt.Errorf("expected 2 children, got %d", children.Length()),
		}
	}

	text := strings.TrimSpace(children.Eq(1).Text())
	if text == "" {
		return nil, nil, nil
	}
	groups := battalionRegex.FindStringSubmatch(text)
	if groups == nil {
		return nil, nil, ExtractionError{
			Field: "battalion",
			Found: text,
			Err:   fmt.Errorf("expected '[tag] [name]'"),
		}
	}

	tag := strings.TrimSpace(groups[1])
	if tag == "" {
		return nil, nil, nil
	}
	name := strings.TrimSpace(groups[2])
	return &tag, &name, nil
}

func extractBattles(doc *goquery.Document) (int, error) {
	sel := doc.Find("div.total").First()
	if sel.Length() == 0 {
		return 0, missing("battles")
	}
	fields := strings.Fields(sel.Text())
	if len(fields) == 0 {
		return 0, nil
	}
	text := strings.ReplaceAll(fields[len(fields)-1], battlesSuffix, "")
	if text == "" {
		return 0, nil
	}
	battles, err := strconv.Atoi(text)
	if err != nil {
		return 0, ExtractionError{Field: "battles", Found: text, Err: err}
	}
	return battles, nil
}

// extractDamage reads the fourth stat pad, it holds the average damage and
// the total damage done by spotting.
func extractDamage(doc *goquery.Document) (average float64, spottingTotal float64, err error) {
	pads := doc.Find("div.list_pad")
	if pads.Length() < 4 {
		return 0, 0, ExtractionError{
			Field: "damage",
			Err:   fmt.Errorf("expected 4 stat pads, got %d", pads.Length()),
		}
	}
	rows := pads.Eq(3).Children()
	if rows.Length() < 6 {
		return 0, 0, ExtractionError{
			Field: "damage",
			Found: strings.TrimSpace(pads.Eq(3).Text()),
			Err:   fmt.Errorf("expected 6 rows, got %d", rows.Length()),
		}
	}

	damageText := dropRunes(strings.TrimSpace(rows.Eq(3).Text()), averageLabelWidth)
	average, err = strconv.ParseFloat(damageText, 64)
	if err != nil {
		return 0, 0, ExtractionError{Field: "damage", Found: damageText, Err: err}
	}

	spottingRow := strings.TrimSpace(rows.Eq(5).Text())
	fields := strings.Fields(spottingRow)
	if len(fields) < 3 {
		return 0, 0, ExtractionError{
			Field: "spotting",
			Found: spottingRow,
			Err:   fmt.Errorf("expected 3 words, got %d", len(fields)),
		}
	}
	spottingText := strings.ReplaceAll(fields[2], spottingSuffix, "")
	if spottingText == "" {
		return average, 0, nil
	}
	spottingTotal, err = strconv.ParseFloat(spottingText, 64)
	if err != nil {
		return 0, 0, ExtractionError{Field: "spotting", Found: spottingText, Err: err}
	}
	return average, spottingTotal, nil
}

func extractKills(doc *goquery.Document) (float64, error) {
	pad := doc.Find("#profile_main_cont div.game_stats2").First().
		Find("div.list_pad").First()
	if pad.Length() == 0 {
		return 0, missing("kills")
	}
	row := pad.Find("div").Eq(2)
	if row.Length() == 0 {
		return 0, ExtractionError{
			Field: "kills",
			Found: strings.TrimSpace(pad.Text()),
			Err:   fmt.Errorf("expected 3 rows"),
		}
	}

	fields := strings.Fields(row.Text())
	if len(fields) == 0 {
		return 0, nil
	}
	text := dropRunes(fields[len(fields)-1], averageLabelWidth)
	if text == "" {
		return 0, nil
	}
	kills, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, ExtractionError{Field: "kills", Found: text, Err: err}
	}
	return kills, nil
}

func extractWinrate(doc *goquery.Document) (float64, error) {
	sel := doc.Find("span.yellow").First()
	if sel.Length() == 0 {
		return 0, missing("winrate")
	}
	text := strings.TrimSuffix(strings.TrimSpace(sel.Text()), "%")
	winrate, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, ExtractionError{Field: "winrate", Found: text, Err: err}
	}
	return winrate, nil
}

// extractAverageLevel reads the per tier battle counts, the n-th entry of
// the breakdown is tier n.
func extractAverageLevel(doc *goquery.Document, battles int) (*float64, error) {
	section := doc.Find("div.game_stats3").First()
	if section.Length() == 0 {
		return nil, nil
	}
	breakdown := section.Find("div.diag_pad").First()
	if breakdown.Length() == 0 {
		return nil, missing("level breakdown")
	}

	weighted := 0
	var err error
	breakdown.Children().EachWithBreak(func(i int, tier *goquery.Selection) bool {
		text := strings.TrimSpace(tier.Children().Last().Text())
		count, convErr := strconv.Atoi(text)
		if convErr != nil {
			err = ExtractionError{
				Field: fmt.Sprintf("tier %d battles", i+1),
				Found: text,
				Err:   convErr,
			}
			return false
		}
		weighted += (i + 1) * count
		return true
	})
	if err != nil {
		return nil, err
	}

	if battles == 0 {
		return nil, nil
	}
	average := float64(weighted) / float64(battles)
	return &average, nil
}
