package armata

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/lookandhate/ArmoredWarfareAPI/lib/htmlutil"
)

// every member row of the roster starts with this, for example:
// <div><a href="/user/stats?data=458829630">T57Heavy-Tank</a><br/><span>Рядовой</span></div>
const rosterRowPrefix = `<div><a href="/user/stats`

var rosterRowReplacer = strings.NewReplacer(
	`<div><a href="/user/stats?`, "",
	`">`, " ",
	`</a><br/`, " ",
	`data=`, " ",
)

var roleReplacer = strings.NewReplacer(
	`><span>`, "",
	`</span></div>`, "",
)

// BattalionRoster extracts the members of a battalion from the page
// returned by /dynamic/aliance/index.php.
//
// Rows are located by their serialized text rather than the tree since the
// rows have no class or id to select by. A nickname or role containing a
// space cannot be split reliably and fails with an ExtractionError.
func (p Parser) BattalionRoster(page string, battalionID int64) ([]BattalionMemberEntry, error) {
	if page == battalionNotFoundPayload {
		err := BattalionNotFoundError{ID: battalionID}
		p.tel.ReportWarning(report_parser_battalion_roster, err)
		return nil, err
	}

	doc, err := newDocument("battalion page", page)
	if err != nil {
		p.tel.ReportBroken(report_parser_battalion_roster, err, battalionID)
		return nil, err
	}
	kind, err := classifyBattalionPage(page, doc)
	if err != nil {
		p.tel.ReportBroken(report_parser_battalion_roster, err, battalionID)
		return nil, err
	}
	if kind == pageNotAuthenticated {
		p.tel.ReportWarning(report_parser_battalion_roster, ErrNotAuthenticated)
		return nil, ErrNotAuthenticated
	}

	cont := doc.Find("div.cont").First()
	if cont.Length() == 0 {
		err := missing("roster")
		p.tel.ReportBroken(report_parser_battalion_roster, err, battalionID)
		return nil, err
	}
	rendered, err := htmlutil.OuterHtml(cont)
	if err != nil {
		err = ExtractionError{Field: "roster", Err: err}
		p.tel.ReportBroken(report_parser_battalion_roster, err, battalionID)
		return nil, err
	}

	members := []BattalionMemberEntry{}
	for _, line := range strings.Split(rendered, "\n") {
		line = strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(line, rosterRowPrefix) {
			continue
		}
		member, err := parseRosterRow(line, battalionID)
		if err != nil {
			p.tel.ReportBroken(report_parser_battalion_roster, err, battalionID)
			return nil, err
		}
		members = append(members, member)
	}

	p.tel.ReportDebug("parsed battalion roster", battalionID, len(members))
	return members, nil
}

func parseRosterRow(line string, battalionID int64) (BattalionMemberEntry, error) {
	tokens := strings.Split(rosterRowReplacer.Replace(line), " ")
	if len(tokens) < 3 || len(tokens) > 4 {
		return BattalionMemberEntry{}, ExtractionError{
			Field: "roster row",
			Found: line,
			Err:   fmt.Errorf("expected 4 tokens, got %d", len(tokens)),
		}
	}

	id, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return BattalionMemberEntry{}, ExtractionError{Field: "member id", Found: line, Err: err}
	}
	nickname := html.UnescapeString(htmlutil.StripTags(tokens[2]))
	if nickname == "" {
		return BattalionMemberEntry{}, ExtractionError{
			Field: "member nickname",
			Found: line,
			Err:   fmt.Errorf("empty nickname"),
		}
	}

	member := BattalionMemberEntry{
		Nickname:    nickname,
		ID:          id,
		BattalionID: battalionID,
	}
	if len(tokens) == 4 {
		role := roleReplacer.Replace(tokens[3])
		role = strings.TrimSpace(htmlutil.StripTags(strings.TrimPrefix(role, ">")))
		if role != "" {
			role = html.UnescapeString(role)
			member.Role = &role
		}
	}
	return member, nil
}
