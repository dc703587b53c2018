package armata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/assert"
	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/telemetry"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/htmlutil"
)

const (
	report_parser_player_statistics = "parser.player-statistics"
	report_parser_battalion_roster  = "parser.battalion-roster"
	report_parser_search_results    = "parser.search-results"
)

// Parser turns pages served by the statistics site into records. It holds
// no state besides telemetry and is safe for concurrent use.
type Parser struct {
	tel telemetry.API
}

func NewParser(tel telemetry.API) Parser {
	assert.NotNil(tel, "tel")
	return Parser{tel: tel}
}

func newDocument(field, page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, ExtractionError{Field: field, Err: err}
	}
	return doc, nil
}

// notices are the elements the site uses to display soft errors: every <p>
// on the page, or every <div> if there are none.
func notices(doc *goquery.Document) *goquery.Selection {
	sel := doc.Find("p")
	if sel.Length() == 0 {
		sel = doc.Find("div")
	}
	return sel
}

func classifyPlayerPage(doc *goquery.Document) (pageKind, error) {
	sel := notices(doc)
	if sel.Length() == 0 {
		return pageValid, missing("notices")
	}
	first, err := htmlutil.OuterHtml(sel.First())
	if err != nil {
		return pageValid, ExtractionError{Field: "notices", Err: err}
	}
	for _, notice := range playerNotices {
		if notice.html == first {
			return notice.kind, nil
		}
	}
	return pageValid, nil
}

func classifyBattalionPage(page string, doc *goquery.Document) (pageKind, error) {
	if page == battalionNotFoundPayload {
		return pageBattalionNotFound, nil
	}
	sel := notices(doc)
	if sel.Length() < 2 {
		return pageValid, ExtractionError{
			Field: "notices",
			Err:   errTooFewNotices,
		}
	}
	second, err := htmlutil.OuterHtml(sel.Eq(1))
	if err != nil {
		return pageValid, ExtractionError{Field: "notices", Err: err}
	}
	if second == battalionNotAuthenticatedNotice {
		return pageNotAuthenticated, nil
	}
	return pageValid, nil
}

// dropRunes removes the first n runes of s, it is used to cut off the
// fixed width labels ("ср.") the site puts in front of averages.
func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
