package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, in document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var tagRegex = regexp.MustCompile(`<.*?>`)

// StripTags removes anything that looks like a tag from serialized html,
// leaving text (and its newlines) untouched. Entities are not decoded.
func StripTags(rawHtml string) string {
	return tagRegex.ReplaceAllString(rawHtml, "")
}

// OuterHtml serializes the first node of sel including the node itself.
// An empty selection serializes to an empty string.
func OuterHtml(sel *goquery.Selection) (string, error) {
	if sel.Length() == 0 {
		return "", nil
	}
	return goquery.OuterHtml(sel.First())
}

// FirstLine returns the first line of text that is not blank, trimmed.
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText removes non-printable characters and collapses runs of whitespace.
func CleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}
