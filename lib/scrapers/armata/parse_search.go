package armata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// codes in the "error" field of the search response
const (
	searchOk         = 0
	searchTooShort   = 1
	searchNoMatching = 2
)

type searchResponse struct {
	Error int             `json:"error"`
	Data  json.RawMessage `json:"data"`
}

// SearchResults maps the json returned by the battalion search endpoint to
// entries, in the order the site returned them.
func (p Parser) SearchResults(body string, query string) ([]BattalionSearchResultEntry, error) {
	var res searchResponse
	err := json.Unmarshal([]byte(body), &res)
	if err != nil {
		err = ExtractionError{Field: "search response", Found: body, Err: err}
		p.tel.ReportBroken(report_parser_search_results, err, query)
		return nil, err
	}

	switch res.Error {
	case searchOk:
	case searchTooShort:
		err := TooShortQueryError{Length: utf8.RuneCountInString(query)}
		p.tel.ReportWarning(report_parser_search_results, err)
		return nil, err
	case searchNoMatching:
		err := BattalionNotFoundByNameError{Name: query}
		p.tel.ReportWarning(report_parser_search_results, err)
		return nil, err
	default:
		err := ExtractionError{
			Field: "search response",
			Found: body,
			Err:   fmt.Errorf("unknown error code %d", res.Error),
		}
		p.tel.ReportBroken(report_parser_search_results, err, query)
		return nil, err
	}

	entries, err := decodeSearchData(res.Data)
	if err != nil {
		err = ExtractionError{Field: "search results", Found: string(res.Data), Err: err}
		p.tel.ReportBroken(report_parser_search_results, err, query)
		return nil, err
	}
	return entries, nil
}

// decodeSearchData reads an {"<id>": "<full name>"} object token by token
// so the order of the results is kept.
func decodeSearchData(data json.RawMessage) ([]BattalionSearchResultEntry, error) {
	entries := []BattalionSearchResultEntry{}

	trimmed := bytes.TrimSpace(data)
	// an empty result set is serialized as a list
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return entries, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a key, got %v", tok)
		}
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, err
		}

		var name string
		err = dec.Decode(&name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, BattalionSearchResultEntry{FullName: name, ID: id})
	}

	_, err = dec.Token()
	if err != nil && err != io.EOF {
		return nil, err
	}
	return entries, nil
}
