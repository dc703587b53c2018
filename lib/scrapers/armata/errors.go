package armata

import (
	"errors"
	"fmt"

	"github.com/lookandhate/ArmoredWarfareAPI/lib/htmlutil"
)

// ErrNotAuthenticated means the session cookies were missing or expired.
var ErrNotAuthenticated = errors.New("armata: not authenticated")

type BadHTTPStatusError struct {
	Code int
}

func (e BadHTTPStatusError) Error() string {
	return fmt.Sprintf("armata: got non 200 status code: %d", e.Code)
}

type PlayerNotFoundError struct {
	Nickname string
}

func (e PlayerNotFoundError) Error() string {
	return fmt.Sprintf("armata: player '%s' was not found", e.Nickname)
}

type StatisticsClosedError struct {
	Nickname string
}

func (e StatisticsClosedError) Error() string {
	return fmt.Sprintf("armata: player '%s' has closed their statistics", e.Nickname)
}

type BattalionNotFoundError struct {
	ID int64
}

func (e BattalionNotFoundError) Error() string {
	return fmt.Sprintf("armata: battalion %d was not found", e.ID)
}

// TooShortQueryError is returned by battalion search when the query is
// shorter than the site allows (4 characters at the time of writing).
type TooShortQueryError struct {
	Length int
}

func (e TooShortQueryError) Error() string {
	return fmt.Sprintf("armata: battalion search query is too short (%d characters)", e.Length)
}

type BattalionNotFoundByNameError struct {
	Name string
}

func (e BattalionNotFoundByNameError) Error() string {
	return fmt.Sprintf("armata: no battalion matches '%s'", e.Name)
}

// ExtractionError means the page did not have the expected shape, usually
// because the site changed its markup.
type ExtractionError struct {
	// Field is the value that was being extracted.
	Field string
	// Found is the offending text, it may be empty if a container was missing.
	// Error() prints it with whitespace collapsed.
	Found string
	Err   error
}

func (e ExtractionError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("armata: extract %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("armata: extract %s from '%s': %v", e.Field, htmlutil.CleanText(e.Found), e.Err)
}

func (e ExtractionError) Unwrap() error {
	return e.Err
}

var errMissingContainer = errors.New("container not found")

func missing(field string) error {
	return ExtractionError{Field: field, Err: errMissingContainer}
}

var errTooFewNotices = errors.New("expected at least 2 notices")
