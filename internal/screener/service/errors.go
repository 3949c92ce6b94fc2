package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQuery is returned when the request carries no query text.
	ErrEmptyQuery = errors.New("query is required")
	// ErrTranslationFailure covers every failure of the language model path:
	// transport errors, timeouts, non-JSON output and out-of-vocabulary values.
	ErrTranslationFailure = errors.New("could not understand query")
	// ErrNoResults means valid symbols were screened but nothing survived.
	ErrNoResults = errors.New("no stocks matched your criteria")
	// ErrDatasetRead marks a per-symbol dataset that could not be read. It is
	// logged and the symbol skipped; it never aborts a scan.
	ErrDatasetRead = errors.New("dataset read error")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NoSymbolsFoundError is returned when the query names companies and none
// of them resolves to a known symbol.
type NoSymbolsFoundError struct {
	Keywords []string
}

func (e *NoSymbolsFoundError) Error() string {
	return fmt.Sprintf("no symbols found for %s", strings.Join(e.Keywords, ", "))
}
