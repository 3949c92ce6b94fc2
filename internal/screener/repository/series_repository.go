package repository

import (
	"context"
	"errors"
	"strings"

	"golang-stock-screener/internal/screener/dto"
)

// ErrSeriesNotFound is returned when no dataset exists for a symbol.
var ErrSeriesNotFound = errors.New("series not found")

// SeriesRepository is the read side of the per-symbol dataset store.
type SeriesRepository interface {
	// ListSymbols returns every known symbol, upper-cased and sorted.
	ListSymbols(ctx context.Context) ([]string, error)
	// LoadSeries returns the dataset of symbol with rows in ascending date order.
	LoadSeries(ctx context.Context, symbol string) (*dto.Series, error)
}

// SymbolFromKey derives the canonical symbol from a storage key such as
// "cleaned_AXISBANK.csv". The second result is false when key does not carry
// the suffix or nothing is left after stripping.
func SymbolFromKey(key, prefix, suffix string) (string, bool) {
	if !strings.HasSuffix(key, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(key, suffix)
	name = strings.TrimPrefix(name, prefix)
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	return name, true
}

// KeyFromSymbol is the inverse of SymbolFromKey.
func KeyFromSymbol(symbol, prefix, suffix string) string {
	return prefix + strings.ToUpper(symbol) + suffix
}
