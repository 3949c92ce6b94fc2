package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang-stock-screener/internal/screener/repository"
)

var genericKeywords = map[string]struct{}{
	"stocks": {}, "stock": {}, "market": {}, "nse": {}, "shares": {}, "all": {},
}

// Resolution is the outcome of symbol resolution. All marks a market-wide
// scan and then Symbols holds the whole universe. Otherwise Symbols holds the
// matched symbols, and an empty list means nothing matched.
type Resolution struct {
	All     bool
	Symbols []string
}

// Empty reports whether a keyword search matched nothing.
func (r Resolution) Empty() bool {
	return !r.All && len(r.Symbols) == 0
}

// SymbolResolver maps query keywords to symbols of the dataset store.
type SymbolResolver interface {
	Resolve(ctx context.Context, keywords []string) (Resolution, error)
}

type symbolResolver struct {
	seriesRepo repository.SeriesRepository
}

// NewSymbolResolver creates a new symbol resolver.
func NewSymbolResolver(seriesRepo repository.SeriesRepository) SymbolResolver {
	return &symbolResolver{seriesRepo: seriesRepo}
}

func (r *symbolResolver) Resolve(ctx context.Context, keywords []string) (Resolution, error) {
	symbols, err := r.seriesRepo.ListSymbols(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to list symbols: %w", err)
	}

	meaningful := MeaningfulKeywords(keywords)
	if len(meaningful) == 0 {
		return Resolution{All: true, Symbols: symbols}, nil
	}

	seen := make(map[string]struct{})
	matched := []string{}
	for _, symbol := range symbols {
		lower := strings.ToLower(symbol)
		for _, kw := range meaningful {
			if !strings.Contains(lower, kw) {
				continue
			}
			if _, dup := seen[symbol]; !dup {
				seen[symbol] = struct{}{}
				matched = append(matched, symbol)
			}
			break
		}
	}
	sort.Strings(matched)
	return Resolution{Symbols: matched}, nil
}

// MeaningfulKeywords lower-cases keywords and drops words that mean the whole market.
func MeaningfulKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, generic := genericKeywords[kw]; generic {
			continue
		}
		out = append(out, kw)
	}
	return out
}
