package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/repository"
	"golang-stock-screener/pkg/logger"
	"golang-stock-screener/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// placeholderSymbols are dataset names that stand for the whole market.
var placeholderSymbols = map[string]struct{}{
	"STOCKS": {}, "ALL": {}, "MARKET": {}, "SHARES": {},
}

// Screener runs filters over the datasets of the resolved symbols.
type Screener interface {
	// Screen emits every surviving row per symbol for an explicit symbol set
	// and one latest row per symbol for a market-wide scan. Results follow
	// the order of resolution.Symbols.
	Screen(ctx context.Context, filters []dto.Filter, resolution Resolution, quarters *int) ([]dto.ScreenerResult, error)
}

type screener struct {
	seriesRepo repository.SeriesRepository
	workers    int
	logger     *logger.Logger
}

// NewScreener creates a new screener. workers bounds the concurrent symbol scan.
func NewScreener(seriesRepo repository.SeriesRepository, workers int, log *logger.Logger) Screener {
	if workers < 1 {
		workers = 1
	}
	return &screener{
		seriesRepo: seriesRepo,
		workers:    workers,
		logger:     log,
	}
}

func (s *screener) Screen(ctx context.Context, filters []dto.Filter, resolution Resolution, quarters *int) ([]dto.ScreenerResult, error) {
	mode := "detail"
	if resolution.All {
		mode = "scan"
	}
	start := time.Now()
	defer func() {
		screenDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	candidates := candidateSymbols(resolution.Symbols)
	perSymbol := make([][]dto.ScreenerResult, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, symbol := range candidates {
		i, symbol := i, symbol
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			series, err := s.seriesRepo.LoadSeries(gCtx, symbol)
			if err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				if !errors.Is(err, repository.ErrSeriesNotFound) {
					datasetReadErrorsTotal.Inc()
					s.logger.WarnContext(ctx, "Skipping unreadable dataset",
						logger.StringField("symbol", symbol),
						logger.ErrorField(fmt.Errorf("%w: %v", ErrDatasetRead, err)))
				}
				return nil
			}
			perSymbol[i] = ScreenSeries(series, filters, quarters, resolution.All)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := []dto.ScreenerResult{}
	for _, rows := range perSymbol {
		results = append(results, rows...)
	}
	s.logger.DebugContext(ctx, "Screening finished",
		logger.StringField("mode", mode),
		logger.IntField("candidates", len(candidates)),
		logger.IntField("results", len(results)))
	return results, nil
}

// candidateSymbols upper-cases and de-duplicates symbols and drops market placeholders.
func candidateSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		if _, placeholder := placeholderSymbols[symbol]; placeholder {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out
}

// ScreenSeries screens a single dataset. series is not modified.
func ScreenSeries(series *dto.Series, filters []dto.Filter, quarters *int, scan bool) []dto.ScreenerResult {
	if series == nil || len(series.Rows) == 0 {
		return nil
	}
	if quarters != nil && *quarters > 0 && series.HasDate {
		series = ResampleQuarterly(series, *quarters)
	}

	rows := ApplyFilters(series, filters)
	if len(rows) == 0 {
		return nil
	}

	if !scan {
		results := make([]dto.ScreenerResult, 0, len(rows))
		for _, row := range rows {
			results = append(results, newResult(series, row))
		}
		return results
	}

	latest := newResult(series, rows[len(rows)-1])
	if latest.Close == nil {
		latest.Close = dto.Float64Ptr(0)
	}
	if latest.Volume == nil {
		latest.Volume = dto.Float64Ptr(0)
	} else {
		latest.Volume = dto.Float64Ptr(math.Trunc(*latest.Volume))
	}
	if *latest.Close <= 0 {
		return nil
	}
	return []dto.ScreenerResult{latest}
}

func newResult(series *dto.Series, row dto.Row) dto.ScreenerResult {
	res := dto.NewScreenerResult(series.Symbol, series, row)
	if series.HasDate {
		res.Date = utils.FormatISODate(row.Date)
	}
	return res
}

// ApplyFilters returns the rows passing every filter. A filter on a field
// the series does not carry is skipped; a missing cell fails any filter.
func ApplyFilters(series *dto.Series, filters []dto.Filter) []dto.Row {
	active := make([]dto.Filter, 0, len(filters))
	for _, f := range filters {
		field, ok := dto.ParseField(string(f.Field))
		if !ok || !series.HasColumn(field) {
			continue
		}
		f.Field = field
		active = append(active, f)
	}

	rows := make([]dto.Row, 0, len(series.Rows))
	for _, row := range series.Rows {
		if rowMatches(row, active) {
			rows = append(rows, row)
		}
	}
	return rows
}

func rowMatches(row dto.Row, filters []dto.Filter) bool {
	for _, f := range filters {
		v, _ := row.Value(f.Field)
		if !v.Valid || !f.Operator.Compare(v.Float64, f.Value) {
			return false
		}
	}
	return true
}
