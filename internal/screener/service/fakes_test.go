package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/repository"

	"github.com/stretchr/testify/mock"
)

type fakeSeriesRepository struct {
	series map[string]*dto.Series
	errs   map[string]error
}

func newFakeSeriesRepository() *fakeSeriesRepository {
	return &fakeSeriesRepository{
		series: map[string]*dto.Series{},
		errs:   map[string]error{},
	}
}

func (f *fakeSeriesRepository) ListSymbols(ctx context.Context) ([]string, error) {
	symbols := make([]string, 0, len(f.series)+len(f.errs))
	for s := range f.series {
		symbols = append(symbols, s)
	}
	for s := range f.errs {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (f *fakeSeriesRepository) LoadSeries(ctx context.Context, symbol string) (*dto.Series, error) {
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	s, ok := f.series[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrSeriesNotFound, symbol)
	}
	return s, nil
}

type mockAIRepository struct {
	mock.Mock
}

func (m *mockAIRepository) GenerateText(ctx context.Context, prompt string, opts repository.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

type memoryTranslationCache struct {
	entries map[string]string
}

func (c *memoryTranslationCache) Get(ctx context.Context, query string) (string, bool, error) {
	v, ok := c.entries[repository.TranslationCacheKey(query)]
	return v, ok, nil
}

func (c *memoryTranslationCache) Set(ctx context.Context, query, translation string) error {
	c.entries[repository.TranslationCacheKey(query)] = translation
	return nil
}

type mockScreener struct {
	mock.Mock
}

func (m *mockScreener) Screen(ctx context.Context, filters []dto.Filter, resolution Resolution, quarters *int) ([]dto.ScreenerResult, error) {
	args := m.Called(ctx, filters, resolution, quarters)
	results, _ := args.Get(0).([]dto.ScreenerResult)
	return results, args.Error(1)
}

func num(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// priceSeries builds a dated series with open, high, low, close and volume.
func priceSeries(symbol string, rows ...dto.Row) *dto.Series {
	return &dto.Series{
		Symbol: symbol,
		Columns: map[dto.Field]bool{
			dto.FieldOpen:   true,
			dto.FieldHigh:   true,
			dto.FieldLow:    true,
			dto.FieldClose:  true,
			dto.FieldVolume: true,
		},
		HasDate: true,
		Rows:    rows,
	}
}

func priceRow(date time.Time, open, high, low, close, volume float64) dto.Row {
	return dto.Row{
		Date:   date,
		Open:   num(open),
		High:   num(high),
		Low:    num(low),
		Close:  num(close),
		Volume: num(volume),
	}
}

func symbolsOf(results []dto.ScreenerResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Symbol
	}
	return out
}
