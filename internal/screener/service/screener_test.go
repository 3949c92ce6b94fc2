package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterSeries() *dto.Series {
	return priceSeries("INFY",
		priceRow(day(2023, time.January, 2), 1, 1, 1, 50, 500),
		priceRow(day(2023, time.January, 3), 1, 1, 1, 150, 500),
		priceRow(day(2023, time.January, 4), 1, 1, 1, 150, 5000),
		priceRow(day(2023, time.January, 5), 1, 1, 1, 101, 999),
		dto.Row{Date: day(2023, time.January, 6), Close: num(200)},
	)
}

func TestApplyFilters_Conjunction(t *testing.T) {
	closeAbove := dto.Filter{Field: dto.FieldClose, Operator: dto.OpGreater, Value: 100}
	volumeBelow := dto.Filter{Field: dto.FieldVolume, Operator: dto.OpLess, Value: 1000}

	series := filterSeries()
	forward := ApplyFilters(series, []dto.Filter{closeAbove, volumeBelow})
	backward := ApplyFilters(series, []dto.Filter{volumeBelow, closeAbove})

	require.Len(t, forward, 2)
	assert.Equal(t, forward, backward)
	for _, row := range forward {
		assert.Greater(t, row.Close.Float64, 100.0)
		assert.Less(t, row.Volume.Float64, 1000.0)
	}
}

func TestApplyFilters_UnknownAndAbsentFieldsAreSkipped(t *testing.T) {
	series := filterSeries()
	filters := []dto.Filter{
		{Field: "pe_ratio", Operator: dto.OpLess, Value: 1},
		{Field: dto.FieldTurnover, Operator: dto.OpGreater, Value: 1e12},
	}
	assert.Len(t, ApplyFilters(series, filters), len(series.Rows))
}

func TestApplyFilters_MissingValueFails(t *testing.T) {
	rows := ApplyFilters(filterSeries(), []dto.Filter{{Field: dto.FieldVolume, Operator: dto.OpGreaterEqual, Value: 0}})
	assert.Len(t, rows, 4)
}

func TestScreenSeries_DetailModeEmitsEveryRow(t *testing.T) {
	results := ScreenSeries(filterSeries(), nil, nil, false)

	require.Len(t, results, 5)
	assert.Equal(t, "2023-01-02", results[0].Date)
	assert.Equal(t, "INFY", results[0].Symbol)
	assert.Nil(t, results[4].Volume, "missing values stay missing")
}

func TestScreenSeries_ScanModeEmitsLatest(t *testing.T) {
	results := ScreenSeries(filterSeries(), nil, nil, true)

	require.Len(t, results, 1)
	assert.Equal(t, "2023-01-06", results[0].Date)
	assert.Equal(t, 200.0, *results[0].Close)
	require.NotNil(t, results[0].Volume)
	assert.Equal(t, 0.0, *results[0].Volume)
}

func TestScreenSeries_ScanModeDropsZeroClose(t *testing.T) {
	zero := priceSeries("DEAD",
		priceRow(day(2023, time.January, 2), 1, 1, 1, 10, 5),
		priceRow(day(2023, time.January, 3), 1, 1, 1, 0, 5),
	)
	missing := priceSeries("GONE",
		priceRow(day(2023, time.January, 2), 1, 1, 1, 10, 5),
		dto.Row{Date: day(2023, time.January, 3), Volume: num(5)},
	)
	passAll := []dto.Filter{{Field: dto.FieldVolume, Operator: dto.OpGreater, Value: 1}}

	assert.Empty(t, ScreenSeries(zero, passAll, nil, true))
	assert.Empty(t, ScreenSeries(missing, passAll, nil, true))
	assert.Len(t, ScreenSeries(zero, passAll, nil, false), 2)
}

func TestScreenSeries_Quarters(t *testing.T) {
	results := ScreenSeries(dailyQuarter("INFY"), nil, dto.IntPtr(1), false)
	require.Len(t, results, 1)
	assert.Equal(t, "2023-06-30", results[0].Date)
	assert.Nil(t, results[0].VWAP)
}

func TestScreenSeries_NoDateColumn(t *testing.T) {
	series := &dto.Series{
		Symbol:  "NODATE",
		Columns: map[dto.Field]bool{dto.FieldClose: true},
		Rows:    []dto.Row{{Close: num(3)}, {Close: num(4)}},
	}
	results := ScreenSeries(series, nil, dto.IntPtr(2), true)
	require.Len(t, results, 1)
	assert.Equal(t, 4.0, *results[0].Close)
	assert.Empty(t, results[0].Date)
}

func TestScreener_Screen(t *testing.T) {
	repo := newFakeSeriesRepository()
	repo.series["A"] = priceSeries("A", priceRow(day(2023, time.January, 2), 1, 1, 1, 500, 10))
	repo.series["B"] = priceSeries("B", priceRow(day(2023, time.January, 2), 1, 1, 1, 300, 10))
	repo.series["EMPTY"] = priceSeries("EMPTY")
	repo.series["ALL"] = priceSeries("ALL", priceRow(day(2023, time.January, 2), 1, 1, 1, 900, 10))
	repo.errs["BROKEN"] = errors.New("bad csv")

	screener := NewScreener(repo, 2, logger.NewNop())
	resolution := Resolution{All: true, Symbols: []string{"B", "BROKEN", "ALL", "EMPTY", "MISSING", "A"}}

	results, err := screener.Screen(context.Background(), nil, resolution, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, symbolsOf(results))
}

func TestScreener_Cancelled(t *testing.T) {
	repo := newFakeSeriesRepository()
	repo.series["A"] = priceSeries("A", priceRow(day(2023, time.January, 2), 1, 1, 1, 500, 10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScreener(repo, 1, logger.NewNop()).Screen(ctx, nil, Resolution{All: true, Symbols: []string{"A"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
