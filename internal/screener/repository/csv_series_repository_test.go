package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCSVSeriesRepository(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "cleaned_TCS.csv", "date,close\n2021-01-01,100\n")
	writeCSV(t, dir, "cleaned_infy.csv", "date,close\n2021-01-01,50\n")
	writeCSV(t, dir, "readme.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cleaned_DIR.csv"), 0o755))

	repo := NewCSVSeriesRepository(dir, "cleaned_", ".csv", logger.NewNop())
	ctx := context.Background()

	symbols, err := repo.ListSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"INFY", "TCS"}, symbols)

	series, err := repo.LoadSeries(ctx, "INFY")
	require.NoError(t, err)
	require.Len(t, series.Rows, 1)
	assert.Equal(t, 50.0, series.Rows[0].Close.Float64)

	_, err = repo.LoadSeries(ctx, "WIPRO")
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}

func TestCSVSeriesRepository_MissingDir(t *testing.T) {
	repo := NewCSVSeriesRepository(filepath.Join(t.TempDir(), "nope"), "cleaned_", ".csv", logger.NewNop())

	symbols, err := repo.ListSymbols(context.Background())
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

type countingSeriesRepository struct {
	SeriesRepository
	loads int
	lists int
}

func (c *countingSeriesRepository) ListSymbols(ctx context.Context) ([]string, error) {
	c.lists++
	return c.SeriesRepository.ListSymbols(ctx)
}

func (c *countingSeriesRepository) LoadSeries(ctx context.Context, symbol string) (*dto.Series, error) {
	c.loads++
	return c.SeriesRepository.LoadSeries(ctx, symbol)
}

func TestCachedSeriesRepository(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "cleaned_TCS.csv", "date,close\n2021-01-01,100\n")
	writeCSV(t, dir, "cleaned_INFY.csv", "date,close\n2021-01-01,50\n")

	inner := &countingSeriesRepository{SeriesRepository: NewCSVSeriesRepository(dir, "cleaned_", ".csv", logger.NewNop())}
	repo := NewCachedSeriesRepository(inner, time.Minute, logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.LoadSeries(ctx, "TCS")
		require.NoError(t, err)
		_, err = repo.ListSymbols(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.loads)
	assert.Equal(t, 1, inner.lists)

	repo.Flush()
	_, err := repo.LoadSeries(ctx, "TCS")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.loads)

	loaded, err := repo.Warm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 4, inner.loads)

	_, err = repo.LoadSeries(ctx, "MISSING")
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}
