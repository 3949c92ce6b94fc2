package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/pkg/logger"
)

// csvSeriesRepository serves datasets from a directory of CSV files named
// <prefix><SYMBOL><suffix>.
type csvSeriesRepository struct {
	dir    string
	prefix string
	suffix string
	log    *logger.Logger
}

// NewCSVSeriesRepository creates a SeriesRepository over dir.
func NewCSVSeriesRepository(dir, prefix, suffix string, log *logger.Logger) SeriesRepository {
	return &csvSeriesRepository{
		dir:    dir,
		prefix: prefix,
		suffix: suffix,
		log:    log,
	}
}

func (r *csvSeriesRepository) ListSymbols(ctx context.Context) ([]string, error) {
	files, err := r.index()
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(files))
	for symbol := range files {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (r *csvSeriesRepository) LoadSeries(ctx context.Context, symbol string) (*dto.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := r.index()
	if err != nil {
		return nil, err
	}
	name, ok := files[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, symbol)
	}

	f, err := os.Open(filepath.Join(r.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	series, err := ParseSeries(symbol, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	r.log.DebugContext(ctx, "Loaded series from csv",
		logger.StringField("symbol", symbol),
		logger.StringField("file", name),
		logger.IntField("rows", len(series.Rows)))
	return series, nil
}

// index maps symbol to file name. A missing directory is an empty universe.
func (r *csvSeriesRepository) index() (map[string]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", r.dir, err)
	}

	files := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		symbol, ok := SymbolFromKey(entry.Name(), r.prefix, r.suffix)
		if !ok {
			continue
		}
		if _, dup := files[symbol]; dup {
			r.log.Warn("Duplicate dataset for symbol, keeping first",
				logger.StringField("symbol", symbol),
				logger.StringField("file", entry.Name()))
			continue
		}
		files[symbol] = entry.Name()
	}
	return files, nil
}
