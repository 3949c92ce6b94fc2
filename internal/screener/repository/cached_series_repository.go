package repository

import (
	"context"
	"time"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/pkg/common"
	"golang-stock-screener/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

// CachedSeriesRepository keeps parsed datasets in memory for ttl. Cached
// series are shared between requests and must be treated as read-only.
type CachedSeriesRepository struct {
	next  SeriesRepository
	cache *gocache.Cache
	log   *logger.Logger
}

// NewCachedSeriesRepository wraps next with an in-process TTL cache.
func NewCachedSeriesRepository(next SeriesRepository, ttl time.Duration, log *logger.Logger) *CachedSeriesRepository {
	return &CachedSeriesRepository{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
		log:   log,
	}
}

func (r *CachedSeriesRepository) ListSymbols(ctx context.Context) ([]string, error) {
	if v, ok := r.cache.Get(common.CacheKeySymbols); ok {
		return append([]string(nil), v.([]string)...), nil
	}
	symbols, err := r.next.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(common.CacheKeySymbols, symbols)
	return append([]string(nil), symbols...), nil
}

func (r *CachedSeriesRepository) LoadSeries(ctx context.Context, symbol string) (*dto.Series, error) {
	key := common.CacheKeySeriesPrefix + symbol
	if v, ok := r.cache.Get(key); ok {
		return v.(*dto.Series), nil
	}
	series, err := r.next.LoadSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, series)
	return series, nil
}

// Flush drops every cached entry so the next request reads the store again.
func (r *CachedSeriesRepository) Flush() {
	r.cache.Flush()
}

// Warm flushes the cache and preloads every dataset. Failures are logged
// per symbol and do not stop the warm-up.
func (r *CachedSeriesRepository) Warm(ctx context.Context) (int, error) {
	r.Flush()
	symbols, err := r.ListSymbols(ctx)
	if err != nil {
		return 0, err
	}
	loaded := 0
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return loaded, ctx.Err()
		}
		if _, err := r.LoadSeries(ctx, symbol); err != nil {
			r.log.Warn("Failed to warm series cache", logger.StringField("symbol", symbol), logger.ErrorField(err))
			continue
		}
		loaded++
	}
	return loaded, nil
}
