package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-screener/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SeriesWarmer reloads cached datasets.
type SeriesWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// RefreshService periodically rebuilds the dataset cache so files added to
// the store become visible without a restart.
type RefreshService interface {
	Start(ctx context.Context)
	Refresh(ctx context.Context)
}

// NewRefreshService creates a refresh service running on the cron expression spec.
func NewRefreshService(warmer SeriesWarmer, spec string, logger *logger.Logger) (RefreshService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh cron %q: %w", spec, err)
	}
	return &refreshService{
		warmer:   warmer,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}, nil
}

type refreshService struct {
	warmer   SeriesWarmer
	schedule cron.Schedule
	logger   *logger.Logger
	now      func() time.Time
}

// Start warms the cache once and then on every scheduled tick until ctx is done.
func (s *refreshService) Start(ctx context.Context) {
	s.Refresh(ctx)
	for {
		next := s.schedule.Next(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Cache refresh stopping")
			return
		case <-timer.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh rebuilds the cache now.
func (s *refreshService) Refresh(ctx context.Context) {
	start := s.now()
	loaded, err := s.warmer.Warm(ctx)
	if err != nil {
		s.logger.Error("Failed to refresh series cache", logger.ErrorField(err))
		return
	}
	s.logger.Info("Series cache refreshed",
		logger.IntField("symbols", loaded),
		logger.Field("duration", time.Since(start)))
}
