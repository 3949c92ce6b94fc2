package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"golang-stock-screener/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWarmer struct {
	calls atomic.Int32
}

func (w *countingWarmer) Warm(ctx context.Context) (int, error) {
	w.calls.Add(1)
	return 3, nil
}

func TestNewRefreshService_InvalidSpec(t *testing.T) {
	_, err := NewRefreshService(&countingWarmer{}, "every now and then", logger.NewNop())
	assert.Error(t, err)
}

func TestRefreshService_Start(t *testing.T) {
	warmer := &countingWarmer{}
	svc, err := NewRefreshService(warmer, "@every 1s", logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return warmer.calls.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh loop did not stop")
	}
}
