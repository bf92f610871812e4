package telemetry

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BCDA-APS/mdacache/config"
	"github.com/BCDA-APS/mdacache/internal/cache"
)

func TestDeltaMetrics(t *testing.T) {
	prev := cache.Metrics{Hits: 10, Misses: 4, EvictedBytes: 1 << 20}
	cur := cache.Metrics{Hits: 25, Misses: 4, EvictedBytes: 3 << 20, StaleHits: 2}

	d := deltaMetrics(prev, cur)

	require.Equal(t, int64(15), d.Hits)
	require.Equal(t, int64(0), d.Misses)
	require.Equal(t, int64(2<<20), d.EvictedBytes)
	require.Equal(t, int64(2), d.StaleHits)
}

func TestDeltaMetrics_ResetGuard(t *testing.T) {
	prev := cache.Metrics{Hits: 100}
	cur := cache.Metrics{Hits: 7}

	require.Equal(t, int64(7), deltaMetrics(prev, cur).Hits)
}

type staticSource struct{}

func (staticSource) CacheMetrics() cache.Metrics { return cache.Metrics{} }
func (staticSource) Stats() cache.Stats          { return cache.Stats{} }

func TestLogs_DisabledNeverTicks(t *testing.T) {
	cfg := &config.Cache{Telemetry: config.TelemetryCfg{Enabled: false, Interval: time.Millisecond}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	l := New(context.Background(), cfg, logger, staticSource{})
	defer func() { _ = l.Close() }()

	require.Equal(t, time.Millisecond, l.Interval())
}

func TestLogs_CloseStopsLoop(t *testing.T) {
	cfg := &config.Cache{Telemetry: config.TelemetryCfg{Enabled: true, Interval: 10 * time.Millisecond}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	l := New(context.Background(), cfg, logger, staticSource{})
	time.Sleep(25 * time.Millisecond)
	require.NoError(t, l.Close())
}
