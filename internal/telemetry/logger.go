package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/BCDA-APS/mdacache/config"
	"github.com/BCDA-APS/mdacache/internal/cache"
	"github.com/BCDA-APS/mdacache/internal/shared/bytes"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// StatsSource is the read-only slice of the cache the logger samples.
type StatsSource interface {
	CacheMetrics() cache.Metrics
	Stats() cache.Stats
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Cache
	logger   *slog.Logger
	source   StatsSource
	interval time.Duration
}

func New(ctx context.Context, cfg *config.Cache, logger *slog.Logger, source StatsSource) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		source:   source,
		interval: cfg.Telemetry.Interval,
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg != nil && l.cfg.Telemetry.Enabled {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	prev := l.source.CacheMetrics()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := l.source.CacheMetrics()
			d := deltaMetrics(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}

			l.logger.Info("data_cache",
				append(common,
					"hits", d.Hits,
					"misses", d.Misses,
					"stale", d.StaleHits,
					"load_errors", d.LoadErrors,
					"evicted_items", d.EvictedItems,
					"evicted_bytes", bytes.FmtMem(uint64(d.EvictedBytes)),
					"cache_full", d.CacheFull,
					"memory_warnings", d.MemoryWarnings,
				)...,
			)

			st := l.source.Stats()
			l.logger.Info("storage",
				append(common,
					"entries", st.EntryCount,
					"max_entries", st.MaxEntries,
					"size_mb", st.CurrentSizeMB,
					"max_size_mb", st.MaxSizeMB,
					"utilization_percent", st.UtilizationPercent,
				)...,
			)
		}
	}
}
