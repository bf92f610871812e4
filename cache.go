package mdacache

import (
	"context"
	"io"
	"log/slog"

	"github.com/BCDA-APS/mdacache/config"
	"github.com/BCDA-APS/mdacache/internal/cache"
	"github.com/BCDA-APS/mdacache/internal/telemetry"
	"github.com/BCDA-APS/mdacache/internal/watcher"
)

// Loader parses one scan file into its payload representation. The cache
// treats the result as opaque and reads the file's size and modification
// time itself.
type Loader[V any] func(path string) (V, error)

type MDACache[V any] interface {
	cache.Cacher[V]
	watcher.FolderWatcher
	telemetry.Logger
	io.Closer
}

type Cache[V any] struct {
	cache.Cacher[V]
	watcher.FolderWatcher
	telemetry.Logger
	cls context.CancelFunc
}

// New builds a fully wired cache. The returned handle is meant to be owned
// by the application's top-level context and passed to every consumer that
// needs it; there is no process-wide instance.
func New[V any](ctx context.Context, cfg *config.Cache, logger *slog.Logger) (*Cache[V], error) {
	ctx, cancel := context.WithCancel(ctx)
	cfg.AdjustConfig()

	cacher := cache.New[V](cfg, logger)
	watch, err := watcher.New(ctx, cfg.Watch, cacher)
	if err != nil {
		cancel()
		return nil, err
	}
	telemeter := telemetry.New(ctx, cfg, logger, cacher)

	return &Cache[V]{cls: cancel, Cacher: cacher, FolderWatcher: watch, Logger: telemeter}, nil
}

func (c *Cache[V]) Close() error {
	c.cls()
	return nil
}
