// Package watcher invalidates cached entries when their source files change
// on disk. It automates what the viewer's "refresh" action does by hand; the
// lazy mtime check on access remains the authority for correctness.
package watcher

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"go.uber.org/ratelimit"

	"github.com/BCDA-APS/mdacache/config"
	"github.com/BCDA-APS/mdacache/internal/shared/pathutil"
)

type FolderWatcher interface {
	WatchFolder(path string) error
	UnwatchFolder(path string) error
	Close() error
}

// Invalidator is the slice of the cache the watcher needs.
type Invalidator interface {
	InvalidateFile(path string) bool
}

// Watcher respects given ctx.
type Watcher struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fs      *fsnotify.Watcher
	cache   Invalidator
	limiter ratelimit.Limiter
}

func New(ctx context.Context, cfg *config.WatchCfg, cache Invalidator) (FolderWatcher, error) {
	if !cfg.Enabled() {
		return NoOpWatcher{}, nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create filesystem watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		ctx:     ctx,
		cancel:  cancel,
		fs:      fs,
		cache:   cache,
		limiter: ratelimit.New(cfg.EventsPerSec),
	}
	go w.loop()
	return w, nil
}

// WatchFolder starts watching a folder of scan files. Events under it are
// turned into per-file invalidations.
func (w *Watcher) WatchFolder(path string) error {
	return w.fs.Add(pathutil.Canon(path))
}

func (w *Watcher) UnwatchFolder(path string) error {
	return w.fs.Remove(pathutil.Canon(path))
}

func (w *Watcher) Close() error {
	w.cancel()
	return nil
}

func (w *Watcher) loop() {
	defer func() { _ = w.fs.Close() }()

	for {
		select {
		case <-w.ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// smooth out event storms from editors and bulk copies
			w.limiter.Take()
			if w.cache.InvalidateFile(ev.Name) {
				log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).
					Msg("changed on disk, cache entry invalidated")
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("filesystem watcher error")
		}
	}
}
