package cache

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/BCDA-APS/mdacache/config"
	"github.com/BCDA-APS/mdacache/internal/cache/model"
	"github.com/BCDA-APS/mdacache/internal/cache/table"
	"github.com/BCDA-APS/mdacache/internal/eviction"
	"github.com/BCDA-APS/mdacache/internal/memwatch"
	"github.com/BCDA-APS/mdacache/internal/shared/bytes"
	"github.com/BCDA-APS/mdacache/internal/shared/pathutil"
	"github.com/BCDA-APS/mdacache/internal/staleness"
)

// Cacher is the public contract of the data cache. Any outcome other than a
// present, fresh entry reads as a miss; a miss is never an error condition.
type Cacher[V any] interface {
	Get(path string) (*model.Entry[V], bool)
	GetOrLoad(path string, load func(path string) (V, error)) (*model.Entry[V], error)
	Put(path string, payload V, sizeBytes int64, modTime time.Time)
	Remove(path string) bool
	InvalidateFile(path string) bool
	InvalidateFolder(folder string) int
	Clear()
	Stats() Stats
	SetMaxSizeMB(maxSizeMB float64)
	SetMaxEntries(maxEntries int)
	SetNotifier(n Notifier)
	Len() int
	SizeBytes() int64
	EvictOldest(n int) int
	CacheMetrics() Metrics
}

// Cache owns the entry table and drives the memory monitor, the eviction
// policy and the staleness checks. It is built for the viewer's
// single-threaded call flow; the table's coarse lock keeps the background
// folder watcher's invalidations safe.
type Cache[V any] struct {
	cfg      *config.Cache
	logger   *slog.Logger
	table    *table.Table[V]
	monitor  memwatch.Monitor
	counters *counters
	notifier Notifier
}

func New[V any](cfg *config.Cache, logger *slog.Logger) *Cache[V] {
	c := &Cache[V]{
		cfg:      cfg,
		logger:   logger,
		table:    table.New[V](),
		counters: newCounters(),
		notifier: NoopNotifier{},
	}
	c.monitor = memwatch.New(cfg.Memory, logger, clock.New(), c.memoryWarning)
	return c
}

// Get returns the entry for path if it is cached and still matches the
// on-disk file. A stale entry reads as a miss but stays in the table: the
// reload's Put overwrites it.
func (c *Cache[V]) Get(path string) (*model.Entry[V], bool) {
	c.monitor.MaybeCleanup(c)

	canon := pathutil.Canon(path)
	key := model.NewKey(canon)

	entry, ok := c.table.Get(key)
	if !ok {
		return nil, c.miss(canon)
	}
	if staleness.IsStale(entry.Path(), entry.ModTime()) {
		c.counters.staleHits.Add(1)
		return nil, c.miss(canon)
	}

	c.table.Touch(key)
	c.counters.hits.Add(1)
	c.notifier.OnHit(canon)
	return entry, true
}

// GetOrLoad returns cached valid data for path, or invokes load, caches the
// result and returns it. A failing load caches nothing.
func (c *Cache[V]) GetOrLoad(path string, load func(path string) (V, error)) (*model.Entry[V], error) {
	if entry, ok := c.Get(path); ok {
		return entry, nil
	}
	return c.loadAndCache(path, load)
}

// Put inserts or replaces the entry for path, evicting least-recently-used
// entries first until all capacity constraints hold. When eviction empties
// the table without making room, the entry is inserted anyway: the cache
// never refuses to hold the most recently requested file.
func (c *Cache[V]) Put(path string, payload V, sizeBytes int64, modTime time.Time) {
	c.monitor.MaybeCleanup(c)

	canon := pathutil.Canon(path)
	entry := model.NewEntry(canon, payload, sizeBytes, modTime)

	// replace-first so the prior entry's size never counts against the new one
	c.table.Remove(entry.Key())

	lim := c.limits()
	memMB := c.monitor.SampleMB()

	full := false
	for spins := c.table.Len() + 1; spins > 0; spins-- {
		if !eviction.ShouldEvict(c.table.Len(), c.table.SizeBytes(), sizeBytes, lim, memMB) {
			break
		}
		victim, ok := eviction.SelectVictim(c.table)
		if !ok {
			// no progress possible, insert over the limit
			full = true
			break
		}
		c.evict(victim)
	}

	c.table.Put(entry)

	if full {
		c.counters.cacheFull.Add(1)
		c.notifier.OnCacheFull()
		c.logger.Warn("cache full, entry inserted over limit",
			"path", canon,
			"size", bytes.FmtMem(uint64(sizeBytes)),
		)
	}
}

// Remove unconditionally drops the entry for path.
func (c *Cache[V]) Remove(path string) bool {
	_, ok := c.table.Remove(model.NewKey(pathutil.Canon(path)))
	return ok
}

// InvalidateFile is Remove under the name callers mean: the on-disk file
// changed and the cached row must not survive.
func (c *Cache[V]) InvalidateFile(path string) bool {
	return c.Remove(path)
}

// InvalidateFolder removes every entry whose resolved parent directory is
// folder and returns how many were removed. Entries in sibling folders that
// merely share a path prefix are untouched.
func (c *Cache[V]) InvalidateFolder(folder string) int {
	target := pathutil.Canon(folder)

	var victims []*model.Entry[V]
	c.table.Walk(func(entry *model.Entry[V]) bool {
		if entry.Folder() == target {
			victims = append(victims, entry)
		}
		return true
	})
	for _, entry := range victims {
		c.table.Remove(entry.Key())
	}
	return len(victims)
}

func (c *Cache[V]) Clear() {
	c.table.Clear()
}

func (c *Cache[V]) Stats() Stats {
	sizeMB := float64(c.table.SizeBytes()) / (1 << 20)
	stats := Stats{
		EntryCount:    c.table.Len(),
		CurrentSizeMB: sizeMB,
		MaxSizeMB:     c.cfg.Limits.MaxSizeMB,
		MaxEntries:    c.cfg.Limits.MaxEntries,
	}
	if c.cfg.Limits.MaxSizeMB > 0 {
		stats.UtilizationPercent = sizeMB / c.cfg.Limits.MaxSizeMB * 100
	}
	return stats
}

// SetMaxSizeMB mutates the size limit and immediately evicts until it holds.
func (c *Cache[V]) SetMaxSizeMB(maxSizeMB float64) {
	c.cfg.Limits.MaxSizeMB = maxSizeMB
	c.cfg.Limits.MaxSizeBytes = int64(maxSizeMB * float64(1<<20))
	c.evictUntilWithinLimits()
}

// SetMaxEntries mutates the count limit and immediately evicts until it holds.
func (c *Cache[V]) SetMaxEntries(maxEntries int) {
	c.cfg.Limits.MaxEntries = maxEntries
	c.evictUntilWithinLimits()
}

func (c *Cache[V]) SetNotifier(n Notifier) {
	if n == nil {
		n = NoopNotifier{}
	}
	c.notifier = n
}

func (c *Cache[V]) Len() int         { return c.table.Len() }
func (c *Cache[V]) SizeBytes() int64 { return c.table.SizeBytes() }

// EvictOldest removes up to n entries oldest-first. The memory monitor uses
// it for bulk pressure cleanup.
func (c *Cache[V]) EvictOldest(n int) int {
	evicted := 0
	for i := 0; i < n; i++ {
		victim, ok := eviction.SelectVictim(c.table)
		if !ok {
			break
		}
		c.evict(victim)
		evicted++
	}
	return evicted
}

func (c *Cache[V]) CacheMetrics() Metrics {
	return c.counters.snapshot()
}

/**
 * Private API.
 */

func (c *Cache[V]) loadAndCache(path string, load func(path string) (V, error)) (*model.Entry[V], error) {
	canon := pathutil.Canon(path)

	// size and mtime come from the file itself, never from the loader
	info, err := os.Stat(canon)
	if err != nil {
		c.counters.loadErrors.Add(1)
		return nil, fmt.Errorf("stat %s: %w", canon, err)
	}

	payload, err := load(canon)
	if err != nil {
		c.counters.loadErrors.Add(1)
		return nil, fmt.Errorf("load %s: %w", canon, err)
	}

	c.Put(canon, payload, info.Size(), info.ModTime())

	entry, _ := c.table.Get(model.NewKey(canon))
	return entry, nil
}

func (c *Cache[V]) evict(victim *model.Entry[V]) {
	if freed, ok := c.table.Remove(victim.Key()); ok {
		c.counters.evictedItems.Add(1)
		c.counters.evictedBytes.Add(freed)
		c.notifier.OnEviction(victim.Path())
	}
}

func (c *Cache[V]) evictUntilWithinLimits() {
	lim := c.limits()
	for spins := c.table.Len() + 1; spins > 0; spins-- {
		if !eviction.OverLimits(c.table.Len(), c.table.SizeBytes(), lim) {
			return
		}
		victim, ok := eviction.SelectVictim(c.table)
		if !ok {
			return
		}
		c.evict(victim)
	}
}

func (c *Cache[V]) limits() eviction.Limits {
	lim := eviction.Limits{
		MaxEntries:   c.cfg.Limits.MaxEntries,
		MaxSizeBytes: c.cfg.Limits.MaxSizeBytes,
	}
	if c.cfg.Memory.Enabled() {
		lim.MaxMemoryMB = c.cfg.Memory.MaxMemoryMB
	}
	return lim
}

func (c *Cache[V]) miss(path string) bool {
	c.counters.misses.Add(1)
	c.notifier.OnMiss(path)
	return false
}

func (c *Cache[V]) memoryWarning(memMB float64) {
	c.counters.memoryWarnings.Add(1)
	c.notifier.OnMemoryWarning(memMB)
	c.logger.Warn("process memory above warning threshold",
		"sampled_mb", memMB,
		"max_memory_mb", c.cfg.Memory.MaxMemoryMB,
	)
}
