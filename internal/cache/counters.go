package cache

import "sync/atomic"

// Metrics is a cumulative snapshot of the cache counters.
type Metrics struct {
	Hits           int64
	Misses         int64
	StaleHits      int64
	LoadErrors     int64
	EvictedItems   int64
	EvictedBytes   int64
	CacheFull      int64
	MemoryWarnings int64
}

type counters struct {
	hits           atomic.Int64
	misses         atomic.Int64
	staleHits      atomic.Int64
	loadErrors     atomic.Int64
	evictedItems   atomic.Int64
	evictedBytes   atomic.Int64
	cacheFull      atomic.Int64
	memoryWarnings atomic.Int64
}

func newCounters() *counters {
	return &counters{}
}

func (c *counters) snapshot() Metrics {
	return Metrics{
		Hits:           c.hits.Load(),
		Misses:         c.misses.Load(),
		StaleHits:      c.staleHits.Load(),
		LoadErrors:     c.loadErrors.Load(),
		EvictedItems:   c.evictedItems.Load(),
		EvictedBytes:   c.evictedBytes.Load(),
		CacheFull:      c.cacheFull.Load(),
		MemoryWarnings: c.memoryWarnings.Load(),
	}
}
