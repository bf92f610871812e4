package telemetry

import "github.com/BCDA-APS/mdacache/internal/cache"

// deltaMetrics converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaMetrics(prev, cur cache.Metrics) cache.Metrics {
	return cache.Metrics{
		Hits:           delta(prev.Hits, cur.Hits),
		Misses:         delta(prev.Misses, cur.Misses),
		StaleHits:      delta(prev.StaleHits, cur.StaleHits),
		LoadErrors:     delta(prev.LoadErrors, cur.LoadErrors),
		EvictedItems:   delta(prev.EvictedItems, cur.EvictedItems),
		EvictedBytes:   delta(prev.EvictedBytes, cur.EvictedBytes),
		CacheFull:      delta(prev.CacheFull, cur.CacheFull),
		MemoryWarnings: delta(prev.MemoryWarnings, cur.MemoryWarnings),
	}
}

func delta(prev, cur int64) int64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
