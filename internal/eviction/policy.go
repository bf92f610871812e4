// Package eviction holds the stateless eviction policy: which entry goes
// next, and whether eviction must run at all. All state lives in the entry
// table itself.
package eviction

import (
	"github.com/BCDA-APS/mdacache/internal/cache/model"
	"github.com/BCDA-APS/mdacache/internal/cache/table"
)

// PressureFactor is the fraction of the memory ceiling above which the put
// path treats the process as under memory pressure.
const PressureFactor = 0.9

// Limits are the capacity bounds the policy enforces. A zero or negative
// field disables that bound.
type Limits struct {
	MaxEntries   int
	MaxSizeBytes int64
	MaxMemoryMB  float64
}

// ShouldEvict reports whether one more eviction is required before an entry
// of incomingBytes may be inserted. The three predicates are independent;
// the first one that holds wins. sampledMB is the process resident memory
// sampled once by the caller (0 when sampling is unavailable, which disables
// the pressure predicate).
func ShouldEvict(entries int, sizeBytes, incomingBytes int64, lim Limits, sampledMB float64) bool {
	if lim.MaxEntries > 0 && entries >= lim.MaxEntries {
		return true
	}
	if lim.MaxSizeBytes > 0 && sizeBytes+incomingBytes > lim.MaxSizeBytes {
		return true
	}
	if lim.MaxMemoryMB > 0 && sampledMB > PressureFactor*lim.MaxMemoryMB {
		return true
	}
	return false
}

// OverLimits reports whether the table currently violates lim. Used after
// limits shrink at runtime, where the table only needs to fit the new bounds
// rather than make room for an incoming entry.
func OverLimits(entries int, sizeBytes int64, lim Limits) bool {
	if lim.MaxEntries > 0 && entries > lim.MaxEntries {
		return true
	}
	if lim.MaxSizeBytes > 0 && sizeBytes > lim.MaxSizeBytes {
		return true
	}
	return false
}

// SelectVictim returns the entry with the smallest access stamp, which by
// the table's recency invariant is its tail. Returns false on an empty
// table: the caller must treat that as "no progress possible" and stop.
func SelectVictim[V any](t *table.Table[V]) (*model.Entry[V], bool) {
	return t.PeekTail()
}
