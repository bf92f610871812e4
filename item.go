package mdacache

import (
	"time"

	"github.com/BCDA-APS/mdacache/internal/cache"
)

// CachedFile is the read view of one cached entry, satisfied by the values
// Get and GetOrLoad return.
type CachedFile[V any] interface {
	Path() string
	Folder() string
	FileName() string
	Payload() V
	SizeBytes() int64
	SizeMB() float64
	ModTime() time.Time
	TouchedAt() int64
}

// Stats re-exports the diagnostics snapshot for UI consumers.
type Stats = cache.Stats

// Metrics re-exports the cumulative counter snapshot.
type Metrics = cache.Metrics

// Notifier re-exports the notification surface: the host wires its widget
// signals (hit, miss, eviction, cache-full, memory-warning) through it.
type Notifier = cache.Notifier
