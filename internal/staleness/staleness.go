// Package staleness decides whether a cached entry still matches the on-disk
// file it was parsed from.
package staleness

import (
	"os"
	"time"
)

// IsStale reports whether the file at path changed since sourceMtime was
// recorded. A missing or unreadable file counts as stale so the caller
// re-attempts the load instead of serving possibly-wrong cached data.
// Equal or earlier modification times are fresh: same-second edits and clock
// skew are tolerated by equality, a deliberate bias toward cache hits over
// false invalidation.
func IsStale(path string, sourceMtime time.Time) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return info.ModTime().After(sourceMtime)
}
