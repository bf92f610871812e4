package cache

// Stats is a read-only snapshot of the table for diagnostics display.
// Taking it has no side effects.
type Stats struct {
	EntryCount         int
	CurrentSizeMB      float64
	MaxSizeMB          float64
	MaxEntries         int
	UtilizationPercent float64
}
