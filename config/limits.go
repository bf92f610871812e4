package config

import "time"

// LimitsCfg bounds the entry table. Both limits are independent: the first
// one exceeded triggers eviction.
type LimitsCfg struct {
	// MaxEntries is the maximum number of cached files. Zero or negative
	// disables the count limit.
	MaxEntries int `yaml:"max_entries"`

	// MaxSizeMB is the maximum cumulative size of cached files in
	// megabytes, measured by source-file size on disk. Zero or negative
	// disables the size limit.
	MaxSizeMB float64 `yaml:"max_size_mb"`

	// MaxSizeBytes is derived from MaxSizeMB during initialization.
	// It is not read from YAML.
	MaxSizeBytes int64 // virtual: computed during init (bytes)
}

// MemoryCfg configures the process memory-pressure monitor.
type MemoryCfg struct {
	// MaxMemoryMB is the process resident-memory ceiling in megabytes.
	// Above 80% of it an interval-gated bulk cleanup runs; above 90% a
	// memory warning is emitted on every sample.
	MaxMemoryMB float64 `yaml:"max_memory_mb"`

	// CheckInterval is the minimum time between two pressure checks.
	CheckInterval time.Duration `yaml:"check_interval"`
}

func (cfg *MemoryCfg) Enabled() bool {
	return cfg != nil
}

// WatchCfg configures filesystem-change watching for cached folders.
type WatchCfg struct {
	// EventsPerSec caps how many change events per second are turned into
	// invalidations. Editors and copy tools produce event storms; the cap
	// keeps the event loop from stat-hammering the table.
	EventsPerSec int `yaml:"events_per_sec"`
}

func (cfg *WatchCfg) Enabled() bool {
	return cfg != nil
}

// TelemetryCfg configures the periodic stats log line.
type TelemetryCfg struct {
	Enabled  bool          `yaml:"stat_logs_enabled"`
	Interval time.Duration `yaml:"interval"`
}
