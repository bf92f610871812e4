package config

import "time"

// Defaults match what the desktop viewer ships with.
const (
	DefaultMaxEntries    = 100
	DefaultMaxSizeMB     = 500.0
	DefaultMaxMemoryMB   = 1000.0
	DefaultCheckInterval = 60 * time.Second
	DefaultEventsPerSec  = 50
	DefaultLogsInterval  = 5 * time.Second
)

// Cache groups configuration of all cache subsystems.
// Optional components can be disabled by setting their section to nil.
type Cache struct {
	// Limits bound the entry table by count and cumulative source-file size.
	Limits LimitsCfg `yaml:"limits"`

	// Memory configures the process-wide memory-pressure monitor.
	// If nil, pressure-based bulk eviction is disabled and only the
	// count/size limits apply.
	Memory *MemoryCfg `yaml:"memory"`

	// Watch configures on-disk change watching for cached files.
	// If nil, entries are only revalidated lazily on access.
	Watch *WatchCfg `yaml:"watch"`

	// Telemetry configures periodic stats logging.
	Telemetry TelemetryCfg `yaml:"telemetry"`
}

// Default returns the configuration the viewer uses out of the box:
// 100 entries, 500 MB cumulative size, 1000 MB process memory ceiling
// checked every 60 seconds, no folder watching.
func Default() *Cache {
	cfg := &Cache{
		Limits: LimitsCfg{
			MaxEntries: DefaultMaxEntries,
			MaxSizeMB:  DefaultMaxSizeMB,
		},
		Memory: &MemoryCfg{
			MaxMemoryMB:   DefaultMaxMemoryMB,
			CheckInterval: DefaultCheckInterval,
		},
		Telemetry: TelemetryCfg{
			Interval: DefaultLogsInterval,
		},
	}
	cfg.AdjustConfig()
	return cfg
}
