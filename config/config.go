package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func (cfg *Cache) AdjustConfig() {
	if cfg.Limits.MaxSizeMB > 0 {
		cfg.Limits.MaxSizeBytes = int64(cfg.Limits.MaxSizeMB * float64(1<<20))
	} else {
		cfg.Limits.MaxSizeBytes = 0
	}

	if cfg.Memory.Enabled() && cfg.Memory.CheckInterval <= 0 {
		cfg.Memory.CheckInterval = DefaultCheckInterval
	}

	if cfg.Watch.Enabled() && cfg.Watch.EventsPerSec <= 0 {
		cfg.Watch.EventsPerSec = DefaultEventsPerSec
	}

	if cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = DefaultLogsInterval
	}
}

func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Cache
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	return cfg, nil
}
