package help

import (
	"time"

	"github.com/BCDA-APS/mdacache/config"
)

func Cfg() *config.Cache {
	c := &config.Cache{
		Limits: config.LimitsCfg{
			MaxEntries: 100,
			MaxSizeMB:  500,
		},
		Memory: &config.MemoryCfg{
			MaxMemoryMB:   1000,
			CheckInterval: time.Minute,
		},
		Telemetry: config.TelemetryCfg{
			Enabled:  true,
			Interval: time.Second * 5,
		},
	}
	c.AdjustConfig()
	return c
}

func EvictionCfg() *config.Cache {
	c := Cfg()
	c.Limits = config.LimitsCfg{
		MaxEntries: 2,
		MaxSizeMB:  500,
	}
	// keep eviction deterministic: no sampled-memory predicate
	c.Memory = nil
	c.AdjustConfig()
	return c
}

func WatchCfg() *config.Cache {
	c := Cfg()
	c.Watch = &config.WatchCfg{EventsPerSec: 50}
	return c
}
