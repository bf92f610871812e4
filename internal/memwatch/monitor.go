// Package memwatch samples process resident memory and drives bulk eviction
// when the process approaches its configured ceiling. Count/size limits are
// enforced elsewhere; this is the third, process-wide pressure signal.
package memwatch

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/BCDA-APS/mdacache/config"
)

const (
	// cleanupFactor is the fraction of the ceiling above which the
	// interval-gated bulk cleanup runs.
	cleanupFactor = 0.8
	// warningFactor is the fraction of the ceiling above which every
	// sample emits a memory warning.
	warningFactor = 0.9
)

type Monitor interface {
	// SampleMB returns current process resident memory in megabytes, or 0
	// when the sampling facility is unavailable (pressure-based eviction
	// degrades to a no-op; count and size limits still apply).
	SampleMB() float64

	// MaybeCleanup runs the interval-gated pressure check and, when it
	// fires, evicts roughly half of target's entries oldest-first.
	MaybeCleanup(target Shrinker)
}

// Shrinker is the slice of the cache the monitor drives during cleanup.
type Shrinker interface {
	Len() int
	EvictOldest(n int) int
}

type MemMonitor struct {
	cfg       *config.MemoryCfg
	logger    *slog.Logger
	clk       clock.Clock
	proc      *process.Process
	lastCheck time.Time
	warnFn    func(memMB float64)
	sampleFn  func() (float64, error)
}

// New returns a NoOp monitor when the memory section is disabled. warnFn is
// called with the sampled value whenever it exceeds 90% of the ceiling.
func New(cfg *config.MemoryCfg, logger *slog.Logger, clk clock.Clock, warnFn func(memMB float64)) Monitor {
	if !cfg.Enabled() {
		return NoOpMonitor{}
	}
	m := &MemMonitor{
		cfg:       cfg,
		logger:    logger,
		clk:       clk,
		lastCheck: clk.Now(),
		warnFn:    warnFn,
	}
	m.sampleFn = m.residentMB
	return m
}

func (m *MemMonitor) residentMB() (float64, error) {
	if m.proc == nil {
		proc, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return 0, err
		}
		m.proc = proc
	}
	info, err := m.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(info.RSS) / (1 << 20), nil
}

func (m *MemMonitor) SampleMB() float64 {
	memMB, err := m.sampleFn()
	if err != nil {
		return 0
	}
	if memMB > warningFactor*m.cfg.MaxMemoryMB && m.warnFn != nil {
		m.warnFn(memMB)
	}
	return memMB
}

func (m *MemMonitor) MaybeCleanup(target Shrinker) {
	if m.clk.Now().Sub(m.lastCheck) <= m.cfg.CheckInterval {
		return
	}
	memMB := m.SampleMB()
	if memMB <= cleanupFactor*m.cfg.MaxMemoryMB {
		// below the trigger: the check timestamp stays put so the next
		// call keeps sampling
		return
	}
	m.lastCheck = m.clk.Now()

	evicted := target.EvictOldest((target.Len() + 1) / 2)
	runtime.GC()

	m.logger.Info("memory pressure cleanup",
		"sampled_mb", memMB,
		"max_memory_mb", m.cfg.MaxMemoryMB,
		"evicted", evicted,
	)

	// post-cleanup sample re-runs the warning check
	m.SampleMB()
}
