package memwatch

// NoOpMonitor is a no-op implementation of Monitor, used when the memory
// section of the configuration is disabled.
type NoOpMonitor struct{}

// SampleMB always returns zero, which disables the pressure predicate.
func (NoOpMonitor) SampleMB() float64 {
	return 0
}

// MaybeCleanup does nothing.
func (NoOpMonitor) MaybeCleanup(target Shrinker) {}
