package cache

// Notifier receives cache lifecycle notifications. The desktop host connects
// these to its widget signals; every method must return quickly and must not
// call back into the cache.
type Notifier interface {
	OnHit(path string)
	OnMiss(path string)
	OnEviction(path string)
	OnCacheFull()
	OnMemoryWarning(memMB float64)
}

// NoopNotifier is the default Notifier: it drops everything.
type NoopNotifier struct{}

func (NoopNotifier) OnHit(path string)           {}
func (NoopNotifier) OnMiss(path string)          {}
func (NoopNotifier) OnEviction(path string)      {}
func (NoopNotifier) OnCacheFull()                {}
func (NoopNotifier) OnMemoryWarning(mem float64) {}
