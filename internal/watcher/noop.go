package watcher

import "errors"

var ErrWatchingDisabled = errors.New("folder watching is not enabled")

// NoOpWatcher is a no-op implementation of FolderWatcher, used when the
// watch section of the configuration is disabled.
type NoOpWatcher struct{}

// WatchFolder reports that watching is disabled so callers don't assume
// change events will arrive.
func (NoOpWatcher) WatchFolder(path string) error {
	return ErrWatchingDisabled
}

// UnwatchFolder does nothing and returns nil.
func (NoOpWatcher) UnwatchFolder(path string) error {
	return nil
}

// Close does nothing and returns nil.
func (NoOpWatcher) Close() error {
	return nil
}
