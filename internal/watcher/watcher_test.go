package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BCDA-APS/mdacache/config"
	"github.com/BCDA-APS/mdacache/internal/shared/pathutil"
)

type recordingInvalidator struct {
	mu  sync.Mutex
	got []string
}

func (r *recordingInvalidator) InvalidateFile(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, path)
	return true
}

func (r *recordingInvalidator) has(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.got {
		if p == path {
			return true
		}
	}
	return false
}

func TestWatcher_FileChangeInvalidates(t *testing.T) {
	dir := t.TempDir()
	rec := &recordingInvalidator{}

	w, err := New(context.Background(), &config.WatchCfg{EventsPerSec: 50}, rec)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, w.WatchFolder(dir))

	file := filepath.Join(pathutil.Canon(dir), "run_0001.mda")
	require.NoError(t, os.WriteFile(file, []byte("scan"), 0o644))

	require.Eventually(t, func() bool { return rec.has(file) }, 3*time.Second, 10*time.Millisecond)
}

func TestWatcher_RemoveInvalidates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(pathutil.Canon(dir), "run_0001.mda")
	require.NoError(t, os.WriteFile(file, []byte("scan"), 0o644))

	rec := &recordingInvalidator{}
	w, err := New(context.Background(), &config.WatchCfg{EventsPerSec: 50}, rec)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, w.WatchFolder(dir))
	require.NoError(t, os.Remove(file))

	require.Eventually(t, func() bool { return rec.has(file) }, 3*time.Second, 10*time.Millisecond)
}

func TestWatcher_UnwatchStopsEvents(t *testing.T) {
	dir := t.TempDir()
	rec := &recordingInvalidator{}

	w, err := New(context.Background(), &config.WatchCfg{EventsPerSec: 50}, rec)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, w.WatchFolder(dir))
	require.NoError(t, w.UnwatchFolder(dir))

	file := filepath.Join(pathutil.Canon(dir), "run_0001.mda")
	require.NoError(t, os.WriteFile(file, []byte("scan"), 0o644))

	time.Sleep(200 * time.Millisecond)
	require.False(t, rec.has(file))
}

func TestWatcher_DisabledSection(t *testing.T) {
	w, err := New(context.Background(), nil, &recordingInvalidator{})
	require.NoError(t, err)

	require.ErrorIs(t, w.WatchFolder(t.TempDir()), ErrWatchingDisabled)
	require.NoError(t, w.UnwatchFolder(t.TempDir()))
	require.NoError(t, w.Close())
}
