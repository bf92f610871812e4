package model

import (
	"path/filepath"
	"sync/atomic"
	"time"
)

// Entry is one cached file record. Everything except the access stamp is
// immutable after construction; the owning table advances the stamp on every
// hit to establish recency order.
type Entry[V any] struct {
	key       *Key
	path      string // canonical absolute path, the entry's identity
	folder    string
	fileName  string
	payload   V     // opaque parsed representation, never inspected here
	sizeBytes int64 // source file size on disk, not in-memory payload size
	modTime   time.Time
	touchedAt atomic.Int64
}

// NewEntry builds an entry for an already canonicalized path. sizeBytes and
// modTime must come from the source file itself, not from the loader.
func NewEntry[V any](path string, payload V, sizeBytes int64, modTime time.Time) *Entry[V] {
	return &Entry[V]{
		key:       NewKey(path),
		path:      path,
		folder:    filepath.Dir(path),
		fileName:  filepath.Base(path),
		payload:   payload,
		sizeBytes: sizeBytes,
		modTime:   modTime,
	}
}

func (e *Entry[V]) Key() *Key {
	if e == nil {
		return nil
	}
	return e.key
}

func (e *Entry[V]) Path() string     { return e.path }
func (e *Entry[V]) Folder() string   { return e.folder }
func (e *Entry[V]) FileName() string { return e.fileName }
func (e *Entry[V]) Payload() V       { return e.payload }

func (e *Entry[V]) SizeBytes() int64 { return e.sizeBytes }

func (e *Entry[V]) SizeMB() float64 {
	return float64(e.sizeBytes) / (1 << 20)
}

// ModTime is the source file's modification time captured at load.
func (e *Entry[V]) ModTime() time.Time { return e.modTime }

func (e *Entry[V]) TouchedAt() int64 {
	return e.touchedAt.Load()
}

// Touch advances the access stamp. It never moves backwards.
func (e *Entry[V]) Touch(at int64) {
	for {
		cur := e.touchedAt.Load()
		if at <= cur {
			return
		}
		if e.touchedAt.CompareAndSwap(cur, at) {
			return
		}
	}
}
