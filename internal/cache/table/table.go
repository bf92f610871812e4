// Package table implements the recency-ordered entry table. The host viewer
// calls the cache from its main sequential flow, so one coarse lock guards
// the index, the LRU list and the cumulative size scalar together: an entry
// is never counted in the size total without being present, or vice versa.
package table

import (
	"container/list"
	"sync"

	"github.com/BCDA-APS/mdacache/internal/cache/model"
)

type Table[V any] struct {
	mu    sync.RWMutex
	index map[uint64]*list.Element
	lru   *list.List // front = most recently used, back = eviction candidate
	size  int64      // cumulative source-file bytes of all entries
	seq   int64      // monotonic access stamp source
}

func New[V any]() *Table[V] {
	return &Table[V]{
		index: make(map[uint64]*list.Element),
		lru:   list.New(),
	}
}

// Get returns the entry for key without promoting it. A 64-bit slot occupied
// by a different 128-bit key is a hash collision and reads as a miss.
func (t *Table[V]) Get(key *model.Key) (*model.Entry[V], bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	el, ok := t.index[key.Value()]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*model.Entry[V])
	if !entry.Key().IsTheSame(key) {
		// hash collision
		return nil, false
	}
	return entry, true
}

// Touch promotes key to most-recently-used and advances its access stamp.
func (t *Table[V]) Touch(key *model.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if el, ok := t.index[key.Value()]; ok {
		t.lru.MoveToFront(el)
		t.seq++
		el.Value.(*model.Entry[V]).Touch(t.seq)
	}
}

// Put inserts entry as most-recently-used. A prior entry under the same slot
// is replaced and its size subtracted before the new size is added, so the
// table always holds at most one entry per key.
func (t *Table[V]) Put(entry *model.Entry[V]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if el, ok := t.index[entry.Key().Value()]; ok {
		t.size -= el.Value.(*model.Entry[V]).SizeBytes()
		t.lru.Remove(el)
		delete(t.index, entry.Key().Value())
	}

	t.seq++
	entry.Touch(t.seq)
	t.index[entry.Key().Value()] = t.lru.PushFront(entry)
	t.size += entry.SizeBytes()
}

// Remove deletes key and returns the freed bytes.
func (t *Table[V]) Remove(key *model.Key) (freed int64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	el, found := t.index[key.Value()]
	if !found {
		return 0, false
	}
	entry := el.Value.(*model.Entry[V])
	t.lru.Remove(el)
	delete(t.index, key.Value())
	t.size -= entry.SizeBytes()
	return entry.SizeBytes(), true
}

// PeekTail returns the least-recently-used entry without removing it.
func (t *Table[V]) PeekTail() (*model.Entry[V], bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	el := t.lru.Back()
	if el == nil {
		return nil, false
	}
	return el.Value.(*model.Entry[V]), true
}

// Walk applies fn front-to-back (most recent first) until fn returns false.
func (t *Table[V]) Walk(fn func(entry *model.Entry[V]) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for el := t.lru.Front(); el != nil; el = el.Next() {
		if !fn(el.Value.(*model.Entry[V])) {
			return
		}
	}
}

func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lru.Len()
}

func (t *Table[V]) SizeBytes() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

func (t *Table[V]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.index = make(map[uint64]*list.Element)
	t.lru.Init()
	t.size = 0
}
