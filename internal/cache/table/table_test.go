package table

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BCDA-APS/mdacache/internal/cache/model"
)

func entry(path string, size int64) *model.Entry[string] {
	return model.NewEntry(path, "payload", size, time.Now())
}

// TestTable_PutGet stores and retrieves by key.
func TestTable_PutGet(t *testing.T) {
	tbl := New[string]()
	tbl.Put(entry("/data/a.mda", 100))

	got, ok := tbl.Get(model.NewKey("/data/a.mda"))
	require.True(t, ok)
	require.Equal(t, "/data/a.mda", got.Path())
	require.Equal(t, 1, tbl.Len())
	require.Equal(t, int64(100), tbl.SizeBytes())

	_, ok = tbl.Get(model.NewKey("/data/missing.mda"))
	require.False(t, ok)
}

// TestTable_ReplaceSubtractsOldSize keeps exactly one entry per key and
// accounts only the latest size.
func TestTable_ReplaceSubtractsOldSize(t *testing.T) {
	tbl := New[string]()
	tbl.Put(entry("/data/a.mda", 100))
	tbl.Put(entry("/data/a.mda", 250))

	require.Equal(t, 1, tbl.Len())
	require.Equal(t, int64(250), tbl.SizeBytes())
}

// TestTable_TouchPromotes moves a touched entry away from the tail.
func TestTable_TouchPromotes(t *testing.T) {
	tbl := New[string]()
	tbl.Put(entry("/data/a.mda", 1))
	tbl.Put(entry("/data/b.mda", 1))
	tbl.Put(entry("/data/c.mda", 1))

	tail, ok := tbl.PeekTail()
	require.True(t, ok)
	require.Equal(t, "/data/a.mda", tail.Path())

	tbl.Touch(model.NewKey("/data/a.mda"))

	tail, ok = tbl.PeekTail()
	require.True(t, ok)
	require.Equal(t, "/data/b.mda", tail.Path())
}

// TestTable_AccessStampsIncrease orders stamps by touch sequence.
func TestTable_AccessStampsIncrease(t *testing.T) {
	tbl := New[string]()
	tbl.Put(entry("/data/a.mda", 1))
	tbl.Put(entry("/data/b.mda", 1))

	a, _ := tbl.Get(model.NewKey("/data/a.mda"))
	b, _ := tbl.Get(model.NewKey("/data/b.mda"))
	require.Less(t, a.TouchedAt(), b.TouchedAt())

	tbl.Touch(model.NewKey("/data/a.mda"))
	require.Greater(t, a.TouchedAt(), b.TouchedAt())
}

// TestTable_RemoveAdjustsSize frees the entry's bytes.
func TestTable_RemoveAdjustsSize(t *testing.T) {
	tbl := New[string]()
	tbl.Put(entry("/data/a.mda", 100))
	tbl.Put(entry("/data/b.mda", 50))

	freed, ok := tbl.Remove(model.NewKey("/data/a.mda"))
	require.True(t, ok)
	require.Equal(t, int64(100), freed)
	require.Equal(t, 1, tbl.Len())
	require.Equal(t, int64(50), tbl.SizeBytes())

	_, ok = tbl.Remove(model.NewKey("/data/a.mda"))
	require.False(t, ok)
}

// TestTable_ClearIdempotent zeroes count and size, twice.
func TestTable_ClearIdempotent(t *testing.T) {
	tbl := New[string]()
	tbl.Put(entry("/data/a.mda", 100))
	tbl.Put(entry("/data/b.mda", 50))

	for i := 0; i < 2; i++ {
		tbl.Clear()
		require.Equal(t, 0, tbl.Len())
		require.Equal(t, int64(0), tbl.SizeBytes())
	}
}

// TestTable_WalkOrder walks most recent first.
func TestTable_WalkOrder(t *testing.T) {
	tbl := New[string]()
	for i := 0; i < 3; i++ {
		tbl.Put(entry(fmt.Sprintf("/data/%d.mda", i), 1))
	}

	var paths []string
	tbl.Walk(func(e *model.Entry[string]) bool {
		paths = append(paths, e.Path())
		return true
	})
	require.Equal(t, []string{"/data/2.mda", "/data/1.mda", "/data/0.mda"}, paths)
}

// TestTable_WalkStops honors an early false.
func TestTable_WalkStops(t *testing.T) {
	tbl := New[string]()
	for i := 0; i < 5; i++ {
		tbl.Put(entry(fmt.Sprintf("/data/%d.mda", i), 1))
	}

	seen := 0
	tbl.Walk(func(e *model.Entry[string]) bool {
		seen++
		return seen < 2
	})
	require.Equal(t, 2, seen)
}
