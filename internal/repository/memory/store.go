// Package memory holds process-local repositories used in demo mode and
// in tests. Every record is copied on the way in and out so callers never
// share state with the store.
package memory

import (
	"sort"
	"sync"
	"time"
)

// table is an id-keyed collection guarded by a mutex
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	clone  func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[int64]T), nextID: 1, clone: clone}
}

// insert allocates the next id, lets withID stamp it on the row, and stores a copy
func (t *table[T]) insert(withID func(id int64) T) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.rows[id] = t.clone(withID(id))
	return id
}

func (t *table[T]) get(id int64, match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok || (match != nil && !match(v)) {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

// replace overwrites row id when match accepts the stored row
func (t *table[T]) replace(id int64, v T, match func(T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.rows[id]
	if !ok || (match != nil && !match(old)) {
		return false
	}
	t.rows[id] = t.clone(v)
	return true
}

// mutate applies fn to every row it accepts and returns how many changed
func (t *table[T]) mutate(fn func(id int64, v *T) bool) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int64
	for id, v := range t.rows {
		if fn(id, &v) {
			t.rows[id] = v
			n++
		}
	}
	return n
}

func (t *table[T]) remove(id int64, match func(T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok || (match != nil && !match(v)) {
		return false
	}
	delete(t.rows, id)
	return true
}

// filter returns copies of matching rows ordered by less
func (t *table[T]) filter(match func(T) bool, less func(a, b T) bool) []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		if match == nil || match(v) {
			out = append(out, t.clone(v))
		}
	}
	t.mu.RUnlock()
	if less != nil {
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// newestFirst orders by creation time, then id, descending
func newestFirst(aAt time.Time, aID int64, bAt time.Time, bID int64) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return aID > bID
}

func now() time.Time {
	return time.Now().UTC()
}
