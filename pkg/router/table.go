package router

import (
	"sync"
	"sync/atomic"
)

// Table maps (pattern, verb) keys to route entries. A Table is built by
// one scan and never mutated after publication; replace the whole table
// through a Holder instead of editing it in place.
type Table struct {
	entries map[string]Entry
	order   []string
}

func newTable() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// add records an entry, overwriting any previous entry with the same
// key. Later filesystem traversal order wins on conflict.
func (t *Table) add(e Entry) {
	key := e.Key()
	if _, exists := t.entries[key]; !exists {
		t.order = append(t.order, key)
	}
	t.entries[key] = e
}

// Lookup finds the entry for a serialized pattern and verb ("" for
// pages).
func (t *Table) Lookup(pattern, verb string) (Entry, bool) {
	e, ok := t.entries[entryKey(pattern, verb)]
	return e, ok
}

// Entries returns all entries in discovery order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.entries[key])
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Holder publishes table snapshots. Readers load the current snapshot
// without locking; Replace is the sole writer and is serialized, so a
// reader observes one complete table, old or new, never a mixture.
type Holder struct {
	current atomic.Pointer[Table]
	reload  sync.Mutex
}

// NewHolder creates a holder seeded with an empty table.
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(newTable())
	return h
}

// Load returns the current table snapshot.
func (h *Holder) Load() *Table {
	return h.current.Load()
}

// Replace builds a fresh table and swaps it in atomically. Concurrent
// Replace calls are serialized; the previous table stays visible until
// build returns without error.
func (h *Holder) Replace(build func() (*Table, error)) (*Table, error) {
	h.reload.Lock()
	defer h.reload.Unlock()

	next, err := build()
	if err != nil {
		return nil, err
	}
	h.current.Store(next)
	return next, nil
}
