// Package keylock serializes work per key while letting different keys run in parallel.
package keylock

import "sync"

// a table of per-key mutexes. Entries are created on first use and removed once no
// goroutine holds or waits for them, so the table only grows with concurrent keys.
type Table struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *Table {
	return &Table{entries: make(map[string]*entry)}
}

// blocks until key is held by the caller and returns the function that releases it.
// Calling the returned function more than once is a no-op.
func (t *Table) Lock(key string) (unlock func()) {
	t.mu.Lock()
	e, ok := t.entries[key]
	if !ok {
		e = &entry{}
		t.entries[key] = e
	}
	e.refs++
	t.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			t.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(t.entries, key)
			}
			t.mu.Unlock()
		})
	}
}

// returns the number of keys currently held or waited on
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
