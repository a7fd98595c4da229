package starboard

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// LockTable hands out one mutex per source message ID so only one aggregation
// pass runs at a time for a given message. Entries are created on demand and
// evicted once the last holder releases; different messages never contend.
type LockTable struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewLockTable creates an empty lock table.
func NewLockTable() *LockTable {
	return &LockTable{entries: make(map[string]*entry)}
}

// Acquire blocks until the lock for the given key is held and returns the
// release function. The lock is held across the whole transition, external
// calls included.
func (lt *LockTable) Acquire(key string) func() {
	lt.mu.Lock()
	e, ok := lt.entries[key]
	if !ok {
		e = &entry{}
		lt.entries[key] = e
	}
	e.refs++
	lt.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		lt.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(lt.entries, key)
		}
		lt.mu.Unlock()
	}
}

// Len returns the number of live entries.
func (lt *LockTable) Len() int {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	return len(lt.entries)
}
