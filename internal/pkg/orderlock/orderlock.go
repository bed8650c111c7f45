// Package orderlock provides an in-process exclusive lock keyed by order id.
// Status transitions on the same order must be serialized for the whole
// read-validate-write-append sequence; transitions on different orders run in
// parallel. Lock entries are reference counted and removed once the last
// holder releases, so the map does not grow with the order table.
package orderlock

import "sync"

// Keyed hands out one exclusive lock per key.
type Keyed struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyed creates an empty keyed lock.
func NewKeyed() *Keyed {
	return &Keyed{entries: make(map[string]*entry)}
}

// Lock acquires the exclusive lock for key, blocking until it is available.
// Every Lock must be paired with exactly one Unlock for the same key.
func (k *Keyed) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the exclusive lock for key.
// Unlocking a key that is not held panics, like sync.Mutex.
func (k *Keyed) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("orderlock: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
