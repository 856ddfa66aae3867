package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Entry is the tracked state for one identity.
type Entry struct {
	// Identifier is the external identity key (user ID).
	Identifier string

	// Attempts is the consecutive-failure count.
	Attempts int

	// LastAttempt is when the most recent failure was recorded.
	LastAttempt time.Time

	// BlockedUntil is the end of the block window; zero when not blocked.
	BlockedUntil time.Time
}

// EntryStore persists limiter entries. The Limiter serializes its own
// read-modify-write sequences; implementations only need to be individually
// safe for concurrent calls (the janitor worker runs beside requests).
type EntryStore interface {
	// Get returns the entry for identifier. found is false when none exists.
	Get(ctx context.Context, identifier string) (entry Entry, found bool, err error)

	// Set inserts or replaces the entry keyed by entry.Identifier.
	Set(ctx context.Context, entry Entry) error

	// Delete removes the entry for identifier. Removing a missing entry is
	// not an error.
	Delete(ctx context.Context, identifier string) error

	// PurgeExpired removes entries whose BlockedUntil lies at or before now
	// and returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

// memoryStore is the default process-local [EntryStore].
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore constructs an empty in-memory [EntryStore].
func NewMemoryStore() EntryStore {
	return &memoryStore{entries: make(map[string]Entry)}
}

func (m *memoryStore) Get(_ context.Context, identifier string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, found := m.entries[identifier]
	return entry, found, nil
}

func (m *memoryStore) Set(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[entry.Identifier] = entry
	return nil
}

func (m *memoryStore) Delete(_ context.Context, identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, identifier)
	return nil
}

func (m *memoryStore) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for id, entry := range m.entries {
		if !entry.BlockedUntil.IsZero() && !entry.BlockedUntil.After(now) {
			delete(m.entries, id)
			purged++
		}
	}
	return purged, nil
}
