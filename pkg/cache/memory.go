package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. Entries survive only as long as the
// process does.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value for key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	// Callers may hold the slice across writes.
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true, nil
}

// Put stores value under key.
func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: stored, storedAt: time.Now()}
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Prune removes entries stored before cutoff.
func (m *MemoryStore) Prune(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.entries {
		if entry.storedAt.Before(cutoff) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of cached entries.
func (m *MemoryStore) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
