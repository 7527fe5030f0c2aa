package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	staged    StagedSuggestions
	expiresAt time.Time
}

// MemoryStore is an in-process Store used in tests and single-node
// development setups. TTL expiry is checked lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory suggestion store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Put stages a suggestion payload, replacing any previous one
func (m *MemoryStore) Put(_ context.Context, key string, staged StagedSuggestions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		staged:    staged,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// Peek returns the staged payload without removing it
func (m *MemoryStore) Peek(_ context.Context, key string) (*StagedSuggestions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, ErrNotFound
	}

	staged := entry.staged
	return &staged, nil
}

// Consume returns and removes the staged payload under a single lock, so
// only one of two concurrent consumers wins
func (m *MemoryStore) Consume(_ context.Context, key string) (*StagedSuggestions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, ErrNotFound
	}

	delete(m.entries, key)
	staged := entry.staged
	return &staged, nil
}

// Dismiss discards the staged payload. Absent keys are a no-op.
func (m *MemoryStore) Dismiss(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// IsHealthy always succeeds for the in-memory store
func (m *MemoryStore) IsHealthy(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}
