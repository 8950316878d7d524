package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. It is used in tests and when
// persistence is explicitly disabled.
type MemoryStore struct {
	values sync.Map
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the value for key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.values.Load(key)
	if !ok {
		return nil, ErrNotFound
	}
	b := value.([]byte)
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Put replaces the value for key.
func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	m.values.Store(key, b)
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.values.Delete(key)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	count := 0
	m.values.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
