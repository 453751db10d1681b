package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps values in process memory. Values are copied on the way in and out.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKV constructs an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set replaces the value stored under key.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error { return nil }
