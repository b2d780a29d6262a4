package storage

import (
	"context"
	"sync"
)

// MemoryPort keeps documents in process memory. Separate handles sharing one
// MemoryPort behave like two sessions over the same browser storage.
type MemoryPort struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryPort returns an empty in-memory port.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{data: make(map[string][]byte)}
}

// Read returns a copy of the document stored under key.
func (m *MemoryPort) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), data...), nil
}

// Write replaces the document stored under key.
func (m *MemoryPort) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (m *MemoryPort) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
