package store

import (
	"context"
	"sync"
)

// MemStore holds the snapshot in memory only. It backs the non-durable mode
// (no state path configured) and the tests.
type MemStore struct {
	mu  sync.Mutex
	ids []string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Load(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ids...), nil
}

func (m *MemStore) Save(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append([]string(nil), ids...)
	return nil
}
