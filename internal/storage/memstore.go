package storage

import (
	"context"
	"sync"
)

// MemStore is an in-process record store. It backs embedded deployments where
// no filesystem root is configured (the server-side analog of a
// browser-local persistent map) and the test suites.
type MemStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

func (s *MemStore) Get(ctx context.Context, tenantID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[recordKey(tenantID, key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemStore) Set(ctx context.Context, tenantID, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey(tenantID, key)] = stored
	return nil
}

func (s *MemStore) Remove(ctx context.Context, tenantID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, recordKey(tenantID, key))
	return nil
}

func recordKey(tenantID, key string) string {
	return tenantID + "/" + key
}
