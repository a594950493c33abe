// Package storage holds the local key/value backends the BookmarkSet can be
// persisted into.
package storage

import (
	"context"
	"sync"

	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
)

var _ data.KeyValueStore = (*MemoryStore)(nil)

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, exceptions.NotFound("key", key)
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
