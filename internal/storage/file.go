package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
)

var _ data.KeyValueStore = (*FileStore)(nil)

// FileStore keeps every key in a single JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type FileStore struct {
	mu   sync.Mutex
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)
	body, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, err
	}
	if len(body) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, fmt.Errorf("corrupt store %s: %w", s.Path, err)
	}
	return values, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return nil, err
	}
	value, ok := values[key]
	if !ok {
		return nil, exceptions.NotFound("key", key)
	}
	var raw string
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil, fmt.Errorf("corrupt value for %s: %w", key, err)
	}
	return []byte(raw), nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(string(value))
	if err != nil {
		return err
	}
	values[key] = encoded
	body, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
