package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore holds the document in process memory. It backs the "memory"
// storage backend for ephemeral runs, and tests use it to exercise
// persistence paths without touching disk.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte

	// SaveErr, when set, is returned by every Save. Tests set it to drive the
	// persistence-failure paths of the quota manager and the cache.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return false, nil
	}
	if err := json.Unmarshal(s.data, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Save(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}
