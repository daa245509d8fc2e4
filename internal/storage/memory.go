package storage

import "sync"

// MemoryStore is a concurrency-safe in-memory key-value medium. It backs the
// cache in tests and when no data path is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// GetString returns the value stored under key, if any.
func (s *MemoryStore) GetString(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok
}

// SetString stores value under key.
func (s *MemoryStore) SetString(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}
