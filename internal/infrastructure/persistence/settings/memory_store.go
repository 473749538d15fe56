package settings

import "sync"

// MemoryStore is an in-memory Store. It backs session-scoped settings in
// production and substitutes for the SQL store in tests.
type MemoryStore struct {
	values map[string]map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(scopeID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scope, exists := s.values[scopeID]
	if !exists {
		return "", false, nil
	}
	value, exists := scope[key]
	return value, exists, nil
}

func (s *MemoryStore) Set(scopeID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values[scopeID] == nil {
		s.values[scopeID] = make(map[string]string)
	}
	s.values[scopeID][key] = value
	return nil
}

func (s *MemoryStore) Delete(scopeID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if scope, exists := s.values[scopeID]; exists {
		delete(scope, key)
	}
	return nil
}

// Clear removes every setting for a scope. Used when a session expires.
func (s *MemoryStore) Clear(scopeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, scopeID)
}
