// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/types"
)

// QueryStore caches read-only query results keyed by semantic query key.
// Entries past the freshness window are served stale while a background
// refetch runs; entries unused past the GC window are evicted.
type QueryStore struct {
	entries   map[string]*types.QueryEntry
	freshness time.Duration
	mu        sync.RWMutex
}

// NewQueryStore creates a query store with the given freshness window.
func NewQueryStore(freshness time.Duration) *QueryStore {
	return &QueryStore{
		entries:   make(map[string]*types.QueryEntry),
		freshness: freshness,
	}
}

// Get returns the cached value and its state, touching last access.
func (qs *QueryStore) Get(key string) (any, types.QueryState) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	entry, exists := qs.entries[key]
	if !exists {
		return nil, types.QueryMiss
	}

	entry.LastAccess = time.Now().UTC()
	if time.Since(entry.FetchedAt) > qs.freshness {
		return entry.Value, types.QueryStale
	}
	return entry.Value, types.QueryFresh
}

// Set stores a freshly fetched value.
func (qs *QueryStore) Set(key string, value any) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	now := time.Now().UTC()
	qs.entries[key] = &types.QueryEntry{
		Value:      value,
		FetchedAt:  now,
		LastAccess: now,
	}
}

// TryMarkRefreshing claims the background-refetch slot for a key. Returns
// false when another refetch is already in flight or the key is gone.
func (qs *QueryStore) TryMarkRefreshing(key string) bool {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	entry, exists := qs.entries[key]
	if !exists || entry.Refreshing {
		return false
	}
	entry.Refreshing = true
	return true
}

// ClearRefreshing releases the background-refetch slot.
func (qs *QueryStore) ClearRefreshing(key string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if entry, exists := qs.entries[key]; exists {
		entry.Refreshing = false
	}
}

// Invalidate drops a single key.
func (qs *QueryStore) Invalidate(key string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	delete(qs.entries, key)
}

// EvictExpired removes entries unused for longer than the GC window and
// returns how many were evicted.
func (qs *QueryStore) EvictExpired(gcWindow time.Duration) int {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	evicted := 0
	for key, entry := range qs.entries {
		if time.Since(entry.LastAccess) > gcWindow {
			delete(qs.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of cached entries.
func (qs *QueryStore) Len() int {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	return len(qs.entries)
}
