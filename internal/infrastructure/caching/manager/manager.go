// Package manager provides the cache manager fronting all read-only fetches
package manager

import (
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/types"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// FetchFunc loads a value from the external backend.
type FetchFunc func() (any, error)

// Manager owns the query and session stores.
type Manager struct {
	Query    *stores.QueryStore
	Sessions *stores.SessionStore
	logger   *logging.ChanneledLogger
	retries  int
}

// NewManager creates the cache manager with configured windows.
func NewManager(logger *logging.ChanneledLogger) *Manager {
	return &Manager{
		Query:    stores.NewQueryStore(config.QueryFreshnessWindow),
		Sessions: stores.NewSessionStore(config.MaxSessions),
		logger:   logger,
		retries:  config.QueryFetchRetries,
	}
}

// GetOrFetch returns the cached value for key, fetching on miss. Stale
// entries are returned immediately while one background refetch runs.
// After retries are exhausted the caller receives (nil, false) and must
// degrade to an empty fallback; an error is never surfaced.
func (m *Manager) GetOrFetch(key string, fetch FetchFunc) (any, bool) {
	start := time.Now()
	value, state := m.Query.Get(key)

	switch state {
	case types.QueryFresh:
		m.logger.LogCacheOperation("get", key, true, time.Since(start))
		return value, true

	case types.QueryStale:
		if m.Query.TryMarkRefreshing(key) {
			go m.refresh(key, fetch)
		}
		m.logger.LogCacheOperation("get_stale", key, true, time.Since(start))
		return value, true

	default:
		m.logger.LogCacheOperation("get", key, false, time.Since(start))
		fetched, err := m.fetchWithRetries(key, fetch)
		if err != nil {
			m.logger.Cache().Warn("Fetch failed after retries, serving empty fallback", "key", key, "error", err.Error())
			return nil, false
		}
		m.Query.Set(key, fetched)
		return fetched, true
	}
}

// Invalidate drops a cached query key.
func (m *Manager) Invalidate(key string) {
	m.Query.Invalidate(key)
}

// refresh performs a background refetch for a stale key. The stale value
// stays in place if the refetch fails.
func (m *Manager) refresh(key string, fetch FetchFunc) {
	defer m.Query.ClearRefreshing(key)

	value, err := m.fetchWithRetries(key, fetch)
	if err != nil {
		m.logger.Cache().Warn("Background refetch failed, keeping stale value", "key", key, "error", err.Error())
		return
	}
	m.Query.Set(key, value)
	m.logger.Cache().Debug("Background refetch completed", "key", key)
}

// fetchWithRetries runs the fetch with bounded retries and backoff.
func (m *Manager) fetchWithRetries(key string, fetch FetchFunc) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= m.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 250 * time.Millisecond)
		}

		value, err := fetch()
		if err == nil {
			return value, nil
		}
		lastErr = err
		m.logger.Cache().Debug("Fetch attempt failed", "key", key, "attempt", attempt+1, "error", err.Error())
	}
	return nil, lastErr
}

// Stats reports store sizes for status endpoints.
func (m *Manager) Stats() map[string]any {
	return map[string]any{
		"queryEntries": m.Query.Len(),
		"sessions":     m.Sessions.Count(),
	}
}
