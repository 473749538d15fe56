package manager

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
)

func newTestManager(t *testing.T, freshness time.Duration, retries int) *Manager {
	t.Helper()

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.LevelError,
	})
	require.NoError(t, err)

	return &Manager{
		Query:    stores.NewQueryStore(freshness),
		Sessions: stores.NewSessionStore(10),
		logger:   logger,
		retries:  retries,
	}
}

func TestGetOrFetchCachesOnMiss(t *testing.T) {
	m := newTestManager(t, time.Minute, 2)

	var calls int32
	fetch := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "fetched", nil
	}

	value, ok := m.GetOrFetch("properties:published", fetch)
	require.True(t, ok)
	assert.Equal(t, "fetched", value)

	value, ok = m.GetOrFetch("properties:published", fetch)
	require.True(t, ok)
	assert.Equal(t, "fetched", value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "fresh hit must not refetch")
}

func TestGetOrFetchEmptyFallbackAfterRetries(t *testing.T) {
	m := newTestManager(t, time.Minute, 2)

	var calls int32
	fetch := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, fmt.Errorf("backend unavailable")
	}

	value, ok := m.GetOrFetch("areas:enabled", fetch)

	assert.False(t, ok, "caller degrades to an empty fallback, never an error")
	assert.Nil(t, value)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "initial attempt plus two retries")

	// Nothing was cached; the next read tries the backend again.
	m.GetOrFetch("areas:enabled", func() (any, error) { return "recovered", nil })
	value, ok = m.GetOrFetch("areas:enabled", fetch)
	require.True(t, ok)
	assert.Equal(t, "recovered", value)
}

func TestGetOrFetchServesStaleWhileRefreshing(t *testing.T) {
	m := newTestManager(t, 20*time.Millisecond, 0)

	_, ok := m.GetOrFetch("posts:published", func() (any, error) { return "v1", nil })
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	refreshed := make(chan struct{})
	value, ok := m.GetOrFetch("posts:published", func() (any, error) {
		close(refreshed)
		return "v2", nil
	})

	require.True(t, ok)
	assert.Equal(t, "v1", value, "stale value served immediately")

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("background refetch never ran")
	}

	assert.Eventually(t, func() bool {
		value, ok := m.GetOrFetch("posts:published", func() (any, error) { return nil, fmt.Errorf("unused") })
		return ok && value == "v2"
	}, time.Second, 5*time.Millisecond)
}

func TestGetOrFetchKeepsStaleWhenRefreshFails(t *testing.T) {
	m := newTestManager(t, 20*time.Millisecond, 0)

	_, ok := m.GetOrFetch("testimonials:all", func() (any, error) { return "v1", nil })
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	failed := make(chan struct{})
	value, ok := m.GetOrFetch("testimonials:all", func() (any, error) {
		close(failed)
		return nil, fmt.Errorf("backend unavailable")
	})
	require.True(t, ok)
	assert.Equal(t, "v1", value)

	select {
	case <-failed:
	case <-time.After(time.Second):
		t.Fatal("background refetch never ran")
	}

	value, ok = m.GetOrFetch("testimonials:all", func() (any, error) { return nil, fmt.Errorf("unused") })
	require.True(t, ok)
	assert.Equal(t, "v1", value, "stale value stays in place on refetch failure")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	m := newTestManager(t, time.Minute, 0)

	m.GetOrFetch("properties:featured", func() (any, error) { return "v1", nil })
	m.Invalidate("properties:featured")

	value, ok := m.GetOrFetch("properties:featured", func() (any, error) { return "v2", nil })
	require.True(t, ok)
	assert.Equal(t, "v2", value)
}

func TestStats(t *testing.T) {
	m := newTestManager(t, time.Minute, 0)

	m.GetOrFetch("properties:published", func() (any, error) { return "v1", nil })
	m.Sessions.Register("sess-1", "vis-1")

	stats := m.Stats()
	assert.Equal(t, 1, stats["queryEntries"])
	assert.Equal(t, 1, stats["sessions"])
}
