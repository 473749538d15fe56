package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/types"
)

func TestQueryStoreMissOnUnknownKey(t *testing.T) {
	store := NewQueryStore(time.Minute)

	value, state := store.Get("properties:published")

	assert.Nil(t, value)
	assert.Equal(t, types.QueryMiss, state)
}

func TestQueryStoreFreshWithinWindow(t *testing.T) {
	store := NewQueryStore(time.Minute)
	store.Set("properties:published", []string{"riverside-penthouse"})

	value, state := store.Get("properties:published")

	assert.Equal(t, types.QueryFresh, state)
	assert.Equal(t, []string{"riverside-penthouse"}, value)
}

func TestQueryStoreStalePastWindow(t *testing.T) {
	store := NewQueryStore(20 * time.Millisecond)
	store.Set("areas:enabled", "cached")

	time.Sleep(40 * time.Millisecond)
	value, state := store.Get("areas:enabled")

	assert.Equal(t, types.QueryStale, state, "expired entries serve stale, not miss")
	assert.Equal(t, "cached", value)
}

func TestQueryStoreRefreshingSlotIsSingleFlight(t *testing.T) {
	store := NewQueryStore(time.Minute)
	store.Set("posts:published", "v1")

	require.True(t, store.TryMarkRefreshing("posts:published"))
	assert.False(t, store.TryMarkRefreshing("posts:published"), "second claim while in flight")

	store.ClearRefreshing("posts:published")
	assert.True(t, store.TryMarkRefreshing("posts:published"))

	assert.False(t, store.TryMarkRefreshing("missing:key"))
}

func TestQueryStoreInvalidate(t *testing.T) {
	store := NewQueryStore(time.Minute)
	store.Set("properties:published", "v1")

	store.Invalidate("properties:published")

	_, state := store.Get("properties:published")
	assert.Equal(t, types.QueryMiss, state)
	assert.Zero(t, store.Len())
}

func TestQueryStoreEvictExpired(t *testing.T) {
	store := NewQueryStore(time.Minute)
	store.Set("old", "v1")

	time.Sleep(30 * time.Millisecond)
	store.Set("recent", "v2")

	evicted := store.EvictExpired(20 * time.Millisecond)

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, store.Len())
	_, state := store.Get("recent")
	assert.Equal(t, types.QueryFresh, state)
}

func TestQueryStoreGetTouchesLastAccess(t *testing.T) {
	store := NewQueryStore(time.Minute)
	store.Set("touched", "v1")

	time.Sleep(30 * time.Millisecond)
	store.Get("touched")

	evicted := store.EvictExpired(20 * time.Millisecond)
	assert.Zero(t, evicted, "a read resets the GC clock")
}
