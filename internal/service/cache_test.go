package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/you/go-clonar-search/internal/providers"
)

func entry(provider string) []providers.Result {
	return []providers.Result{{Provider: provider, Title: "Item", Link: "https://example.com"}}
}

func TestQueryCache_SetGet(t *testing.T) {
	c := newQueryCache(time.Hour, 0)

	c.Set("product|nike shoes", entry("p1"))

	got, ok := c.Get("product|nike shoes")
	require.True(t, ok)
	require.Equal(t, entry("p1"), got)

	_, ok = c.Get("product|other")
	require.False(t, ok)
}

func TestQueryCache_TTLExpiry(t *testing.T) {
	c := newQueryCache(50*time.Millisecond, 0)

	c.Set("k", entry("p1"))

	got, ok := c.Get("k")
	require.True(t, ok)
	require.NotEmpty(t, got)

	time.Sleep(80 * time.Millisecond)

	_, ok = c.Get("k")
	require.False(t, ok)

	// lazy purge on lookup must actually drop the entry
	c.mu.RLock()
	_, still := c.entries["k"]
	c.mu.RUnlock()
	require.False(t, still)
}

func TestQueryCache_SetReplacesTimestamp(t *testing.T) {
	c := newQueryCache(100*time.Millisecond, 0)

	c.Set("k", entry("old"))
	time.Sleep(60 * time.Millisecond)
	c.Set("k", entry("new"))
	time.Sleep(60 * time.Millisecond)

	// the rewrite reset the clock, so the entry is still fresh
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "new", got[0].Provider)
}

func TestQueryCache_Clear(t *testing.T) {
	c := newQueryCache(time.Hour, 0)
	c.Set("a", entry("p1"))
	c.Set("b", entry("p2"))

	c.Clear()

	_, ok := c.Get("a")
	require.False(t, ok)
	_, ok = c.Get("b")
	require.False(t, ok)
}

func TestQueryCache_MaxEntriesEvictsOldest(t *testing.T) {
	c := newQueryCache(time.Hour, 2)

	c.Set("first", entry("p1"))
	c.Set("second", entry("p2"))
	c.Set("third", entry("p3"))

	_, ok := c.Get("first")
	require.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get("second")
	require.True(t, ok)
	_, ok = c.Get("third")
	require.True(t, ok)
}

func TestQueryCache_ZeroTTLDefaultsToOneHour(t *testing.T) {
	c := newQueryCache(0, 0)
	require.Equal(t, time.Hour, c.ttl)
}
