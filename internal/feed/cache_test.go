package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_PutOverwrites(t *testing.T) {
	c := newMemoryCache()
	t0 := time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC)

	c.put("k", "old", t0)
	c.put("k", "new", t0.Add(time.Minute))

	entry, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, "new", entry.data)
	assert.Equal(t, t0.Add(time.Minute), entry.timestamp)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := newMemoryCache()
	_, ok := c.get("absent")
	assert.False(t, ok)
}

func TestMemoryCache_StatsSortsKeys(t *testing.T) {
	c := newMemoryCache()
	now := time.Now()
	c.put("weather-alerts", 1, now)
	c.put("alert-details-https://example.ph/b.xml", 2, now)
	c.put("alert-details-https://example.ph/a.xml", 3, now)

	stats := c.stats(5 * time.Minute)
	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, []string{
		"alert-details-https://example.ph/a.xml",
		"alert-details-https://example.ph/b.xml",
		"weather-alerts",
	}, stats.Keys)
	assert.Equal(t, 5*time.Minute, stats.TTL)
}

func TestMemoryCache_Clear(t *testing.T) {
	c := newMemoryCache()
	c.put("k", 1, time.Now())
	c.clear()

	_, ok := c.get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.stats(time.Minute).Size)
}
