package inflight

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAdd(t *testing.T) {
	c := New()

	assert.True(t, c.TryAdd("https://example.com/reel/a"))
	assert.False(t, c.TryAdd("https://example.com/reel/a"), "second add of same URL must fail")
	assert.True(t, c.TryAdd("https://example.com/reel/b"))
	assert.Equal(t, 2, c.Len())
}

func TestRemove(t *testing.T) {
	c := New()
	c.TryAdd("url")

	c.Remove("url")
	assert.False(t, c.Contains("url"))
	assert.True(t, c.TryAdd("url"), "removed URL can be re-added")

	// removing an absent URL is a no-op
	c.Remove("never-added")
}

func TestClear(t *testing.T) {
	c := New()
	c.TryAdd("a")
	c.TryAdd("b")

	c.Clear()
	assert.Zero(t, c.Len())
	assert.True(t, c.TryAdd("a"))
}

func TestJanitorClearsPeriodically(t *testing.T) {
	c := New()
	c.TryAdd("stuck-entry")

	c.StartJanitor(context.Background(), 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 5*time.Millisecond, "janitor must clear the cache")
}
