package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestCache(t *testing.T, ttl time.Duration) (*TTLCache[string, int], *time.Time) {
	t.Helper()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New[string, int](ttl, time.Hour)
	c.now = func() time.Time { return now }
	t.Cleanup(c.Close)
	return c, &now
}

func TestTTLCache_GetSet(t *testing.T) {
	c, now := newTestCache(t, time.Minute)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	*now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry expires exactly at ttl")
}

func TestTTLCache_SetUntilCapsExpiry(t *testing.T) {
	c, now := newTestCache(t, time.Hour)

	c.SetUntil("a", 1, now.Add(10*time.Second))
	*now = now.Add(11 * time.Second)
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.SetUntil("b", 2, now.Add(48*time.Hour))
	*now = now.Add(59 * time.Minute)
	_, ok = c.Get("b")
	assert.True(t, ok, "ttl still applies when until is later")
}

func TestTTLCache_DeleteAndEvict(t *testing.T) {
	c, now := newTestCache(t, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	assert.Equal(t, 1, c.Len())

	*now = now.Add(2 * time.Minute)
	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_CloseTwice(t *testing.T) {
	c := New[int, int](time.Second, time.Second)
	c.Close()
	assert.NotPanics(t, c.Close)
}
