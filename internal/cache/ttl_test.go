package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestTTLExpiration(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTTL[int](4, time.Minute).WithClock(clock.now)

	c.Set("a", 1)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	clock.t = clock.t.Add(59 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry expires exactly at its ttl")
	assert.Equal(t, 0, c.Len())
}

func TestTTLEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewTTL[string](2, time.Hour)

	c.Set("a", "1")
	c.Set("b", "2")
	_, _ = c.Get("a")
	c.Set("c", "3")

	_, ok := c.Get("b")
	assert.False(t, ok, "b was the least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestTTLSetReplacesAndDelete(t *testing.T) {
	c := NewTTL[int](2, time.Hour)

	c.Set("a", 1)
	c.Set("a", 2)
	got, _ := c.Get("a")
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())

	c.Delete("a")
	c.Delete("missing")
	_, ok := c.Get("a")
	assert.False(t, ok)
}
