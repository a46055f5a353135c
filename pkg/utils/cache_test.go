package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_Expiration(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[string](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("state", "verifier")
	v, ok := c.Get("state")
	assert.True(t, ok)
	assert.Equal(t, "verifier", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("state")
	assert.False(t, ok, "过期后不应命中")
}

func TestTTLCache_TouchAndPurge(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	c.Set("b", 2)

	now = now.Add(50 * time.Second)
	assert.True(t, c.Touch("a"))

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, c.Purge())

	_, ok := c.Get("a")
	assert.True(t, ok, "续期后仍有效")
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.False(t, c.Touch("b"))
}

func TestTTLCache_TouchAfterDelete(t *testing.T) {
	c := NewTTLCache[string](time.Minute)
	c.Set("sid", "session")
	c.Delete("sid")

	assert.False(t, c.Touch("sid"))
	_, ok := c.Get("sid")
	assert.False(t, ok, "已删除的 key 不应被续期写回")
}

func TestTTLCache_TouchConcurrentDelete(t *testing.T) {
	c := NewTTLCache[int](time.Minute)
	for i := 0; i < 200; i++ {
		c.Set("k", i)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); c.Touch("k") }()
		go func() { defer wg.Done(); c.Delete("k") }()
		wg.Wait()

		_, ok := c.Get("k")
		assert.False(t, ok, "第 %d 轮删除后仍可读取", i)
	}
}
