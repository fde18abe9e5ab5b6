package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_PushAndExpire(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCenter(5 * time.Second)
	c.now = func() time.Time { return now }

	first := c.Push(LevelSuccess, "Added", "Logitech G Pro X Superlight added to cart")
	now = now.Add(3 * time.Second)
	second := c.Push(LevelError, "Payment", "declined")

	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, c.Active(), 2)

	now = now.Add(2 * time.Second)
	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	now = now.Add(3 * time.Second)
	assert.Empty(t, c.Active())
}

func TestCenter_PushDropsExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCenter(time.Second)
	c.now = func() time.Time { return now }

	for range 100 {
		c.Push(LevelInfo, "Added", "")
		now = now.Add(2 * time.Second)
	}
	last := c.Push(LevelInfo, "Added", "")

	c.mu.Lock()
	stored := len(c.items)
	c.mu.Unlock()
	assert.Equal(t, 1, stored)
	assert.Equal(t, 101, last.ID)
}

func TestCenter_Dismiss(t *testing.T) {
	c := NewCenter(time.Minute)
	n := c.Push(LevelInfo, "Hello", "")

	assert.True(t, c.Dismiss(n.ID))
	assert.False(t, c.Dismiss(n.ID))
	assert.Empty(t, c.Active())
}

func TestNewCenter_DefaultTTL(t *testing.T) {
	c := NewCenter(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestCenter_Concurrent(t *testing.T) {
	c := NewCenter(time.Minute)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				n := c.Push(LevelInfo, "t", "m")
				_ = c.Active()
				c.Dismiss(n.ID)
			}
		}()
	}
	wg.Wait()
	assert.Empty(t, c.Active())
}
