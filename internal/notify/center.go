// Package notify keeps short-lived user notifications (toasts).
package notify

import (
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

type Notification struct {
	ID        int
	Level     Level
	Title     string
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Center stores notifications until they expire or are dismissed.
// It is safe for concurrent use.
type Center struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	nextID int
	items  []Notification
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

func (c *Center) Push(level Level, title, message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune()
	c.nextID++
	at := c.now()
	n := Notification{
		ID:        c.nextID,
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: at,
		ExpiresAt: at.Add(c.ttl),
	}
	c.items = append(c.items, n)
	return n
}

// Dismiss removes a notification before it expires. It reports whether
// the id was still active.
func (c *Center) Dismiss(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune()
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns unexpired notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) prune() {
	now := c.now()
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	c.items = kept
}
