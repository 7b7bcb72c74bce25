package timer

import (
	"sync"
	"time"
)

// Clock provides the wall-clock reading the timer recomputes deadlines against.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

// Now strips the monotonic reading. Deadlines must be compared on the wall clock, which
// keeps advancing while the host sleeps; the monotonic clock does not.
func (RealClock) Now() time.Time {
	return time.Now().Round(0)
}

// ManualClock is a settable clock for tests and replay.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
