// Package timeutil is the time source of the stores. Record timestamps are
// local wall-clock time, the way the contact table has always stored them.
package timeutil

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// LocalClock is the system clock in the local zone.
type LocalClock struct{}

func (LocalClock) Now() time.Time { return time.Now() }

// Default is the clock used when none is given.
var Default Clock = LocalClock{}

// FrozenClock returns a fixed time until moved.
type FrozenClock struct {
	mu sync.RWMutex
	t  time.Time
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{t: t}
}

func (c *FrozenClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

func (c *FrozenClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// TruncateMicros drops sub-microsecond precision, which Postgres timestamps
// cannot hold.
func TruncateMicros(t time.Time) time.Time { return t.Truncate(time.Microsecond) }
