package testutil

import (
	"sync"
	"time"
)

// SteppingClock returns a deterministic wall-clock sequence for tests.
//
// The first call to Now returns the start time; every later call advances
// by step. A zero step yields a frozen clock.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu    sync.Mutex
	next  time.Time
	start time.Time
	step  time.Duration
}

// NewSteppingClock creates a clock starting at start and advancing by step.
func NewSteppingClock(start time.Time, step time.Duration) *SteppingClock {
	return &SteppingClock{next: start, start: start, step: step}
}

// NewFrozenClock creates a clock that always returns t.
func NewFrozenClock(t time.Time) *SteppingClock {
	return NewSteppingClock(t, 0)
}

// Now returns the current time and advances the clock.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}

// Reset rewinds the clock to its start time.
//
// Used for test reuse. After Reset(), the next call to Now() returns the start time.
func (c *SteppingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = c.start
}
