package testutil

import (
	"sync"
	"time"
)

// StepClock is a manually advanced wall clock for tests.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStepClock creates a clock frozen at start.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{now: start}
}

// Now returns the current frozen time. Matches the signature of time.Now.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *StepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
