// Package core holds the time source shared by every frame-driven component.
package core

import (
	"sync"
	"time"
)

// Clock supplies the frame loop's notion of "now"
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// System reads wall time with its monotonic component
var System Clock = ClockFunc(time.Now)

// ManualClock only moves when told to; tests step frame loops with it
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

// Advance moves time forward by d and returns the new reading
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// FrameTimer turns successive frame timestamps into elapsed deltas
// A delta is never negative and never exceeds Max, so a stalled loop
// resumes where it stopped instead of jumping ahead
type FrameTimer struct {
	Max  time.Duration
	last time.Time
}

// Reset makes now the reference for the next Tick
func (t *FrameTimer) Reset(now time.Time) {
	t.last = now
}

// Tick returns the clamped time since the previous Tick or Reset
func (t *FrameTimer) Tick(now time.Time) time.Duration {
	dt := now.Sub(t.last)
	t.last = now
	if dt < 0 {
		return 0
	}
	if t.Max > 0 && dt > t.Max {
		return t.Max
	}
	return dt
}
