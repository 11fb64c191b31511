// Package testutil provides shared helpers for tests, chiefly a fake clock
// that drives debounce timers without wall-clock waits.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/pkordes/fleet-console/internal/query"
)

// FakeClock implements query.Clock with manually advanced time. Timers fire
// synchronously inside Advance, in due order, so tests observe debounce
// effects deterministically.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	due     time.Time
	f       func()
	stopped bool
	fired   bool
}

// NewFakeClock returns a FakeClock starting at an arbitrary fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

// AfterFunc registers f to run once the clock has advanced by d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) query.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and fires every due, unstopped timer
// in chronological order. Callbacks run without the clock's lock held, so
// they may schedule further timers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	deadline := c.now
	c.mu.Unlock()

	for {
		t := c.nextDue(deadline)
		if t == nil {
			return
		}
		t.f()
	}
}

// nextDue pops the earliest timer due at or before deadline, marking it fired.
func (c *FakeClock) nextDue(deadline time.Time) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].due.Before(c.timers[j].due)
	})
	for _, t := range c.timers {
		if t.stopped || t.fired || t.due.After(deadline) {
			continue
		}
		t.fired = true
		return t
	}
	return nil
}

// Pending returns the number of registered timers that have neither fired
// nor been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

var _ query.Clock = (*FakeClock)(nil)
