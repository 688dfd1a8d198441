// Package clock provides time utilities that tests can replace.
package clock

import (
	"sync"
	"time"
)

// Clock provides time functionality.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// Real implements Clock using actual system time.
type Real struct{}

// Now returns the current time.
func (Real) Now() time.Time { return time.Now() }

// After waits for d on the system timer.
func (Real) After(d time.Duration) <-chan time.Time { return time.After(d) }

// New returns a real clock.
func New() Clock { return Real{} }

// Fake is a manually driven clock. After advances the clock by d and fires
// immediately, so code that sleeps through it runs without wall-clock delay
// while still observing the elapsed time.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewFake returns a fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	if d > 0 {
		f.now = f.now.Add(d)
	}
	f.slept = append(f.slept, d)
	now := f.now
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Advance moves the clock forward without recording a sleep.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Sleeps returns every duration passed to After, in order.
func (f *Fake) Sleeps() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.slept...)
}
