// Package animatortest provides a scheduler and clock that tests drive by
// hand, so animators can be stepped tick by tick without waiting on real time.
package animatortest

import (
	"sync"
	"time"

	"github.com/matt-g-everett/ledtween/animator"
)

// Clock is a manually advanced animator.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock set to an arbitrary fixed instant.
func NewClock() *Clock {
	c := new(Clock)
	c.now = time.Date(2020, time.December, 24, 18, 0, 0, 0, time.UTC)
	return c
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Scheduler records scheduled tasks and runs them only when Tick is called.
type Scheduler struct {
	mu      sync.Mutex
	entries []*Entry
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return new(Scheduler)
}

// Entry is a task registered on a Scheduler.
type Entry struct {
	Delay    time.Duration
	Interval time.Duration

	s         *Scheduler
	task      func()
	cancelled bool
}

// Cancel removes the entry from its scheduler.
func (e *Entry) Cancel() {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.cancelled = true
	for i, other := range e.s.entries {
		if other == e {
			e.s.entries = append(e.s.entries[:i], e.s.entries[i+1:]...)
			break
		}
	}
}

// Schedule registers task. Delay and interval are recorded but ignored.
func (s *Scheduler) Schedule(delay, interval time.Duration, task func()) animator.Handle {
	e := &Entry{Delay: delay, Interval: interval, s: s, task: task}
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return e
}

// Tick runs every registered task once, in registration order, and returns
// how many ran. Tasks cancelled by an earlier task in the same round are
// skipped.
func (s *Scheduler) Tick() int {
	s.mu.Lock()
	entries := make([]*Entry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	ran := 0
	for _, e := range entries {
		s.mu.Lock()
		cancelled := e.cancelled
		s.mu.Unlock()
		if cancelled {
			continue
		}
		e.task()
		ran++
	}
	return ran
}

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Last returns the most recently registered task that is still active, or nil.
func (s *Scheduler) Last() *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}
