// Package scheduler drives a task at a fixed, adjustable interval with at most
// one pending or executing invocation at any time.
package scheduler

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidInterval is returned for non-positive intervals.
var ErrInvalidInterval = errors.New("scheduler: interval must be positive")

// Scheduler re-arms itself after each task run. Changing the interval cancels
// the outstanding timer before arming a new one, so two ticks are never in
// flight together.
//
// The task runs without the scheduler lock held and may call Reschedule or
// Stop on the same scheduler. Callers that guard their own state with a lock
// should check Current with that lock held: a timer that fired just before a
// Stop and Start pair still runs its task, with a stale ticket.
type Scheduler struct {
	mu       sync.Mutex
	clock    Clock
	task     func(Ticket)
	interval time.Duration
	timer    Timer
	armed    bool
	gen      uint64
}

// Ticket identifies the arming a task invocation belongs to.
type Ticket uint64

// New creates a stopped scheduler. A nil clock means RealClock.
func New(clock Clock, task func(Ticket)) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{clock: clock, task: task}
}

// Start arms the scheduler at interval. Starting a running scheduler replaces
// its timer.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.interval = interval
	s.armed = true
	s.armLocked()
	return nil
}

// Reschedule changes the interval of a running scheduler. It is a no-op when
// the scheduler is stopped or the interval is unchanged.
func (s *Scheduler) Reschedule(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed {
		s.interval = interval
		return nil
	}
	if interval == s.interval {
		return nil
	}
	s.cancelLocked()
	s.interval = interval
	s.armLocked()
	return nil
}

// Stop cancels the pending invocation. A task already executing finishes but
// does not re-arm.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.armed = false
}

// Running reports whether a tick is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Interval returns the current interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Current reports whether t belongs to the armed timer, that is, no Start,
// Reschedule or Stop happened since the invocation holding t fired.
func (s *Scheduler) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed && uint64(t) == s.gen
}

func (s *Scheduler) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) armLocked() {
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.interval, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.armed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.task(Ticket(gen))

	s.mu.Lock()
	defer s.mu.Unlock()
	// The task may have stopped or rescheduled us.
	if gen != s.gen || !s.armed {
		return
	}
	s.armLocked()
}
