package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestSchedulerFiresAtInterval(t *testing.T) {
	clock := NewManualClock()
	ticks := 0
	s := New(clock, func(Ticket) { ticks++ })

	if err := s.Start(200 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	clock.Advance(199 * time.Millisecond)
	if ticks != 0 {
		t.Fatalf("ticks = %d before the first interval elapsed", ticks)
	}
	clock.Advance(time.Millisecond)
	if ticks != 1 {
		t.Fatalf("ticks = %d, expected 1", ticks)
	}
	clock.Advance(time.Second)
	if ticks != 6 {
		t.Errorf("ticks = %d, expected 6", ticks)
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, expected exactly one armed timer", clock.Pending())
	}
}

func TestSchedulerStop(t *testing.T) {
	clock := NewManualClock()
	ticks := 0
	s := New(clock, func(Ticket) { ticks++ })
	_ = s.Start(100 * time.Millisecond)

	clock.Advance(250 * time.Millisecond)
	s.Stop()
	clock.Advance(time.Second)

	if ticks != 2 {
		t.Errorf("ticks = %d, expected 2", ticks)
	}
	if s.Running() {
		t.Error("Running() = true after Stop")
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, expected 0", clock.Pending())
	}
}

func TestRescheduleFromTask(t *testing.T) {
	clock := NewManualClock()
	var s *Scheduler
	var fired []time.Duration
	s = New(clock, func(Ticket) {
		fired = append(fired, clock.Now())
		_ = s.Reschedule(s.Interval() - 50*time.Millisecond)
	})
	_ = s.Start(200 * time.Millisecond)

	// Fires at 200, then 150 later (350), then 100 later (450).
	clock.Advance(450 * time.Millisecond)

	expected := []time.Duration{200 * time.Millisecond, 350 * time.Millisecond, 450 * time.Millisecond}
	if len(fired) != len(expected) {
		t.Fatalf("fired at %v, expected %v", fired, expected)
	}
	for i := range expected {
		if fired[i] != expected[i] {
			t.Errorf("tick %d at %v, expected %v", i, fired[i], expected[i])
		}
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, expected exactly one armed timer", clock.Pending())
	}
}

func TestRescheduleSameIntervalKeepsTimer(t *testing.T) {
	clock := NewManualClock()
	ticks := 0
	s := New(clock, func(Ticket) { ticks++ })
	_ = s.Start(100 * time.Millisecond)

	clock.Advance(60 * time.Millisecond)
	_ = s.Reschedule(100 * time.Millisecond)
	clock.Advance(40 * time.Millisecond)

	if ticks != 1 {
		t.Errorf("ticks = %d, expected the original deadline to hold", ticks)
	}
}

func TestRescheduleWhileStopped(t *testing.T) {
	clock := NewManualClock()
	s := New(clock, func(Ticket) {})

	if err := s.Reschedule(50 * time.Millisecond); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	if s.Running() {
		t.Error("Reschedule should not arm a stopped scheduler")
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", clock.Pending())
	}
	if s.Interval() != 50*time.Millisecond {
		t.Errorf("Interval() = %v, expected 50ms", s.Interval())
	}
}

func TestStopFromTask(t *testing.T) {
	clock := NewManualClock()
	var s *Scheduler
	ticks := 0
	s = New(clock, func(Ticket) {
		ticks++
		if ticks == 3 {
			s.Stop()
		}
	})
	_ = s.Start(10 * time.Millisecond)

	clock.Advance(time.Second)
	if ticks != 3 {
		t.Errorf("ticks = %d, expected 3", ticks)
	}
}

func TestRestartReplacesTimer(t *testing.T) {
	clock := NewManualClock()
	ticks := 0
	s := New(clock, func(Ticket) { ticks++ })
	_ = s.Start(100 * time.Millisecond)
	_ = s.Start(100 * time.Millisecond)

	if clock.Pending() != 1 {
		t.Fatalf("Pending() = %d after double Start, expected 1", clock.Pending())
	}
	clock.Advance(100 * time.Millisecond)
	if ticks != 1 {
		t.Errorf("ticks = %d, expected 1", ticks)
	}
}

func TestInvalidInterval(t *testing.T) {
	s := New(NewManualClock(), func(Ticket) {})
	if err := s.Start(0); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Start(0) error = %v, expected ErrInvalidInterval", err)
	}
	if err := s.Reschedule(-time.Second); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Reschedule(-1s) error = %v, expected ErrInvalidInterval", err)
	}
}

func TestRealClock(t *testing.T) {
	done := make(chan struct{})
	s := New(nil, func(Ticket) {
		select {
		case <-done:
		default:
			close(done)
		}
	})
	_ = s.Start(time.Millisecond)
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("real clock never fired")
	}
}

func TestTicketCurrent(t *testing.T) {
	clock := NewManualClock()
	var s *Scheduler
	var seen []Ticket
	current := 0
	s = New(clock, func(tk Ticket) {
		seen = append(seen, tk)
		if s.Current(tk) {
			current++
		}
	})
	_ = s.Start(100 * time.Millisecond)
	clock.Advance(200 * time.Millisecond)

	if len(seen) != 2 || current != 2 {
		t.Fatalf("seen %d tickets, %d current; expected 2 and 2", len(seen), current)
	}
	if seen[0] != seen[1] {
		t.Errorf("re-arming changed the ticket: %d then %d", seen[0], seen[1])
	}

	last := seen[1]
	s.Stop()
	if s.Current(last) {
		t.Error("Current() = true after Stop")
	}
	_ = s.Start(100 * time.Millisecond)
	if s.Current(last) {
		t.Error("Current() = true for a ticket issued before Start")
	}
	_ = s.Reschedule(50 * time.Millisecond)
	clock.Advance(50 * time.Millisecond)
	if s.Current(last) || !s.Current(seen[len(seen)-1]) {
		t.Error("only the ticket of the latest arming should be current")
	}
}
