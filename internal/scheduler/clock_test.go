package scheduler

import (
	"testing"
	"time"
)

func TestManualClockOrder(t *testing.T) {
	c := NewManualClock()
	var order []string
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(30 * time.Millisecond)

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order = %v, expected [a b c]", order)
	}
	if c.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, expected 30ms", c.Now())
	}
}

func TestManualClockStop(t *testing.T) {
	c := NewManualClock()
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })

	if !tm.Stop() {
		t.Error("first Stop() = false, expected true")
	}
	if tm.Stop() {
		t.Error("second Stop() = true, expected false")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestManualClockNextDeadline(t *testing.T) {
	c := NewManualClock()
	if _, ok := c.NextDeadline(); ok {
		t.Error("NextDeadline() ok on an empty clock")
	}
	c.AfterFunc(100*time.Millisecond, func() {})
	c.Advance(40 * time.Millisecond)
	if d, ok := c.NextDeadline(); !ok || d != 60*time.Millisecond {
		t.Errorf("NextDeadline() = %v, %v; expected 60ms, true", d, ok)
	}
}
