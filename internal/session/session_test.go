package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/neon-snake/internal/effects"
	"github.com/vovakirdan/neon-snake/internal/scheduler"
	"github.com/vovakirdan/neon-snake/internal/snake"
)

// fixedPlacer returns cells from a queue, then the first free cell.
type fixedPlacer struct {
	queue []snake.Position
}

func (p *fixedPlacer) Place(occupied snake.Occupancy, grid snake.Grid) snake.Position {
	for len(p.queue) > 0 {
		next := p.queue[0]
		p.queue = p.queue[1:]
		if !occupied.Has(next) {
			return next
		}
	}
	for y := range grid.Extent() {
		for x := range grid.Extent() {
			pos := snake.Position{X: x, Y: y}
			if !occupied.Has(pos) {
				return pos
			}
		}
	}
	panic(snake.ErrGridFull)
}

type memRecorder struct {
	mu      sync.Mutex
	results []Result
	err     error
}

func (r *memRecorder) RecordGame(_ context.Context, res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return r.err
}

func newTestSession(t *testing.T, placer snake.Placer, rec Recorder) (*Session, *scheduler.ManualClock) {
	t.Helper()
	clock := scheduler.NewManualClock()
	s, err := New(Options{
		Engine:   snake.DefaultConfig(),
		Effects:  effects.DefaultConfig(),
		Seed:     1,
		Placer:   placer,
		Clock:    clock,
		Recorder: rec,
		Player:   "tester",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s, clock
}

func TestSessionTicksAtInterval(t *testing.T) {
	s, clock := newTestSession(t, nil, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.ProposeDirection(snake.Up)

	clock.Advance(200 * time.Millisecond)
	if got := s.Frame().Head(); got != (snake.Position{X: 10, Y: 9}) {
		t.Errorf("head after one tick = %s, expected (10,9)", got)
	}
	clock.Advance(600 * time.Millisecond)
	if got := s.Frame().Head(); got != (snake.Position{X: 10, Y: 6}) {
		t.Errorf("head after four ticks = %s, expected (10,6)", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, expected one tick in flight", clock.Pending())
	}
}

func TestSessionFoodSpawnsEffectsAndSpeedsUp(t *testing.T) {
	s, clock := newTestSession(t, &fixedPlacer{queue: []snake.Position{{X: 0, Y: 0}}}, nil)

	var events []snake.Event
	s.Subscribe(func(ev snake.Event) { events = append(events, ev) })

	_ = s.Start()
	s.ProposeDirection(snake.Right)
	// Food starts at (15,15); head at (10,10). Five steps right, five down.
	clock.Advance(5 * 200 * time.Millisecond)
	s.ProposeDirection(snake.Down)
	clock.Advance(5 * 200 * time.Millisecond)

	f := s.Frame()
	if f.Score != 10 {
		t.Fatalf("Score = %d, expected 10", f.Score)
	}
	if f.Interval != 195*time.Millisecond {
		t.Errorf("Interval = %v, expected 195ms", f.Interval)
	}
	if len(f.Particles) != 8 {
		t.Errorf("len(Particles) = %d, expected 8", len(f.Particles))
	}
	if len(f.Popups) != 1 || f.Popups[0].Text != "+10" {
		t.Fatalf("Popups = %+v, expected one +10", f.Popups)
	}
	// Spawned at the food cell's corner, then advanced once in the same tick.
	if f.Popups[0].Pos != (effects.Vec2{X: 300, Y: 298}) {
		t.Errorf("popup at %v, expected (300,298)", f.Popups[0].Pos)
	}

	// Next tick follows the shorter interval.
	clock.Advance(194 * time.Millisecond)
	if s.Frame().Head() != (snake.Position{X: 15, Y: 15}) {
		t.Fatal("ticked before the new interval elapsed")
	}
	clock.Advance(time.Millisecond)
	if s.Frame().Head() != (snake.Position{X: 15, Y: 16}) {
		t.Errorf("head = %s, expected (15,16)", s.Frame().Head())
	}

	var consumed, speed int
	for _, ev := range events {
		switch ev.(type) {
		case snake.FoodConsumed:
			consumed++
		case snake.SpeedChanged:
			speed++
		}
	}
	if consumed != 1 || speed != 1 {
		t.Errorf("FoodConsumed=%d SpeedChanged=%d, expected 1 each", consumed, speed)
	}
}

func TestSessionGameOverStopsAndRecordsOnce(t *testing.T) {
	rec := &memRecorder{}
	s, clock := newTestSession(t, nil, rec)

	_ = s.Start()
	s.ProposeDirection(snake.Left)
	clock.Advance(20 * time.Second)

	f := s.Frame()
	if f.State != snake.StateGameOver {
		t.Fatalf("State = %s, expected game_over", f.State)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after game over, expected 0", clock.Pending())
	}
	if f.Result == nil || f.Result.Cause != snake.CauseWall {
		t.Errorf("Result = %+v, expected wall collision", f.Result)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.results) != 1 {
		t.Fatalf("recorded %d results, expected 1", len(rec.results))
	}
	got := rec.results[0]
	if got.SessionID != s.ID() || got.Player != "tester" || got.Mode != "normal" {
		t.Errorf("Result = %+v, expected session id, player and default mode", got)
	}
	if got.Steps != 11 {
		t.Errorf("Steps = %d, expected 11", got.Steps)
	}
}

func TestSessionRecorderFailureIsNotFatal(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	s, clock := newTestSession(t, nil, rec)

	_ = s.Start()
	s.ProposeDirection(snake.Up)
	clock.Advance(20 * time.Second)

	if s.Frame().State != snake.StateGameOver {
		t.Fatal("expected game over")
	}
	if err := s.Start(); err != nil {
		t.Errorf("Start() after recorder failure error = %v", err)
	}
}

func TestSessionPauseResume(t *testing.T) {
	s, clock := newTestSession(t, nil, nil)
	_ = s.Start()
	s.ProposeDirection(snake.Down)
	clock.Advance(200 * time.Millisecond)

	if err := s.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	clock.Advance(time.Second)
	if got := s.Frame().Head(); got != (snake.Position{X: 10, Y: 11}) {
		t.Errorf("head moved while paused: %s", got)
	}
	if s.ProposeDirection(snake.Left) {
		t.Error("proposal accepted while paused")
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	clock.Advance(200 * time.Millisecond)
	if got := s.Frame().Head(); got != (snake.Position{X: 10, Y: 12}) {
		t.Errorf("head after resume = %s, expected (10,12)", got)
	}
}

func TestSessionResetCancelsPendingTick(t *testing.T) {
	s, clock := newTestSession(t, nil, nil)
	_ = s.Start()
	s.ProposeDirection(snake.Right)
	clock.Advance(100 * time.Millisecond)

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after reset, expected 0", clock.Pending())
	}
	clock.Advance(time.Second)

	f := s.Frame()
	if f.State != snake.StateIdle || f.Head() != (snake.Position{X: 10, Y: 10}) {
		t.Errorf("frame after reset = %s at %s, expected idle at (10,10)", f.State, f.Head())
	}
}

// heldClock records callbacks instead of running them, so a test can fire a
// timer at a moment of its choosing.
type heldClock struct {
	mu  sync.Mutex
	fns []func()
}

type heldTimer struct{}

func (heldTimer) Stop() bool { return false }

func (c *heldClock) AfterFunc(_ time.Duration, f func()) scheduler.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fns = append(c.fns, f)
	return heldTimer{}
}

func (c *heldClock) callback(i int) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fns[i]
}

func TestSessionStaleTickIsDropped(t *testing.T) {
	tests := []struct {
		name      string
		interrupt func(*Session) error
	}{
		{"pause then resume", func(s *Session) error {
			if err := s.Pause(); err != nil {
				return err
			}
			return s.Resume()
		}},
		{"reset then start", func(s *Session) error {
			if err := s.Reset(); err != nil {
				return err
			}
			return s.Start()
		}},
		{"restart", func(s *Session) error {
			return s.Control(snake.ControlRestart)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &heldClock{}
			s, err := New(Options{
				Engine:  snake.DefaultConfig(),
				Effects: effects.DefaultConfig(),
				Seed:    1,
				Clock:   clock,
			})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer s.Close()

			// Park the task after the scheduler has let it through, before
			// it reaches the session lock.
			entered := make(chan struct{})
			release := make(chan struct{})
			s.sched = scheduler.New(clock, func(tk scheduler.Ticket) {
				close(entered)
				<-release
				s.tick(tk)
			})

			if err := s.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			done := make(chan struct{})
			go func() {
				clock.callback(0)()
				close(done)
			}()
			<-entered

			if err := tt.interrupt(s); err != nil {
				t.Fatalf("interrupt error = %v", err)
			}
			close(release)
			<-done

			if got := s.Snapshot().Steps; got != 0 {
				t.Errorf("Steps = %d after a stale timer ran, expected 0", got)
			}
			if s.Snapshot().State != snake.StateRunning {
				t.Fatalf("State = %s, expected running", s.Snapshot().State)
			}
		})
	}
}

func TestSessionControlKeepsTickPhase(t *testing.T) {
	s, clock := newTestSession(t, nil, nil)

	if err := s.Control(snake.ControlPauseToggle); !errors.Is(err, snake.ErrInvalidTransition) {
		t.Errorf("pause toggle from idle error = %v, expected ErrInvalidTransition", err)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after a rejected intent, expected 0", clock.Pending())
	}

	_ = s.Start()
	clock.Advance(100 * time.Millisecond)
	// Restart re-arms a full interval.
	if err := s.Control(snake.ControlRestart); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	clock.Advance(100 * time.Millisecond)
	if got := s.Snapshot().Steps; got != 0 {
		t.Errorf("Steps = %d at the old deadline, expected 0", got)
	}
	clock.Advance(100 * time.Millisecond)
	if got := s.Snapshot().Steps; got != 1 {
		t.Errorf("Steps = %d one interval after restart, expected 1", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, expected one tick in flight", clock.Pending())
	}
}

func TestSessionControlPrimary(t *testing.T) {
	s, clock := newTestSession(t, nil, nil)

	steps := []snake.State{snake.StateRunning, snake.StatePaused, snake.StateRunning}
	for i, want := range steps {
		if err := s.Control(snake.ControlPrimary); err != nil {
			t.Fatalf("step %d: Control() error = %v", i, err)
		}
		if got := s.Frame().State; got != want {
			t.Fatalf("step %d: State = %s, expected %s", i, got, want)
		}
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d while running, expected 1", clock.Pending())
	}

	s.ProposeDirection(snake.Up)
	clock.Advance(20 * time.Second)
	if err := s.Control(snake.ControlPrimary); err != nil {
		t.Fatalf("Control() after game over error = %v", err)
	}
	f := s.Frame()
	if f.State != snake.StateIdle || f.Result != nil || len(f.Particles) != 0 {
		t.Errorf("frame = %+v, expected clean idle board", f)
	}
}

func TestSessionMisuseErrors(t *testing.T) {
	s, _ := newTestSession(t, nil, nil)

	if err := s.Pause(); !errors.Is(err, snake.ErrInvalidTransition) {
		t.Errorf("Pause() from idle error = %v, expected ErrInvalidTransition", err)
	}
	if err := s.Resume(); !errors.Is(err, snake.ErrInvalidTransition) {
		t.Errorf("Resume() from idle error = %v, expected ErrInvalidTransition", err)
	}

	s.Close()
	if err := s.Start(); !errors.Is(err, ErrClosed) {
		t.Errorf("Start() after Close error = %v, expected ErrClosed", err)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done() not closed after Close")
	}
}

func TestSessionFramesDropOldest(t *testing.T) {
	s, clock := newTestSession(t, nil, nil)
	_ = s.Start()
	s.ProposeDirection(snake.Down)
	clock.Advance(5 * 200 * time.Millisecond)

	var last Frame
	n := 0
	for {
		select {
		case f := <-s.Frames():
			last = f
			n++
			continue
		default:
		}
		break
	}
	if n == 0 || n > 8 {
		t.Fatalf("received %d frames, expected between 1 and the buffer size", n)
	}
	if last.Head() != (snake.Position{X: 10, Y: 15}) {
		t.Errorf("latest frame head = %s, expected (10,15)", last.Head())
	}
}

func TestSessionInvalidConfig(t *testing.T) {
	cfg := snake.DefaultConfig()
	cfg.Extent = 2
	if _, err := New(Options{Engine: cfg, Effects: effects.DefaultConfig()}); err == nil {
		t.Error("New() with extent 2 should fail")
	}
}
