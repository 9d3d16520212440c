// Package session runs one snake game in real time. It owns the engine, the
// effects arenas and the tick scheduler, and serialises every mutation behind
// a single mutex so keyboard, mouse and network input can arrive from any
// goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neon-snake/internal/effects"
	"github.com/vovakirdan/neon-snake/internal/scheduler"
	"github.com/vovakirdan/neon-snake/internal/snake"
)

// ErrClosed is returned by commands issued after Close.
var ErrClosed = errors.New("session: closed")

// Recorder persists finished runs.
type Recorder interface {
	RecordGame(ctx context.Context, r Result) error
}

// Options configures a Session.
type Options struct {
	Engine   snake.Config
	Effects  effects.Config
	CellSize int   // Surface units per cell, 20 by default
	Seed     int64 // Zero means time-based
	Placer   snake.Placer
	Clock    scheduler.Clock
	Logger   *log.Logger
	Recorder Recorder
	Mode     string
	Player   string

	// FrameBuffer is the capacity of the Frames channel.
	FrameBuffer int
}

// Session is a live game.
type Session struct {
	mu     sync.Mutex
	id     string
	opts   Options
	engine *snake.Engine
	fx     *effects.System
	sched  *scheduler.Scheduler
	logger *log.Logger

	seq    uint64
	result *Result
	outbox []snake.Event
	closed bool

	listenersMu sync.RWMutex
	listeners   []snake.Listener

	frames    chan Frame
	done      chan struct{}
	closeOnce sync.Once
}

// New builds an idle session.
func New(opts Options) (*Session, error) {
	if opts.CellSize <= 0 {
		opts.CellSize = 20
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.FrameBuffer < 1 {
		opts.FrameBuffer = 8
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Mode == "" {
		opts.Mode = "normal"
	}
	if err := opts.Effects.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	engineOpts := []snake.Option{snake.WithSeed(opts.Seed)}
	if opts.Placer != nil {
		engineOpts = append(engineOpts, snake.WithPlacer(opts.Placer))
	}
	engine, err := snake.New(opts.Engine, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		id:     uuid.NewString(),
		opts:   opts,
		engine: engine,
		fx:     effects.New(opts.Effects, opts.Seed+1),
		frames: make(chan Frame, opts.FrameBuffer),
		done:   make(chan struct{}),
	}
	s.logger = opts.Logger.With("session", s.id[:8])
	s.sched = scheduler.New(opts.Clock, s.tick)
	engine.Subscribe(s.onEngineEvent)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Subscribe registers a listener for engine events. Listeners run after the
// session lock is released, in the order events were produced.
func (s *Session) Subscribe(l snake.Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Frames delivers a frame after every tick and command. When the reader falls
// behind, the oldest undelivered frame is dropped.
func (s *Session) Frames() <-chan Frame {
	return s.frames
}

// Done closes when the session is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Frame returns the current frame.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

// Start begins a run, from Idle or after a game over.
func (s *Session) Start() error {
	return s.command(func() error {
		if s.engine.State() == snake.StateGameOver {
			s.fx.Clear()
			s.result = nil
		}
		if err := s.engine.Start(); err != nil {
			return err
		}
		return s.sched.Start(s.engine.Interval())
	})
}

// Pause halts the tick loop.
func (s *Session) Pause() error {
	return s.command(func() error {
		if err := s.engine.Pause(); err != nil {
			return err
		}
		s.sched.Stop()
		return nil
	})
}

// Resume restarts the tick loop at the current interval.
func (s *Session) Resume() error {
	return s.command(func() error {
		if err := s.engine.Resume(); err != nil {
			return err
		}
		return s.sched.Start(s.engine.Interval())
	})
}

// Reset cancels any pending tick and returns to Idle.
func (s *Session) Reset() error {
	return s.command(func() error {
		s.sched.Stop()
		s.engine.Reset()
		s.fx.Clear()
		s.result = nil
		return nil
	})
}

// Control applies an out-of-band intent such as pause toggle or restart.
func (s *Session) Control(c snake.Control) error {
	return s.command(func() error {
		prev := s.engine.State()
		// A rejected intent leaves the engine and the tick phase alone.
		if err := s.engine.Control(c); err != nil {
			return err
		}
		if prev == snake.StateGameOver && s.engine.State() != snake.StateGameOver {
			s.fx.Clear()
			s.result = nil
		}
		s.sched.Stop()
		if s.engine.State() == snake.StateRunning {
			return s.sched.Start(s.engine.Interval())
		}
		return nil
	})
}

// ProposeDirection forwards a direction intent. It reports whether the
// proposal was accepted.
func (s *Session) ProposeDirection(v snake.Vector) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.engine.ProposeDirection(v)
}

// Snapshot returns the engine snapshot.
func (s *Session) Snapshot() snake.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Close stops the tick loop and closes Done. Further commands fail with
// ErrClosed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.sched.Stop()
		s.mu.Unlock()
		close(s.done)
	})
}

// command runs fn under the lock and then publishes a frame and any events
// the command produced.
func (s *Session) command(fn func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := fn()
	frame := s.frameLocked()
	events := s.drainLocked()
	s.mu.Unlock()

	s.dispatch(events)
	s.publish(frame)
	return err
}

// tick is the scheduler task: step, advance effects, observe. A timer that
// fired while a command held the lock carries a stale ticket once that
// command stopped or re-armed the scheduler, and is dropped.
func (s *Session) tick(t scheduler.Ticket) {
	s.mu.Lock()
	if s.closed || s.engine.State() != snake.StateRunning || !s.sched.Current(t) {
		s.mu.Unlock()
		return
	}
	if err := s.engine.Step(); err != nil {
		s.logger.Error("step failed", "error", err)
	}
	s.fx.Advance()
	frame := s.frameLocked()
	events := s.drainLocked()
	result := s.pendingResultLocked(events)
	s.mu.Unlock()

	s.dispatch(events)
	s.publish(frame)
	if result != nil {
		s.record(*result)
	}
}

// onEngineEvent runs inside Step or a command with the session lock held.
func (s *Session) onEngineEvent(ev snake.Event) {
	s.outbox = append(s.outbox, ev)

	switch e := ev.(type) {
	case snake.FoodConsumed:
		cell := float64(s.opts.CellSize)
		corner := effects.Vec2{X: float64(e.At.X) * cell, Y: float64(e.At.Y) * cell}
		s.fx.Burst(effects.Vec2{X: corner.X + cell/2, Y: corner.Y + cell/2})
		s.fx.Popup(corner, fmt.Sprintf("+%d", s.engine.Config().FoodReward))
	case snake.SpeedChanged:
		if err := s.sched.Reschedule(e.Interval); err != nil {
			s.logger.Error("reschedule failed", "interval", e.Interval, "error", err)
		}
		s.logger.Debug("speed changed", "interval", e.Interval)
	case snake.GameOver:
		s.sched.Stop()
		s.result = &Result{
			SessionID: s.id,
			Player:    s.opts.Player,
			Mode:      s.opts.Mode,
			Score:     e.FinalScore,
			Length:    e.Length,
			Steps:     e.Steps,
			Cause:     e.Cause,
		}
		s.logger.Info("game over", "score", e.FinalScore, "cause", e.Cause, "steps", e.Steps)
		s.logger.Debug("final board", "engine", s.engine.DebugState())
	}
}

func (s *Session) pendingResultLocked(events []snake.Event) *Result {
	for _, ev := range events {
		if _, ok := ev.(snake.GameOver); ok && s.result != nil {
			r := *s.result
			return &r
		}
	}
	return nil
}

func (s *Session) record(r Result) {
	if s.opts.Recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.opts.Recorder.RecordGame(ctx, r); err != nil {
		s.logger.Warn("could not record game", "error", err)
	}
}

func (s *Session) drainLocked() []snake.Event {
	if len(s.outbox) == 0 {
		return nil
	}
	events := s.outbox
	s.outbox = nil
	return events
}

func (s *Session) dispatch(events []snake.Event) {
	if len(events) == 0 {
		return
	}
	s.listenersMu.RLock()
	listeners := s.listeners
	s.listenersMu.RUnlock()
	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}

// publish sends f without blocking, dropping the oldest queued frame when
// the buffer is full.
func (s *Session) publish(f Frame) {
	select {
	case s.frames <- f:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- f:
	default:
	}
}

func (s *Session) frameLocked() Frame {
	s.seq++
	f := Frame{
		Seq:       s.seq,
		State:     s.engine.State(),
		Body:      s.engine.Body(),
		Food:      s.engine.Food(),
		Score:     s.engine.Score(),
		Interval:  s.engine.Interval(),
		Direction: s.engine.Direction(),
		Extent:    s.engine.Grid().Extent(),
		CellSize:  s.opts.CellSize,
		Particles: s.fx.Particles(),
		Popups:    s.fx.Popups(),
	}
	if s.result != nil {
		r := *s.result
		f.Result = &r
	}
	return f
}
