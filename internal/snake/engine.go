package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// State is the engine's lifecycle state. Exactly one is active at a time.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Misuse errors. Collisions are never reported through these.
var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNotRunning        = errors.New("engine is not running")
)

// Control is an out-of-band intent that changes the lifecycle rather than the
// direction of travel.
type Control int

const (
	// ControlPauseToggle pauses a running game or resumes a paused one.
	ControlPauseToggle Control = iota
	// ControlRestart resets and immediately starts a new run.
	ControlRestart
	// ControlPrimary is the single "action" key: start when idle, pause when
	// running, resume when paused, and return to idle after a game over.
	ControlPrimary
)

func (c Control) String() string {
	switch c {
	case ControlPauseToggle:
		return "pause_toggle"
	case ControlRestart:
		return "restart"
	case ControlPrimary:
		return "primary"
	default:
		return "unknown"
	}
}

// Config holds the rules of a session. It is fixed once the engine is built.
type Config struct {
	Extent          int           // Cells per side
	InitialInterval time.Duration // Tick interval at the start of a run
	IntervalStep    time.Duration // Interval reduction per food eaten
	MinInterval     time.Duration // Floor for the interval
	FoodReward      int           // Points per food
}

// DefaultConfig returns the classic rules: 20×20 board, 200ms ticks shrinking
// by 5ms per food down to 100ms, 10 points per food.
func DefaultConfig() Config {
	return Config{
		Extent:          20,
		InitialInterval: 200 * time.Millisecond,
		IntervalStep:    5 * time.Millisecond,
		MinInterval:     100 * time.Millisecond,
		FoodReward:      10,
	}
}

// Validate checks that the rules describe a playable session.
func (c Config) Validate() error {
	switch {
	case c.Extent < 4:
		return fmt.Errorf("snake: extent %d is too small (minimum 4)", c.Extent)
	case c.MinInterval <= 0:
		return fmt.Errorf("snake: min interval must be positive, got %s", c.MinInterval)
	case c.InitialInterval < c.MinInterval:
		return fmt.Errorf("snake: initial interval %s is below the floor %s", c.InitialInterval, c.MinInterval)
	case c.IntervalStep < 0:
		return fmt.Errorf("snake: interval step must not be negative, got %s", c.IntervalStep)
	case c.FoodReward < 0:
		return fmt.Errorf("snake: food reward must not be negative, got %d", c.FoodReward)
	}
	return nil
}

// Option customises an Engine.
type Option func(*Engine)

// WithPlacer replaces the random food placer.
func WithPlacer(p Placer) Option {
	return func(e *Engine) {
		e.placer = p
	}
}

// WithSeed seeds the default random food placer.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.placer = NewRandomPlacer(rand.New(rand.NewSource(seed)))
	}
}

// Engine is the snake state machine. It owns the body, food, score and speed
// and advances one discrete step per Step call.
//
// Engine is not safe for concurrent use. Callers that drive it from timers and
// input goroutines must serialise access themselves.
type Engine struct {
	cfg    Config
	grid   Grid
	placer Placer

	arbiter  Arbiter
	snake    []Position // Head at index 0
	food     Position
	score    int
	interval time.Duration
	state    State

	steps     uint64
	foodEaten int

	listeners []Listener
}

// New creates an engine in the Idle state.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:  cfg,
		grid: NewGrid(cfg.Extent),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.placer == nil {
		e.placer = NewRandomPlacer(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	e.resetEntities()
	return e, nil
}

// Subscribe registers a listener for engine events.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Engine) emit(ev Event) {
	for _, l := range e.listeners {
		l(ev)
	}
}

func (e *Engine) setState(to State) {
	if e.state == to {
		return
	}
	from := e.state
	e.state = to
	e.emit(StateChanged{From: from, To: to})
}

// resetEntities restores the initial board: a single segment in the centre,
// food at three quarters of the board, idle direction, zero score.
func (e *Engine) resetEntities() {
	center := e.grid.Center()
	e.snake = []Position{center}
	quarter := e.grid.Extent() * 3 / 4
	e.food = Position{X: quarter, Y: quarter}
	if e.food == center || !e.grid.Contains(e.food) {
		e.food = e.placer.Place(OccupancyOf(e.snake), e.grid)
	}
	e.arbiter.Reset()
	e.score = 0
	e.foodEaten = 0
	e.steps = 0
	e.interval = e.cfg.InitialInterval
}

// Start begins a run. From GameOver the board is reset first.
func (e *Engine) Start() error {
	switch e.state {
	case StateIdle:
	case StateGameOver:
		e.resetEntities()
	default:
		return fmt.Errorf("snake: start from %s: %w", e.state, ErrInvalidTransition)
	}
	e.setState(StateRunning)
	return nil
}

// Pause suspends a running game.
func (e *Engine) Pause() error {
	if e.state != StateRunning {
		return fmt.Errorf("snake: pause from %s: %w", e.state, ErrInvalidTransition)
	}
	e.setState(StatePaused)
	return nil
}

// Resume continues a paused game.
func (e *Engine) Resume() error {
	if e.state != StatePaused {
		return fmt.Errorf("snake: resume from %s: %w", e.state, ErrInvalidTransition)
	}
	e.setState(StateRunning)
	return nil
}

// Reset returns to Idle with the initial board. Valid from any state.
func (e *Engine) Reset() {
	e.resetEntities()
	e.setState(StateIdle)
}

// Control applies an out-of-band intent.
func (e *Engine) Control(c Control) error {
	switch c {
	case ControlPauseToggle:
		if e.state == StatePaused {
			return e.Resume()
		}
		return e.Pause()
	case ControlRestart:
		e.Reset()
		return e.Start()
	case ControlPrimary:
		switch e.state {
		case StateIdle:
			return e.Start()
		case StateRunning:
			return e.Pause()
		case StatePaused:
			return e.Resume()
		case StateGameOver:
			e.Reset()
			return nil
		}
	}
	return fmt.Errorf("snake: control %s from %s: %w", c, e.state, ErrInvalidTransition)
}

// ProposeDirection forwards a direction intent to the arbiter. Proposals are
// ignored unless the game is running.
func (e *Engine) ProposeDirection(v Vector) bool {
	if e.state != StateRunning {
		return false
	}
	return e.arbiter.Propose(v)
}

// Step advances the simulation by one cell.
//
// Collisions end the run through a GameOver transition; they are not errors.
// The only error is calling Step outside the Running state.
func (e *Engine) Step() error {
	if e.state != StateRunning {
		return fmt.Errorf("snake: step while %s: %w", e.state, ErrNotRunning)
	}
	e.steps++

	dir := e.arbiter.Commit()
	if dir.IsZero() {
		return nil
	}

	next := e.snake[0].Add(dir)

	if !e.grid.Contains(next) {
		e.finish(CauseWall)
		return nil
	}

	// Checked against the body before the tail moves.
	if e.occupies(next) {
		e.finish(CauseSelf)
		return nil
	}

	e.snake = append(e.snake, Position{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = next

	if next == e.food {
		e.consume(next)
		return nil
	}

	e.snake = e.snake[:len(e.snake)-1]
	return nil
}

// consume rewards the food at p, moves the food and speeds the game up.
// The tail stays, so the body grows by one.
func (e *Engine) consume(p Position) {
	e.score += e.cfg.FoodReward
	e.foodEaten++
	e.emit(FoodConsumed{At: p, Score: e.score, Length: len(e.snake)})

	e.food = e.placer.Place(OccupancyOf(e.snake), e.grid)

	if e.interval > e.cfg.MinInterval {
		e.interval = max(e.cfg.MinInterval, e.interval-e.cfg.IntervalStep)
		if e.cfg.IntervalStep > 0 {
			e.emit(SpeedChanged{Interval: e.interval})
		}
	}
}

func (e *Engine) finish(cause Cause) {
	e.setState(StateGameOver)
	e.emit(GameOver{
		FinalScore: e.score,
		Cause:      cause,
		Steps:      e.steps,
		Length:     len(e.snake),
	})
}

// occupies checks if any segment sits on p.
func (e *Engine) occupies(p Position) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Food returns the food cell.
func (e *Engine) Food() Position { return e.food }

// Interval returns the current tick interval.
func (e *Engine) Interval() time.Duration { return e.interval }

// Direction returns the committed direction.
func (e *Engine) Direction() Vector { return e.arbiter.Committed() }

// Steps returns the number of steps taken in this run.
func (e *Engine) Steps() uint64 { return e.steps }

// Grid returns the board.
func (e *Engine) Grid() Grid { return e.grid }

// Config returns the rules the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Length returns the number of body segments.
func (e *Engine) Length() int { return len(e.snake) }

// Body returns a copy of the body, head first.
func (e *Engine) Body() []Position {
	body := make([]Position, len(e.snake))
	copy(body, e.snake)
	return body
}
