package session

import (
	"time"

	"github.com/vovakirdan/neon-snake/internal/effects"
	"github.com/vovakirdan/neon-snake/internal/snake"
)

// Frame is an immutable view of a session after a tick or command. Renderers
// read it without touching the engine.
type Frame struct {
	Seq       uint64
	State     snake.State
	Body      []snake.Position // Head first
	Food      snake.Position
	Score     int
	Interval  time.Duration
	Direction snake.Vector
	Extent    int
	CellSize  int // Surface units per cell; effect positions use the same units
	Particles []effects.Particle
	Popups    []effects.Popup
	Result    *Result // Set once the run is over
}

// Head returns the head cell.
func (f Frame) Head() snake.Position {
	if len(f.Body) == 0 {
		return snake.Position{}
	}
	return f.Body[0]
}

// Result is the outcome of one finished run.
type Result struct {
	SessionID string
	Player    string
	Mode      string
	Score     int
	Length    int
	Steps     uint64
	Cause     snake.Cause
}
