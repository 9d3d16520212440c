package snake

import "time"

// Event is something the engine reports to its listeners while it runs.
// Events are delivered synchronously, in order, from inside the call that
// caused them.
type Event interface {
	snakeEvent()
}

// Listener receives engine events.
type Listener func(Event)

// FoodConsumed is emitted when the head lands on the food cell.
type FoodConsumed struct {
	At     Position // Cell the food occupied
	Score  int      // Score after the reward
	Length int      // Body length after growing
}

func (FoodConsumed) snakeEvent() {}

// GameOver is emitted once when a collision ends the run.
type GameOver struct {
	FinalScore int
	Cause      Cause
	Steps      uint64
	Length     int
}

func (GameOver) snakeEvent() {}

// SpeedChanged is emitted when the tick interval shrinks.
type SpeedChanged struct {
	Interval time.Duration
}

func (SpeedChanged) snakeEvent() {}

// StateChanged is emitted on every state transition.
type StateChanged struct {
	From State
	To   State
}

func (StateChanged) snakeEvent() {}

// Cause describes what ended a run.
type Cause int

const (
	CauseNone Cause = iota
	CauseWall
	CauseSelf
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	default:
		return "none"
	}
}
