package snake

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot captures the engine state for determinism checks and headless runs.
type Snapshot struct {
	Steps     uint64
	State     State
	Score     int
	FoodEaten int
	Length    int
	Head      Position
	Food      Position
	Direction Vector
	Interval  time.Duration
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Steps:     e.steps,
		State:     e.state,
		Score:     e.score,
		FoodEaten: e.foodEaten,
		Length:    len(e.snake),
		Head:      e.snake[0],
		Food:      e.food,
		Direction: e.arbiter.Committed(),
		Interval:  e.interval,
	}
}

// DebugState returns a string representation of the engine state.
func (e *Engine) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Steps: %d, Score: %d, State: %s\n", e.steps, e.score, e.state))
	b.WriteString(fmt.Sprintf("Snake len: %d, Direction: %s, Interval: %s\n", len(e.snake), e.arbiter.Committed(), e.interval))
	b.WriteString(fmt.Sprintf("Head: %s, Food: %s\n", e.snake[0], e.food))
	return b.String()
}
