// Package snake contains the pure simulation core: the board, the input
// arbiter, food placement and the engine state machine. Nothing here knows
// about timers, terminals or storage, so every rule can be driven step by
// step from tests.
package snake

import (
	"fmt"
	"strings"
)

// Position is a cell on the board.
type Position struct {
	X, Y int
}

// Add returns the position moved by v.
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.DX, Y: p.Y + v.DY}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vector is a movement of at most one cell along one axis.
type Vector struct {
	DX, DY int
}

// The five legal vectors. Idle only appears before the first committed move.
var (
	Idle  = Vector{}
	Up    = Vector{DX: 0, DY: -1}
	Down  = Vector{DX: 0, DY: 1}
	Left  = Vector{DX: -1, DY: 0}
	Right = Vector{DX: 1, DY: 0}
)

// IsZero reports whether v is the idle vector.
func (v Vector) IsZero() bool {
	return v == Idle
}

// Valid reports whether v is one of Up, Down, Left, Right or Idle.
func (v Vector) Valid() bool {
	switch v {
	case Idle, Up, Down, Left, Right:
		return true
	}
	return false
}

// Inverse returns the opposite vector.
func (v Vector) Inverse() Vector {
	return Vector{DX: -v.DX, DY: -v.DY}
}

// IsInverseOf reports whether v points exactly against o.
// Idle is never the inverse of anything.
func (v Vector) IsInverseOf(o Vector) bool {
	return !v.IsZero() && v == o.Inverse()
}

func (v Vector) String() string {
	switch v {
	case Idle:
		return "idle"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("(%d,%d)", v.DX, v.DY)
	}
}

// ParseVector converts a direction name ("up", "l", "Right", ...) into a Vector.
// On-screen buttons and scripted runs use it to name directions.
func ParseVector(name string) (Vector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "idle", "none", ".":
		return Idle, nil
	}
	return Idle, fmt.Errorf("snake: unknown direction %q", name)
}

// Grid is a fixed square board of extent×extent cells.
type Grid struct {
	extent int
}

// NewGrid creates a board with the given extent.
func NewGrid(extent int) Grid {
	return Grid{extent: extent}
}

// GridForSurface derives the board from a square drawing surface and a cell size,
// e.g. a 400 unit surface with 20 unit cells gives a 20×20 board.
func GridForSurface(surface, cellSize int) Grid {
	if cellSize <= 0 {
		return Grid{}
	}
	return Grid{extent: surface / cellSize}
}

// Extent returns the number of cells along each side.
func (g Grid) Extent() int {
	return g.extent
}

// Cells returns the total number of cells.
func (g Grid) Cells() int {
	return g.extent * g.extent
}

// Contains reports whether p lies on the board.
func (g Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.extent && p.Y >= 0 && p.Y < g.extent
}

// Center returns the middle cell.
func (g Grid) Center() Position {
	return Position{X: g.extent / 2, Y: g.extent / 2}
}
