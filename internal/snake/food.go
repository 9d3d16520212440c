package snake

import (
	"errors"
	"math/rand"
)

// ErrGridFull is the panic value of RandomPlacer when no free cell exists.
// The board is sized so that this cannot happen in normal play.
var ErrGridFull = errors.New("snake: no free cell for food")

// Occupancy is a set of occupied cells.
type Occupancy map[Position]struct{}

// OccupancyOf builds the set of cells covered by body.
func OccupancyOf(body []Position) Occupancy {
	occ := make(Occupancy, len(body))
	for _, p := range body {
		occ[p] = struct{}{}
	}
	return occ
}

// Has reports whether p is occupied.
func (o Occupancy) Has(p Position) bool {
	_, ok := o[p]
	return ok
}

// Placer chooses where the next piece of food goes.
type Placer interface {
	Place(occupied Occupancy, grid Grid) Position
}

// RandomPlacer places food by uniform rejection sampling.
type RandomPlacer struct {
	rng *rand.Rand
}

// NewRandomPlacer creates a placer drawing from rng.
func NewRandomPlacer(rng *rand.Rand) *RandomPlacer {
	return &RandomPlacer{rng: rng}
}

// Place draws uniformly random cells until one is not occupied.
// It panics with ErrGridFull if every cell is occupied.
func (p *RandomPlacer) Place(occupied Occupancy, grid Grid) Position {
	if len(occupied) >= grid.Cells() {
		panic(ErrGridFull)
	}
	for {
		candidate := Position{
			X: p.rng.Intn(grid.Extent()),
			Y: p.rng.Intn(grid.Extent()),
		}
		if !occupied.Has(candidate) {
			return candidate
		}
	}
}
