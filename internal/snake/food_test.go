package snake

import (
	"errors"
	"math/rand"
	"testing"
)

func TestRandomPlacerAvoidsOccupied(t *testing.T) {
	g := NewGrid(4)
	p := NewRandomPlacer(rand.New(rand.NewSource(42)))

	// Leave a single free cell.
	occupied := Occupancy{}
	for y := range 4 {
		for x := range 4 {
			if x == 2 && y == 3 {
				continue
			}
			occupied[Position{X: x, Y: y}] = struct{}{}
		}
	}

	for range 20 {
		if got := p.Place(occupied, g); got != (Position{X: 2, Y: 3}) {
			t.Fatalf("Place() = %s, expected the only free cell (2,3)", got)
		}
	}
}

func TestRandomPlacerCoversBoard(t *testing.T) {
	g := NewGrid(5)
	p := NewRandomPlacer(rand.New(rand.NewSource(7)))

	seen := make(map[Position]bool)
	for range 2000 {
		seen[p.Place(Occupancy{}, g)] = true
	}
	if len(seen) != g.Cells() {
		t.Errorf("placed food on %d distinct cells, expected all %d", len(seen), g.Cells())
	}
}

func TestRandomPlacerFullGridPanics(t *testing.T) {
	g := NewGrid(2)
	p := NewRandomPlacer(rand.New(rand.NewSource(1)))
	full := OccupancyOf([]Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrGridFull) {
			t.Errorf("recover() = %v, expected ErrGridFull", r)
		}
	}()
	p.Place(full, g)
}
