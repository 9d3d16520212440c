package snake

import "testing"

func TestGridContains(t *testing.T) {
	g := NewGrid(20)

	tests := []struct {
		name     string
		p        Position
		expected bool
	}{
		{"origin", Position{0, 0}, true},
		{"center", Position{10, 10}, true},
		{"last cell", Position{19, 19}, true},
		{"x at extent", Position{20, 5}, false},
		{"y at extent", Position{5, 20}, false},
		{"negative x", Position{-1, 5}, false},
		{"negative y", Position{5, -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%s) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestGridForSurface(t *testing.T) {
	g := GridForSurface(400, 20)
	if g.Extent() != 20 {
		t.Errorf("Extent() = %d, expected 20", g.Extent())
	}
	if g.Cells() != 400 {
		t.Errorf("Cells() = %d, expected 400", g.Cells())
	}
	if GridForSurface(400, 0).Extent() != 0 {
		t.Error("GridForSurface with zero cell size should be empty")
	}
}

func TestVectorInverse(t *testing.T) {
	pairs := [][2]Vector{{Up, Down}, {Left, Right}}
	for _, p := range pairs {
		if !p[0].IsInverseOf(p[1]) || !p[1].IsInverseOf(p[0]) {
			t.Errorf("%s and %s should be inverses", p[0], p[1])
		}
	}
	if Up.IsInverseOf(Left) {
		t.Error("Up is not the inverse of Left")
	}
	if Idle.IsInverseOf(Idle) {
		t.Error("Idle is never an inverse")
	}
	if (Vector{DX: 1, DY: 1}).Valid() {
		t.Error("diagonal vector should not be valid")
	}
}

func TestParseVector(t *testing.T) {
	tests := []struct {
		in       string
		expected Vector
		ok       bool
	}{
		{"up", Up, true},
		{"D", Down, true},
		{" left ", Left, true},
		{"r", Right, true},
		{".", Idle, true},
		{"sideways", Idle, false},
	}

	for _, tc := range tests {
		got, err := ParseVector(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseVector(%q) error = %v, expected ok=%v", tc.in, err, tc.ok)
		}
		if got != tc.expected {
			t.Errorf("ParseVector(%q) = %s, expected %s", tc.in, got, tc.expected)
		}
	}
}
