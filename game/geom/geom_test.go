package geom

import "testing"

func TestSign(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{42, 1},
		{-1, -1},
		{-900, -1},
	}

	for _, test := range tests {
		if got := Sign(test.input); got != test.expected {
			t.Errorf("Sign(%d) = %d, expected %d", test.input, got, test.expected)
		}
	}
}

func TestUnitDiff(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected Point
	}{
		{"no displacement", Point{5, 5}, Point{5, 5}, Point{0, 0}},
		{"right", Point{5, 5}, Point{300, 5}, Point{1, 0}},
		{"up-left", Point{5, 5}, Point{1, 2}, Point{-1, -1}},
		{"down", Point{0, 0}, Point{0, 7}, Point{0, 1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := UnitDiff(test.a, test.b); got != test.expected {
				t.Errorf("UnitDiff(%v, %v) = %v, expected %v", test.a, test.b, got, test.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"top-left corner", Point{10, 20}, true},
		{"inside", Point{25, 50}, true},
		{"right edge exclusive", Point{40, 30}, false},
		{"bottom edge exclusive", Point{15, 60}, false},
		{"left of rect", Point{9, 30}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := r.Contains(test.p); got != test.expected {
				t.Errorf("Contains(%v) = %v, expected %v", test.p, got, test.expected)
			}
		})
	}
}

func TestRectHelpers(t *testing.T) {
	r := RectAt(Point{2, 3}, Size{4, 6})
	if r != (Rect{X: 2, Y: 3, W: 4, H: 6}) {
		t.Fatalf("RectAt produced %+v", r)
	}
	if c := r.Center(); c != (Point{4, 6}) {
		t.Errorf("Center() = %v", c)
	}
	if m := r.Move(Point{-2, 1}); m.TopLeft() != (Point{0, 4}) || m.Size() != r.Size() {
		t.Errorf("Move() = %+v", m)
	}
	if ir := r.Image(); ir.Min.X != 2 || ir.Max.Y != 9 {
		t.Errorf("Image() = %v", ir)
	}
}

func TestIndexAsMapKey(t *testing.T) {
	seen := map[Index]bool{}
	seen[Index{1, 2}] = true
	if !seen[Index{Col: 1, Row: 2}.Add(Index{})] {
		t.Error("expected equal indices to hash to the same key")
	}
	if got := (Index{1, 2}).String(); got != "(1,2)" {
		t.Errorf("String() = %q", got)
	}
}
