package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/wricardo/slide-puzzle/game/geom"
)

func TestShuffle_PerformsExactlyNMoves(t *testing.T) {
	tests := []struct {
		cols, rows int
		moves      int
		want       int
	}{
		{1, 1, 10, 0},
		{1, 2, 7, 7},
		{2, 1, 7, 7},
		{3, 2, 12, 12},
		{4, 3, 24, 24},
		{8, 6, 48, 48},
		{4, 3, 0, 0},
	}

	for _, test := range tests {
		name := geom.Size{W: test.cols, H: test.rows}.String()
		t.Run(name, func(t *testing.T) {
			p := createTestPuzzle(t, test.cols, test.rows, test.moves)
			if got := p.Snapshot().Shuffled; got != test.want {
				t.Errorf("Expected %d shuffle moves, got %d", test.want, got)
			}
			if p.Animating() {
				t.Error("Shuffling must not start animations")
			}
			for _, tile := range p.Tiles() {
				if tile.Rect() != p.Grid().Bounds(tile.Index()) {
					t.Errorf("Tile %v rect %+v is not on its cell", tile.Home(), tile.Rect())
				}
			}
			assertGridConsistent(t, p)
		})
	}
}

func TestShuffle_ReverseReplayRestoresSolved(t *testing.T) {
	dims := []geom.Size{{W: 2, H: 2}, {W: 3, H: 2}, {W: 4, H: 3}, {W: 5, H: 5}, {W: 8, H: 6}}

	for _, d := range dims {
		for seed := uint64(1); seed <= 5; seed++ {
			t.Run(d.String(), func(t *testing.T) {
				p := createTestPuzzle(t, d.W, d.H, 0)
				p.complete = false
				p.b.conceal()

				n := int(seed) * 17
				moves := p.b.shuffle(n, rand.New(rand.NewPCG(seed, seed)))
				if len(moves) != n {
					t.Fatalf("Expected %d moves, got %d", n, len(moves))
				}

				for i := len(moves) - 1; i >= 0; i-- {
					m := moves[i]
					if m.Tile.Index().Add(m.Offset) != p.Hole() {
						t.Fatalf("Move %d: tile %v is not at offset %v from hole %v",
							i, m.Tile.Index(), m.Offset, p.Hole())
					}
					p.b.swapIntoHole(m.Tile)
				}

				if !p.b.solved() {
					t.Error("Reverse replay did not restore the solved picture")
				}
				if p.Hole() != (geom.Index{Col: d.W - 1, Row: 0}) {
					t.Errorf("Expected hole back at (%d,0), got %v", d.W-1, p.Hole())
				}
			})
		}
	}
}

func TestShuffle_SameSeedSameLayout(t *testing.T) {
	a := createTestPuzzle(t, 4, 3, 30, WithSeed(7))
	b := createTestPuzzle(t, 4, 3, 30, WithSeed(7))

	la, lb := a.Snapshot().Layout, b.Snapshot().Layout
	for r := range la {
		for c := range la[r] {
			if la[r][c] != lb[r][c] {
				t.Fatalf("Layouts differ at (%d,%d)", c, r)
			}
		}
	}
}

func TestShuffle_PrefersLeastMovedNeighbour(t *testing.T) {
	// On a 3x1 strip the hole starts at the right end with a single
	// neighbour, then sits in the middle between a moved and an unmoved tile.
	p := createTestPuzzle(t, 3, 1, 0)
	p.complete = false
	p.b.conceal()

	moves := p.b.shuffle(2, rand.New(rand.NewPCG(3, 3)))
	if len(moves) != 2 {
		t.Fatalf("Expected 2 moves, got %d", len(moves))
	}
	if moves[0].Tile == moves[1].Tile {
		t.Error("Second move undid the first although an unmoved tile was available")
	}
	if p.Hole() != (geom.Index{Col: 0, Row: 0}) {
		t.Errorf("Expected hole at (0,0), got %v", p.Hole())
	}
}
