package engine

import (
	"math/rand/v2"

	"github.com/wricardo/slide-puzzle/game/geom"
)

// Move records one shuffle swap: Tile slid into the hole from Offset, the
// direction from the hole to the tile before the swap.
type Move struct {
	Tile   *Tile
	Offset geom.Index
}

// shuffle performs n hole-adjacent swaps. Each step prefers the neighbour that
// has moved least so far in this shuffle, breaking ties by a freshly shuffled
// direction order, which keeps the walk from undoing its previous step.
// Tiles are placed directly on their new cells; nothing is animated.
func (b *board) shuffle(n int, rng *rand.Rand) []Move {
	moved := make(map[*Tile]int)
	moves := make([]Move, 0, n)

	for i := 0; i < n; i++ {
		dirs := offsets
		rng.Shuffle(len(dirs), func(a, c int) { dirs[a], dirs[c] = dirs[c], dirs[a] })

		var pick *Tile
		var pickOff geom.Index
		for _, off := range dirs {
			t, ok := b.neighbour(off)
			if !ok {
				continue
			}
			if pick == nil || moved[t] < moved[pick] {
				pick, pickOff = t, off
			}
		}
		if pick == nil {
			// A 1x1 grid has no neighbours to swap.
			break
		}

		b.swapIntoHole(pick)
		pick.rect = b.grid.Bounds(pick.index)
		moved[pick]++
		moves = append(moves, Move{Tile: pick, Offset: pickOff})
	}

	b.log.Debug().
		Int("requested", n).
		Int("performed", len(moves)).
		Str("hole", b.hole.String()).
		Msg("shuffled board")
	return moves
}
