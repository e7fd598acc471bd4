package engine

import (
	"image"
	"math/rand/v2"
	"time"

	"github.com/wricardo/slide-puzzle/game/anim"
	"github.com/wricardo/slide-puzzle/game/geom"
)

// Preview is the non-interactive variant of the puzzle used as menu
// decoration. It scrambles its picture once at construction, remembers the
// swaps, and replays them backwards one slide at a time until the picture is
// whole again.
type Preview struct {
	b     *board
	moves []Move
	done  bool
	rng   *rand.Rand

	loop bool
	hold time.Duration
	idle time.Duration
}

// NewPreview cuts src into cells of the given size and scrambles it with one
// swap per cell. The image must be a whole number of cells in each direction.
func NewPreview(src image.Image, cell geom.Size, opts ...Option) (*Preview, error) {
	if src == nil {
		return nil, configError("image", "is required")
	}
	if cell.W <= 0 || cell.H <= 0 {
		return nil, configError("cell", "must be positive, got %dx%d", cell.W, cell.H)
	}
	bounds := src.Bounds()
	dims := geom.Size{W: bounds.Dx() / cell.W, H: bounds.Dy() / cell.H}
	if dims.W == 0 || dims.H == 0 {
		return nil, configError("image", "%dx%d is smaller than one %dx%d cell", bounds.Dx(), bounds.Dy(), cell.W, cell.H)
	}
	if bounds.Dx()%cell.W != 0 || bounds.Dy()%cell.H != 0 {
		return nil, configError("image", "%dx%d is not a whole number of %dx%d cells", bounds.Dx(), bounds.Dy(), cell.W, cell.H)
	}

	o := applyOptions(opts)
	b, err := newBoard(src, dims, cell, o)
	if err != nil {
		return nil, err
	}

	pv := &Preview{b: b, rng: o.rng, loop: o.loop, hold: o.hold}
	pv.scramble()
	return pv, nil
}

func (pv *Preview) scramble() {
	pv.b.conceal()
	pv.moves = pv.b.shuffle(len(pv.b.grid.cells), pv.rng)
	pv.done = false
	pv.idle = 0
}

// Tick advances the running slide. When nothing is moving the next recorded
// swap is undone; once none remain the preview is done and the hole's tile
// is shown. With looping enabled it scrambles again after resting.
func (pv *Preview) Tick(dt time.Duration) {
	pv.b.anims.Update(dt)

	if pv.done {
		if pv.loop {
			pv.idle += dt
			if pv.idle >= pv.hold {
				pv.scramble()
			}
		}
		return
	}
	if !pv.b.anims.Empty() {
		return
	}
	if len(pv.moves) == 0 {
		pv.done = true
		pv.b.reveal()
		return
	}

	last := pv.moves[len(pv.moves)-1]
	pv.moves = pv.moves[:len(pv.moves)-1]
	pv.b.swapIntoHole(last.Tile)
	pv.b.animateTo(last.Tile, fieldsFor(last.Offset))
}

func fieldsFor(off geom.Index) anim.Fields {
	if off.Col != 0 {
		return anim.X
	}
	return anim.Y
}

// Render draws the visible tiles offset by the preview's origin.
func (pv *Preview) Render(s Surface) {
	pv.b.render(s)
}

// Done reports whether the replay has finished.
func (pv *Preview) Done() bool { return pv.done }

// Remaining returns how many recorded swaps are left to replay.
func (pv *Preview) Remaining() int { return len(pv.moves) }

// Dims returns the preview grid dimensions.
func (pv *Preview) Dims() geom.Size { return geom.Size{W: pv.b.grid.cols, H: pv.b.grid.rows} }

// Tiles returns the visible tiles in render order.
func (pv *Preview) Tiles() []*Tile {
	return append([]*Tile(nil), pv.b.tiles...)
}

// Hole returns the hole's logical index.
func (pv *Preview) Hole() geom.Index { return pv.b.hole }

// Solved reports whether every tile is back home.
func (pv *Preview) Solved() bool { return pv.b.solved() }
