package engine

import (
	"image"
	"time"

	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/anim"
	"github.com/wricardo/slide-puzzle/game/geom"
)

// board is the grid machinery shared by Puzzle and Preview.
type board struct {
	grid     *Grid
	tiles    []*Tile
	missing  *Tile
	revealed bool
	hole     geom.Index
	holeRect geom.Rect
	anims    *anim.Group[*Tile]
	origin   geom.Point
	duration time.Duration
	log      zerolog.Logger
}

// newBoard cuts src into dims.W x dims.H fragments of cell pixels each and
// lays them out solved, with the hole in the top-right cell.
func newBoard(src image.Image, dims, cell geom.Size, o options) (*board, error) {
	b := &board{
		grid:     NewGrid(dims, cell),
		hole:     geom.Index{Col: dims.W - 1, Row: 0},
		anims:    anim.NewGroup[*Tile](),
		origin:   o.origin,
		duration: o.duration,
		log:      o.logger,
	}
	b.holeRect = b.grid.Bounds(b.hole)

	base := src.Bounds().Min
	b.tiles = make([]*Tile, 0, dims.W*dims.H-1)
	for row := 0; row < dims.H; row++ {
		for col := 0; col < dims.W; col++ {
			idx := geom.Index{Col: col, Row: row}
			bounds := b.grid.Bounds(idx)
			frag, err := o.provider.Fragment(src, bounds.Image().Add(base))
			if err != nil {
				return nil, configError("image", "cannot be sliced at %v: %v", idx, err)
			}
			t := newTile(idx, frag, bounds)
			if idx == b.hole {
				b.missing = t
				continue
			}
			b.grid.place(idx, t)
			b.tiles = append(b.tiles, t)
		}
	}
	return b, nil
}

// neighbour returns the tile adjacent to the hole at off, if the cell exists.
func (b *board) neighbour(off geom.Index) (*Tile, bool) {
	cell, ok := b.grid.At(b.hole.Add(off))
	if !ok || cell.occupant == nil {
		return nil, false
	}
	return cell.occupant, true
}

// swapIntoHole moves t, which must be adjacent to the hole, into the hole.
// The hole takes t's former cell. Screen rectangles are left to the caller.
func (b *board) swapIntoHole(t *Tile) geom.Index {
	from := t.index
	b.grid.place(b.hole, t)
	b.grid.place(from, nil)
	t.index = b.hole
	b.hole = from
	b.holeRect = b.grid.Bounds(from)
	return from
}

// animateTo slides t toward the bounds of its logical cell. The shift axis is
// always animated; the other axis only when the tile is off its cell there,
// which happens when an earlier slide is still in flight.
func (b *board) animateTo(t *Tile, axis anim.Fields) *anim.Animation {
	target := b.grid.Bounds(t.index)
	fields := axis
	if t.rect.X != target.X {
		fields |= anim.X
	}
	if t.rect.Y != target.Y {
		fields |= anim.Y
	}
	a := anim.New(target.TopLeft(), fields, b.duration, true)
	a.Start(&t.rect)
	b.anims.Add(t, a)
	return a
}

func (b *board) solved() bool {
	for _, t := range b.tiles {
		if t != b.missing && !t.AtHome() {
			return false
		}
	}
	return true
}

// reveal appends the hole's tile to the render order, once.
func (b *board) reveal() {
	if b.revealed {
		return
	}
	b.missing.rect = b.holeRect
	b.tiles = append(b.tiles, b.missing)
	b.revealed = true
}

// conceal removes the hole's tile from the render order again.
func (b *board) conceal() {
	if !b.revealed {
		return
	}
	for i, t := range b.tiles {
		if t == b.missing {
			b.tiles = append(b.tiles[:i], b.tiles[i+1:]...)
			break
		}
	}
	b.revealed = false
}

func (b *board) tileAt(p geom.Point) *Tile {
	for _, t := range b.tiles {
		if t.rect.Contains(p) {
			return t
		}
	}
	return nil
}

func (b *board) render(s Surface) {
	for _, t := range b.tiles {
		s.DrawImage(t.image, t.rect.Move(b.origin))
	}
}

// layout numbers every cell by the home position of its occupant, counting
// from 1 in row-major order; the hole is 0.
func (b *board) layout() [][]int {
	cols := b.grid.cols
	out := make([][]int, b.grid.rows)
	for row := range out {
		out[row] = make([]int, cols)
		for col, t := range b.grid.Row(row) {
			if t != nil {
				out[row][col] = t.home.Row*cols + t.home.Col + 1
			}
		}
	}
	return out
}
