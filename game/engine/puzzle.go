package engine

import (
	"image"
	"time"

	"github.com/wricardo/slide-puzzle/game/geom"
)

// Puzzle is the interactive grid engine. It owns its grid, tiles and
// animations exclusively.
type Puzzle struct {
	b          *board
	complete   bool
	grabbed    *Tile
	grabOrigin geom.Point
	shifts     int
	shuffled   int
}

// Snapshot is a read-only summary of a puzzle, used by the headless session
// layer and by tests.
type Snapshot struct {
	Columns   int        `json:"columns"`
	Rows      int        `json:"rows"`
	Hole      geom.Index `json:"hole"`
	Layout    [][]int    `json:"layout"`
	Complete  bool       `json:"complete"`
	Animating bool       `json:"animating"`
	Shifts    int        `json:"shifts"`
	Shuffled  int        `json:"shuffled"`
	Misplaced int        `json:"misplaced"`
}

// New builds a puzzle of size pixels cut into dims.W columns and dims.H rows
// from src, then shuffles it with moves swaps. The pixel size must divide
// evenly by the grid dimensions and src must cover it.
func New(size, dims geom.Size, src image.Image, moves int, opts ...Option) (*Puzzle, error) {
	if err := validateDimensions(size, dims, moves); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, configError("image", "is required")
	}
	if b := src.Bounds(); b.Dx() < size.W || b.Dy() < size.H {
		return nil, configError("image", "is %dx%d, smaller than the %dx%d puzzle", b.Dx(), b.Dy(), size.W, size.H)
	}

	o := applyOptions(opts)
	cell := geom.Size{W: size.W / dims.W, H: size.H / dims.H}
	b, err := newBoard(src, dims, cell, o)
	if err != nil {
		return nil, err
	}

	p := &Puzzle{b: b}
	p.shuffled = len(b.shuffle(moves, o.rng))
	p.checkComplete()

	b.log.Debug().
		Int("columns", dims.W).
		Int("rows", dims.H).
		Int("cell_w", cell.W).
		Int("cell_h", cell.H).
		Bool("complete", p.complete).
		Msg("puzzle created")
	return p, nil
}

func validateDimensions(size, dims geom.Size, moves int) error {
	switch {
	case dims.W <= 0:
		return configError("columns", "must be positive, got %d", dims.W)
	case dims.H <= 0:
		return configError("rows", "must be positive, got %d", dims.H)
	case size.W <= 0 || size.H <= 0:
		return configError("size", "must be positive, got %dx%d", size.W, size.H)
	case size.W%dims.W != 0:
		return configError("columns", "%d does not divide width %d", dims.W, size.W)
	case size.H%dims.H != 0:
		return configError("rows", "%d does not divide height %d", dims.H, size.H)
	case moves < 0:
		return configError("moves", "must not be negative, got %d", moves)
	}
	return nil
}

// PointerDown grabs the first tile under p, unless a tile is already held.
func (p *Puzzle) PointerDown(pos geom.Point) {
	if p.grabbed != nil || p.complete {
		return
	}
	if t := p.b.tileAt(pos.Sub(p.b.origin)); t != nil {
		p.grabbed = t
		p.grabOrigin = pos
	}
}

// PointerUp releases the held tile. If the drag points the same way as the
// hole lies from the tile, along a shared row or column, the tiles between
// them shift one cell toward the hole. The grab is always cleared.
func (p *Puzzle) PointerUp(pos geom.Point) (ShiftResult, bool) {
	g := p.grabbed
	origin := p.grabOrigin
	p.grabbed = nil
	p.grabOrigin = geom.Point{}
	if g == nil || p.complete {
		return ShiftResult{}, false
	}

	hole := p.b.hole
	inRow := hole.Row == g.index.Row
	inColumn := hole.Col == g.index.Col
	drag := geom.UnitDiff(origin, pos)
	toward := geom.UnitDiff(p.b.grid.Bounds(g.index).TopLeft(), p.b.holeRect.TopLeft())

	var res ShiftResult
	var ok bool
	switch {
	case inRow:
		if drag.X == toward.X {
			res, ok = p.b.shift(g, AxisRow, drag.X)
		}
	case inColumn:
		if drag.Y == toward.Y {
			res, ok = p.b.shift(g, AxisColumn, drag.Y)
		}
	}
	if ok {
		p.shifts++
	}
	return res, ok
}

// Tick advances animations by dt and then checks for completion.
func (p *Puzzle) Tick(dt time.Duration) {
	p.b.anims.Update(dt)
	p.checkComplete()
}

func (p *Puzzle) checkComplete() {
	if p.complete || !p.b.solved() {
		return
	}
	p.complete = true
	p.b.reveal()
	p.b.log.Debug().Int("shifts", p.shifts).Msg("puzzle complete")
}

// Render draws every visible tile in order at its current rectangle.
func (p *Puzzle) Render(s Surface) {
	p.b.render(s)
}

// IsComplete reports whether the puzzle has been solved. Once true it stays true.
func (p *Puzzle) IsComplete() bool { return p.complete }

// Animating reports whether any tile is still sliding.
func (p *Puzzle) Animating() bool { return !p.b.anims.Empty() }

// Grabbed returns the held tile, if any.
func (p *Puzzle) Grabbed() *Tile { return p.grabbed }

// Hole returns the hole's logical index.
func (p *Puzzle) Hole() geom.Index { return p.b.hole }

// HoleRect returns the hole's screen rectangle relative to the origin.
func (p *Puzzle) HoleRect() geom.Rect { return p.b.holeRect }

// Grid exposes the puzzle grid for inspection.
func (p *Puzzle) Grid() *Grid { return p.b.grid }

// Dims returns the grid dimensions as columns x rows.
func (p *Puzzle) Dims() geom.Size { return geom.Size{W: p.b.grid.cols, H: p.b.grid.rows} }

// CellSize returns the pixel size of a cell.
func (p *Puzzle) CellSize() geom.Size { return p.b.grid.cell }

// Origin returns the draw offset.
func (p *Puzzle) Origin() geom.Point { return p.b.origin }

// Tiles returns the visible tiles in render order.
func (p *Puzzle) Tiles() []*Tile {
	return append([]*Tile(nil), p.b.tiles...)
}

// TileAt returns the tile whose logical index is idx, or nil for the hole
// and out-of-range indices.
func (p *Puzzle) TileAt(idx geom.Index) *Tile {
	cell, ok := p.b.grid.At(idx)
	if !ok {
		return nil
	}
	return cell.occupant
}

// AnimationFor returns the duration of the animation running for t.
func (p *Puzzle) AnimationFor(t *Tile) (time.Duration, bool) {
	a, ok := p.b.anims.Get(t)
	if !ok {
		return 0, false
	}
	return a.Duration(), true
}

// ActiveAnimations returns the number of tiles currently sliding.
func (p *Puzzle) ActiveAnimations() int { return p.b.anims.Len() }

// Snapshot summarizes the current state.
func (p *Puzzle) Snapshot() Snapshot {
	misplaced := 0
	for _, t := range p.b.tiles {
		if t != p.b.missing && !t.AtHome() {
			misplaced++
		}
	}
	return Snapshot{
		Columns:   p.b.grid.cols,
		Rows:      p.b.grid.rows,
		Hole:      p.b.hole,
		Layout:    p.b.layout(),
		Complete:  p.complete,
		Animating: p.Animating(),
		Shifts:    p.shifts,
		Shuffled:  p.shuffled,
		Misplaced: misplaced,
	}
}
