package engine

import (
	"github.com/wricardo/slide-puzzle/game/anim"
	"github.com/wricardo/slide-puzzle/game/geom"
)

// ShiftResult describes a completed shift.
type ShiftResult struct {
	Axis      Axis
	Direction int
	Movers    []*Tile
	// Hole is where the hole ended up: the grabbed tile's former cell.
	Hole geom.Index
}

// shift slides the run of tiles from grabbed up to the hole's neighbour one
// cell in dir (-1 or 1) along axis. All bookkeeping is updated before it
// returns; each mover gets an animation toward its new cell. It returns
// false when grabbed and the hole are not lined up in dir.
func (b *board) shift(grabbed *Tile, axis Axis, dir int) (ShiftResult, bool) {
	step := geom.Index{Col: dir}
	fields := anim.X
	pos, hole := grabbed.index.Col, b.hole.Col
	if axis == AxisColumn {
		step = geom.Index{Row: dir}
		fields = anim.Y
		pos, hole = grabbed.index.Row, b.hole.Row
		if grabbed.index.Col != b.hole.Col {
			return ShiftResult{}, false
		}
	} else if grabbed.index.Row != b.hole.Row {
		return ShiftResult{}, false
	}
	if dir == 0 || geom.Sign(hole-pos) != dir {
		return ShiftResult{}, false
	}

	movers := make([]*Tile, 0, geom.Sign(hole-pos)*(hole-pos))
	for idx := grabbed.index; idx != b.hole; idx = idx.Add(step) {
		cell, _ := b.grid.At(idx)
		movers = append(movers, cell.occupant)
	}

	newHole := grabbed.index
	for _, m := range movers {
		b.grid.place(m.index, nil)
	}
	for _, m := range movers {
		m.index = m.index.Add(step)
		b.grid.place(m.index, m)
	}
	b.hole = newHole
	b.holeRect = b.grid.Bounds(newHole)

	for _, m := range movers {
		b.animateTo(m, fields)
	}

	b.log.Debug().
		Str("axis", axis.String()).
		Int("direction", dir).
		Int("movers", len(movers)).
		Str("hole", b.hole.String()).
		Msg("shifted tiles")

	return ShiftResult{Axis: axis, Direction: dir, Movers: movers, Hole: newHole}, true
}
