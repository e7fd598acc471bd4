package engine

import "github.com/wricardo/slide-puzzle/game/geom"

// GridCell is a fixed slot of the grid that may hold a tile.
type GridCell struct {
	index    geom.Index
	bounds   geom.Rect
	occupant *Tile
}

// Index returns the cell position.
func (c *GridCell) Index() geom.Index { return c.index }

// Bounds returns the cell's fixed screen rectangle.
func (c *GridCell) Bounds() geom.Rect { return c.bounds }

// Occupant returns the tile in the cell, or nil for the hole.
func (c *GridCell) Occupant() *Tile { return c.occupant }

// Empty reports whether the cell is the hole.
func (c *GridCell) Empty() bool { return c.occupant == nil }

// Grid is a dense, row-major array of cells covering every index in
// [0,cols) x [0,rows) exactly once.
type Grid struct {
	cols  int
	rows  int
	cell  geom.Size
	cells []GridCell
}

// NewGrid lays out an empty grid of dims.W columns by dims.H rows.
func NewGrid(dims, cell geom.Size) *Grid {
	g := &Grid{
		cols:  dims.W,
		rows:  dims.H,
		cell:  cell,
		cells: make([]GridCell, dims.W*dims.H),
	}
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			idx := geom.Index{Col: col, Row: row}
			g.cells[row*g.cols+col] = GridCell{index: idx, bounds: g.Bounds(idx)}
		}
	}
	return g
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the pixel size of one cell.
func (g *Grid) CellSize() geom.Size { return g.cell }

// Contains reports whether idx lies inside the grid.
func (g *Grid) Contains(idx geom.Index) bool {
	return idx.Col >= 0 && idx.Col < g.cols && idx.Row >= 0 && idx.Row < g.rows
}

// At returns the cell at idx. Out-of-bounds indices report false rather than
// failing; neighbour enumeration relies on that.
func (g *Grid) At(idx geom.Index) (*GridCell, bool) {
	if !g.Contains(idx) {
		return nil, false
	}
	return &g.cells[idx.Row*g.cols+idx.Col], true
}

// Bounds computes the screen rectangle of idx from the cell size.
func (g *Grid) Bounds(idx geom.Index) geom.Rect {
	return geom.Rect{
		X: idx.Col * g.cell.W,
		Y: idx.Row * g.cell.H,
		W: g.cell.W,
		H: g.cell.H,
	}
}

// Row returns the occupants of row r from left to right; the hole is nil.
func (g *Grid) Row(r int) []*Tile {
	out := make([]*Tile, g.cols)
	for c := 0; c < g.cols; c++ {
		out[c] = g.cells[r*g.cols+c].occupant
	}
	return out
}

// Column returns the occupants of column c from top to bottom; the hole is nil.
func (g *Grid) Column(c int) []*Tile {
	out := make([]*Tile, g.rows)
	for r := 0; r < g.rows; r++ {
		out[r] = g.cells[r*g.cols+c].occupant
	}
	return out
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []*GridCell {
	out := make([]*GridCell, len(g.cells))
	for i := range g.cells {
		out[i] = &g.cells[i]
	}
	return out
}

func (g *Grid) place(idx geom.Index, t *Tile) {
	g.cells[idx.Row*g.cols+idx.Col].occupant = t
}
