// Package geom holds the small value types shared by the puzzle engine,
// the animation primitive and the screens: grid indices, screen points,
// integer rectangles and sizes.
package geom

import (
	"fmt"
	"image"
)

// Index is a logical grid position. It is comparable and safe to use as a map key.
type Index struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Add returns the index offset by o.
func (i Index) Add(o Index) Index {
	return Index{Col: i.Col + o.Col, Row: i.Row + o.Row}
}

// String renders the index as "(col,row)".
func (i Index) String() string {
	return fmt.Sprintf("(%d,%d)", i.Col, i.Row)
}

// Point is a screen position in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair. It is used both for pixel sizes and for grid
// dimensions (W columns by H rows).
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// String renders the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Rect is an axis-aligned rectangle in integer pixels.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// RectAt builds a rectangle of size s with its top-left corner at p.
func RectAt(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H}
}

// TopLeft returns the rectangle origin.
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive, matching image.Rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Move returns r translated by d.
func (r Rect) Move(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Center returns the center point of r, rounded toward the origin.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Sign returns -1, 0 or 1 according to the sign of n.
func Sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// UnitDiff returns the per-axis sign of the displacement from a to b.
func UnitDiff(a, b Point) Point {
	return Point{X: Sign(b.X - a.X), Y: Sign(b.Y - a.Y)}
}
