package desktop

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/wricardo/slide-puzzle/game/geom"
	"golang.org/x/image/font/basicfont"
)

// Canvas draws screen output onto an ebiten target. Source images are
// uploaded once and cached until Reset.
type Canvas struct {
	target *ebiten.Image
	cache  map[image.Image]*ebiten.Image
	face   *text.GoXFace
}

// NewCanvas creates an empty canvas; call SetTarget before drawing.
func NewCanvas() *Canvas {
	return &Canvas{
		cache: make(map[image.Image]*ebiten.Image),
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// SetTarget selects the frame being drawn.
func (c *Canvas) SetTarget(dst *ebiten.Image) {
	c.target = dst
}

// Reset frees every cached upload.
func (c *Canvas) Reset() {
	for key, img := range c.cache {
		img.Deallocate()
		delete(c.cache, key)
	}
}

// Cached returns how many source images are uploaded.
func (c *Canvas) Cached() int { return len(c.cache) }

func (c *Canvas) upload(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := c.cache[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	c.cache[img] = e
	return e
}

// DrawImage draws img stretched to the rectangle at.
func (c *Canvas) DrawImage(img image.Image, at geom.Rect) {
	src := c.upload(img)
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(at.W)/float64(b.Dx()), float64(at.H)/float64(b.Dy()))
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	c.target.DrawImage(src, op)
}

// Fill paints the whole frame.
func (c *Canvas) Fill(col color.Color) {
	c.target.Fill(col)
}

// FillRect paints a solid rectangle.
func (c *Canvas) FillRect(r geom.Rect, col color.Color) {
	vector.DrawFilledRect(c.target, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, false)
}

// StrokeRect outlines r with a line of the given width drawn inside it.
func (c *Canvas) StrokeRect(r geom.Rect, width int, col color.Color) {
	half := float32(width) / 2
	vector.StrokeRect(c.target, float32(r.X)+half, float32(r.Y)+half, float32(r.W)-2*half, float32(r.H)-2*half, float32(width), col, false)
}

// Text draws s with its top-left corner at the given point.
func (c *Canvas) Text(s string, at geom.Point, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.target, s, c.face, op)
}
