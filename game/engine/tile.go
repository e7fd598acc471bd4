package engine

import (
	"image"

	"github.com/wricardo/slide-puzzle/game/geom"
)

// Tile is one fragment of the source image placed in the grid.
type Tile struct {
	home  geom.Index
	index geom.Index
	image image.Image
	rect  geom.Rect
}

func newTile(index geom.Index, img image.Image, rect geom.Rect) *Tile {
	return &Tile{
		home:  index,
		index: index,
		image: img,
		rect:  rect,
	}
}

// Home returns the tile's position in the solved picture.
func (t *Tile) Home() geom.Index { return t.home }

// Index returns the tile's current logical grid position.
func (t *Tile) Index() geom.Index { return t.index }

// Image returns the tile's picture fragment.
func (t *Tile) Image() image.Image { return t.image }

// Rect returns the tile's current on-screen rectangle, relative to the
// owner's origin. It lags Index while an animation is in flight.
func (t *Tile) Rect() geom.Rect { return t.rect }

// AtHome reports whether the tile sits in its solved position.
func (t *Tile) AtHome() bool { return t.index == t.home }
