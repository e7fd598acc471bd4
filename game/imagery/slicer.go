// Package imagery supplies the image side of the puzzle: cutting a source
// picture into independently owned fragments, scaling pictures to the play
// surface and to menu thumbnails, rendering banner images for the title
// previews, and loading or generating the puzzle picture set.
package imagery

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Slicer cuts fragments out of a source image. Each fragment owns its pixels.
// RGBA, NRGBA, Gray, Gray16, RGBA64, NRGBA64, CMYK and Paletted sources keep
// their pixel format. YCbCr (decoded JPEG) and any other source become RGBA,
// since those formats cannot be drawn into.
type Slicer struct{}

// Fragment copies the sub-rectangle r of src into a new image whose bounds
// start at (0,0).
func (Slicer) Fragment(src image.Image, r image.Rectangle) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("empty fragment rectangle %v", r)
	}
	if !r.In(src.Bounds()) {
		return nil, fmt.Errorf("fragment %v outside source bounds %v", r, src.Bounds())
	}

	bounds := image.Rect(0, 0, r.Dx(), r.Dy())
	dst := newLike(src, bounds)
	draw.Draw(dst, bounds, src, r.Min, draw.Src)
	return dst, nil
}

// newLike allocates an image of the same concrete type as src, or RGBA.
func newLike(src image.Image, bounds image.Rectangle) draw.Image {
	switch s := src.(type) {
	case *image.NRGBA:
		return image.NewNRGBA(bounds)
	case *image.Gray:
		return image.NewGray(bounds)
	case *image.Gray16:
		return image.NewGray16(bounds)
	case *image.RGBA64:
		return image.NewRGBA64(bounds)
	case *image.NRGBA64:
		return image.NewNRGBA64(bounds)
	case *image.CMYK:
		return image.NewCMYK(bounds)
	case *image.Paletted:
		return image.NewPaletted(bounds, s.Palette)
	default:
		return image.NewRGBA(bounds)
	}
}
