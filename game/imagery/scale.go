package imagery

import (
	"image"

	"golang.org/x/image/draw"
)

// Fit scales src to exactly w x h with Catmull-Rom filtering. The puzzle
// surface uses fitted pictures so that every preset divides it evenly.
func Fit(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Thumbnail scales src for the title screen icon grid.
func Thumbnail(src image.Image, w, h int) *image.RGBA {
	return Fit(src, w, h)
}

// Enlarge scales src by an integer factor without smoothing, keeping
// bitmap text crisp.
func Enlarge(src image.Image, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
