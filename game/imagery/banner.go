package imagery

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BannerStyle controls how Banner renders its text.
type BannerStyle struct {
	Scale      int
	Foreground color.Color
	Background color.Color
	Padding    int
}

// DefaultBannerStyle is the look of the title-screen previews.
var DefaultBannerStyle = BannerStyle{
	Scale:      3,
	Foreground: color.White,
	Background: color.RGBA{R: 24, G: 116, B: 205, A: 255},
	Padding:    6,
}

// Banner renders text with the 7x13 bitmap face, enlarges it and centers it
// on a canvas whose width and height are exact multiples of the cell size,
// so the slide preview can cut it into whole cells.
func Banner(text string, cellW, cellH int, style BannerStyle) *image.RGBA {
	if style.Scale < 1 {
		style.Scale = 1
	}
	face := basicfont.Face7x13

	textW := font.MeasureString(face, text).Ceil()
	if textW == 0 {
		textW = 1
	}
	small := image.NewRGBA(image.Rect(0, 0, textW, face.Height))
	draw.Draw(small, small.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(style.Foreground),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	big := Enlarge(small, style.Scale)
	w := roundUp(big.Bounds().Dx()+2*style.Padding, cellW)
	h := roundUp(big.Bounds().Dy()+2*style.Padding, cellH)

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)
	offset := image.Pt((w-big.Bounds().Dx())/2, (h-big.Bounds().Dy())/2)
	draw.Draw(canvas, big.Bounds().Add(offset), big, image.Point{}, draw.Over)
	return canvas
}

func roundUp(n, m int) int {
	if m <= 0 {
		return n
	}
	return ((n + m - 1) / m) * m
}
