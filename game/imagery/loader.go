package imagery

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Picture is a named puzzle image.
type Picture struct {
	Name  string
	Image image.Image
}

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".webp": true,
}

// LoadDir decodes every supported picture in dir, sorted by file name.
// Unreadable files are skipped and reported in the returned skipped list.
func LoadDir(dir string) (pictures []Picture, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExtensions[ext] {
			continue
		}

		img, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			skipped = append(skipped, entry.Name())
			continue
		}
		pictures = append(pictures, Picture{
			Name:  strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Image: img,
		})
	}

	sort.Slice(pictures, func(i, j int) bool { return pictures[i].Name < pictures[j].Name })
	return pictures, skipped, nil
}

// LoadFile decodes a single picture.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Generated returns a fixed set of procedurally drawn pictures of size w x h.
// It backs the game when no image directory is configured and is what the
// headless sessions play on.
func Generated(w, h int) []Picture {
	return []Picture{
		{Name: "sunset", Image: gradient(w, h)},
		{Name: "rings", Image: rings(w, h)},
		{Name: "checker", Image: checker(w, h)},
		{Name: "plaid", Image: plaid(w, h)},
	}
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(255 * x / max(w-1, 1)),
				G: uint8(96 + 96*y/max(h-1, 1)),
				B: uint8(255 - 255*y/max(h-1, 1)),
				A: 255,
			})
		}
	}
	return img
}

func rings(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			band := uint8(int(d/24) % 6)
			img.Set(x, y, color.RGBA{R: 40 * band, G: 200 - 25*band, B: 120 + 20*band, A: 255})
		}
	}
	return img
}

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 230, G: 220, B: 200, A: 255}
			if (x/50+y/50)%2 == 1 {
				c = color.RGBA{R: 60, G: 60, B: 80, A: 255}
			}
			c.R = uint8((int(c.R) + 255*x/max(w, 1)) / 2)
			img.Set(x, y, c)
		}
	}
	return img
}

func plaid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := uint8(128 + 127*math.Sin(float64(x)/37))
			g := uint8(128 + 127*math.Sin(float64(y)/29))
			b := uint8(128 + 127*math.Sin(float64(x+y)/53))
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
