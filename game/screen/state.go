// Package screen holds the two interactive screens of the desktop game, the
// title menu and the puzzle board, plus the controller that switches between
// them. Screens draw onto a Canvas and receive backend-neutral Events, so the
// whole flow runs without a window in tests.
package screen

import (
	"image"
	"image/color"
	"time"

	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
)

// StateName identifies a registered screen.
type StateName string

const (
	StateTitle    StateName = "title"
	StatePuzzling StateName = "puzzling"
)

// Persist is handed from one screen to the next when the controller flips.
type Persist struct {
	Picture  imagery.Picture
	PresetID string
	Preset   config.Preset
}

// EventKind discriminates Event.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerUp
	EventPointerMove
	EventKeyUp
	EventQuit
)

// Key is the subset of keys the screens react to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
)

// Event is one input occurrence in screen coordinates.
type Event struct {
	Kind EventKind
	Pos  geom.Point
	Key  Key
}

// Canvas is the drawing surface screens render onto.
type Canvas interface {
	engine.Surface
	Fill(c color.Color)
	FillRect(r geom.Rect, c color.Color)
	StrokeRect(r geom.Rect, width int, c color.Color)
	Text(s string, at geom.Point, c color.Color)
}

// State is a screen managed by the Controller.
type State interface {
	Startup(p Persist) error
	HandleEvent(e Event)
	Update(dt time.Duration)
	Draw(c Canvas)
	Status() *Status
}

// Status carries the flags a screen raises to the controller.
type Status struct {
	Done    bool
	Quit    bool
	Next    StateName
	Persist Persist
}

func (s *Status) finish(next StateName, p Persist) {
	s.Done = true
	s.Next = next
	s.Persist = p
}

func (s *Status) reset() {
	*s = Status{}
}

var (
	colorWhite      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorDodgerBlue = color.RGBA{R: 30, G: 144, B: 255, A: 255}
	colorBoard      = color.RGBA{R: 187, G: 187, B: 187, A: 255}
	colorButton     = color.RGBA{R: 16, G: 78, B: 139, A: 255}
	colorBanner     = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// imageRect is the rectangle img occupies when its top-left is at p.
func imageRect(img image.Image, p geom.Point) geom.Rect {
	b := img.Bounds()
	return geom.Rect{X: p.X, Y: p.Y, W: b.Dx(), H: b.Dy()}
}
