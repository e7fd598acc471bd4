package screen

import "github.com/wricardo/slide-puzzle/game/geom"

// ActionKind discriminates the things a title screen control can do.
type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionSetDifficulty
	ActionSelectImage
)

func (k ActionKind) String() string {
	switch k {
	case ActionStart:
		return "start"
	case ActionSetDifficulty:
		return "set-difficulty"
	case ActionSelectImage:
		return "select-image"
	}
	return "unknown"
}

// Action is a typed command. Index is the preset for ActionSetDifficulty
// and the picture for ActionSelectImage.
type Action struct {
	Kind  ActionKind
	Index int
}

// Button is a labelled rectangle that yields its Action when released over.
type Button struct {
	Label    string
	Rect     geom.Rect
	Action   Action
	Selected bool
	hovered  bool
}

// Hit reports whether p lies on the button.
func (b *Button) Hit(p geom.Point) bool {
	return b.Rect.Contains(p)
}

func (b *Button) draw(c Canvas) {
	fill := colorButton
	if b.hovered {
		fill = colorDodgerBlue
	}
	c.FillRect(b.Rect, fill)
	// basicfont glyphs are 7x13
	w := 7 * len(b.Label)
	c.Text(b.Label, geom.Point{X: b.Rect.X + (b.Rect.W-w)/2, Y: b.Rect.Y + (b.Rect.H-13)/2}, colorWhite)
	if b.Selected {
		c.StrokeRect(b.Rect, 2, colorWhite)
	}
}
