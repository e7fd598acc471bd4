package screen

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
)

const (
	iconW       = 80
	iconH       = 60
	iconStepX   = 100
	iconStepY   = 80
	buttonW     = 128
	buttonH     = 40
	bannerGap   = 12
	defaultCell = 24
)

// ErrNoPictures is returned when the title screen has nothing to offer.
var ErrNoPictures = errors.New("no puzzle pictures available")

// ErrNoPresets is returned when the title screen has no difficulty to offer.
var ErrNoPresets = errors.New("no difficulty presets available")

// Choice is a difficulty offered on the title screen.
type Choice struct {
	ID     string
	Preset config.Preset
}

// TitleOptions tunes the title screen.
type TitleOptions struct {
	CellSize    int
	PreviewHold time.Duration
	Heading     string
	Subheading  string
	Default     string
	Logger      zerolog.Logger
	PreviewOpts []engine.Option
}

type icon struct {
	rect  geom.Rect
	thumb image.Image
}

type banner struct {
	preview *engine.Preview
	rect    geom.Rect
}

// Title is the menu: two looping slide previews, a grid of picture icons,
// one button per difficulty and a Start button.
type Title struct {
	status   Status
	size     geom.Size
	pictures []imagery.Picture
	choices  []Choice
	icons    []icon
	banners  []banner
	buttons  []*Button
	log      zerolog.Logger

	picture int
	choice  int
}

// NewTitle lays out the title screen for a surface of size pixels.
func NewTitle(size geom.Size, pictures []imagery.Picture, choices []Choice, opts TitleOptions) (*Title, error) {
	if len(pictures) == 0 {
		return nil, ErrNoPictures
	}
	if len(choices) == 0 {
		return nil, ErrNoPresets
	}
	if opts.CellSize <= 0 {
		opts.CellSize = defaultCell
	}
	if opts.Heading == "" {
		opts.Heading = "SLIDE PUZZLE"
	}
	if opts.Subheading == "" {
		opts.Subheading = "DIFFICULTY"
	}

	t := &Title{
		size:     size,
		pictures: pictures,
		choices:  choices,
		log:      opts.Logger,
	}

	cell := geom.Size{W: opts.CellSize, H: opts.CellSize}
	previewOpts := append([]engine.Option{engine.WithLoop(opts.PreviewHold)}, opts.PreviewOpts...)
	heading := imagery.Banner(opts.Heading, cell.W, cell.H, imagery.DefaultBannerStyle)
	sub := imagery.Banner(opts.Subheading, cell.W, cell.H, imagery.DefaultBannerStyle)

	iconsBottom := t.layoutIcons(heading.Bounds().Dy() + bannerGap)
	buttonsY := size.H - 2*buttonH - 3*bannerGap
	// The difficulty banner sits above the buttons but never over the icons.
	subY := max(buttonsY-bannerGap-sub.Bounds().Dy(), iconsBottom+bannerGap)

	if err := t.addBanner(heading, cell, 0, previewOpts); err != nil {
		return nil, err
	}
	if err := t.addBanner(sub, cell, subY, previewOpts); err != nil {
		return nil, err
	}

	t.layoutButtons(buttonsY)
	t.choice = t.choiceIndex(opts.Default)
	t.selectButtons()
	return t, nil
}

func (t *Title) addBanner(img image.Image, cell geom.Size, y int, opts []engine.Option) error {
	at := geom.Point{X: (t.size.W - img.Bounds().Dx()) / 2, Y: y}
	pv, err := engine.NewPreview(img, cell, append(opts, engine.WithOrigin(at))...)
	if err != nil {
		return fmt.Errorf("failed to build title preview: %w", err)
	}
	t.banners = append(t.banners, banner{preview: pv, rect: imageRect(img, at)})
	return nil
}

func (t *Title) layoutIcons(top int) int {
	left := 50
	bottom := top
	for _, pic := range t.pictures {
		r := geom.Rect{X: left, Y: top, W: iconW, H: iconH}
		t.icons = append(t.icons, icon{rect: r, thumb: imagery.Thumbnail(pic.Image, iconW, iconH)})
		bottom = r.Y + r.H
		left += iconStepX
		if left > t.size.W-iconStepX {
			left = 50
			top += iconStepY
		}
	}
	return bottom
}

func (t *Title) layoutButtons(y int) {
	n := len(t.choices)
	gap := (t.size.W - n*buttonW) / (n + 1)
	if gap < 4 {
		gap = 4
	}
	x := gap
	for i, c := range t.choices {
		label := c.Preset.Name
		if label == "" {
			label = c.ID
		}
		t.buttons = append(t.buttons, &Button{
			Label:  label,
			Rect:   geom.Rect{X: x, Y: y, W: buttonW, H: buttonH},
			Action: Action{Kind: ActionSetDifficulty, Index: i},
		})
		x += buttonW + gap
	}
	t.buttons = append(t.buttons, &Button{
		Label:  "Start",
		Rect:   geom.Rect{X: t.size.W/2 - buttonW/2, Y: t.size.H - buttonH - bannerGap, W: buttonW, H: buttonH},
		Action: Action{Kind: ActionStart},
	})
}

func (t *Title) choiceIndex(id string) int {
	for i, c := range t.choices {
		if c.ID == id {
			return i
		}
	}
	return 0
}

func (t *Title) selectButtons() {
	for _, b := range t.buttons {
		if b.Action.Kind == ActionSetDifficulty {
			b.Selected = b.Action.Index == t.choice
		}
	}
}

// Startup re-arms the screen when the controller returns to it.
func (t *Title) Startup(p Persist) error {
	t.status.reset()
	return nil
}

// Dispatch performs a typed action.
func (t *Title) Dispatch(a Action) {
	switch a.Kind {
	case ActionStart:
		c := t.choices[t.choice]
		t.log.Info().Str("preset", c.ID).Str("picture", t.pictures[t.picture].Name).Msg("starting puzzle")
		t.status.finish(StatePuzzling, Persist{
			Picture:  t.pictures[t.picture],
			PresetID: c.ID,
			Preset:   c.Preset,
		})
	case ActionSetDifficulty:
		if a.Index >= 0 && a.Index < len(t.choices) {
			t.choice = a.Index
			t.selectButtons()
			t.log.Debug().Str("preset", t.choices[a.Index].ID).Msg("difficulty selected")
		}
	case ActionSelectImage:
		if a.Index >= 0 && a.Index < len(t.pictures) {
			t.picture = a.Index
		}
	}
}

// HandleEvent maps keys and clicks to actions. Escape quits, Space starts.
func (t *Title) HandleEvent(e Event) {
	switch e.Kind {
	case EventQuit:
		t.status.Quit = true
	case EventKeyUp:
		switch e.Key {
		case KeyEscape:
			t.status.Quit = true
		case KeySpace:
			t.Dispatch(Action{Kind: ActionStart})
		}
	case EventPointerMove:
		for _, b := range t.buttons {
			b.hovered = b.Hit(e.Pos)
		}
	case EventPointerUp:
		for i, ic := range t.icons {
			if ic.rect.Contains(e.Pos) {
				t.Dispatch(Action{Kind: ActionSelectImage, Index: i})
			}
		}
		for _, b := range t.buttons {
			if b.Hit(e.Pos) {
				t.Dispatch(b.Action)
			}
		}
	}
}

// Update advances both previews.
func (t *Title) Update(dt time.Duration) {
	for _, b := range t.banners {
		b.preview.Tick(dt)
	}
}

// Draw renders the menu.
func (t *Title) Draw(c Canvas) {
	c.Fill(colorDodgerBlue)
	for _, b := range t.banners {
		b.preview.Render(c)
	}
	for _, ic := range t.icons {
		c.DrawImage(ic.thumb, ic.rect)
	}
	for _, b := range t.buttons {
		b.draw(c)
	}
	c.StrokeRect(t.icons[t.picture].rect, 2, colorWhite)
}

// Status exposes the flags the controller polls.
func (t *Title) Status() *Status { return &t.status }

// Selected returns the chosen picture and difficulty.
func (t *Title) Selected() (imagery.Picture, Choice) {
	return t.pictures[t.picture], t.choices[t.choice]
}

// Buttons returns the difficulty buttons followed by Start.
func (t *Title) Buttons() []*Button { return t.buttons }

// IconRect returns the on-screen rectangle of picture i.
func (t *Title) IconRect(i int) geom.Rect { return t.icons[i].rect }

// Previews returns the two decorative slide previews.
func (t *Title) Previews() []*engine.Preview {
	out := make([]*engine.Preview, len(t.banners))
	for i, b := range t.banners {
		out[i] = b.preview
	}
	return out
}
