package screen

import (
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
)

// Puzzling runs one puzzle built from the picture and preset chosen on the
// title screen.
type Puzzling struct {
	status  Status
	size    geom.Size
	opts    []engine.Option
	log     zerolog.Logger
	puzzle  *engine.Puzzle
	persist Persist
	solved  *image.RGBA
}

// NewPuzzling prepares the board screen. opts are passed to every puzzle it
// builds.
func NewPuzzling(size geom.Size, logger zerolog.Logger, opts ...engine.Option) *Puzzling {
	return &Puzzling{
		size: size,
		opts: opts,
		log:  logger,
		solved: imagery.Banner("SOLVED", 8, 8, imagery.BannerStyle{
			Scale:      4,
			Foreground: colorWhite,
			Background: colorBanner,
			Padding:    8,
		}),
	}
}

// Startup fits the picture to the surface and shuffles a new puzzle.
func (p *Puzzling) Startup(persist Persist) error {
	p.status.reset()
	p.persist = persist

	if persist.Picture.Image == nil {
		return fmt.Errorf("failed to start puzzle: %w", ErrNoPictures)
	}
	img := imagery.Fit(persist.Picture.Image, p.size.W, p.size.H)
	dims := geom.Size{W: persist.Preset.Columns, H: persist.Preset.Rows}

	opts := append([]engine.Option{engine.WithLogger(p.log)}, p.opts...)
	puzzle, err := engine.New(p.size, dims, img, persist.Preset.Moves, opts...)
	if err != nil {
		return fmt.Errorf("failed to start puzzle %q: %w", persist.PresetID, err)
	}
	p.puzzle = puzzle
	p.log.Info().
		Str("preset", persist.PresetID).
		Str("picture", persist.Picture.Name).
		Stringer("dims", dims).
		Int("moves", persist.Preset.Moves).
		Msg("puzzle started")
	return nil
}

// HandleEvent forwards pointer gestures to the puzzle. Escape returns to the
// title; once solved, any click does.
func (p *Puzzling) HandleEvent(e Event) {
	switch e.Kind {
	case EventQuit:
		p.status.Quit = true
	case EventKeyUp:
		if e.Key == KeyEscape {
			p.status.finish(StateTitle, p.persist)
		}
	case EventPointerDown:
		if p.puzzle != nil {
			p.puzzle.PointerDown(e.Pos)
		}
	case EventPointerUp:
		if p.puzzle == nil {
			return
		}
		if p.puzzle.IsComplete() {
			p.status.finish(StateTitle, p.persist)
			return
		}
		if res, ok := p.puzzle.PointerUp(e.Pos); ok {
			p.log.Debug().Stringer("hole", res.Hole).Int("movers", len(res.Movers)).Msg("shift")
		}
	}
}

// Update advances the running slides.
func (p *Puzzling) Update(dt time.Duration) {
	if p.puzzle != nil {
		p.puzzle.Tick(dt)
	}
}

// Draw fills the background, draws the board and, when solved, a banner.
func (p *Puzzling) Draw(c Canvas) {
	c.Fill(colorBoard)
	if p.puzzle == nil {
		return
	}
	p.puzzle.Render(c)
	if p.puzzle.IsComplete() {
		b := p.solved.Bounds()
		at := geom.Point{X: (p.size.W - b.Dx()) / 2, Y: (p.size.H - b.Dy()) / 2}
		c.DrawImage(p.solved, imageRect(p.solved, at))
	}
}

// Status exposes the flags the controller polls.
func (p *Puzzling) Status() *Status { return &p.status }

// Puzzle returns the running puzzle, nil before Startup.
func (p *Puzzling) Puzzle() *engine.Puzzle { return p.puzzle }
