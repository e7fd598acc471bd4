// Package desktop runs the screens in an ebiten window.
package desktop

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/screen"
)

// Game adapts a screen.Controller to ebiten.Game.
type Game struct {
	controller *screen.Controller
	canvas     *Canvas
	input      *Poller
	size       geom.Size
	current    screen.StateName
	log        zerolog.Logger
}

// NewGame wraps controller for a logical surface of size pixels.
func NewGame(controller *screen.Controller, size geom.Size, logger zerolog.Logger) *Game {
	return &Game{
		controller: controller,
		canvas:     NewCanvas(),
		input:      &Poller{},
		size:       size,
		current:    controller.Current(),
		log:        logger,
	}
}

// Update feeds input to the controller and advances it by one tick.
func (g *Game) Update() error {
	for _, e := range g.input.Poll() {
		g.controller.HandleEvent(e)
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	if err := g.controller.Update(dt); err != nil {
		if errors.Is(err, screen.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}

	if cur := g.controller.Current(); cur != g.current {
		g.canvas.Reset()
		g.current = cur
	}
	return nil
}

// Draw renders the current screen.
func (g *Game) Draw(dst *ebiten.Image) {
	g.canvas.SetTarget(dst)
	g.controller.Draw(g.canvas)
}

// Layout keeps the logical surface fixed; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size.W, g.size.H
}

// Run opens the window and blocks until the game quits.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.size.W, g.size.H)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	g.log.Info().Stringer("size", g.size).Msg("opening window")
	return ebiten.RunGame(g)
}
