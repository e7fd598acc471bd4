package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/screen"
)

// frame is the raw input state sampled once per tick.
type frame struct {
	cursor   geom.Point
	pressed  bool
	released bool
	keys     []screen.Key
	closing  bool
}

var watchedKeys = map[ebiten.Key]screen.Key{
	ebiten.KeyEscape: screen.KeyEscape,
	ebiten.KeySpace:  screen.KeySpace,
}

// Poller turns ebiten's polled input into screen events.
type Poller struct {
	last    geom.Point
	started bool
}

// Poll samples the current tick's input.
func (p *Poller) Poll() []screen.Event {
	x, y := ebiten.CursorPosition()
	f := frame{
		cursor:   geom.Point{X: x, Y: y},
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		closing:  ebiten.IsWindowBeingClosed(),
	}
	for k, sk := range watchedKeys {
		if inpututil.IsKeyJustReleased(k) {
			f.keys = append(f.keys, sk)
		}
	}
	return p.translate(f)
}

// translate orders events as move, press, release, keys, close.
func (p *Poller) translate(f frame) []screen.Event {
	var events []screen.Event
	if !p.started || f.cursor != p.last {
		events = append(events, screen.Event{Kind: screen.EventPointerMove, Pos: f.cursor})
		p.last = f.cursor
		p.started = true
	}
	if f.pressed {
		events = append(events, screen.Event{Kind: screen.EventPointerDown, Pos: f.cursor})
	}
	if f.released {
		events = append(events, screen.Event{Kind: screen.EventPointerUp, Pos: f.cursor})
	}
	for _, k := range f.keys {
		events = append(events, screen.Event{Kind: screen.EventKeyUp, Key: k})
	}
	if f.closing {
		events = append(events, screen.Event{Kind: screen.EventQuit})
	}
	return events
}
