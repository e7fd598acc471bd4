package screen

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrQuit is returned by Controller.Update once a screen asks to quit.
var ErrQuit = errors.New("quit requested")

// ErrUnknownState is returned when a screen names a state nobody registered.
var ErrUnknownState = errors.New("unknown screen state")

// Controller owns the registered screens and hands control from one to the
// next when the current one is done.
type Controller struct {
	states  map[StateName]State
	current StateName
	state   State
	log     zerolog.Logger
}

// NewController registers states and starts the one named start with an
// empty Persist.
func NewController(states map[StateName]State, start StateName, logger zerolog.Logger) (*Controller, error) {
	c := &Controller{
		states: states,
		log:    logger,
	}
	if err := c.enter(start, Persist{}); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) enter(name StateName, p Persist) error {
	next, ok := c.states[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, name)
	}
	if err := next.Startup(p); err != nil {
		return err
	}
	c.log.Debug().Str("from", string(c.current)).Str("to", string(name)).Msg("screen changed")
	c.current = name
	c.state = next
	return nil
}

// HandleEvent forwards an input event to the current screen.
func (c *Controller) HandleEvent(e Event) {
	c.state.HandleEvent(e)
}

// Update advances the current screen, then flips to the next one if it is
// done. A screen that fails to start is logged and the current one stays.
// It returns ErrQuit once the game should exit.
func (c *Controller) Update(dt time.Duration) error {
	st := c.state.Status()
	if st.Quit {
		return ErrQuit
	}
	if st.Done {
		err := c.enter(st.Next, st.Persist)
		if errors.Is(err, ErrUnknownState) {
			return err
		}
		if err != nil {
			c.log.Error().Err(err).Str("screen", string(st.Next)).Msg("screen failed to start")
			st.Done = false
		}
		return nil
	}
	c.state.Update(dt)
	return nil
}

// Draw renders the current screen.
func (c *Controller) Draw(cv Canvas) {
	c.state.Draw(cv)
}

// Current returns the name of the active screen.
func (c *Controller) Current() StateName { return c.current }

// State returns the active screen.
func (c *Controller) State() State { return c.state }
