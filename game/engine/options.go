package engine

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
)

// Option customizes a Puzzle or a Preview.
type Option func(*options)

type options struct {
	rng      *rand.Rand
	provider ImageProvider
	origin   geom.Point
	duration time.Duration
	logger   zerolog.Logger
	loop     bool
	hold     time.Duration
}

func defaultOptions() options {
	return options{
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		provider: imagery.Slicer{},
		duration: DefaultShiftDuration,
		logger:   zerolog.Nop(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRand sets the random source used for shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithSeed shuffles from a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithImageProvider replaces the default fragment slicer.
func WithImageProvider(p ImageProvider) Option {
	return func(o *options) {
		if p != nil {
			o.provider = p
		}
	}
}

// WithOrigin offsets rendering and pointer hit-testing by origin.
func WithOrigin(origin geom.Point) Option {
	return func(o *options) { o.origin = origin }
}

// WithShiftDuration sets how long a tile takes to slide one cell.
func WithShiftDuration(d time.Duration) Option {
	return func(o *options) { o.duration = d }
}

// WithLogger attaches a logger; the engine logs at debug level only.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLoop makes a Preview scramble and replay again after resting solved
// for hold. Puzzles ignore it.
func WithLoop(hold time.Duration) Option {
	return func(o *options) {
		o.loop = true
		o.hold = hold
	}
}
