// Package anim provides the tweening primitive used to slide tiles across the
// screen. An Animation interpolates selected fields of a geom.Rect from their
// value at Start to a target over a fixed duration; it is advanced by the
// frame delta and never blocks.
package anim

import (
	"math"
	"time"

	"github.com/wricardo/slide-puzzle/game/geom"
)

// Fields selects which rectangle fields an Animation drives.
type Fields uint8

const (
	X Fields = 1 << iota
	Y

	XY = X | Y
)

// Animation moves a rectangle's origin toward a target.
type Animation struct {
	to       geom.Point
	fields   Fields
	duration time.Duration
	round    bool

	target  *geom.Rect
	fromX   float64
	fromY   float64
	elapsed time.Duration
	done    bool
}

// New creates an animation toward to. Only the axes named in fields are
// touched. When round is set, intermediate positions snap to whole pixels.
func New(to geom.Point, fields Fields, duration time.Duration, round bool) *Animation {
	return &Animation{
		to:       to,
		fields:   fields,
		duration: duration,
		round:    round,
	}
}

// Start binds the animation to r and records its current origin as the
// starting value.
func (a *Animation) Start(r *geom.Rect) {
	a.target = r
	a.fromX = float64(r.X)
	a.fromY = float64(r.Y)
	a.elapsed = 0
	a.done = false
	if a.duration <= 0 {
		a.finish()
	}
}

// Advance moves the animation forward by dt. It is a no-op once finished or
// before Start.
func (a *Animation) Advance(dt time.Duration) {
	if a.done || a.target == nil {
		return
	}
	a.elapsed += dt
	if a.elapsed >= a.duration {
		a.finish()
		return
	}

	t := float64(a.elapsed) / float64(a.duration)
	if a.fields&X != 0 {
		a.target.X = a.value(a.fromX, float64(a.to.X), t)
	}
	if a.fields&Y != 0 {
		a.target.Y = a.value(a.fromY, float64(a.to.Y), t)
	}
}

// Finished reports whether the animation has reached its target.
func (a *Animation) Finished() bool {
	return a.done
}

// Target returns the destination origin.
func (a *Animation) Target() geom.Point {
	return a.to
}

// Duration returns the configured duration.
func (a *Animation) Duration() time.Duration {
	return a.duration
}

func (a *Animation) value(from, to, t float64) int {
	v := from + (to-from)*t
	if a.round {
		return int(math.Round(v))
	}
	return int(v)
}

func (a *Animation) finish() {
	if a.fields&X != 0 {
		a.target.X = a.to.X
	}
	if a.fields&Y != 0 {
		a.target.Y = a.to.Y
	}
	a.elapsed = a.duration
	a.done = true
}
