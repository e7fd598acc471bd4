package engine

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/wricardo/slide-puzzle/game/geom"
)

const (
	// DefaultShiftDuration is how long a tile takes to slide one cell.
	DefaultShiftDuration = 250 * time.Millisecond
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid puzzle configuration")

// ConfigurationError reports grid dimensions that do not fit the pixel size
// or the source image. It is fatal to the puzzle being constructed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrConfiguration, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ImageProvider cuts a fragment out of a source image. The fragment must own
// its pixels and keep the source's pixel format.
type ImageProvider interface {
	Fragment(src image.Image, r image.Rectangle) (image.Image, error)
}

// Surface is the render target tiles are drawn onto.
type Surface interface {
	DrawImage(img image.Image, at geom.Rect)
}

// Axis names the line a shift travels along.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// offsets are the four hole neighbours, in the order they are shuffled from.
var offsets = [4]geom.Index{
	{Col: -1, Row: 0},
	{Col: 1, Row: 0},
	{Col: 0, Row: -1},
	{Col: 0, Row: 1},
}
