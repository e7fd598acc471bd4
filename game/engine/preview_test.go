package engine

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/wricardo/slide-puzzle/game/geom"
)

func createTestPreview(t *testing.T, w, h int, opts ...Option) *Preview {
	t.Helper()
	opts = append([]Option{WithSeed(5)}, opts...)
	pv, err := NewPreview(createTestImage(w, h), geom.Size{W: 24, H: 24}, opts...)
	if err != nil {
		t.Fatalf("Failed to create preview: %v", err)
	}
	return pv
}

// runPreview ticks until the preview reports done, failing after limit ticks.
func runPreview(t *testing.T, pv *Preview, limit int) int {
	t.Helper()
	for i := 0; i < limit; i++ {
		if pv.Done() {
			return i
		}
		pv.Tick(100 * time.Millisecond)
	}
	t.Fatalf("Preview not done after %d ticks, %d swaps remaining", limit, pv.Remaining())
	return limit
}

func TestNewPreview_DimsAndScramble(t *testing.T) {
	pv := createTestPreview(t, 72, 48)

	if pv.Dims() != (geom.Size{W: 3, H: 2}) {
		t.Errorf("Expected 3x2, got %v", pv.Dims())
	}
	if pv.Remaining() != 6 {
		t.Errorf("Expected one recorded swap per cell, got %d", pv.Remaining())
	}
	if len(pv.Tiles()) != 5 {
		t.Errorf("Expected the hole tile hidden while scrambled, got %d tiles", len(pv.Tiles()))
	}
	if pv.Done() {
		t.Error("Fresh preview must not be done")
	}
}

func TestNewPreview_Errors(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		cell geom.Size
	}{
		{"nil image", nil, geom.Size{W: 24, H: 24}},
		{"zero cell", createTestImage(80, 60), geom.Size{W: 0, H: 24}},
		{"image smaller than cell", createTestImage(20, 60), geom.Size{W: 24, H: 24}},
		{"width not whole cells", createTestImage(80, 48), geom.Size{W: 24, H: 24}},
		{"height not whole cells", createTestImage(72, 60), geom.Size{W: 24, H: 24}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewPreview(test.img, test.cell)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Expected configuration error, got %v", err)
			}
		})
	}
}

func TestPreview_ReplaysToSolved(t *testing.T) {
	pv := createTestPreview(t, 96, 72)
	total := pv.Remaining()

	ticks := runPreview(t, pv, 1000)
	if ticks < total {
		t.Errorf("Expected at least one tick per swap, finished in %d ticks for %d swaps", ticks, total)
	}
	if !pv.Solved() {
		t.Error("Expected the picture to be whole after replay")
	}
	if pv.Hole() != (geom.Index{Col: pv.Dims().W - 1, Row: 0}) {
		t.Errorf("Expected hole back in the top-right cell, got %v", pv.Hole())
	}
	if got, want := len(pv.Tiles()), pv.Dims().W*pv.Dims().H; got != want {
		t.Errorf("Expected %d tiles after reveal, got %d", want, got)
	}
}

func TestPreview_OneSlideAtATime(t *testing.T) {
	pv := createTestPreview(t, 96, 72)
	start := pv.Remaining()

	pv.Tick(10 * time.Millisecond)
	if pv.Remaining() != start-1 {
		t.Fatalf("Expected first tick to start one slide, remaining %d", pv.Remaining())
	}
	pv.Tick(10 * time.Millisecond)
	if pv.Remaining() != start-1 {
		t.Error("A new slide started while the previous one was still running")
	}
}

func TestPreview_RevealsOnceWithoutLoop(t *testing.T) {
	pv := createTestPreview(t, 72, 48)
	runPreview(t, pv, 1000)
	n := len(pv.Tiles())

	for i := 0; i < 50; i++ {
		pv.Tick(time.Second)
	}
	if !pv.Done() {
		t.Error("Non-looping preview must stay done")
	}
	if len(pv.Tiles()) != n {
		t.Errorf("Expected tile count to stay %d, got %d", n, len(pv.Tiles()))
	}
}

func TestPreview_LoopRescramblesAfterHold(t *testing.T) {
	hold := 2 * time.Second
	pv := createTestPreview(t, 72, 48, WithLoop(hold))
	runPreview(t, pv, 1000)

	pv.Tick(time.Second)
	if !pv.Done() {
		t.Fatal("Preview rescrambled before the hold elapsed")
	}
	pv.Tick(time.Second)
	if pv.Done() {
		t.Fatal("Expected preview to rescramble after the hold")
	}
	if pv.Remaining() != 6 {
		t.Errorf("Expected a fresh set of 6 swaps, got %d", pv.Remaining())
	}
	if len(pv.Tiles()) != 5 {
		t.Errorf("Expected the hole tile hidden again, got %d tiles", len(pv.Tiles()))
	}

	runPreview(t, pv, 1000)
	if !pv.Solved() {
		t.Error("Expected second replay to finish solved")
	}
}

func TestPreview_Render(t *testing.T) {
	origin := geom.Point{X: 10, Y: 20}
	pv := createTestPreview(t, 72, 48, WithOrigin(origin))

	s := &recordingSurface{}
	pv.Render(s)
	if len(s.draws) != 5 {
		t.Fatalf("Expected 5 draws, got %d", len(s.draws))
	}
	for _, d := range s.draws {
		if d.at.W != 24 || d.at.H != 24 {
			t.Errorf("Unexpected draw size %+v", d.at)
		}
		if d.at.X < origin.X || d.at.Y < origin.Y {
			t.Errorf("Draw %+v ignores the origin", d.at)
		}
	}
}
