package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
	"github.com/wricardo/slide-puzzle/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, spec service.PuzzleSpec) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	p, err := spec.Build()
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Spec:           spec,
		Puzzle:         p,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) Reset(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	p, err := session.Spec.Build()
	if err != nil {
		return nil, err
	}
	session.Puzzle = p
	session.History = nil
	return session, nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

var boardSize = geom.Size{W: 480, H: 480}

func createTestService(t *testing.T) service.PuzzleService {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	presets := map[string]*config.Preset{
		"tiny":   {Name: "Tiny", Moves: 1, Columns: 3, Rows: 2},
		"frozen": {Name: "Frozen", Moves: 0, Columns: 3, Rows: 2},
		"short":  {Name: "Short", Moves: 6, Columns: 3, Rows: 2},
	}
	for id, p := range presets {
		if err := configs.SavePreset(id, p); err != nil {
			t.Fatalf("Failed to save preset %s: %v", id, err)
		}
	}

	return service.NewGameService(NewMockSessionManager(), configs,
		service.WithBoardSize(boardSize),
		service.WithPictures(imagery.Generated(boardSize.W, boardSize.H)))
}

func createSession(t *testing.T, svc service.PuzzleService, preset string) *service.SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), preset, 11)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return info
}

// neighbourOfHole returns a tile next to the hole and the direction that
// drags it into the hole.
func neighbourOfHole(s *engine.Snapshot) (geom.Index, string) {
	h := s.Hole
	candidates := []struct {
		off geom.Index
		dir string
	}{
		{geom.Index{Col: -1}, "right"},
		{geom.Index{Col: 1}, "left"},
		{geom.Index{Row: -1}, "down"},
		{geom.Index{Row: 1}, "up"},
	}
	for _, c := range candidates {
		idx := h.Add(c.off)
		if idx.Col >= 0 && idx.Col < s.Columns && idx.Row >= 0 && idx.Row < s.Rows {
			return idx, c.dir
		}
	}
	return geom.Index{}, ""
}

func TestGameService_CreateSession(t *testing.T) {
	svc := createTestService(t)
	ctx := context.Background()

	t.Run("named preset", func(t *testing.T) {
		info := createSession(t, svc, "tiny")
		if info.PresetID != "tiny" || info.Preset.Columns != 3 {
			t.Errorf("Unexpected session info %+v", info)
		}
		if info.Seed != 11 {
			t.Errorf("Expected seed 11, got %d", info.Seed)
		}
		if info.State == nil || info.State.Shuffled != 1 {
			t.Errorf("Expected one shuffle move, got %+v", info.State)
		}
		if info.Picture == "" {
			t.Error("Expected a picture name")
		}
	})

	t.Run("default preset", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "", 0)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.State.Columns != 4 || info.State.Rows != 3 {
			t.Errorf("Expected the built-in easy grid, got %dx%d", info.State.Columns, info.State.Rows)
		}
		if info.Seed == 0 {
			t.Error("Expected a random seed to be chosen")
		}
	})

	t.Run("unknown preset lists alternatives", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nope", 1)
		if err == nil {
			t.Fatal("Expected error for unknown preset")
		}
		if !strings.Contains(err.Error(), "tiny") {
			t.Errorf("Expected available presets in error, got %v", err)
		}
	})

	t.Run("same seed same layout", func(t *testing.T) {
		a := createSession(t, svc, "short")
		b := createSession(t, svc, "short")
		if fmt.Sprint(a.State.Layout) != fmt.Sprint(b.State.Layout) {
			t.Error("Expected identical layouts for identical seeds")
		}
	})
}

func TestGameService_SlideSolvesOneMoveShuffle(t *testing.T) {
	svc := createTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "tiny")

	hint, err := svc.Hint(ctx, info.ID)
	if err != nil {
		t.Fatalf("Hint failed: %v", err)
	}
	if hint.Solved || hint.Next == nil || hint.Remaining != 1 {
		t.Fatalf("Expected a one-step hint, got %+v", hint)
	}

	res, err := svc.Slide(ctx, info.ID, *hint.Next)
	if err != nil {
		t.Fatalf("Slide failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("Expected slide to succeed: %s", res.Message)
	}
	if !res.State.Complete {
		t.Error("Expected the puzzle to be complete")
	}
	if res.State.Animating {
		t.Error("Expected the slide to have settled")
	}
	if res.Step == nil || !res.Step.Complete || res.Step.Movers != 1 {
		t.Errorf("Unexpected step %+v", res.Step)
	}

	var sawComplete bool
	for _, ev := range res.Events {
		if ev.Type == "complete" {
			sawComplete = true
		}
	}
	if !sawComplete {
		t.Error("Expected a complete event")
	}

	again, err := svc.Slide(ctx, info.ID, *hint.Next)
	if err != nil {
		t.Fatalf("Slide failed: %v", err)
	}
	if again.Success {
		t.Error("Slides after completion must be rejected")
	}

	hint, err = svc.Hint(ctx, info.ID)
	if err != nil || !hint.Solved {
		t.Errorf("Expected solved hint, got %+v (%v)", hint, err)
	}
}

func TestGameService_SlideRejections(t *testing.T) {
	svc := createTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "short")
	if info.State.Complete {
		t.Skip("seeded shuffle happened to solve the puzzle")
	}

	t.Run("invalid direction", func(t *testing.T) {
		_, err := svc.Slide(ctx, info.ID, service.SlideRequest{Direction: "sideways"})
		if !errors.Is(err, service.ErrInvalidDirection) {
			t.Errorf("Expected ErrInvalidDirection, got %v", err)
		}
	})

	t.Run("hole", func(t *testing.T) {
		res, err := svc.Slide(ctx, info.ID, service.SlideRequest{Tile: info.State.Hole, Direction: "left"})
		if err != nil {
			t.Fatalf("Slide failed: %v", err)
		}
		if res.Success || !strings.Contains(res.Message, "hole") {
			t.Errorf("Expected hole rejection, got %+v", res)
		}
	})

	t.Run("away from hole", func(t *testing.T) {
		tile, toward := neighbourOfHole(info.State)
		away := map[string]string{"left": "right", "right": "left", "up": "down", "down": "up"}[toward]
		res, err := svc.Slide(ctx, info.ID, service.SlideRequest{Tile: tile, Direction: away})
		if err != nil {
			t.Fatalf("Slide failed: %v", err)
		}
		if res.Success {
			t.Error("Dragging away from the hole must be rejected")
		}
		if len(res.Events) != 1 || res.Events[0].Type != "blocked" {
			t.Errorf("Expected one blocked event, got %+v", res.Events)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := svc.Slide(ctx, "missing", service.SlideRequest{Direction: "up"}); err == nil {
			t.Error("Expected error for unknown session")
		}
	})
}

func TestGameService_BulkSlideAndHistory(t *testing.T) {
	svc := createTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "short")
	if info.State.Complete {
		t.Skip("seeded shuffle happened to solve the puzzle")
	}

	tile, dir := neighbourOfHole(info.State)
	back := map[string]string{"left": "right", "right": "left", "up": "down", "down": "up"}[dir]
	// The slid tile ends on the old hole; sliding it back undoes the move.
	reqs := []service.SlideRequest{
		{Tile: tile, Direction: dir},
		{Tile: info.State.Hole, Direction: back},
		{Tile: info.State.Hole, Direction: back},
	}

	res, err := svc.BulkSlide(ctx, info.ID, reqs)
	if err != nil {
		t.Fatalf("BulkSlide failed: %v", err)
	}
	if res.SlidesExecuted != 2 || res.StoppedOnSlide != 3 || res.Success {
		t.Errorf("Expected to stop on the third slide, got %+v", res)
	}
	if fmt.Sprint(res.State.Layout) != fmt.Sprint(info.State.Layout) {
		t.Error("Expected the layout to be back where it started")
	}

	hist, err := svc.GetHistory(ctx, info.ID, service.HistoryOptions{Limit: 1, Order: "asc"})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if hist.TotalSlides != 2 || hist.TotalPages != 2 || !hist.HasNext || hist.HasPrevious {
		t.Errorf("Unexpected pagination %+v", hist)
	}
	if len(hist.Slides) != 1 || hist.Slides[0].Idx != 1 {
		t.Errorf("Expected first slide on page 1, got %+v", hist.Slides)
	}

	desc, _ := svc.GetHistory(ctx, info.ID, service.HistoryOptions{})
	if len(desc.Slides) != 2 || desc.Slides[0].Idx != 2 {
		t.Errorf("Expected newest first by default, got %+v", desc.Slides)
	}

	if _, err := svc.BulkSlide(ctx, info.ID, []service.SlideRequest{{Direction: "diagonal"}}); !errors.Is(err, service.ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}

func TestGameService_Reset(t *testing.T) {
	svc := createTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "tiny")

	hint, _ := svc.Hint(ctx, info.ID)
	if _, err := svc.Slide(ctx, info.ID, *hint.Next); err != nil {
		t.Fatalf("Slide failed: %v", err)
	}

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.Complete || fmt.Sprint(state.Layout) != fmt.Sprint(info.State.Layout) {
		t.Errorf("Expected the original shuffle back, got %+v", state)
	}
	hist, _ := svc.GetHistory(ctx, info.ID, service.HistoryOptions{})
	if hist.TotalSlides != 0 {
		t.Errorf("Expected empty history after reset, got %d", hist.TotalSlides)
	}
}

func TestGameService_SessionLifecycle(t *testing.T) {
	svc := createTestService(t)
	ctx := context.Background()
	a := createSession(t, svc, "tiny")
	createSession(t, svc, "frozen")

	list, err := svc.ListSessions(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("Expected 2 sessions, got %d (%v)", len(list), err)
	}

	got, err := svc.GetSession(ctx, a.ID)
	if err != nil || got.ID != a.ID {
		t.Errorf("GetSession returned %+v (%v)", got, err)
	}
	state, err := svc.GetState(ctx, a.ID)
	if err != nil || state.Columns != 3 {
		t.Errorf("GetState returned %+v (%v)", state, err)
	}

	if err := svc.DeleteSession(ctx, a.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, a.ID); err == nil {
		t.Error("Expected deleted session to be gone")
	}
}

func TestGameService_Presets(t *testing.T) {
	svc := createTestService(t)
	ctx := context.Background()

	list, err := svc.ListPresets(ctx)
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}
	if len(list) != 7 {
		t.Errorf("Expected 4 built-in and 3 file presets, got %d", len(list))
	}

	if err := svc.SavePreset(ctx, "wide", &config.Preset{Name: "Wide", Moves: 5, Columns: 6, Rows: 2}); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	p, err := svc.LoadPreset(ctx, "wide")
	if err != nil || p.Columns != 6 {
		t.Errorf("LoadPreset returned %+v (%v)", p, err)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Point
		wantErr bool
	}{
		{"left", geom.Point{X: -1}, false},
		{"R", geom.Point{X: 1}, false},
		{" up ", geom.Point{Y: -1}, false},
		{"d", geom.Point{Y: 1}, false},
		{"north", geom.Point{}, true},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got, err := service.ParseDirection(test.in)
			if (err != nil) != test.wantErr {
				t.Fatalf("ParseDirection() error = %v, wantErr %v", err, test.wantErr)
			}
			if got != test.want {
				t.Errorf("ParseDirection() = %+v, expected %+v", got, test.want)
			}
			if !test.wantErr && service.DirectionName(got) != map[geom.Point]string{
				{X: -1}: "left", {X: 1}: "right", {Y: -1}: "up", {Y: 1}: "down",
			}[got] {
				t.Errorf("DirectionName(%+v) does not round-trip", got)
			}
		})
	}
}

func TestRenderBoard(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	s := &engine.Snapshot{
		Columns:  3,
		Rows:     2,
		Layout:   [][]int{{1, 2, 0}, {4, 5, 6}},
		Complete: true,
	}
	out := service.RenderBoard(s)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %q", out)
	}
	if !strings.Contains(lines[0], "solved") {
		t.Errorf("Expected solved header, got %q", lines[0])
	}
	if lines[1] != "1 2 ." || lines[2] != "4 5 6" {
		t.Errorf("Unexpected board rows %q", lines[1:])
	}

	if service.RenderBoard(nil) != "" {
		t.Error("Expected empty output for nil snapshot")
	}
}
