package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
	"github.com/wricardo/slide-puzzle/game/service"
	"github.com/wricardo/slide-puzzle/game/session"
)

var boardSize = geom.Size{W: 480, H: 480}

func createTestServer(t *testing.T) (*Server, service.PuzzleService) {
	t.Helper()
	color.NoColor = true

	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	if err := configs.SavePreset("tiny", &config.Preset{Name: "Tiny", Moves: 1, Columns: 3, Rows: 2}); err != nil {
		t.Fatalf("Failed to save preset: %v", err)
	}

	svc := service.NewGameService(session.NewManager(), configs,
		service.WithBoardSize(boardSize),
		service.WithPictures(imagery.Generated(boardSize.W, boardSize.H)))
	return NewServer(svc, zerolog.Nop()), svc
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (string, bool) {
	t.Helper()
	var request mcp.CallToolRequest
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected tool result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text, result.IsError
}

func createTestSession(t *testing.T, svc service.PuzzleService) *service.SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), "tiny", 11)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return info
}

func TestNewServer(t *testing.T) {
	s, _ := createTestServer(t)

	if s.GetMCPServer() == nil {
		t.Fatal("Expected MCP server to be initialized")
	}
	if s.svc == nil {
		t.Error("Expected service to be set")
	}
}

func TestServer_ListPresets(t *testing.T) {
	s, _ := createTestServer(t)

	text, isErr := callTool(t, s.handleListPresets, nil)
	if isErr {
		t.Fatalf("Unexpected error: %s", text)
	}
	for _, want := range []string{"easy", "yikes", "tiny", "Grid: 8x6", "file"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in preset list:\n%s", want, text)
		}
	}
}

func TestServer_NewPuzzle(t *testing.T) {
	s, svc := createTestServer(t)

	t.Run("named preset", func(t *testing.T) {
		text, isErr := callTool(t, s.handleNewPuzzle, map[string]interface{}{
			"preset": "tiny",
			"seed":   float64(4),
		})
		if isErr {
			t.Fatalf("Unexpected error: %s", text)
		}
		if !strings.Contains(text, "Preset: tiny (3x2, 1 shuffle moves)") {
			t.Errorf("Unexpected output:\n%s", text)
		}
		if !strings.Contains(text, "Seed: 4") {
			t.Errorf("Expected the seed to be echoed:\n%s", text)
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, isErr := callTool(t, s.handleNewPuzzle, map[string]interface{}{"preset": "nope"})
		if !isErr {
			t.Error("Expected an error result for an unknown preset")
		}
	})

	t.Run("negative seed", func(t *testing.T) {
		_, isErr := callTool(t, s.handleNewPuzzle, map[string]interface{}{"seed": float64(-1)})
		if !isErr {
			t.Error("Expected an error result for a negative seed")
		}
	})

	sessions, _ := svc.ListSessions(context.Background())
	if len(sessions) != 1 {
		t.Errorf("Expected 1 session, got %d", len(sessions))
	}
}

func TestServer_SlideWithHint(t *testing.T) {
	s, svc := createTestServer(t)
	info := createTestSession(t, svc)

	hint, err := svc.Hint(context.Background(), info.ID)
	if err != nil || hint.Next == nil {
		t.Fatalf("Expected a hint, got %+v (%v)", hint, err)
	}

	text, isErr := callTool(t, s.handleHint, map[string]interface{}{"session_id": info.ID})
	if isErr || !strings.Contains(text, "Next: slide") {
		t.Fatalf("Unexpected hint output:\n%s", text)
	}

	text, isErr = callTool(t, s.handleSlide, map[string]interface{}{
		"session_id": info.ID,
		"col":        float64(hint.Next.Tile.Col),
		"row":        float64(hint.Next.Tile.Row),
		"direction":  hint.Next.Direction,
	})
	if isErr {
		t.Fatalf("Unexpected error: %s", text)
	}
	if !strings.Contains(text, "✓ puzzle solved") {
		t.Errorf("Expected the slide to solve the puzzle:\n%s", text)
	}
	if !strings.Contains(text, "3x2 solved") {
		t.Errorf("Expected a solved board:\n%s", text)
	}

	text, _ = callTool(t, s.handleHint, map[string]interface{}{"session_id": info.ID})
	if !strings.Contains(text, "already solved") {
		t.Errorf("Expected solved hint, got:\n%s", text)
	}
}

func TestServer_SlideErrors(t *testing.T) {
	s, svc := createTestServer(t)
	info := createTestSession(t, svc)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing session", map[string]interface{}{"col": float64(0), "row": float64(0), "direction": "up"}},
		{"unknown session", map[string]interface{}{"session_id": "zzzz", "col": float64(0), "row": float64(0), "direction": "up"}},
		{"missing column", map[string]interface{}{"session_id": info.ID, "row": float64(0), "direction": "up"}},
		{"bad direction", map[string]interface{}{"session_id": info.ID, "col": float64(0), "row": float64(0), "direction": "sideways"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, isErr := callTool(t, s.handleSlide, test.args); !isErr {
				t.Error("Expected an error result")
			}
		})
	}

	t.Run("hole is rejected without error", func(t *testing.T) {
		hole := info.State.Hole
		text, isErr := callTool(t, s.handleSlide, map[string]interface{}{
			"session_id": info.ID,
			"col":        float64(hole.Col),
			"row":        float64(hole.Row),
			"direction":  "up",
		})
		if isErr {
			t.Fatalf("Expected a rejected slide, not an error: %s", text)
		}
		if !strings.Contains(text, "✗") {
			t.Errorf("Expected a rejection marker:\n%s", text)
		}
	})
}

func TestServer_BulkSlide(t *testing.T) {
	s, svc := createTestServer(t)
	info := createTestSession(t, svc)
	hint, _ := svc.Hint(context.Background(), info.ID)

	t.Run("invalid entries", func(t *testing.T) {
		tests := []struct {
			name   string
			slides interface{}
		}{
			{"missing", nil},
			{"empty", []interface{}{}},
			{"not a string", []interface{}{float64(3)}},
			{"malformed", []interface{}{"1,up"}},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				args := map[string]interface{}{"session_id": info.ID}
				if test.slides != nil {
					args["slides"] = test.slides
				}
				if _, isErr := callTool(t, s.handleBulkSlide, args); !isErr {
					t.Error("Expected an error result")
				}
			})
		}
	})

	step := fmt.Sprintf("%d,%d,%s", hint.Next.Tile.Col, hint.Next.Tile.Row, hint.Next.Direction)
	solve := []interface{}{step, step}
	text, isErr := callTool(t, s.handleBulkSlide, map[string]interface{}{
		"session_id": info.ID,
		"slides":     solve,
	})
	if isErr {
		t.Fatalf("Unexpected error: %s", text)
	}
	if !strings.Contains(text, "Executed 1/2 slides") {
		t.Errorf("Expected bulk slide to stop after solving:\n%s", text)
	}
	if !strings.Contains(text, "Puzzle solved") {
		t.Errorf("Expected solved banner:\n%s", text)
	}

	text, _ = callTool(t, s.handleHistory, map[string]interface{}{"session_id": info.ID})
	if !strings.Contains(text, "Total: 1") || !strings.Contains(text, "(solved)") {
		t.Errorf("Unexpected history:\n%s", text)
	}
}

func TestServer_SessionTools(t *testing.T) {
	s, svc := createTestServer(t)
	info := createTestSession(t, svc)
	args := map[string]interface{}{"session_id": info.ID}

	text, _ := callTool(t, s.handleListSessions, nil)
	if !strings.Contains(text, "Active Sessions (1)") || !strings.Contains(text, info.ID) {
		t.Errorf("Unexpected session list:\n%s", text)
	}

	text, isErr := callTool(t, s.handleGetSession, args)
	if isErr || !strings.Contains(text, "Session: "+info.ID) {
		t.Errorf("Unexpected session details:\n%s", text)
	}

	text, isErr = callTool(t, s.handlePuzzleState, args)
	if isErr || !strings.Contains(text, "3x2 unsolved") {
		t.Errorf("Unexpected state:\n%s", text)
	}

	text, isErr = callTool(t, s.handleReset, args)
	if isErr || !strings.Contains(text, "starting shuffle") {
		t.Errorf("Unexpected reset output:\n%s", text)
	}

	if _, isErr = callTool(t, s.handleDeleteSession, args); isErr {
		t.Error("Expected delete to succeed")
	}
	if _, isErr = callTool(t, s.handleGetSession, args); !isErr {
		t.Error("Expected deleted session to be missing")
	}
}

func TestServer_Instructions(t *testing.T) {
	s, _ := createTestServer(t)

	text, isErr := callTool(t, s.handleInstructions, nil)
	if isErr {
		t.Fatal("Unexpected error result")
	}
	for _, want := range []string{"GOAL", "SLIDING", "top-right"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in instructions", want)
		}
	}
}

func TestParseSlide(t *testing.T) {
	tests := []struct {
		input   string
		want    service.SlideRequest
		wantErr bool
	}{
		{"2,1,up", service.SlideRequest{Tile: geom.Index{Col: 2, Row: 1}, Direction: "up"}, false},
		{" 0 , 3 , L ", service.SlideRequest{Tile: geom.Index{Col: 0, Row: 3}, Direction: "L"}, false},
		{"2,1", service.SlideRequest{}, true},
		{"x,1,up", service.SlideRequest{}, true},
		{"1,y,up", service.SlideRequest{}, true},
		{"1,1,north", service.SlideRequest{}, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseSlide(test.input)
			if (err != nil) != test.wantErr {
				t.Fatalf("ParseSlide(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			}
			if !test.wantErr && got != test.want {
				t.Errorf("ParseSlide(%q) = %+v, want %+v", test.input, got, test.want)
			}
		})
	}
}
