package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/service"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// maxBulkSlides bounds a single bulk_slide call.
const maxBulkSlides = 200

// Server exposes a PuzzleService as MCP tools.
type Server struct {
	svc       service.PuzzleService
	log       zerolog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server whose tools call svc directly.
func NewServer(svc service.PuzzleService, logger zerolog.Logger) *Server {
	s := &Server{
		svc: svc,
		log: logger,
	}

	s.initMCPServer()
	return s
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Slide Puzzle",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Slide Puzzle - MCP Interface

A picture is cut into a grid of tiles with one cell left empty (the hole).
Sliding a tile toward the hole moves it, together with every tile between it
and the hole, one cell along that row or column. Restore every tile to its
home cell to solve the puzzle.

Boards are shown as numbers: tile N belongs at row (N-1)/columns, column
(N-1)%columns. The hole is shown as '.'.

AVAILABLE TOOLS:
- list_presets: List difficulty presets
- new_puzzle: Start a puzzle session from a preset
- puzzle_state: Show the board of a session
- slide: Slide one tile toward the hole
- bulk_slide: Apply several slides in order
- hint: Suggest the next slide toward the solution
- reset_puzzle: Restore the session's starting shuffle
- slide_history: View past slides
- list_sessions / get_session / delete_session: Manage sessions
- puzzle_instructions: Rules and coordinate conventions`),
	)

	s.registerTools()
}

// GetMCPServer returns the underlying server, for stdio or in-process use.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving MCP over stdin and stdout.
func (s *Server) ServeStdio() error {
	s.log.Info().Str("version", Version).Msg("MCP stdio server ready")
	return server.ServeStdio(s.mcpServer)
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by new_puzzle",
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_presets",
		Description: "List difficulty presets (shuffle moves and grid size)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListPresets)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_puzzle",
		Description: "Create a new puzzle session from a preset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"preset": map[string]interface{}{
					"type":        "string",
					"description": "Preset ID such as easy, medium, hard or yikes (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Shuffle seed; the same seed and preset give the same board (optional)",
				},
			},
		},
	}, s.handleNewPuzzle)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a puzzle session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleDeleteSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "puzzle_state",
		Description: "Show the current board of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handlePuzzleState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "slide",
		Description: "Slide the tile at (col,row) one cell toward the hole. Tiles between it and the hole move with it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the tile to grab (0-based, left to right)",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the tile to grab (0-based, top to bottom)",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to drag the tile",
				},
			},
			Required: []string{"session_id", "col", "row", "direction"},
		},
	}, s.handleSlide)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_slide",
		Description: "Apply several slides in order. Stops at the first rejected slide or when the puzzle is solved.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"slides": map[string]interface{}{
					"type":        "array",
					"description": "Slides written as \"col,row,direction\", for example \"2,1,up\"",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"session_id", "slides"},
		},
	}, s.handleBulkSlide)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Suggest the next slide toward the solved picture",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleHint)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_puzzle",
		Description: "Restore the session to its starting shuffle and clear its history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "slide_history",
		Description: "Get the slide history of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Slides per page (default 20)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleHistory)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "puzzle_instructions",
		Description: "Get the rules of the puzzle and the coordinate conventions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleInstructions)
}

func (s *Server) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets, err := s.svc.ListPresets(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatPresets(presets)), nil
}

func (s *Server) handleNewPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	preset := request.GetString("preset", "")
	seed := request.GetInt("seed", 0)
	if seed < 0 {
		return mcp.NewToolResultError("seed must not be negative"), nil
	}

	info, err := s.svc.CreateSession(ctx, preset, uint64(seed))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.log.Info().Str("session", info.ID).Str("preset", info.PresetID).Msg("puzzle created via MCP")
	return mcp.NewToolResultText("Created " + formatSessionInfo(info)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		status := "unsolved"
		if info.State != nil && info.State.Complete {
			status = "solved"
		}
		fmt.Fprintf(&b, "- %s (Preset: %s, %s, Created: %s)\n",
			info.ID, info.PresetID, status, info.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.svc.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.svc.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted session %s", sessionID)), nil
}

func (s *Server) handlePuzzleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.svc.GetState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(service.RenderBoard(state)), nil
}

func (s *Server) handleSlide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := request.RequireInt("col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := request.RequireInt("row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, err := request.RequireString("direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.Slide(ctx, sessionID, service.SlideRequest{
		Tile:      geom.Index{Col: col, Row: row},
		Direction: direction,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSlideResult(result)), nil
}

func (s *Server) handleBulkSlide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, _ := request.GetArguments()["slides"].([]interface{})
	if len(raw) == 0 {
		return mcp.NewToolResultError("slides must be a non-empty array"), nil
	}
	if len(raw) > maxBulkSlides {
		return mcp.NewToolResultError(fmt.Sprintf("at most %d slides per call", maxBulkSlides)), nil
	}

	reqs := make([]service.SlideRequest, 0, len(raw))
	for i, item := range raw {
		text, ok := item.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("slide %d is not a string", i+1)), nil
		}
		req, err := ParseSlide(text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("slide %d: %v", i+1, err)), nil
		}
		reqs = append(reqs, req)
	}

	result, err := s.svc.BulkSlide(ctx, sessionID, reqs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkSlideResult(sessionID, result)), nil
}

func (s *Server) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hint, err := s.svc.Hint(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHint(hint)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.svc.Reset(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Puzzle reset to its starting shuffle\n\n" + service.RenderBoard(state)), nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	history, err := s.svc.GetHistory(ctx, sessionID, service.HistoryOptions{
		Page:  request.GetInt("page", 1),
		Limit: request.GetInt("limit", 20),
		Order: request.GetString("order", "desc"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(history)), nil
}

func (s *Server) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// ParseSlide reads "col,row,direction", for example "2,1,up".
func ParseSlide(text string) (service.SlideRequest, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return service.SlideRequest{}, fmt.Errorf("%q is not col,row,direction", text)
	}

	var idx geom.Index
	if _, err := fmt.Sscan(strings.TrimSpace(parts[0]), &idx.Col); err != nil {
		return service.SlideRequest{}, fmt.Errorf("bad column in %q", text)
	}
	if _, err := fmt.Sscan(strings.TrimSpace(parts[1]), &idx.Row); err != nil {
		return service.SlideRequest{}, fmt.Errorf("bad row in %q", text)
	}

	dir := strings.TrimSpace(parts[2])
	if _, err := service.ParseDirection(dir); err != nil {
		return service.SlideRequest{}, err
	}
	return service.SlideRequest{Tile: idx, Direction: dir}, nil
}

func formatPresets(presets []*config.PresetInfo) string {
	var b strings.Builder
	b.WriteString("Available Presets:\n\n")
	for _, p := range presets {
		source := "file"
		if p.BuiltIn {
			source = "built-in"
		}
		fmt.Fprintf(&b, "• %s (%s, %s)\n", p.ID, p.Name, source)
		if p.Description != "" {
			fmt.Fprintf(&b, "  %s\n", p.Description)
		}
		fmt.Fprintf(&b, "  Grid: %dx%d, Shuffle moves: %d\n\n", p.Columns, p.Rows, p.Moves)
	}
	return b.String()
}

func formatSessionInfo(info *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", info.ID)
	fmt.Fprintf(&b, "Preset: %s", info.PresetID)
	if info.Preset != nil {
		fmt.Fprintf(&b, " (%dx%d, %d shuffle moves)", info.Preset.Columns, info.Preset.Rows, info.Preset.Moves)
	}
	fmt.Fprintf(&b, "\nPicture: %s\nSeed: %d\nCreated: %s\n\n",
		info.Picture, info.Seed, info.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(service.RenderBoard(info.State))
	return b.String()
}

func formatSlideResult(result *service.SlideResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s\n", result.Message)
	} else {
		fmt.Fprintf(&b, "✗ %s\n", result.Message)
	}
	if st := result.Step; st != nil {
		fmt.Fprintf(&b, "Step %d: (%d,%d) %s, %d tile(s) on the %s, hole now (%d,%d)\n",
			st.Idx, st.Tile.Col, st.Tile.Row, st.Direction, st.Movers, st.Axis, st.Hole.Col, st.Hole.Row)
	}
	b.WriteByte('\n')
	b.WriteString(service.RenderBoard(result.State))
	return b.String()
}

func formatBulkSlideResult(sessionID string, result *service.BulkSlideResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", sessionID)
	fmt.Fprintf(&b, "Executed %d/%d slides\n", result.SlidesExecuted, result.RequestedSlides)
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on slide %d: %s\n", result.StoppedOnSlide, result.StoppedReason)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, st := range result.Steps {
			fmt.Fprintf(&b, "%d. (%d,%d) %s → hole (%d,%d)\n",
				st.Idx, st.Tile.Col, st.Tile.Row, st.Direction, st.Hole.Col, st.Hole.Row)
		}
	}

	for _, event := range result.Events {
		if event.Type == "complete" {
			b.WriteString("\n🎉 Puzzle solved!\n")
			break
		}
	}

	b.WriteByte('\n')
	b.WriteString(service.RenderBoard(result.State))
	return b.String()
}

func formatHint(hint *service.HintResult) string {
	if hint.Solved || hint.Next == nil {
		return "The puzzle is already solved."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Next: slide (%d,%d) %s\n", hint.Next.Tile.Col, hint.Next.Tile.Row, hint.Next.Direction)
	fmt.Fprintf(&b, "Remaining single-cell slides: %d\n", hint.Remaining)
	if len(hint.Steps) > 1 {
		b.WriteString("Plan: ")
		for i, st := range hint.Steps {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d,%d,%s", st.From.Col, st.From.Row, service.DirectionName(st.Direction()))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Slide History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalSlides)
	for _, st := range history.Slides {
		mark := ""
		if st.Complete {
			mark = " (solved)"
		}
		fmt.Fprintf(&b, "%d. (%d,%d) %s, %d tile(s)%s\n",
			st.Idx, st.Tile.Col, st.Tile.Row, st.Direction, st.Movers, mark)
	}
	if history.HasNext {
		fmt.Fprintf(&b, "\nMore on page %d\n", history.Page+1)
	}
	return b.String()
}

const instructions = `SLIDE PUZZLE

GOAL
Put every tile back in its home cell. The board is solved when the picture
is whole again; the missing piece then fills the hole.

BOARD
- Coordinates are (col,row), 0-based from the top-left cell.
- Tile N belongs at col (N-1) % columns, row (N-1) / columns.
- The hole is shown as '.'. Its piece belongs in the top-right cell.
- Green numbers are home, yellow numbers are misplaced.

SLIDING
- Pick a tile in the same row or column as the hole and drag it toward the
  hole. The tile and every tile between it and the hole move one cell, and
  the hole ends up where you grabbed.
- Dragging away from the hole, or a tile in neither the hole's row nor its
  column, does nothing.
- Once solved, the board ignores further slides. Use reset_puzzle to replay
  the same shuffle or new_puzzle to start another.

TOOLS
- slide: one drag, e.g. col=2,row=1,direction=up
- bulk_slide: ["2,1,up", "2,0,left"] stops at the first rejected slide
- hint: next slide toward the solution, with the full plan when found`
