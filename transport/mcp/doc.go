// Package mcp exposes the headless slide puzzle as Model Context Protocol tools.
//
// The server calls a service.PuzzleService in process and answers with plain
// text boards rendered by service.RenderBoard, so an agent can read the
// layout, pick a tile and slide it.
//
// MCP Tools:
//   - list_presets: difficulty presets with grid size and shuffle moves
//   - new_puzzle: create a session from a preset and optional seed
//   - puzzle_state: current board
//   - slide: drag one tile toward the hole
//   - bulk_slide: several "col,row,direction" slides in order
//   - hint: next slide from the solver
//   - reset_puzzle: restore the starting shuffle
//   - slide_history: paginated slide history
//   - list_sessions, get_session, delete_session: session management
//   - puzzle_instructions: rules and coordinate conventions
//
// Usage:
//
//	srv := mcp.NewServer(svc, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal().Err(err).Msg("MCP server stopped")
//	}
package mcp
