// Package service provides the headless play layer for the slide puzzle.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Preset lookup and storage
//   - Slides expressed as the same pointer gestures the window uses
//   - Hints from the solver and paginated slide history
//   - A colored terminal rendering of puzzle snapshots
//
// Core Interfaces:
//
// PuzzleService is the main service interface providing high-level operations.
// SessionManager handles session creation, retrieval, reset and lifecycle.
// ConfigManager supplies difficulty presets.
//
// Architecture:
//
// The service layer sits between the MCP transport and the puzzle engine.
// Each session owns its own engine.Puzzle; a slide presses on the tile's
// cell center, releases half a cell away in the requested direction and then
// runs the puzzle clock until the slide has landed.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("presets")
//	svc := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := svc.CreateSession(ctx, "easy", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := svc.Slide(ctx, info.ID, service.SlideRequest{
//		Tile:      geom.Index{Col: 2, Row: 1},
//		Direction: "up",
//	})
package service
