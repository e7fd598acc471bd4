// Package engine provides the core game logic for the slide puzzle.
//
// The engine package implements the puzzle mechanics including:
//   - Cutting a picture into a grid of tiles with one empty cell (the hole)
//   - Shuffling by a randomized walk of hole-adjacent swaps
//   - Resolving a drag gesture into a row or column shift toward the hole
//   - Animating tile movement and detecting the solved state
//
// Core Types:
//
// Puzzle is the interactive grid engine. Preview is a non-interactive variant
// that scrambles a banner image and replays the scramble as a scripted
// animation. Both are built on the same board: a dense Grid of GridCell
// values, the Tile set and a per-tile animation group.
//
// Usage:
//
//	p, err := engine.New(geom.Size{W: 800, H: 600}, geom.Size{W: 4, H: 3}, img, 12)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Feed input and advance one frame
//	p.PointerDown(geom.Point{X: 450, Y: 120})
//	p.PointerUp(geom.Point{X: 700, Y: 120})
//	p.Tick(16 * time.Millisecond)
//	p.Render(surface)
//
// Frame Model:
//
// Everything runs on the caller's goroutine, one Tick per frame. Grid
// mutations complete before the call that caused them returns; only the
// on-screen rectangles catch up over the following ticks.
package engine
