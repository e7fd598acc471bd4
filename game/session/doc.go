// Package session provides in-memory session management for headless puzzles.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Rebuilding a session's puzzle from its seed
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the session manager that handles all session operations. Each
// service.Session owns its own engine.Puzzle together with the PuzzleSpec it was
// built from, so a reset reproduces the original shuffle exactly.
//
// Session Identifiers:
//
// Generated IDs are 4 hexadecimal characters from crypto/rand. Lookups are
// case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", spec)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Sessions live only as long as the process.
package session
