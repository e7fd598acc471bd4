package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
)

// PuzzleService defines all headless puzzle operations
type PuzzleService interface {
	// Session Management
	CreateSession(ctx context.Context, presetID string, seed uint64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Play
	Slide(ctx context.Context, sessionID string, req SlideRequest) (*SlideResult, error)
	BulkSlide(ctx context.Context, sessionID string, reqs []SlideRequest) (*BulkSlideResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	Hint(ctx context.Context, sessionID string) (*HintResult, error)

	// State
	GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Presets
	ListPresets(ctx context.Context) ([]*config.PresetInfo, error)
	LoadPreset(ctx context.Context, presetID string) (*config.Preset, error)
	SavePreset(ctx context.Context, presetID string, preset *config.Preset) error
}

// PuzzleSpec is everything needed to build, and rebuild, a session's puzzle.
type PuzzleSpec struct {
	PresetID string
	Preset   *config.Preset
	Size     geom.Size
	Picture  imagery.Picture
	Seed     uint64
}

// Build constructs a freshly shuffled puzzle. The same spec always yields
// the same layout.
func (s PuzzleSpec) Build(opts ...engine.Option) (*engine.Puzzle, error) {
	if s.Preset == nil {
		return nil, errors.New("puzzle spec has no preset")
	}
	opts = append([]engine.Option{engine.WithSeed(s.Seed)}, opts...)
	return engine.New(s.Size, geom.Size{W: s.Preset.Columns, H: s.Preset.Rows}, s.Picture.Image, s.Preset.Moves, opts...)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, spec PuzzleSpec) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	Reset(id string) (*Session, error)
	UpdateLastAccessed(id string) error
}

// ConfigManager handles preset loading
type ConfigManager interface {
	LoadPreset(id string) (*config.Preset, error)
	ListPresets() ([]*config.PresetInfo, error)
	GetDefault() *config.Preset
	SavePreset(id string, preset *config.Preset) error
}

// Session represents an active puzzle session
type Session struct {
	ID             string
	Spec           PuzzleSpec
	Puzzle         *engine.Puzzle
	History        []SlideRecord
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu sync.Mutex
}

// Lock serializes access to the session's puzzle.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }
