package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
	"github.com/wricardo/slide-puzzle/game/solver"
)

var ErrInvalidDirection = errors.New("invalid direction")

// DefaultBoardSize is the pixel size of headless puzzles, matching the window.
var DefaultBoardSize = geom.Size{W: 800, H: 600}

const (
	// maxBulkSlides caps a single BulkSlide call.
	maxBulkSlides = 200
	// hintExpandLimit bounds each hint search attempt.
	hintExpandLimit = 100000
)

// Option customizes the service.
type Option func(*gameServiceImpl)

// WithBoardSize sets the pixel size puzzles are built at.
func WithBoardSize(size geom.Size) Option {
	return func(s *gameServiceImpl) { s.size = size }
}

// WithPictures replaces the generated pictures puzzles are cut from.
func WithPictures(pictures []imagery.Picture) Option {
	return func(s *gameServiceImpl) {
		if len(pictures) > 0 {
			s.pictures = pictures
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *gameServiceImpl) { s.log = l }
}

// gameServiceImpl implements the PuzzleService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	size     geom.Size
	pictures []imagery.Picture
	log      zerolog.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new puzzle service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) PuzzleService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		size:     DefaultBoardSize,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pictures == nil {
		s.pictures = imagery.Generated(s.size.W, s.size.H)
	}
	return s
}

// CreateSession creates a new puzzle session. A zero seed picks a random one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, presetID string, seed uint64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var preset *config.Preset
	var err error
	if presetID != "" {
		preset, err = s.configs.LoadPreset(presetID)
		if err != nil {
			if errors.Is(err, config.ErrPresetNotFound) {
				available, listErr := s.configs.ListPresets()
				if listErr == nil && len(available) > 0 {
					ids := make([]string, 0, len(available))
					for _, p := range available {
						ids = append(ids, p.ID)
					}
					return nil, fmt.Errorf("preset '%s' not found. Available presets: %v", presetID, ids)
				}
			}
			return nil, fmt.Errorf("failed to load preset %s: %w", presetID, err)
		}
	} else {
		preset = s.configs.GetDefault()
		presetID = strings.ToLower(preset.Name)
	}

	if seed == 0 {
		seed = rand.Uint64()
	}
	spec := PuzzleSpec{
		PresetID: presetID,
		Preset:   preset,
		Size:     s.size,
		Picture:  s.pictures[seed%uint64(len(s.pictures))],
		Seed:     seed,
	}

	sess, err := s.sessions.Create("", spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info().
		Str("session", sess.ID).
		Str("preset", presetID).
		Uint64("seed", seed).
		Msg("session created")

	return s.info(sess), nil
}

func (s *gameServiceImpl) info(sess *Session) *SessionInfo {
	sess.Lock()
	defer sess.Unlock()

	state := sess.Puzzle.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		PresetID:       sess.Spec.PresetID,
		Preset:         sess.Spec.Preset,
		Picture:        sess.Spec.Picture.Name,
		Seed:           sess.Spec.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          &state,
	}
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.info(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// ParseDirection maps left/right/up/down (or their first letter) to a unit step.
func ParseDirection(dir string) (geom.Point, error) {
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "left", "l":
		return geom.Point{X: -1}, nil
	case "right", "r":
		return geom.Point{X: 1}, nil
	case "up", "u":
		return geom.Point{Y: -1}, nil
	case "down", "d":
		return geom.Point{Y: 1}, nil
	}
	return geom.Point{}, fmt.Errorf("%w: %q (use left, right, up or down)", ErrInvalidDirection, dir)
}

// DirectionName is the inverse of ParseDirection for unit steps.
func DirectionName(d geom.Point) string {
	switch {
	case d.X < 0:
		return "left"
	case d.X > 0:
		return "right"
	case d.Y < 0:
		return "up"
	default:
		return "down"
	}
}

// Slide drags the tile at req.Tile in req.Direction, exactly as a pointer
// gesture would, and waits for the slide to settle.
func (s *gameServiceImpl) Slide(ctx context.Context, sessionID string, req SlideRequest) (*SlideResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	dir, err := ParseDirection(req.Direction)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	return s.slide(sess, req, dir), nil
}

func (s *gameServiceImpl) slide(sess *Session, req SlideRequest, dir geom.Point) *SlideResult {
	p := sess.Puzzle
	now := time.Now()
	fail := func(msg string) *SlideResult {
		state := p.Snapshot()
		return &SlideResult{
			Success: false,
			State:   &state,
			Message: msg,
			Events:  []GameEvent{{Type: "blocked", Message: msg, Timestamp: now, Position: req.Tile}},
		}
	}

	if p.IsComplete() {
		return fail("puzzle is already solved")
	}
	if p.TileAt(req.Tile) == nil {
		if req.Tile == p.Hole() {
			return fail(fmt.Sprintf("%v is the hole", req.Tile))
		}
		return fail(fmt.Sprintf("no tile at %v", req.Tile))
	}

	cell := p.CellSize()
	start := p.Grid().Bounds(req.Tile).Center().Add(p.Origin())
	end := start.Add(geom.Point{X: dir.X * cell.W / 2, Y: dir.Y * cell.H / 2})
	p.PointerDown(start)
	res, ok := p.PointerUp(end)
	if !ok {
		return fail(fmt.Sprintf("tile at %v cannot slide %s", req.Tile, DirectionName(dir)))
	}
	settle(p)

	record := SlideRecord{
		Idx:       len(sess.History) + 1,
		Tile:      req.Tile,
		Direction: DirectionName(dir),
		Axis:      res.Axis.String(),
		Movers:    len(res.Movers),
		Hole:      res.Hole,
		Complete:  p.IsComplete(),
		Timestamp: now,
	}
	sess.History = append(sess.History, record)

	msg := fmt.Sprintf("slid %d tile(s) %s", record.Movers, record.Direction)
	events := []GameEvent{{Type: "slide", Message: msg, Timestamp: now, Position: req.Tile}}
	if record.Complete {
		msg = "puzzle solved"
		events = append(events, GameEvent{Type: "complete", Message: msg, Timestamp: now, Position: p.Hole()})
		s.log.Info().Str("session", sess.ID).Int("slides", record.Idx).Msg("puzzle solved")
	}

	state := p.Snapshot()
	return &SlideResult{
		Success: true,
		State:   &state,
		Message: msg,
		Events:  events,
		Step:    &record,
	}
}

// settle runs the puzzle clock until every slide has landed.
func settle(p *engine.Puzzle) {
	p.Tick(0)
	for p.Animating() {
		p.Tick(engine.DefaultShiftDuration)
	}
}

// BulkSlide applies slides in order and stops at the first one that is
// rejected or that solves the puzzle.
func (s *gameServiceImpl) BulkSlide(ctx context.Context, sessionID string, reqs []SlideRequest) (*BulkSlideResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if len(reqs) > maxBulkSlides {
		return nil, fmt.Errorf("too many slides: %d (max %d)", len(reqs), maxBulkSlides)
	}
	dirs := make([]geom.Point, len(reqs))
	for i, req := range reqs {
		if dirs[i], err = ParseDirection(req.Direction); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	sess.Lock()
	defer sess.Unlock()

	result := &BulkSlideResult{
		RequestedSlides: len(reqs),
		Success:         true,
		Events:          []GameEvent{},
	}
	for i, req := range reqs {
		r := s.slide(sess, req, dirs[i])
		result.Events = append(result.Events, r.Events...)
		if !r.Success {
			result.Success = false
			result.StoppedReason = r.Message
			result.StoppedOnSlide = i + 1
			break
		}
		result.SlidesExecuted++
		result.Steps = append(result.Steps, *r.Step)
		if r.Step.Complete {
			if i < len(reqs)-1 {
				result.StoppedReason = "puzzle solved"
				result.StoppedOnSlide = i + 1
			}
			break
		}
	}

	state := sess.Puzzle.Snapshot()
	result.State = &state
	return result, nil
}

// Reset rebuilds the session's puzzle from its original seed.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Reset(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()
	state := sess.Puzzle.Snapshot()
	return &state, nil
}

// GetState retrieves the current puzzle snapshot
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()
	state := sess.Puzzle.Snapshot()
	return &state, nil
}

// Hint solves the current layout and suggests the first slide. A bounded
// optimal search is tried first, then a weighted one that finds longer
// solutions faster.
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	state := sess.Puzzle.Snapshot()
	sess.Unlock()

	if state.Complete {
		return &HintResult{Solved: true}, nil
	}

	board, err := solver.FromLayout(state.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	var res solver.Result
	for _, weight := range []int{1, 3} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err = solver.Solve(board, solver.Options{MaxExpand: hintExpandLimit, Weight: weight})
		if !errors.Is(err, solver.ErrSearchLimit) {
			break
		}
		s.log.Debug().Str("session", sessionID).Int("weight", weight).Msg("hint search hit its limit")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find a hint: %w", err)
	}

	hint := &HintResult{Remaining: len(res.Steps), Steps: res.Steps}
	if len(res.Steps) == 0 {
		hint.Solved = true
		return hint, nil
	}
	first := res.Steps[0]
	hint.Next = &SlideRequest{Tile: first.From, Direction: DirectionName(first.Direction())}
	return hint, nil
}

// GetHistory returns paginated slide history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	history := append([]SlideRecord(nil), sess.History...)
	sess.Unlock()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var slides []SlideRecord
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			slides = append(slides, history[i])
		}
	} else if start < total {
		slides = history[start:end]
	}
	if slides == nil {
		slides = []SlideRecord{}
	}

	return &HistoryResponse{
		Slides:      slides,
		TotalSlides: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListPresets returns available presets
func (s *gameServiceImpl) ListPresets(ctx context.Context) ([]*config.PresetInfo, error) {
	return s.configs.ListPresets()
}

// LoadPreset loads a specific preset
func (s *gameServiceImpl) LoadPreset(ctx context.Context, presetID string) (*config.Preset, error) {
	return s.configs.LoadPreset(presetID)
}

// SavePreset saves a preset to disk
func (s *gameServiceImpl) SavePreset(ctx context.Context, presetID string, preset *config.Preset) error {
	return s.configs.SavePreset(presetID, preset)
}
