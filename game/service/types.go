package service

import (
	"time"

	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/solver"
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string           `json:"id"`
	PresetID       string           `json:"preset_id"`
	Preset         *config.Preset   `json:"preset"`
	Picture        string           `json:"picture"`
	Seed           uint64           `json:"seed"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	State          *engine.Snapshot `json:"state"`
}

// SlideResult contains the result of a slide operation
type SlideResult struct {
	Success bool             `json:"success"`
	State   *engine.Snapshot `json:"state"`
	Message string           `json:"message"`
	Events  []GameEvent      `json:"events,omitempty"`
	Step    *SlideRecord     `json:"step,omitempty"`
}

// SlideRequest names a tile by its current cell and the way it is dragged.
type SlideRequest struct {
	Tile      geom.Index `json:"tile"`
	Direction string     `json:"direction"`
}

// BulkSlideResult contains the result of several slides applied in order
type BulkSlideResult struct {
	SlidesExecuted  int              `json:"slides_executed"`
	RequestedSlides int              `json:"requested_slides"`
	Success         bool             `json:"success"`
	State           *engine.Snapshot `json:"state"`
	Events          []GameEvent      `json:"events"`
	StoppedReason   string           `json:"stopped_reason,omitempty"`
	StoppedOnSlide  int              `json:"stopped_on_slide,omitempty"` // 1-based
	Steps           []SlideRecord    `json:"steps,omitempty"`
}

// SlideRecord is one accepted slide in a session's history.
type SlideRecord struct {
	Idx       int        `json:"idx"`
	Tile      geom.Index `json:"tile"`
	Direction string     `json:"direction"`
	Axis      string     `json:"axis"`
	Movers    int        `json:"movers"`
	Hole      geom.Index `json:"hole"`
	Complete  bool       `json:"complete,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// HintResult suggests the next slide toward the solved picture.
type HintResult struct {
	Solved    bool          `json:"solved"`
	Next      *SlideRequest `json:"next,omitempty"`
	Remaining int           `json:"remaining"`
	Steps     []solver.Step `json:"steps,omitempty"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string     `json:"type"` // "slide", "blocked", "complete", "reset"
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	Position  geom.Index `json:"position,omitempty"`
}

// HistoryOptions configures slide history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated slide history
type HistoryResponse struct {
	Slides      []SlideRecord `json:"slides"`
	TotalSlides int           `json:"total_slides"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalPages  int           `json:"total_pages"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}
