package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset")
	ErrNoPresetDir    = errors.New("no preset directory configured")
)

// Preset is a difficulty: how many shuffle swaps and how the picture is cut.
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Moves       int    `json:"moves"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
}

// PresetInfo describes a preset available for selection.
type PresetInfo struct {
	ID          string `json:"id"`
	Filename    string `json:"filename,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Moves       int    `json:"moves"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	BuiltIn     bool   `json:"built_in"`
}

// builtinOrder is the order difficulties appear on the title screen.
var builtinOrder = []string{"easy", "medium", "hard", "yikes"}

var builtins = map[string]Preset{
	"easy":   {Name: "Easy", Description: "A gentle scramble", Moves: 12, Columns: 4, Rows: 3},
	"medium": {Name: "Medium", Description: "A few more swaps", Moves: 16, Columns: 4, Rows: 3},
	"hard":   {Name: "Hard", Description: "Properly mixed", Moves: 24, Columns: 4, Rows: 3},
	"yikes":  {Name: "Yikes", Description: "Small tiles, long walk", Moves: 48, Columns: 8, Rows: 6},
}

// BuiltinIDs returns the identifiers of the built-in presets in menu order.
func BuiltinIDs() []string {
	return append([]string(nil), builtinOrder...)
}

// BuiltinPreset returns a copy of the built-in preset id.
func BuiltinPreset(id string) (*Preset, bool) {
	p, ok := builtins[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

// ValidatePreset checks a preset on its own.
func ValidatePreset(p *Preset) error {
	if p == nil {
		return errors.New("preset is nil")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Columns <= 0 || p.Rows <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", p.Columns, p.Rows)
	}
	if p.Moves < 0 {
		return fmt.Errorf("moves must not be negative, got %d", p.Moves)
	}
	return nil
}

// Fits reports whether the preset cuts a width x height picture into whole cells.
func (p *Preset) Fits(width, height int) error {
	if width%p.Columns != 0 {
		return fmt.Errorf("%d columns do not divide width %d", p.Columns, width)
	}
	if height%p.Rows != 0 {
		return fmt.Errorf("%d rows do not divide height %d", p.Rows, height)
	}
	return nil
}

// Manager handles preset loading and caching
type Manager struct {
	presetDir     string
	defaultPreset *Preset
	presets       map[string]*Preset
	mu            sync.RWMutex
}

// NewManager creates a preset manager reading JSON presets from presetDir.
// An empty presetDir serves the built-in presets only.
func NewManager(presetDir string) (*Manager, error) {
	if presetDir != "" {
		if _, err := os.Stat(presetDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("preset directory does not exist: %s", presetDir)
		}
	}

	m := &Manager{
		presetDir: presetDir,
		presets:   make(map[string]*Preset),
	}

	if err := m.loadDefaultPreset(); err != nil {
		return nil, fmt.Errorf("failed to load default preset: %w", err)
	}

	return m, nil
}

// LoadPreset loads a preset by identifier. Files in the preset directory
// take precedence over built-ins of the same name.
func (m *Manager) LoadPreset(id string) (*Preset, error) {
	id = normalizeID(id)

	m.mu.RLock()
	if p, exists := m.presets[id]; exists {
		m.mu.RUnlock()
		return p, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if p, exists := m.presets[id]; exists {
		return p, nil
	}

	p, err := m.readPresetFile(id)
	if errors.Is(err, ErrPresetNotFound) {
		b, ok := BuiltinPreset(strings.ToLower(id))
		if !ok {
			return nil, ErrPresetNotFound
		}
		p, err = b, nil
	}
	if err != nil {
		return nil, err
	}

	m.presets[id] = p
	return p, nil
}

func (m *Manager) readPresetFile(id string) (*Preset, error) {
	if m.presetDir == "" {
		return nil, ErrPresetNotFound
	}

	data, err := os.ReadFile(filepath.Join(m.presetDir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPresetNotFound
		}
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset: %w", err)
	}
	if err := ValidatePreset(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	return &p, nil
}

// ListPresets returns the built-in presets in menu order followed by file
// presets sorted by identifier. Invalid files are skipped.
func (m *Manager) ListPresets() ([]*PresetInfo, error) {
	var infos []*PresetInfo
	seen := make(map[string]bool)

	files, err := m.presetFiles()
	if err != nil {
		return nil, err
	}

	for _, id := range builtinOrder {
		p, err := m.LoadPreset(id)
		if err != nil {
			continue
		}
		info := newPresetInfo(id, p)
		if filename, ok := files[id]; ok {
			info.Filename = filename
		} else {
			info.BuiltIn = true
		}
		infos = append(infos, info)
		seen[id] = true
	}

	ids := make([]string, 0, len(files))
	for id := range files {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		p, err := m.LoadPreset(id)
		if err != nil {
			continue
		}
		info := newPresetInfo(id, p)
		info.Filename = files[id]
		infos = append(infos, info)
	}

	return infos, nil
}

func (m *Manager) presetFiles() (map[string]string, error) {
	files := make(map[string]string)
	if m.presetDir == "" {
		return files, nil
	}

	entries, err := os.ReadDir(m.presetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files[normalizeID(entry.Name())] = entry.Name()
	}
	return files, nil
}

func newPresetInfo(id string, p *Preset) *PresetInfo {
	return &PresetInfo{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Moves:       p.Moves,
		Columns:     p.Columns,
		Rows:        p.Rows,
	}
}

// GetDefault returns the default preset
func (m *Manager) GetDefault() *Preset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPreset
}

// SetDefault sets the default preset by identifier
func (m *Manager) SetDefault(id string) error {
	p, err := m.LoadPreset(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPreset = p
	return nil
}

// RefreshCache drops every cached preset and reloads the default.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.presets = make(map[string]*Preset)
	m.mu.Unlock()

	return m.loadDefaultPreset()
}

func (m *Manager) loadDefaultPreset() error {
	p, err := m.LoadPreset(builtinOrder[0])
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.defaultPreset = p
	m.mu.Unlock()
	return nil
}

// SavePreset writes a preset to the preset directory as id.json.
func (m *Manager) SavePreset(id string, p *Preset) error {
	if m.presetDir == "" {
		return ErrNoPresetDir
	}
	if err := ValidatePreset(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	id = normalizeID(id)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.presetDir, id+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	m.mu.Lock()
	m.presets[id] = p
	m.mu.Unlock()

	return nil
}

func normalizeID(id string) string {
	return strings.TrimSuffix(strings.TrimSpace(id), ".json")
}
