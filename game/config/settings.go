package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the application settings read from settings.toml.
type Settings struct {
	Window  WindowSettings  `toml:"window"`
	Assets  AssetSettings   `toml:"assets"`
	Title   TitleSettings   `toml:"title"`
	Puzzle  PuzzleSettings  `toml:"puzzle"`
	Logging LoggingSettings `toml:"logging"`
}

// WindowSettings describes the game window. The puzzle fills it entirely.
type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// AssetSettings locates the picture and preset directories.
type AssetSettings struct {
	ImageDir  string `toml:"image_dir"`
	PresetDir string `toml:"preset_dir"`
}

// TitleSettings controls the title screen decoration.
type TitleSettings struct {
	CellSize    int    `toml:"cell_size"`    // banner preview cell edge in pixels
	PreviewHold string `toml:"preview_hold"` // e.g. "3s"
}

// PuzzleSettings controls gameplay.
type PuzzleSettings struct {
	DefaultPreset string `toml:"default_preset"`
	ShiftDuration string `toml:"shift_duration"` // e.g. "250ms"
	Seed          uint64 `toml:"seed"`           // 0 picks a random seed
}

// LoggingSettings controls the zerolog level.
type LoggingSettings struct {
	Level string `toml:"level"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Window: WindowSettings{
			Width:  800,
			Height: 600,
			Title:  "Slide Puzzle",
		},
		Assets: AssetSettings{
			ImageDir:  "images",
			PresetDir: "presets",
		},
		Title: TitleSettings{
			CellSize:    24,
			PreviewHold: "3s",
		},
		Puzzle: PuzzleSettings{
			DefaultPreset: "easy",
			ShiftDuration: "250ms",
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// LoadSettings starts from the defaults, overlays path if it exists, applies
// SLIDEPUZZLE_* environment overrides and validates the result.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if err := loadSettingsFile(path, s); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func loadSettingsFile(path string, s *Settings) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading settings file: %w", err)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing settings file: %w", err)
	}
	return nil
}

func applyEnvOverrides(s *Settings) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"SLIDEPUZZLE_WIDTH", &s.Window.Width},
		{"SLIDEPUZZLE_HEIGHT", &s.Window.Height},
		{"SLIDEPUZZLE_TITLE_CELL", &s.Title.CellSize},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("SLIDEPUZZLE_IMAGE_DIR"); v != "" {
		s.Assets.ImageDir = v
	}
	if v := os.Getenv("SLIDEPUZZLE_PRESET_DIR"); v != "" {
		s.Assets.PresetDir = v
	}
	if v := os.Getenv("SLIDEPUZZLE_PRESET"); v != "" {
		s.Puzzle.DefaultPreset = v
	}
	if v := os.Getenv("SLIDEPUZZLE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SLIDEPUZZLE_SEED: %w", err)
		}
		s.Puzzle.Seed = seed
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	return nil
}

// Validate checks the settings for values the game cannot run with.
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Title.CellSize <= 0 {
		return fmt.Errorf("title cell_size must be positive, got %d", s.Title.CellSize)
	}
	if _, err := s.PreviewHold(); err != nil {
		return err
	}
	if _, err := s.ShiftDuration(); err != nil {
		return err
	}
	if s.Puzzle.DefaultPreset == "" {
		return errors.New("default_preset must be set")
	}
	return nil
}

// PreviewHold returns how long a title preview rests solved before looping.
func (s *Settings) PreviewHold() (time.Duration, error) {
	d, err := time.ParseDuration(s.Title.PreviewHold)
	if err != nil {
		return 0, fmt.Errorf("preview_hold: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("preview_hold must not be negative, got %s", d)
	}
	return d, nil
}

// ShiftDuration returns how long one tile slide takes.
func (s *Settings) ShiftDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Puzzle.ShiftDuration)
	if err != nil {
		return 0, fmt.Errorf("shift_duration: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("shift_duration must not be negative, got %s", d)
	}
	return d, nil
}

// SaveTo writes the settings to path, creating its directory.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}
