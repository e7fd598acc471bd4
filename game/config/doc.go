// Package config provides settings and difficulty presets for the slide puzzle.
//
// The config package handles:
//   - Loading application settings from a TOML file with environment overrides
//   - Loading difficulty presets from JSON files
//   - Built-in presets when no preset files exist
//   - Default preset management and preset discovery
//
// Settings Format:
//
// settings.toml is optional. Missing keys keep their defaults and
// SLIDEPUZZLE_* environment variables override the file:
//
//	[window]
//	width = 800
//	height = 600
//
//	[puzzle]
//	default_preset = "easy"
//	shift_duration = "250ms"
//
// Preset Format:
//
// Each preset is a JSON file in the preset directory, named by its identifier:
//
//	{"name": "Easy", "moves": 12, "columns": 4, "rows": 3}
//
// Available Presets:
//
// The built-in difficulties are always available; a file with the same
// identifier replaces the built-in:
//   - easy: 12 swaps on a 4x3 grid
//   - medium: 16 swaps on a 4x3 grid
//   - hard: 24 swaps on a 4x3 grid
//   - yikes: 48 swaps on an 8x6 grid
//
// Usage:
//
//	manager, err := config.NewManager("presets")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadPreset("hard")
//	presets, err := manager.ListPresets()
package config
