// Package validate checks difficulty preset JSON files before the game loads
// them. It checks:
//   - JSON structure and unknown fields
//   - Required name, non-negative moves and a grid of at least 1x1
//   - That the grid cuts the window into whole cells
//   - That a puzzle can actually be built and shuffled from the preset
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
)

// trialSeed fixes the trial shuffle so reports are reproducible.
const trialSeed = 1

// Result captures the outcome of validating a single file. Errors make the
// file invalid; Warnings and Info never do.
type Result struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *Result) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) info(format string, args ...any) {
	r.Info = append(r.Info, fmt.Sprintf(format, args...))
}

// File validates one preset file against a window of the given size.
func File(path string, window geom.Size) Result {
	result := Result{File: filepath.Base(path), Valid: true}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var p config.Preset
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	Preset(&result, &p, window)
	return result
}

// Preset validates an already decoded preset into result.
func Preset(result *Result, p *config.Preset, window geom.Size) {
	if strings.TrimSpace(p.Name) == "" {
		result.fail("name is required")
	}
	if p.Moves < 0 {
		result.fail("moves must not be negative, got %d", p.Moves)
	}
	if p.Columns <= 0 || p.Rows <= 0 {
		result.fail("grid must be at least 1x1, got %dx%d", p.Columns, p.Rows)
		return
	}
	if err := p.Fits(window.W, window.H); err != nil {
		result.fail("grid does not fit the %v window: %v", window, err)
	}
	if !result.Valid {
		return
	}

	if p.Columns*p.Rows == 1 {
		result.warn("a 1x1 grid has no tile to slide")
	}
	if p.Moves == 0 {
		result.warn("moves is 0, the puzzle starts solved")
	}

	trial(result, p, window)
	if result.Valid {
		result.info("✓ Name: %s", p.Name)
		result.info("✓ Grid: %dx%d, cells %dx%d", p.Columns, p.Rows, window.W/p.Columns, window.H/p.Rows)
		result.info("✓ Moves: %d", p.Moves)
	}
}

// trial builds and shuffles the preset once with a fixed seed.
func trial(result *Result, p *config.Preset, window geom.Size) {
	pic := imagery.Generated(window.W, window.H)[0]
	puzzle, err := engine.New(window, geom.Size{W: p.Columns, H: p.Rows}, pic.Image, p.Moves, engine.WithSeed(trialSeed))
	if err != nil {
		result.fail("cannot build puzzle: %v", err)
		return
	}

	snap := puzzle.Snapshot()
	if p.Moves > 0 && snap.Complete {
		result.warn("trial shuffle of %d moves came back solved", p.Moves)
	}
	result.info("✓ Trial shuffle: %d moves, %d misplaced", snap.Shuffled, snap.Misplaced)
}

// Dir validates every *.json file in dir.
func Dir(dir string, window geom.Size) ([]Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find preset files: %w", err)
	}

	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, File(file, window))
	}
	return results, nil
}

// Report prints a concise report and reports whether every file is valid.
func Report(w io.Writer, results []Result) bool {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	note := color.New(color.FgYellow)

	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			ok.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			bad.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			note.Fprintln(w, "  ⚠ "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No preset files found")
	case allValid:
		ok.Fprintln(w, "✅ All presets are valid!")
	default:
		bad.Fprintln(w, "❌ Some presets have errors")
	}
	return allValid
}
