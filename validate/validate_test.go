package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/geom"
)

var window = geom.Size{W: 800, H: 600}

func writePreset(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}
	return path
}

func TestFile(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantValid bool
		wantText  string
	}{
		{
			name:      "valid easy",
			body:      `{"name": "Easy", "moves": 12, "columns": 4, "rows": 3}`,
			wantValid: true,
			wantText:  "✓ Grid: 4x3, cells 200x200",
		},
		{
			name:      "invalid JSON",
			body:      `{"name": "Broken"`,
			wantValid: false,
			wantText:  "Invalid JSON",
		},
		{
			name:      "unknown field",
			body:      `{"name": "Old", "moves": 12, "columns": 4, "rows": 3, "grid_size": 5}`,
			wantValid: false,
			wantText:  "Invalid JSON",
		},
		{
			name:      "missing name",
			body:      `{"moves": 12, "columns": 4, "rows": 3}`,
			wantValid: false,
			wantText:  "name is required",
		},
		{
			name:      "negative moves",
			body:      `{"name": "Neg", "moves": -1, "columns": 4, "rows": 3}`,
			wantValid: false,
			wantText:  "moves must not be negative",
		},
		{
			name:      "empty grid",
			body:      `{"name": "Empty", "moves": 1, "columns": 0, "rows": 3}`,
			wantValid: false,
			wantText:  "at least 1x1",
		},
		{
			name:      "does not divide the window",
			body:      `{"name": "Seven", "moves": 10, "columns": 7, "rows": 3}`,
			wantValid: false,
			wantText:  "7 columns do not divide width 800",
		},
	}

	dir := t.TempDir()
	for i, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writePreset(t, dir, string(rune('a'+i))+".json", test.body)
			result := File(path, window)

			if result.Valid != test.wantValid {
				t.Fatalf("Expected valid=%v, got %v (errors: %v)", test.wantValid, result.Valid, result.Errors)
			}
			all := strings.Join(append(append([]string{}, result.Errors...), result.Info...), "\n")
			if !strings.Contains(all, test.wantText) {
				t.Errorf("Expected %q in:\n%s", test.wantText, all)
			}
		})
	}
}

func TestFile_Missing(t *testing.T) {
	result := File(filepath.Join(t.TempDir(), "nope.json"), window)
	if result.Valid {
		t.Fatal("Expected a missing file to be invalid")
	}
	if result.File != "nope.json" {
		t.Errorf("Expected base name, got %s", result.File)
	}
}

func TestPreset_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		preset config.Preset
		want   string
	}{
		{"zero moves", config.Preset{Name: "Frozen", Moves: 0, Columns: 4, Rows: 3}, "starts solved"},
		{"single cell", config.Preset{Name: "One", Moves: 3, Columns: 1, Rows: 1}, "no tile to slide"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := Result{Valid: true}
			Preset(&result, &test.preset, window)
			if !result.Valid {
				t.Fatalf("Warnings must not invalidate: %v", result.Errors)
			}
			if !strings.Contains(strings.Join(result.Warnings, "\n"), test.want) {
				t.Errorf("Expected warning %q, got %v", test.want, result.Warnings)
			}
		})
	}
}

func TestPreset_BuiltinsAreValid(t *testing.T) {
	for _, id := range config.BuiltinIDs() {
		t.Run(id, func(t *testing.T) {
			p, _ := config.BuiltinPreset(id)
			result := Result{Valid: true}
			Preset(&result, p, window)
			if !result.Valid {
				t.Errorf("Built-in preset %s is invalid: %v", id, result.Errors)
			}
		})
	}
}

func TestDirAndReport(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	writePreset(t, dir, "good.json", `{"name": "Good", "moves": 5, "columns": 4, "rows": 3}`)
	writePreset(t, dir, "bad.json", `{"name": "Bad", "moves": 5, "columns": 3, "rows": 7}`)
	writePreset(t, dir, "notes.txt", `ignored`)

	results, err := Dir(dir, window)
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	var buf bytes.Buffer
	if Report(&buf, results) {
		t.Error("Expected the report to flag the bad preset")
	}
	out := buf.String()
	for _, want := range []string{"bad.json", "❌ INVALID", "good.json", "✅ VALID", "Some presets have errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report:\n%s", want, out)
		}
	}

	buf.Reset()
	if !Report(&buf, results[1:]) {
		t.Error("Expected only-valid results to pass")
	}

	buf.Reset()
	Report(&buf, nil)
	if !strings.Contains(buf.String(), "No preset files found") {
		t.Errorf("Unexpected empty report:\n%s", buf.String())
	}
}
