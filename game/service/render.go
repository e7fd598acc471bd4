package service

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/wricardo/slide-puzzle/game/engine"
)

var (
	colorHome     = color.New(color.FgGreen)
	colorMisplace = color.New(color.FgYellow, color.Bold)
	colorHole     = color.New(color.FgWhite, color.Faint)
	colorHeader   = color.New(color.Bold)
)

// RenderBoard draws a snapshot as a numbered terminal grid. Tiles in their
// home cell are green, displaced tiles yellow and the hole is a dot.
func RenderBoard(s *engine.Snapshot) string {
	if s == nil || len(s.Layout) == 0 {
		return ""
	}

	width := len(fmt.Sprint(s.Columns * s.Rows))
	var b strings.Builder

	status := "unsolved"
	if s.Complete {
		status = "solved"
	}
	b.WriteString(colorHeader.Sprintf("%dx%d %s, %d slide(s), %d misplaced", s.Columns, s.Rows, status, s.Shifts, s.Misplaced))
	b.WriteByte('\n')

	for r, row := range s.Layout {
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			switch {
			case v == 0:
				b.WriteString(colorHole.Sprintf("%*s", width, "."))
			case v == r*s.Columns+c+1:
				b.WriteString(colorHome.Sprintf("%*d", width, v))
			default:
				b.WriteString(colorMisplace.Sprintf("%*d", width, v))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
