package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// palette maps core.Color (by value) to ANSI 256 colour codes. Player colours
// are bold so paddles stand out against the table markings.
var palette = [...]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         fg("1"),
	core.ColorGreen:       fg("2"),
	core.ColorYellow:      fg("3"),
	core.ColorBlue:        fg("4"),
	core.ColorMagenta:     fg("5"),
	core.ColorCyan:        fg("6"),
	core.ColorWhite:       fg("7"),
	core.ColorBrightRed:   fg("9").Bold(true),
	core.ColorBrightBlue:  fg("12").Bold(true),
	core.ColorBrightWhite: fg("15"),
	core.ColorOrange:      fg("208"),
	core.ColorGray:        fg("245"),
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as runs of equal colour, one style escape per run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		run = run[:0]
		color := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				sb.WriteString(styleFor(color).Render(string(run)))
				run, color = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(styleFor(color).Render(string(run)))
		}
	}
	return sb.String()
}
