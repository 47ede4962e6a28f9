package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/spacewar/internal/core"
)

// palette holds the ANSI-256 code for each core color. The empty entry keeps
// the terminal's default foreground.
var palette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "160",
	core.ColorGreen:         "41",
	core.ColorYellow:        "220",
	core.ColorBlue:          "33",
	core.ColorMagenta:       "135",
	core.ColorCyan:          "51",
	core.ColorWhite:         "252",
	core.ColorBrightRed:     "203",
	core.ColorBrightGreen:   "83",
	core.ColorBrightYellow:  "227",
	core.ColorBrightBlue:    "75",
	core.ColorBrightMagenta: "171",
	core.ColorBrightCyan:    "123",
	core.ColorBrightWhite:   "231",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorDimGray:       "238",
}

var cellStyles = buildCellStyles()

func buildCellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for i, code := range palette {
		styles[i] = lipgloss.NewStyle()
		if code != "" {
			styles[i] = styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color are rendered as a single run.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	var line, run strings.Builder

	for y := range lines {
		line.Reset()
		for x := 0; x < s.Width(); {
			c := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.GetCell(x, y).Color == c; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			if c == core.ColorDefault {
				line.WriteString(run.String())
				continue
			}
			line.WriteString(styleFor(c).Render(run.String()))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
