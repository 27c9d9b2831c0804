package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridstate/internal/core"
)

// cellStyles maps cell kinds to lipgloss styles.
var cellStyles = map[core.CellKind]lipgloss.Style{
	core.CellBlank:  lipgloss.NewStyle(),
	core.CellWall:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.CellPath:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.CellTrap:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.CellPlayer: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.CellHUD:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	core.CellBanner: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same kind share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			kind := s.GetCell(x, y).Kind

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Kind != kind {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := cellStyles[kind]
			if !ok {
				style = cellStyles[core.CellBlank]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
