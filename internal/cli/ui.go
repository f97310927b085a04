package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/redraw"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - frame headers
	colorGreen  = lipgloss.Color("35")  // Green - clean frames
	colorYellow = lipgloss.Color("220") // Amber - damage
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleClean   = lipgloss.NewStyle().Foreground(colorGreen)
	styleDamage  = lipgloss.NewStyle().Foreground(colorYellow)
	styleTreeArm = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconClean  = "✓"
	iconDamage = "●"
)

// formatRect renders a rect as "x,y wxh".
func formatRect(r redraw.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
