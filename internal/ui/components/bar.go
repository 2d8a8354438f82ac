package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar renders a horizontal fill gauge.
type Bar struct {
	Width  int
	Filled lipgloss.Style
	Empty  lipgloss.Style
}

// Render fills ratio of the bar, clamped to [0, 1].
func (b Bar) Render(ratio float64) string {
	if b.Width <= 0 {
		return ""
	}
	ratio = max(0, min(1, ratio))
	filled := int(float64(b.Width) * ratio)
	return b.Filled.Render(strings.Repeat("█", filled)) + b.Empty.Render(strings.Repeat("░", b.Width-filled))
}
