package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/leitner/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label and trailing
// percentage. Fill defaults to the secondary theme color.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

// View renders label, bar and percentage in exactly Width cells, unless
// the bar would drop below four cells.
func (p ProgressBar) View() string {
	pct := min(max(p.Percent, 0), 1)

	var label, percent string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		percent = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(math.Round(pct*100))))
	}

	cells := max(p.Width-lipgloss.Width(label)-lipgloss.Width(percent), 4)
	filled := int(float64(cells) * pct)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	track := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled))

	return label + track + percent
}
