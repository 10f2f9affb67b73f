// Package layout renders the frame shared by every screen: a header bar
// with the deck status, the screen content and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/leitner/internal/ui/theme"
)

// Minimum terminal size the frame renders in.
const (
	MinWidth  = 60
	MinHeight = 16
)

// KeyHint is a key and what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether width x height is below the minimum.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The review window needs at least %d x %d.\n\nCurrent size: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the brand, the screen title and the simulated day
// with its due count.
func RenderHeader(title string, day, due int, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Leitner")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	dueText, dueColor := fmt.Sprintf("%d due", due), theme.Accent
	if due == 0 {
		dueText, dueColor = "nothing due", theme.Success
	}
	status := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Day %d   ", day)) +
		lipgloss.NewStyle().Foreground(dueColor).Render(dueText)

	return bar(spread(max(width-4, 0), brand, center, status), width)
}

// spread places center in the middle of width and pushes right to the edge,
// keeping at least one space between segments.
func spread(width int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((width-cw)/2-lw, 1)
	gapR := max(width-lw-gapL-cw-rw, 1)
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

// RenderFooter renders key hints left to right. Hints that do not fit in
// width are dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := " "
	for _, h := range hints {
		part := "  " + keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if width > 0 && lipgloss.Width(line+part) > width-4 {
			break
		}
		line += part
	}
	return bar(line, width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, sizing the content to the
// remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
