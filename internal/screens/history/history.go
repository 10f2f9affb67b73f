// Package history lists past practice trials, newest first.
package history

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/leitner"
	"github.com/abhisek/leitner/internal/ui/layout"
	"github.com/abhisek/leitner/internal/ui/nav"
	"github.com/abhisek/leitner/internal/ui/theme"
)

type historyLoadedMsg struct {
	records []leitner.PracticeRecord
}

// Screen shows the practice history.
type Screen struct {
	deck     *deck.Deck
	records  []leitner.PracticeRecord // newest first
	selected int
	loaded   bool
}

var (
	_ nav.Screen          = (*Screen)(nil)
	_ nav.KeyHintProvider = (*Screen)(nil)
)

// New creates a history screen.
func New(d *deck.Deck) *Screen {
	return &Screen{deck: d}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		recs := s.deck.History()
		for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
			recs[i], recs[j] = recs[j], recs[i]
		}
		return historyLoadedMsg{records: recs}
	}
}

func (s *Screen) Title() string {
	return "History"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.records = msg.records
		s.loaded = true
		if s.selected >= len(s.records) {
			s.selected = 0
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers recorded yet.")
	}

	// Keep the selection in view.
	rows := max(height-2, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(s.records))

	var b strings.Builder
	b.WriteString("\n")
	for i := start; i < end; i++ {
		rec := s.records[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		move := fmt.Sprintf("%d → %d", rec.PreviousBucket, rec.NewBucket)
		line := fmt.Sprintf("%s%s  %-5s  %-6s  %s",
			prefix, rec.Timestamp.Local().Format("Jan 02 15:04"), rec.Difficulty, move, truncate(rec.Front, 40))

		style := lipgloss.NewStyle().Foreground(difficultyColor(rec.Difficulty))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func difficultyColor(d leitner.Difficulty) color.Color {
	switch d {
	case leitner.Easy:
		return theme.Success
	case leitner.Hard:
		return theme.Accent
	default:
		return theme.Error
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
