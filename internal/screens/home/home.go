// Package home is the TUI landing screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/screens/history"
	"github.com/abhisek/leitner/internal/screens/review"
	"github.com/abhisek/leitner/internal/screens/summary"
	"github.com/abhisek/leitner/internal/ui/components"
	"github.com/abhisek/leitner/internal/ui/layout"
	"github.com/abhisek/leitner/internal/ui/nav"
	"github.com/abhisek/leitner/internal/ui/theme"
)

type statusMsg struct {
	day   int
	due   int
	total int
	err   error
}

// Screen shows the deck status and the main menu.
type Screen struct {
	ctx    context.Context
	deck   *deck.Deck
	menu   components.Menu
	day    int
	due    int
	total  int
	errMsg string
}

var (
	_ nav.Screen          = (*Screen)(nil)
	_ nav.KeyHintProvider = (*Screen)(nil)
)

// New creates the home screen.
func New(ctx context.Context, d *deck.Deck) *Screen {
	s := &Screen{ctx: ctx, deck: d}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Review due cards", Action: func() tea.Cmd { return nav.Push(review.New(ctx, d)) }},
		{Label: "Deck stats", Action: func() tea.Cmd { return nav.Push(summary.New(d, nil)) }},
		{Label: "History", Action: func() tea.Cmd { return nav.Push(history.New(d)) }},
		{Label: "Next day", Action: s.advanceDay},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

// Init refreshes the status line; it runs again whenever a pushed screen
// is popped.
func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		day, due, err := s.deck.DueCards()
		return statusMsg{day: day, due: len(due), total: len(s.deck.Cards()), err: err}
	}
}

func (s *Screen) advanceDay() tea.Cmd {
	return func() tea.Msg {
		if _, err := s.deck.AdvanceDay(s.ctx); err != nil {
			return statusMsg{err: err}
		}
		day, due, err := s.deck.DueCards()
		return statusMsg{day: day, due: len(due), total: len(s.deck.Cards()), err: err}
	}
}

func (s *Screen) Title() string {
	return "Home"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-5", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.day, s.due, s.total = msg.day, msg.due, msg.total
		s.menu.Items[0].Detail = fmt.Sprintf("%d due", s.due)
		return s, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Leitner flashcards"))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Day %d  ·  %d of %d cards due", s.day, s.due, s.total)
	b.WriteString(theme.Subtitle.Width(width).Render(status))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}
