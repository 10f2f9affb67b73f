// Package app is the root Bubble Tea model for the review TUI.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/screens/home"
	"github.com/abhisek/leitner/internal/screens/review"
	"github.com/abhisek/leitner/internal/ui/layout"
	"github.com/abhisek/leitner/internal/ui/nav"
)

// Model frames the active screen with a header and footer.
type Model struct {
	deck   *deck.Deck
	router *nav.Router
	width  int
	height int
}

// New creates the model. With reviewFirst the due-card review opens on top
// of the home screen.
func New(ctx context.Context, d *deck.Deck, reviewFirst bool) Model {
	m := Model{deck: d, router: nav.NewRouter(home.New(ctx, d))}
	if reviewFirst {
		m.router.Update(nav.PushMsg{Screen: review.New(ctx, d)})
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, nav.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	day, due, _ := m.deck.DueCards()
	header := layout.RenderHeader(active.Title(), day, len(due), m.width)

	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(nav.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the program and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, d *deck.Deck, reviewFirst bool) error {
	p := tea.NewProgram(New(ctx, d, reviewFirst), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
