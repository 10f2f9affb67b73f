// Package summary renders the bucket histogram and success rate, optionally
// with the tallies of the review session that just ended.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/leitner"
	"github.com/abhisek/leitner/internal/ui/components"
	"github.com/abhisek/leitner/internal/ui/layout"
	"github.com/abhisek/leitner/internal/ui/nav"
	"github.com/abhisek/leitner/internal/ui/theme"
)

// Session tallies one review run.
type Session struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Reviewed int
	// Matched counts typed answers equal to the card back.
	Matched      int
	ByDifficulty map[leitner.Difficulty]int
	Promoted     int
	Demoted      int
}

type progressMsg struct {
	progress leitner.Progress
	day      int
	err      error
}

// Screen shows deck progress.
type Screen struct {
	deck     *deck.Deck
	session  *Session
	progress leitner.Progress
	day      int
	loaded   bool
	errMsg   string
}

var (
	_ nav.Screen          = (*Screen)(nil)
	_ nav.KeyHintProvider = (*Screen)(nil)
)

// New creates the screen. session may be nil when opened outside a review.
func New(d *deck.Deck, session *Session) *Screen {
	return &Screen{deck: d, session: session}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := s.deck.Progress()
		return progressMsg{progress: p, day: s.deck.Day(), err: err}
	}
}

func (s *Screen) Title() string {
	if s.session != nil {
		return "Session Summary"
	}
	return "Deck Stats"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *Screen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.progress = msg.progress
		s.day = msg.day
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, nav.Pop()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(text))
	}

	if s.errMsg != "" {
		return "\n\n" + center(lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg)
	}
	if !s.loaded {
		return "\n\n" + center(lipgloss.NewStyle().Foreground(theme.TextDim), "Loading...")
	}

	var b strings.Builder
	b.WriteString("\n")

	if sess := s.session; sess != nil {
		b.WriteString(center(theme.Title, "Review complete!"))
		b.WriteString("\n\n")
		mins := int(sess.Duration.Minutes())
		secs := int(sess.Duration.Seconds()) % 60
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("Duration: %d:%02d", mins, secs)))
		b.WriteString("\n\n")
		b.WriteString(center(theme.Body, fmt.Sprintf(
			"Reviewed: %d    Typed correctly: %d    Promoted: %d    Reset: %d",
			sess.Reviewed, sess.Matched, sess.Promoted, sess.Demoted)))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), fmt.Sprintf(
			"Easy %d    Hard %d    Wrong %d",
			sess.ByDifficulty[leitner.Easy], sess.ByDifficulty[leitner.Hard], sess.ByDifficulty[leitner.Wrong])))
		b.WriteString("\n\n")
	}

	p := s.progress
	b.WriteString(center(theme.Body, fmt.Sprintf(
		"Day %d    Cards: %d    Success rate: %.0f%%", s.day, p.TotalCards, p.SuccessRate*100)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 50)))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Buckets"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-8, 50)
	for bucket := 0; bucket <= maxBucket(p); bucket++ {
		n := p.CardsInBuckets[bucket]
		var pct float64
		if p.TotalCards > 0 {
			pct = float64(n) / float64(p.TotalCards)
		}
		bar := components.NewProgressBar(fmt.Sprintf("%d  %3d", bucket, n), pct, true, barWidth)
		bar.Fill = theme.Bucket(bucket)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	return b.String()
}

// maxBucket is the highest bucket to draw: at least the full schedule, more
// if cards sit above it.
func maxBucket(p leitner.Progress) int {
	hi := leitner.MaxBucket
	for b, n := range p.CardsInBuckets {
		if n > 0 && b > hi {
			hi = b
		}
	}
	return hi
}
