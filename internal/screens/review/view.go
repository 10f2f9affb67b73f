package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/leitner/internal/leitner"
	"github.com/abhisek/leitner/internal/ui/components"
	"github.com/abhisek/leitner/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	center := func(text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	}

	switch {
	case s.errMsg != "":
		return "\n\n" + center(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	case !s.loaded:
		return "\n\n" + center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading due cards..."))
	case len(s.cards) == 0:
		return "\n\n" + center(theme.Hint.Render(fmt.Sprintf("Nothing due on day %d.", s.day)))
	}

	card := s.current()
	if card == nil {
		return ""
	}

	var b strings.Builder

	bucket, _ := s.deck.CardBucket(card.ID)
	info := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Card %d/%d", s.idx+1, len(s.cards))) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Bucket(bucket)).Bold(true).Render(fmt.Sprintf("bucket %d", bucket))
	if len(card.Tags) > 0 {
		info += "   " + lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(card.Tags, ", "))
	}
	b.WriteString("\n")
	b.WriteString(center(info))
	b.WriteString("\n\n")

	cardWidth := min(width-8, 60)
	front := theme.Card.Width(cardWidth).Align(lipgloss.Center).Render(theme.Body.Bold(true).Render(card.Front))
	b.WriteString(center(front))
	b.WriteString("\n\n")

	b.WriteString(center("Answer: " + s.input.View()))
	b.WriteString("\n\n")

	if s.phase == phaseRevealed {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(card.Back)))
		b.WriteString("\n\n")
	}

	if s.hint != "" {
		b.WriteString(center(theme.Hint.Render("Hint: " + s.hint)))
		b.WriteString("\n\n")
	}

	if s.phase == phaseRevealed {
		buttons := []string{
			components.Button{Key: "1", Label: leitner.Wrong.String()}.View(),
			components.Button{Key: "2", Label: leitner.Hard.String()}.View(),
			components.Button{Key: "3", Label: leitner.Easy.String(), Active: s.input.Graded() && answerMatches(s.input.Value(), card.Back)}.View(),
		}
		b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Center, buttons[0], "  ", buttons[1], "  ", buttons[2])))
		b.WriteString("\n")
	}

	return b.String()
}
