package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leitner/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput. Once graded it shows a check or a
// cross after the typed text.
type AnswerInput struct {
	Model  textinput.Model
	graded bool
	right  bool
}

// NewAnswerInput creates a focused input.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the focus command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards to the text input until the answer is graded.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.graded {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input and its grade marker.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.graded {
		if a.right {
			view += " " + theme.Correct.Render("✓")
		} else {
			view += " " + theme.Incorrect.Render("✗")
		}
	}
	return view
}

// Value returns the typed text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Grade freezes the input and records whether it matched.
func (a *AnswerInput) Grade(right bool) {
	a.graded = true
	a.right = right
	a.Model.Blur()
}

// Graded reports whether Grade was called since the last Reset.
func (a AnswerInput) Graded() bool {
	return a.graded
}

// Reset clears the text and grade for the next card.
func (a *AnswerInput) Reset() tea.Cmd {
	a.graded = false
	a.right = false
	a.Model.Reset()
	return a.Model.Focus()
}
