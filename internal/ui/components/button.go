package components

import "github.com/abhisek/leitner/internal/ui/theme"

// Button is a key-labelled choice, e.g. "1 Wrong".
type Button struct {
	Key    string
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Key + " " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
