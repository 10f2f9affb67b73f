// Package nav holds the screen contract and the stack router the TUI
// navigates with.
package nav

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leitner/internal/ui/layout"
)

// Screen is one full-window view.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the content area, excluding header and footer.
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// PushMsg puts a screen on top of the stack.
type PushMsg struct{ Screen Screen }

// PopMsg removes the top screen.
type PopMsg struct{}

// ReplaceMsg swaps the top screen, e.g. review -> summary.
type ReplaceMsg struct{ Screen Screen }

// Push returns a command emitting PushMsg.
func Push(s Screen) tea.Cmd { return func() tea.Msg { return PushMsg{Screen: s} } }

// Pop returns a command emitting PopMsg.
func Pop() tea.Cmd { return func() tea.Msg { return PopMsg{} } }

// Replace returns a command emitting ReplaceMsg.
func Replace(s Screen) tea.Cmd { return func() tea.Msg { return ReplaceMsg{Screen: s} } }

// Router is a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []Screen
}

// NewRouter starts a stack with root.
func NewRouter(root Screen) *Router {
	return &Router{stack: []Screen{root}}
}

func (r *Router) push(s Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	// Let the revealed screen refresh.
	return r.stack[len(r.stack)-1].Init()
}

func (r *Router) replace(s Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the stack size.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		return r.push(msg.Screen)
	case PopMsg:
		return r.pop()
	case ReplaceMsg:
		return r.replace(msg.Screen)
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
