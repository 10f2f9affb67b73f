// Package review runs an interactive pass over the cards due today.
package review

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/flashcard"
	"github.com/abhisek/leitner/internal/leitner"
	"github.com/abhisek/leitner/internal/screens/summary"
	"github.com/abhisek/leitner/internal/ui/components"
	"github.com/abhisek/leitner/internal/ui/layout"
	"github.com/abhisek/leitner/internal/ui/nav"
)

type phase int

const (
	phaseAsking phase = iota
	phaseRevealed
)

type cardsLoadedMsg struct {
	day   int
	cards []*flashcard.Card
	err   error
}

type answeredMsg struct {
	rec leitner.PracticeRecord
	err error
}

// Screen walks the due cards one at a time.
type Screen struct {
	ctx     context.Context
	deck    *deck.Deck
	now     func() time.Time
	session summary.Session

	day    int
	cards  []*flashcard.Card
	idx    int
	phase  phase
	input  components.AnswerInput
	hint   string
	loaded bool
	busy   bool
	errMsg string
}

var (
	_ nav.Screen          = (*Screen)(nil)
	_ nav.KeyHintProvider = (*Screen)(nil)
)

// New creates a review screen over d. Answers are recorded under ctx.
func New(ctx context.Context, d *deck.Deck) *Screen {
	return &Screen{
		ctx:   ctx,
		deck:  d,
		now:   time.Now,
		input: components.NewAnswerInput("Type the answer...", 200),
	}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		day, cards, err := s.deck.DueCards()
		return cardsLoadedMsg{day: day, cards: cards, err: err}
	}
}

func (s *Screen) Title() string {
	return "Review"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case !s.loaded || s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case len(s.cards) == 0:
		return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
	case s.phase == phaseRevealed:
		return []layout.KeyHint{
			{Key: "1", Description: "Wrong"},
			{Key: "2", Description: "Hard"},
			{Key: "3", Description: "Easy"},
			{Key: "h", Description: "Hint"},
			{Key: "Esc", Description: "Stop"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Reveal"},
			{Key: "Tab", Description: "Hint"},
			{Key: "Esc", Description: "Stop"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		return s.handleLoaded(msg)
	case answeredMsg:
		return s.handleAnswered(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.loaded && s.phase == phaseAsking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleLoaded(msg cardsLoadedMsg) (nav.Screen, tea.Cmd) {
	s.loaded = true
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		return s, nil
	}
	s.day = msg.day
	s.cards = msg.cards
	s.session = summary.Session{
		ID:           uuid.NewString(),
		Started:      s.now(),
		ByDifficulty: make(map[leitner.Difficulty]int),
	}
	return s, s.input.Init()
}

func (s *Screen) handleKey(msg tea.KeyMsg) (nav.Screen, tea.Cmd) {
	if !s.loaded || s.errMsg != "" || s.busy {
		return s, nil
	}
	key := msg.String()

	if len(s.cards) == 0 {
		if key == "enter" {
			return s, nav.Pop()
		}
		return s, nil
	}

	if s.phase == phaseAsking {
		switch {
		case key == "enter":
			s.reveal()
			return s, nil
		case key == "tab", key == "h" && s.input.Value() == "":
			s.showHint()
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "1":
		return s, s.answer(leitner.Wrong)
	case "2":
		return s, s.answer(leitner.Hard)
	case "3":
		return s, s.answer(leitner.Easy)
	case "h", "tab":
		s.showHint()
	}
	return s, nil
}

func (s *Screen) current() *flashcard.Card {
	if s.idx >= len(s.cards) {
		return nil
	}
	return s.cards[s.idx]
}

func (s *Screen) reveal() {
	card := s.current()
	matched := answerMatches(s.input.Value(), card.Back)
	if matched {
		s.session.Matched++
	}
	s.input.Grade(matched)
	s.phase = phaseRevealed
}

func (s *Screen) showHint() {
	card := s.current()
	hint, err := s.deck.Hint(card.Front, card.Back)
	switch {
	case errors.Is(err, leitner.ErrMissingHint):
		s.hint = "no hint for this card"
	case err != nil:
		s.hint = err.Error()
	default:
		s.hint = hint
	}
}

func (s *Screen) answer(d leitner.Difficulty) tea.Cmd {
	card := s.current()
	s.busy = true
	return func() tea.Msg {
		rec, err := s.deck.Answer(s.ctx, deck.AnswerInput{
			Front:      card.Front,
			Back:       card.Back,
			Difficulty: d,
		})
		return answeredMsg{rec: rec, err: err}
	}
}

func (s *Screen) handleAnswered(msg answeredMsg) (nav.Screen, tea.Cmd) {
	s.busy = false
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		return s, nil
	}

	s.session.Reviewed++
	s.session.ByDifficulty[msg.rec.Difficulty]++
	switch {
	case msg.rec.NewBucket > msg.rec.PreviousBucket:
		s.session.Promoted++
	case msg.rec.NewBucket < msg.rec.PreviousBucket:
		s.session.Demoted++
	}

	s.idx++
	if s.idx >= len(s.cards) {
		s.session.Duration = s.now().Sub(s.session.Started)
		sess := s.session
		return s, nav.Replace(summary.New(s.deck, &sess))
	}

	s.phase = phaseAsking
	s.hint = ""
	return s, s.input.Reset()
}

// answerMatches compares case-insensitively, ignoring surrounding and
// repeated inner whitespace.
func answerMatches(typed, back string) bool {
	norm := func(s string) string { return strings.Join(strings.Fields(s), " ") }
	return strings.EqualFold(norm(typed), norm(back))
}
