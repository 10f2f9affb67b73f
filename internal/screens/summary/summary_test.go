package summary

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/leitner"
	"github.com/abhisek/leitner/internal/ui/nav"
)

func testDeck(t *testing.T) *deck.Deck {
	t.Helper()
	d, err := deck.New(context.Background(),
		deck.WithSeed(deck.DefaultSeed()),
		deck.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.Answer(context.Background(), deck.AnswerInput{Front: "2 + 2", Back: "4", Difficulty: leitner.Easy})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func testSession() *Session {
	return &Session{
		ID:           "s-1",
		Duration:     2*time.Minute + 5*time.Second,
		Reviewed:     4,
		Matched:      3,
		ByDifficulty: map[leitner.Difficulty]int{leitner.Easy: 1, leitner.Hard: 2, leitner.Wrong: 1},
		Promoted:     1,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	if got := New(testDeck(t), testSession()).Title(); got != "Session Summary" {
		t.Errorf("Title = %q", got)
	}
	if got := New(testDeck(t), nil).Title(); got != "Deck Stats" {
		t.Errorf("Title = %q", got)
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testDeck(t), testSession())
	s.Update(s.Init()())

	view := s.View(80, 30)
	for _, want := range []string{"Review complete!", "Duration: 2:05", "Reviewed: 4", "Easy 1", "Success rate: 100%", "Cards: 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if s.progress.CardsInBuckets[1] != 1 {
		t.Errorf("bucket 1 = %d, want 1", s.progress.CardsInBuckets[1])
	}
}

func TestSummaryScreen_StatsOnly(t *testing.T) {
	s := New(testDeck(t), nil)
	if !strings.Contains(s.View(80, 30), "Loading") {
		t.Error("expected loading view before progress arrives")
	}
	s.Update(s.Init()())

	view := s.View(80, 30)
	if strings.Contains(view, "Review complete!") {
		t.Error("stats view should not show a session")
	}
	if !strings.Contains(view, "Buckets") {
		t.Error("missing bucket histogram")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testDeck(t), testSession())
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("%s: expected a command", k.String())
		}
		if _, ok := cmd().(nav.PopMsg); !ok {
			t.Errorf("%s: expected pop", k.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if n := len(New(testDeck(t), nil).KeyHints()); n != 2 {
		t.Errorf("KeyHints length = %d, want 2", n)
	}
}

func TestMaxBucket(t *testing.T) {
	if got := maxBucket(leitner.Progress{CardsInBuckets: map[int]int{0: 1}}); got != leitner.MaxBucket {
		t.Errorf("maxBucket = %d, want %d", got, leitner.MaxBucket)
	}
	if got := maxBucket(leitner.Progress{CardsInBuckets: map[int]int{6: 1, 9: 0}}); got != 6 {
		t.Errorf("maxBucket = %d, want 6", got)
	}
}
