package history

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/leitner"
)

func TestHistoryScreen(t *testing.T) {
	d, err := deck.New(context.Background(),
		deck.WithSeed(deck.DefaultSeed()),
		deck.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatal(err)
	}

	s := New(d)
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 20), "No answers recorded yet") {
		t.Errorf("empty view = %q", s.View(80, 20))
	}

	ctx := context.Background()
	for _, diff := range []leitner.Difficulty{leitner.Easy, leitner.Wrong} {
		if _, err := d.Answer(ctx, deck.AnswerInput{Front: "2 + 2", Back: "4", Difficulty: diff}); err != nil {
			t.Fatal(err)
		}
	}
	s.Update(s.Init()())

	if len(s.records) != 2 {
		t.Fatalf("records = %d, want 2", len(s.records))
	}
	if s.records[0].Difficulty != leitner.Wrong {
		t.Errorf("newest record should come first, got %s", s.records[0].Difficulty)
	}

	view := s.View(80, 20)
	if !strings.Contains(view, "1 → 0") || !strings.Contains(view, "0 → 1") {
		t.Errorf("bucket moves missing:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selection ran past the end: %d", s.selected)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Water freezes at what temperature", 10); got != "Water fre…" {
		t.Errorf("truncate = %q", got)
	}
}
