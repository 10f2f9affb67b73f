package leitner

import (
	"testing"

	"github.com/abhisek/leitner/internal/flashcard"
)

func newCard(t *testing.T, front string) *flashcard.Card {
	t.Helper()
	c, err := flashcard.New(front, front+" answer", nil, nil)
	if err != nil {
		t.Fatalf("new card: %v", err)
	}
	return c
}

// snapshot captures membership by ID so a map can be compared after a call.
func snapshot(m BucketMap) map[int]map[flashcard.ID]*flashcard.Card {
	out := make(map[int]map[flashcard.ID]*flashcard.Card, len(m))
	for b, s := range m {
		inner := make(map[flashcard.ID]*flashcard.Card, len(s))
		for id, c := range s {
			inner[id] = c
		}
		out[b] = inner
	}
	return out
}
