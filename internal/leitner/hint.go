package leitner

import "github.com/abhisek/leitner/internal/flashcard"

// GetHint returns the card's hint. An empty hint is valid; a card without a
// hint yields ErrMissingHint.
func GetHint(card *flashcard.Card) (string, error) {
	if card == nil || card.Hint == nil {
		return "", ErrMissingHint
	}
	return *card.Hint, nil
}
