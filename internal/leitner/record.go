package leitner

import (
	"time"

	"github.com/abhisek/leitner/internal/flashcard"
)

// PracticeRecord is one entry of the append-only trial history.
type PracticeRecord struct {
	CardID         flashcard.ID `json:"cardId"`
	Front          string       `json:"cardFront"`
	Back           string       `json:"cardBack"`
	Difficulty     Difficulty   `json:"difficulty"`
	Correct        bool         `json:"isCorrect"`
	PreviousBucket int          `json:"previousBucket"`
	NewBucket      int          `json:"newBucket"`
	Timestamp      time.Time    `json:"timestamp"`
}
