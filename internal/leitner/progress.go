package leitner

import (
	"fmt"
	"math"

	"github.com/abhisek/leitner/internal/flashcard"
)

// Progress summarizes the bucket state and trial history.
type Progress struct {
	TotalCards     int         `json:"totalCards"`
	CardsInBuckets map[int]int `json:"cardsInBuckets"`
	SuccessRate    float64     `json:"successRate"`
}

// weight returns the contribution of a trial to the success rate. Wrong
// trials carry no weight and are left out of both sums.
func weight(d Difficulty) int {
	switch d {
	case Easy:
		return 1
	case Hard:
		return 2
	default:
		return 0
	}
}

// ComputeProgress counts cards per bucket and computes the weighted success
// rate of the history, rounded to two decimals. Every record must refer to a
// card that is currently in some bucket; otherwise ErrUnknownCard is
// returned.
func ComputeProgress(m BucketMap, history []PracticeRecord) (Progress, error) {
	p := Progress{CardsInBuckets: make(map[int]int, len(m))}
	present := make(map[flashcard.ID]struct{})
	for b, s := range m {
		p.CardsInBuckets[b] = len(s)
		p.TotalCards += len(s)
		for id := range s {
			present[id] = struct{}{}
		}
	}

	for i, rec := range history {
		if _, ok := present[rec.CardID]; !ok {
			return Progress{}, fmt.Errorf("%w: record %d (card %s %q)", ErrUnknownCard, i, rec.CardID, rec.Front)
		}
	}

	var correct, total int
	for _, rec := range history {
		if rec.Difficulty == Wrong {
			continue
		}
		w := weight(rec.Difficulty)
		total += w
		if rec.Correct {
			correct += w
		}
	}

	if total > 0 {
		p.SuccessRate = roundTo2(float64(correct) / float64(total))
	}
	return p, nil
}

func roundTo2(x float64) float64 {
	return math.Round(x*100) / 100
}
