package leitner

import "github.com/abhisek/leitner/internal/flashcard"

// MaxBucket is the highest bucket a card can reach.
const MaxBucket = 4

// NextBucket returns the bucket a card moves to after a trial.
func NextBucket(current int, d Difficulty) int {
	switch d {
	case Wrong:
		return 0
	case Hard:
		return current
	default:
		return min(current+1, MaxBucket)
	}
}

// Locate returns the bucket holding the card with the given ID.
func Locate(m BucketMap, id flashcard.ID) (int, bool) {
	for b, s := range m {
		if s.Has(id) {
			return b, true
		}
	}
	return 0, false
}

// Update moves card according to difficulty and returns a new map. The
// input map and its sets are left untouched: the outer map is copied and
// only the sets that change are cloned.
//
// A card that is not in any bucket is treated as if it were in bucket 0 and
// ends up inserted. Callers that consider this a bug should check with
// Locate first.
func Update(m BucketMap, card *flashcard.Card, d Difficulty) BucketMap {
	out := make(BucketMap, len(m)+1)
	for b, s := range m {
		out[b] = s
	}

	current, found := Locate(m, card.ID)
	if found {
		from := out[current].Clone()
		delete(from, card.ID)
		out[current] = from
	} else if _, ok := out[0]; !ok {
		out[0] = CardSet{}
	}

	next := NextBucket(current, d)
	var to CardSet
	if next == current && found {
		to = out[next]
	} else if s, ok := out[next]; ok {
		to = s.Clone()
	} else {
		to = CardSet{}
	}
	to[card.ID] = card
	out[next] = to

	return out
}
