// Package leitner implements the Modified-Leitner scheduler: it converts a
// sparse bucket map into a dense slice, selects the cards due on a given
// day, moves a card between buckets after a trial and aggregates progress.
//
// Every function is pure. Inputs are never mutated and results never alias
// a set that the function changed, so callers may share state freely as long
// as they do not mutate it themselves.
package leitner

import (
	"fmt"
	"sort"

	"github.com/abhisek/leitner/internal/flashcard"
)

// CardSet is a set of cards keyed by their surrogate ID.
type CardSet map[flashcard.ID]*flashcard.Card

// NewCardSet builds a set from the given cards.
func NewCardSet(cards ...*flashcard.Card) CardSet {
	s := make(CardSet, len(cards))
	for _, c := range cards {
		s[c.ID] = c
	}
	return s
}

// Has reports whether a card with the given ID is in the set.
func (s CardSet) Has(id flashcard.ID) bool {
	_, ok := s[id]
	return ok
}

// Clone returns a shallow copy. Cards are shared; membership is not.
func (s CardSet) Clone() CardSet {
	out := make(CardSet, len(s))
	for id, c := range s {
		out[id] = c
	}
	return out
}

// Cards returns the members ordered by front, then back, then ID.
func (s CardSet) Cards() []*flashcard.Card {
	out := make([]*flashcard.Card, 0, len(s))
	for _, c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Front != out[j].Front {
			return out[i].Front < out[j].Front
		}
		if out[i].Back != out[j].Back {
			return out[i].Back < out[j].Back
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// BucketMap maps a bucket number to the cards currently in it. The map may
// have holes; a missing bucket is the same as an empty one.
type BucketMap map[int]CardSet

// Clone copies the outer map and every set.
func (m BucketMap) Clone() BucketMap {
	out := make(BucketMap, len(m))
	for b, s := range m {
		out[b] = s.Clone()
	}
	return out
}

// TotalCards counts cards across all buckets.
func (m BucketMap) TotalCards() int {
	n := 0
	for _, s := range m {
		n += len(s)
	}
	return n
}

// Numbers returns the bucket numbers present in the map, ascending.
func (m BucketMap) Numbers() []int {
	nums := make([]int, 0, len(m))
	for b := range m {
		nums = append(nums, b)
	}
	sort.Ints(nums)
	return nums
}

// Validate checks that no bucket number is negative and that every card
// sits in exactly one bucket.
func (m BucketMap) Validate() error {
	seen := make(map[flashcard.ID]int)
	for _, b := range m.Numbers() {
		if b < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeBucket, b)
		}
		for id := range m[b] {
			if prev, ok := seen[id]; ok {
				return fmt.Errorf("%w: card %s in buckets %d and %d", ErrDuplicateCard, id, prev, b)
			}
			seen[id] = b
		}
	}
	return nil
}

// ToBucketSets converts the sparse map into a dense slice where index i is
// bucket i. Holes become empty sets, the length is the highest bucket number
// plus one, and an empty map yields an empty slice. Negative bucket numbers
// cannot be addressed and are ignored. Output sets may be the input sets.
func ToBucketSets(m BucketMap) []CardSet {
	highest := -1
	for b := range m {
		if b > highest {
			highest = b
		}
	}
	if highest < 0 {
		return []CardSet{}
	}

	sets := make([]CardSet, highest+1)
	for b, s := range m {
		if b < 0 {
			continue
		}
		if s == nil {
			s = CardSet{}
		}
		sets[b] = s
	}
	for i := range sets {
		if sets[i] == nil {
			sets[i] = CardSet{}
		}
	}
	return sets
}

// BucketRange returns the lowest and highest non-empty bucket index, as a
// rough measure of progress. ok is false when no bucket holds a card.
func BucketRange(buckets []CardSet) (lo, hi int, ok bool) {
	lo, hi = -1, -1
	for i, s := range buckets {
		if len(s) == 0 {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	if lo < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}
