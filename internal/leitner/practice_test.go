package leitner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/leitner/internal/flashcard"
)

// fiveBuckets returns one card in each of buckets 0..4.
func fiveBuckets(t *testing.T) ([]CardSet, []*flashcard.Card) {
	t.Helper()
	var cards []*flashcard.Card
	sets := make([]CardSet, 5)
	for i := range sets {
		c := newCard(t, string(rune('a'+i)))
		cards = append(cards, c)
		sets[i] = NewCardSet(c)
	}
	return sets, cards
}

func TestPractice_DayZeroIncludesEveryBucket(t *testing.T) {
	sets, cards := fiveBuckets(t)
	due := Practice(sets, 0)
	assert.Len(t, due, 5)
	for _, c := range cards {
		assert.True(t, due.Has(c.ID))
	}
}

func TestPractice_DayFour(t *testing.T) {
	sets, cards := fiveBuckets(t)
	due := Practice(sets, 4)

	assert.True(t, due.Has(cards[0].ID), "bucket 0 is due every day")
	assert.True(t, due.Has(cards[1].ID), "4 %% 2 == 0")
	assert.True(t, due.Has(cards[2].ID), "4 %% 4 == 0")
	assert.False(t, due.Has(cards[3].ID), "4 %% 8 != 0")
	assert.False(t, due.Has(cards[4].ID), "4 %% 16 != 0")
}

func TestPractice_BucketZeroAlwaysDue(t *testing.T) {
	sets, cards := fiveBuckets(t)
	for day := 0; day < 64; day++ {
		due := Practice(sets, day)
		require.True(t, due.Has(cards[0].ID), "day %d", day)
	}
}

func TestPractice_BucketDueIffDivisible(t *testing.T) {
	sets, cards := fiveBuckets(t)
	for day := 0; day < 40; day++ {
		due := Practice(sets, day)
		for b := 1; b < len(sets); b++ {
			want := day%(1<<b) == 0
			assert.Equal(t, want, due.Has(cards[b].ID), "bucket %d day %d", b, day)
		}
	}
}

func TestPractice_OddDayOnlyBucketZero(t *testing.T) {
	sets, cards := fiveBuckets(t)
	due := Practice(sets, 7)
	assert.Len(t, due, 1)
	assert.True(t, due.Has(cards[0].ID))
}

func TestPractice_EmptyAndNilBuckets(t *testing.T) {
	assert.Empty(t, Practice(nil, 0))
	assert.Empty(t, Practice([]CardSet{}, 3))

	c := newCard(t, "x")
	due := Practice([]CardSet{nil, nil, NewCardSet(c)}, 4)
	assert.True(t, due.Has(c.ID))
}

func TestPractice_DoesNotShareResultWithInput(t *testing.T) {
	sets, _ := fiveBuckets(t)
	due := Practice(sets, 0)
	extra := newCard(t, "extra")
	due[extra.ID] = extra
	assert.False(t, sets[0].Has(extra.ID))
}

func TestIsDue_HugeBucket(t *testing.T) {
	assert.True(t, IsDue(80, 0))
	assert.False(t, IsDue(80, 1<<40))
	assert.True(t, IsDue(62, 0))
	assert.False(t, IsDue(62, 1<<61))
}
