// Package deck holds the mutable scheduling state (bucket assignment,
// practice history, current day) and applies the leitner rules to it.
// Every operation is serialized by a single lock and persisted through an
// optional store.DeckRepo before the in-memory state is swapped.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/leitner/internal/flashcard"
	"github.com/abhisek/leitner/internal/leitner"
	"github.com/abhisek/leitner/internal/metrics"
	"github.com/abhisek/leitner/internal/store"
)

// Deck is the single owner of scheduling state.
type Deck struct {
	mu sync.Mutex

	buckets leitner.BucketMap
	history []leitner.PracticeRecord
	day     int
	order   []flashcard.ID // creation order
	byKey   map[flashcard.Key]*flashcard.Card
	byID    map[flashcard.ID]*flashcard.Card
	closed  bool

	repo      store.DeckRepo
	logger    *slog.Logger
	metrics   metrics.Recorder
	now       func() time.Time
	suggester HintSuggester
}

// AnswerInput reports the outcome of one practice trial.
type AnswerInput struct {
	Front      string
	Back       string
	Difficulty leitner.Difficulty
	// Correct defaults to Difficulty == Easy when nil.
	Correct *bool
}

// NewCardInput describes a card to add.
type NewCardInput struct {
	Front string
	Back  string
	Hint  *string
	Tags  []string
	// SuggestHint asks the configured HintSuggester for a hint when Hint
	// is nil.
	SuggestHint bool
}

// New creates a deck. With a repo, existing state is loaded from it; the
// seed is applied only if no cards are stored yet.
func New(ctx context.Context, opts ...Option) (*Deck, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}

	d := &Deck{
		buckets:   leitner.BucketMap{},
		byKey:     make(map[flashcard.Key]*flashcard.Card),
		byID:      make(map[flashcard.ID]*flashcard.Card),
		repo:      o.repo,
		logger:    o.logger,
		metrics:   o.metrics,
		now:       o.now,
		suggester: o.suggester,
	}

	if d.repo != nil {
		if err := d.load(ctx); err != nil {
			return nil, err
		}
	}

	if len(d.byID) == 0 && len(o.seed) > 0 {
		added, _, err := d.importCards(ctx, o.seed)
		if err != nil {
			return nil, fmt.Errorf("seed deck: %w", err)
		}
		d.logger.Info("deck seeded", "cards", added)
	}

	d.publish()
	return d, nil
}

func (d *Deck) load(ctx context.Context) error {
	cards, err := d.repo.Cards(ctx)
	if err != nil {
		return fmt.Errorf("load cards: %w", err)
	}
	for _, cd := range cards {
		c, err := flashcard.NewWithID(flashcard.ID(cd.ID), cd.Front, cd.Back, cd.Hint, cd.Tags)
		if err != nil {
			return fmt.Errorf("load card %s: %w", cd.ID, err)
		}
		d.insert(c, cd.Bucket)
	}

	events, err := d.repo.PracticeEvents(ctx, store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	d.history = make([]leitner.PracticeRecord, 0, len(events))
	for _, ev := range events {
		rec, err := recordFromEvent(ev)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		d.history = append(d.history, rec)
	}
	d.restoreEmptyBuckets()

	if d.day, err = d.repo.Day(ctx); err != nil {
		return fmt.Errorf("load day: %w", err)
	}

	d.logger.Debug("deck loaded", "cards", len(cards), "history", len(d.history), "day", d.day)
	return nil
}

// restoreEmptyBuckets recreates buckets that existed before a restart but
// hold no cards now. Bucket 0 exists once any card was added, and every
// bucket a trial moved a card into or out of was part of the mapping.
func (d *Deck) restoreEmptyBuckets() {
	known := func(b int) {
		if _, ok := d.buckets[b]; !ok {
			d.buckets[b] = leitner.CardSet{}
		}
	}
	if len(d.byID) > 0 {
		known(0)
	}
	for _, rec := range d.history {
		known(rec.PreviousBucket)
		known(rec.NewBucket)
	}
}

// insert places c into bucket b and the lookup indexes. Caller holds mu or
// has exclusive access.
func (d *Deck) insert(c *flashcard.Card, b int) {
	set, ok := d.buckets[b]
	if !ok {
		set = leitner.CardSet{}
		d.buckets[b] = set
	}
	set[c.ID] = c
	d.order = append(d.order, c.ID)
	d.byKey[c.Key()] = c
	d.byID[c.ID] = c
}

// Close ends the deck's lifecycle. The repo is owned by the caller and is
// not closed.
func (d *Deck) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Day returns the current simulated day.
func (d *Deck) Day() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.day
}

// DueCards returns the current day and the cards due on it, ordered by
// bucket and then by front.
func (d *Deck) DueCards() (int, []*flashcard.Card, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, nil, ErrClosed
	}

	sets := leitner.ToBucketSets(d.buckets)
	due := leitner.Practice(sets, d.day)

	cards := make([]*flashcard.Card, 0, len(due))
	for _, set := range sets {
		for _, c := range set.Cards() {
			if due.Has(c.ID) {
				cards = append(cards, c)
			}
		}
	}
	return d.day, cards, nil
}

// Answer re-buckets the card identified by front/back and appends a
// practice record. Unknown cards fail with ErrCardNotFound.
func (d *Deck) Answer(ctx context.Context, in AnswerInput) (leitner.PracticeRecord, error) {
	if !in.Difficulty.IsValid() {
		return leitner.PracticeRecord{}, fmt.Errorf("%w: %d", leitner.ErrInvalidDifficulty, int(in.Difficulty))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return leitner.PracticeRecord{}, ErrClosed
	}

	card, ok := d.byKey[flashcard.Key{Front: in.Front, Back: in.Back}]
	if !ok {
		return leitner.PracticeRecord{}, fmt.Errorf("%w: %q", ErrCardNotFound, in.Front)
	}
	prev, ok := leitner.Locate(d.buckets, card.ID)
	if !ok {
		return leitner.PracticeRecord{}, fmt.Errorf("%w: %s is not in any bucket", ErrCardNotFound, card.ID)
	}

	next := leitner.Update(d.buckets, card, in.Difficulty)
	newBucket, _ := leitner.Locate(next, card.ID)

	correct := in.Difficulty == leitner.Easy
	if in.Correct != nil {
		correct = *in.Correct
	}

	rec := leitner.PracticeRecord{
		CardID:         card.ID,
		Front:          card.Front,
		Back:           card.Back,
		Difficulty:     in.Difficulty,
		Correct:        correct,
		PreviousBucket: prev,
		NewBucket:      newBucket,
		Timestamp:      d.now(),
	}

	if d.repo != nil {
		if _, err := d.repo.AppendPractice(ctx, eventFromRecord(rec)); err != nil {
			return leitner.PracticeRecord{}, fmt.Errorf("persist answer: %w", err)
		}
	}

	d.buckets = next
	d.history = append(d.history, rec)

	d.logger.Info("card updated",
		"front", card.Front,
		"difficulty", in.Difficulty.String(),
		"from", prev,
		"to", newBucket,
	)
	d.metrics.RecordAnswer(in.Difficulty.String(), correct, prev, newBucket)
	d.publishLocked()
	return rec, nil
}

// Hint returns the hint of the card identified by front/back. Cards without
// a hint fail with leitner.ErrMissingHint.
func (d *Deck) Hint(front, back string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", ErrClosed
	}

	card, ok := d.byKey[flashcard.Key{Front: front, Back: back}]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCardNotFound, front)
	}
	hint, err := leitner.GetHint(card)
	d.metrics.RecordHintRequest(err == nil)
	return hint, err
}

// Progress computes the bucket histogram and weighted success rate.
func (d *Deck) Progress() (leitner.Progress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return leitner.Progress{}, ErrClosed
	}
	return leitner.ComputeProgress(d.buckets, d.history)
}

// AdvanceDay increments the day counter and returns the new day.
func (d *Deck) AdvanceDay(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrClosed
	}

	next := d.day + 1
	if d.repo != nil {
		if err := d.repo.SetDay(ctx, next); err != nil {
			return 0, fmt.Errorf("persist day: %w", err)
		}
	}
	d.day = next

	d.logger.Info("advanced day", "day", next)
	d.metrics.SetDay(next)
	return next, nil
}

// AddCard creates a card in bucket 0. A card with the same front and back
// as an existing one fails with ErrDuplicateCard.
func (d *Deck) AddCard(ctx context.Context, in NewCardInput) (*flashcard.Card, error) {
	if strings.TrimSpace(in.Front) == "" || strings.TrimSpace(in.Back) == "" {
		return nil, ErrInvalidCard
	}

	hint := in.Hint
	if hint == nil && in.SuggestHint {
		suggested, err := d.suggestHint(ctx, in)
		if err != nil {
			return nil, err
		}
		hint = &suggested
	}

	card, err := flashcard.New(in.Front, in.Back, hint, in.Tags)
	if err != nil {
		if errors.Is(err, flashcard.ErrEmptyField) {
			return nil, ErrInvalidCard
		}
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if err := d.addLocked(ctx, card); err != nil {
		return nil, err
	}

	d.logger.Info("added card", "front", card.Front, "id", card.ID)
	d.metrics.RecordCardAdded()
	d.publishLocked()
	return card, nil
}

// suggestHint runs outside the lock; LLM calls can take seconds.
func (d *Deck) suggestHint(ctx context.Context, in NewCardInput) (string, error) {
	if d.suggester == nil {
		return "", ErrHintsUnavailable
	}

	start := time.Now()
	hint, err := d.suggester.SuggestHint(ctx, in.Front, in.Back, flashcard.NormalizeTags(in.Tags))
	elapsed := time.Since(start).Seconds()
	if err != nil {
		d.metrics.RecordHintSuggestion("failure", elapsed)
		return "", fmt.Errorf("suggest hint: %w", err)
	}
	d.metrics.RecordHintSuggestion("success", elapsed)
	return hint, nil
}

func (d *Deck) addLocked(ctx context.Context, card *flashcard.Card) error {
	if _, exists := d.byKey[card.Key()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCard, card.Front)
	}

	if d.repo != nil {
		err := d.repo.InsertCard(ctx, store.CardData{
			ID:        string(card.ID),
			Front:     card.Front,
			Back:      card.Back,
			Hint:      card.Hint,
			Tags:      card.Tags,
			Bucket:    0,
			CreatedAt: d.now(),
		})
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("%w: %q", ErrDuplicateCard, card.Front)
		}
		if err != nil {
			return fmt.Errorf("persist card: %w", err)
		}
	}

	// Copy on write so snapshots handed out earlier stay stable.
	next := make(leitner.BucketMap, len(d.buckets)+1)
	for b, s := range d.buckets {
		next[b] = s
	}
	zero := next[0].Clone()
	if zero == nil {
		zero = leitner.CardSet{}
	}
	next[0] = zero
	d.buckets = next
	d.insert(card, 0)
	return nil
}

// Import adds cards that are not already in the deck. Cards whose front and
// back match an existing card are skipped.
func (d *Deck) Import(ctx context.Context, cards []SeedCard) (added, skipped int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, 0, ErrClosed
	}

	added, skipped, err = d.importCards(ctx, cards)
	for range added {
		d.metrics.RecordCardAdded()
	}
	d.publishLocked()
	return added, skipped, err
}

func (d *Deck) importCards(ctx context.Context, cards []SeedCard) (added, skipped int, err error) {
	for _, sc := range cards {
		card, err := flashcard.New(sc.Front, sc.Back, sc.Hint, sc.Tags)
		if err != nil {
			return added, skipped, fmt.Errorf("card %q: %w", sc.Front, ErrInvalidCard)
		}
		err = d.addLocked(ctx, card)
		if errors.Is(err, ErrDuplicateCard) {
			skipped++
			continue
		}
		if err != nil {
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}

// Cards returns every card in creation order.
func (d *Deck) Cards() []*flashcard.Card {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*flashcard.Card, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out
}

// Tags returns the distinct tags of all cards in first-seen order.
func (d *Deck) Tags() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var all []string
	for _, id := range d.order {
		all = append(all, d.byID[id].Tags...)
	}
	return flashcard.NormalizeTags(all)
}

// History returns a copy of the practice history in append order.
func (d *Deck) History() []leitner.PracticeRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]leitner.PracticeRecord(nil), d.history...)
}

// FindCard looks a card up by its front and back.
func (d *Deck) FindCard(front, back string) (*flashcard.Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.byKey[flashcard.Key{Front: front, Back: back}]
	return c, ok
}

// CardBucket returns the bucket currently holding the card.
func (d *Deck) CardBucket(id flashcard.ID) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return leitner.Locate(d.buckets, id)
}

// Snapshot returns a deep copy of the bucket assignment.
func (d *Deck) Snapshot() leitner.BucketMap {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buckets.Clone()
}

func (d *Deck) publish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.publishLocked()
}

func (d *Deck) publishLocked() {
	sizes := make(map[int]int, len(d.buckets))
	for b, s := range d.buckets {
		sizes[b] = len(s)
	}
	d.metrics.SetBucketSizes(sizes)
	d.metrics.SetDay(d.day)
}

func eventFromRecord(rec leitner.PracticeRecord) store.PracticeEventData {
	return store.PracticeEventData{
		CardID:         string(rec.CardID),
		Front:          rec.Front,
		Back:           rec.Back,
		Difficulty:     rec.Difficulty.String(),
		Correct:        rec.Correct,
		PreviousBucket: rec.PreviousBucket,
		NewBucket:      rec.NewBucket,
		Timestamp:      rec.Timestamp,
	}
}

func recordFromEvent(ev store.PracticeEventRecord) (leitner.PracticeRecord, error) {
	diff, err := leitner.ParseDifficulty(ev.Difficulty)
	if err != nil {
		return leitner.PracticeRecord{}, fmt.Errorf("event %d: %w", ev.Sequence, err)
	}
	return leitner.PracticeRecord{
		CardID:         flashcard.ID(ev.CardID),
		Front:          ev.Front,
		Back:           ev.Back,
		Difficulty:     diff,
		Correct:        ev.Correct,
		PreviousBucket: ev.PreviousBucket,
		NewBucket:      ev.NewBucket,
		Timestamp:      ev.Timestamp,
	}, nil
}
