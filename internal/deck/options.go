package deck

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/leitner/internal/metrics"
	"github.com/abhisek/leitner/internal/store"
)

// HintSuggester proposes a hint for a card that was created without one.
type HintSuggester interface {
	SuggestHint(ctx context.Context, front, back string, tags []string) (string, error)
}

// Option configures a Deck.
type Option func(*options)

type options struct {
	repo      store.DeckRepo
	seed      []SeedCard
	logger    *slog.Logger
	metrics   metrics.Recorder
	now       func() time.Time
	suggester HintSuggester
}

// WithRepo persists the deck through repo and loads existing state from it.
// Without a repo the deck lives in memory only.
func WithRepo(repo store.DeckRepo) Option {
	return func(o *options) { o.repo = repo }
}

// WithSeed sets the cards placed in bucket 0 when the deck starts empty.
func WithSeed(cards []SeedCard) Option {
	return func(o *options) { o.seed = cards }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics sets the metrics recorder. Defaults to a no-op recorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// WithClock overrides time.Now for practice record timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithHintSuggester enables NewCardInput.SuggestHint.
func WithHintSuggester(s HintSuggester) Option {
	return func(o *options) { o.suggester = s }
}
