package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var (
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("store: conflict")
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("store: not found")
)

const dayKey = "day"

// CardData is the persisted form of a flashcard and its current bucket.
type CardData struct {
	ID        string
	Front     string
	Back      string
	Hint      *string
	Tags      []string
	Bucket    int
	CreatedAt time.Time
}

// PracticeEventData is a single answered card.
type PracticeEventData struct {
	CardID         string
	Front          string
	Back           string
	Difficulty     string
	Correct        bool
	PreviousBucket int
	NewBucket      int
	Timestamp      time.Time
}

// PracticeEventRecord is a stored practice event with its global sequence.
type PracticeEventRecord struct {
	Sequence int64
	PracticeEventData
}

// QueryOpts filters history queries. Zero values mean "no bound".
type QueryOpts struct {
	CardID string
	After  int64 // sequence, exclusive
	From   time.Time
	To     time.Time
	Limit  int
}

// DeckRepo persists cards, their bucket placement, the practice history and
// the current day.
type DeckRepo interface {
	Cards(ctx context.Context) ([]CardData, error)
	InsertCard(ctx context.Context, c CardData) error
	AppendPractice(ctx context.Context, ev PracticeEventData) (int64, error)
	PracticeEvents(ctx context.Context, opts QueryOpts) ([]PracticeEventRecord, error)
	Day(ctx context.Context) (int, error)
	SetDay(ctx context.Context, day int) error
}

type deckRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *deckRepo) Cards(ctx context.Context) ([]CardData, error) {
	query, args := builder().
		Select("id", "front", "back", "hint", "tags", "bucket", "created_at").
		From(entsql.Table(cardsTable)).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []CardData
	for rows.Next() {
		var (
			c       CardData
			hint    sql.NullString
			tags    string
			created int64
		)
		if err := rows.Scan(&c.ID, &c.Front, &c.Back, &hint, &tags, &c.Bucket, &created); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		if hint.Valid {
			h := hint.String
			c.Hint = &h
		}
		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for card %s: %w", c.ID, err)
		}
		c.CreatedAt = time.UnixMilli(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *deckRepo) InsertCard(ctx context.Context, c CardData) error {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	var hint any
	if c.Hint != nil {
		hint = *c.Hint
	}
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query, args := builder().
		Insert(cardsTable).
		Columns("id", "front", "back", "hint", "tags", "bucket", "created_at").
		Values(c.ID, c.Front, c.Back, hint, string(encoded), c.Bucket, created.UnixMilli()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert card %q: %w", c.Front, ErrConflict)
		}
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// AppendPractice moves the card to ev.NewBucket and records the event in one
// transaction. It returns the event's sequence number.
func (r *deckRepo) AppendPractice(ctx context.Context, ev PracticeEventData) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query, args := builder().
		Update(cardsTable).
		Set("bucket", ev.NewBucket).
		Where(entsql.EQ("id", ev.CardID)).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("move card: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("move card %s: %w", ev.CardID, ErrNotFound)
	}

	seq, err := r.seq.Next(ctx, tx)
	if err != nil {
		return 0, err
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args = builder().
		Insert(practiceEventsTable).
		Columns("sequence", "timestamp", "card_id", "front", "back",
			"difficulty", "correct", "previous_bucket", "new_bucket").
		Values(seq, ts.UnixMilli(), ev.CardID, ev.Front, ev.Back,
			ev.Difficulty, ev.Correct, ev.PreviousBucket, ev.NewBucket).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("insert practice event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return seq, nil
}

// PracticeEvents returns history in sequence order.
func (r *deckRepo) PracticeEvents(ctx context.Context, opts QueryOpts) ([]PracticeEventRecord, error) {
	sel := builder().
		Select("sequence", "timestamp", "card_id", "front", "back",
			"difficulty", "correct", "previous_bucket", "new_bucket").
		From(entsql.Table(practiceEventsTable))

	if opts.CardID != "" {
		sel.Where(entsql.EQ("card_id", opts.CardID))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy("sequence")
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query practice events: %w", err)
	}
	defer rows.Close()

	var out []PracticeEventRecord
	for rows.Next() {
		var (
			rec PracticeEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.CardID, &rec.Front, &rec.Back,
			&rec.Difficulty, &rec.Correct, &rec.PreviousBucket, &rec.NewBucket); err != nil {
			return nil, fmt.Errorf("scan practice event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Day returns the stored current day, or 0 for a fresh deck.
func (r *deckRepo) Day(ctx context.Context) (int, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table(deckMetaTable)).
		Where(entsql.EQ("name", dayKey)).
		Query()

	var day int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&day)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query day: %w", err)
	}
	return int(day), nil
}

func (r *deckRepo) SetDay(ctx context.Context, day int) error {
	query, args := builder().
		Insert(deckMetaTable).
		Columns("name", "value").
		Values(dayKey, int64(day)).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set day: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
