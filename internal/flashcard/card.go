package flashcard

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyField is returned when a card is created without a front or back.
var ErrEmptyField = errors.New("flashcard: front and back are required")

// ID is the surrogate key that identifies a card in buckets and history.
// Two cards with equal content but different IDs are different cards.
type ID string

// NewID returns a fresh random card ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// Key is the (front, back) pair used to look a card up by content.
type Key struct {
	Front string
	Back  string
}

// Card is a single flashcard. Cards are treated as immutable once created;
// scheduling state lives in the bucket map, not on the card.
type Card struct {
	ID    ID       `json:"id"`
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Hint  *string  `json:"hint,omitempty"`
	Tags  []string `json:"tags"`
}

// New creates a card with a fresh ID. A nil hint means the card has no hint;
// an empty string is a valid (blank) hint. Tags are normalized.
func New(front, back string, hint *string, tags []string) (*Card, error) {
	return NewWithID(NewID(), front, back, hint, tags)
}

// NewWithID is like New but uses the given ID, for cards loaded from storage.
func NewWithID(id ID, front, back string, hint *string, tags []string) (*Card, error) {
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return nil, ErrEmptyField
	}
	c := &Card{
		ID:    id,
		Front: front,
		Back:  back,
		Tags:  NormalizeTags(tags),
	}
	if hint != nil {
		h := *hint
		c.Hint = &h
	}
	return c, nil
}

// Key returns the content key of the card.
func (c *Card) Key() Key {
	return Key{Front: c.Front, Back: c.Back}
}

// HasTag reports whether the card carries tag (case-sensitive).
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// StringPtr is a small helper for building optional hints.
func StringPtr(s string) *string {
	return &s
}
