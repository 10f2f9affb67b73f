package deck

import "errors"

var (
	// ErrCardNotFound is returned when no card matches the given front/back
	// or ID.
	ErrCardNotFound = errors.New("deck: card not found")
	// ErrDuplicateCard is returned when adding a card whose front and back
	// match an existing card.
	ErrDuplicateCard = errors.New("deck: card already exists")
	// ErrInvalidCard is returned for cards with a blank front or back.
	ErrInvalidCard = errors.New("deck: front and back are required")
	// ErrHintsUnavailable is returned when a hint suggestion is requested
	// but no suggester is configured.
	ErrHintsUnavailable = errors.New("deck: hint suggestions are not configured")
	// ErrClosed is returned after Close by every operation that can fail.
	// Read accessors such as Day, Cards and Snapshot keep answering from
	// the last state.
	ErrClosed = errors.New("deck: closed")
)
