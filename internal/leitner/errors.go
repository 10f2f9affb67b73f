package leitner

import "errors"

// Sentinel errors. Use errors.Is to check.
var (
	ErrUnknownCard       = errors.New("leitner: practice record card not found in any bucket")
	ErrMissingHint       = errors.New("leitner: card has no hint")
	ErrInvalidDifficulty = errors.New("leitner: invalid difficulty")
	ErrNegativeBucket    = errors.New("leitner: negative bucket number")
	ErrDuplicateCard     = errors.New("leitner: card present in more than one bucket")
)
