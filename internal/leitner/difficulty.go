package leitner

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the self-reported outcome of a single trial.
type Difficulty int

const (
	Wrong Difficulty = iota // Could not recall the answer.
	Hard                    // Recalled with effort.
	Easy                    // Recalled without effort.
)

var difficultyNames = [...]string{Wrong: "Wrong", Hard: "Hard", Easy: "Easy"}

var (
	_ fmt.Stringer             = Difficulty(0)
	_ json.Marshaler           = Difficulty(0)
	_ json.Unmarshaler         = (*Difficulty)(nil)
	_ encoding.TextMarshaler   = Difficulty(0)
	_ encoding.TextUnmarshaler = (*Difficulty)(nil)
)

// String returns "Wrong", "Hard" or "Easy", or "Difficulty(n)" when invalid.
func (d Difficulty) String() string {
	if d.IsValid() {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// IsValid reports whether d is one of Wrong, Hard, Easy.
func (d Difficulty) IsValid() bool {
	return d >= Wrong && d <= Easy
}

// ParseDifficulty accepts a name (case-insensitive) or the numeric value.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for i, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if d := Difficulty(n); d.IsValid() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the difficulty by name.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON accepts either the name or the integer value, so clients
// that send the enum ordinal keep working.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Difficulty(n).IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidDifficulty, n)
		}
		*d = Difficulty(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDifficulty, string(data))
	}
	return d.UnmarshalText([]byte(s))
}
