package hints

// Config holds hint generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxAttempts bounds regeneration when a suggestion is rejected by the
	// answer-leak check. Provider-level retries are separate.
	MaxAttempts int
}

// DefaultConfig returns sensible defaults for hint generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   128,
		Temperature: 0.4,
		MaxAttempts: 2,
	}
}
