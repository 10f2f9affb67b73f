// Package hints suggests flashcard hints with an LLM for cards created
// without one.
package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/abhisek/leitner/internal/llm"
)

// ErrAnswerLeak is returned when every attempt produced a hint that gives
// the answer away.
var ErrAnswerLeak = errors.New("hints: suggestion reveals the answer")

// SuggestInput is the card a hint is wanted for.
type SuggestInput struct {
	Front string
	Back  string
	Tags  []string
}

// Service generates hints synchronously. It is safe for concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a hint generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Service{provider: provider, cfg: cfg}
}

type hintOutput struct {
	Hint string `json:"hint"`
}

// Suggest returns a hint for the card. Suggestions that contain the answer
// are rejected and regenerated with the rejected text fed back to the model.
func (s *Service) Suggest(ctx context.Context, in SuggestInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "hint-suggest")

	var rejected []string
	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		req := llm.UserPrompt(hintSystemPrompt, buildHintUserMessage(in, rejected))
		req.Schema = HintSchema
		req.MaxTokens = s.cfg.MaxTokens
		req.Temperature = s.cfg.Temperature

		resp, err := s.provider.Generate(ctx, req)
		if err != nil {
			return "", fmt.Errorf("hint generation: %w", err)
		}

		var out hintOutput
		if err := json.Unmarshal(resp.Content, &out); err != nil {
			return "", fmt.Errorf("parse hint response: %w", err)
		}

		hint := cleanHint(out.Hint)
		if hint == "" {
			return "", fmt.Errorf("hint generation: empty hint")
		}
		if !revealsAnswer(hint, in.Back) {
			return hint, nil
		}
		rejected = append(rejected, hint)
	}

	return "", fmt.Errorf("%w after %d attempts", ErrAnswerLeak, s.cfg.MaxAttempts)
}

// SuggestHint adapts Suggest to the deck's suggester interface.
func (s *Service) SuggestHint(ctx context.Context, front, back string, tags []string) (string, error) {
	return s.Suggest(ctx, SuggestInput{Front: front, Back: back, Tags: tags})
}

func cleanHint(h string) string {
	h = strings.TrimSpace(h)
	h = strings.Trim(h, `"'`)
	h = strings.TrimRight(h, ".!")
	return strings.TrimSpace(h)
}

// revealsAnswer reports whether the hint contains the whole answer as a
// run of words, or any significant word of it, ignoring case and
// punctuation.
func revealsAnswer(hint, answer string) bool {
	hintWords := words(strings.ToLower(hint))
	answerWords := words(strings.ToLower(answer))
	if len(answerWords) == 0 {
		return false
	}
	if containsRun(hintWords, answerWords) {
		return true
	}

	seen := make(map[string]bool, len(hintWords))
	for _, w := range hintWords {
		seen[w] = true
	}
	for _, w := range answerWords {
		// Short words ("a", "of", "0") collide with ordinary hint text.
		if len([]rune(w)) < 3 {
			continue
		}
		if seen[w] {
			return true
		}
	}
	return false
}

// containsRun reports whether run appears in ws as consecutive elements.
func containsRun(ws, run []string) bool {
	for i := 0; i+len(run) <= len(ws); i++ {
		if slices.Equal(ws[i:i+len(run)], run) {
			return true
		}
	}
	return false
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
