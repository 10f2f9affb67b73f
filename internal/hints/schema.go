package hints

import "github.com/abhisek/leitner/internal/llm"

// maxHintLength caps suggested hints; a hint is a nudge, not an explanation.
const maxHintLength = 120

// HintSchema defines the JSON schema for a suggested flashcard hint.
var HintSchema = &llm.Schema{
	Name:        "flashcard-hint",
	Description: "A short hint that helps recall the back of a flashcard without revealing it",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "2-6 word hint that does not contain the answer",
				"minLength":   1,
				"maxLength":   maxHintLength,
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}
