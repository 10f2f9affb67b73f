package deck

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/leitner/internal/flashcard"
)

// SeedCard is a card definition from the built-in starter deck or a YAML
// deck file.
type SeedCard struct {
	Front string  `yaml:"front"`
	Back  string  `yaml:"back"`
	Hint  *string `yaml:"hint,omitempty"`
	Tags  TagList `yaml:"tags,omitempty"`
}

// TagList decodes either a comma-separated string or a YAML sequence.
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = flashcard.ParseTags(node.Value)
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = flashcard.NormalizeTags(raw)
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a string or a list", node.Line)
	}
}

// deckFile is the on-disk layout of a YAML deck.
type deckFile struct {
	Cards []SeedCard `yaml:"cards"`
}

// DefaultSeed returns the starter deck.
func DefaultSeed() []SeedCard {
	return []SeedCard{
		{Front: "What is the capital of France?", Back: "Paris", Hint: flashcard.StringPtr("European city"), Tags: TagList{"geography"}},
		{Front: "2 + 2", Back: "4", Hint: flashcard.StringPtr("Simple math"), Tags: TagList{"math"}},
		{Front: "Who wrote Hamlet?", Back: "William Shakespeare", Hint: flashcard.StringPtr("Famous playwright"), Tags: TagList{"literature"}},
		{Front: "Water freezes at what temperature (°C)?", Back: "0", Hint: flashcard.StringPtr("Science fact"), Tags: TagList{"science"}},
	}
}

// ParseSeed decodes a YAML deck:
//
//	cards:
//	  - front: "2 + 2"
//	    back: "4"
//	    hint: Simple math
//	    tags: math, arithmetic
func ParseSeed(r io.Reader) ([]SeedCard, error) {
	var f deckFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse deck: %w", err)
	}

	for i, c := range f.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			return nil, fmt.Errorf("card %d: %w", i+1, ErrInvalidCard)
		}
	}
	return f.Cards, nil
}

// LoadSeedFile reads a YAML deck file.
func LoadSeedFile(path string) ([]SeedCard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck file: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// WriteSeed encodes cards in the format ParseSeed reads.
func WriteSeed(w io.Writer, cards []SeedCard) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(deckFile{Cards: cards}); err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	return enc.Close()
}

// ExportSeed converts cards to the YAML deck layout.
func ExportSeed(cards []*flashcard.Card) []SeedCard {
	out := make([]SeedCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, SeedCard{Front: c.Front, Back: c.Back, Hint: c.Hint, Tags: TagList(c.Tags)})
	}
	return out
}
