package flashcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single with spaces", " tag1 ", []string{"tag1"}},
		{"varying whitespace", " tag1 , tag2  , tag3 ", []string{"tag1", "tag2", "tag3"}},
		{"extra commas", "tag1,,tag2,", []string{"tag1", "tag2"}},
		{"only commas", ", , ", []string{}},
		{"leading and trailing commas", ",tag1,tag2,tag3,", []string{"tag1", "tag2", "tag3"}},
		{"special characters", "tag1, tag@2, tag#3", []string{"tag1", "tag@2", "tag#3"}},
		{"numeric", "123, 456, 789", []string{"123", "456", "789"}},
		{"duplicates collapse", "tag1, tag2, tag1, tag3", []string{"tag1", "tag2", "tag3"}},
		{"case sensitive", "Go, go", []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.input))
		})
	}
}

func TestNormalizeTags_Nil(t *testing.T) {
	got := NormalizeTags(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeTags_PreservesOrder(t *testing.T) {
	got := NormalizeTags([]string{" b", "a ", "b", "c"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
}
