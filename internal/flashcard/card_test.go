package flashcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AssignsIDAndNormalizesTags(t *testing.T) {
	c, err := New("2 + 2", "4", StringPtr("Simple math"), []string{"math", " math ", "arith"})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, []string{"math", "arith"}, c.Tags)
	require.NotNil(t, c.Hint)
	assert.Equal(t, "Simple math", *c.Hint)
}

func TestNew_DistinctIDsForEqualContent(t *testing.T) {
	a, err := New("front", "back", nil, nil)
	require.NoError(t, err)
	b, err := New("front", "back", nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Key(), b.Key())
}

func TestNew_RequiresFrontAndBack(t *testing.T) {
	_, err := New("", "back", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyField)

	_, err = New("front", "   ", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestNew_CopiesHint(t *testing.T) {
	hint := "original"
	c, err := New("f", "b", &hint, nil)
	require.NoError(t, err)

	hint = "changed"
	assert.Equal(t, "original", *c.Hint)
}

func TestNew_EmptyHintIsKept(t *testing.T) {
	c, err := New("f", "b", StringPtr(""), nil)
	require.NoError(t, err)
	require.NotNil(t, c.Hint)
	assert.Equal(t, "", *c.Hint)
}

func TestCard_HasTag(t *testing.T) {
	c, err := New("Who wrote Hamlet?", "William Shakespeare", nil, []string{"literature"})
	require.NoError(t, err)

	assert.True(t, c.HasTag("literature"))
	assert.False(t, c.HasTag("Literature"))
}
