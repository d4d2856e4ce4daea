package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

func TestNewLevel(t *testing.T) {
	l, err := NewLevel("advanced")
	require.NoError(t, err)
	assert.Equal(t, LevelAdvanced, l)

	_, err = NewLevel("expert")
	assert.True(t, apperror.IsValidation(err))
}

func TestLevel_OrDefault(t *testing.T) {
	assert.Equal(t, LevelIntermediate, Level("").OrDefault())
	assert.Equal(t, LevelBeginner, LevelBeginner.OrDefault())
}

func TestParseSourceFilter(t *testing.T) {
	s, err := ParseSourceFilter("")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseSourceFilter(SourceAll)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseSourceFilter("kaggle_dataset")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, SourceKaggleDataset, *s)

	_, err = ParseSourceFilter("gitlab")
	assert.True(t, apperror.IsValidation(err))
}

func TestSource_Description(t *testing.T) {
	assert.Equal(t, "Data science competitions", SourceKaggleCompetition.Description())
	assert.Equal(t, "Unknown source", Source("manual").Description())
}

func TestNewAlgorithm(t *testing.T) {
	a, err := NewAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmHybrid, a)

	a, err = NewAlgorithm("traditional")
	require.NoError(t, err)
	assert.False(t, a.UsesEmbeddings())

	_, err = NewAlgorithm("collaborative")
	assert.True(t, apperror.IsValidation(err))
}

func TestValidateRating(t *testing.T) {
	ok := 3
	low := 0
	high := 6
	assert.NoError(t, ValidateRating(nil))
	assert.NoError(t, ValidateRating(&ok))
	assert.Error(t, ValidateRating(&low))
	assert.Error(t, ValidateRating(&high))
}

func TestNewInteractionType(t *testing.T) {
	it, err := NewInteractionType("bookmarked")
	require.NoError(t, err)
	assert.Equal(t, InteractionBookmarked, it)

	_, err = NewInteractionType("liked")
	assert.True(t, apperror.IsValidation(err))
}
