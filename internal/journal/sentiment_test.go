package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePositive(t *testing.T) {
	score, label, err := DefaultScorer().Score("Great session today, finally understood pointers. Proud of the progress!")
	require.NoError(t, err)
	assert.Equal(t, "positive", label)
	assert.Greater(t, score, 0.2)
}

func TestScoreNegative(t *testing.T) {
	score, label, err := DefaultScorer().Score("Completely stuck and frustrated, this chapter is impossible.")
	require.NoError(t, err)
	assert.Equal(t, "negative", label)
	assert.Less(t, score, -0.2)
}

func TestScoreMixedIsNeutral(t *testing.T) {
	score, label, err := DefaultScorer().Score("hard but fun")
	require.NoError(t, err)
	assert.Equal(t, "neutral", label)
	assert.Equal(t, 0.0, score)
}

func TestScoreNoKeywords(t *testing.T) {
	score, label, err := DefaultScorer().Score("Read chapter three of the database book.")
	require.NoError(t, err)
	assert.Equal(t, "neutral", label)
	assert.Zero(t, score)
}

func TestScoreEmptyText(t *testing.T) {
	score, label, err := DefaultScorer().Score("   ")
	require.NoError(t, err)
	assert.Equal(t, "neutral", label)
	assert.Zero(t, score)
}

func TestScoreStripsPunctuation(t *testing.T) {
	_, label, err := DefaultScorer().Score("Solved! Happy.")
	require.NoError(t, err)
	assert.Equal(t, "positive", label)
}

func TestScoreBounds(t *testing.T) {
	for _, text := range []string{
		"good great excellent",
		"bad hard difficult",
		"good bad good bad",
	} {
		score, _, err := DefaultScorer().Score(text)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestDefaultScorerSingleton(t *testing.T) {
	assert.Same(t, DefaultScorer(), DefaultScorer())
}
