package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

func TestRankTagOverlapDominates(t *testing.T) {
	courses := []models.Course{
		{Title: "Unrelated", Tags: []string{"cooking"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
		{Title: "Full Match", Tags: []string{"python", "data science"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
		{Title: "Half Match", Tags: []string{"python"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
	}

	got := Rank(courses, []string{"python", "data science"}, models.DifficultyBeginner)
	require.Len(t, got, 3)
	assert.Equal(t, "Full Match", got[0].Title)
	assert.Equal(t, "Half Match", got[1].Title)
	assert.Equal(t, "Unrelated", got[2].Title)
}

func TestRankDifficultyPartialCredit(t *testing.T) {
	courses := []models.Course{
		{Title: "Far", Tags: []string{"go"}, Difficulty: models.DifficultyAdvanced, Provider: ProviderUdemy},
		{Title: "Near", Tags: []string{"go"}, Difficulty: models.DifficultyIntermediate, Provider: ProviderUdemy},
		{Title: "Exact", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
	}

	got := Rank(courses, []string{"go"}, models.DifficultyBeginner)
	require.Len(t, got, 3)
	assert.Equal(t, "Exact", got[0].Title)
	assert.Equal(t, "Near", got[1].Title)
	assert.Equal(t, "Far", got[2].Title)
}

func TestRankProviderPreference(t *testing.T) {
	courses := []models.Course{
		{Title: "A", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderClassCentral},
		{Title: "B", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderMITOCW},
		{Title: "C", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: "Some Blog"},
	}

	got := Rank(courses, []string{"go"}, models.DifficultyBeginner)
	require.Len(t, got, 3)
	assert.Equal(t, ProviderMITOCW, got[0].Provider)
	assert.Equal(t, ProviderClassCentral, got[1].Provider)
	assert.Equal(t, "Some Blog", got[2].Provider)
}

func TestRankStableOnTies(t *testing.T) {
	courses := []models.Course{
		{Title: "First", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
		{Title: "Second", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
		{Title: "Third", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
	}

	for i := 0; i < 5; i++ {
		got := Rank(courses, []string{"rust"}, models.DifficultyBeginner)
		require.Len(t, got, 3)
		assert.Equal(t, "First", got[0].Title)
		assert.Equal(t, "Second", got[1].Title)
		assert.Equal(t, "Third", got[2].Title)
	}
}

func TestRankTitleRelevanceBreaksTies(t *testing.T) {
	courses := []models.Course{
		{Title: "Generic Course", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
		{Title: "Go in Practice", Tags: []string{"go"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
	}

	got := Rank(courses, []string{"go"}, models.DifficultyBeginner)
	require.Len(t, got, 2)
	assert.Equal(t, "Go in Practice", got[0].Title)
}

func TestRankDuplicateCourseTagsCountOnce(t *testing.T) {
	courses := []models.Course{
		{Title: "Padded", Tags: []string{"go", "Go", "GO"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
		{Title: "Honest Go", Tags: []string{"go", "testing"}, Difficulty: models.DifficultyBeginner, Provider: ProviderUdemy},
	}

	got := Rank(courses, []string{"go", "testing"}, models.DifficultyBeginner)
	require.Len(t, got, 2)
	assert.Equal(t, "Honest Go", got[0].Title)
}
