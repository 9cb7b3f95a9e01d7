package sources

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

func TestCourseIDDeterministic(t *testing.T) {
	a := CourseID("Python Basics", ProviderYouTube, "https://youtube.com/1")
	b := CourseID("Python Basics", ProviderYouTube, "https://youtube.com/1")
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, int64(0))

	c := CourseID("Python Basics", ProviderUdemy, "https://youtube.com/1")
	assert.NotEqual(t, a, c)
}

func TestCourseIDFieldBoundaries(t *testing.T) {
	// the separator keeps "ab"+"c" distinct from "a"+"bc"
	a := CourseID("ab", "c", "")
	b := CourseID("a", "bc", "")
	assert.NotEqual(t, a, b)
}

func TestSynthesizeRating(t *testing.T) {
	assert.Equal(t, 4.7, SynthesizeRating(ProviderMITOCW, models.DifficultyBeginner))
	assert.Equal(t, 4.8, SynthesizeRating(ProviderMITOCW, models.DifficultyIntermediate))
	assert.Equal(t, 4.9, SynthesizeRating(ProviderMITOCW, models.DifficultyAdvanced))

	// unknown provider falls back to the default base
	assert.Equal(t, 3.5, SynthesizeRating("Nowhere U", models.DifficultyIntermediate))
}

func TestSynthesizeRatingBounds(t *testing.T) {
	for provider := range baseRatings {
		for _, level := range models.DifficultyLevels {
			r := SynthesizeRating(provider, level)
			assert.GreaterOrEqual(t, r, 1.0)
			assert.LessOrEqual(t, r, 5.0)
		}
	}
}

func TestSynthesizeDuration(t *testing.T) {
	// default 20h base, beginner keeps it
	assert.Equal(t, "20 hours", SynthesizeDuration(nil, models.DifficultyBeginner))

	// a topic only raises the estimate, never lowers it
	assert.Equal(t, "20 hours", SynthesizeDuration([]string{"html"}, models.DifficultyBeginner))
	assert.Equal(t, "25 hours", SynthesizeDuration([]string{"react"}, models.DifficultyBeginner))

	// the highest topic wins, then the multiplier kicks it into weeks
	got := SynthesizeDuration([]string{"html", "machine learning"}, models.DifficultyAdvanced)
	assert.Equal(t, "12 weeks (120 hours)", got)

	// intermediate applies a 1.5x multiplier
	assert.Equal(t, "4 weeks (45 hours)", SynthesizeDuration([]string{"python"}, models.DifficultyIntermediate))
}

func TestInferDifficulty(t *testing.T) {
	assert.Equal(t, models.DifficultyBeginner, InferDifficulty("Introduction to Go", ""))
	assert.Equal(t, models.DifficultyAdvanced, InferDifficulty("Deep Dive into Compilers", ""))
	assert.Equal(t, models.DifficultyIntermediate, InferDifficulty("Hands-on Kubernetes", ""))

	// no keyword: fall back to the requested level
	assert.Equal(t, models.DifficultyAdvanced, InferDifficulty("Compilers", "expert"))

	// no keyword and no request: beginner
	assert.Equal(t, models.DifficultyBeginner, InferDifficulty("Compilers", ""))
}

func TestExtractTags(t *testing.T) {
	tags := ExtractTags("Learn Python and Machine Learning from scratch", []string{"python", "golang"})
	assert.Contains(t, tags, "python")
	assert.Contains(t, tags, "machine learning")
	assert.NotContains(t, tags, "golang")

	// nothing matches: echo the query tags back
	tags = ExtractTags("Watercolor for everyone", []string{"painting"})
	assert.Equal(t, []string{"painting"}, tags)
}

func TestFinalize(t *testing.T) {
	c := models.Course{
		Title:       "  Practical Python  ",
		Description: "hands-on exercises",
		Provider:    ProviderUdemy,
		URL:         "https://udemy.com/practical-python",
	}
	ok := Finalize(&c, []string{"python"}, "beginner")
	require.True(t, ok)

	assert.Equal(t, "Practical Python", c.Title)
	assert.Equal(t, models.DifficultyIntermediate, c.Difficulty) // "hands-on" keyword
	assert.Contains(t, c.Tags, "python")
	assert.NotZero(t, c.Rating)
	assert.NotEmpty(t, c.Duration)
	assert.Positive(t, c.ID)
	assert.Zero(t, c.Progress)
}

func TestFinalizeRejectsEmptyTitle(t *testing.T) {
	c := models.Course{Title: "   "}
	assert.False(t, Finalize(&c, []string{"python"}, "beginner"))
}

func TestFinalizeKeepsExplicitFields(t *testing.T) {
	c := models.Course{
		Title:      "Advanced Rust",
		Difficulty: "expert",
		Rating:     4.9,
		Duration:   "6 weeks",
		Tags:       []string{"rust"},
		Provider:   ProviderCoursera,
	}
	require.True(t, Finalize(&c, []string{"rust"}, "beginner"))

	assert.Equal(t, models.DifficultyAdvanced, c.Difficulty)
	assert.Equal(t, 4.9, c.Rating)
	assert.Equal(t, "6 weeks", c.Duration)
	assert.Equal(t, []string{"rust"}, c.Tags)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "python for beginners", normalizeKey("Python: For  Beginners!"))
	assert.Equal(t, normalizeKey("Intro to Go"), normalizeKey("INTRO-TO-GO"))
	assert.Equal(t, "", normalizeKey("!!!"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Machine Learning", titleCase("machine learning"))
	assert.Equal(t, "Go", titleCase("  go  "))
	assert.Equal(t, "", titleCase(""))
	assert.False(t, strings.Contains(titleCase("data  science"), "  "))
}
