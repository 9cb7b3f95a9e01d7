package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

type stubSource struct {
	name    string
	courses []models.Course
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.courses, nil
}

func TestFetchRankedMergesAllSources(t *testing.T) {
	a := NewAggregator(
		&stubSource{name: "one", courses: []models.Course{
			{Title: "Go Basics", Provider: ProviderYouTube, URL: "https://a/1", Tags: []string{"go"}},
		}},
		&stubSource{name: "two", courses: []models.Course{
			{Title: "Go Patterns", Provider: ProviderUdemy, URL: "https://b/1", Tags: []string{"go"}},
		}},
	)

	got := a.FetchRanked(context.Background(), []string{"go"}, models.DifficultyBeginner)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Positive(t, c.ID)
		assert.NotZero(t, c.Rating)
	}
}

func TestFetchRankedSwallowsSourceErrors(t *testing.T) {
	broken := &stubSource{name: "broken", err: errors.New("upstream down")}
	healthy := &stubSource{name: "healthy", courses: []models.Course{
		{Title: "Go Basics", Provider: ProviderYouTube, URL: "https://a/1", Tags: []string{"go"}},
	}}
	a := NewAggregator(broken, healthy)

	got := a.FetchRanked(context.Background(), []string{"go"}, models.DifficultyBeginner)
	require.Len(t, got, 1)
	assert.Equal(t, "Go Basics", got[0].Title)
	assert.Equal(t, 1, broken.calls)
}

func TestFetchRankedDropsDuplicateTitles(t *testing.T) {
	a := NewAggregator(
		&stubSource{name: "one", courses: []models.Course{
			{Title: "Python: For Beginners!", Provider: ProviderYouTube, URL: "https://a/1", Tags: []string{"python"}},
		}},
		&stubSource{name: "two", courses: []models.Course{
			{Title: "python for  beginners", Provider: ProviderUdemy, URL: "https://b/1", Tags: []string{"python"}},
		}},
	)

	got := a.FetchRanked(context.Background(), []string{"python"}, models.DifficultyBeginner)
	require.Len(t, got, 1)
	// first registered source wins the dedup
	assert.Equal(t, ProviderYouTube, got[0].Provider)
}

func TestFetchRankedEmptyWithoutSources(t *testing.T) {
	a := NewAggregator()
	got := a.FetchRanked(context.Background(), []string{"go"}, models.DifficultyBeginner)
	assert.Empty(t, got)
}

func TestDedupe(t *testing.T) {
	in := []models.Course{
		{Title: "Intro to Go"},
		{Title: "INTRO-TO-GO"},
		{Title: "Advanced Go"},
		{Title: "!!!"},
	}

	got := Dedupe(in)
	require.Len(t, got, 2)
	assert.Equal(t, "Intro to Go", got[0].Title)
	assert.Equal(t, "Advanced Go", got[1].Title)
}
