package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

type stubCatalog struct {
	searchResult    []models.Course
	searchErr       error
	recommendResult []models.Course
	recommendLimit  int
}

func (s *stubCatalog) Search(ctx context.Context, terms []string, difficulty string) ([]models.Course, error) {
	return s.searchResult, s.searchErr
}

func (s *stubCatalog) RecommendByTags(ctx context.Context, interests []string, difficulty string, limit int) ([]models.Course, error) {
	s.recommendLimit = limit
	return s.recommendResult, nil
}

type stubFetcher struct {
	result []models.Course
	calls  int
}

func (s *stubFetcher) FetchRanked(ctx context.Context, tags []string, difficulty string) []models.Course {
	s.calls++
	return s.result
}

func localCourses(n int) []models.Course {
	out := make([]models.Course, n)
	for i := range out {
		out[i] = models.Course{ID: int64(i + 1), Title: fmt.Sprintf("Local %d", i+1)}
	}
	return out
}

func TestRecommendAllSkipsExternalWhenCatalogSuffices(t *testing.T) {
	fetcher := &stubFetcher{result: localCourses(3)}
	svc := NewService(&stubCatalog{searchResult: localCourses(4)}, fetcher, 4, 20)

	got, err := svc.RecommendAll(context.Background(), []string{"go"}, "")
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Zero(t, fetcher.calls)
}

func TestRecommendAllAppendsExternalWhenCatalogShort(t *testing.T) {
	fetcher := &stubFetcher{result: []models.Course{
		{ID: 100, Title: "External A"},
		{ID: 101, Title: "External B"},
	}}
	svc := NewService(&stubCatalog{searchResult: localCourses(2)}, fetcher, 4, 20)

	got, err := svc.RecommendAll(context.Background(), []string{"go"}, "")
	require.NoError(t, err)
	require.Len(t, got, 4)

	// catalog rows first, in catalog order
	assert.Equal(t, "Local 1", got[0].Title)
	assert.Equal(t, "Local 2", got[1].Title)
	assert.Equal(t, "External A", got[2].Title)
	assert.Equal(t, "External B", got[3].Title)
	assert.Equal(t, 1, fetcher.calls)
}

func TestRecommendAllCapsExternalRows(t *testing.T) {
	external := make([]models.Course, 30)
	for i := range external {
		external[i] = models.Course{ID: int64(1000 + i), Title: fmt.Sprintf("External %d", i)}
	}
	svc := NewService(&stubCatalog{}, &stubFetcher{result: external}, 4, 20)

	got, err := svc.RecommendAll(context.Background(), []string{"go"}, "")
	require.NoError(t, err)
	assert.Len(t, got, 20)
	assert.Equal(t, "External 0", got[0].Title)
}

func TestRecommendAllWithoutFetcher(t *testing.T) {
	svc := NewService(&stubCatalog{searchResult: localCourses(1)}, nil, 4, 20)

	got, err := svc.RecommendAll(context.Background(), []string{"go"}, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecommendAllPropagatesCatalogError(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := NewService(&stubCatalog{searchErr: errors.New("db closed")}, fetcher, 4, 20)

	_, err := svc.RecommendAll(context.Background(), []string{"go"}, "")
	require.Error(t, err)
	assert.Zero(t, fetcher.calls)
}

func TestRecommendUsesFixedLimit(t *testing.T) {
	catalog := &stubCatalog{recommendResult: localCourses(2)}
	svc := NewService(catalog, nil, 4, 20)

	got, err := svc.Recommend(context.Background(), []string{"go"}, models.DifficultyBeginner)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 10, catalog.recommendLimit)
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(&stubCatalog{}, nil, 0, -1)
	assert.Equal(t, 4, svc.LocalThreshold)
	assert.Equal(t, 20, svc.ExternalCap)
}
