package catalog

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/database"
	"learnhub/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ddl, err := os.ReadFile("../../docs/schema.sql")
	require.NoError(t, err)
	require.NoError(t, database.MigrateSQL(db, string(ddl)))

	return NewRepo(db)
}

func seedCourse(t *testing.T, r *Repo, c models.Course) *models.Course {
	t.Helper()
	saved, err := r.Create(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, saved)
	return saved
}

func TestCreateAndGetByID(t *testing.T) {
	r := newTestRepo(t)

	saved := seedCourse(t, r, models.Course{
		Title:       "Go Basics",
		Description: "A first course in Go",
		URL:         "https://example.com/go",
		Difficulty:  models.DifficultyBeginner,
		Rating:      4.5,
		Provider:    "LearnHub",
		Tags:        []string{"go", "programming"},
	})

	got, err := r.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Go Basics", got.Title)
	assert.Equal(t, 4.5, got.Rating)
	assert.ElementsMatch(t, []string{"go", "programming"}, got.Tags)
}

func TestGetByIDMissing(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateSharedTags(t *testing.T) {
	r := newTestRepo(t)

	a := seedCourse(t, r, models.Course{Title: "A", URL: "u", Difficulty: "beginner", Provider: "X", Tags: []string{"go"}})
	b := seedCourse(t, r, models.Course{Title: "B", URL: "u", Difficulty: "beginner", Provider: "X", Tags: []string{"go", "web"}})

	assert.Equal(t, []string{"go"}, a.Tags)
	assert.ElementsMatch(t, []string{"go", "web"}, b.Tags)

	var tagCount int
	require.NoError(t, r.DB.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&tagCount))
	assert.Equal(t, 2, tagCount)
}

func TestSearchMatchesAnyTermAnyField(t *testing.T) {
	r := newTestRepo(t)

	seedCourse(t, r, models.Course{Title: "Go Basics", URL: "u", Difficulty: "beginner", Provider: "X"})
	seedCourse(t, r, models.Course{Title: "Cooking 101", Description: "nothing about programming languages except python", URL: "u", Difficulty: "beginner", Provider: "X"})
	seedCourse(t, r, models.Course{Title: "Web Apps", URL: "u", Difficulty: "beginner", Provider: "X", Tags: []string{"golang"}})
	seedCourse(t, r, models.Course{Title: "Knitting", URL: "u", Difficulty: "beginner", Provider: "X"})

	got, err := r.Search(context.Background(), []string{"go", "python"}, "")
	require.NoError(t, err)

	titles := make([]string, 0, len(got))
	for _, c := range got {
		titles = append(titles, c.Title)
	}
	assert.ElementsMatch(t, []string{"Go Basics", "Cooking 101", "Web Apps"}, titles)
}

func TestSearchDifficultyFilter(t *testing.T) {
	r := newTestRepo(t)

	seedCourse(t, r, models.Course{Title: "Go Basics", URL: "u", Difficulty: "beginner", Provider: "X"})
	seedCourse(t, r, models.Course{Title: "Go Internals", URL: "u", Difficulty: "advanced", Provider: "X"})

	got, err := r.Search(context.Background(), []string{"go"}, "advanced")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Go Internals", got[0].Title)
}

func TestSearchOrdersByRating(t *testing.T) {
	r := newTestRepo(t)

	seedCourse(t, r, models.Course{Title: "Go Okay", URL: "u", Difficulty: "beginner", Rating: 3.0, Provider: "X"})
	seedCourse(t, r, models.Course{Title: "Go Great", URL: "u", Difficulty: "beginner", Rating: 4.9, Provider: "X"})

	got, err := r.Search(context.Background(), []string{"go"}, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Go Great", got[0].Title)
}

func TestSearchEmptyTerms(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.Search(context.Background(), []string{"  ", ""}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommendByTagsRanksByMatchCount(t *testing.T) {
	r := newTestRepo(t)

	seedCourse(t, r, models.Course{Title: "One Tag", URL: "u", Difficulty: "beginner", Rating: 5.0, Provider: "X", Tags: []string{"python"}})
	seedCourse(t, r, models.Course{Title: "Two Tags", URL: "u", Difficulty: "beginner", Rating: 3.0, Provider: "X", Tags: []string{"python", "data science"}})
	seedCourse(t, r, models.Course{Title: "Wrong Level", URL: "u", Difficulty: "advanced", Rating: 5.0, Provider: "X", Tags: []string{"python"}})

	got, err := r.RecommendByTags(context.Background(), []string{"python", "data science"}, "beginner", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// more matching tags beats higher rating
	assert.Equal(t, "Two Tags", got[0].Title)
	assert.Equal(t, "One Tag", got[1].Title)
}

func TestRecommendByTagsLimit(t *testing.T) {
	r := newTestRepo(t)

	for _, title := range []string{"A", "B", "C"} {
		seedCourse(t, r, models.Course{Title: title, URL: "u", Difficulty: "beginner", Provider: "X", Tags: []string{"go"}})
	}

	got, err := r.RecommendByTags(context.Background(), []string{"go"}, "beginner", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListAndCount(t *testing.T) {
	r := newTestRepo(t)

	seedCourse(t, r, models.Course{Title: "Alpha", URL: "u", Difficulty: "beginner", Provider: "X", Tags: []string{"go"}})
	seedCourse(t, r, models.Course{Title: "Beta", URL: "u", Difficulty: "advanced", Provider: "X", Tags: []string{"rust"}})
	seedCourse(t, r, models.Course{Title: "Gamma", URL: "u", Difficulty: "beginner", Provider: "X", Tags: []string{"go"}})

	q := ListQuery{Tags: []string{"go"}, Limit: 10}
	total, err := r.Count(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	got, err := r.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// listing is alphabetical
	assert.Equal(t, "Alpha", got[0].Title)
	assert.Equal(t, "Gamma", got[1].Title)
}

func TestListPagination(t *testing.T) {
	r := newTestRepo(t)

	for _, title := range []string{"A", "B", "C", "D"} {
		seedCourse(t, r, models.Course{Title: title, URL: "u", Difficulty: "beginner", Provider: "X"})
	}

	page, err := r.List(context.Background(), ListQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "C", page[0].Title)
	assert.Equal(t, "D", page[1].Title)
}

func TestSetRating(t *testing.T) {
	r := newTestRepo(t)

	saved := seedCourse(t, r, models.Course{Title: "Go Basics", URL: "u", Difficulty: "beginner", Rating: 0, Provider: "X"})
	require.NoError(t, r.SetRating(context.Background(), saved.ID, 4.2))

	got, err := r.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4.2, got.Rating)
}

func TestRoadmap(t *testing.T) {
	r := newTestRepo(t)

	saved := seedCourse(t, r, models.Course{Title: "Go Basics", URL: "u", Difficulty: "beginner", Provider: "X"})

	_, err := r.DB.Exec(`INSERT INTO roadmaps (course_id, title, description) VALUES (?, ?, ?)`,
		saved.ID, "Go Path", "step by step")
	require.NoError(t, err)
	_, err = r.DB.Exec(`INSERT INTO roadmap_items (course_id, title, content_type, content_url, position) VALUES
		(?, 'Setup', 'article', 'https://example.com/setup', 2),
		(?, 'Hello World', 'video', NULL, 1)`, saved.ID, saved.ID)
	require.NoError(t, err)

	rm, err := r.Roadmap(context.Background(), saved.ID)
	require.NoError(t, err)
	require.NotNil(t, rm)
	assert.Equal(t, "Go Path", rm.Title)
	require.Len(t, rm.Items, 2)
	// items come back in position order
	assert.Equal(t, "Hello World", rm.Items[0].Title)
	assert.Equal(t, "Setup", rm.Items[1].Title)
}

func TestRoadmapMissing(t *testing.T) {
	r := newTestRepo(t)

	rm, err := r.Roadmap(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, rm)
}
