package enroll

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

func TestUpsertInsertsThenUpdates(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, models.Enrollment{
		UserID: "u-1", CourseID: 10, Status: "enrolled", Progress: 0,
	}))

	got, err := r.Get(ctx, "u-1", 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "enrolled", got.Status)

	require.NoError(t, r.Upsert(ctx, models.Enrollment{
		UserID: "u-1", CourseID: 10, Status: "in_progress", Progress: 40,
	}))

	got, err = r.Get(ctx, "u-1", 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "in_progress", got.Status)
	assert.Equal(t, 40.0, got.Progress)

	// still a single row
	var n int
	require.NoError(t, r.DB.QueryRow(`SELECT COUNT(*) FROM enrollments`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestGetMissing(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.Get(context.Background(), "u-1", 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, models.Enrollment{UserID: "u-1", CourseID: 10, Status: "enrolled"}))

	removed, err := r.Delete(ctx, "u-1", 10)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Delete(ctx, "u-1", 10)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListFiltersByStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, models.Enrollment{UserID: "u-1", CourseID: 1, Status: "enrolled"}))
	require.NoError(t, r.Upsert(ctx, models.Enrollment{UserID: "u-1", CourseID: 2, Status: "completed", Progress: 100}))
	require.NoError(t, r.Upsert(ctx, models.Enrollment{UserID: "u-2", CourseID: 1, Status: "enrolled"}))

	all, total, err := r.List(ctx, "u-1", "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	done, total, err := r.List(ctx, "u-1", "completed", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, done, 1)
	assert.Equal(t, int64(2), done[0].CourseID)
}

func TestListPagination(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, r.Upsert(ctx, models.Enrollment{UserID: "u-1", CourseID: i, Status: "enrolled"}))
	}

	page, total, err := r.List(ctx, "u-1", "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)

	rest, _, err := r.List(ctx, "u-1", "", 100, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
