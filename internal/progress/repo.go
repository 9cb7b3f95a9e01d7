package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"learnhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Add appends a snapshot to the history; entries are never updated in place.
func (r *Repo) Add(ctx context.Context, entry models.ProgressEntry) error {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO progress_history (user_id, course_id, percent, at)
		VALUES (?, ?, ?, ?)
	`, entry.UserID, entry.CourseID, entry.Percent, entry.At)
	if err != nil {
		return fmt.Errorf("insert progress history: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID string, courseID int64, limit, offset int) ([]models.ProgressEntry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM progress_history
		WHERE user_id = ? AND course_id = ?
	`, userID, courseID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count progress history: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, course_id, percent, at
		FROM progress_history
		WHERE user_id = ? AND course_id = ?
		ORDER BY at DESC
		LIMIT ? OFFSET ?
	`, userID, courseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list progress history: %w", err)
	}
	defer rows.Close()

	out := make([]models.ProgressEntry, 0, limit)
	for rows.Next() {
		var entry models.ProgressEntry
		var at time.Time

		if err := rows.Scan(&entry.UserID, &entry.CourseID, &entry.Percent, &at); err != nil {
			return nil, 0, fmt.Errorf("scan progress history: %w", err)
		}
		entry.At = at
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows progress history: %w", err)
	}

	return out, total, nil
}
