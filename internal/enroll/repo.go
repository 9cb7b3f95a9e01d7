package enroll

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

// Upsert inserts or updates a user's enrollment in a course.
func (r *Repo) Upsert(ctx context.Context, e models.Enrollment) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO enrollments (user_id, course_id, status, progress, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, course_id) DO UPDATE SET
			status = excluded.status,
			progress = excluded.progress,
			updated_at = CURRENT_TIMESTAMP
	`, e.UserID, e.CourseID, e.Status, e.Progress)
	if err != nil {
		return fmt.Errorf("upsert enrollment: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID string, courseID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM enrollments
		WHERE user_id = ? AND course_id = ?
	`, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("delete enrollment: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) List(ctx context.Context, userID string, status string, limit, offset int) ([]models.Enrollment, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	countSQL := "SELECT COUNT(*) FROM enrollments WHERE user_id = ?"
	listSQL := `
		SELECT user_id, course_id, status, progress, updated_at
		FROM enrollments
		WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		countSQL += " AND status = ?"
		listSQL += " AND status = ?"
		args = append(args, status)
	}
	listSQL += " ORDER BY updated_at DESC LIMIT ? OFFSET ?"

	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, listSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	out := make([]models.Enrollment, 0, limit)
	for rows.Next() {
		var e models.Enrollment
		var updated time.Time
		if err := rows.Scan(&e.UserID, &e.CourseID, &e.Status, &e.Progress, &updated); err != nil {
			return nil, 0, fmt.Errorf("scan enrollment row: %w", err)
		}
		e.UpdatedAt = updated
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, userID string, courseID int64) (*models.Enrollment, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT user_id, course_id, status, progress, updated_at
		FROM enrollments
		WHERE user_id = ? AND course_id = ?
	`, userID, courseID)

	var e models.Enrollment
	var updated time.Time
	if err := row.Scan(&e.UserID, &e.CourseID, &e.Status, &e.Progress, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	e.UpdatedAt = updated
	return &e, nil
}
