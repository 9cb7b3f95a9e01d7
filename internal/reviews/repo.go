package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"learnhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, userID string, courseID int64, rating int, text string) (*models.Review, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (user_id, course_id, rating, text)
		VALUES (?, ?, ?, ?)
	`, userID, courseID, rating, text)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, course_id, rating, text, timestamp
		FROM reviews
		WHERE id = ?
	`, id)

	var review models.Review
	var text sql.NullString
	var ts time.Time
	if err := row.Scan(&review.ID, &review.UserID, &review.CourseID, &review.Rating, &text, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	review.Text = text.String
	review.Timestamp = ts
	return &review, nil
}

func (r *Repo) ListByCourse(ctx context.Context, courseID int64, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, course_id, rating, text, timestamp
		FROM reviews
		WHERE course_id = ?
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?
	`, courseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, limit)
	for rows.Next() {
		var review models.Review
		var text sql.NullString
		var ts time.Time

		if err := rows.Scan(&review.ID, &review.UserID, &review.CourseID, &review.Rating, &text, &ts); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}

		review.Text = text.String
		review.Timestamp = ts
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, int64, error) {
	var courseID int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT course_id FROM reviews WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("find review: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM reviews
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, 0, fmt.Errorf("delete review: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, courseID, nil
}

// AverageForCourse returns the rounded mean rating, 0 when no reviews exist.
func (r *Repo) AverageForCourse(ctx context.Context, courseID int64) (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, `
		SELECT AVG(rating) FROM reviews WHERE course_id = ?
	`, courseID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return math.Round(avg.Float64*10) / 10, nil
}
