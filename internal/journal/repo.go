package journal

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

func (r *Repo) Create(ctx context.Context, e models.JournalEntry) (*models.JournalEntry, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO journal_entries (user_id, title, content, mood, sentiment_score, sentiment_label)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.UserID, e.Title, e.Content, e.Mood, e.SentimentScore, e.SentimentLabel)
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return r.GetByID(ctx, id, e.UserID)
}

func (r *Repo) Update(ctx context.Context, e models.JournalEntry) (*models.JournalEntry, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE journal_entries
		SET title = ?, content = ?, mood = ?, sentiment_score = ?, sentiment_label = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`, e.Title, e.Content, e.Mood, e.SentimentScore, e.SentimentLabel, e.ID, e.UserID)
	if err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, e.ID, e.UserID)
}

func (r *Repo) GetByID(ctx context.Context, id int64, userID string) (*models.JournalEntry, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, mood, sentiment_score, sentiment_label, created_at, updated_at
		FROM journal_entries
		WHERE id = ? AND user_id = ?
	`, id, userID)

	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return e, nil
}

func (r *Repo) List(ctx context.Context, userID string, limit, offset int) ([]models.JournalEntry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM journal_entries WHERE user_id = ?
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count journal entries: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, title, content, mood, sentiment_score, sentiment_label, created_at, updated_at
		FROM journal_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	out := make([]models.JournalEntry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan journal row: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM journal_entries
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete journal entry: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	var e models.JournalEntry
	var content, mood, label sql.NullString
	var score sql.NullFloat64
	var created, updated time.Time

	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &content, &mood, &score, &label, &created, &updated); err != nil {
		return nil, err
	}

	e.Content = content.String
	e.Mood = mood.String
	if e.Mood != "" {
		e.MoodEmoji = models.MoodEmoji[e.Mood]
	}
	if score.Valid {
		v := score.Float64
		e.SentimentScore = &v
	}
	e.SentimentLabel = label.String
	e.CreatedAt = created
	e.UpdatedAt = updated
	return &e, nil
}
