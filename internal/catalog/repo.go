package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"learnhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

type ListQuery struct {
	Q          string   // keyword search in title/description
	Tags       []string // any-match
	Difficulty string
	Limit      int
	Offset     int
}

const courseColumns = `c.id, c.title, c.description, c.overview, c.url, c.difficulty, c.rating, c.duration, c.provider, c.created_at`

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+courseColumns+`
		FROM courses c
		WHERE c.id = ?
	`, id)

	course, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}

	if err := r.loadTags(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Search runs the hybrid endpoint's authoritative query: case-insensitive
// substring match of any term against title, description, or tag name,
// optionally filtered by difficulty, ordered by rating then recency.
func (r *Repo) Search(ctx context.Context, terms []string, difficulty string) ([]models.Course, error) {
	var where []string
	var args []any

	var termOr []string
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		kw := "%" + term + "%"
		termOr = append(termOr, `(LOWER(c.title) LIKE ? OR LOWER(c.description) LIKE ? OR EXISTS (
			SELECT 1 FROM course_tags ct JOIN tags t ON t.id = ct.tag_id
			WHERE ct.course_id = c.id AND LOWER(t.name) LIKE ?))`)
		args = append(args, kw, kw, kw)
	}
	if len(termOr) == 0 {
		return []models.Course{}, nil
	}
	where = append(where, "("+strings.Join(termOr, " OR ")+")")

	if difficulty != "" {
		where = append(where, "c.difficulty = ?")
		args = append(args, difficulty)
	}

	sqlStr := `SELECT ` + courseColumns + ` FROM courses c WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY c.rating DESC, c.created_at DESC`

	return r.queryCourses(ctx, sqlStr, args...)
}

// RecommendByTags runs the simple endpoint's query: courses holding at least
// one of the interest tags at the requested difficulty, ranked by how many
// tags match, then rating, then recency.
func (r *Repo) RecommendByTags(ctx context.Context, interests []string, difficulty string, limit int) ([]models.Course, error) {
	lowered := make([]string, 0, len(interests))
	for _, in := range interests {
		in = strings.ToLower(strings.TrimSpace(in))
		if in != "" {
			lowered = append(lowered, in)
		}
	}
	if len(lowered) == 0 {
		return []models.Course{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	placeholders := strings.Repeat("?,", len(lowered))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(lowered)+2)
	for _, in := range lowered {
		args = append(args, in)
	}
	args = append(args, difficulty, limit)

	sqlStr := `
		SELECT ` + courseColumns + `, COUNT(DISTINCT t.id) AS matched
		FROM courses c
		JOIN course_tags ct ON ct.course_id = c.id
		JOIN tags t ON t.id = ct.tag_id
		WHERE LOWER(t.name) IN (` + placeholders + `) AND c.difficulty = ?
		GROUP BY c.id
		ORDER BY matched DESC, c.rating DESC, c.created_at DESC
		LIMIT ?`

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("recommend query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Course, 0, limit)
	for rows.Next() {
		var (
			c           models.Course
			description sql.NullString
			overview    sql.NullString
			duration    sql.NullString
			matched     int
		)
		if err := rows.Scan(&c.ID, &c.Title, &description, &overview, &c.URL, &c.Difficulty,
			&c.Rating, &duration, &c.Provider, &c.CreatedAt, &matched); err != nil {
			return nil, fmt.Errorf("recommend scan: %w", err)
		}
		c.Description = description.String
		c.Overview = overview.String
		c.Duration = duration.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	for i := range out {
		if err := r.loadTags(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	var total int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Course, error) {
	sqlStr, args := buildListSQL(q, false)
	out, err := r.queryCourses(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a catalog course with its tags and returns the stored row.
func (r *Repo) Create(ctx context.Context, c models.Course) (*models.Course, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create course: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO courses (title, description, overview, url, difficulty, rating, duration, provider)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Title, c.Description, c.Overview, c.URL, c.Difficulty, c.Rating, c.Duration, c.Provider)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, tag := range c.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tags (name) VALUES (?)`, tag); err != nil {
			return nil, fmt.Errorf("insert tag %q: %w", tag, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO course_tags (course_id, tag_id)
			SELECT ?, id FROM tags WHERE name = ?
		`, id, tag); err != nil {
			return nil, fmt.Errorf("link tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create course: %w", err)
	}
	return r.GetByID(ctx, id)
}

// SetRating updates a course's stored rating; the reviews handler calls this
// with the recomputed average after every write.
func (r *Repo) SetRating(ctx context.Context, courseID int64, rating float64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE courses SET rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, rating, courseID)
	if err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	return nil
}

func (r *Repo) Roadmap(ctx context.Context, courseID int64) (*models.Roadmap, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT course_id, title, description FROM roadmaps WHERE course_id = ?
	`, courseID)

	var rm models.Roadmap
	var description sql.NullString
	if err := row.Scan(&rm.CourseID, &rm.Title, &description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan roadmap: %w", err)
	}
	rm.Description = description.String

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, content_type, content_url, position
		FROM roadmap_items
		WHERE course_id = ?
		ORDER BY position ASC, id ASC
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list roadmap items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.RoadmapItem
		var contentURL sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &item.ContentType, &contentURL, &item.Position); err != nil {
			return nil, fmt.Errorf("scan roadmap item: %w", err)
		}
		item.ContentURL = contentURL.String
		rm.Items = append(rm.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return &rm, nil
}

func (r *Repo) queryCourses(ctx context.Context, sqlStr string, args ...any) ([]models.Course, error) {
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("course query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Course, 0, 16)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("course scan: %w", err)
		}
		out = append(out, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	for i := range out {
		if err := r.loadTags(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		c           models.Course
		description sql.NullString
		overview    sql.NullString
		duration    sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Title, &description, &overview, &c.URL, &c.Difficulty,
		&c.Rating, &duration, &c.Provider, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Description = description.String
	c.Overview = overview.String
	c.Duration = duration.String
	return &c, nil
}

func (r *Repo) loadTags(ctx context.Context, c *models.Course) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.name
		FROM tags t
		JOIN course_tags ct ON ct.tag_id = t.id
		WHERE ct.course_id = ?
		ORDER BY t.name ASC
	`, c.ID)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	c.Tags = make([]string, 0, 4)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		c.Tags = append(c.Tags, name)
	}
	return rows.Err()
}

// buildListSQL builds either COUNT(*) or a SELECT for the public listing.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + courseColumns + ` FROM courses c`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM courses c`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "(LOWER(c.title) LIKE ? OR LOWER(c.description) LIKE ?)")
		kw := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		args = append(args, kw, kw)
	}

	if d := models.NormalizeDifficulty(q.Difficulty); d != "" {
		where = append(where, "c.difficulty = ?")
		args = append(args, d)
	}

	if len(q.Tags) > 0 {
		var tagOr []string
		for _, tag := range q.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			tagOr = append(tagOr, `EXISTS (SELECT 1 FROM course_tags ct JOIN tags t ON t.id = ct.tag_id
				WHERE ct.course_id = c.id AND LOWER(t.name) LIKE ?)`)
			args = append(args, "%"+tag+"%")
		}
		if len(tagOr) > 0 {
			where = append(where, "("+strings.Join(tagOr, " OR ")+")")
		}
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY c.title ASC LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}
