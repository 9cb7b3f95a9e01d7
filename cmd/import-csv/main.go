package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"learnhub/pkg/database"
)

func main() {
	var (
		coursesIn = flag.String("courses", "data/courses.csv", "input CSV path for courses")
		enrollIn  = flag.String("enrollments", "data/enrollments.csv", "input CSV path for enrollments")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := importCourses(ctx, db, *coursesIn); err != nil {
		log.Fatalf("import courses failed: %v", err)
	}
	if err := importEnrollments(ctx, db, *enrollIn); err != nil {
		log.Fatalf("import enrollments failed: %v", err)
	}

	log.Printf("imported courses from %s and enrollments from %s", *coursesIn, *enrollIn)
}

func importCourses(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO courses (id, title, description, overview, url, difficulty, rating, duration, provider)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  description = excluded.description,
		  overview = excluded.overview,
		  url = excluded.url,
		  difficulty = excluded.difficulty,
		  rating = excluded.rating,
		  duration = excluded.duration,
		  provider = excluded.provider,
		  updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		idRaw := valueAt(header, row, "id")
		title := valueAt(header, row, "title")
		if idRaw == "" || title == "" {
			continue
		}
		id, err := strconv.ParseInt(idRaw, 10, 64)
		if err != nil {
			return fmt.Errorf("parse id %q: %w", idRaw, err)
		}

		rating := 0.0
		if raw := valueAt(header, row, "rating"); raw != "" {
			rating, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("parse rating for %d: %w", id, err)
			}
		}

		difficulty := valueAt(header, row, "difficulty")
		if difficulty == "" {
			difficulty = "beginner"
		}
		provider := valueAt(header, row, "provider")
		if provider == "" {
			provider = "LearnHub"
		}

		if _, err := stmt.ExecContext(
			ctx,
			id,
			title,
			valueAt(header, row, "description"),
			valueAt(header, row, "overview"),
			valueAt(header, row, "url"),
			difficulty,
			rating,
			valueAt(header, row, "duration"),
			provider,
		); err != nil {
			return err
		}

		if err := importTags(ctx, db, id, valueAt(header, row, "tags")); err != nil {
			return fmt.Errorf("import tags for %d: %w", id, err)
		}
	}

	return nil
}

// tags come as a semicolon-separated list in one CSV cell
func importTags(ctx context.Context, db *sql.DB, courseID int64, raw string) error {
	if raw == "" {
		return nil
	}
	for _, name := range strings.Split(raw, ";") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO tags (name) VALUES (?)`, name); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, `
			INSERT OR IGNORE INTO course_tags (course_id, tag_id)
			SELECT ?, id FROM tags WHERE name = ?
		`, courseID, name); err != nil {
			return err
		}
	}
	return nil
}

func importEnrollments(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO enrollments (user_id, course_id, status, progress, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, course_id) DO UPDATE SET
			status = excluded.status,
			progress = excluded.progress,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		userID := valueAt(header, row, "user_id")
		courseRaw := valueAt(header, row, "course_id")
		if userID == "" || courseRaw == "" {
			continue
		}
		courseID, err := strconv.ParseInt(courseRaw, 10, 64)
		if err != nil {
			return fmt.Errorf("parse course_id for %s: %w", userID, err)
		}

		progressPct := 0.0
		if raw := valueAt(header, row, "progress"); raw != "" {
			progressPct, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("parse progress for %s/%d: %w", userID, courseID, err)
			}
		}

		updatedAt, err := parseTime(valueAt(header, row, "updated_at"))
		if err != nil {
			return fmt.Errorf("parse updated_at for %s/%d: %w", userID, courseID, err)
		}

		status := valueAt(header, row, "status")
		if status == "" {
			status = "enrolled"
		}

		if _, err := stmt.ExecContext(ctx, userID, courseID, status, progressPct, updatedAt); err != nil {
			return err
		}
	}

	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseTime(raw string) (sql.NullTime, error) {
	if raw == "" {
		return sql.NullTime{Time: time.Now().UTC(), Valid: true}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}
