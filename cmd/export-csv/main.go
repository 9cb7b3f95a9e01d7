package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"learnhub/pkg/database"
)

func main() {
	var (
		coursesOut = flag.String("courses", "data/courses.csv", "output CSV path for courses")
		enrollOut  = flag.String("enrollments", "data/enrollments.csv", "output CSV path for enrollments")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportCourses(ctx, db, *coursesOut); err != nil {
		log.Fatalf("export courses failed: %v", err)
	}
	if err := exportEnrollments(ctx, db, *enrollOut); err != nil {
		log.Fatalf("export enrollments failed: %v", err)
	}

	log.Printf("exported courses to %s and enrollments to %s", *coursesOut, *enrollOut)
}

func exportCourses(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "description", "overview", "url", "difficulty", "rating", "duration", "provider", "tags"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT c.id, c.title, c.description, c.overview, c.url, c.difficulty, c.rating, c.duration, c.provider,
               COALESCE(GROUP_CONCAT(t.name, ';'), '')
        FROM courses c
        LEFT JOIN course_tags ct ON ct.course_id = c.id
        LEFT JOIN tags t ON t.id = ct.tag_id
        GROUP BY c.id
        ORDER BY c.title
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          int64
			title       string
			description sql.NullString
			overview    sql.NullString
			url         string
			difficulty  string
			rating      float64
			duration    sql.NullString
			provider    string
			tags        string
		)

		if err := rows.Scan(&id, &title, &description, &overview, &url, &difficulty, &rating, &duration, &provider, &tags); err != nil {
			return err
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			title,
			description.String,
			overview.String,
			url,
			difficulty,
			strconv.FormatFloat(rating, 'f', 1, 64),
			duration.String,
			provider,
			tags,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportEnrollments(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"user_id", "course_id", "status", "progress", "updated_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT user_id, course_id, status, progress, updated_at
        FROM enrollments
        ORDER BY updated_at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID      string
			courseID    int64
			status      string
			progressPct float64
			updatedAt   sql.NullTime
		)

		if err := rows.Scan(&userID, &courseID, &status, &progressPct, &updatedAt); err != nil {
			return err
		}

		updated := ""
		if updatedAt.Valid {
			updated = updatedAt.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			userID,
			strconv.FormatInt(courseID, 10),
			status,
			strconv.FormatFloat(progressPct, 'f', 1, 64),
			updated,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
