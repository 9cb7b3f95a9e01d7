package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnhub/internal/sources"
	"learnhub/pkg/database"
)

func main() {
	var (
		outPath = flag.String("out", "data/mirror.json", "output JSON path")
		limit   = flag.Int("limit", 200, "how many courses to export")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.title, c.description, c.url, c.difficulty, c.duration, c.provider,
		       COALESCE(GROUP_CONCAT(t.name, ';'), '')
		FROM courses c
		LEFT JOIN course_tags ct ON ct.course_id = c.id
		LEFT JOIN tags t ON t.id = ct.tag_id
		GROUP BY c.id
		ORDER BY c.title
		LIMIT ?
	`, *limit)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	defer rows.Close()

	var out []sources.MirrorCourse
	for rows.Next() {
		var (
			id       int64
			title    string
			desc     sql.NullString
			url      string
			level    string
			duration sql.NullString
			provider string
			tags     string
		)

		if err := rows.Scan(&id, &title, &desc, &url, &level, &duration, &provider, &tags); err != nil {
			log.Fatalf("scan failed: %v", err)
		}

		var topics []string
		for _, t := range strings.Split(tags, ";") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}

		out = append(out, sources.MirrorCourse{
			Title:    title,
			Provider: provider,
			URL:      url,
			Summary:  desc.String,
			Level:    level,
			Topics:   topics,
			Duration: duration.String,
		})
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("rows error: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("mkdir failed: %v", err)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal failed: %v", err)
	}

	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}

	log.Printf("exported %d courses to %s", len(out), *outPath)
}
