package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"learnhub/pkg/models"
)

// ClassCentral is an aggregator of MOOC listings; the adapter generates deep
// links into its catalog for the leading query tags.
type ClassCentral struct {
	Max int
}

func NewClassCentral() *ClassCentral {
	return &ClassCentral{Max: 4}
}

func (s *ClassCentral) Name() string { return ProviderClassCentral }

var classCentralPartners = []string{"edX", "FutureLearn"}

func (s *ClassCentral) Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	max := s.Max
	if max <= 0 {
		max = 4
	}

	level := models.NormalizeDifficulty(difficulty)
	if level == "" {
		level = models.DifficultyBeginner
	}

	var out []models.Course
	for i, tag := range tags {
		if i >= 2 || len(out) >= max {
			break
		}
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		slug := strings.ReplaceAll(strings.ToLower(tag), " ", "-") + "-" + level
		for _, partner := range classCentralPartners {
			if len(out) >= max {
				break
			}
			out = append(out, models.Course{
				Title:       fmt.Sprintf("%s %s Course on %s", titleCase(tag), titleCase(level), partner),
				Provider:    ProviderClassCentral,
				URL:         "https://www.classcentral.com/course/" + url.PathEscape(slug),
				Description: fmt.Sprintf("%s level course on %s offered through %s. Aggregated listing with reviews and syllabus.", titleCase(level), tag, partner),
				Difficulty:  level,
				Tags:        append([]string{tag}, othersOf(tags, tag)...),
			})
		}
	}
	return out, nil
}
