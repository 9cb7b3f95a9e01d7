package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"learnhub/pkg/models"
)

// Udemy has no open catalog API, so this adapter works entirely from a table
// of widely available free courses keyed by category.
type Udemy struct {
	Max int
}

func NewUdemy() *Udemy {
	return &Udemy{Max: 4}
}

func (s *Udemy) Name() string { return ProviderUdemy }

var udemyTemplates = map[string][]struct {
	title string
	desc  string
}{
	"python": {
		{"Learn Python Programming Masterclass", "Complete Python bootcamp from zero to hero"},
		{"Python for Beginners", "Start your Python journey with hands-on projects"},
	},
	"javascript": {
		{"JavaScript Essentials", "Master JavaScript fundamentals"},
		{"Modern JavaScript Development", "ES6+ features and modern practices"},
	},
	"machine learning": {
		{"Machine Learning A-Z", "Complete ML course with Python"},
		{"Introduction to Machine Learning", "ML basics for beginners"},
	},
	"web development": {
		{"Complete Web Development Bootcamp", "Full-stack web development"},
		{"HTML, CSS, JavaScript Course", "Front-end development essentials"},
	},
	"react": {
		{"React - The Complete Guide", "Master React.js development"},
		{"React for Beginners", "Start building React applications"},
	},
}

func (s *Udemy) Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	max := s.Max
	if max <= 0 {
		max = 4
	}

	var out []models.Course
	for _, tag := range tags {
		lower := strings.ToLower(strings.TrimSpace(tag))
		if lower == "" {
			continue
		}
		for category, templates := range udemyTemplates {
			if !strings.Contains(lower, category) && !strings.Contains(category, lower) {
				continue
			}
			for _, tpl := range templates {
				if len(out) >= max {
					return out, nil
				}
				out = append(out, models.Course{
					Title:       tpl.title,
					Provider:    ProviderUdemy,
					URL:         udemySearchURL(tag),
					Description: tpl.desc + ". Free course available on Udemy.",
					Difficulty:  difficulty,
					Tags:        append([]string{tag}, othersOf(tags, tag)...),
				})
			}
		}
	}

	// nothing matched the table: offer a generic search per tag
	if len(out) == 0 {
		for i, tag := range tags {
			if i >= 3 || len(out) >= max {
				break
			}
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			out = append(out, models.Course{
				Title:       fmt.Sprintf("Complete %s Course", titleCase(tag)),
				Provider:    ProviderUdemy,
				URL:         udemySearchURL(tag),
				Description: fmt.Sprintf("Comprehensive %s level course covering %s with practical examples and projects.", difficulty, tag),
				Difficulty:  difficulty,
				Tags:        append([]string{tag}, othersOf(tags, tag)...),
			})
		}
	}

	return out, nil
}

func udemySearchURL(tag string) string {
	return "https://www.udemy.com/courses/search/?q=" + url.QueryEscape(tag) + "&price=price-free"
}
