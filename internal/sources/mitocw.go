package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"learnhub/pkg/models"
)

// MITOCW recommends from a table of flagship OpenCourseWare offerings.
// OCW publishes undergraduate and graduate material, so candidates are never
// labeled beginner: intermediate by default, advanced when requested.
type MITOCW struct {
	Max int
}

func NewMITOCW() *MITOCW {
	return &MITOCW{Max: 4}
}

func (s *MITOCW) Name() string { return ProviderMITOCW }

var mitCourses = []struct {
	title  string
	topic1 string
	topic2 string
}{
	{"Introduction to Computer Science and Programming in Python", "computer science", "python"},
	{"Introduction to Machine Learning", "machine learning", "data science"},
	{"Web Development with JavaScript", "web development", "javascript"},
	{"Linear Algebra", "mathematics", "linear algebra"},
	{"Calculus", "mathematics", "calculus"},
	{"Introduction to Algorithms", "computer science", "algorithms"},
	{"Introduction to Electrical Engineering and Computer Science", "electrical engineering", "computer science"},
}

func (s *MITOCW) Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	max := s.Max
	if max <= 0 {
		max = 4
	}

	level := models.DifficultyIntermediate
	if models.NormalizeDifficulty(difficulty) == models.DifficultyAdvanced {
		level = models.DifficultyAdvanced
	}

	var out []models.Course
	for _, mc := range mitCourses {
		if len(out) >= max {
			break
		}
		if !topicMatchesAny(mc.topic1, tags) && !topicMatchesAny(mc.topic2, tags) {
			continue
		}
		courseTags := []string{mc.topic1, mc.topic2}
		for _, tag := range tags {
			lower := strings.ToLower(tag)
			if lower != mc.topic1 && lower != mc.topic2 {
				courseTags = append(courseTags, tag)
				break
			}
		}
		out = append(out, models.Course{
			Title:       mc.title,
			Provider:    ProviderMITOCW,
			URL:         "https://ocw.mit.edu/search/?q=" + url.QueryEscape(mc.topic1),
			Description: fmt.Sprintf("MIT undergraduate/graduate level course in %s. Includes lecture videos, notes, and problem sets.", mc.topic1),
			Difficulty:  level,
			Tags:        courseTags,
		})
	}
	return out, nil
}
