package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learnhub/pkg/models"
)

// FreePlatforms covers the open learning platforms that publish full course
// catalogs for free. It normally works from a built-in table; when MirrorURL
// is set it fetches a locally hosted catalog mirror instead (the JSON served
// by cmd/mirror-server).
type FreePlatforms struct {
	MirrorURL string
	Client    *http.Client
	PerSite   int
}

func NewFreePlatforms(mirrorURL string) *FreePlatforms {
	return &FreePlatforms{
		MirrorURL: mirrorURL,
		Client:    &http.Client{Timeout: 10 * time.Second},
		PerSite:   2,
	}
}

func (s *FreePlatforms) Name() string { return "Free Platforms" }

type freePlatform struct {
	name        string
	specialties []string
	baseURL     string
	courses     []struct {
		title  string
		topic1 string
		topic2 string
	}
}

var freePlatformTable = []freePlatform{
	{
		name:        ProviderKhanAcademy,
		specialties: []string{"mathematics", "science", "computer science", "programming"},
		baseURL:     "https://www.khanacademy.org",
		courses: []struct{ title, topic1, topic2 string }{
			{"Intro to Programming", "javascript", "computer science"},
			{"Computer Science Principles", "programming", "computer science"},
			{"Calculus", "mathematics", "calculus"},
			{"Statistics", "mathematics", "statistics"},
		},
	},
	{
		name:        ProviderFreeCodeCamp,
		specialties: []string{"web development", "javascript", "python", "programming"},
		baseURL:     "https://www.freecodecamp.org",
		courses: []struct{ title, topic1, topic2 string }{
			{"Responsive Web Design", "web development", "html"},
			{"JavaScript Algorithms and Data Structures", "javascript", "programming"},
			{"Front End Development Libraries", "react", "web development"},
			{"Python for Everybody", "python", "programming"},
			{"Machine Learning with Python", "machine learning", "python"},
		},
	},
	{
		name:        ProviderCodecademy,
		specialties: []string{"programming", "web development", "python", "javascript"},
		baseURL:     "https://www.codecademy.com",
		courses: []struct{ title, topic1, topic2 string }{
			{"Learn Python 3", "python", "programming"},
			{"Learn JavaScript", "javascript", "web development"},
			{"Learn HTML & CSS", "web development", "html"},
			{"Learn React", "react", "javascript"},
		},
	},
	{
		name:        ProviderEdX,
		specialties: []string{"computer science", "data science", "machine learning", "programming"},
		baseURL:     "https://www.edx.org",
		courses: []struct{ title, topic1, topic2 string }{
			{"Introduction to Computer Science", "computer science", "programming"},
			{"Machine Learning Fundamentals", "machine learning", "data science"},
			{"Python Programming", "python", "programming"},
			{"Web Development Basics", "web development", "html"},
		},
	},
}

func (s *FreePlatforms) Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	if s.MirrorURL != "" {
		return s.fetchMirror(ctx, tags, difficulty)
	}
	return s.fromTable(tags, difficulty), nil
}

func (s *FreePlatforms) fromTable(tags []string, difficulty string) []models.Course {
	perSite := s.PerSite
	if perSite <= 0 {
		perSite = 2
	}

	var out []models.Course
	for _, platform := range freePlatformTable {
		added := 0
	tagLoop:
		for _, tag := range tags {
			lower := strings.ToLower(strings.TrimSpace(tag))
			if lower == "" || !specialtyMatches(platform.specialties, lower) {
				continue
			}
			for _, course := range platform.courses {
				if !tagTouchesTopic(lower, course.topic1) && !tagTouchesTopic(lower, course.topic2) {
					continue
				}
				courseTags := []string{course.topic1, course.topic2}
				for _, t := range tags {
					tl := strings.ToLower(t)
					if tl != course.topic1 && tl != course.topic2 {
						courseTags = append(courseTags, t)
						break
					}
				}
				out = append(out, models.Course{
					Title:       course.title,
					Provider:    platform.name,
					URL:         platform.baseURL + "/search?q=" + url.QueryEscape(tag),
					Description: fmt.Sprintf("Free %s level course in %s from %s. Includes interactive exercises and projects.", difficulty, course.topic1, platform.name),
					Difficulty:  difficulty,
					Tags:        courseTags,
				})
				added++
				if added >= perSite {
					break tagLoop
				}
			}
			// one matching tag per platform is enough; move on to avoid
			// duplicate entries from overlapping specialties
			if added > 0 {
				break
			}
		}
	}
	return out
}

// MirrorCourse is the JSON shape served by cmd/mirror-server.
type MirrorCourse struct {
	Title    string   `json:"title"`
	Provider string   `json:"provider"`
	URL      string   `json:"url"`
	Summary  string   `json:"summary"`
	Level    string   `json:"level"`
	Topics   []string `json:"topics"`
	Duration string   `json:"duration"`
}

func (s *FreePlatforms) fetchMirror(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.MirrorURL+"/courses", nil)
	if err != nil {
		return nil, fmt.Errorf("free platforms: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("free platforms: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("free platforms: status %d", resp.StatusCode)
	}

	var raw []MirrorCourse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("free platforms: decode json: %w", err)
	}

	perSite := s.PerSite
	if perSite <= 0 {
		perSite = 2
	}
	max := perSite * 2

	out := make([]models.Course, 0, max)
	for _, mc := range raw {
		if mc.Title == "" {
			continue
		}
		matched := false
		for _, tag := range tags {
			lower := strings.ToLower(tag)
			for _, topic := range mc.Topics {
				if tagTouchesTopic(lower, strings.ToLower(topic)) {
					matched = true
					break
				}
			}
			if matched || strings.Contains(strings.ToLower(mc.Title), lower) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		out = append(out, models.Course{
			Title:       mc.Title,
			Provider:    mc.Provider,
			URL:         mc.URL,
			Description: mc.Summary,
			Difficulty:  models.NormalizeDifficulty(mc.Level),
			Tags:        mc.Topics,
			Duration:    mc.Duration,
		})
		if len(out) >= max {
			break
		}
	}
	return out, nil
}

func specialtyMatches(specialties []string, tag string) bool {
	for _, spec := range specialties {
		if strings.Contains(tag, spec) || strings.Contains(spec, tag) {
			return true
		}
	}
	return false
}

func tagTouchesTopic(tag, topic string) bool {
	return strings.Contains(tag, topic) || strings.Contains(topic, tag)
}
