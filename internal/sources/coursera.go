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

const courseraAPIBase = "https://api.coursera.org/api/courses.v1"

// Coursera queries the public course catalog API first; when the API yields
// too little it falls back to a table of well-known certificate programs.
type Coursera struct {
	Client *http.Client
	Max    int
}

func NewCoursera() *Coursera {
	return &Coursera{
		Client: &http.Client{Timeout: 15 * time.Second},
		Max:    5,
	}
}

func (s *Coursera) Name() string { return ProviderCoursera }

type courseraResponse struct {
	Elements []struct {
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"elements"`
}

var courseraSpecializations = []struct {
	name  string
	topic string
	level string
}{
	{"Google IT Support", "google", models.DifficultyBeginner},
	{"IBM Data Science", "data science", models.DifficultyIntermediate},
	{"Stanford Machine Learning", "machine learning", models.DifficultyIntermediate},
	{"University of Michigan Python", "python", models.DifficultyBeginner},
	{"Duke University Java Programming", "java", models.DifficultyBeginner},
	{"Johns Hopkins Data Science", "data science", models.DifficultyAdvanced},
}

func (s *Coursera) Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	max := s.Max
	if max <= 0 {
		max = 5
	}

	query := strings.Join(tags, " ") + " " + difficulty
	searchURL := "https://www.coursera.org/search?query=" + url.QueryEscape(strings.Join(tags, " "))

	courses := s.fetchAPI(ctx, query, tags, difficulty, searchURL, max)

	// the live API is flaky without credentials; top up from known programs
	if len(courses) < 3 {
		for _, spec := range courseraSpecializations {
			if len(courses) >= max {
				break
			}
			if !topicMatchesAny(spec.topic, tags) {
				continue
			}
			courses = append(courses, models.Course{
				Title:       spec.name + " Professional Certificate",
				Provider:    ProviderCoursera,
				URL:         "https://www.coursera.org/search?query=" + url.QueryEscape(spec.topic),
				Description: fmt.Sprintf("Professional certificate program in %s. Free to audit, certificate available for a fee.", spec.topic),
				Difficulty:  spec.level,
				Tags:        append([]string{spec.topic}, othersOf(tags, spec.topic)...),
			})
		}
	}

	if len(courses) > max {
		courses = courses[:max]
	}
	return courses, nil
}

func (s *Coursera) fetchAPI(ctx context.Context, query string, tags []string, difficulty, fallbackURL string, max int) []models.Course {
	u, _ := url.Parse(courseraAPIBase)
	q := u.Query()
	q.Set("q", "search")
	q.Set("query", query)
	q.Set("limit", fmt.Sprintf("%d", max))
	q.Set("fields", "slug,name,description")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var decoded courseraResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil
	}

	out := make([]models.Course, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		name := strings.TrimSpace(el.Name)
		if name == "" {
			continue
		}
		courseURL := fallbackURL
		if el.Slug != "" {
			courseURL = "https://www.coursera.org/learn/" + el.Slug
		}
		out = append(out, models.Course{
			Title:       name,
			Provider:    ProviderCoursera,
			URL:         courseURL,
			Description: fmt.Sprintf("Coursera course covering %s at %s level. Available for free audit.", strings.Join(tags, ", "), difficulty),
			Difficulty:  difficulty,
			Tags:        ExtractTags(name+" "+el.Description, tags),
		})
		if len(out) >= max {
			break
		}
	}
	return out
}

// topicMatchesAny reports whether the topic and any query tag contain each
// other, case-insensitively.
func topicMatchesAny(topic string, tags []string) bool {
	topic = strings.ToLower(topic)
	for _, tag := range tags {
		lower := strings.ToLower(strings.TrimSpace(tag))
		if lower == "" {
			continue
		}
		if strings.Contains(lower, topic) || strings.Contains(topic, lower) {
			return true
		}
	}
	return false
}

// othersOf returns up to two query tags that differ from the given topic.
func othersOf(tags []string, topic string) []string {
	var out []string
	for _, tag := range tags {
		if strings.EqualFold(tag, topic) {
			continue
		}
		out = append(out, tag)
		if len(out) == 2 {
			break
		}
	}
	return out
}
