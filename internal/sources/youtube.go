package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learnhub/pkg/models"
)

// YouTube surfaces long-form course videos. Without API credentials the
// result page cannot be parsed reliably, so the adapter verifies the search
// is reachable and returns deep links into it, one per query tag.
type YouTube struct {
	Client *http.Client
	Max    int
}

func NewYouTube() *YouTube {
	return &YouTube{
		Client: &http.Client{Timeout: 12 * time.Second},
		Max:    3,
	}
}

func (s *YouTube) Name() string { return ProviderYouTube }

func (s *YouTube) Fetch(ctx context.Context, tags []string, difficulty string) ([]models.Course, error) {
	query := strings.Join(tags, " ") + " " + difficulty + " course tutorial"
	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: request: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube: status %d", resp.StatusCode)
	}

	max := s.Max
	if max <= 0 {
		max = 3
	}

	out := make([]models.Course, 0, max)
	for _, tag := range tags {
		if len(out) >= max {
			break
		}
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tagQuery := url.QueryEscape(tag + " " + difficulty + " course")
		out = append(out, models.Course{
			Title:       fmt.Sprintf("%s Full Course Tutorial", titleCase(tag)),
			Provider:    ProviderYouTube,
			URL:         "https://www.youtube.com/results?search_query=" + tagQuery,
			Description: fmt.Sprintf("Comprehensive %s level video course covering %s.", difficulty, strings.Join(tags, ", ")),
			Difficulty:  difficulty,
			Tags:        tags,
		})
	}
	return out, nil
}
