package recommend

import (
	"context"
	"log"

	"learnhub/pkg/models"
)

// Catalog is the authoritative course store the service consults first.
type Catalog interface {
	Search(ctx context.Context, terms []string, difficulty string) ([]models.Course, error)
	RecommendByTags(ctx context.Context, interests []string, difficulty string, limit int) ([]models.Course, error)
}

// Fetcher produces ranked external candidates. *sources.Aggregator
// implements it.
type Fetcher interface {
	FetchRanked(ctx context.Context, tags []string, difficulty string) []models.Course
}

// Service merges authoritative catalog results with externally sourced
// candidates. Catalog rows always come first and are never reordered;
// external rows only fill in when the catalog comes up short.
type Service struct {
	Catalog        Catalog
	Fetcher        Fetcher
	LocalThreshold int
	ExternalCap    int
}

func NewService(catalog Catalog, fetcher Fetcher, threshold, cap int) *Service {
	if threshold <= 0 {
		threshold = 4
	}
	if cap <= 0 {
		cap = 20
	}
	return &Service{
		Catalog:        catalog,
		Fetcher:        fetcher,
		LocalThreshold: threshold,
		ExternalCap:    cap,
	}
}

// RecommendAll searches the catalog and, when fewer than LocalThreshold rows
// match, appends up to ExternalCap ranked external candidates. The external
// stage can only add rows; a fetch that yields nothing degrades the response
// to catalog-only.
func (s *Service) RecommendAll(ctx context.Context, interests []string, difficulty string) ([]models.Course, error) {
	local, err := s.Catalog.Search(ctx, interests, difficulty)
	if err != nil {
		return nil, err
	}

	if len(local) >= s.LocalThreshold || s.Fetcher == nil {
		return local, nil
	}

	external := s.Fetcher.FetchRanked(ctx, interests, difficulty)
	if len(external) > s.ExternalCap {
		external = external[:s.ExternalCap]
	}
	if len(external) > 0 {
		log.Printf("[recommend] %d catalog + %d external for %v", len(local), len(external), interests)
	}
	return append(local, external...), nil
}

// Recommend is the catalog-only ranking by matching tag count.
func (s *Service) Recommend(ctx context.Context, interests []string, difficulty string) ([]models.Course, error) {
	return s.Catalog.RecommendByTags(ctx, interests, difficulty, 10)
}

// Search runs a plain catalog substring search, one term per word.
func (s *Service) Search(ctx context.Context, terms []string, difficulty string) ([]models.Course, error) {
	return s.Catalog.Search(ctx, terms, difficulty)
}
