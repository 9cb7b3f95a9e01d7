package sources

import (
	"context"
	"log"
	"sync"

	"learnhub/pkg/models"
)

// Aggregator fans a query out to every registered source and turns the raw
// results into a single ranked candidate list.
type Aggregator struct {
	Sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{Sources: sources}
}

// FetchRanked runs the full external pipeline: fetch from every source,
// finalize each candidate, drop duplicate titles, rank against the query.
//
// A failing source contributes nothing; it never aborts the aggregate
// request. The result is deterministic for a fixed set of source responses:
// sources run concurrently but their results are concatenated in
// registration order before dedup.
func (a *Aggregator) FetchRanked(ctx context.Context, tags []string, difficulty string) []models.Course {
	perSource := make([][]models.Course, len(a.Sources))

	var wg sync.WaitGroup
	for i, src := range a.Sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			courses, err := src.Fetch(ctx, tags, difficulty)
			if err != nil {
				log.Printf("[sources] %s error: %v", src.Name(), err)
				// keep going: one broken provider should not kill the request
				return
			}
			perSource[i] = courses
		}(i, src)
	}
	wg.Wait()

	var all []models.Course
	for _, courses := range perSource {
		for _, c := range courses {
			if Finalize(&c, tags, difficulty) {
				all = append(all, c)
			}
		}
	}

	return Rank(Dedupe(all), tags, difficulty)
}

// Dedupe drops candidates whose normalized title was already seen, keeping
// the first occurrence and the remaining relative order.
func Dedupe(courses []models.Course) []models.Course {
	seen := make(map[string]struct{}, len(courses))
	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		key := normalizeKey(c.Title)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
