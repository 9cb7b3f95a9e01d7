package sources

import (
	"sort"
	"strings"

	"learnhub/pkg/models"
)

// Relevance weights. The four signals and their relative ordering are the
// contract; the numbers themselves are tuning.
const (
	weightTagOverlap      = 0.40
	weightDifficultyExact = 0.30
	weightDifficultyNear  = 0.15
	weightTitleRelevance  = 0.10
)

// Provider preference, highest first. Unlisted providers score 0.05.
var providerWeights = map[string]float64{
	ProviderMITOCW:       0.20,
	ProviderCoursera:     0.18,
	ProviderEdX:          0.17,
	ProviderFreeCodeCamp: 0.16,
	ProviderKhanAcademy:  0.15,
	ProviderYouTube:      0.14,
	ProviderCodecademy:   0.13,
	ProviderUdemy:        0.12,
	ProviderClassCentral: 0.10,
}

const defaultProviderWeight = 0.05

// Rank orders candidates by descending relevance to the query. The sort is
// stable: ties keep their input order, so repeated calls with the same input
// produce the same output.
func Rank(courses []models.Course, tags []string, difficulty string) []models.Course {
	type scored struct {
		course models.Course
		score  float64
	}

	items := make([]scored, len(courses))
	for i, c := range courses {
		items[i] = scored{course: c, score: score(c, tags, difficulty)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]models.Course, len(items))
	for i, item := range items {
		out[i] = item.course
	}
	return out
}

func score(c models.Course, tags []string, difficulty string) float64 {
	var total float64

	querySet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		querySet[strings.ToLower(tag)] = struct{}{}
	}

	// tag overlap
	matches := 0
	seen := make(map[string]struct{}, len(c.Tags))
	for _, tag := range c.Tags {
		lower := strings.ToLower(tag)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		if _, ok := querySet[lower]; ok {
			matches++
		}
	}
	if len(tags) > 0 {
		total += float64(matches) / float64(len(tags)) * weightTagOverlap
	}

	// difficulty match with partial credit for adjacent levels
	switch models.DifficultyDistance(c.Difficulty, difficulty) {
	case 0:
		total += weightDifficultyExact
	case 1:
		total += weightDifficultyNear
	}

	// provider preference
	if w, ok := providerWeights[c.Provider]; ok {
		total += w
	} else {
		total += defaultProviderWeight
	}

	// title relevance
	titleLower := strings.ToLower(c.Title)
	titleMatches := 0
	for _, tag := range tags {
		if strings.Contains(titleLower, strings.ToLower(tag)) {
			titleMatches++
		}
	}
	if len(tags) > 0 {
		total += float64(titleMatches) / float64(len(tags)) * weightTitleRelevance
	}

	return total
}
