package sources

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"learnhub/pkg/models"
)

// Per-provider base ratings used when a provider supplies no rating of its
// own. The ordering mirrors the provider preference table in rank.go.
var baseRatings = map[string]float64{
	ProviderMITOCW:       4.8,
	ProviderCoursera:     4.6,
	ProviderEdX:          4.5,
	ProviderFreeCodeCamp: 4.4,
	ProviderKhanAcademy:  4.3,
	ProviderYouTube:      4.2,
	ProviderCodecademy:   4.1,
	ProviderUdemy:        4.0,
	ProviderFutureLearn:  3.9,
	ProviderClassCentral: 3.8,
}

const defaultBaseRating = 3.5

// Rough effort estimates per topic, in hours, before the difficulty
// multiplier is applied.
var topicBaseHours = map[string]int{
	"machine learning": 60,
	"data science":     50,
	"computer science": 45,
	"web development":  40,
	"algorithms":       40,
	"mathematics":      35,
	"python":           30,
	"javascript":       30,
	"java":             30,
	"react":            25,
	"html":             15,
}

const defaultBaseHours = 20

var difficultyKeywords = map[string][]string{
	models.DifficultyBeginner:     {"beginner", "basic", "intro", "introduction", "fundamentals", "getting started"},
	models.DifficultyIntermediate: {"intermediate", "advanced beginner", "practical", "hands-on"},
	models.DifficultyAdvanced:     {"advanced", "expert", "professional", "master", "deep dive"},
}

var commonTags = []string{
	"python", "javascript", "java", "machine learning", "data science",
	"web development", "ai", "programming", "software", "computer science",
}

// Finalize fills the synthesized fields of an externally sourced candidate:
// deterministic ID, rating, duration, difficulty, tags. Candidates with an
// empty title are rejected.
func Finalize(c *models.Course, queryTags []string, difficulty string) bool {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return false
	}

	if models.NormalizeDifficulty(c.Difficulty) == "" {
		c.Difficulty = InferDifficulty(c.Title+" "+c.Description, difficulty)
	} else {
		c.Difficulty = models.NormalizeDifficulty(c.Difficulty)
	}

	if len(c.Tags) == 0 {
		c.Tags = ExtractTags(c.Title+" "+c.Description, queryTags)
	}

	if c.Rating == 0 {
		c.Rating = SynthesizeRating(c.Provider, c.Difficulty)
	}
	if c.Duration == "" {
		c.Duration = SynthesizeDuration(c.Tags, c.Difficulty)
	}
	c.Progress = 0
	c.ID = CourseID(c.Title, c.Provider, c.URL)
	return true
}

// CourseID derives a stable non-negative identifier from the fields that
// define an external candidate's identity, so re-fetching the same course
// yields the same ID across calls.
func CourseID(title, provider, url string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(title))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(provider))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(url))
	return int64(h.Sum64() & math.MaxInt64)
}

// SynthesizeRating estimates a rating for providers that publish none:
// the provider's base rating nudged by difficulty, clamped to [1, 5] and
// rounded to one decimal.
func SynthesizeRating(provider, difficulty string) float64 {
	base, ok := baseRatings[provider]
	if !ok {
		base = defaultBaseRating
	}

	switch difficulty {
	case models.DifficultyBeginner:
		base -= 0.1
	case models.DifficultyAdvanced:
		base += 0.1
	}

	if base < 1.0 {
		base = 1.0
	}
	if base > 5.0 {
		base = 5.0
	}
	return math.Round(base*10) / 10
}

// SynthesizeDuration estimates total effort from topic complexity and
// difficulty. Short estimates render as hours, longer ones as weeks assuming
// ten hours of study a week.
func SynthesizeDuration(tags []string, difficulty string) string {
	hours := defaultBaseHours
	for _, tag := range tags {
		if base, ok := topicBaseHours[strings.ToLower(strings.TrimSpace(tag))]; ok && base > hours {
			hours = base
		}
	}

	switch difficulty {
	case models.DifficultyIntermediate:
		hours = hours * 3 / 2
	case models.DifficultyAdvanced:
		hours = hours * 2
	}

	if hours < 40 {
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d weeks (%d hours)", hours/10, hours)
}

// InferDifficulty guesses a level from keywords in the course text, falling
// back to the requested difficulty when nothing matches.
func InferDifficulty(text, requested string) string {
	lower := strings.ToLower(text)
	for _, level := range models.DifficultyLevels {
		for _, kw := range difficultyKeywords[level] {
			if strings.Contains(lower, kw) {
				return level
			}
		}
	}
	if d := models.NormalizeDifficulty(requested); d != "" {
		return d
	}
	return models.DifficultyBeginner
}

// ExtractTags keeps the query tags that literally appear in the text, plus
// any well-known topic keywords found there. Falls back to the query tags.
func ExtractTags(text string, queryTags []string) []string {
	lower := strings.ToLower(text)
	var found []string

	for _, tag := range queryTags {
		if strings.Contains(lower, strings.ToLower(tag)) {
			found = appendIfMissing(found, tag)
		}
	}
	for _, tag := range commonTags {
		if strings.Contains(lower, tag) {
			found = appendIfMissing(found, tag)
		}
	}

	if len(found) == 0 {
		return append([]string(nil), queryTags...)
	}
	return found
}

// normalizeKey converts a title to its dedup key: lowercase, drop
// punctuation, compress whitespace.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))

	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// titleCase upper-cases the first letter of each word, for building course
// titles out of query tags.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func appendIfMissing(slice []string, v string) []string {
	for _, x := range slice {
		if strings.EqualFold(x, v) {
			return slice
		}
	}
	return append(slice, v)
}
