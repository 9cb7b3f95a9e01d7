package models

import (
	"strings"
	"time"
)

// Difficulty levels form a 3-step ordinal scale. "expert" is accepted on
// input as a synonym for "advanced".
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// DifficultyLevels is ordered; adjacency on this slice drives partial-credit
// ranking.
var DifficultyLevels = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Course is the canonical, provider-agnostic course record.
//
// Rows from the local catalog and candidates built by the external source
// adapters are both mapped into this shape before anything is returned to a
// caller. External candidates are ephemeral: built per request, never stored.
type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	URL         string    `json:"url"`
	Difficulty  string    `json:"difficulty"`
	Rating      float64   `json:"rating"`
	Tags        []string  `json:"tags"`
	Progress    float64   `json:"progress"`
	Duration    string    `json:"duration,omitempty"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// NormalizeDifficulty maps user input onto the canonical scale.
// Returns "" for values outside the vocabulary.
func NormalizeDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "basic":
		return DifficultyBeginner
	case "intermediate":
		return DifficultyIntermediate
	case "advanced", "expert":
		return DifficultyAdvanced
	default:
		return ""
	}
}

// DifficultyDistance returns the ordinal distance between two levels,
// or -1 when either value is not on the scale.
func DifficultyDistance(a, b string) int {
	ia, ib := -1, -1
	for i, lvl := range DifficultyLevels {
		if lvl == a {
			ia = i
		}
		if lvl == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return -1
	}
	if ia > ib {
		return ia - ib
	}
	return ib - ia
}
