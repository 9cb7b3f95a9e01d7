package models

import "time"

// Moods a learner can attach to a journal entry.
var Moods = []string{"motivated", "stressed", "excited", "okay", "frustrated", "tired", "scared"}

var MoodEmoji = map[string]string{
	"motivated":  "🤩",
	"stressed":   "😐",
	"excited":    "😄",
	"okay":       "🙂",
	"frustrated": "😫",
	"tired":      "😴",
	"scared":     "😨",
}

type JournalEntry struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content,omitempty"`
	Mood           string    `json:"mood,omitempty"`
	MoodEmoji      string    `json:"mood_emoji,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	SentimentLabel string    `json:"sentiment_label,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ValidMood(m string) bool {
	for _, mood := range Moods {
		if mood == m {
			return true
		}
	}
	return false
}
