package journal

import (
	"strings"
	"sync"
)

// Scorer rates a piece of text. Score returns a value in [-1, 1] and a label
// (positive, neutral, negative).
type Scorer interface {
	Score(text string) (float64, string, error)
}

// KeywordScorer is a small lexicon-based scorer. The word lists are tuned for
// study-journal vocabulary, not general text.
type KeywordScorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var (
	scorerOnce sync.Once
	scorer     *KeywordScorer
)

// DefaultScorer returns the process-wide scorer. Building the lexicon is
// cheap but there is no reason to do it per request.
func DefaultScorer() *KeywordScorer {
	scorerOnce.Do(func() {
		scorer = newKeywordScorer()
	})
	return scorer
}

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "love", "loved", "enjoy",
	"enjoyed", "fun", "excited", "exciting", "progress", "learned",
	"understand", "understood", "finished", "completed", "proud", "happy",
	"confident", "motivated", "clear", "helpful", "easy", "win", "solved",
}

var negativeWords = []string{
	"bad", "hard", "difficult", "confused", "confusing", "stuck", "frustrated",
	"frustrating", "hate", "hated", "boring", "tired", "exhausted", "failed",
	"failure", "quit", "giving up", "gave up", "lost", "overwhelmed",
	"stressed", "anxious", "scared", "impossible", "behind", "struggle",
	"struggling",
}

func newKeywordScorer() *KeywordScorer {
	ks := &KeywordScorer{
		positive: make(map[string]struct{}, len(positiveWords)),
		negative: make(map[string]struct{}, len(negativeWords)),
	}
	for _, w := range positiveWords {
		ks.positive[w] = struct{}{}
	}
	for _, w := range negativeWords {
		ks.negative[w] = struct{}{}
	}
	return ks
}

func (ks *KeywordScorer) Score(text string) (float64, string, error) {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0, "neutral", nil
	}

	var pos, neg int
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()")
		if _, ok := ks.positive[w]; ok {
			pos++
		}
		if _, ok := ks.negative[w]; ok {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0, "neutral", nil
	}

	score := float64(pos-neg) / float64(total)
	switch {
	case score > 0.2:
		return score, "positive", nil
	case score < -0.2:
		return score, "negative", nil
	default:
		return score, "neutral", nil
	}
}
