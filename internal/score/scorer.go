package score

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/mirror/internal/model"
)

// scale stretches the per-word ratio so a few cue words saturate the score
const scale = 10

// Scorer calculates lexicon-based sentiment
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores text into a bounded valence and label.
// Any string is accepted; empty text scores 0 (Neutral).
func (s *Scorer) Calculate(text string) model.Sentiment {
	// Edge whitespace adds no empty tokens
	totalWords := len(strings.Fields(text))
	denominator := totalWords
	if denominator < 1 {
		denominator = 1
	}

	lower := strings.ToLower(text)
	positiveCount := countAll(lower, positiveWords)
	negativeCount := countAll(lower, negativeWords)

	raw := float64(positiveCount-negativeCount) / float64(denominator)
	score := clamp(raw*scale, -1, 1)

	return model.Sentiment{
		Score:   score,
		Valence: score,
		Label:   model.LabelFor(score),
	}
}

// Counts returns the positive and negative cue word hits in text
func (s *Scorer) Counts(text string) (positive, negative int) {
	lower := strings.ToLower(text)
	return countAll(lower, positiveWords), countAll(lower, negativeWords)
}

func countAll(lower string, words []string) int {
	total := 0
	for _, word := range words {
		total += countWord(lower, word)
	}
	return total
}

// countWord counts occurrences of word in lower that are bounded by
// non-letters or the ends of the text ("bad" never matches in "badge")
func countWord(lower, word string) int {
	count := 0
	offset := 0
	for offset <= len(lower)-len(word) {
		i := strings.Index(lower[offset:], word)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(word)
		if letterBoundary(lower, start, end) {
			count++
		}
		offset = start + 1
	}
	return count
}

func letterBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if unicode.IsLetter(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
