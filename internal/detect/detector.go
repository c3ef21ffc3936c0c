package detect

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/mirror/internal/model"
)

// excerptContext is how many bytes of surrounding text an excerpt keeps on each side
const excerptContext = 50

// Detector evaluates the bias rule table against entry text
type Detector struct {
	rules []Rule
}

// NewDetector creates a detector over the built-in rule table
func NewDetector() *Detector {
	return &Detector{rules: rules}
}

// Detect returns the biases found in text, in rule table order.
// Each bias type appears at most once; an empty result is normal.
func (d *Detector) Detect(text string, valence float64) []model.DetectedBias {
	biases := []model.DetectedBias{}

	for _, rule := range d.rules {
		if rule.Gate != nil && !rule.Gate(valence) {
			continue
		}

		bias, ok := evaluate(rule, text)
		if ok {
			biases = append(biases, bias)
		}
	}

	return biases
}

// evaluate applies one rule's trigger policy
func evaluate(rule Rule, text string) (model.DetectedBias, bool) {
	bias := model.DetectedBias{
		Type:        rule.Type,
		Pattern:     rule.Description,
		Explanation: rule.Explanation,
	}

	switch rule.Policy {
	case DistinctKinds:
		kinds := 0
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(text) {
				kinds++
			}
		}
		return bias, kinds >= rule.MinKinds

	default:
		for _, pattern := range rule.Patterns {
			if loc := pattern.FindStringIndex(text); loc != nil {
				bias.Excerpt = excerpt(text, loc[0], loc[1])
				return bias, true
			}
		}
		return bias, false
	}
}

// excerpt returns the match with some surrounding context, cut on rune boundaries
func excerpt(text string, start, end int) string {
	from := start - excerptContext
	if from < 0 {
		from = 0
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}

	to := end + excerptContext
	if to > len(text) {
		to = len(text)
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	return strings.TrimSpace(text[from:to])
}
