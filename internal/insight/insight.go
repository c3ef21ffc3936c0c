// Package insight derives cross-entry patterns from analyzed journal entries:
// bias frequency, recurring themes, emotional patterns, weekly summaries and
// the mood timeline.
package insight

import (
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/mirror/internal/model"
)

// Emotional pattern labels
const (
	EmotionPositive  = "Positive"
	EmotionNegative  = "Negative"
	EmotionNeutral   = "Neutral"
	EmotionVolatile  = "Volatile"
	EmotionImproving = "Improving"
	EmotionDeclining = "Declining"
)

const (
	moodThreshold       = 0.3
	volatilityThreshold = 0.4
	trendThreshold      = 0.2
	trendSpan           = 3
	maxThemes           = 3
)

type theme struct {
	name     string
	keywords []string
}

var themes = []theme{
	{"work", []string{"work", "job", "career", "office", "boss", "colleague", "project"}},
	{"relationships", []string{"friend", "family", "partner", "love", "relationship", "people"}},
	{"health", []string{"health", "exercise", "fitness", "illness", "pain", "sleep", "energy"}},
	{"goals", []string{"goal", "plan", "future", "dream", "want", "hope", "aspiration"}},
	{"challenges", []string{"difficult", "hard", "challenge", "struggle", "problem", "issue"}},
	{"gratitude", []string{"thankful", "grateful", "appreciate", "blessed", "lucky"}},
	{"stress", []string{"stress", "anxious", "worried", "overwhelmed", "pressure"}},
	{"growth", []string{"learn", "grow", "improve", "develop", "progress", "better"}},
}

// BiasFrequency counts detected biases per type across entries
func BiasFrequency(entries []model.AnalyzedEntry) map[model.BiasType]int {
	freq := make(map[model.BiasType]int)
	for _, entry := range entries {
		for _, bias := range entry.Analysis.Biases {
			freq[bias.Type]++
		}
	}
	return freq
}

// ExtractThemes returns up to three themes whose keywords appear most in texts.
// A theme scores one point per distinct keyword found anywhere in the combined text.
func ExtractThemes(texts []string) []string {
	all := strings.ToLower(strings.Join(texts, " "))

	type scored struct {
		name  string
		count int
	}

	var found []scored
	for _, t := range themes {
		count := 0
		for _, keyword := range t.keywords {
			if strings.Contains(all, keyword) {
				count++
			}
		}
		if count > 0 {
			found = append(found, scored{t.name, count})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].count > found[j].count
	})

	if len(found) > maxThemes {
		found = found[:maxThemes]
	}

	names := make([]string, len(found))
	for i, s := range found {
		names[i] = s.name
	}
	return names
}

// DescribeEmotions labels the overall mood of chronologically ordered valences
func DescribeEmotions(valences []float64) []string {
	if len(valences) == 0 {
		return []string{}
	}

	var emotions []string

	avg := mean(valences)
	switch {
	case avg > moodThreshold:
		emotions = append(emotions, EmotionPositive)
	case avg < -moodThreshold:
		emotions = append(emotions, EmotionNegative)
	default:
		emotions = append(emotions, EmotionNeutral)
	}

	if len(valences) > 1 && stddev(valences) > volatilityThreshold {
		emotions = append(emotions, EmotionVolatile)
	}

	if len(valences) >= trendSpan {
		recent := mean(valences[len(valences)-trendSpan:])
		earlier := mean(valences[:trendSpan])
		switch {
		case recent > earlier+trendThreshold:
			emotions = append(emotions, EmotionImproving)
		case recent < earlier-trendThreshold:
			emotions = append(emotions, EmotionDeclining)
		}
	}

	return emotions
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the sample standard deviation; zero for fewer than two values
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
