package model

// EntryAnalysis is the complete result of analyzing a single journal entry
type EntryAnalysis struct {
	Sentiment Sentiment      `json:"sentiment"` // Valence score and label
	Biases    []DetectedBias `json:"biases"`    // Detected biases, in rule table order
}

// Sentiment is the lexicon-based valence of a text
type Sentiment struct {
	Score   float64        `json:"score"`   // Clamped to [-1, 1]
	Valence float64        `json:"valence"` // Always equal to Score
	Label   SentimentLabel `json:"label"`
}

// SentimentLabel is a coarse bucket derived from the score
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "Positive"
	LabelNegative SentimentLabel = "Negative"
	LabelNeutral  SentimentLabel = "Neutral"
)

// Label thresholds (strict inequalities)
const (
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
)

// LabelFor maps a score to its label
func LabelFor(score float64) SentimentLabel {
	switch {
	case score > PositiveThreshold:
		return LabelPositive
	case score < NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// DetectedBias is one cognitive bias found in an entry
type DetectedBias struct {
	Type        BiasType `json:"type"`
	Pattern     string   `json:"pattern"`           // Fixed description of what the rule looks for
	Explanation string   `json:"explanation"`       // Static template keyed by Type
	Excerpt     string   `json:"excerpt,omitempty"` // Text around the first match, when the rule has one
}

// BiasType names a cognitive distortion category
type BiasType string

const (
	BiasCatastrophizing    BiasType = "Catastrophizing"
	BiasBlackAndWhite      BiasType = "Black-and-white Thinking"
	BiasEmotionalReasoning BiasType = "Emotional Reasoning"
	BiasFortuneTelling     BiasType = "Fortune Telling"
	BiasOvergeneralization BiasType = "Overgeneralization"
)

// BiasTypes lists every bias type in evaluation order
func BiasTypes() []BiasType {
	return []BiasType{
		BiasCatastrophizing,
		BiasBlackAndWhite,
		BiasEmotionalReasoning,
		BiasFortuneTelling,
		BiasOvergeneralization,
	}
}

// HasBias reports whether the analysis contains a bias of the given type
func (a EntryAnalysis) HasBias(t BiasType) bool {
	for _, b := range a.Biases {
		if b.Type == t {
			return true
		}
	}
	return false
}
