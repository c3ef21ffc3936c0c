package detect

import (
	"regexp"

	"github.com/ppiankov/mirror/internal/model"
)

// TriggerPolicy decides whether a rule's pattern matches emit a bias
type TriggerPolicy int

const (
	// FirstMatch emits on the first matching pattern
	FirstMatch TriggerPolicy = iota
	// DistinctKinds emits when at least MinKinds different patterns match
	DistinctKinds
)

func (p TriggerPolicy) String() string {
	switch p {
	case FirstMatch:
		return "first_match"
	case DistinctKinds:
		return "distinct_kinds"
	default:
		return "unknown"
	}
}

// Gate is a valence precondition; a rule whose gate fails is skipped entirely
type Gate func(valence float64) bool

// below returns a strict-inequality gate
func below(threshold float64) Gate {
	return func(valence float64) bool {
		return valence < threshold
	}
}

// Rule is one entry of the bias rule table
type Rule struct {
	Type        model.BiasType
	Description string // Reported as DetectedBias.Pattern
	Explanation string
	Gate        Gate // nil means always evaluated
	Patterns    []*regexp.Regexp
	Policy      TriggerPolicy
	MinKinds    int // Only used by DistinctKinds
}

// Valence gate thresholds
const (
	CatastrophizingGate = -0.2
	FortuneTellingGate  = -0.1
)

// rules is evaluated in this order for every entry and never modified
var rules = []Rule{
	{
		Type:        model.BiasCatastrophizing,
		Description: "Absolutist negative language detected",
		Explanation: "You may be magnifying negative events and expecting the worst possible outcomes.",
		Gate:        below(CatastrophizingGate),
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(always|never|everything|nothing|everyone|no one)\b.*(terrible|awful|horrible|worst|disaster|ruined)`),
			regexp.MustCompile(`(?i)\b(can't|cannot|couldn't|won't|wouldn't)\b.*(anything|ever|never|always)`),
		},
		Policy: FirstMatch,
	},
	{
		Type:        model.BiasBlackAndWhite,
		Description: "Binary language patterns detected",
		Explanation: "You may be thinking in extremes without considering nuances or middle ground.",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(all|none|every|nothing|everything)\b`),
			regexp.MustCompile(`(?i)\b(always|never)\b`),
			regexp.MustCompile(`(?i)\b(completely|totally|absolutely)\s+(wrong|right|bad|good)`),
		},
		Policy:   DistinctKinds,
		MinKinds: 2,
	},
	{
		Type:        model.BiasEmotionalReasoning,
		Description: "Treating feelings as facts",
		Explanation: "You may be treating your feelings as facts, assuming that negative emotions reflect reality.",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(i feel|feels like).*\b(so|therefore|that means|this proves)`),
			regexp.MustCompile(`(?i)\b(i feel|feeling).*\b(it's|it is|that's|they are)`),
		},
		Policy: FirstMatch,
	},
	{
		Type:        model.BiasFortuneTelling,
		Description: "Predicting negative outcomes",
		Explanation: "You may be predicting negative outcomes without evidence, assuming things will go badly.",
		Gate:        below(FortuneTellingGate),
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(will|going to)\b.*\b(bad|terrible|fail|wrong)`),
			regexp.MustCompile(`(?i)\b(know|certain|sure)\b.*\b(will|going to)\b.*\b(bad|fail)`),
		},
		Policy: FirstMatch,
	},
	{
		Type:        model.BiasOvergeneralization,
		Description: "Universal patterns from isolated incidents",
		Explanation: "You may be treating isolated incidents as universal patterns or rules.",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(always|never|every|all)\b.*\b(happens|happened)`),
			regexp.MustCompile(`(?i)\b(every time|whenever)\b`),
		},
		Policy: FirstMatch,
	},
}

// Rules returns a copy of the rule table in evaluation order.
// Compiled patterns are shared; *regexp.Regexp is safe for concurrent use.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Patterns = append([]*regexp.Regexp(nil), r.Patterns...)
		out[i] = r
	}
	return out
}

// ExplanationFor returns the static explanation for a bias type
func ExplanationFor(t model.BiasType) string {
	for _, r := range rules {
		if r.Type == t {
			return r.Explanation
		}
	}
	return ""
}
