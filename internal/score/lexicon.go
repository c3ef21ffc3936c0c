package score

// positiveWords are cue words that raise valence
var positiveWords = []string{
	"happy", "joy", "excited", "great", "wonderful", "amazing", "love",
	"good", "better", "best", "excellent", "fantastic", "grateful",
	"thankful", "blessed", "proud", "accomplished", "confident",
	"optimistic", "hopeful",
}

// negativeWords are cue words that lower valence
var negativeWords = []string{
	"sad", "angry", "upset", "bad", "worse", "worst", "terrible", "awful",
	"horrible", "hate", "depressed", "anxious", "worried", "scared",
	"afraid", "lonely", "hurt", "pain", "disappointed", "frustrated",
}

// PositiveWords returns a copy of the positive lexicon
func PositiveWords() []string {
	return append([]string(nil), positiveWords...)
}

// NegativeWords returns a copy of the negative lexicon
func NegativeWords() []string {
	return append([]string(nil), negativeWords...)
}
