package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/mirror/internal/detect"
	"github.com/ppiankov/mirror/internal/model"
	"github.com/ppiankov/mirror/internal/score"
)

// EntryAnalyzer is anything that turns entry text into an analysis
type EntryAnalyzer interface {
	Analyze(text string) (model.EntryAnalysis, error)
}

// Analyzer runs sentiment scoring followed by bias detection.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	scorer   *score.Scorer
	detector *detect.Detector
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil logger falls back to slog.Default().
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		scorer:   score.NewScorer(),
		detector: detect.NewDetector(),
		logger:   logger,
	}
}

// Analyze scores the text and detects biases using the resulting valence.
// The only failure is text that is not valid UTF-8.
func (a *Analyzer) Analyze(text string) (model.EntryAnalysis, error) {
	if !utf8.ValidString(text) {
		return model.EntryAnalysis{}, model.NewInvalidInputError("entry text is not valid UTF-8")
	}

	// 1. Sentiment
	sentiment := a.scorer.Calculate(text)

	// 2. Biases, gated on valence
	biases := a.detector.Detect(text, sentiment.Valence)

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "entry analyzed",
		slog.Int("words", len(strings.Fields(text))),
		slog.Float64("score", sentiment.Score),
		slog.String("label", string(sentiment.Label)),
		slog.Int("biases", len(biases)),
	)

	return model.EntryAnalysis{
		Sentiment: sentiment,
		Biases:    biases,
	}, nil
}

// AnalyzeEntry analyzes a journal entry, keeping the entry alongside the result
func AnalyzeEntry(a EntryAnalyzer, entry model.JournalEntry) (model.AnalyzedEntry, error) {
	analysis, err := a.Analyze(entry.Text)
	if err != nil {
		return model.AnalyzedEntry{}, err
	}
	return model.AnalyzedEntry{Entry: entry, Analysis: analysis}, nil
}
