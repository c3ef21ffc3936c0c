package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/mirror/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzed(id string, ts time.Time, valence float64, text string, biases ...model.BiasType) model.AnalyzedEntry {
	detected := make([]model.DetectedBias, len(biases))
	for i, b := range biases {
		detected[i] = model.DetectedBias{Type: b}
	}
	return model.AnalyzedEntry{
		Entry: model.JournalEntry{ID: id, Text: text, Timestamp: ts},
		Analysis: model.EntryAnalysis{
			Sentiment: model.Sentiment{Score: valence, Valence: valence, Label: model.LabelFor(valence)},
			Biases:    detected,
		},
	}
}

func day(d int) time.Time {
	// 2024-03-04 is a Monday
	return time.Date(2024, 3, 4+d, 12, 0, 0, 0, time.UTC)
}

func TestBiasFrequency(t *testing.T) {
	freq := BiasFrequency([]model.AnalyzedEntry{
		analyzed("a", day(0), 0, "", model.BiasCatastrophizing, model.BiasOvergeneralization),
		analyzed("b", day(1), 0, "", model.BiasCatastrophizing),
		analyzed("c", day(2), 0, ""),
	})

	assert.Equal(t, map[model.BiasType]int{
		model.BiasCatastrophizing:    2,
		model.BiasOvergeneralization: 1,
	}, freq)

	assert.Empty(t, BiasFrequency(nil))
}

func TestExtractThemes(t *testing.T) {
	got := ExtractThemes([]string{
		"My boss dumped a new project on me at the office. Work is hard.",
		"I'm so stressed and worried; the pressure is a problem.",
	})

	// work: work, office, boss, project = 4
	// stress: stress, worried, pressure = 3
	// challenges: hard, problem = 2
	assert.Equal(t, []string{"work", "stress", "challenges"}, got)
}

func TestExtractThemes_TiesKeepTableOrder(t *testing.T) {
	got := ExtractThemes([]string{"GRATEFUL for my friend. Sleep helped."})
	assert.Equal(t, []string{"relationships", "health", "gratitude"}, got)
}

func TestExtractThemes_SubstringMatching(t *testing.T) {
	// "homework" contains "work"
	assert.Equal(t, []string{"work"}, ExtractThemes([]string{"homework"}))
	assert.Empty(t, ExtractThemes([]string{"zzz"}))
	assert.Empty(t, ExtractThemes(nil))
}

func TestDescribeEmotions(t *testing.T) {
	tests := []struct {
		name     string
		valences []float64
		want     []string
	}{
		{"empty", nil, []string{}},
		{"single positive", []float64{0.8}, []string{EmotionPositive}},
		{"single negative", []float64{-0.31}, []string{EmotionNegative}},
		{"boundary is neutral", []float64{0.3, 0.3}, []string{EmotionNeutral}},
		{"volatile", []float64{1, -1}, []string{EmotionNeutral, EmotionVolatile}},
		{"improving", []float64{-0.2, -0.1, 0, 0.1, 0.2, 0.3}, []string{EmotionNeutral, EmotionImproving}},
		{"declining", []float64{0.5, 0.4, 0.3, 0.0, -0.1, -0.2}, []string{EmotionNeutral, EmotionDeclining}},
		{"flat", []float64{0.1, 0.1, 0.1}, []string{EmotionNeutral}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeEmotions(tt.valences))
		})
	}
}

func TestWeeklySummary(t *testing.T) {
	long := strings.Repeat("x", 250)
	entries := []model.AnalyzedEntry{
		analyzed("wed", day(2), 0.8, "Grateful for my family and friends", model.BiasFortuneTelling),
		analyzed("mon", day(0), -0.8, "Work was hard and my boss was angry", model.BiasCatastrophizing),
		analyzed("tue", day(1), 0.0, long),
	}

	summary := WeeklySummary(entries)

	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), summary.WeekStart)
	assert.Equal(t, 3, summary.EntryCount)
	assert.Equal(t, []string{"work", "relationships", "challenges"}, summary.Themes)
	assert.Equal(t, []string{EmotionNeutral, EmotionVolatile}, summary.Emotions)
	assert.Equal(t, 1, summary.BiasFrequency[model.BiasCatastrophizing])
	assert.Equal(t, 1, summary.BiasFrequency[model.BiasFortuneTelling])

	text := summary.SummaryText
	assert.True(t, strings.HasPrefix(text, "This week, you journaled 3 times."))
	assert.Contains(t, text, "Your entries frequently touched on: work, relationships, challenges.")
	assert.Contains(t, text, "Your emotional landscape was primarily neutral.")
	assert.Contains(t, text, "You also experienced volatile patterns.")
	assert.Contains(t, text, `"`+strings.Repeat("x", 200)+`..."`)
	assert.True(t, strings.HasSuffix(text, "Continue reflecting to discover deeper patterns in your emotional journey."))
}

func TestWeeklySummary_SingleEntry(t *testing.T) {
	summary := WeeklySummary([]model.AnalyzedEntry{analyzed("a", day(3), 0.9, "A lovely day")})

	assert.Contains(t, summary.SummaryText, "you journaled 1 time.")
	assert.Contains(t, summary.SummaryText, `"A lovely day"`)
	assert.Equal(t, []string{EmotionPositive}, summary.Emotions)
}

func TestWeeklySummary_Empty(t *testing.T) {
	summary := WeeklySummary(nil)

	assert.Equal(t, "No entries this week to summarize.", summary.SummaryText)
	assert.Equal(t, 0, summary.EntryCount)
	assert.NotNil(t, summary.Themes)
	assert.NotNil(t, summary.Emotions)
	assert.True(t, summary.WeekStart.IsZero())
}

func TestChronological_StableAndCopy(t *testing.T) {
	input := []model.AnalyzedEntry{
		analyzed("late", day(2), 0, ""),
		analyzed("tie1", day(1), 0, ""),
		analyzed("tie2", day(1), 0, ""),
	}

	sorted := Chronological(input)
	require.Len(t, sorted, 3)
	assert.Equal(t, "tie1", sorted[0].Entry.ID)
	assert.Equal(t, "tie2", sorted[1].Entry.ID)
	assert.Equal(t, "late", sorted[2].Entry.ID)
	assert.Equal(t, "late", input[0].Entry.ID)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))

	exact := strings.Repeat("é", 200)
	assert.Equal(t, exact, preview(exact))

	over := strings.Repeat("é", 201)
	assert.Equal(t, strings.Repeat("é", 200)+"...", preview(over))
}
