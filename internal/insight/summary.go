package insight

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/mirror/internal/model"
)

const (
	emptyWeekText = "No entries this week to summarize."
	previewRunes  = 200
)

// WeeklySummary builds a rule-based digest of entries.
// The week is taken from the earliest timestamped entry.
func WeeklySummary(entries []model.AnalyzedEntry) model.WeeklySummary {
	sorted := Chronological(entries)

	summary := model.WeeklySummary{
		EntryCount:    len(sorted),
		Themes:        []string{},
		Emotions:      []string{},
		BiasFrequency: BiasFrequency(sorted),
	}

	for _, entry := range sorted {
		if !entry.Entry.Timestamp.IsZero() {
			summary.WeekStart = WeekStart(entry.Entry.Timestamp)
			break
		}
	}

	if len(sorted) == 0 {
		summary.SummaryText = emptyWeekText
		return summary
	}

	texts := make([]string, len(sorted))
	valences := make([]float64, len(sorted))
	for i, entry := range sorted {
		texts[i] = entry.Entry.Text
		valences[i] = entry.Analysis.Sentiment.Valence
	}

	summary.Themes = ExtractThemes(texts)
	summary.Emotions = DescribeEmotions(valences)
	summary.SummaryText = summaryText(texts, summary.Themes, summary.Emotions)

	return summary
}

// Chronological returns a copy of entries sorted by timestamp; ties keep input order
func Chronological(entries []model.AnalyzedEntry) []model.AnalyzedEntry {
	sorted := make([]model.AnalyzedEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Entry.Timestamp.Before(sorted[j].Entry.Timestamp)
	})
	return sorted
}

func summaryText(texts []string, themes, emotions []string) string {
	n := len(texts)
	plural := "s"
	if n == 1 {
		plural = ""
	}

	parts := []string{fmt.Sprintf("This week, you journaled %d time%s.", n, plural)}

	if len(themes) > 0 {
		parts = append(parts, fmt.Sprintf("Your entries frequently touched on: %s.", strings.Join(themes, ", ")))
	}

	if len(emotions) > 0 {
		parts = append(parts, fmt.Sprintf("Your emotional landscape was primarily %s.", strings.ToLower(emotions[0])))
		if len(emotions) > 1 {
			parts = append(parts, fmt.Sprintf("You also experienced %s patterns.", strings.ToLower(strings.Join(emotions[1:], ", "))))
		}
	}

	parts = append(parts,
		"\nHere's a reflection from your week:",
		`"` + preview(longest(texts)) + `"`,
		"\nContinue reflecting to discover deeper patterns in your emotional journey.",
	)

	return strings.Join(parts, " ")
}

// longest returns the first of the longest texts
func longest(texts []string) string {
	best := ""
	bestLen := -1
	for _, text := range texts {
		if n := utf8.RuneCountInString(text); n > bestLen {
			best, bestLen = text, n
		}
	}
	return best
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewRunes]) + "..."
}
