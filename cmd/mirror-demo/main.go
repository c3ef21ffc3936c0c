// Demo program that runs sample journal entries through the analyzer
// and the weekly summary, printing what each stage finds
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/mirror/internal/insight"
	"github.com/ppiankov/mirror/internal/logging"
	"github.com/ppiankov/mirror/internal/model"
	"github.com/ppiankov/mirror/internal/pipeline"
	"github.com/ppiankov/mirror/internal/worker"
)

func main() {
	fmt.Println("=== Journal Analysis Demo ===")
	fmt.Println()

	monday := insight.WeekStart(time.Now())
	texts := []string{
		"Work was a disaster today. Everything is ruined and I can't handle it.",
		"I feel like a failure, so I must be one.",
		"Had a good walk with my friend. Grateful for the sunshine.",
		"I'm going to fail the presentation tomorrow, it will be terrible.",
		"People always let me down. Nobody ever listens.",
		"Either I get it perfect or I'm completely useless.",
		"A calm evening reading with family. Happy and relaxed.",
	}

	entries := make([]model.JournalEntry, len(texts))
	for i, text := range texts {
		entries[i] = model.JournalEntry{
			ID:        fmt.Sprintf("day-%d", i+1),
			Text:      text,
			Timestamp: monday.Add(time.Duration(i)*24*time.Hour + 20*time.Hour),
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	analyzer := pipeline.NewAnalyzer(logging.Discard())
	results := worker.NewBatchProcessor(analyzer, 4).ProcessEntries(ctx, entries)

	for _, result := range results {
		fmt.Printf("Entry: %s\n", result.Entry.ID)
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("  %q\n", result.Entry.Text)

		if result.Error != nil {
			fmt.Printf("  ✗ Analysis error: %v\n\n", result.Error)
			continue
		}

		sentiment := result.Analysis.Sentiment
		fmt.Printf("  Sentiment: %s (%.2f)\n", sentiment.Label, sentiment.Score)
		if len(result.Analysis.Biases) == 0 {
			fmt.Println("  ✓ No bias patterns detected")
		}
		for _, bias := range result.Analysis.Biases {
			fmt.Printf("  ⚠️  %s\n", bias.Type)
			if bias.Excerpt != "" {
				fmt.Printf("     - Excerpt: %q\n", bias.Excerpt)
			}
		}
		fmt.Println()
	}

	analyzed := worker.Succeeded(results)
	if len(analyzed) == 0 {
		fmt.Fprintln(os.Stderr, "no entries analyzed")
		os.Exit(1)
	}

	summary := insight.WeeklySummary(analyzed)
	fmt.Println("=== Weekly Summary ===")
	fmt.Println()
	fmt.Printf("Themes: %s\n", strings.Join(summary.Themes, ", "))
	fmt.Printf("Emotions: %s\n", strings.Join(summary.Emotions, ", "))
	for _, biasType := range model.BiasTypes() {
		if n := summary.BiasFrequency[biasType]; n > 0 {
			fmt.Printf("  %s: %d\n", biasType, n)
		}
	}
	fmt.Println()

	fmt.Println("=== Mood Timeline ===")
	fmt.Println()
	for _, point := range insight.Timeline(analyzed, model.DefaultConfig().Insight) {
		marker := ""
		if point.MoodShift {
			marker = " ← mood shift"
		}
		fmt.Printf("  %s  %+.2f  avg %+.2f%s\n", point.Timestamp.Format("Mon 02 Jan"), point.Valence, point.RollingAverage, marker)
	}
}
