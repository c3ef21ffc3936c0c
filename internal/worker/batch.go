package worker

import (
	"context"
	"fmt"

	"github.com/ppiankov/mirror/internal/ingest"
	"github.com/ppiankov/mirror/internal/model"
)

// Analyzer defines the interface for analyzing entry text
type Analyzer interface {
	Analyze(text string) (model.EntryAnalysis, error)
}

// AnalyzeJob represents a single entry analysis job
type AnalyzeJob struct {
	Index    int
	Entry    model.JournalEntry
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &AnalyzeResult{Index: j.Index, Entry: j.Entry, Error: err}
	}

	analysis, err := j.Analyzer.Analyze(j.Entry.Text)
	if err != nil {
		return &AnalyzeResult{
			Index: j.Index,
			Entry: j.Entry,
			Error: fmt.Errorf("analyze entry %s: %w", j.Entry.ID, err),
		}
	}
	return &AnalyzeResult{
		Index:    j.Index,
		Entry:    j.Entry,
		Analysis: analysis,
	}
}

// AnalyzeResult represents the result of an analysis job
type AnalyzeResult struct {
	Index    int
	Entry    model.JournalEntry
	Analysis model.EntryAnalysis
	Error    error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many entries concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessEntries analyzes entries concurrently and returns results in input order.
// Entries that were never run because ctx was cancelled carry ctx's error.
func (b *BatchProcessor) ProcessEntries(ctx context.Context, entries []model.JournalEntry) []*AnalyzeResult {
	if len(entries) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(ctx, b.concurrency)

	jobs := make([]Job, len(entries))
	for i, entry := range entries {
		jobs[i] = &AnalyzeJob{
			Index:    i,
			Entry:    entry,
			Analyzer: b.analyzer,
		}
	}

	results := pool.Run(jobs)

	ordered := make([]*AnalyzeResult, len(entries))
	for _, result := range results {
		r := result.(*AnalyzeResult)
		ordered[r.Index] = r
	}

	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &AnalyzeResult{Index: i, Entry: entries[i], Error: err}
		}
	}

	return ordered
}

// ProcessFile reads entries from a file and analyzes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	entries, err := ingest.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries found in file")
	}

	return b.ProcessEntries(ctx, entries), nil
}

// Succeeded returns the analyzed entries from results without errors, in order
func Succeeded(results []*AnalyzeResult) []model.AnalyzedEntry {
	analyzed := make([]model.AnalyzedEntry, 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			analyzed = append(analyzed, model.AnalyzedEntry{Entry: r.Entry, Analysis: r.Analysis})
		}
	}
	return analyzed
}
