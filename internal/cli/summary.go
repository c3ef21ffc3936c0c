package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/mirror/internal/insight"
	"github.com/ppiankov/mirror/internal/model"
	"github.com/ppiankov/mirror/internal/pipeline"
	"github.com/ppiankov/mirror/internal/worker"
	"github.com/spf13/cobra"
)

var (
	summaryWeek string
	summaryJSON string
	summaryMD   string
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Summarize a week of journal entries",
	Long: `Summary analyzes the entries in a file and builds a weekly digest:
- recurring themes (work, relationships, health, ...)
- emotional patterns (positive/negative/neutral, volatile, improving, declining)
- bias frequency across entries
- a mood timeline with a rolling average and mood shift markers

Example:
  mirror summary entries.jsonl
  mirror summary entries.yaml --week 2024-03-04 --md week.md
  mirror summary entries.jsonl --json -`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

// SummaryReport is the JSON output of the summary command
type SummaryReport struct {
	Summary  model.WeeklySummary   `json:"summary"`
	Timeline []model.TimelinePoint `json:"timeline"`
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summaryWeek, "week", "", "only include entries from the week containing this date (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&summaryJSON, "json", "", "output JSON path (\"-\" for stdout)")
	summaryCmd.Flags().StringVar(&summaryMD, "md", "", "output Markdown path (\"-\" for stdout)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, logger, analyzer, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Concurrency.Timeout)
	defer cancel()

	processor := worker.NewBatchProcessor(analyzer, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", result.Entry.ID, result.Error)
		}
	}
	analyzed := worker.Succeeded(results)

	if summaryWeek != "" {
		day, err := time.ParseInLocation("2006-01-02", summaryWeek, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --week %q: %w", summaryWeek, err)
		}
		analyzed = insight.InWeek(analyzed, day)
	}
	logger.Debug("summarizing entries", "entries", len(analyzed))

	report := SummaryReport{
		Summary:  insight.WeeklySummary(analyzed),
		Timeline: insight.Timeline(analyzed, cfg.Insight),
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	renderer.SetStdout(cmd.OutOrStdout())

	if summaryJSON == "" && summaryMD == "" {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary.SummaryText)
		return nil
	}

	if summaryJSON != "" {
		if err := renderer.RenderJSON(report, summaryJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	if summaryMD != "" {
		if err := renderer.RenderMarkdown(renderer.SummaryMarkdown(report.Summary, report.Timeline), summaryMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	return nil
}
