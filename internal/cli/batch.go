package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/mirror/internal/insight"
	"github.com/ppiankov/mirror/internal/model"
	"github.com/ppiankov/mirror/internal/pipeline"
	"github.com/ppiankov/mirror/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var outputDir string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze many journal entries from a file in parallel",
	Long: `Batch analyzes every entry in a file concurrently:
- Read entries from JSONL, JSON, YAML, HTML or plain text
  (plain text entries are separated by blank lines)
- Analyze entries in parallel with configurable worker count
- Write a JSON and Markdown report per entry, plus a combined report

Example:
  mirror batch journal.txt
  mirror batch entries.jsonl --concurrency 8 --output-dir ./reports
  mirror batch export.html --timeout 1m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().Duration("timeout", 5*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./mirror-reports", "output directory for reports")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("concurrency.timeout", batchCmd.Flags().Lookup("timeout"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, logger, analyzer, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Concurrency.Timeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Mirror Batch Analysis\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", cfg.Concurrency.Timeout)
	fmt.Fprintf(stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(analyzer, cfg.Concurrency.Workers)

	fmt.Fprintf(stderr, "⚙️  Reading entries from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(stderr, "✓ Analyzed %d entries\n", len(results))
	fmt.Fprintf(stderr, "\n")

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter && !noFooter)
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Entry.ID, result.Error)
			continue
		}

		analyzed := model.AnalyzedEntry{Entry: result.Entry, Analysis: result.Analysis}
		slug := sanitizeFilename(fmt.Sprintf("%03d-%s", result.Index+1, result.Entry.ID))

		if err := renderer.RenderJSON(analyzed, filepath.Join(outputDir, slug+".json")); err != nil {
			fmt.Fprintf(stderr, "✗ %s: failed to write JSON: %v\n", result.Entry.ID, err)
			continue
		}
		if err := renderer.RenderMarkdown(renderer.AnalysisMarkdown(analyzed), filepath.Join(outputDir, slug+".md")); err != nil {
			fmt.Fprintf(stderr, "✗ %s: failed to write Markdown: %v\n", result.Entry.ID, err)
			continue
		}

		fmt.Fprintf(stderr, "✓ %s ", result.Entry.ID)
		renderer.RenderSummary(stderr, result.Analysis)
	}

	succeeded := worker.Succeeded(results)
	frequency := insight.BiasFrequency(succeeded)

	if err := renderer.RenderJSON(succeeded, filepath.Join(outputDir, "batch.json")); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if err := renderer.RenderMarkdown(renderer.BatchMarkdown(succeeded, frequency), filepath.Join(outputDir, "batch.md")); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if cached, ok := analyzer.(*pipeline.CachedAnalyzer); ok {
		hits, misses := cached.Stats()
		logger.Debug("analysis cache", "hits", hits, "misses", misses)
	}

	// Summary
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d entries\n", len(results))
	fmt.Fprintf(stderr, "  Success:   %d\n", len(succeeded))
	fmt.Fprintf(stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)
	s = strings.Trim(s, ".-_")

	// Limit length, cutting on a rune boundary
	if len(s) > 100 {
		cut := 100
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}

	if s == "" {
		return "entry"
	}
	return s
}
