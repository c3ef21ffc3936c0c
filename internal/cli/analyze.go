package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/mirror/internal/ingest"
	"github.com/ppiankov/mirror/internal/model"
	"github.com/ppiankov/mirror/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON   string
	outMD     string
	inputFile string
	inputHTML bool
	noFooter  bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze a single journal entry",
	Long: `Analyze scores the sentiment of one entry and detects cognitive bias
language patterns in it.

The entry is read from the arguments, from --file, or from stdin.

Example:
  mirror analyze "Everything is always terrible"
  mirror analyze --file today.txt --json analysis.json --md analysis.md
  cat export.html | mirror analyze --html`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the entry from a file")
	analyzeCmd.Flags().BoolVar(&inputHTML, "html", false, "treat input as HTML and analyze its visible text")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (\"-\" for stdout)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, analyzer, err := setup(cmd)
	if err != nil {
		return err
	}

	text, err := readEntryText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	if inputHTML {
		text, err = ingest.VisibleText(text)
		if err != nil {
			return err
		}
	}

	entry := model.JournalEntry{ID: entryName(), Text: text, Timestamp: time.Now()}
	result, err := pipeline.AnalyzeEntry(analyzer, entry)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Debug("analyze command finished", "biases", len(result.Analysis.Biases))

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter && !noFooter)
	out := cmd.OutOrStdout()
	renderer.SetStdout(out)

	if outJSON == "" && outMD == "" {
		renderer.RenderSummary(out, result.Analysis)
		if cfg.Output.Verbose {
			for _, bias := range result.Analysis.Biases {
				fmt.Fprintf(out, "  - %s: %s\n", bias.Type, bias.Explanation)
			}
		}
		return nil
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(result.Analysis, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if outJSON != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := renderer.RenderMarkdown(renderer.AnalysisMarkdown(result), outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if outMD != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", outMD)
		}
	}

	return nil
}

// readEntryText takes the entry from args, --file or stdin, in that order
func readEntryText(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		if inputFile != "" {
			return "", fmt.Errorf("pass either text arguments or --file, not both")
		}
		return strings.Join(args, " "), nil
	}

	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read entry: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func entryName() string {
	if inputFile != "" {
		return inputFile
	}
	return "entry"
}
