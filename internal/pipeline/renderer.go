package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/mirror/internal/model"
)

const footer = "_Generated by Mirror. Mirror describes language patterns in your writing; it is not a diagnosis._\n"

// Renderer writes analyses and summaries as JSON or Markdown
type Renderer struct {
	includeFooter bool
	stdout        io.Writer
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, stdout: os.Stdout}
}

// SetStdout redirects output written to "-"
func (r *Renderer) SetStdout(w io.Writer) {
	r.stdout = w
}

// RenderJSON writes v as indented JSON to path ("-" for stdout)
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	return r.write(data, path)
}

// RenderMarkdown writes markdown to path ("-" for stdout)
func (r *Renderer) RenderMarkdown(markdown string, path string) error {
	return r.write([]byte(markdown), path)
}

func (r *Renderer) write(data []byte, path string) error {
	if path == "-" {
		_, err := r.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// AnalysisMarkdown renders one analyzed entry
func (r *Renderer) AnalysisMarkdown(entry model.AnalyzedEntry) string {
	var b strings.Builder
	b.WriteString("# Entry Analysis\n\n")
	writeEntrySection(&b, entry, "##")
	r.writeFooter(&b)
	return b.String()
}

// BatchMarkdown renders a set of analyzed entries with a bias frequency table
func (r *Renderer) BatchMarkdown(entries []model.AnalyzedEntry, frequency map[model.BiasType]int) string {
	var b strings.Builder
	b.WriteString("# Journal Analysis\n\n")
	fmt.Fprintf(&b, "Entries analyzed: %d\n\n", len(entries))

	writeFrequencyTable(&b, frequency)

	for _, entry := range entries {
		writeEntrySection(&b, entry, "##")
	}
	r.writeFooter(&b)
	return b.String()
}

// SummaryMarkdown renders a weekly summary and its mood timeline
func (r *Renderer) SummaryMarkdown(summary model.WeeklySummary, timeline []model.TimelinePoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Week of %s\n\n", summary.WeekStart.Format("2006-01-02"))
	b.WriteString(summary.SummaryText)
	b.WriteString("\n\n")

	if len(summary.Themes) > 0 {
		fmt.Fprintf(&b, "**Themes:** %s\n\n", strings.Join(summary.Themes, ", "))
	}
	if len(summary.Emotions) > 0 {
		fmt.Fprintf(&b, "**Emotional patterns:** %s\n\n", strings.Join(summary.Emotions, ", "))
	}

	writeFrequencyTable(&b, summary.BiasFrequency)

	if len(timeline) > 0 {
		b.WriteString("## Mood Timeline\n\n")
		b.WriteString("| Date | Valence | Rolling avg | Notes |\n")
		b.WriteString("|---|---:|---:|---|\n")
		for _, p := range timeline {
			var notes []string
			if p.MoodShift {
				notes = append(notes, "mood shift")
			}
			if p.Volatile {
				notes = append(notes, "volatile")
			}
			fmt.Fprintf(&b, "| %s | %.2f | %.2f | %s |\n",
				p.Timestamp.Format("2006-01-02 15:04"), p.Valence, p.RollingAverage, strings.Join(notes, ", "))
		}
		b.WriteString("\n")
	}

	r.writeFooter(&b)
	return b.String()
}

// RenderSummary prints a one-line summary of an analysis
func (r *Renderer) RenderSummary(w io.Writer, analysis model.EntryAnalysis) {
	fmt.Fprintf(w, "Sentiment: %s (%.2f)", analysis.Sentiment.Label, analysis.Sentiment.Score)
	if len(analysis.Biases) == 0 {
		fmt.Fprintf(w, " · no biases detected\n")
		return
	}
	types := make([]string, len(analysis.Biases))
	for i, bias := range analysis.Biases {
		types[i] = string(bias.Type)
	}
	fmt.Fprintf(w, " · biases: %s\n", strings.Join(types, ", "))
}

func (r *Renderer) writeFooter(b *strings.Builder) {
	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString(footer)
	}
}

func writeEntrySection(b *strings.Builder, entry model.AnalyzedEntry, heading string) {
	title := entry.Entry.ID
	if title == "" {
		title = "Entry"
	}
	fmt.Fprintf(b, "%s %s\n\n", heading, title)
	if !entry.Entry.Timestamp.IsZero() {
		fmt.Fprintf(b, "_%s_\n\n", entry.Entry.Timestamp.Format("2006-01-02 15:04"))
	}

	s := entry.Analysis.Sentiment
	fmt.Fprintf(b, "**Sentiment:** %s (score %.2f)\n\n", s.Label, s.Score)

	if len(entry.Analysis.Biases) == 0 {
		b.WriteString("No cognitive bias patterns detected.\n\n")
		return
	}

	for _, bias := range entry.Analysis.Biases {
		fmt.Fprintf(b, "- **%s**: %s\n", bias.Type, bias.Explanation)
		if bias.Excerpt != "" {
			fmt.Fprintf(b, "  > %s\n", bias.Excerpt)
		}
	}
	b.WriteString("\n")
}

func writeFrequencyTable(b *strings.Builder, frequency map[model.BiasType]int) {
	if len(frequency) == 0 {
		return
	}
	b.WriteString("| Bias | Count |\n|---|---:|\n")
	for _, t := range model.BiasTypes() {
		if n := frequency[t]; n > 0 {
			fmt.Fprintf(b, "| %s | %d |\n", t, n)
		}
	}
	b.WriteString("\n")
}
