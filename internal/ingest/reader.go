// Package ingest reads journal entries from files in several formats.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/mirror/internal/model"
	"gopkg.in/yaml.v3"
)

// maxLineSize bounds a single JSONL record
const maxLineSize = 1 << 20

// ReadFile reads entries from path, choosing the format by extension.
// Entries without an ID get a generated one; blank entries are dropped.
func ReadFile(path string) ([]model.JournalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	entries, err := Parse(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Format returns the input format implied by a file name
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".html", ".htm":
		return "html"
	default:
		return "text"
	}
}

// Parse decodes entries from data in the given format
func Parse(data []byte, format string) ([]model.JournalEntry, error) {
	var (
		entries []model.JournalEntry
		err     error
	)

	switch format {
	case "jsonl":
		entries, err = parseJSONLines(data)
	case "json":
		err = json.Unmarshal(data, &entries)
	case "yaml":
		err = yaml.Unmarshal(data, &entries)
	case "html":
		entries, err = parseHTML(data)
	case "text":
		entries = parseText(data)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}

	return normalize(entries), nil
}

func parseJSONLines(data []byte) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		var entry model.JournalEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseText splits plain text into entries on blank lines
func parseText(data []byte) []model.JournalEntry {
	var entries []model.JournalEntry
	var current []string

	flush := func() {
		if len(current) > 0 {
			entries = append(entries, model.JournalEntry{Text: strings.Join(current, "\n")})
			current = nil
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return entries
}

func normalize(entries []model.JournalEntry) []model.JournalEntry {
	out := make([]model.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Text) == "" {
			continue
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		out = append(out, entry)
	}
	return out
}
