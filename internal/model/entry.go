package model

import "time"

// JournalEntry is a single journal entry as read from an input source.
// The persistence layer that owns entries lives outside this module.
type JournalEntry struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Text      string    `json:"entry_text" yaml:"entry_text"`
	Timestamp time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// AnalyzedEntry pairs an entry with its analysis
type AnalyzedEntry struct {
	Entry    JournalEntry  `json:"entry"`
	Analysis EntryAnalysis `json:"analysis"`
}

// WeeklySummary is a rule-based digest of one week of entries
type WeeklySummary struct {
	WeekStart     time.Time        `json:"week_start"`
	EntryCount    int              `json:"entry_count"`
	SummaryText   string           `json:"summary_text"`
	Themes        []string         `json:"themes"`
	Emotions      []string         `json:"emotions"`
	BiasFrequency map[BiasType]int `json:"bias_frequency"`
}

// TimelinePoint is one entry's position on the mood timeline
type TimelinePoint struct {
	EntryID        string    `json:"entry_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Valence        float64   `json:"valence"`
	RollingAverage float64   `json:"rolling_average"`
	Volatile       bool      `json:"volatile"`   // Rolling stddev above threshold
	MoodShift      bool      `json:"mood_shift"` // Large jump from the previous point
}
