package insight

import (
	"time"

	"github.com/ppiankov/mirror/internal/model"
)

// WeekStart returns Monday 00:00 of t's week, in t's location
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-daysSinceMonday, 0, 0, 0, 0, t.Location())
}

// WeekRange returns the half-open range [start, end) of t's week,
// where end is the following Monday 00:00
func WeekRange(t time.Time) (time.Time, time.Time) {
	start := WeekStart(t)
	return start, start.AddDate(0, 0, 7)
}

// InWeek returns the entries whose timestamp falls in the week starting at weekStart
func InWeek(entries []model.AnalyzedEntry, weekStart time.Time) []model.AnalyzedEntry {
	start, end := WeekRange(weekStart)

	var out []model.AnalyzedEntry
	for _, entry := range entries {
		ts := entry.Entry.Timestamp
		if !ts.Before(start) && ts.Before(end) {
			out = append(out, entry)
		}
	}
	return out
}
