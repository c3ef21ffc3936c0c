package insight

import (
	"github.com/ppiankov/mirror/internal/model"
)

// volatilitySpan is the number of trailing points the volatility stddev covers
const volatilitySpan = 7

// Timeline places entries on a mood timeline sorted by timestamp.
// RollingAverage covers entries in (t-window, t]; volatility is the sample
// stddev of the last volatilitySpan points and needs at least two of them.
func Timeline(entries []model.AnalyzedEntry, cfg model.InsightConfig) []model.TimelinePoint {
	sorted := Chronological(entries)
	points := make([]model.TimelinePoint, len(sorted))

	valences := make([]float64, len(sorted))
	for i, entry := range sorted {
		valences[i] = entry.Analysis.Sentiment.Valence
	}

	first := 0
	for i, entry := range sorted {
		ts := entry.Entry.Timestamp
		for first < i && !sorted[first].Entry.Timestamp.After(ts.Add(-cfg.RollingWindow)) {
			first++
		}

		point := model.TimelinePoint{
			EntryID:        entry.Entry.ID,
			Timestamp:      ts,
			Valence:        valences[i],
			RollingAverage: mean(valences[first : i+1]),
		}

		if span := valences[max(0, i-volatilitySpan+1) : i+1]; len(span) >= 2 {
			point.Volatile = stddev(span) > cfg.VolatilityThreshold
		}

		if i > 0 {
			delta := valences[i] - valences[i-1]
			point.MoodShift = delta > cfg.ShiftThreshold || delta < -cfg.ShiftThreshold
		}

		points[i] = point
	}

	return points
}
