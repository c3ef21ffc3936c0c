package insight

import (
	"testing"
	"time"

	"github.com/ppiankov/mirror/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInsightConfig() model.InsightConfig {
	return model.DefaultConfig().Insight
}

func TestTimeline_SortedWithRollingAverage(t *testing.T) {
	points := Timeline([]model.AnalyzedEntry{
		analyzed("c", day(2), 0.6, ""),
		analyzed("a", day(0), 0.0, ""),
		analyzed("b", day(1), 0.3, ""),
	}, testInsightConfig())

	require.Len(t, points, 3)
	assert.Equal(t, "a", points[0].EntryID)
	assert.Equal(t, "b", points[1].EntryID)
	assert.Equal(t, "c", points[2].EntryID)

	assert.InDelta(t, 0.0, points[0].RollingAverage, 1e-9)
	assert.InDelta(t, 0.15, points[1].RollingAverage, 1e-9)
	assert.InDelta(t, 0.3, points[2].RollingAverage, 1e-9)
}

func TestTimeline_WindowIsRightClosed(t *testing.T) {
	// An entry exactly seven days earlier falls outside the window
	points := Timeline([]model.AnalyzedEntry{
		analyzed("old", day(0), -1.0, ""),
		analyzed("edge", day(7), 1.0, ""),
		analyzed("inside", day(7).Add(-time.Second), 0.0, ""),
	}, testInsightConfig())

	require.Len(t, points, 3)
	assert.Equal(t, "inside", points[1].EntryID)
	assert.InDelta(t, -0.5, points[1].RollingAverage, 1e-9)
	assert.Equal(t, "edge", points[2].EntryID)
	assert.InDelta(t, 0.5, points[2].RollingAverage, 1e-9)
}

func TestTimeline_MoodShift(t *testing.T) {
	points := Timeline([]model.AnalyzedEntry{
		analyzed("a", day(0), 0.0, ""),
		analyzed("b", day(1), 0.25, ""),
		analyzed("c", day(2), -0.25, ""),
		analyzed("d", day(3), -0.5, ""),
	}, testInsightConfig())

	require.Len(t, points, 4)
	assert.False(t, points[0].MoodShift, "first point has nothing to compare with")
	assert.False(t, points[1].MoodShift)
	assert.True(t, points[2].MoodShift)
	assert.False(t, points[3].MoodShift)
}

func TestTimeline_Volatility(t *testing.T) {
	points := Timeline([]model.AnalyzedEntry{
		analyzed("a", day(0), 1.0, ""),
		analyzed("b", day(1), -1.0, ""),
		analyzed("c", day(2), 1.0, ""),
	}, testInsightConfig())

	require.Len(t, points, 3)
	assert.False(t, points[0].Volatile, "a single point has no stddev")
	assert.True(t, points[1].Volatile)
	assert.True(t, points[2].Volatile)
}

func TestTimeline_VolatilityUsesLastSevenPoints(t *testing.T) {
	entries := []model.AnalyzedEntry{analyzed("swing", day(0), -1.0, "")}
	for i := 1; i <= 7; i++ {
		entries = append(entries, analyzed("calm", day(0).Add(time.Duration(i)*time.Hour), 1.0, ""))
	}

	points := Timeline(entries, testInsightConfig())

	require.Len(t, points, 8)
	assert.True(t, points[6].Volatile)
	assert.False(t, points[7].Volatile)
}

func TestTimeline_Empty(t *testing.T) {
	assert.Empty(t, Timeline(nil, testInsightConfig()))
}

func TestWeekStart(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []time.Time{
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC),
	}
	for _, ts := range tests {
		assert.Equal(t, monday, WeekStart(ts), ts.String())
	}

	// Sunday belongs to the week that started six days earlier, across a month boundary
	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), WeekStart(time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)))
}

func TestWeekRange(t *testing.T) {
	start, end := WeekRange(time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestInWeek(t *testing.T) {
	entries := []model.AnalyzedEntry{
		analyzed("prev sunday", day(-1), 0, ""),
		analyzed("monday", day(0), 0, ""),
		analyzed("sunday", day(6), 0, ""),
		analyzed("sunday last second", time.Date(2024, 3, 10, 23, 59, 59, 500_000_000, time.UTC), 0, ""),
		analyzed("next monday midnight", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 0, ""),
		analyzed("next monday", day(7), 0, ""),
	}

	got := InWeek(entries, day(3))
	require.Len(t, got, 3)
	assert.Equal(t, "monday", got[0].Entry.ID)
	assert.Equal(t, "sunday", got[1].Entry.ID)
	assert.Equal(t, "sunday last second", got[2].Entry.ID)
}
