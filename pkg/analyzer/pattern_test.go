package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestAnalyzePatternEmptyInput(t *testing.T) {
	pattern := AnalyzePattern(nil)

	assert.Empty(t, pattern.MostActiveDay)
	assert.Nil(t, pattern.MostActiveHour)
	assert.Zero(t, pattern.PostFrequencyDays)

	// Histograms still carry every bucket
	require.Len(t, pattern.DayActivity, 7)
	require.Len(t, pattern.HourActivity, 24)
	for day, count := range pattern.DayActivity {
		assert.Zero(t, count, "day %s", day)
	}
	for hour, count := range pattern.HourActivity {
		assert.Zero(t, count, "hour %s", hour)
	}
}

func TestAnalyzePatternSinglePost(t *testing.T) {
	// 2024-06-03 is a Monday
	pattern := AnalyzePattern([]time.Time{ts("2024-06-03 09:30:00")})

	assert.Equal(t, "Monday", pattern.MostActiveDay)
	require.NotNil(t, pattern.MostActiveHour)
	assert.Equal(t, 9, *pattern.MostActiveHour)
	assert.Equal(t, 1, pattern.DayActivity["Monday"])
	assert.Equal(t, 1, pattern.HourActivity["9"])

	// A single post has no measurable frequency
	assert.Zero(t, pattern.PostFrequencyDays)
}

func TestAnalyzePatternHistogramAndFrequency(t *testing.T) {
	// Newest first: Wednesday once, Monday twice
	timestamps := []time.Time{
		ts("2024-06-05 14:00:00"),
		ts("2024-06-03 10:00:00"),
		ts("2024-06-03 09:00:00"),
	}

	pattern := AnalyzePattern(timestamps)

	assert.Equal(t, "Monday", pattern.MostActiveDay)
	assert.Equal(t, 2, pattern.DayActivity["Monday"])
	assert.Equal(t, 1, pattern.DayActivity["Wednesday"])
	assert.Equal(t, 0, pattern.DayActivity["Sunday"])

	require.NotNil(t, pattern.MostActiveHour)
	assert.Equal(t, 9, *pattern.MostActiveHour)

	// Span is 2 days and 5 hours, truncated to 2 whole days
	assert.InDelta(t, 1.5, pattern.PostFrequencyDays, 1e-9)
}

func TestAnalyzePatternDayTieBreak(t *testing.T) {
	// One post each on Wednesday and Monday; Monday enumerates first
	pattern := AnalyzePattern([]time.Time{
		ts("2024-06-05 08:00:00"),
		ts("2024-06-03 20:00:00"),
	})

	assert.Equal(t, "Monday", pattern.MostActiveDay)
}

func TestAnalyzePatternHourTieBreak(t *testing.T) {
	// Same count at hours 8 and 20; the lower hour wins
	pattern := AnalyzePattern([]time.Time{
		ts("2024-06-05 20:00:00"),
		ts("2024-06-03 08:00:00"),
	})

	require.NotNil(t, pattern.MostActiveHour)
	assert.Equal(t, 8, *pattern.MostActiveHour)
}

func TestAnalyzePatternSubDaySpan(t *testing.T) {
	// Two posts three hours apart: the span clamps to one day
	pattern := AnalyzePattern([]time.Time{
		ts("2024-06-03 12:00:00"),
		ts("2024-06-03 09:00:00"),
	})

	assert.InDelta(t, 2.0, pattern.PostFrequencyDays, 1e-9)
}

func TestAnalyzePatternReversedInput(t *testing.T) {
	// Oldest-first input must not produce a negative frequency
	pattern := AnalyzePattern([]time.Time{
		ts("2024-06-01 09:00:00"),
		ts("2024-06-05 09:00:00"),
	})

	assert.InDelta(t, 0.5, pattern.PostFrequencyDays, 1e-9)
}
