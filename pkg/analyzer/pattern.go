package analyzer

import (
	"math"
	"strconv"
	"time"

	"instascan/pkg/models"
)

// dayNames is the canonical bucket enumeration order for the day
// histogram and the most-active-day tie break.
var dayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// AnalyzePattern computes day-of-week and hour-of-day histograms, the
// most active buckets and the average posting frequency for the given
// UTC timestamps.
//
// Input is assumed newest-first, matching the provider's natural post
// order; the day span is taken on absolute value so a reversed input
// cannot flip the frequency's sign.
func AnalyzePattern(timestamps []time.Time) models.TimePattern {
	dayCounts := make([]int, len(dayNames))
	hourCounts := make([]int, 24)

	for _, ts := range timestamps {
		ts = ts.UTC()
		// time.Weekday enumerates Sunday first; shift to Monday-first
		dayCounts[(int(ts.Weekday())+6)%7]++
		hourCounts[ts.Hour()]++
	}

	pattern := models.TimePattern{
		DayActivity:  make(map[string]int, len(dayNames)),
		HourActivity: make(map[string]int, 24),
	}
	for i, name := range dayNames {
		pattern.DayActivity[name] = dayCounts[i]
	}
	for hour, count := range hourCounts {
		pattern.HourActivity[strconv.Itoa(hour)] = count
	}

	if len(timestamps) == 0 {
		return pattern
	}

	// First maximum in canonical enumeration order wins ties
	bestDay := 0
	for i, count := range dayCounts {
		if count > dayCounts[bestDay] {
			bestDay = i
		}
	}
	pattern.MostActiveDay = dayNames[bestDay]

	bestHour := 0
	for hour, count := range hourCounts {
		if count > hourCounts[bestHour] {
			bestHour = hour
		}
	}
	pattern.MostActiveHour = &bestHour

	if len(timestamps) > 1 {
		span := timestamps[0].Sub(timestamps[len(timestamps)-1])
		days := int(math.Abs(span.Hours()) / 24)
		if days < 1 {
			days = 1
		}
		pattern.PostFrequencyDays = float64(len(timestamps)) / float64(days)
	}

	return pattern
}
