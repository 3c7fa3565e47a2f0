// Package stats aggregates session records into weekly totals.
package stats

import (
	"time"

	"pomodoro/internal/core/model"
)

// Summary is the aggregate of the records that fall into one week.
type Summary struct {
	Start        time.Time
	End          time.Time
	TotalMinutes int64
	Sessions     int
	Intervals    int
}

// TotalHours returns TotalMinutes as fractional hours.
func (summary Summary) TotalHours() float64 {
	return float64(summary.TotalMinutes) / 60
}

// WeekBounds returns the half-open range [start, end) of the week that
// contains reference, where weeks begin at midnight on weekStart in
// reference's location.
func WeekBounds(reference time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	year, month, day := reference.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, reference.Location())
	offset := (int(midnight.Weekday()) - int(weekStart) + 7) % 7
	start := midnight.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// Summarize totals the records whose timestamp falls into the week
// containing reference.
func Summarize(records []model.Record, reference time.Time, weekStart time.Weekday) Summary {
	start, end := WeekBounds(reference, weekStart)
	summary := Summary{Start: start, End: end}
	for _, record := range records {
		if record.Timestamp.Before(start) || !record.Timestamp.Before(end) {
			continue
		}
		summary.TotalMinutes += record.FocusMinutes
		summary.Sessions++
		summary.Intervals += record.Intervals
	}
	return summary
}
