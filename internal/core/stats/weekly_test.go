package stats

import (
	"testing"
	"time"

	"pomodoro/internal/core/model"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		reference time.Time
		weekStart time.Weekday
		start     time.Time
	}{
		{"monday week from wednesday", at(2026, time.October, 21, 15), time.Monday, at(2026, time.October, 19, 0)},
		{"monday week from monday", at(2026, time.October, 19, 0), time.Monday, at(2026, time.October, 19, 0)},
		{"monday week from sunday", at(2026, time.October, 25, 23), time.Monday, at(2026, time.October, 19, 0)},
		{"sunday week from saturday", at(2026, time.October, 24, 12), time.Sunday, at(2026, time.October, 18, 0)},
		{"monday week across new year", at(2027, time.January, 1, 8), time.Monday, at(2026, time.December, 28, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.reference, tt.weekStart)
			if !start.Equal(tt.start) {
				t.Fatalf("start = %v, want %v", start, tt.start)
			}
			if want := tt.start.AddDate(0, 0, 7); !end.Equal(want) {
				t.Fatalf("end = %v, want %v", end, want)
			}
		})
	}
}

func TestSummarizeCurrentWeekOnly(t *testing.T) {
	records := []model.Record{
		{Timestamp: at(2026, time.October, 19, 9), Goal: "a", FocusMinutes: 25, Intervals: 1},
		{Timestamp: at(2026, time.October, 20, 10), Goal: "b", FocusMinutes: 25, Intervals: 1},
		{Timestamp: at(2026, time.October, 22, 14), Goal: "c", FocusMinutes: 50, Intervals: 2},
		{Timestamp: at(2026, time.October, 14, 9), Goal: "old", FocusMinutes: 100, Intervals: 4},
	}

	summary := Summarize(records, at(2026, time.October, 22, 18), time.Monday)
	if summary.TotalMinutes != 100 || summary.Sessions != 3 || summary.Intervals != 4 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.TotalHours() < 1.66 || summary.TotalHours() > 1.67 {
		t.Fatalf("hours = %v", summary.TotalHours())
	}
}

func TestSummarizeEmptyWeek(t *testing.T) {
	records := []model.Record{
		{Timestamp: at(2026, time.September, 1, 9), FocusMinutes: 25, Intervals: 1},
	}
	summary := Summarize(records, at(2026, time.October, 19, 9), time.Monday)
	if summary.TotalMinutes != 0 || summary.Sessions != 0 || summary.Intervals != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if summary.TotalHours() != 0 {
		t.Fatal("expected zero hours")
	}
}

func TestSummarizeSundayWeekStart(t *testing.T) {
	records := []model.Record{
		{Timestamp: at(2026, time.October, 18, 9), FocusMinutes: 30, Intervals: 1},
		{Timestamp: at(2026, time.October, 24, 23), FocusMinutes: 20, Intervals: 1},
		{Timestamp: at(2026, time.October, 25, 0), FocusMinutes: 45, Intervals: 2},
	}

	sunday := Summarize(records, at(2026, time.October, 21, 12), time.Sunday)
	if sunday.TotalMinutes != 50 || sunday.Sessions != 2 {
		t.Fatalf("sunday week summary %+v", sunday)
	}

	monday := Summarize(records, at(2026, time.October, 21, 12), time.Monday)
	if monday.TotalMinutes != 65 || monday.Sessions != 2 {
		t.Fatalf("monday week summary %+v", monday)
	}
}
