// Package display turns session state into the text and control state the
// front ends show.
package display

import (
	"fmt"
	"math"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/core/stats"
)

// RecordTimeLayout is how record timestamps are listed.
const RecordTimeLayout = "2006-01-02 15:04"

// Controls tells which session controls are usable.
type Controls struct {
	Start  bool
	Pause  bool
	Resume bool
	Stop   bool
}

// ControlsFor returns the controls for a session in the given state.
func ControlsFor(running, paused bool) Controls {
	return Controls{
		Start:  !running,
		Pause:  running && !paused,
		Resume: running && paused,
		Stop:   running,
	}
}

// FormatRemaining renders a countdown as mm:ss.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// PhaseName returns the capitalized phase label.
func PhaseName(phase session.Phase) string {
	switch phase {
	case session.PhaseWork:
		return "Work"
	case session.PhaseBreak:
		return "Break"
	case session.PhaseComplete:
		return "Complete"
	}
	return "Idle"
}

// PhaseLine renders "Phase: Work (paused)".
func PhaseLine(status session.Status) string {
	line := "Phase: " + PhaseName(status.Phase)
	if status.Paused {
		line += " (paused)"
	}
	return line
}

// IntervalsLine renders "Intervals: 1 / 4".
func IntervalsLine(status session.Status) string {
	return fmt.Sprintf("Intervals: %d / %d", status.CompletedIntervals, status.Intervals)
}

// StatusLine is the one-line summary used by the tray and the console.
func StatusLine(status session.Status) string {
	switch status.Phase {
	case session.PhaseWork:
		return fmt.Sprintf("Work %s, interval %d of %d",
			FormatRemaining(status.Remaining), min(status.CompletedIntervals+1, status.Intervals), status.Intervals)
	case session.PhaseBreak:
		return fmt.Sprintf("Break %s, after interval %d of %d",
			FormatRemaining(status.Remaining), status.CompletedIntervals, status.Intervals)
	case session.PhaseComplete:
		return fmt.Sprintf("Complete, %d of %d intervals", status.CompletedIntervals, status.Intervals)
	}
	return "Idle"
}

// Progress returns the elapsed fraction of the current phase in [0, 1],
// rounded to whole percent.
func Progress(status session.Status, config model.SessionConfig) float64 {
	length := session.PhaseSeconds(config, status.Phase)
	if length <= 0 {
		return 0
	}
	remaining := int(status.Remaining / time.Second)
	elapsed := max(0, length-remaining)
	percent := math.Min(100, math.Round(float64(elapsed)/float64(length)*100))
	return percent / 100
}

// FormatHours renders hours with two decimals.
func FormatHours(summary stats.Summary) string {
	return fmt.Sprintf("%.2f", summary.TotalHours())
}

// RecordRow renders a record as table cells.
func RecordRow(record model.Record) []string {
	return []string{
		record.Timestamp.Format(RecordTimeLayout),
		record.Goal,
		fmt.Sprintf("%d", record.FocusMinutes),
		fmt.Sprintf("%d", record.Intervals),
	}
}

// RecordHeaders are the column titles of the records listing.
var RecordHeaders = []string{"Date", "Goal", "Focus (min)", "Intervals"}
