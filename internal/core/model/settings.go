package model

import (
	"fmt"
	"strings"
	"time"
)

// Settings defines editable user preferences. Front ends edit a copy and
// commit it with SessionConfig once it validates.
type Settings struct {
	Goal              string
	GoalTargetMinutes int

	WorkMinutes  int
	BreakMinutes int
	Intervals    int

	WeekStart time.Weekday
	LogPath   string
}

// DefaultSettings returns default settings for a new install.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:  25,
		BreakMinutes: 5,
		Intervals:    4,
		WeekStart:    time.Monday,
	}
}

// SessionConfig converts settings to a validated SessionConfig.
func (settings Settings) SessionConfig() (SessionConfig, error) {
	config := SessionConfig{
		WorkMinutes:  settings.WorkMinutes,
		BreakMinutes: settings.BreakMinutes,
		Intervals:    settings.Intervals,
	}
	if err := config.Validate(); err != nil {
		return SessionConfig{}, err
	}
	return config, nil
}

// Validate checks every field a user can edit.
func (settings Settings) Validate() error {
	if _, err := settings.SessionConfig(); err != nil {
		return err
	}
	if settings.GoalTargetMinutes < 0 {
		return fmt.Errorf("goal target minutes cannot be negative: %d", settings.GoalTargetMinutes)
	}
	if settings.WeekStart != time.Monday && settings.WeekStart != time.Sunday {
		return fmt.Errorf("week must start on monday or sunday, got %s", settings.WeekStart)
	}
	return nil
}

// ParseWeekday accepts "monday" or "sunday" in any case.
func ParseWeekday(value string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "monday", "mon":
		return time.Monday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	}
	return time.Monday, fmt.Errorf("unsupported week start %q", value)
}
