package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomodoro/internal/core/model"
)

// WeekStartOptions are the labels offered for the first day of the week.
var WeekStartOptions = []string{"Monday", "Sunday"}

// FormValues is the raw text of the preferences form.
type FormValues struct {
	WorkMinutes       string
	BreakMinutes      string
	Intervals         string
	GoalTargetMinutes string
	WeekStart         string
}

// ValuesFromSettings renders settings into form text.
func ValuesFromSettings(settings model.Settings) FormValues {
	weekStart := WeekStartOptions[0]
	if settings.WeekStart == time.Sunday {
		weekStart = WeekStartOptions[1]
	}
	return FormValues{
		WorkMinutes:       strconv.Itoa(settings.WorkMinutes),
		BreakMinutes:      strconv.Itoa(settings.BreakMinutes),
		Intervals:         strconv.Itoa(settings.Intervals),
		GoalTargetMinutes: strconv.Itoa(settings.GoalTargetMinutes),
		WeekStart:         weekStart,
	}
}

// Apply parses values on top of settings. The result is validated; on error
// settings are returned unchanged.
func (values FormValues) Apply(settings model.Settings) (model.Settings, error) {
	updated := settings

	fields := []struct {
		name   string
		text   string
		target *int
	}{
		{"work minutes", values.WorkMinutes, &updated.WorkMinutes},
		{"break minutes", values.BreakMinutes, &updated.BreakMinutes},
		{"intervals", values.Intervals, &updated.Intervals},
		{"goal target minutes", values.GoalTargetMinutes, &updated.GoalTargetMinutes},
	}
	for _, field := range fields {
		parsed, err := parseInt(field.text)
		if err != nil {
			return settings, fmt.Errorf("%s: %w", field.name, err)
		}
		*field.target = parsed
	}

	weekStart, err := model.ParseWeekday(values.WeekStart)
	if err != nil {
		return settings, err
	}
	updated.WeekStart = weekStart

	if err := updated.Validate(); err != nil {
		return settings, err
	}
	return updated, nil
}

func parseInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", value)
	}
	return parsed, nil
}
