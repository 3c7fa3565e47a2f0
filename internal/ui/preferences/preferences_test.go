package preferences

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"pomodoro/internal/core/model"
)

func TestFormValuesApply(t *testing.T) {
	base := model.DefaultSettings()
	base.Goal = "thesis"

	updated, err := FormValues{
		WorkMinutes:       " 50 ",
		BreakMinutes:      "0",
		Intervals:         "3",
		GoalTargetMinutes: "",
		WeekStart:         "Sunday",
	}.Apply(base)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if updated.WorkMinutes != 50 || updated.BreakMinutes != 0 || updated.Intervals != 3 {
		t.Fatalf("unexpected durations %+v", updated)
	}
	if updated.GoalTargetMinutes != 0 || updated.WeekStart != time.Sunday || updated.Goal != "thesis" {
		t.Fatalf("unexpected settings %+v", updated)
	}
}

func TestFormValuesApplyRejects(t *testing.T) {
	base := model.DefaultSettings()
	tests := []struct {
		name   string
		values FormValues
		target error
	}{
		{"zero work", FormValues{WorkMinutes: "0", BreakMinutes: "5", Intervals: "4", WeekStart: "Monday"}, model.ErrInvalidWorkMinutes},
		{"negative break", FormValues{WorkMinutes: "25", BreakMinutes: "-1", Intervals: "4", WeekStart: "Monday"}, model.ErrInvalidBreakMinutes},
		{"no intervals", FormValues{WorkMinutes: "25", BreakMinutes: "5", Intervals: "", WeekStart: "Monday"}, model.ErrInvalidIntervals},
		{"not a number", FormValues{WorkMinutes: "ten", BreakMinutes: "5", Intervals: "4", WeekStart: "Monday"}, nil},
		{"negative target", FormValues{WorkMinutes: "25", BreakMinutes: "5", Intervals: "4", GoalTargetMinutes: "-10", WeekStart: "Monday"}, nil},
		{"bad week start", FormValues{WorkMinutes: "25", BreakMinutes: "5", Intervals: "4", WeekStart: "Friday"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.values.Apply(base)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if got != base {
				t.Fatalf("settings changed on error: %+v", got)
			}
		})
	}
}

func TestValuesFromSettingsRoundTrip(t *testing.T) {
	settings := model.DefaultSettings()
	settings.WeekStart = time.Sunday
	settings.GoalTargetMinutes = 90

	values := ValuesFromSettings(settings)
	if values.WeekStart != "Sunday" || values.GoalTargetMinutes != "90" {
		t.Fatalf("unexpected values %+v", values)
	}
	again, err := values.Apply(settings)
	if err != nil || again != settings {
		t.Fatalf("round trip = %+v, %v", again, err)
	}
}

func TestWindowSaveValidatesAndReports(t *testing.T) {
	app := test.NewTempApp(t)

	var saved []model.Settings
	prefs := New(app, model.DefaultSettings(), func(settings model.Settings) error {
		saved = append(saved, settings)
		return nil
	})

	prefs.intervals.SetText("0")
	test.Tap(prefs.saveButton)
	if len(saved) != 0 {
		t.Fatal("invalid settings must not be saved")
	}
	if !prefs.errorLabel.Visible() {
		t.Fatal("validation error must be shown")
	}

	prefs.intervals.SetText("6")
	prefs.workMinutes.SetText("45")
	test.Tap(prefs.saveButton)
	if len(saved) != 1 {
		t.Fatalf("saved %d times, want 1", len(saved))
	}
	if saved[0].Intervals != 6 || saved[0].WorkMinutes != 45 {
		t.Fatalf("unexpected saved settings %+v", saved[0])
	}
	if prefs.Settings() != saved[0] || prefs.errorLabel.Visible() {
		t.Fatal("window must keep the saved settings and clear the error")
	}
}

func TestWindowSaveErrorKeepsPreviousSettings(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, model.DefaultSettings(), func(model.Settings) error {
		return errors.New("disk full")
	})

	prefs.workMinutes.SetText("30")
	test.Tap(prefs.saveButton)
	if prefs.Settings() != model.DefaultSettings() {
		t.Fatalf("failed save changed settings: %+v", prefs.Settings())
	}
	if prefs.errorLabel.Text != "disk full" {
		t.Fatalf("error label = %q", prefs.errorLabel.Text)
	}

	prefs.SetEditable(false)
	if !prefs.saveButton.Disabled() || !prefs.workMinutes.Disabled() {
		t.Fatal("form must be read-only while a session runs")
	}
}
