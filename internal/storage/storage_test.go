package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pomodoro/internal/core/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionLogAppendAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session_log.csv")
	log := NewSessionLog(path, quietLogger())

	first := model.Record{
		Timestamp:    time.Date(2026, time.October, 19, 9, 30, 15, 0, time.Local),
		Goal:         "read chapter 3, then notes",
		FocusMinutes: 50,
		Intervals:    2,
	}
	second := model.Record{
		Timestamp:    time.Date(2026, time.October, 19, 14, 0, 0, 0, time.Local),
		Goal:         `path\to\thesis`,
		FocusMinutes: 25,
		Intervals:    1,
	}
	for _, record := range []model.Record{first, second} {
		if err := log.Append(record); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	want := "2026-10-19T09:30:15,read chapter 3\\, then notes,50,2\n" +
		"2026-10-19T14:00:00,path\\\\to\\\\thesis,25,1\n"
	if string(raw) != want {
		t.Fatalf("file contents:\n%q\nwant:\n%q", raw, want)
	}

	records, err := log.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("read %d records, want 2", len(records))
	}
	if records[0].Goal != first.Goal || !records[0].Timestamp.Equal(first.Timestamp) {
		t.Fatalf("first record = %+v", records[0])
	}
	if records[1].Goal != second.Goal || records[1].FocusMinutes != 25 {
		t.Fatalf("second record = %+v", records[1])
	}
}

func TestSessionLogMissingFileIsEmpty(t *testing.T) {
	log := NewSessionLog(filepath.Join(t.TempDir(), "absent.csv"), quietLogger())
	records, err := log.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestSessionLogSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_log.csv")
	contents := strings.Join([]string{
		"2026-10-19T09:00:00,good,25,1",
		"",
		"not a record",
		"2026-10-19T10:00:00,bad minutes,abc,1",
		"2026-10-20T08:15,short time,30,1,extra",
		"   ",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records, err := NewSessionLog(path, quietLogger()).ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("read %d records, want 2", len(records))
	}
	if records[0].Goal != "good" || records[1].Goal != "short time" || records[1].FocusMinutes != 30 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestSessionLogAppendFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	log := NewSessionLog(filepath.Join(blocker, "session_log.csv"), quietLogger())
	err := log.Append(model.Record{Timestamp: time.Now(), Goal: "g", FocusMinutes: 1})
	if err == nil || !strings.Contains(err.Error(), "append session record") {
		t.Fatalf("expected wrapped append error, got %v", err)
	}
}

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Pomodoro")
	settings := model.Settings{
		Goal:              "thesis",
		GoalTargetMinutes: 120,
		WorkMinutes:       50,
		BreakMinutes:      0,
		Intervals:         3,
		WeekStart:         time.Sunday,
		LogPath:           "/tmp/focus.csv",
	}
	if err := SaveSettings(dir, settings); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != settings {
		t.Fatalf("loaded %+v, want %+v", loaded, settings)
	}
}

func TestSaveSettingsRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	settings := model.DefaultSettings()
	settings.Intervals = 0
	if err := SaveSettings(dir, settings); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(SettingsPath(dir)); !os.IsNotExist(err) {
		t.Fatalf("invalid settings must not be written, stat err = %v", err)
	}
}

func TestLoadSettingsFallsBackPerField(t *testing.T) {
	dir := t.TempDir()
	raw := "work_minutes: -5\nintervals: 6\nweek_start: friday\n"
	if err := os.WriteFile(SettingsPath(dir), []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	settings, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defaults := model.DefaultSettings()
	if settings.WorkMinutes != defaults.WorkMinutes || settings.BreakMinutes != defaults.BreakMinutes {
		t.Fatalf("expected default durations, got %+v", settings)
	}
	if settings.Intervals != 6 || settings.WeekStart != time.Monday {
		t.Fatalf("unexpected settings %+v", settings)
	}
}

func TestLoadSettingsRejectsBrokenYaml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(SettingsPath(dir), []byte("work_minutes: [unterminated"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	settings, err := LoadSettings(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if settings != model.DefaultSettings() {
		t.Fatalf("expected defaults alongside the error, got %+v", settings)
	}
}
