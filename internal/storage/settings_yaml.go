package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Goal              string `yaml:"goal,omitempty"`
	GoalTargetMinutes int    `yaml:"goal_target_minutes"`
	WorkMinutes       int    `yaml:"work_minutes"`
	BreakMinutes      *int   `yaml:"break_minutes"`
	Intervals         int    `yaml:"intervals"`
	WeekStart         string `yaml:"week_start"`
	LogPath           string `yaml:"log_path,omitempty"`
}

// SettingsPath returns the settings file location inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(configDir string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(SettingsPath(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings validates and writes user preferences to YAML.
func SaveSettings(configDir string, settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	configPath := SettingsPath(configDir)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	breakMinutes := settings.BreakMinutes
	fileData := yamlSettings{
		Goal:              settings.Goal,
		GoalTargetMinutes: settings.GoalTargetMinutes,
		WorkMinutes:       settings.WorkMinutes,
		BreakMinutes:      &breakMinutes,
		Intervals:         settings.Intervals,
		WeekStart:         weekdayName(settings.WeekStart),
		LogPath:           settings.LogPath,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	settings.Goal = fileData.Goal
	settings.LogPath = fileData.LogPath

	if fileData.GoalTargetMinutes > 0 {
		settings.GoalTargetMinutes = fileData.GoalTargetMinutes
	}
	if fileData.WorkMinutes > 0 {
		settings.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.BreakMinutes != nil && *fileData.BreakMinutes >= 0 {
		settings.BreakMinutes = *fileData.BreakMinutes
	}
	if fileData.Intervals > 0 {
		settings.Intervals = fileData.Intervals
	}
	if weekStart, err := model.ParseWeekday(fileData.WeekStart); err == nil {
		settings.WeekStart = weekStart
	}
}

func weekdayName(weekday time.Weekday) string {
	if weekday == time.Sunday {
		return "sunday"
	}
	return "monday"
}
