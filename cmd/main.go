// Package main implements the pomodoro focus timer.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
)

const appName = "Pomodoro"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "pomodoro",
	Short:        "Focus sessions with timed work and break intervals",
	Long:         "Pomodoro runs focus sessions for a goal, alternating work and break intervals,\nand keeps a log of finished sessions with weekly totals.\n\nWithout a subcommand the desktop app is started.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGUI,
}

var rootOptions struct {
	verbose   bool
	configDir string
	logPath   string
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&rootOptions.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.StringVar(&rootOptions.configDir, "config-dir", "", "directory holding settings.yaml (default: the user config dir)")
	flags.StringVar(&rootOptions.logPath, "log", "", "session log file (default: log_path setting or session_log.csv in the config dir)")
}

// environment is what every command needs: resolved paths, saved settings,
// the session log and a logger.
type environment struct {
	configDir string
	settings  model.Settings
	log       *storage.SessionLog
	logger    *slog.Logger
}

func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	level := slog.LevelWarn
	if rootOptions.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	configDir := rootOptions.configDir
	if configDir == "" {
		dir, err := platform.NewService().AppDir(appName)
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	settings, err := storage.LoadSettings(configDir)
	if err != nil {
		logger.Warn("using default settings", "path", storage.SettingsPath(configDir), "error", err)
	}

	logPath := rootOptions.logPath
	if logPath == "" {
		logPath = settings.LogPath
	}
	if logPath == "" {
		logPath = storage.DefaultSessionLogPath(configDir)
	}

	logger.Debug("environment loaded", "config_dir", configDir, "log", logPath)
	return &environment{
		configDir: configDir,
		settings:  settings,
		log:       storage.NewSessionLog(logPath, logger),
		logger:    logger,
	}, nil
}

// weekdayValue is a pflag.Value accepting monday or sunday.
type weekdayValue struct {
	weekday *time.Weekday
}

var _ pflag.Value = weekdayValue{}

func (value weekdayValue) String() string {
	if value.weekday == nil {
		return ""
	}
	return strings.ToLower(value.weekday.String())
}

func (value weekdayValue) Set(text string) error {
	weekday, err := model.ParseWeekday(text)
	if err != nil {
		return err
	}
	*value.weekday = weekday
	return nil
}

func (value weekdayValue) Type() string {
	return "weekday"
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
