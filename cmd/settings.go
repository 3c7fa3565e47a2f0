package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pomodoro/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the saved session defaults",
	Long:  "Without flags, prints the saved settings. Any flag updates that value;\nthe result is validated before it is saved.",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

var settingsOptions struct {
	goal         string
	target       int
	workMinutes  int
	breakMinutes int
	intervals    int
	weekStart    time.Weekday
	logPath      string
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	flags := settingsCmd.Flags()
	flags.StringVar(&settingsOptions.goal, "goal", "", "default goal description")
	flags.IntVar(&settingsOptions.target, "target", 0, "goal target in minutes (0 for none)")
	flags.IntVar(&settingsOptions.workMinutes, "work", 0, "work interval length in minutes")
	flags.IntVar(&settingsOptions.breakMinutes, "break", 0, "break length in minutes (0 skips breaks)")
	flags.IntVar(&settingsOptions.intervals, "intervals", 0, "work intervals per session")
	flags.Var(weekdayValue{weekday: &settingsOptions.weekStart}, "week-start", "first day of the week: monday or sunday")
	flags.StringVar(&settingsOptions.logPath, "log-path", "", "session log file (empty for the default)")
}

func runSettings(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	settings := env.settings
	flags := cmd.Flags()
	changed := false
	if flags.Changed("goal") {
		settings.Goal = settingsOptions.goal
		changed = true
	}
	if flags.Changed("target") {
		settings.GoalTargetMinutes = settingsOptions.target
		changed = true
	}
	if flags.Changed("work") {
		settings.WorkMinutes = settingsOptions.workMinutes
		changed = true
	}
	if flags.Changed("break") {
		settings.BreakMinutes = settingsOptions.breakMinutes
		changed = true
	}
	if flags.Changed("intervals") {
		settings.Intervals = settingsOptions.intervals
		changed = true
	}
	if flags.Changed("week-start") {
		settings.WeekStart = settingsOptions.weekStart
		changed = true
	}
	if flags.Changed("log-path") {
		settings.LogPath = settingsOptions.logPath
		changed = true
	}

	if changed {
		if err := storage.SaveSettings(env.configDir, settings); err != nil {
			return err
		}
		printf(cmd, "Saved %s\n", storage.SettingsPath(env.configDir))
	}

	target := "none"
	if settings.GoalTargetMinutes > 0 {
		target = fmt.Sprintf("%d min", settings.GoalTargetMinutes)
	}
	logPath := settings.LogPath
	if logPath == "" {
		logPath = storage.DefaultSessionLogPath(env.configDir) + " (default)"
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "Goal:\t%s\n", settings.Goal)
	fmt.Fprintf(writer, "Goal target:\t%s\n", target)
	fmt.Fprintf(writer, "Work:\t%d min\n", settings.WorkMinutes)
	fmt.Fprintf(writer, "Break:\t%d min\n", settings.BreakMinutes)
	fmt.Fprintf(writer, "Intervals:\t%d\n", settings.Intervals)
	fmt.Fprintf(writer, "Week starts:\t%s\n", settings.WeekStart)
	fmt.Fprintf(writer, "Session log:\t%s\n", logPath)
	return writer.Flush()
}
