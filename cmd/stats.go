package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pomodoro/internal/core/tracker"
	"pomodoro/internal/ui/display"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show this week's focus totals",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsOptions struct {
	date      string
	list      bool
	weekStart time.Weekday
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsOptions.date, "date", "", "report the week containing this date (YYYY-MM-DD, default: today)")
	statsCmd.Flags().BoolVar(&statsOptions.list, "list", false, "list every recorded session")
	statsCmd.Flags().Var(weekdayValue{weekday: &statsOptions.weekStart}, "week-start", "first day of the week: monday or sunday (default: settings)")
}

func runStats(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	reference := time.Now()
	if statsOptions.date != "" {
		reference, err = time.ParseInLocation(time.DateOnly, statsOptions.date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", statsOptions.date)
		}
	}
	weekStart := env.settings.WeekStart
	if cmd.Flags().Changed("week-start") {
		weekStart = statsOptions.weekStart
	}

	report, err := tracker.New(env.log, tracker.Config{Logger: env.logger}).Weekly(reference, weekStart)
	if err != nil {
		return err
	}

	summary := report.Summary
	printf(cmd, "Week of %s to %s\n", summary.Start.Format("Mon 2006-01-02"), summary.End.AddDate(0, 0, -1).Format("Mon 2006-01-02"))
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "Focus minutes:\t%d\n", summary.TotalMinutes)
	fmt.Fprintf(writer, "Focus hours:\t%s\n", display.FormatHours(summary))
	fmt.Fprintf(writer, "Sessions:\t%d\n", summary.Sessions)
	fmt.Fprintf(writer, "Intervals:\t%d\n", summary.Intervals)
	if err := writer.Flush(); err != nil {
		return err
	}

	if statsOptions.list {
		printf(cmd, "\n")
		if len(report.Records) == 0 {
			printf(cmd, "No sessions recorded yet.\n")
		} else {
			writer = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printRow(writer, display.RecordHeaders)
			for _, record := range report.Records {
				printRow(writer, display.RecordRow(record))
			}
			if err := writer.Flush(); err != nil {
				return err
			}
		}
	}

	printf(cmd, "Log file: %s\n", env.log.Path())
	return nil
}

func printRow(writer *tabwriter.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(writer, "\t")
		}
		fmt.Fprint(writer, cell)
	}
	fmt.Fprintln(writer)
}
