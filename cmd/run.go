package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pomodoro/internal/core/session"
	"pomodoro/internal/core/tracker"
	"pomodoro/internal/ui/display"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a focus session in the terminal",
	Long: `Runs one session in the terminal and records it when it ends.

While it runs, type a command and press enter:
  p  pause
  r  resume
  s  stop the session early
  t  show the current status
  q  stop and quit`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

var runOptions struct {
	goal         string
	target       int
	workMinutes  int
	breakMinutes int
	intervals    int
	tick         time.Duration
}

func init() {
	rootCmd.AddCommand(runCmd)
	flags := runCmd.Flags()
	flags.StringVarP(&runOptions.goal, "goal", "g", "", "what this session works towards (default: saved goal)")
	flags.IntVar(&runOptions.target, "target", 0, "goal target in minutes")
	flags.IntVar(&runOptions.workMinutes, "work", 0, "work interval length in minutes")
	flags.IntVar(&runOptions.breakMinutes, "break", 0, "break length in minutes")
	flags.IntVar(&runOptions.intervals, "intervals", 0, "work intervals in this session")
	flags.DurationVar(&runOptions.tick, "tick", time.Second, "wall time of one countdown second")
	_ = flags.MarkHidden("tick")
}

var (
	workStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	breakStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	completeStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

func runConsole(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	settings := env.settings
	flags := cmd.Flags()
	if flags.Changed("goal") {
		settings.Goal = runOptions.goal
	}
	if flags.Changed("target") {
		settings.GoalTargetMinutes = runOptions.target
	}
	if flags.Changed("work") {
		settings.WorkMinutes = runOptions.workMinutes
	}
	if flags.Changed("break") {
		settings.BreakMinutes = runOptions.breakMinutes
	}
	if flags.Changed("intervals") {
		settings.Intervals = runOptions.intervals
	}
	config, err := settings.SessionConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := tracker.New(env.log, tracker.Config{
		Logger:       env.logger,
		TickInterval: runOptions.tick,
	})
	goal := tracker.Goal{Description: settings.Goal, TargetMinutes: settings.GoalTargetMinutes}
	timer, err := sessions.Begin(ctx, goal, config)
	if err != nil {
		return err
	}

	out := newConsole(cmd.OutOrStdout(), isTerminal(cmd.OutOrStdout()))
	out.println(fmt.Sprintf("Session started: %s (%d x %d min work, %d min break)",
		strings.TrimSpace(settings.Goal), config.Intervals, config.WorkMinutes, config.BreakMinutes))
	if out.styled {
		out.println(hintStyle.Render("p pause, r resume, s stop, t status, q quit"))
	}
	out.OnStatusUpdate(timer.Status())
	timer.Subscribe(out)

	go readCommands(cmd.InOrStdin(), sessions, timer, out)

	result, finishErr := sessions.Finish(context.Background(), timer)
	<-out.finished

	out.println(result.Message())
	switch {
	case finishErr != nil:
		out.println("Could not write to the session log: " + finishErr.Error())
	case result.Recorded:
		out.println("Recorded in " + env.log.Path())
	default:
		out.println("Nothing recorded.")
	}
	return finishErr
}

func readCommands(input io.Reader, sessions *tracker.Tracker, timer *session.Timer, out *console) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		command := strings.ToLower(strings.TrimSpace(scanner.Text()))
		var err error
		switch command {
		case "":
			continue
		case "p", "pause":
			err = sessions.Pause()
		case "r", "resume":
			err = sessions.Resume()
		case "s", "stop", "q", "quit":
			err = sessions.Stop()
		case "t", "status":
			out.println(display.StatusLine(timer.Status()))
		default:
			out.println("Unknown command " + command + ". Use p, r, s, t or q.")
		}
		if err != nil {
			out.println(err.Error())
		}
		select {
		case <-timer.Done():
			return
		default:
		}
	}
}

// console prints session progress. On a terminal it redraws one status
// line every tick; otherwise it prints a line per phase or pause change.
type console struct {
	mu       sync.Mutex
	writer   io.Writer
	styled   bool
	redraw   bool
	last     session.Status
	started  bool
	finished chan struct{}
}

func newConsole(writer io.Writer, styled bool) *console {
	return &console{writer: writer, styled: styled, finished: make(chan struct{})}
}

func (out *console) OnStatusUpdate(status session.Status) {
	out.mu.Lock()
	defer out.mu.Unlock()

	changed := !out.started || status.Phase != out.last.Phase || status.Paused != out.last.Paused
	out.started = true
	out.last = status

	if out.styled {
		fmt.Fprint(out.writer, "\r\x1b[2K"+renderStatus(status))
		out.redraw = true
		return
	}
	if changed {
		fmt.Fprintln(out.writer, plainStatus(status))
	}
}

func (out *console) OnSessionFinished(completed bool) {
	out.mu.Lock()
	if out.redraw {
		fmt.Fprintln(out.writer)
		out.redraw = false
	}
	out.mu.Unlock()
	close(out.finished)
}

func (out *console) println(line string) {
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.redraw {
		fmt.Fprint(out.writer, "\r\x1b[2K")
	}
	fmt.Fprintln(out.writer, line)
	if out.redraw {
		fmt.Fprint(out.writer, renderStatus(out.last))
	}
}

func plainStatus(status session.Status) string {
	line := display.StatusLine(status)
	if status.Paused {
		line += " (paused)"
	}
	return line
}

func renderStatus(status session.Status) string {
	line := display.StatusLine(status)
	switch {
	case status.Paused:
		return pausedStyle.Render(line + " (paused)")
	case status.Phase == session.PhaseWork:
		return workStyle.Render(line)
	case status.Phase == session.PhaseBreak:
		return breakStyle.Render(line)
	}
	return completeStyle.Render(line)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
