// Package tracker starts focus sessions for a goal, records them when they
// finish and reports weekly totals.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/core/stats"
)

var (
	// ErrGoalRequired indicates Begin was called without a goal description.
	ErrGoalRequired = errors.New("goal description is required")
	// ErrSessionActive indicates a session is still running.
	ErrSessionActive = errors.New("a session is already running")
	// ErrUnknownSession indicates Finish was given a timer this tracker did
	// not start or already recorded.
	ErrUnknownSession = errors.New("session not started by this tracker")
	// ErrNoSession indicates a control was used while no session runs.
	ErrNoSession = errors.New("no active session")
)

// RecordSink persists finished sessions.
type RecordSink interface {
	Append(record model.Record) error
	ReadAll() ([]model.Record, error)
}

// Config contains runtime options for Tracker.
type Config struct {
	Clock        clock.Clock
	Logger       *slog.Logger
	TickInterval time.Duration
}

// Goal is what a session works towards.
type Goal struct {
	Description   string
	TargetMinutes int
}

// Result summarizes a finished session.
type Result struct {
	SessionID    string
	Goal         Goal
	Timestamp    time.Time
	FocusMinutes int64
	Intervals    int
	Completed    bool
	Recorded     bool
}

// TargetMet reports whether the goal had a target and the session reached it.
func (result Result) TargetMet() bool {
	return result.Goal.TargetMinutes > 0 && result.FocusMinutes >= int64(result.Goal.TargetMinutes)
}

// Message returns the end-of-session summary shown to the user.
func (result Result) Message() string {
	var message string
	if result.Completed {
		message = fmt.Sprintf("Fantastic! You completed all %d intervals and logged %d minutes of focus.", result.Intervals, result.FocusMinutes)
	} else {
		message = fmt.Sprintf("Session ended early. You logged %d minutes across %d intervals.", result.FocusMinutes, result.Intervals)
	}
	if result.Goal.TargetMinutes > 0 {
		if result.TargetMet() {
			message += fmt.Sprintf(" Goal target of %d minutes reached.", result.Goal.TargetMinutes)
		} else {
			message += fmt.Sprintf(" Goal target: %d of %d minutes.", result.FocusMinutes, result.Goal.TargetMinutes)
		}
	}
	return message
}

// Report is the weekly statistics view.
type Report struct {
	Summary stats.Summary
	Records []model.Record
}

// Tracker owns at most one active session.
type Tracker struct {
	mu     sync.Mutex
	sink   RecordSink
	config Config
	logger *slog.Logger

	active     *session.Timer
	activeGoal Goal
	resumeAt   *clock.Timer
}

// New creates a Tracker that records into sink.
func New(sink RecordSink, config Config) *Tracker {
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Tracker{
		sink:   sink,
		config: config,
		logger: config.Logger,
	}
}

// Begin validates goal and config and starts a new session.
func (tracker *Tracker) Begin(ctx context.Context, goal Goal, config model.SessionConfig) (*session.Timer, error) {
	goal.Description = strings.TrimSpace(model.SingleLine(goal.Description))
	if goal.Description == "" {
		return nil, ErrGoalRequired
	}
	if goal.TargetMinutes < 0 {
		return nil, fmt.Errorf("goal target minutes cannot be negative: %d", goal.TargetMinutes)
	}

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.active != nil {
		return nil, ErrSessionActive
	}

	timer, err := session.New(config, session.Config{
		TickInterval: tracker.config.TickInterval,
		Clock:        tracker.config.Clock,
		Logger:       tracker.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := timer.Start(ctx); err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}

	tracker.active = timer
	tracker.activeGoal = goal
	tracker.logger.Info("session begun", "session", timer.ID(), "goal", goal.Description)
	return timer, nil
}

// Active returns the running session, or nil.
func (tracker *Tracker) Active() *session.Timer {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.active
}

// PauseFor pauses the active session and resumes it after duration. A
// later PauseFor replaces the pending resume; Resume cancels it.
func (tracker *Tracker) PauseFor(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("pause duration must be positive: %s", duration)
	}
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	timer := tracker.active
	if timer == nil || !timer.IsRunning() {
		return ErrNoSession
	}

	tracker.cancelResumeLocked()
	timer.Pause()
	tracker.logger.Info("session paused", "session", timer.ID(), "resume_after", duration)

	var scheduled *clock.Timer
	scheduled = tracker.config.Clock.AfterFunc(duration, func() {
		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		if tracker.active != timer || tracker.resumeAt != scheduled {
			return
		}
		tracker.resumeAt = nil
		timer.Resume()
		tracker.logger.Info("session resumed", "session", timer.ID())
	})
	tracker.resumeAt = scheduled
	return nil
}

// Pause pauses the active session until Resume.
func (tracker *Tracker) Pause() error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.active == nil {
		return ErrNoSession
	}
	tracker.cancelResumeLocked()
	tracker.active.Pause()
	return nil
}

// Resume resumes the active session and drops any scheduled resume.
func (tracker *Tracker) Resume() error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.active == nil {
		return ErrNoSession
	}
	tracker.cancelResumeLocked()
	tracker.active.Resume()
	return nil
}

// Stop requests the active session to stop. Recording happens in Finish.
func (tracker *Tracker) Stop() error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.active == nil {
		return ErrNoSession
	}
	tracker.cancelResumeLocked()
	tracker.active.RequestStop()
	return nil
}

func (tracker *Tracker) cancelResumeLocked() {
	if tracker.resumeAt != nil {
		tracker.resumeAt.Stop()
		tracker.resumeAt = nil
	}
}

// Finish waits for timer to reach Complete, records it and releases the
// active slot. The Result is returned even when recording fails.
func (tracker *Tracker) Finish(ctx context.Context, timer *session.Timer) (Result, error) {
	tracker.mu.Lock()
	if timer == nil || timer != tracker.active {
		tracker.mu.Unlock()
		return Result{}, ErrUnknownSession
	}
	goal := tracker.activeGoal
	tracker.mu.Unlock()

	if err := timer.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("finish session: %w", err)
	}

	tracker.mu.Lock()
	if tracker.active != timer {
		tracker.mu.Unlock()
		return Result{}, ErrUnknownSession
	}
	tracker.active = nil
	tracker.activeGoal = Goal{}
	tracker.cancelResumeLocked()
	tracker.mu.Unlock()

	result := Result{
		SessionID:    timer.ID(),
		Goal:         goal,
		Timestamp:    tracker.config.Clock.Now(),
		FocusMinutes: FocusMinutes(timer.TotalFocusSeconds()),
		Intervals:    timer.CompletedIntervals(),
		Completed:    timer.IsCompletedFully(),
	}
	tracker.logger.Info("session finished",
		"session", result.SessionID,
		"completed", result.Completed,
		"focus_minutes", result.FocusMinutes,
		"intervals", result.Intervals)

	if !ShouldRecord(result.FocusMinutes, result.Intervals) {
		return result, nil
	}
	err := tracker.sink.Append(model.Record{
		Timestamp:    result.Timestamp,
		Goal:         goal.Description,
		FocusMinutes: result.FocusMinutes,
		Intervals:    result.Intervals,
	})
	if err != nil {
		tracker.logger.Error("could not record session", "session", result.SessionID, "error", err)
		return result, err
	}
	result.Recorded = true
	return result, nil
}

// Weekly returns the week containing reference and every record on file.
func (tracker *Tracker) Weekly(reference time.Time, weekStart time.Weekday) (Report, error) {
	records, err := tracker.sink.ReadAll()
	if err != nil {
		return Report{}, fmt.Errorf("weekly report: %w", err)
	}
	return Report{
		Summary: stats.Summarize(records, reference, weekStart),
		Records: records,
	}, nil
}

// FocusMinutes converts focus seconds to whole minutes, rounding half up.
func FocusMinutes(seconds int64) int64 {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 30) / 60
}

// ShouldRecord reports whether a session produced anything worth a record.
func ShouldRecord(focusMinutes int64, intervals int) bool {
	return focusMinutes > 0 || intervals > 0
}
