package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
)

// ErrAlreadyStarted indicates Start was called on a timer that already ran.
var ErrAlreadyStarted = errors.New("session already started")

// Config contains runtime options for Timer.
type Config struct {
	// TickInterval is the wall time of one countdown second.
	TickInterval time.Duration
	Clock        clock.Clock
	Logger       *slog.Logger
}

// Timer runs one session's work/break sequence on its own goroutine while
// other goroutines pause, resume, stop and inspect it.
type Timer struct {
	mu      sync.Mutex
	resumed *sync.Cond

	id       string
	config   model.SessionConfig
	options  Config
	logger   *slog.Logger
	registry *Registry

	step               Step
	remainingSeconds   int
	completedIntervals int
	focusSeconds       int64

	started        bool
	running        bool
	paused         bool
	stopRequested  bool
	completedFully bool
	finished       bool
	pauses         int

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a Timer for config. An invalid config is rejected before any
// goroutine exists.
func New(config model.SessionConfig, options Config) (*Timer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	id := uuid.NewString()
	logger := options.Logger.With("session", id)
	timer := &Timer{
		id:       id,
		config:   config,
		options:  options,
		logger:   logger,
		registry: NewRegistry(logger),
		step:     Step{Phase: PhaseIdle},
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	timer.resumed = sync.NewCond(&timer.mu)
	return timer, nil
}

// ID returns the session identifier used in log lines.
func (timer *Timer) ID() string {
	return timer.id
}

// Config returns the session configuration.
func (timer *Timer) Config() model.SessionConfig {
	return timer.config
}

// Subscribe registers an observer. Safe during an active session.
func (timer *Timer) Subscribe(observer Observer) {
	timer.registry.Subscribe(observer)
}

// Unsubscribe removes an observer. Safe during an active session.
func (timer *Timer) Unsubscribe(observer Observer) {
	timer.registry.Unsubscribe(observer)
}

// Start launches the countdown goroutine at the first work interval.
// Cancelling ctx stops the session as if RequestStop had been called.
func (timer *Timer) Start(ctx context.Context) error {
	timer.mu.Lock()
	if timer.started {
		timer.mu.Unlock()
		return ErrAlreadyStarted
	}
	timer.started = true
	timer.running = true
	timer.enterLocked(Transition(timer.config, timer.step, EventStart))
	timer.mu.Unlock()

	timer.logger.Debug("session started",
		"work_minutes", timer.config.WorkMinutes,
		"break_minutes", timer.config.BreakMinutes,
		"intervals", timer.config.Intervals)

	go timer.watch(ctx)
	go timer.run()
	return nil
}

// Pause freezes the countdown. No-op unless running, unpaused and not
// stopping.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running || timer.paused || timer.stopRequested {
		return
	}
	timer.paused = true
	timer.pauses++
	timer.publishLocked()
}

// Resume continues a paused countdown. No-op unless paused.
func (timer *Timer) Resume() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running || !timer.paused {
		return
	}
	timer.paused = false
	timer.resumed.Broadcast()
	timer.publishLocked()
}

// RequestStop ends the session early. It returns immediately; the
// countdown goroutine observes it without waiting for the current tick.
func (timer *Timer) RequestStop() {
	timer.mu.Lock()
	if timer.stopRequested {
		timer.mu.Unlock()
		return
	}
	timer.stopRequested = true
	timer.paused = false
	timer.resumed.Broadcast()
	timer.mu.Unlock()

	timer.stopOnce.Do(func() {
		close(timer.stopCh)
	})
}

// Status returns a consistent snapshot of the timer.
func (timer *Timer) Status() Status {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.statusLocked()
}

// TotalFocusSeconds returns the seconds counted down in work phases.
func (timer *Timer) TotalFocusSeconds() int64 {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.focusSeconds
}

// CompletedIntervals returns the number of work phases that ran to zero.
func (timer *Timer) CompletedIntervals() int {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.completedIntervals
}

// IsRunning reports whether the session is between Start and Complete.
func (timer *Timer) IsRunning() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.running
}

// IsPaused reports whether the countdown is frozen.
func (timer *Timer) IsPaused() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.paused
}

// IsCompletedFully reports whether every interval finished naturally.
func (timer *Timer) IsCompletedFully() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.completedFully
}

// Done is closed once the countdown goroutine has exited.
func (timer *Timer) Done() <-chan struct{} {
	return timer.done
}

// Wait blocks until the session reaches Complete or ctx is done.
func (timer *Timer) Wait(ctx context.Context) error {
	select {
	case <-timer.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (timer *Timer) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		timer.logger.Debug("session context cancelled", "error", ctx.Err())
		timer.RequestStop()
	case <-timer.done:
	}
}

func (timer *Timer) run() {
	defer close(timer.done)
	defer func() {
		if recovered := recover(); recovered != nil {
			timer.logger.Error("session loop panicked", "panic", recovered)
			timer.mu.Lock()
			timer.finishLocked(false)
			timer.mu.Unlock()
		}
	}()

	for {
		timer.mu.Lock()
		for timer.paused && !timer.stopRequested {
			timer.resumed.Wait()
		}
		// A phase that already counted down to zero is credited even when
		// a stop arrived right after its last tick.
		if timer.remainingSeconds <= 0 {
			if timer.advanceLocked() {
				timer.mu.Unlock()
				return
			}
			timer.mu.Unlock()
			continue
		}
		if timer.stopRequested {
			timer.finishLocked(false)
			timer.mu.Unlock()
			return
		}
		pauses := timer.pauses
		timer.mu.Unlock()

		select {
		case <-timer.options.Clock.After(timer.options.TickInterval):
		case <-timer.stopCh:
			continue
		}

		timer.mu.Lock()
		// A tick that overlapped a pause or a stop is not counted.
		if !timer.paused && !timer.stopRequested && timer.pauses == pauses {
			timer.remainingSeconds--
			if timer.step.Phase == PhaseWork {
				timer.focusSeconds++
			}
			timer.publishLocked()
		}
		timer.mu.Unlock()
	}
}

// advanceLocked moves past a phase whose countdown reached zero and
// reports whether the session is complete.
func (timer *Timer) advanceLocked() bool {
	if timer.step.Phase == PhaseWork {
		timer.completedIntervals++
	}
	next := Transition(timer.config, timer.step, EventElapsed)
	if next.Phase == PhaseComplete {
		timer.finishLocked(timer.completedIntervals == timer.config.Intervals)
		return true
	}
	if timer.stopRequested {
		timer.finishLocked(false)
		return true
	}
	timer.enterLocked(next)
	return false
}

func (timer *Timer) enterLocked(step Step) {
	timer.step = step
	timer.remainingSeconds = PhaseSeconds(timer.config, step.Phase)
	timer.logger.Debug("phase entered",
		"phase", step.Phase.String(),
		"interval", step.Interval+1,
		"seconds", timer.remainingSeconds)
	timer.publishLocked()
}

func (timer *Timer) finishLocked(completed bool) {
	if timer.finished {
		return
	}
	timer.finished = true
	timer.running = false
	timer.paused = false
	timer.completedFully = completed
	timer.step = Transition(timer.config, timer.step, EventStop)
	timer.remainingSeconds = 0
	timer.resumed.Broadcast()

	timer.logger.Debug("session finished",
		"completed", completed,
		"intervals", timer.completedIntervals,
		"focus_seconds", timer.focusSeconds)

	timer.publishLocked()
	timer.registry.publishFinished(completed)
}

func (timer *Timer) statusLocked() Status {
	remaining := timer.remainingSeconds
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Phase:              timer.step.Phase,
		Remaining:          time.Duration(remaining) * time.Second,
		CompletedIntervals: timer.completedIntervals,
		Intervals:          timer.config.Intervals,
		Paused:             timer.paused,
	}
}

func (timer *Timer) publishLocked() {
	timer.registry.publishStatus(timer.statusLocked())
}
