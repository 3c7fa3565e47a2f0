package session

import "pomodoro/internal/core/model"

// Event drives the phase sequence.
type Event int

const (
	// EventStart leaves Idle for the first work interval.
	EventStart Event = iota
	// EventElapsed means the current phase's countdown reached zero.
	EventElapsed
	// EventStop ends the session early.
	EventStop
)

// Step is a position in the phase sequence. Interval is the zero-based
// index of the work interval the step belongs to.
type Step struct {
	Phase    Phase
	Interval int
}

// Transition returns the step that follows step on event. It has no side
// effects; crediting a finished work interval is up to the caller.
func Transition(config model.SessionConfig, step Step, event Event) Step {
	if step.Phase == PhaseComplete {
		return step
	}

	switch event {
	case EventStop:
		return Step{Phase: PhaseComplete, Interval: step.Interval}
	case EventStart:
		if step.Phase == PhaseIdle {
			return Step{Phase: PhaseWork}
		}
	case EventElapsed:
		switch step.Phase {
		case PhaseWork:
			if step.Interval+1 >= config.Intervals {
				return Step{Phase: PhaseComplete, Interval: step.Interval}
			}
			if config.BreakSeconds() == 0 {
				return Step{Phase: PhaseWork, Interval: step.Interval + 1}
			}
			return Step{Phase: PhaseBreak, Interval: step.Interval}
		case PhaseBreak:
			return Step{Phase: PhaseWork, Interval: step.Interval + 1}
		}
	}
	return step
}

// PhaseSeconds returns the countdown length of phase.
func PhaseSeconds(config model.SessionConfig, phase Phase) int {
	switch phase {
	case PhaseWork:
		return config.WorkSeconds()
	case PhaseBreak:
		return config.BreakSeconds()
	}
	return 0
}
