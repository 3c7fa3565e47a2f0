package session

import "time"

// Phase is one segment of a session's lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWork
	PhaseBreak
	PhaseComplete
)

// String returns the display name of the phase.
func (phase Phase) String() string {
	switch phase {
	case PhaseIdle:
		return "idle"
	case PhaseWork:
		return "work"
	case PhaseBreak:
		return "break"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Status is an immutable snapshot of a Timer, copied out under its lock.
type Status struct {
	Phase              Phase
	Remaining          time.Duration
	CompletedIntervals int
	Intervals          int
	Paused             bool
}

// Observer receives a session's notifications. Calls for one observer are
// made sequentially and in the order the state changed, on a goroutine owned
// by the registry.
type Observer interface {
	OnStatusUpdate(status Status)
	OnSessionFinished(completed bool)
}

// ObserverFuncs adapts functions to Observer. Register it by pointer so it
// can be passed to Unsubscribe later.
type ObserverFuncs struct {
	StatusUpdate    func(Status)
	SessionFinished func(completed bool)
}

// OnStatusUpdate calls StatusUpdate when set.
func (funcs *ObserverFuncs) OnStatusUpdate(status Status) {
	if funcs.StatusUpdate != nil {
		funcs.StatusUpdate(status)
	}
}

// OnSessionFinished calls SessionFinished when set.
func (funcs *ObserverFuncs) OnSessionFinished(completed bool) {
	if funcs.SessionFinished != nil {
		funcs.SessionFinished(completed)
	}
}

type notification struct {
	status    Status
	finished  bool
	completed bool
}
