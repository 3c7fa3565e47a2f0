package session

import (
	"testing"

	"pomodoro/internal/core/model"
)

func TestTransitionSequence(t *testing.T) {
	config := model.SessionConfig{WorkMinutes: 25, BreakMinutes: 5, Intervals: 3}

	want := []Step{
		{Phase: PhaseWork, Interval: 0},
		{Phase: PhaseBreak, Interval: 0},
		{Phase: PhaseWork, Interval: 1},
		{Phase: PhaseBreak, Interval: 1},
		{Phase: PhaseWork, Interval: 2},
		{Phase: PhaseComplete, Interval: 2},
	}

	step := Transition(config, Step{Phase: PhaseIdle}, EventStart)
	for i, expected := range want {
		if step != expected {
			t.Fatalf("step %d = %+v, want %+v", i, step, expected)
		}
		step = Transition(config, step, EventElapsed)
	}
	if step.Phase != PhaseComplete {
		t.Fatalf("complete must be terminal, got %+v", step)
	}
}

func TestTransitionSingleIntervalHasNoBreak(t *testing.T) {
	config := model.SessionConfig{WorkMinutes: 1, BreakMinutes: 5, Intervals: 1}
	step := Transition(config, Step{Phase: PhaseIdle}, EventStart)
	step = Transition(config, step, EventElapsed)
	if step.Phase != PhaseComplete {
		t.Fatalf("expected complete after the only work phase, got %+v", step)
	}
}

func TestTransitionSkipsZeroLengthBreak(t *testing.T) {
	config := model.SessionConfig{WorkMinutes: 1, BreakMinutes: 0, Intervals: 2}
	step := Transition(config, Step{Phase: PhaseWork}, EventElapsed)
	if step != (Step{Phase: PhaseWork, Interval: 1}) {
		t.Fatalf("expected second work interval, got %+v", step)
	}
}

func TestTransitionStopAndIgnoredEvents(t *testing.T) {
	config := model.SessionConfig{WorkMinutes: 1, BreakMinutes: 1, Intervals: 4}

	stopped := Transition(config, Step{Phase: PhaseBreak, Interval: 2}, EventStop)
	if stopped != (Step{Phase: PhaseComplete, Interval: 2}) {
		t.Fatalf("stop during break = %+v", stopped)
	}

	if got := Transition(config, Step{Phase: PhaseIdle}, EventElapsed); got.Phase != PhaseIdle {
		t.Fatalf("elapsed while idle should not move, got %+v", got)
	}
	if got := Transition(config, Step{Phase: PhaseWork, Interval: 1}, EventStart); got != (Step{Phase: PhaseWork, Interval: 1}) {
		t.Fatalf("start while working should not move, got %+v", got)
	}
	if got := Transition(config, Step{Phase: PhaseComplete}, EventStart); got.Phase != PhaseComplete {
		t.Fatalf("complete should stay complete, got %+v", got)
	}
}

func TestPhaseSeconds(t *testing.T) {
	config := model.SessionConfig{WorkMinutes: 2, BreakMinutes: 1, Intervals: 1}
	if PhaseSeconds(config, PhaseWork) != 120 || PhaseSeconds(config, PhaseBreak) != 60 {
		t.Fatalf("unexpected phase lengths")
	}
	if PhaseSeconds(config, PhaseIdle) != 0 || PhaseSeconds(config, PhaseComplete) != 0 {
		t.Fatalf("idle and complete have no countdown")
	}
}
