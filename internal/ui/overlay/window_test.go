package overlay

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"pomodoro/internal/core/session"
)

func breakStatus(remaining time.Duration) session.Status {
	return session.Status{Phase: session.PhaseBreak, Remaining: remaining, CompletedIntervals: 1, Intervals: 4}
}

func TestWindowFollowsBreaks(t *testing.T) {
	app := test.NewTempApp(t)
	overlay := New(app, "Pomodoro", DefaultConfig)

	overlay.Update(session.Status{Phase: session.PhaseWork, Remaining: time.Minute, Intervals: 4}, "essay")
	if overlay.Visible() {
		t.Fatal("notice must stay hidden during work")
	}

	overlay.Update(breakStatus(5*time.Minute), "essay")
	if !overlay.Visible() {
		t.Fatal("notice must open when a break starts")
	}
	overlay.Update(breakStatus(4*time.Minute+59*time.Second), "essay")
	if got := overlay.Remaining(); got != "04:59" {
		t.Fatalf("remaining = %q", got)
	}
	if got := overlay.goalLabel.Text; got != "essay" {
		t.Fatalf("goal = %q", got)
	}

	overlay.Update(session.Status{Phase: session.PhaseWork, Remaining: time.Minute, CompletedIntervals: 1, Intervals: 4}, "essay")
	if overlay.Visible() {
		t.Fatal("notice must close when the break ends")
	}
}

func TestWindowDismissLastsOneBreak(t *testing.T) {
	app := test.NewTempApp(t)
	overlay := New(app, "Pomodoro", DefaultConfig)

	overlay.Update(breakStatus(5*time.Minute), "essay")
	test.Tap(overlay.dismiss)
	if overlay.Visible() {
		t.Fatal("dismiss must hide the notice")
	}
	overlay.Update(breakStatus(4*time.Minute), "essay")
	if overlay.Visible() {
		t.Fatal("a dismissed notice stays hidden for the rest of the break")
	}

	overlay.Update(session.Status{Phase: session.PhaseWork, Intervals: 4}, "essay")
	overlay.Update(breakStatus(5*time.Minute), "essay")
	if !overlay.Visible() {
		t.Fatal("the next break must open the notice again")
	}
}

func TestWindowEndSession(t *testing.T) {
	app := test.NewTempApp(t)
	overlay := New(app, "Pomodoro", DefaultConfig)
	stopped := false
	overlay.SetOnStop(func() { stopped = true })

	overlay.Update(breakStatus(time.Minute), "essay")
	test.Tap(overlay.stop)
	if !stopped {
		t.Fatal("End Session must call the stop handler")
	}
}
