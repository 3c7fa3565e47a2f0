package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
)

func TestManagerSessionState(t *testing.T) {
	manager := New(nil, "Pomodoro", Callbacks{})
	if !manager.pauseItem.Disabled || !manager.stopItem.Disabled || !manager.pauseFor.Disabled {
		t.Fatal("session controls must start disabled")
	}
	if got := manager.StatusText(); got != "Status: idle" {
		t.Fatalf("status = %q", got)
	}

	manager.SetSession(true, false)
	manager.SetStatus("work 24:59")
	if manager.pauseItem.Disabled || manager.stopItem.Disabled || manager.pauseFor.Disabled {
		t.Fatal("session controls must be enabled while running")
	}
	if manager.pauseItem.Label != "Pause" {
		t.Fatalf("pause label = %q", manager.pauseItem.Label)
	}

	manager.SetSession(true, true)
	if manager.pauseItem.Label != "Resume" || !manager.pauseFor.Disabled {
		t.Fatal("paused session offers Resume and hides Pause for")
	}
	if got := manager.StatusText(); got != "Status: work 24:59 (paused)" {
		t.Fatalf("status = %q", got)
	}

	manager.SetSession(false, true)
	if manager.paused || manager.pauseItem.Label != "Pause" {
		t.Fatal("an inactive session is never paused")
	}
}

func TestManagerPauseForChoices(t *testing.T) {
	var chosen []time.Duration
	stopped := false
	manager := New(nil, "Pomodoro", Callbacks{
		OnPauseFor: func(duration time.Duration) {
			chosen = append(chosen, duration)
		},
		OnStop: func() {
			stopped = true
		},
	})

	items := manager.pauseFor.ChildMenu.Items
	if len(items) != len(PauseDurations) {
		t.Fatalf("have %d choices, want %d", len(items), len(PauseDurations))
	}
	if items[1].Label != "15 minutes" {
		t.Fatalf("second choice = %q", items[1].Label)
	}
	for _, item := range items {
		item.Action()
	}
	for i, duration := range PauseDurations {
		if chosen[i] != duration {
			t.Fatalf("choice %d = %v, want %v", i, chosen[i], duration)
		}
	}

	manager.stopItem.Action()
	if !stopped {
		t.Fatal("stop callback not called")
	}
}

func TestManagerIcons(t *testing.T) {
	active := fyne.NewStaticResource("active.svg", []byte("<svg/>"))
	paused := fyne.NewStaticResource("paused.svg", []byte("<svg/>"))
	manager := New(nil, "Pomodoro", Callbacks{})
	if manager.Icon() != nil {
		t.Fatal("no icon before SetIcons")
	}

	manager.SetIcons(active, paused)
	if manager.Icon() != active {
		t.Fatal("idle tray shows the active icon")
	}
	manager.SetSession(true, true)
	if manager.Icon() != paused {
		t.Fatal("paused session shows the paused icon")
	}
	manager.SetSession(true, false)
	if manager.Icon() != active {
		t.Fatal("resumed session shows the active icon")
	}
}
