package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// PauseDurations are the choices offered under "Pause for".
var PauseDurations = []time.Duration{5 * time.Minute, 15 * time.Minute, 30 * time.Minute, 60 * time.Minute}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnPauseFor    func(time.Duration)
	OnStop        func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	pauseFor    *fyne.MenuItem
	stopItem    *fyne.MenuItem
	callbacks   Callbacks
	active      bool
	paused      bool
	statusLabel string
	activeIcon  fyne.Resource
	pausedIcon  fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		title:       title,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	pauseChoices := make([]*fyne.MenuItem, 0, len(PauseDurations))
	for _, duration := range PauseDurations {
		pauseChoices = append(pauseChoices, fyne.NewMenuItem(fmt.Sprintf("%d minutes", int(duration.Minutes())), func() {
			if manager.callbacks.OnPauseFor != nil {
				manager.callbacks.OnPauseFor(duration)
			}
		}))
	}
	manager.pauseFor = fyne.NewMenuItem("Pause for...", nil)
	manager.pauseFor.ChildMenu = fyne.NewMenu("", pauseChoices...)

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.stopItem = fyne.NewMenuItem("Stop session", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})

	manager.SetSession(false, false)
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetSession updates the session-dependent menu items.
func (manager *Manager) SetSession(active, paused bool) {
	manager.active = active
	manager.paused = paused && active
	if manager.paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.pauseItem.Disabled = !active
	manager.pauseFor.Disabled = !active || manager.paused
	manager.stopItem.Disabled = !active
	manager.refreshIcon()
	manager.refreshStatus()
}

// SetIcons sets the tray icon and the one shown while paused.
func (manager *Manager) SetIcons(active, paused fyne.Resource) {
	manager.activeIcon = active
	manager.pausedIcon = paused
	manager.refreshIcon()
}

// Icon returns the tray icon for the current state.
func (manager *Manager) Icon() fyne.Resource {
	if manager.paused && manager.pausedIcon != nil {
		return manager.pausedIcon
	}
	return manager.activeIcon
}

// StatusText returns the label shown at the top of the menu.
func (manager *Manager) StatusText() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil || manager.Icon() == nil {
		return
	}
	manager.app.SetSystemTrayIcon(manager.Icon())
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show window", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.pauseItem,
		manager.pauseFor,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
