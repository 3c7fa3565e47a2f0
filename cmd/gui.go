package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/core/tracker"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/dashboard"
	"pomodoro/internal/ui/display"
	"pomodoro/internal/ui/overlay"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

func runGUI(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if activateErr := platform.ActivateRunning(appName); activateErr != nil {
			env.logger.Warn("could not reach the running instance", "error", activateErr)
		}
		printf(cmd, "%s is already running.\n", appName)
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()
	env.logger.Debug("single instance lock held", "address", guard.Address())

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))
	gui := newDesktop(fyneApp, env)
	go guard.Serve(func() {
		fyne.Do(gui.dash.Show)
	})
	gui.run()
	return nil
}

// desktopApp wires the tracker to the fyne windows and the tray.
type desktopApp struct {
	app      fyne.App
	env      *environment
	logger   *slog.Logger
	sessions *tracker.Tracker
	dash     *dashboard.Window
	prefs    *preferences.Window
	notice   *overlay.Window
	tray     *tray.Manager

	// Only touched on the fyne goroutine.
	timer    *session.Timer
	config   model.SessionConfig
	goal     string
	observer *session.ObserverFuncs
	finished chan struct{}
}

func newDesktop(fyneApp fyne.App, env *environment) *desktopApp {
	gui := &desktopApp{
		app:      fyneApp,
		env:      env,
		logger:   env.logger,
		sessions: tracker.New(env.log, tracker.Config{Logger: env.logger}),
	}

	gui.dash = dashboard.New(fyneApp, appName, dashboard.Callbacks{
		OnStart:       gui.start,
		OnPause:       gui.pause,
		OnResume:      gui.resume,
		OnStop:        gui.stop,
		OnPreferences: func() { gui.prefs.Show() },
		OnRefresh:     gui.refreshStats,
	})
	gui.prefs = preferences.New(fyneApp, env.settings, gui.saveSettings)
	gui.prefs.SetLogPath(env.log.Path())
	gui.notice = overlay.New(fyneApp, appName, overlay.DefaultConfig)
	gui.notice.SetOnStop(gui.stop)

	if driver, ok := fyneApp.(desktop.App); ok {
		gui.tray = tray.New(driver, appName, tray.Callbacks{
			OnShow:        gui.dash.Show,
			OnTogglePause: gui.togglePause,
			OnPauseFor:    gui.pauseFor,
			OnStop:        gui.stop,
			OnQuit:        gui.quit,
		})
		gui.tray.SetIcons(resources.MustIcon(resources.AppIcon), resources.MustIcon(resources.PausedIcon))
		gui.dash.Window().SetCloseIntercept(func() {
			gui.dash.Window().Hide()
		})
	} else {
		gui.logger.Warn("system tray unsupported on this platform")
		gui.dash.Window().SetCloseIntercept(gui.quit)
	}

	gui.dash.SetGoal(env.settings.Goal, env.settings.GoalTargetMinutes)
	gui.dash.ShowReady(env.settings.Intervals)
	return gui
}

func (gui *desktopApp) run() {
	gui.refreshStats()
	gui.dash.Show()
	gui.app.Run()
}

func (gui *desktopApp) start(goal tracker.Goal) {
	config, err := gui.env.settings.SessionConfig()
	if err != nil {
		gui.dash.ShowError(err)
		return
	}

	timer, err := gui.sessions.Begin(context.Background(), goal, config)
	switch {
	case errors.Is(err, tracker.ErrGoalRequired):
		gui.dash.ShowMessage("Goal Required", "Please enter a study goal before starting.")
		return
	case err != nil:
		gui.dash.ShowError(err)
		return
	}

	gui.timer = timer
	gui.config = config
	gui.goal = goal.Description
	gui.finished = make(chan struct{})
	gui.observer = &session.ObserverFuncs{
		StatusUpdate: func(status session.Status) {
			fyne.Do(func() {
				gui.showStatus(timer, status)
			})
		},
		SessionFinished: func(bool) {
			go gui.finish(timer)
		},
	}
	gui.showStatus(timer, timer.Status())
	timer.Subscribe(gui.observer)
	gui.prefs.SetEditable(false)
	gui.rememberGoal(goal.Description)
}

func (gui *desktopApp) pause() {
	gui.control(gui.sessions.Pause)
}

func (gui *desktopApp) resume() {
	gui.control(gui.sessions.Resume)
}

func (gui *desktopApp) stop() {
	gui.control(gui.sessions.Stop)
}

func (gui *desktopApp) togglePause() {
	if gui.timer != nil && gui.timer.IsPaused() {
		gui.resume()
		return
	}
	gui.pause()
}

func (gui *desktopApp) pauseFor(duration time.Duration) {
	gui.control(func() error {
		return gui.sessions.PauseFor(duration)
	})
}

func (gui *desktopApp) control(action func() error) {
	if err := action(); err != nil && !errors.Is(err, tracker.ErrNoSession) {
		gui.dash.ShowError(err)
	}
	if gui.timer != nil {
		gui.showStatus(gui.timer, gui.timer.Status())
	}
}

func (gui *desktopApp) showStatus(timer *session.Timer, status session.Status) {
	if timer != gui.timer {
		return
	}
	running := status.Phase == session.PhaseWork || status.Phase == session.PhaseBreak
	gui.dash.ShowStatus(status, gui.config)
	gui.dash.SetControls(display.ControlsFor(running, status.Paused))
	gui.notice.Update(status, gui.goal)
	if gui.tray != nil {
		gui.tray.SetSession(running, status.Paused)
		gui.tray.SetStatus(display.StatusLine(status))
	}
}

// finish runs off the fyne goroutine: Finish blocks until the countdown
// goroutine has exited.
func (gui *desktopApp) finish(timer *session.Timer) {
	result, err := gui.sessions.Finish(context.Background(), timer)
	fyne.Do(func() {
		if gui.timer != timer {
			return
		}
		timer.Unsubscribe(gui.observer)
		finished := gui.finished
		gui.timer = nil
		gui.observer = nil
		gui.finished = nil
		gui.notice.Hide()

		gui.dash.ShowReady(gui.env.settings.Intervals)
		gui.dash.SetControls(display.ControlsFor(false, false))
		gui.prefs.SetEditable(true)
		if gui.tray != nil {
			gui.tray.SetSession(false, false)
			gui.tray.SetStatus("idle")
		}
		switch {
		case errors.Is(err, tracker.ErrUnknownSession):
			gui.dash.ShowError(err)
		case err != nil:
			gui.dash.ShowError(fmt.Errorf("could not write to the session log: %w", err))
		}
		gui.dash.ShowMessage("Session Summary", result.Message())
		gui.refreshStats()
		close(finished)
	})
}

func (gui *desktopApp) refreshStats() {
	report, err := gui.sessions.Weekly(time.Now(), gui.env.settings.WeekStart)
	if err != nil {
		gui.dash.ShowError(fmt.Errorf("unable to read the session log: %w", err))
		return
	}
	gui.dash.ShowReport(report, gui.env.log.Path())
}

func (gui *desktopApp) saveSettings(settings model.Settings) error {
	settings.Goal = gui.env.settings.Goal
	if err := storage.SaveSettings(gui.env.configDir, settings); err != nil {
		return err
	}
	gui.env.settings = settings
	gui.dash.SetGoalTarget(settings.GoalTargetMinutes)
	gui.dash.ShowReady(settings.Intervals)
	gui.refreshStats()
	return nil
}

func (gui *desktopApp) rememberGoal(goal string) {
	if goal == gui.env.settings.Goal {
		return
	}
	settings := gui.env.settings
	settings.Goal = goal
	if err := storage.SaveSettings(gui.env.configDir, settings); err != nil {
		gui.logger.Warn("could not save goal", "error", err)
		return
	}
	gui.env.settings = settings
}

func (gui *desktopApp) quit() {
	if gui.timer == nil {
		gui.app.Quit()
		return
	}

	finished := gui.finished
	_ = gui.sessions.Stop()
	// finish needs the fyne goroutine to record the session, so wait for it
	// elsewhere.
	go func() {
		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			gui.logger.Warn("quitting before the session was recorded")
		}
		fyne.Do(gui.app.Quit)
	}()
}
