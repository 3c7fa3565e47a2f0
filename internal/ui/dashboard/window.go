package dashboard

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/core/tracker"
	"pomodoro/internal/ui/display"
)

const readyMessage = "Ready to begin your next focus session."

// Callbacks defines dashboard action handlers.
type Callbacks struct {
	OnStart       func(goal tracker.Goal)
	OnPause       func()
	OnResume      func()
	OnStop        func()
	OnPreferences func()
	OnRefresh     func()
}

// Window is the main application window.
type Window struct {
	window    fyne.Window
	callbacks Callbacks

	goal       *widget.Entry
	goalTarget *widget.Label
	remaining  *canvas.Text
	phase      *widget.Label
	intervals  *widget.Label
	progress   *widget.ProgressBar
	status     *widget.Label

	startButton  *widget.Button
	pauseButton  *widget.Button
	resumeButton *widget.Button
	stopButton   *widget.Button

	weekRange   *widget.Label
	minutes     *widget.Label
	hours       *widget.Label
	sessions    *widget.Label
	doneCount   *widget.Label
	logLocation *widget.Label
	records     [][]string
	table       *widget.Table

	targetMinutes int
}

// New builds the main window. It is not shown until Show is called.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	dash := &Window{
		window:    app.NewWindow(title),
		callbacks: callbacks,
	}

	dash.window.SetContent(container.NewAppTabs(
		container.NewTabItemWithIcon("Timer", theme.MediaPlayIcon(), dash.buildTimerTab()),
		container.NewTabItemWithIcon("Statistics", theme.ListIcon(), dash.buildStatsTab()),
	))
	dash.window.Resize(fyne.NewSize(720, 480))
	dash.SetControls(display.ControlsFor(false, false))
	return dash
}

func (dash *Window) buildTimerTab() fyne.CanvasObject {
	dash.goal = widget.NewEntry()
	dash.goal.SetPlaceHolder("What will you work on?")
	dash.goalTarget = widget.NewLabel("")

	dash.remaining = canvas.NewText("00:00", theme.Color(theme.ColorNameForeground))
	dash.remaining.TextSize = 64
	dash.remaining.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	dash.remaining.Alignment = fyne.TextAlignCenter

	dash.phase = widget.NewLabelWithStyle("Phase: Idle", fyne.TextAlignCenter, fyne.TextStyle{})
	dash.intervals = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	dash.progress = widget.NewProgressBar()
	dash.status = widget.NewLabelWithStyle(readyMessage, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	dash.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), dash.handleStart)
	dash.startButton.Importance = widget.HighImportance
	dash.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		if dash.callbacks.OnPause != nil {
			dash.callbacks.OnPause()
		}
	})
	dash.resumeButton = widget.NewButtonWithIcon("Resume", theme.MediaPlayIcon(), func() {
		if dash.callbacks.OnResume != nil {
			dash.callbacks.OnResume()
		}
	})
	dash.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		if dash.callbacks.OnStop != nil {
			dash.callbacks.OnStop()
		}
	})
	settingsButton := widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
		if dash.callbacks.OnPreferences != nil {
			dash.callbacks.OnPreferences()
		}
	})

	goalForm := widget.NewForm(
		widget.NewFormItem("Goal", dash.goal),
		widget.NewFormItem("Target", dash.goalTarget),
	)
	buttons := container.NewHBox(
		layout.NewSpacer(),
		dash.startButton, dash.pauseButton, dash.resumeButton, dash.stopButton,
		layout.NewSpacer(),
		settingsButton,
	)

	return container.NewVBox(
		widget.NewCard("Study goal", "", goalForm),
		dash.remaining,
		dash.phase,
		dash.intervals,
		dash.progress,
		buttons,
		dash.status,
	)
}

func (dash *Window) buildStatsTab() fyne.CanvasObject {
	dash.weekRange = widget.NewLabel("")
	dash.minutes = widget.NewLabel("0")
	dash.hours = widget.NewLabel("0.00")
	dash.sessions = widget.NewLabel("0")
	dash.doneCount = widget.NewLabel("0")
	dash.logLocation = widget.NewLabel("")
	dash.logLocation.Wrapping = fyne.TextWrapBreak

	summary := widget.NewForm(
		widget.NewFormItem("Focus minutes", dash.minutes),
		widget.NewFormItem("Focus hours", dash.hours),
		widget.NewFormItem("Sessions", dash.sessions),
		widget.NewFormItem("Intervals", dash.doneCount),
	)

	dash.table = widget.NewTable(
		func() (int, int) {
			return len(dash.records) + 1, len(display.RecordHeaders)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(cell widget.TableCellID, object fyne.CanvasObject) {
			label := object.(*widget.Label)
			if cell.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(display.RecordHeaders[cell.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{}
			label.SetText(dash.records[cell.Row-1][cell.Col])
		},
	)
	for column, width := range []float32{160, 260, 100, 90} {
		dash.table.SetColumnWidth(column, width)
	}

	refresh := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		if dash.callbacks.OnRefresh != nil {
			dash.callbacks.OnRefresh()
		}
	})

	top := container.NewVBox(
		widget.NewCard("This week", "", container.NewVBox(dash.weekRange, summary)),
		container.NewHBox(dash.logLocation, layout.NewSpacer(), refresh),
	)
	return container.NewBorder(top, nil, nil, nil, dash.table)
}

// Show displays the window.
func (dash *Window) Show() {
	dash.window.Show()
	dash.window.RequestFocus()
}

// Window exposes the underlying fyne window.
func (dash *Window) Window() fyne.Window {
	return dash.window
}

// SetGoal prefills the goal entry and shows the target.
func (dash *Window) SetGoal(description string, targetMinutes int) {
	dash.goal.SetText(description)
	dash.SetGoalTarget(targetMinutes)
}

// SetGoalTarget shows the goal target from the settings.
func (dash *Window) SetGoalTarget(targetMinutes int) {
	dash.targetMinutes = targetMinutes
	if targetMinutes > 0 {
		dash.goalTarget.SetText(fmt.Sprintf("%d minutes", targetMinutes))
	} else {
		dash.goalTarget.SetText("none")
	}
}

// ShowStatus renders a status snapshot of the running session.
func (dash *Window) ShowStatus(status session.Status, config model.SessionConfig) {
	dash.remaining.Text = display.FormatRemaining(status.Remaining)
	dash.remaining.Refresh()
	dash.phase.SetText(display.PhaseLine(status))
	dash.intervals.SetText(display.IntervalsLine(status))
	dash.progress.SetValue(display.Progress(status, config))
	dash.status.SetText(display.StatusLine(status))
}

// ShowReady resets the timer view for the next session.
func (dash *Window) ShowReady(intervals int) {
	dash.remaining.Text = display.FormatRemaining(0)
	dash.remaining.Refresh()
	dash.phase.SetText(display.PhaseLine(session.Status{}))
	dash.intervals.SetText(display.IntervalsLine(session.Status{Intervals: intervals}))
	dash.progress.SetValue(0)
	dash.status.SetText(readyMessage)
}

// SetControls enables the buttons that apply to the session state.
func (dash *Window) SetControls(controls display.Controls) {
	setEnabled(dash.startButton, controls.Start)
	setEnabled(dash.pauseButton, controls.Pause)
	setEnabled(dash.resumeButton, controls.Resume)
	setEnabled(dash.stopButton, controls.Stop)
	if controls.Start {
		dash.goal.Enable()
	} else {
		dash.goal.Disable()
	}
}

// ShowReport renders weekly statistics and the records listing.
func (dash *Window) ShowReport(report tracker.Report, logPath string) {
	summary := report.Summary
	dash.weekRange.SetText(fmt.Sprintf("%s to %s",
		summary.Start.Format("Mon 2006-01-02"), summary.End.AddDate(0, 0, -1).Format("Mon 2006-01-02")))
	dash.minutes.SetText(fmt.Sprintf("%d", summary.TotalMinutes))
	dash.hours.SetText(display.FormatHours(summary))
	dash.sessions.SetText(fmt.Sprintf("%d", summary.Sessions))
	dash.doneCount.SetText(fmt.Sprintf("%d", summary.Intervals))

	rows := make([][]string, 0, len(report.Records))
	for _, record := range report.Records {
		rows = append(rows, display.RecordRow(record))
	}
	dash.records = rows
	dash.table.Refresh()
	dash.logLocation.SetText("Log file: " + logPath)
}

// ShowMessage opens an information dialog.
func (dash *Window) ShowMessage(title, message string) {
	dialog.ShowInformation(title, message, dash.window)
}

// ShowError opens an error dialog.
func (dash *Window) ShowError(err error) {
	dialog.ShowError(err, dash.window)
}

func (dash *Window) handleStart() {
	if dash.callbacks.OnStart == nil {
		return
	}
	dash.callbacks.OnStart(tracker.Goal{
		Description:   dash.goal.Text,
		TargetMinutes: dash.targetMinutes,
	})
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}
