package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     model.Settings
	onSave       func(model.Settings) error
	workMinutes  *widget.Entry
	breakMinutes *widget.Entry
	intervals    *widget.Entry
	goalTarget   *widget.Entry
	weekStart    *widget.Select
	logPath      *widget.Label
	errorLabel   *widget.Label
	saveButton   *widget.Button
}

// New creates a preferences window. onSave receives validated settings; an
// error it returns keeps the window open.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		workMinutes:  widget.NewEntry(),
		breakMinutes: widget.NewEntry(),
		intervals:    widget.NewEntry(),
		goalTarget:   widget.NewEntry(),
		weekStart:    widget.NewSelect(WeekStartOptions, nil),
		logPath:      widget.NewLabel(""),
		errorLabel:   widget.NewLabel(""),
	}
	prefs.logPath.Wrapping = fyne.TextWrapBreak
	prefs.errorLabel.Importance = widget.DangerImportance
	prefs.errorLabel.Hide()

	form := widget.NewForm(
		widget.NewFormItem("Work (min)", prefs.workMinutes),
		widget.NewFormItem("Break (min)", prefs.breakMinutes),
		widget.NewFormItem("Intervals", prefs.intervals),
		widget.NewFormItem("Goal target (min)", prefs.goalTarget),
		widget.NewFormItem("Week starts on", prefs.weekStart),
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), prefs.saveButton)

	content := container.NewVBox(
		widget.NewLabelWithStyle("Session defaults", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		prefs.logPath,
		prefs.errorLabel,
	)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, content))
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() model.Settings {
	return prefs.settings
}

// SetLogPath shows where sessions are recorded.
func (prefs *Window) SetLogPath(path string) {
	prefs.logPath.SetText("Session log: " + path)
}

// SetEditable disables the form while a session runs.
func (prefs *Window) SetEditable(editable bool) {
	for _, entry := range []*widget.Entry{prefs.workMinutes, prefs.breakMinutes, prefs.intervals, prefs.goalTarget} {
		if editable {
			entry.Enable()
		} else {
			entry.Disable()
		}
	}
	if editable {
		prefs.weekStart.Enable()
		prefs.saveButton.Enable()
	} else {
		prefs.weekStart.Disable()
		prefs.saveButton.Disable()
	}
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	values := ValuesFromSettings(settings)
	prefs.workMinutes.SetText(values.WorkMinutes)
	prefs.breakMinutes.SetText(values.BreakMinutes)
	prefs.intervals.SetText(values.Intervals)
	prefs.goalTarget.SetText(values.GoalTargetMinutes)
	prefs.weekStart.SetSelected(values.WeekStart)
	prefs.errorLabel.Hide()
}

func (prefs *Window) values() FormValues {
	return FormValues{
		WorkMinutes:       prefs.workMinutes.Text,
		BreakMinutes:      prefs.breakMinutes.Text,
		Intervals:         prefs.intervals.Text,
		GoalTargetMinutes: prefs.goalTarget.Text,
		WeekStart:         prefs.weekStart.Selected,
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.values().Apply(prefs.settings)
	if err != nil {
		prefs.showError(err)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			prefs.showError(err)
			return
		}
	}
	prefs.settings = settings
	prefs.errorLabel.Hide()
	prefs.window.Hide()
}

func (prefs *Window) showError(err error) {
	prefs.errorLabel.SetText(err.Error())
	prefs.errorLabel.Show()
}
