package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/session"
	"pomodoro/internal/ui/display"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
}

// DefaultConfig is a small translucent panel.
var DefaultConfig = Config{Opacity: 220}

// Window is the break notice shown while a break runs.
type Window struct {
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	titleLabel *canvas.Text
	goalLabel  *canvas.Text
	detail     *canvas.Text
	timerLabel *canvas.Text
	dismiss    *widget.Button
	stop       *widget.Button
	visible    bool
	dismissed  bool
	onStop     func()
}

const (
	overlayWidthFraction  = float32(0.22)
	overlayHeightFraction = float32(0.22)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

var (
	textColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	timerColor = color.NRGBA{R: 120, G: 214, B: 140, A: 255}
)

// New creates the break notice; it stays hidden until a break starts.
func New(app fyne.App, title string, config Config) *Window {
	window := app.NewWindow(title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash windows have no native frame.
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	overlay := &Window{
		window:     window,
		config:     config,
		background: canvas.NewRectangle(color.NRGBA{A: config.Opacity}),
		titleLabel: newText("Time for a break", 21, true, textColor),
		goalLabel:  newText("", 14, false, textColor),
		detail:     newText("", 14, false, textColor),
		timerLabel: newText("--:--", 32, true, timerColor),
	}
	overlay.dismiss = widget.NewButton("Dismiss", overlay.Dismiss)
	overlay.stop = widget.NewButton("End Session", func() {
		if overlay.onStop != nil {
			overlay.onStop()
		}
	})

	text := container.New(&panelLayout{}, overlay.titleLabel, overlay.goalLabel, overlay.detail, overlay.timerLabel)
	buttons := container.NewHBox(overlay.dismiss, overlay.stop)
	content := container.NewBorder(nil, container.NewPadded(buttons), nil, nil, text)
	window.SetContent(container.NewStack(overlay.background, content))
	return overlay
}

func newText(value string, size float32, bold bool, fill color.Color) *canvas.Text {
	text := canvas.NewText(value, fill)
	text.Alignment = fyne.TextAlignLeading
	text.TextStyle = fyne.TextStyle{Bold: bold}
	text.TextSize = size
	return text
}

// SetOnStop sets the End Session handler.
func (overlay *Window) SetOnStop(handler func()) {
	overlay.onStop = handler
}

// Update follows the session: the notice opens when a break starts,
// tracks its countdown and closes when the break ends. A dismissed notice
// stays closed until the next break.
func (overlay *Window) Update(status session.Status, goal string) {
	if status.Phase != session.PhaseBreak {
		overlay.dismissed = false
		overlay.Hide()
		return
	}

	overlay.goalLabel.Text = goal
	overlay.goalLabel.Refresh()
	overlay.detail.Text = display.StatusLine(status)
	if status.Paused {
		overlay.detail.Text += " (paused)"
	}
	overlay.detail.Refresh()
	overlay.timerLabel.Text = display.FormatRemaining(status.Remaining)
	overlay.timerLabel.Refresh()

	if overlay.visible || overlay.dismissed {
		return
	}
	overlay.visible = true
	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Dismiss hides the notice for the rest of this break.
func (overlay *Window) Dismiss() {
	overlay.dismissed = true
	overlay.Hide()
}

// Hide closes the notice.
func (overlay *Window) Hide() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

// Visible reports whether the notice is on screen.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

// Remaining returns the countdown text.
func (overlay *Window) Remaining() string {
	return overlay.timerLabel.Text
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{A: config.Opacity}
	canvas.Refresh(overlay.background)
	if overlay.visible {
		overlay.applyWindowMode()
	}
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// A screen sized canvas stands in for the monitor size.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	minSize := overlay.window.Content().MinSize()
	width := max(screenSize.Width*overlayWidthFraction, minSize.Width)
	height := max(screenSize.Height*overlayHeightFraction, minSize.Height)
	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// panelLayout stacks title, goal and detail from the top and pins the
// countdown to the bottom.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	pad := size.Height * 0.05
	availableWidth := max(size.Width-pad*2, 0)

	y := pad
	for i, object := range objects[:3] {
		objectSize := object.MinSize()
		object.Move(fyne.NewPos(pad, y))
		object.Resize(fyne.NewSize(availableWidth, objectSize.Height))
		y += objectSize.Height + float32(6+2*i)
	}

	timer := objects[3]
	timerSize := timer.MinSize()
	timer.Move(fyne.NewPos(pad, max(size.Height-pad-timerSize.Height, y)))
	timer.Resize(timerSize)
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, object := range objects {
		objectSize := object.MinSize()
		width = max(width, objectSize.Width)
		height += objectSize.Height
	}
	return fyne.NewSize(width+20, height+40)
}
