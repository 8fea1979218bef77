// Package window is the main desktop workout window.
package window

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/core/session"
	"pyramidpush/internal/ui/animation"
	"pyramidpush/internal/ui/present"
)

// Callbacks defines button handlers.
type Callbacks struct {
	OnPrimary    func()
	OnReset      func()
	OnToggleMute func()
	OnSettings   func()
}

// Window manages the workout UI.
type Window struct {
	window    fyne.Window
	callbacks Callbacks
	engine    *animation.Engine
	now       func() time.Time

	snapshot session.Snapshot
	view     present.View

	accent     *canvas.Rectangle
	headline   *canvas.Text
	subText    *canvas.Text
	currentSet *canvas.Text
	volume     *canvas.Text
	nextSet    *canvas.Text
	progress   *widget.ProgressBar
	bars       *fyne.Container
	barLayout  *pyramidLayout
	primary    *widget.Button
	reset      *widget.Button
	mute       *widget.Button
	settings   *widget.Button
	hint       *widget.Label
}

var (
	textColor   = color.NRGBA{R: 241, G: 245, B: 249, A: 255}
	subtleColor = color.NRGBA{R: 148, G: 163, B: 184, A: 255}
	background  = color.NRGBA{R: 15, G: 23, B: 42, A: 255}
	todoColor   = color.NRGBA{R: 51, G: 65, B: 85, A: 110}
	doneColor   = color.NRGBA{R: 22, G: 163, B: 74, A: 230}
	activeColor = color.NRGBA{R: 74, G: 222, B: 128, A: 255}
)

// New creates the workout window. It is not shown until Show.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("Pyramid Push")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	w := &Window{
		window:     window,
		callbacks:  callbacks,
		now:        time.Now,
		accent:     canvas.NewRectangle(color.Transparent),
		headline:   newText("", 48, true, textColor),
		subText:    newText("", 16, false, subtleColor),
		currentSet: newText("-", 28, true, textColor),
		volume:     newText("0 / 0", 18, true, textColor),
		nextSet:    newText("-", 28, true, subtleColor),
		progress:   widget.NewProgressBar(),
		barLayout:  &pyramidLayout{},
		hint:       widget.NewLabel(""),
	}
	w.engine = animation.New(animation.DefaultConfig(), func(time.Time) {
		fyne.Do(func() { w.renderAt(w.now()) })
	})
	w.progress.TextFormatter = func() string { return "" }
	w.bars = container.New(w.barLayout)
	w.hint.Alignment = fyne.TextAlignCenter

	w.primary = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), invoke(&w.callbacks.OnPrimary))
	w.primary.Importance = widget.HighImportance
	w.reset = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), invoke(&w.callbacks.OnReset))
	w.mute = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), invoke(&w.callbacks.OnToggleMute))
	w.settings = widget.NewButtonWithIcon("", theme.SettingsIcon(), invoke(&w.callbacks.OnSettings))

	stats := container.NewGridWithColumns(3,
		stat("Current Set", w.currentSet),
		stat("Volume", w.volume),
		stat("Next Set", w.nextSet),
	)
	toolbar := container.NewHBox(w.reset, layout.NewSpacer(), w.mute, w.settings)
	centre := container.NewStack(
		w.accent,
		container.NewVBox(layout.NewSpacer(), w.headline, w.subText, layout.NewSpacer()),
	)
	body := container.NewBorder(
		container.NewVBox(toolbar, stats),
		container.NewVBox(w.progress, container.NewGridWrap(fyne.NewSize(360, 90), w.bars), w.primary, w.hint),
		nil, nil,
		centre,
	)

	window.SetContent(container.NewStack(canvas.NewRectangle(background), container.NewPadded(body)))
	window.Resize(fyne.NewSize(400, 620))
	return w
}

func newText(value string, size float32, bold bool, fill color.Color) *canvas.Text {
	text := canvas.NewText(value, fill)
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = size
	text.TextStyle = fyne.TextStyle{Bold: bold}
	return text
}

func stat(label string, value *canvas.Text) fyne.CanvasObject {
	return container.NewVBox(newText(label, 12, false, subtleColor), value)
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}

// SetOnSettings sets the settings button handler.
func (w *Window) SetOnSettings(handler func()) {
	w.callbacks.OnSettings = handler
}

// Show displays the window.
func (w *Window) Show() {
	w.window.Show()
	w.window.RequestFocus()
}

// Fyne exposes the underlying window for dialogs and close intercepts.
func (w *Window) Fyne() fyne.Window {
	return w.window
}

// Render shows snapshot. Must run on the fyne goroutine.
func (w *Window) Render(snapshot session.Snapshot) {
	w.snapshot = snapshot
	w.renderAt(w.now())

	if w.view.Timed {
		if !w.engine.Running() {
			w.engine.Start(context.Background())
		}
	} else {
		w.engine.Stop()
	}
}

// View is the last rendered view.
func (w *Window) View() present.View {
	return w.view
}

// Close stops the frame loop.
func (w *Window) Close() {
	w.engine.Stop()
}

// ShowOnboarding explains the workout once and reports dismissal.
func (w *Window) ShowOnboarding(onDismiss func()) {
	info := dialog.NewInformation("Welcome to Pyramid Push",
		"Each set adds one push-up until the peak, then counts back down.\n"+
			"Follow the DOWN / UP cues, rest between sets, and use the settings\n"+
			"button to change the peak or the tempo.",
		w.window)
	info.SetOnClosed(onDismiss)
	info.Show()
}

func (w *Window) renderAt(now time.Time) {
	view := present.Build(w.snapshot, now)
	w.view = view

	r, g, b := view.Meta.Color.RGB()
	w.accent.FillColor = color.NRGBA{R: r, G: g, B: b, A: 48}
	w.accent.StrokeColor = color.NRGBA{R: r, G: g, B: b, A: 255}
	w.accent.StrokeWidth = 3
	w.accent.CornerRadius = 18
	w.accent.Refresh()

	w.headline.Text = headlineText(view)
	w.headline.Color = color.NRGBA{R: r, G: g, B: b, A: 255}
	w.headline.Refresh()
	setText(w.subText, view.SubText)
	setText(w.currentSet, view.CurrentTarget)
	setText(w.volume, formatVolume(view))
	setText(w.nextSet, view.NextSet)

	w.progress.SetValue(view.Progress)

	w.primary.SetText(view.ActionLabel)
	w.primary.SetIcon(actionIcon(view))
	if view.Muted {
		w.mute.SetIcon(theme.VolumeMuteIcon())
	} else {
		w.mute.SetIcon(theme.VolumeUpIcon())
	}

	w.hint.SetText("")
	if view.Status == machine.StatusIdle {
		w.hint.SetText("Use the settings button to change the pyramid height.")
	}
	w.renderBars(view.Pyramid)
}

func (w *Window) renderBars(bars []present.Bar) {
	if len(w.bars.Objects) != len(bars) {
		objects := make([]fyne.CanvasObject, len(bars))
		for i := range objects {
			rect := canvas.NewRectangle(todoColor)
			rect.CornerRadius = 2
			objects[i] = rect
		}
		w.bars.Objects = objects
	}
	heights := make([]float32, len(bars))
	for i, bar := range bars {
		heights[i] = float32(bar.Height)
		rect := w.bars.Objects[i].(*canvas.Rectangle)
		switch {
		case bar.Current:
			rect.FillColor = activeColor
		case bar.Completed:
			rect.FillColor = doneColor
		default:
			rect.FillColor = todoColor
		}
		rect.Refresh()
	}
	w.barLayout.heights = heights
	w.bars.Refresh()
}

func setText(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}

func headlineText(view present.View) string {
	switch view.Meta.Icon {
	case present.IconPlay:
		return "▶"
	case present.IconTrophy:
		return "🏆"
	default:
		return view.Headline
	}
}

func actionIcon(view present.View) fyne.Resource {
	switch view.ActionLabel {
	case "Start", "Resume":
		return theme.MediaPlayIcon()
	case "Skip Rest":
		return theme.MediaSkipNextIcon()
	case "Restart":
		return theme.ViewRefreshIcon()
	default:
		return theme.MediaPauseIcon()
	}
}

func formatVolume(view present.View) string {
	return fmt.Sprintf("%d / %d", view.CompletedVolume, view.TotalVolume)
}
