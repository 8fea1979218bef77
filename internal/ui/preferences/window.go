package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pyramidpush/internal/audio"
	"pyramidpush/internal/core/model"
)

// Callbacks receive every change as it is made.
type Callbacks struct {
	OnPeak  func(int)
	OnTempo func(model.Tempo)
	OnMute  func(bool)
	OnStyle func(audio.Style)
	OnClose func()
}

// Window handles the settings UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	callbacks Callbacks
	peakLabel *widget.Label
	minus     *widget.Button
	plus      *widget.Button
	tempo     *widget.RadioGroup
	style     *widget.Select
	styleInfo *widget.Label
	mute      *widget.Check
	updating  bool
}

// New creates a settings window.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("Pyramid Push Settings")

	prefs := &Window{
		window:    window,
		settings:  settings,
		callbacks: callbacks,
		peakLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		styleInfo: widget.NewLabel(""),
	}
	prefs.minus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() { prefs.stepPeak(-1) })
	prefs.plus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() { prefs.stepPeak(1) })
	prefs.tempo = widget.NewRadioGroup(TempoLabels(), prefs.handleTempo)
	prefs.tempo.Horizontal = true
	prefs.tempo.Required = true
	prefs.style = widget.NewSelect(StyleNames(), prefs.handleStyle)
	prefs.mute = widget.NewCheck("Mute sounds", prefs.handleMute)
	prefs.styleInfo.Wrapping = fyne.TextWrapWord

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pyramid", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(prefs.minus, layout.NewSpacer(), prefs.peakLabel, layout.NewSpacer(), prefs.plus),
		widget.NewLabel("Tempo"),
		prefs.tempo,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.style,
		prefs.styleInfo,
		prefs.mute,
	)

	done := widget.NewButton("Done", prefs.Close)
	buttons := container.NewHBox(layout.NewSpacer(), done)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(prefs.Close)
	window.Resize(fyne.NewSize(380, 360))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Close hides the window and reports it.
func (prefs *Window) Close() {
	prefs.window.Hide()
	if prefs.callbacks.OnClose != nil {
		prefs.callbacks.OnClose()
	}
}

// Settings returns the values currently shown.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values without firing callbacks.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.updating = true
	defer func() { prefs.updating = false }()

	prefs.settings = settings
	prefs.peakLabel.SetText(fmt.Sprintf("%d peak reps", settings.Peak))
	prefs.minus.Disable()
	if settings.Peak > model.MinPeak {
		prefs.minus.Enable()
	}
	prefs.plus.Disable()
	if settings.Peak < model.MaxPeak {
		prefs.plus.Enable()
	}
	prefs.tempo.SetSelected(settings.Tempo.Label())
	prefs.style.SetSelected(string(settings.Style))
	prefs.styleInfo.SetText(settings.Style.Description())
	prefs.mute.SetChecked(settings.Muted)
}

func (prefs *Window) stepPeak(delta int) {
	peak := StepPeak(prefs.settings.Peak, delta)
	if peak == prefs.settings.Peak {
		return
	}
	settings := prefs.settings
	settings.Peak = peak
	prefs.UpdateSettings(settings)
	if prefs.callbacks.OnPeak != nil {
		prefs.callbacks.OnPeak(peak)
	}
}

func (prefs *Window) handleTempo(label string) {
	tempo, ok := TempoForLabel(label)
	if prefs.updating || !ok || tempo == prefs.settings.Tempo {
		return
	}
	prefs.settings.Tempo = tempo
	if prefs.callbacks.OnTempo != nil {
		prefs.callbacks.OnTempo(tempo)
	}
}

func (prefs *Window) handleStyle(name string) {
	style, err := audio.ParseStyle(name)
	if prefs.updating || err != nil || style == prefs.settings.Style {
		return
	}
	prefs.settings.Style = style
	prefs.styleInfo.SetText(style.Description())
	if prefs.callbacks.OnStyle != nil {
		prefs.callbacks.OnStyle(style)
	}
}

func (prefs *Window) handleMute(checked bool) {
	if prefs.updating || checked == prefs.settings.Muted {
		return
	}
	prefs.settings.Muted = checked
	if prefs.callbacks.OnMute != nil {
		prefs.callbacks.OnMute(checked)
	}
}
