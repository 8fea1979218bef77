package preferences

import (
	"pyramidpush/internal/audio"
	"pyramidpush/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Peak  int
	Tempo model.Tempo
	Muted bool
	Style audio.Style
}

// FromPreferences converts stored preferences into dialog settings.
func FromPreferences(prefs model.Preferences) Settings {
	style, err := audio.ParseStyle(prefs.SoundStyle)
	if err != nil {
		style = audio.DefaultStyle
	}
	tempo := prefs.Tempo
	if !tempo.Valid() {
		tempo = model.DefaultTempo
	}
	return Settings{
		Peak:  model.ClampPeak(prefs.Peak),
		Tempo: tempo,
		Muted: prefs.Muted,
		Style: style,
	}
}

// Apply copies the settings onto prefs, leaving other fields untouched.
func (settings Settings) Apply(prefs model.Preferences) model.Preferences {
	prefs.Peak = settings.Peak
	prefs.Tempo = settings.Tempo
	prefs.Muted = settings.Muted
	prefs.SoundStyle = string(settings.Style)
	return prefs
}

// StepPeak moves peak by delta within the allowed range.
func StepPeak(peak, delta int) int {
	return model.ClampPeak(peak + delta)
}

// TempoLabels lists the tempo choices in display order.
func TempoLabels() []string {
	tempos := model.Tempos()
	labels := make([]string, len(tempos))
	for i, tempo := range tempos {
		labels[i] = tempo.Label()
	}
	return labels
}

// TempoForLabel is the inverse of Tempo.Label.
func TempoForLabel(label string) (model.Tempo, bool) {
	for _, tempo := range model.Tempos() {
		if tempo.Label() == label {
			return tempo, true
		}
	}
	return 0, false
}

// StyleNames lists the sound styles as strings.
func StyleNames() []string {
	styles := audio.Styles()
	names := make([]string, len(styles))
	for i, style := range styles {
		names[i] = string(style)
	}
	return names
}
