package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Primary  key.Binding
	Pause    key.Binding
	Skip     key.Binding
	Reset    key.Binding
	Mute     key.Binding
	PeakUp   key.Binding
	PeakDown key.Binding
	Tempo    key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Primary:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/skip/pause")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip rest")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Mute:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		PeakUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "peak up")),
		PeakDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "peak down")),
		Tempo:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tempo")),
		Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Primary, k.Pause, k.Reset, k.Mute, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Primary, k.Pause, k.Skip, k.Reset},
		{k.Mute, k.Tempo, k.PeakUp, k.PeakDown},
		{k.Settings, k.Help, k.Quit},
	}
}
