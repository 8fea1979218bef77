package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pyramidpush/internal/ui/present"
)

type styles struct {
	title     lipgloss.Style
	headline  lipgloss.Style
	sub       lipgloss.Style
	panel     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	dim       lipgloss.Style
	barDone   lipgloss.Style
	barActive lipgloss.Style
	barTodo   lipgloss.Style
	warn      lipgloss.Style
}

func defaultStyles() styles {
	brand := lipgloss.AdaptiveColor{Light: "26", Dark: "81"}
	subtle := lipgloss.AdaptiveColor{Light: "245", Dark: "244"}
	border := lipgloss.AdaptiveColor{Light: "250", Dark: "238"}

	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(brand),
		headline:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		sub:       lipgloss.NewStyle().Foreground(subtle),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		label:     lipgloss.NewStyle().Foreground(subtle),
		value:     lipgloss.NewStyle().Bold(true),
		dim:       lipgloss.NewStyle().Foreground(subtle),
		barDone:   lipgloss.NewStyle().Foreground(lipgloss.Color(present.ColorGreen.Hex())),
		barActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ADE80")),
		barTodo:   lipgloss.NewStyle().Foreground(lipgloss.Color(present.ColorSlate.Hex())),
		warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

// accent colours the headline with the state colour.
func (s styles) accent(color present.Color) lipgloss.Style {
	return s.headline.Foreground(lipgloss.Color(color.Hex()))
}
