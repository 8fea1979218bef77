// Package tui is the terminal front end of a workout session.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/core/model"
	"pyramidpush/internal/core/session"
	"pyramidpush/internal/ui/present"
)

const (
	frameInterval = time.Second / 20
	pyramidRows   = 6
	defaultWidth  = 60
)

// Controller is the part of a session the terminal UI drives.
type Controller interface {
	Snapshot() session.Snapshot
	Send(machine.Event) bool
}

// Options configure the terminal model.
type Options struct {
	ShowPyramid bool
	// Now is the clock used for smooth progress. Defaults to time.Now.
	Now func() time.Time
}

type sessionEventMsg struct{ event session.Event }
type sessionClosedMsg struct{}
type frameMsg struct{ ts time.Time }

// Model is the bubbletea model of the workout screen.
type Model struct {
	controller Controller
	events     <-chan session.Event
	snapshot   session.Snapshot
	now        func() time.Time
	at         time.Time

	keys        keyMap
	help        help.Model
	progress    progress.Model
	styles      styles
	showPyramid bool
	width       int
	quitting    bool
}

// New builds the model. events is a subscription on the same session.
func New(controller Controller, events <-chan session.Event, options Options) Model {
	now := options.Now
	if now == nil {
		now = time.Now
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = defaultWidth - 4

	return Model{
		controller:  controller,
		events:      events,
		snapshot:    controller.Snapshot(),
		now:         now,
		at:          now(),
		keys:        defaultKeyMap(),
		help:        help.New(),
		progress:    bar,
		styles:      defaultStyles(),
		showPyramid: options.ShowPyramid,
		width:       defaultWidth,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(controller Controller, events <-chan session.Event, options Options) error {
	program := tea.NewProgram(New(controller, events, options), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitEventCmd(m.events), frameCmd())
}

func waitEventCmd(events <-chan session.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return sessionClosedMsg{}
		}
		return sessionEventMsg{event: event}
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(ts time.Time) tea.Msg { return frameMsg{ts: ts} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(msg.Width-4, 80))
		return m, nil

	case sessionEventMsg:
		m.snapshot = msg.event.Snapshot
		return m, waitEventCmd(m.events)

	case sessionClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case frameMsg:
		m.at = m.now()
		return m, frameCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.snapshot.Context
	status := m.snapshot.Status()

	var event machine.Event
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Primary):
		event = machine.Simple(present.PrimaryAction(status))
	case key.Matches(msg, m.keys.Pause):
		if status == machine.StatusPaused {
			event = machine.Simple(machine.EventResume)
		} else {
			event = machine.Simple(machine.EventPause)
		}
	case key.Matches(msg, m.keys.Skip):
		event = machine.Simple(machine.EventSkipRest)
	case key.Matches(msg, m.keys.Reset):
		event = machine.Simple(machine.EventReset)
	case key.Matches(msg, m.keys.Mute):
		event = machine.Simple(machine.EventToggleMute)
	case key.Matches(msg, m.keys.PeakUp):
		event = machine.SetPeak(model.ClampPeak(ctx.PeakReps + 1))
	case key.Matches(msg, m.keys.PeakDown):
		event = machine.SetPeak(model.ClampPeak(ctx.PeakReps - 1))
	case key.Matches(msg, m.keys.Tempo):
		event = machine.SetTempo(ctx.Tempo.Next())
	case key.Matches(msg, m.keys.Settings):
		if m.snapshot.Config.SettingsOpen() {
			event = machine.Simple(machine.EventCloseSettings)
		} else {
			event = machine.Simple(machine.EventOpenSettings)
		}
	default:
		return m, nil
	}

	m.controller.Send(event)
	m.snapshot = m.controller.Snapshot()
	m.at = m.now()
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	view := present.Build(m.snapshot, m.at)
	s := m.styles

	var b strings.Builder
	b.WriteString(s.title.Render("Pyramid Push"))
	if view.Muted {
		b.WriteString("  " + s.warn.Render("muted"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.statsRow(view))
	b.WriteString("\n\n")

	b.WriteString(s.accent(view.Meta.Color).Render(headline(view)))
	b.WriteString("\n")
	b.WriteString(s.sub.Render(view.SubText))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(view.Progress))
	b.WriteString("\n")
	b.WriteString(s.dim.Render(fmt.Sprintf("%d / %d reps", view.CompletedVolume, view.TotalVolume)))
	b.WriteString("\n\n")

	if m.showPyramid {
		b.WriteString(m.pyramid(view.Pyramid))
		b.WriteString("\n\n")
	}
	if view.SettingsOpen {
		b.WriteString(m.settingsPanel(view))
		b.WriteString("\n\n")
	}

	b.WriteString(s.label.Render("[space] " + view.ActionLabel))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func headline(view present.View) string {
	switch view.Meta.Icon {
	case present.IconPlay:
		return "▶ READY"
	case present.IconTrophy:
		return "🏆 DONE"
	default:
		return view.Headline
	}
}

func (m Model) statsRow(view present.View) string {
	s := m.styles
	cell := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Center, s.label.Render(label), s.value.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Current Set", view.CurrentTarget),
		"    ",
		cell("Volume", fmt.Sprintf("%d/%d", view.CompletedVolume, view.TotalVolume)),
		"    ",
		cell("Next Set", view.NextSet),
	)
}

// pyramid draws one column per set, scaled to pyramidRows.
func (m Model) pyramid(bars []present.Bar) string {
	s := m.styles
	rows := make([]string, pyramidRows)
	for row := range rows {
		threshold := float64(pyramidRows-row) / float64(pyramidRows)
		var line strings.Builder
		for _, bar := range bars {
			cell := " "
			if bar.Height >= threshold-1e-9 || (row == pyramidRows-1 && bar.Reps > 0) {
				cell = "█"
			}
			switch {
			case bar.Current:
				line.WriteString(s.barActive.Render(cell))
			case bar.Completed:
				line.WriteString(s.barDone.Render(cell))
			default:
				line.WriteString(s.barTodo.Render(cell))
			}
		}
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}

func (m Model) settingsPanel(view present.View) string {
	s := m.styles
	sound := "on"
	if view.Muted {
		sound = "off"
	}
	body := strings.Join([]string{
		s.title.Render("Settings"),
		fmt.Sprintf("%s %s   %s", s.label.Render("Peak Reps"), s.value.Render(fmt.Sprint(view.Peak)), s.dim.Render("[-/+]")),
		fmt.Sprintf("%s %s   %s", s.label.Render("Tempo"), s.value.Render(view.TempoLabel), s.dim.Render("[t]")),
		fmt.Sprintf("%s %s   %s", s.label.Render("Sound"), s.value.Render(sound), s.dim.Render("[m]")),
	}, "\n")
	return s.panel.Render(body)
}
