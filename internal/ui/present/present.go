// Package present turns session snapshots into what a front end shows:
// colours, headline text, progress and the primary action.
package present

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/core/session"
	"pyramidpush/internal/core/workout"
	"pyramidpush/internal/ui/animation"
)

// Color names the accent of a state.
type Color string

const (
	ColorSlate  Color = "slate"
	ColorSky    Color = "sky"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorTeal   Color = "teal"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
)

var colorHex = map[Color]string{
	ColorSlate:  "#475569",
	ColorSky:    "#38BDF8",
	ColorGreen:  "#22C55E",
	ColorOrange: "#F97316",
	ColorRed:    "#EF4444",
	ColorTeal:   "#14B8A6",
	ColorBlue:   "#3B82F6",
	ColorYellow: "#EAB308",
	ColorPurple: "#A855F7",
}

// Hex is the #RRGGBB value of the colour.
func (color Color) Hex() string {
	if hex, ok := colorHex[color]; ok {
		return hex
	}
	return colorHex[ColorSlate]
}

// RGB splits the colour into its channels.
func (color Color) RGB() (uint8, uint8, uint8) {
	value, _ := strconv.ParseUint(color.Hex()[1:], 16, 32)
	return uint8(value >> 16), uint8(value >> 8), uint8(value)
}

// Icon is shown instead of headline text in idle and finished.
type Icon string

const (
	IconNone   Icon = ""
	IconPlay   Icon = "play"
	IconTrophy Icon = "trophy"
)

// Meta is the static look of a leaf state.
type Meta struct {
	Color Color
	Icon  Icon
	Text  string
}

// MetaFor returns the look of the exercise leaf in config. Countdown and
// rest headlines depend on time and are filled in by Build.
func MetaFor(config machine.Configuration) Meta {
	switch config.Status() {
	case machine.StatusIdle:
		return Meta{Color: ColorSlate, Icon: IconPlay}
	case machine.StatusCountdown:
		return Meta{Color: ColorSky}
	case machine.StatusWorking:
		switch config.Phase() {
		case machine.PhaseDown:
			return Meta{Color: ColorOrange, Text: "DOWN"}
		case machine.PhaseUp:
			return Meta{Color: ColorGreen, Text: "UP"}
		case machine.PhaseLastDown:
			return Meta{Color: ColorRed, Text: "LAST DOWN"}
		case machine.PhaseLastUp:
			return Meta{Color: ColorTeal, Text: "LAST UP"}
		default:
			return Meta{Color: ColorGreen, Text: "GO"}
		}
	case machine.StatusResting:
		return Meta{Color: ColorBlue}
	case machine.StatusPaused:
		return Meta{Color: ColorYellow, Text: "PAUSED"}
	default:
		return Meta{Color: ColorPurple, Icon: IconTrophy}
	}
}

// PrimaryAction is the event sent by the main button in status.
func PrimaryAction(status machine.Status) machine.EventType {
	switch status {
	case machine.StatusIdle:
		return machine.EventStart
	case machine.StatusResting:
		return machine.EventSkipRest
	case machine.StatusFinished:
		return machine.EventReset
	case machine.StatusPaused:
		return machine.EventResume
	default:
		return machine.EventPause
	}
}

// ActionLabel is the button caption of a primary action.
func ActionLabel(action machine.EventType) string {
	switch action {
	case machine.EventStart:
		return "Start"
	case machine.EventSkipRest:
		return "Skip Rest"
	case machine.EventReset:
		return "Restart"
	case machine.EventResume:
		return "Resume"
	default:
		return "Pause"
	}
}

// Bar is one column of the pyramid chart.
type Bar struct {
	Reps      int
	Height    float64
	Current   bool
	Completed bool
}

// View is everything a front end renders for one snapshot.
type View struct {
	Status   machine.Status
	Phase    machine.Phase
	Meta     Meta
	Headline string
	SubText  string

	// Progress is the ring/bar fill in [0, 1].
	Progress float64
	Timed    bool

	Action      machine.EventType
	ActionLabel string

	CurrentTarget   string
	NextSet         string
	CompletedVolume int
	TotalVolume     int
	ProgressPercent float64
	Pyramid         []Bar

	Peak         int
	TempoLabel   string
	Muted        bool
	SettingsOpen bool
}

// Build derives the view of snapshot at now.
func Build(snapshot session.Snapshot, now time.Time) View {
	ctx := snapshot.Context
	status := snapshot.Status()
	meta := MetaFor(snapshot.Config)

	view := View{
		Status:          status,
		Phase:           snapshot.Phase(),
		Meta:            meta,
		Headline:        meta.Text,
		SubText:         SubText(status, ctx),
		Progress:        1,
		Action:          PrimaryAction(status),
		CurrentTarget:   dash(ctx.CurrentTargetReps()),
		NextSet:         "-",
		CompletedVolume: ctx.CompletedVolume(),
		TotalVolume:     ctx.TotalVolume(),
		ProgressPercent: ctx.ProgressPercent(),
		Pyramid:         Pyramid(ctx),
		Peak:            ctx.PeakReps,
		TempoLabel:      ctx.Tempo.Label(),
		Muted:           ctx.IsMuted,
		SettingsOpen:    snapshot.Config.SettingsOpen(),
	}
	view.ActionLabel = ActionLabel(view.Action)
	if next, ok := ctx.NextSetReps(); ok {
		view.NextSet = strconv.Itoa(next)
	}

	switch status {
	case machine.StatusCountdown:
		view.Timed = true
		view.Progress = animation.Progress(ctx.TimerStartedAt, ctx.TimerDuration, now)
		view.Headline = strconv.Itoa(countdownValue(ctx, now))
	case machine.StatusResting:
		view.Timed = true
		view.Progress = animation.Progress(ctx.TimerStartedAt, ctx.TimerDuration, now)
		view.Headline = fmt.Sprintf("%ds", restValue(ctx, now))
	}
	return view
}

// SubText is the line under the headline.
func SubText(status machine.Status, ctx workout.Context) string {
	switch status {
	case machine.StatusIdle:
		return "Tap to Start"
	case machine.StatusCountdown:
		return "Get Ready"
	case machine.StatusWorking:
		return fmt.Sprintf("%d / %d Reps", ctx.CompletedRepsInSet, ctx.CurrentTargetReps())
	case machine.StatusResting:
		return "Resting... Tap to Skip"
	case machine.StatusPaused:
		return "Tap to Resume"
	case machine.StatusFinished:
		return "Great Job!"
	default:
		return ""
	}
}

// Pyramid lays out the sets as bars scaled to the peak.
func Pyramid(ctx workout.Context) []Bar {
	bars := make([]Bar, len(ctx.PyramidSets))
	for i, reps := range ctx.PyramidSets {
		bars[i] = Bar{
			Reps:      reps,
			Current:   i == ctx.CurrentSetIndex,
			Completed: i < ctx.CurrentSetIndex,
		}
		if ctx.PeakReps > 0 {
			bars[i].Height = float64(reps) / float64(ctx.PeakReps)
		}
	}
	return bars
}

func countdownValue(ctx workout.Context, now time.Time) int {
	if ctx.TimerStartedAt.IsZero() {
		return max(1, ctx.CountdownSecondsLeft)
	}
	return animation.CountdownDisplay(ctx.TimerStartedAt, ctx.TimerDuration, now)
}

func restValue(ctx workout.Context, now time.Time) int {
	if ctx.TimerStartedAt.IsZero() {
		return ctx.RestSecondsLeft
	}
	remaining := animation.Remaining(ctx.TimerStartedAt, ctx.TimerDuration, now)
	return int(math.Ceil(remaining.Seconds()))
}

func dash(value int) string {
	if value == 0 {
		return "-"
	}
	return strconv.Itoa(value)
}
