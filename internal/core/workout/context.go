// Package workout holds the session context record and the pure derivations
// computed from it: the rep pyramid, rest durations and progress selectors.
package workout

import (
	"time"

	"pyramidpush/internal/core/model"
)

// Context is the mutable data record of a workout session.
// Only the state machine produces new values of it.
type Context struct {
	PeakReps           int
	PyramidSets        []int
	CurrentSetIndex    int
	CompletedRepsInSet int
	Tempo              model.Tempo
	IsMuted            bool

	CountdownSecondsLeft int
	RestSecondsLeft      int

	// TimerStartedAt and TimerDuration anchor the running countdown or rest
	// interval so observers can interpolate progress between ticks.
	TimerStartedAt time.Time
	TimerDuration  time.Duration
}

// NewContext returns the context of a fresh session.
func NewContext() Context {
	return Context{
		PeakReps:             model.DefaultPeak,
		PyramidSets:          GeneratePyramid(model.DefaultPeak),
		Tempo:                model.DefaultTempo,
		CountdownSecondsLeft: model.DefaultSessionConfig().CountdownSeconds,
	}
}

// Clone returns a copy that shares no memory with ctx.
func (ctx Context) Clone() Context {
	clone := ctx
	clone.PyramidSets = append([]int(nil), ctx.PyramidSets...)
	return clone
}

// CurrentTargetReps returns the rep target of the current set, or 0 when the
// index is out of range.
func (ctx Context) CurrentTargetReps() int {
	if ctx.CurrentSetIndex < 0 || ctx.CurrentSetIndex >= len(ctx.PyramidSets) {
		return 0
	}
	return ctx.PyramidSets[ctx.CurrentSetIndex]
}

// NextSetReps returns the rep target of the following set. The boolean is
// false at the final set.
func (ctx Context) NextSetReps() (int, bool) {
	next := ctx.CurrentSetIndex + 1
	if next < 0 || next >= len(ctx.PyramidSets) {
		return 0, false
	}
	return ctx.PyramidSets[next], true
}

// TotalVolume is the sum of every set in the pyramid.
func (ctx Context) TotalVolume() int {
	return sum(ctx.PyramidSets)
}

// CompletedVolume counts finished sets plus reps done in the current set.
func (ctx Context) CompletedVolume() int {
	finished := ctx.CurrentSetIndex
	if finished > len(ctx.PyramidSets) {
		finished = len(ctx.PyramidSets)
	}
	if finished < 0 {
		finished = 0
	}
	return sum(ctx.PyramidSets[:finished]) + ctx.CompletedRepsInSet
}

// ProgressPercent is the share of sets started before the current one.
func (ctx Context) ProgressPercent() float64 {
	if len(ctx.PyramidSets) == 0 {
		return 0
	}
	return float64(ctx.CurrentSetIndex) / float64(len(ctx.PyramidSets)) * 100
}

// IsFinalSet reports whether no set follows the current one.
func (ctx Context) IsFinalSet() bool {
	return ctx.CurrentSetIndex >= len(ctx.PyramidSets)-1
}

// CountdownSeconds returns the whole seconds left in the pre-set countdown.
func (ctx Context) CountdownSeconds() int {
	return ctx.CountdownSecondsLeft
}

// RestSeconds returns the whole seconds left in the current rest.
func (ctx Context) RestSeconds() int {
	return ctx.RestSecondsLeft
}

func sum(values []int) int {
	total := 0
	for _, value := range values {
		total += value
	}
	return total
}
