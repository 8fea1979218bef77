// Package machine implements the workout statechart as a pure transition
// function. It owns no goroutines and no clocks: callers pass the current
// time in and execute the returned effects.
package machine

import (
	"time"

	"pyramidpush/internal/core/model"
	"pyramidpush/internal/core/workout"
)

// maxEventlessSteps bounds chained eventless transitions in one step.
const maxEventlessSteps = 8

// State is the full machine state: active configuration plus context.
type State struct {
	Config  Configuration
	Context workout.Context
}

// Result is the outcome of a single transition.
type Result struct {
	State   State
	Effects []Effect
	// Handled is false when no active state accepted the event. The state is
	// then returned unchanged and Effects is empty.
	Handled bool
}

// Machine holds the static timing configuration of the statechart.
type Machine struct {
	config model.SessionConfig
}

// New creates a machine.
func New(config model.SessionConfig) *Machine {
	return &Machine{config: config.Normalize()}
}

// Config returns the normalized timing configuration.
func (machine *Machine) Config() model.SessionConfig {
	return machine.config
}

// Initial returns the state of a freshly started machine.
func (machine *Machine) Initial() State {
	return State{
		Config:  InitialConfiguration(),
		Context: workout.NewContext(),
	}
}

// Transition applies event to state at time now.
func (machine *Machine) Transition(state State, event Event, now time.Time) Result {
	run := &step{
		machine: machine,
		config:  state.Config,
		context: state.Context.Clone(),
		now:     now,
	}

	if !run.dispatch(event) {
		return Result{State: state}
	}
	run.settle()

	return Result{
		State:   State{Config: run.config, Context: run.context},
		Effects: run.effects,
		Handled: true,
	}
}

// step accumulates one macrostep.
type step struct {
	machine *Machine
	config  Configuration
	context workout.Context
	effects []Effect
	now     time.Time
}

func (run *step) emit(effect Effect) {
	run.effects = append(run.effects, effect)
}

func (run *step) dispatch(event Event) bool {
	switch event.Type {
	case EventOpenSettings:
		if run.config.Settings != SettingsClosed {
			return false
		}
		run.config.Settings = SettingsOpen
		return true
	case EventCloseSettings:
		if run.config.Settings != SettingsOpen {
			return false
		}
		run.config.Settings = SettingsClosed
		return true
	case EventToggleMute:
		run.context.IsMuted = !run.context.IsMuted
		run.emit(Effect{Type: EffectSetMuted, Muted: run.context.IsMuted})
		return true
	case EventSetTempo:
		run.context.Tempo = event.Tempo
		return true
	}

	// Deepest state first, then ancestors.
	for state := run.config.Exercise; state != ""; state = state.Parent() {
		if run.handle(state, event) {
			return true
		}
	}
	return false
}

func (run *step) live(event Event) bool {
	return event.Token != 0 && event.Token == run.config.Token
}

func (run *step) handle(state StateID, event Event) bool {
	switch state {
	case Idle:
		switch event.Type {
		case EventStart:
			run.transition(Active, run.resetWorkout)
			return true
		case EventSetPeak:
			run.setPeak(event.Peak)
			return true
		}

	case Active:
		switch event.Type {
		case EventPause:
			run.transition(Paused)
			return true
		case EventReset:
			run.transition(Idle, run.resetWorkout)
			return true
		}

	case Countdown:
		if event.Type != EventCountdownTick || !run.live(event) {
			return false
		}
		if run.context.CountdownSecondsLeft <= 0 {
			run.transition(Working, run.resetForNewSet, run.cue(model.CueGo))
			return true
		}
		run.context.CountdownSecondsLeft--
		run.emit(playCue(model.CueCountdownBeep))
		return true

	case WorkingStart:
		if event.Type != EventDelayElapsed || !run.live(event) {
			return false
		}
		if run.context.CurrentTargetReps() == 1 {
			run.transition(WorkingLastDown)
		} else {
			run.transition(WorkingDown)
		}
		return true

	case WorkingDown:
		if event.Type != EventDelayElapsed || !run.live(event) {
			return false
		}
		run.transition(WorkingUp, run.incrementRep)
		return true

	case WorkingUp:
		if event.Type != EventDelayElapsed || !run.live(event) {
			return false
		}
		target := run.context.CurrentTargetReps()
		completed := run.context.CompletedRepsInSet
		switch {
		case completed == target-1:
			run.transition(WorkingLastDown)
		case completed < target:
			run.transition(WorkingDown)
		default:
			run.transition(SetComplete)
		}
		return true

	case WorkingLastDown:
		if event.Type != EventDelayElapsed || !run.live(event) {
			return false
		}
		run.transition(WorkingLastUp, run.incrementRep)
		return true

	case WorkingLastUp:
		if event.Type != EventDelayElapsed || !run.live(event) {
			return false
		}
		run.transition(SetComplete)
		return true

	case Resting:
		switch event.Type {
		case EventRestTick:
			if !run.live(event) {
				return false
			}
			if run.context.RestSecondsLeft <= 0 {
				run.transition(Countdown, run.advanceToNextSet)
				return true
			}
			run.context.RestSecondsLeft--
			return true
		case EventSkipRest:
			run.transition(Countdown, run.advanceToNextSet)
			return true
		}

	case Paused:
		switch event.Type {
		case EventResume:
			run.restore()
			return true
		case EventReset:
			run.transition(Idle, run.resetWorkout)
			return true
		case EventSetPeak:
			run.transition(Idle, func() { run.setPeak(event.Peak) })
			return true
		}

	case Finished:
		switch event.Type {
		case EventReset:
			run.transition(Idle, run.resetWorkout)
			return true
		case EventSetPeak:
			run.transition(Idle, func() { run.setPeak(event.Peak) })
			return true
		}
	}
	return false
}

// settle runs eventless transitions until the configuration is stable.
func (run *step) settle() {
	for i := 0; i < maxEventlessSteps && run.config.Exercise == SetComplete; i++ {
		if run.context.IsFinalSet() {
			run.transition(Finished)
		} else {
			run.transition(Resting)
		}
	}
}

// transition moves the exercise region to target. Exit actions run from the
// current leaf up to the common ancestor, then the transition actions, then
// entry actions down to the resolved target leaf.
func (run *step) transition(target StateID, actions ...func()) {
	leaf := resolveLeaf(target)
	exitPath := run.config.Exercise.Path()
	entryPath := leaf.Path()

	common := 0
	for common < len(exitPath) && common < len(entryPath) && exitPath[common] == entryPath[common] {
		common++
	}
	// A state is never its own ancestor; re-entering it exits first.
	if common == len(exitPath) || common == len(entryPath) {
		common--
	}

	for i := len(exitPath) - 1; i >= common; i-- {
		run.exit(exitPath[i])
	}
	for _, action := range actions {
		action()
	}
	run.config.Exercise = leaf
	run.config.Token = 0
	for _, state := range entryPath[common:] {
		run.enter(state, false)
	}
}

// restore re-enters the active composite at the remembered leaf.
func (run *step) restore() {
	leaf := run.config.History
	if leaf == "" || !leaf.Within(Active) {
		leaf = resolveLeaf(Active)
	}
	run.exit(Paused)
	run.config.Exercise = leaf
	run.config.Token = 0
	run.config.History = ""
	for _, state := range leaf.Path() {
		if state == Exercise {
			continue
		}
		run.enter(state, true)
	}
}

func (run *step) exit(state StateID) {
	switch state {
	case Active:
		run.config.History = run.config.Exercise
		run.emit(Effect{Type: EffectReleaseWakeHold})
	case Countdown, Resting:
		run.emit(Effect{Type: EffectStopTicker, Token: run.config.Token})
	case WorkingStart, WorkingDown, WorkingUp, WorkingLastDown, WorkingLastUp:
		run.emit(Effect{Type: EffectCancelDelay, Token: run.config.Token})
	}
}

// enter runs entry actions of state. When restoring from history only the
// lifecycle resources are restarted.
func (run *step) enter(state StateID, restoring bool) {
	config := run.machine.config

	switch state {
	case Idle, Finished:
		run.config.History = ""
		if state == Finished {
			run.emit(playCue(model.CueFinish))
		}

	case Active:
		run.emit(Effect{Type: EffectAcquireWakeHold})

	case Countdown:
		if !restoring {
			run.context.CountdownSecondsLeft = config.CountdownSeconds
			run.anchor(time.Duration(config.CountdownSeconds) * config.TickInterval)
			run.emit(playCue(model.CueCountdownBeep))
		} else {
			run.reanchor(run.context.CountdownSecondsLeft)
		}
		run.startTicker(EventCountdownTick)

	case Resting:
		if !restoring {
			rest := workout.RestSeconds(run.context.CurrentTargetReps())
			run.context.RestSecondsLeft = rest
			run.anchor(time.Duration(rest) * config.TickInterval)
			run.emit(playCue(model.CueRest))
		} else {
			run.reanchor(run.context.RestSecondsLeft)
		}
		run.startTicker(EventRestTick)

	case WorkingStart:
		run.scheduleDelay(config.InitialDelay)

	case WorkingDown, WorkingUp, WorkingLastDown, WorkingLastUp:
		if !restoring {
			run.emit(playCue(phaseCue(state)))
		}
		run.scheduleDelay(run.context.Tempo.PhaseDuration())
	}
}

func phaseCue(state StateID) model.Cue {
	switch state {
	case WorkingDown:
		return model.CueDown
	case WorkingUp:
		return model.CueUp
	case WorkingLastDown:
		return model.CueLastDown
	default:
		return model.CueLastUp
	}
}

func (run *step) nextToken() uint64 {
	run.config.Seq++
	run.config.Token = run.config.Seq
	return run.config.Token
}

func (run *step) startTicker(tick EventType) {
	run.emit(Effect{
		Type:  EffectStartTicker,
		Tick:  tick,
		Token: run.nextToken(),
		Delay: run.machine.config.TickInterval,
	})
}

func (run *step) scheduleDelay(delay time.Duration) {
	run.emit(Effect{
		Type:  EffectScheduleDelay,
		Token: run.nextToken(),
		Delay: delay,
	})
}

func (run *step) anchor(duration time.Duration) {
	run.context.TimerStartedAt = run.now
	run.context.TimerDuration = duration
}

// reanchor shifts the anchor so the interval keeps its total duration but
// has secondsLeft ticks remaining from now.
func (run *step) reanchor(secondsLeft int) {
	left := time.Duration(secondsLeft) * run.machine.config.TickInterval
	if left > run.context.TimerDuration {
		run.context.TimerDuration = left
	}
	run.context.TimerStartedAt = run.now.Add(left - run.context.TimerDuration)
}

func (run *step) cue(cue model.Cue) func() {
	return func() { run.emit(playCue(cue)) }
}

func (run *step) resetWorkout() {
	run.context.CurrentSetIndex = 0
	run.context.CompletedRepsInSet = 0
	run.context.CountdownSecondsLeft = run.machine.config.CountdownSeconds
	run.context.RestSecondsLeft = 0
}

func (run *step) resetForNewSet() {
	run.context.CompletedRepsInSet = 0
}

func (run *step) incrementRep() {
	run.context.CompletedRepsInSet++
}

func (run *step) advanceToNextSet() {
	run.context.CurrentSetIndex++
	run.context.CompletedRepsInSet = 0
}

func (run *step) setPeak(peak int) {
	run.context.PeakReps = peak
	run.context.PyramidSets = workout.GeneratePyramid(peak)
	run.context.CurrentSetIndex = 0
	run.context.CompletedRepsInSet = 0
}
