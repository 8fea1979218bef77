package machine

import (
	"reflect"
	"testing"
	"time"

	"pyramidpush/internal/core/model"
	"pyramidpush/internal/core/workout"
)

var epoch = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

// harness drives the pure machine and records every effect.
type harness struct {
	t       *testing.T
	machine *Machine
	state   State
	now     time.Time
	effects []Effect
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	machine := New(model.DefaultSessionConfig())
	return &harness{t: t, machine: machine, state: machine.Initial(), now: epoch}
}

func (h *harness) send(event Event) Result {
	h.t.Helper()
	h.now = h.now.Add(10 * time.Millisecond)
	result := h.machine.Transition(h.state, event, h.now)
	h.state = result.State
	h.effects = append(h.effects, result.Effects...)
	return result
}

func (h *harness) mustSend(event Event) Result {
	h.t.Helper()
	result := h.send(event)
	if !result.Handled {
		h.t.Fatalf("%s not handled in %s", event, h.state.Config.Exercise)
	}
	return result
}

// fire delivers the timer event the live leaf is waiting for.
func (h *harness) fire() Result {
	h.t.Helper()
	token := h.state.Config.Token
	switch h.state.Config.Exercise {
	case Countdown:
		return h.mustSend(Tick(EventCountdownTick, token))
	case Resting:
		return h.mustSend(Tick(EventRestTick, token))
	default:
		return h.mustSend(DelayElapsed(token))
	}
}

// runUntil fires timers until the exercise leaf equals target.
func (h *harness) runUntil(target StateID) {
	h.t.Helper()
	for i := 0; i < 10000; i++ {
		if h.state.Config.Exercise == target {
			return
		}
		h.fire()
	}
	h.t.Fatalf("never reached %s, stuck at %s", target, h.state.Config.Exercise)
}

func (h *harness) cues() []model.Cue {
	var cues []model.Cue
	for _, effect := range h.effects {
		if effect.Type == EffectPlayCue {
			cues = append(cues, effect.Cue)
		}
	}
	return cues
}

func countEffects(effects []Effect, effectType EffectType) int {
	count := 0
	for _, effect := range effects {
		if effect.Type == effectType {
			count++
		}
	}
	return count
}

func TestInitialState(t *testing.T) {
	h := newHarness(t)

	if h.state.Config.Settings != SettingsClosed || h.state.Config.Exercise != Idle {
		t.Fatalf("initial configuration = %+v", h.state.Config)
	}
	ctx := h.state.Context
	if ctx.PeakReps != 10 || len(ctx.PyramidSets) != 19 || ctx.Tempo != model.TempoNormal {
		t.Errorf("initial context = %+v", ctx)
	}
	if ctx.IsMuted || ctx.CurrentSetIndex != 0 || ctx.CompletedRepsInSet != 0 {
		t.Errorf("initial counters = %+v", ctx)
	}
	if ctx.CountdownSecondsLeft != 3 {
		t.Errorf("countdown = %d, want 3", ctx.CountdownSecondsLeft)
	}
}

func TestStartEntersCountdown(t *testing.T) {
	h := newHarness(t)
	result := h.mustSend(Simple(EventStart))

	if got := h.state.Config.Exercise; got != Countdown {
		t.Fatalf("exercise = %s, want %s", got, Countdown)
	}
	want := []Effect{
		{Type: EffectAcquireWakeHold},
		{Type: EffectPlayCue, Cue: model.CueCountdownBeep},
		{Type: EffectStartTicker, Tick: EventCountdownTick, Token: 1, Delay: time.Second},
	}
	if !reflect.DeepEqual(result.Effects, want) {
		t.Errorf("effects = %v, want %v", result.Effects, want)
	}
	ctx := h.state.Context
	if ctx.CountdownSecondsLeft != 3 || !ctx.TimerStartedAt.Equal(h.now) || ctx.TimerDuration != 3*time.Second {
		t.Errorf("countdown anchor = %d %v %v", ctx.CountdownSecondsLeft, ctx.TimerStartedAt, ctx.TimerDuration)
	}
	if !h.state.Config.Matches(Active) || !h.state.Config.Matches(Exercise) || h.state.Config.Matches(Working) {
		t.Errorf("Matches inconsistent for %s", h.state.Config.Exercise)
	}
}

func TestCountdownTicks(t *testing.T) {
	h := newHarness(t)
	h.mustSend(Simple(EventStart))

	for want := 2; want >= 0; want-- {
		result := h.fire()
		if h.state.Context.CountdownSecondsLeft != want {
			t.Fatalf("countdown = %d, want %d", h.state.Context.CountdownSecondsLeft, want)
		}
		if !reflect.DeepEqual(result.Effects, []Effect{playCue(model.CueCountdownBeep)}) {
			t.Fatalf("tick effects = %v", result.Effects)
		}
	}

	result := h.fire()
	if got := h.state.Config.Exercise; got != WorkingStart {
		t.Fatalf("exercise = %s, want %s", got, WorkingStart)
	}
	want := []Effect{
		{Type: EffectStopTicker, Token: 1},
		{Type: EffectPlayCue, Cue: model.CueGo},
		{Type: EffectScheduleDelay, Token: 2, Delay: 600 * time.Millisecond},
	}
	if !reflect.DeepEqual(result.Effects, want) {
		t.Errorf("effects = %v, want %v", result.Effects, want)
	}
	if h.state.Config.Phase() != PhaseStart || h.state.Config.Status() != StatusWorking {
		t.Errorf("phase/status = %s/%s", h.state.Config.Phase(), h.state.Config.Status())
	}
}

func TestSingleRepSetGoesStraightToLastDown(t *testing.T) {
	h := newHarness(t)
	h.mustSend(Simple(EventStart))
	h.runUntil(WorkingStart)

	result := h.fire()
	if got := h.state.Config.Exercise; got != WorkingLastDown {
		t.Fatalf("exercise = %s, want %s", got, WorkingLastDown)
	}
	want := []Effect{
		{Type: EffectCancelDelay, Token: 2},
		{Type: EffectPlayCue, Cue: model.CueLastDown},
		{Type: EffectScheduleDelay, Token: 3, Delay: time.Second},
	}
	if !reflect.DeepEqual(result.Effects, want) {
		t.Errorf("effects = %v, want %v", result.Effects, want)
	}
}

func TestRepPhaseSequence(t *testing.T) {
	tests := []struct {
		name   string
		target int
		want   []StateID
	}{
		{
			name:   "one rep",
			target: 1,
			want:   []StateID{WorkingLastDown, WorkingLastUp},
		},
		{
			name:   "two reps",
			target: 2,
			want:   []StateID{WorkingDown, WorkingUp, WorkingLastDown, WorkingLastUp},
		},
		{
			name:   "four reps",
			target: 4,
			want: []StateID{
				WorkingDown, WorkingUp, WorkingDown, WorkingUp, WorkingDown, WorkingUp,
				WorkingLastDown, WorkingLastUp,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.mustSend(Simple(EventStart))
			// START resets the set index; move it onto the set under test.
			h.state.Context.CurrentSetIndex = tt.target - 1
			h.runUntil(WorkingStart)

			var visited []StateID
			for h.state.Config.Exercise.Within(Working) {
				h.fire()
				if h.state.Config.Exercise.Within(Working) {
					visited = append(visited, h.state.Config.Exercise)
				}
			}
			if !reflect.DeepEqual(visited, tt.want) {
				t.Fatalf("visited = %v, want %v", visited, tt.want)
			}
			if got := h.state.Context.CompletedRepsInSet; got != tt.target {
				t.Errorf("completed reps = %d, want %d", got, tt.target)
			}
			if got := h.state.Config.Exercise; got != Resting {
				t.Errorf("after set = %s, want %s", got, Resting)
			}
		})
	}
}

func TestRestingAfterSet(t *testing.T) {
	h := newHarness(t)
	h.mustSend(Simple(EventStart))
	h.runUntil(WorkingLastUp)
	result := h.fire()

	if got := h.state.Config.Exercise; got != Resting {
		t.Fatalf("exercise = %s, want %s", got, Resting)
	}
	if h.state.Context.RestSecondsLeft != 10 {
		t.Errorf("rest = %d, want 10", h.state.Context.RestSecondsLeft)
	}
	if h.state.Context.TimerDuration != 10*time.Second || !h.state.Context.TimerStartedAt.Equal(h.now) {
		t.Errorf("rest anchor = %v %v", h.state.Context.TimerStartedAt, h.state.Context.TimerDuration)
	}
	if countEffects(result.Effects, EffectStartTicker) != 1 || countEffects(result.Effects, EffectCancelDelay) != 1 {
		t.Errorf("effects = %v", result.Effects)
	}
	if cues := h.cues(); cues[len(cues)-1] != model.CueRest {
		t.Errorf("last cue = %s, want rest", cues[len(cues)-1])
	}
	if h.state.Context.CurrentSetIndex != 0 {
		t.Errorf("set index advanced before rest ended: %d", h.state.Context.CurrentSetIndex)
	}

	for want := 9; want >= 0; want-- {
		h.fire()
		if h.state.Context.RestSecondsLeft != want {
			t.Fatalf("rest = %d, want %d", h.state.Context.RestSecondsLeft, want)
		}
	}
	h.fire()
	if got := h.state.Config.Exercise; got != Countdown {
		t.Fatalf("exercise = %s, want %s", got, Countdown)
	}
	if h.state.Context.CurrentSetIndex != 1 || h.state.Context.CompletedRepsInSet != 0 {
		t.Errorf("after rest index=%d completed=%d", h.state.Context.CurrentSetIndex, h.state.Context.CompletedRepsInSet)
	}
}

func TestSkipRest(t *testing.T) {
	h := newHarness(t)
	if h.send(Simple(EventSkipRest)).Handled {
		t.Fatal("SKIP_REST handled in idle")
	}

	h.mustSend(Simple(EventStart))
	if h.send(Simple(EventSkipRest)).Handled {
		t.Fatal("SKIP_REST handled in countdown")
	}
	h.runUntil(Resting)
	restToken := h.state.Config.Token

	result := h.mustSend(Simple(EventSkipRest))
	if got := h.state.Config.Exercise; got != Countdown {
		t.Fatalf("exercise = %s, want %s", got, Countdown)
	}
	if h.state.Context.CurrentSetIndex != 1 {
		t.Errorf("set index = %d, want 1", h.state.Context.CurrentSetIndex)
	}
	if result.Effects[0] != (Effect{Type: EffectStopTicker, Token: restToken}) {
		t.Errorf("first effect = %v, want rest ticker stop", result.Effects[0])
	}
	if h.send(Tick(EventRestTick, restToken)).Handled {
		t.Error("stale rest tick was routed")
	}
}

func TestFullWorkout(t *testing.T) {
	h := newHarness(t)
	h.mustSend(SetPeak(3))
	h.mustSend(Simple(EventStart))
	h.runUntil(Finished)

	ctx := h.state.Context
	if ctx.CurrentSetIndex != len(ctx.PyramidSets)-1 {
		t.Errorf("final index = %d", ctx.CurrentSetIndex)
	}
	if ctx.CompletedVolume() != ctx.TotalVolume() || ctx.TotalVolume() != 9 {
		t.Errorf("volume %d/%d", ctx.CompletedVolume(), ctx.TotalVolume())
	}

	counts := map[model.Cue]int{}
	for _, cue := range h.cues() {
		counts[cue]++
	}
	want := map[model.Cue]int{
		model.CueCountdownBeep: 5 * 4,
		model.CueGo:            5,
		model.CueDown:          4,
		model.CueUp:            4,
		model.CueLastDown:      5,
		model.CueLastUp:        5,
		model.CueRest:          4,
		model.CueFinish:        1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("cue counts = %v, want %v", counts, want)
	}

	if got := countEffects(h.effects, EffectAcquireWakeHold); got != 1 {
		t.Errorf("acquire = %d, want 1", got)
	}
	if got := countEffects(h.effects, EffectReleaseWakeHold); got != 1 {
		t.Errorf("release = %d, want 1", got)
	}
	if h.state.Config.History != "" {
		t.Errorf("history = %s, want empty", h.state.Config.History)
	}
	if h.send(Simple(EventPause)).Handled {
		t.Error("PAUSE handled in finished")
	}
}

func TestPauseResumeRestoresLeaf(t *testing.T) {
	for _, leaf := range []StateID{Countdown, WorkingStart, WorkingLastDown, WorkingLastUp, Resting} {
		t.Run(leaf.Name(), func(t *testing.T) {
			h := newHarness(t)
			h.mustSend(Simple(EventStart))
			h.runUntil(leaf)
			before := h.state.Context
			oldToken := h.state.Config.Token

			paused := h.mustSend(Simple(EventPause))
			if h.state.Config.Exercise != Paused || h.state.Config.History != leaf {
				t.Fatalf("paused config = %+v", h.state.Config)
			}
			if got := countEffects(paused.Effects, EffectReleaseWakeHold); got != 1 {
				t.Errorf("release on pause = %d", got)
			}
			if countEffects(paused.Effects, EffectStopTicker)+countEffects(paused.Effects, EffectCancelDelay) != 1 {
				t.Errorf("pause effects = %v", paused.Effects)
			}

			if h.send(DelayElapsed(oldToken)).Handled || h.send(Tick(EventRestTick, oldToken)).Handled ||
				h.send(Tick(EventCountdownTick, oldToken)).Handled {
				t.Fatal("stale timer routed while paused")
			}

			resumed := h.mustSend(Simple(EventResume))
			if got := h.state.Config.Exercise; got != leaf {
				t.Fatalf("resumed at %s, want %s", got, leaf)
			}
			got := h.state.Context
			wantAnchor := before.TimerStartedAt
			switch leaf {
			case Countdown:
				wantAnchor = h.now.Add(time.Duration(before.CountdownSecondsLeft)*time.Second - before.TimerDuration)
			case Resting:
				wantAnchor = h.now.Add(time.Duration(before.RestSecondsLeft)*time.Second - before.TimerDuration)
			}
			if !got.TimerStartedAt.Equal(wantAnchor) {
				t.Errorf("timer anchor = %v, want %v", got.TimerStartedAt, wantAnchor)
			}
			got.TimerStartedAt = before.TimerStartedAt
			if !reflect.DeepEqual(got, before) {
				t.Errorf("context changed across pause:\n got %+v\nwant %+v", got, before)
			}
			if h.state.Config.History != "" {
				t.Errorf("history not consumed: %s", h.state.Config.History)
			}
			if countEffects(resumed.Effects, EffectPlayCue) != 0 {
				t.Errorf("resume replayed cues: %v", resumed.Effects)
			}
			if resumed.Effects[0].Type != EffectAcquireWakeHold {
				t.Errorf("first resume effect = %v", resumed.Effects[0])
			}
			timers := countEffects(resumed.Effects, EffectStartTicker) + countEffects(resumed.Effects, EffectScheduleDelay)
			if timers != 1 {
				t.Errorf("resume timers = %d, want 1", timers)
			}
			if h.state.Config.Token == oldToken {
				t.Error("token reused after resume")
			}
		})
	}
}

func TestResumeRestKeepsRemainingSeconds(t *testing.T) {
	h := newHarness(t)
	h.mustSend(SetPeak(3))
	h.mustSend(Simple(EventStart))
	h.runUntil(Resting)
	for h.state.Context.RestSecondsLeft > 7 {
		h.fire()
	}

	h.mustSend(Simple(EventPause))
	h.mustSend(Simple(EventResume))
	if h.state.Context.RestSecondsLeft != 7 {
		t.Fatalf("rest = %d, want 7", h.state.Context.RestSecondsLeft)
	}
	ctx := h.state.Context
	if ctx.TimerDuration != 10*time.Second || !ctx.TimerStartedAt.Equal(h.now.Add(-3*time.Second)) {
		t.Errorf("rest anchor after resume = %v %v, now %v", ctx.TimerStartedAt, ctx.TimerDuration, h.now)
	}
	h.fire()
	if h.state.Context.RestSecondsLeft != 6 {
		t.Errorf("rest after one tick = %d, want 6", h.state.Context.RestSecondsLeft)
	}
}

func TestResumeMidRepUsesFullPhaseDelay(t *testing.T) {
	h := newHarness(t)
	h.mustSend(SetTempo(model.TempoSlow))
	h.mustSend(Simple(EventStart))
	h.runUntil(WorkingLastDown)

	h.mustSend(Simple(EventPause))
	resumed := h.mustSend(Simple(EventResume))

	last := resumed.Effects[len(resumed.Effects)-1]
	if last.Type != EffectScheduleDelay || last.Delay != 1500*time.Millisecond {
		t.Errorf("resume delay = %v", last)
	}
	h.fire()
	if h.state.Config.Exercise != WorkingLastUp || h.state.Context.CompletedRepsInSet != 1 {
		t.Errorf("after resume = %s completed=%d", h.state.Config.Exercise, h.state.Context.CompletedRepsInSet)
	}
}

// pauseMidSet pauses during the second set with one rep done.
func (h *harness) pauseMidSet() {
	h.t.Helper()
	h.mustSend(Simple(EventStart))
	for i := 0; i < 1000; i++ {
		ctx := h.state.Context
		if ctx.CurrentSetIndex == 1 && ctx.CompletedRepsInSet == 1 && h.state.Config.Exercise.Within(Working) {
			h.mustSend(Simple(EventPause))
			return
		}
		h.fire()
	}
	h.t.Fatalf("never reached set 2 with one rep, stuck at %s", h.state.Config.Exercise)
}

// finish runs a whole peak-3 pyramid.
func (h *harness) finish() {
	h.t.Helper()
	h.mustSend(SetPeak(3))
	h.mustSend(Simple(EventStart))
	h.runUntil(Finished)
}

func TestResetBypassesHistory(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
		reset Event
		peak  int
	}{
		{name: "reset from paused", setup: (*harness).pauseMidSet, reset: Simple(EventReset), peak: 10},
		{name: "set peak from paused", setup: (*harness).pauseMidSet, reset: SetPeak(5), peak: 5},
		{name: "reset from finished", setup: (*harness).finish, reset: Simple(EventReset), peak: 3},
		{name: "set peak from finished", setup: (*harness).finish, reset: SetPeak(4), peak: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setup(h)
			if ctx := h.state.Context; ctx.CurrentSetIndex == 0 {
				t.Fatalf("setup left set index at 0: %+v", ctx)
			}

			result := h.mustSend(tt.reset)
			if h.state.Config.Exercise != Idle || h.state.Config.History != "" {
				t.Fatalf("config = %+v", h.state.Config)
			}
			if len(result.Effects) != 0 {
				t.Errorf("effects = %v, want none", result.Effects)
			}
			ctx := h.state.Context
			if ctx.CurrentSetIndex != 0 || ctx.CompletedRepsInSet != 0 || ctx.PeakReps != tt.peak {
				t.Errorf("context = %+v", ctx)
			}
			if !reflect.DeepEqual(ctx.PyramidSets, workout.GeneratePyramid(tt.peak)) {
				t.Errorf("pyramid = %v", ctx.PyramidSets)
			}
			if h.send(Simple(EventResume)).Handled {
				t.Error("RESUME handled in idle")
			}
		})
	}
}

func TestResetFromActive(t *testing.T) {
	h := newHarness(t)
	h.mustSend(Simple(EventStart))
	h.runUntil(WorkingUp)
	token := h.state.Config.Token

	result := h.mustSend(Simple(EventReset))
	want := []Effect{
		{Type: EffectCancelDelay, Token: token},
		{Type: EffectReleaseWakeHold},
	}
	if !reflect.DeepEqual(result.Effects, want) {
		t.Errorf("effects = %v, want %v", result.Effects, want)
	}
	if h.state.Context.CountdownSecondsLeft != 3 || h.state.Context.RestSecondsLeft != 0 {
		t.Errorf("context = %+v", h.state.Context)
	}
	if h.send(DelayElapsed(token)).Handled {
		t.Error("stale delay routed after reset")
	}
}

func TestIgnoredEvents(t *testing.T) {
	h := newHarness(t)
	h.mustSend(Simple(EventStart))
	h.runUntil(WorkingDown)
	before := h.state

	for _, event := range []Event{
		Simple(EventStart),
		SetPeak(7),
		Simple(EventResume),
		Simple(EventSkipRest),
		Simple(EventCloseSettings),
		DelayElapsed(0),
		DelayElapsed(before.Config.Token + 1),
		Tick(EventCountdownTick, before.Config.Token),
	} {
		result := h.send(event)
		if result.Handled || len(result.Effects) != 0 {
			t.Errorf("%s handled=%v effects=%v", event, result.Handled, result.Effects)
		}
		if !reflect.DeepEqual(h.state, before) {
			t.Fatalf("%s mutated state", event)
		}
	}
}

func TestToggleMuteEverywhere(t *testing.T) {
	h := newHarness(t)
	stops := []StateID{Idle, Countdown, WorkingDown, Resting, Paused}

	muted := false
	for _, stop := range stops {
		switch stop {
		case Idle:
		case Paused:
			h.mustSend(Simple(EventPause))
		case Countdown:
			h.mustSend(Simple(EventStart))
		default:
			h.runUntil(stop)
		}

		leaf := h.state.Config.Exercise
		result := h.mustSend(Simple(EventToggleMute))
		muted = !muted
		if !reflect.DeepEqual(result.Effects, []Effect{{Type: EffectSetMuted, Muted: muted}}) {
			t.Errorf("%s: effects = %v", stop, result.Effects)
		}
		if h.state.Context.IsMuted != muted || h.state.Config.Exercise != leaf {
			t.Errorf("%s: muted=%v leaf=%s", stop, h.state.Context.IsMuted, h.state.Config.Exercise)
		}
	}
}

func TestSetTempoAppliesToNextPhase(t *testing.T) {
	h := newHarness(t)
	h.mustSend(Simple(EventStart))
	h.runUntil(WorkingDown)

	result := h.mustSend(SetTempo(model.TempoFast))
	if len(result.Effects) != 0 || h.state.Config.Exercise != WorkingDown {
		t.Fatalf("SET_TEMPO disturbed the phase: %v %s", result.Effects, h.state.Config.Exercise)
	}
	next := h.fire()
	last := next.Effects[len(next.Effects)-1]
	if last.Type != EffectScheduleDelay || last.Delay != 750*time.Millisecond {
		t.Errorf("next phase delay = %v", last)
	}
}

func TestSetPeakInIdle(t *testing.T) {
	h := newHarness(t)
	h.state.Context.CurrentSetIndex = 4
	result := h.mustSend(SetPeak(4))

	if len(result.Effects) != 0 || h.state.Config.Exercise != Idle {
		t.Fatalf("effects=%v exercise=%s", result.Effects, h.state.Config.Exercise)
	}
	if !reflect.DeepEqual(h.state.Context.PyramidSets, workout.GeneratePyramid(4)) {
		t.Errorf("pyramid = %v", h.state.Context.PyramidSets)
	}
	if h.state.Context.CurrentSetIndex != 0 {
		t.Errorf("index = %d", h.state.Context.CurrentSetIndex)
	}
}

func TestSettingsRegionIsIndependent(t *testing.T) {
	h := newHarness(t)
	h.mustSend(Simple(EventStart))
	h.runUntil(WorkingDown)
	token := h.state.Config.Token

	result := h.mustSend(Simple(EventOpenSettings))
	if len(result.Effects) != 0 || !h.state.Config.SettingsOpen() || h.state.Config.Exercise != WorkingDown {
		t.Fatalf("open settings: %v %+v", result.Effects, h.state.Config)
	}
	if h.send(Simple(EventOpenSettings)).Handled {
		t.Error("OPEN_SETTINGS handled twice")
	}
	if h.state.Config.Token != token {
		t.Error("settings transition touched the exercise token")
	}

	h.fire()
	if h.state.Config.Exercise != WorkingUp || !h.state.Config.SettingsOpen() {
		t.Errorf("config = %+v", h.state.Config)
	}
	h.mustSend(Simple(EventCloseSettings))
	if h.state.Config.SettingsOpen() {
		t.Error("settings still open")
	}
}

func TestWakeHoldBalancedAcrossPauses(t *testing.T) {
	h := newHarness(t)
	h.mustSend(SetPeak(3))
	h.mustSend(Simple(EventStart))

	held := 0
	track := func(effects []Effect) {
		for _, effect := range effects {
			switch effect.Type {
			case EffectAcquireWakeHold:
				held++
			case EffectReleaseWakeHold:
				held--
			}
			if held < 0 || held > 1 {
				t.Fatalf("wake hold count %d after %v", held, effect)
			}
		}
	}
	track(h.effects)

	for i := 0; h.state.Config.Exercise != Finished; i++ {
		if i%7 == 3 {
			track(h.mustSend(Simple(EventPause)).Effects)
			if held != 0 {
				t.Fatalf("held while paused")
			}
			track(h.mustSend(Simple(EventResume)).Effects)
		}
		track(h.fire().Effects)
		if h.state.Config.Matches(Active) != (held == 1) {
			t.Fatalf("hold=%d in %s", held, h.state.Config.Exercise)
		}
	}
	if held != 0 {
		t.Errorf("hold leaked after finish: %d", held)
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	machine := New(model.DefaultSessionConfig())
	state := machine.Initial()
	sets := append([]int(nil), state.Context.PyramidSets...)

	result := machine.Transition(state, SetPeak(4), epoch)
	result.State.Context.PyramidSets[0] = 99

	if !reflect.DeepEqual(state.Context.PyramidSets, sets) || state.Context.PeakReps != 10 {
		t.Errorf("input state mutated: %+v", state.Context)
	}
}

func TestCustomSessionConfig(t *testing.T) {
	machine := New(model.SessionConfig{InitialDelay: 50 * time.Millisecond, CountdownSeconds: 1, TickInterval: 100 * time.Millisecond})
	state := machine.Initial()

	result := machine.Transition(state, Simple(EventStart), epoch)
	if result.State.Context.CountdownSecondsLeft != 1 || result.State.Context.TimerDuration != 100*time.Millisecond {
		t.Fatalf("context = %+v", result.State.Context)
	}
	if last := result.Effects[len(result.Effects)-1]; last.Delay != 100*time.Millisecond {
		t.Errorf("ticker interval = %v", last.Delay)
	}
}
