// Package session runs the workout machine: it serializes events, executes
// the effects of each transition and publishes snapshots to observers.
package session

import (
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/core/model"
	"pyramidpush/internal/logging"
)

// AudioSink receives one-way cue commands.
type AudioSink interface {
	Play(cue model.Cue)
	SetMuted(muted bool)
}

// WakeHolder keeps the display awake while a workout is active.
type WakeHolder interface {
	Acquire() error
	Release() error
}

// Options configures a Session. Nil collaborators are replaced with no-ops.
type Options struct {
	Config    model.SessionConfig
	Scheduler Scheduler
	Audio     AudioSink
	WakeHold  WakeHolder
	Logger    *logging.Logger
}

// Session is the running workout controller.
type Session struct {
	mu        sync.Mutex
	id        string
	machine   *machine.Machine
	state     machine.State
	scheduler Scheduler
	audio     AudioSink
	wakeHold  WakeHolder
	logger    *logging.Logger
	timers    map[uint64]Timer
	events    []chan Event
	holding   bool
	closed    bool
}

// New creates a session in its initial configuration.
func New(options Options) *Session {
	if options.Scheduler == nil {
		options.Scheduler = SystemScheduler{}
	}
	if options.Audio == nil {
		options.Audio = nopAudio{}
	}
	if options.WakeHold == nil {
		options.WakeHold = nopWakeHold{}
	}
	if options.Logger == nil {
		options.Logger = logging.NopLogger()
	}

	id := uuid.NewString()
	workoutMachine := machine.New(options.Config)
	return &Session{
		id:        id,
		machine:   workoutMachine,
		state:     workoutMachine.Initial(),
		scheduler: options.Scheduler,
		audio:     options.Audio,
		wakeHold:  options.WakeHold,
		logger:    options.Logger.WithSession(id).WithComponent("session"),
		timers:    make(map[uint64]Timer),
	}
}

// ID returns the unique id of this session.
func (session *Session) ID() string {
	return session.id
}

// Subscribe registers a new observer channel. Slow observers miss updates
// rather than block the session.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		close(ch)
		return ch
	}
	session.events = append(session.events, ch)
	return ch
}

// Snapshot returns the current configuration and context.
func (session *Session) Snapshot() Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked()
}

// Send submits an event and reports whether any active state handled it.
func (session *Session) Send(event machine.Event) bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.dispatchLocked(event)
}

func (session *Session) Start()         { session.Send(machine.Simple(machine.EventStart)) }
func (session *Session) Pause()         { session.Send(machine.Simple(machine.EventPause)) }
func (session *Session) Resume()        { session.Send(machine.Simple(machine.EventResume)) }
func (session *Session) Reset()         { session.Send(machine.Simple(machine.EventReset)) }
func (session *Session) SkipRest()      { session.Send(machine.Simple(machine.EventSkipRest)) }
func (session *Session) ToggleMute()    { session.Send(machine.Simple(machine.EventToggleMute)) }
func (session *Session) OpenSettings()  { session.Send(machine.Simple(machine.EventOpenSettings)) }
func (session *Session) CloseSettings() { session.Send(machine.Simple(machine.EventCloseSettings)) }

// SetPeak regenerates the pyramid. The peak is clamped to the supported range.
func (session *Session) SetPeak(peak int) {
	session.Send(machine.SetPeak(model.ClampPeak(peak)))
}

// SetTempo changes the cadence of subsequent rep phases.
func (session *Session) SetTempo(tempo model.Tempo) {
	if !tempo.Valid() {
		session.logger.Warn("ignoring unsupported tempo", "tempo_ms", int(tempo))
		return
	}
	session.Send(machine.SetTempo(tempo))
}

// Close stops every timer, releases the wake hold and closes observers.
// Later events are ignored.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	for token, timer := range session.timers {
		timer.Stop()
		delete(session.timers, token)
	}
	if session.holding {
		session.releaseLocked()
	}
	events := session.events
	session.events = nil
	session.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	session.logger.Info("session closed")
}

func (session *Session) deliver(event machine.Event) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.dispatchLocked(event)
}

func (session *Session) dispatchLocked(event machine.Event) bool {
	if session.closed {
		return false
	}

	previous := session.state.Config
	result := session.machine.Transition(session.state, event, session.scheduler.Now())
	if !result.Handled {
		if event.Internal() {
			session.logger.Debug("stale timer event dropped", "event", event.String(), "state", string(previous.Exercise))
		}
		return false
	}
	session.state = result.State

	for _, effect := range result.Effects {
		session.executeLocked(effect)
	}

	eventType := EventContext
	if previous.Exercise != result.State.Config.Exercise || previous.Settings != result.State.Config.Settings {
		eventType = EventTransition
		session.logger.Debug("transition",
			"event", event.String(),
			"from", string(previous.Exercise),
			"to", string(result.State.Config.Exercise),
			"settings", string(result.State.Config.Settings),
		)
	}
	session.emitLocked(Event{
		Type:     eventType,
		Trigger:  event.Type,
		From:     previous.Exercise,
		Snapshot: session.snapshotLocked(),
	})
	return true
}

func (session *Session) executeLocked(effect machine.Effect) {
	switch effect.Type {
	case machine.EffectPlayCue:
		session.safeCall(effect, func() { session.audio.Play(effect.Cue) })
	case machine.EffectSetMuted:
		session.safeCall(effect, func() { session.audio.SetMuted(effect.Muted) })
	case machine.EffectAcquireWakeHold:
		if session.holding {
			return
		}
		session.holding = true
		session.safeCall(effect, func() {
			if err := session.wakeHold.Acquire(); err != nil {
				session.logger.Warn("wake hold acquire failed", "error", err)
			}
		})
	case machine.EffectReleaseWakeHold:
		if session.holding {
			session.releaseLocked()
		}
	case machine.EffectStartTicker:
		token, tick := effect.Token, effect.Tick
		session.replaceTimerLocked(token, session.scheduler.Every(effect.Delay, func() {
			session.deliver(machine.Tick(tick, token))
		}))
	case machine.EffectScheduleDelay:
		token := effect.Token
		session.replaceTimerLocked(token, session.scheduler.AfterFunc(effect.Delay, func() {
			session.deliver(machine.DelayElapsed(token))
		}))
	case machine.EffectStopTicker, machine.EffectCancelDelay:
		if timer, ok := session.timers[effect.Token]; ok {
			timer.Stop()
			delete(session.timers, effect.Token)
		}
	}
}

func (session *Session) replaceTimerLocked(token uint64, timer Timer) {
	if existing, ok := session.timers[token]; ok {
		existing.Stop()
	}
	session.timers[token] = timer
}

func (session *Session) releaseLocked() {
	session.holding = false
	session.safeCall(machine.Effect{Type: machine.EffectReleaseWakeHold}, func() {
		if err := session.wakeHold.Release(); err != nil {
			session.logger.Warn("wake hold release failed", "error", err)
		}
	})
}

// safeCall runs a collaborator call and recovers from any panic so a failing
// cue never interrupts the machine.
func (session *Session) safeCall(effect machine.Effect, call func()) {
	defer func() {
		if r := recover(); r != nil {
			session.logger.Error("effect panicked",
				"effect", effect.String(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	call()
}

func (session *Session) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: session.id,
		Config:    session.state.Config,
		Context:   session.state.Context.Clone(),
		At:        session.scheduler.Now(),
	}
}

func (session *Session) emitLocked(event Event) {
	for _, ch := range session.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type nopAudio struct{}

func (nopAudio) Play(model.Cue) {}
func (nopAudio) SetMuted(bool)  {}

type nopWakeHold struct{}

func (nopWakeHold) Acquire() error { return nil }
func (nopWakeHold) Release() error { return nil }
