package machine

import (
	"fmt"

	"pyramidpush/internal/core/model"
)

// EventType names an event understood by the machine.
type EventType string

// External events.
const (
	EventStart         EventType = "START"
	EventPause         EventType = "PAUSE"
	EventResume        EventType = "RESUME"
	EventReset         EventType = "RESET"
	EventSkipRest      EventType = "SKIP_REST"
	EventSetPeak       EventType = "SET_PEAK"
	EventSetTempo      EventType = "SET_TEMPO"
	EventToggleMute    EventType = "TOGGLE_MUTE"
	EventOpenSettings  EventType = "OPEN_SETTINGS"
	EventCloseSettings EventType = "CLOSE_SETTINGS"
)

// Internal events produced by tickers and delayed transitions.
const (
	EventCountdownTick EventType = "COUNTDOWN_TICK"
	EventRestTick      EventType = "REST_TICK"
	EventDelayElapsed  EventType = "DELAY_ELAPSED"
)

// Event is an input to the machine. Peak and Tempo are payloads for
// SET_PEAK and SET_TEMPO; Token tags internal timer events.
type Event struct {
	Type  EventType
	Peak  int
	Tempo model.Tempo
	Token uint64
}

// Internal reports whether the event is generated by the runtime rather than
// submitted by a caller.
func (event Event) Internal() bool {
	switch event.Type {
	case EventCountdownTick, EventRestTick, EventDelayElapsed:
		return true
	default:
		return false
	}
}

func (event Event) String() string {
	switch event.Type {
	case EventSetPeak:
		return fmt.Sprintf("%s{peak:%d}", event.Type, event.Peak)
	case EventSetTempo:
		return fmt.Sprintf("%s{tempoMs:%d}", event.Type, event.Tempo)
	case EventCountdownTick, EventRestTick, EventDelayElapsed:
		return fmt.Sprintf("%s{token:%d}", event.Type, event.Token)
	default:
		return string(event.Type)
	}
}

// Simple constructs a payload-free event.
func Simple(eventType EventType) Event {
	return Event{Type: eventType}
}

// SetPeak constructs a SET_PEAK event. Callers clamp peak to 3..20.
func SetPeak(peak int) Event {
	return Event{Type: EventSetPeak, Peak: peak}
}

// SetTempo constructs a SET_TEMPO event.
func SetTempo(tempo model.Tempo) Event {
	return Event{Type: EventSetTempo, Tempo: tempo}
}

// Tick constructs a ticker event for the given entry token.
func Tick(eventType EventType, token uint64) Event {
	return Event{Type: eventType, Token: token}
}

// DelayElapsed constructs the event of an expired after-delay timer.
func DelayElapsed(token uint64) Event {
	return Event{Type: EventDelayElapsed, Token: token}
}
