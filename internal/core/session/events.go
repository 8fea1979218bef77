package session

import (
	"time"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/core/workout"
)

// EventType defines the type of Session event.
type EventType string

const (
	// EventTransition reports a change of the active configuration.
	EventTransition EventType = "transition"
	// EventContext reports a context-only update such as a tick or a mute.
	EventContext EventType = "context"
)

// Snapshot is a consistent view of the session for observers.
type Snapshot struct {
	SessionID string
	Config    machine.Configuration
	Context   workout.Context
	At        time.Time
}

// Status classifies the exercise region.
func (snapshot Snapshot) Status() machine.Status {
	return snapshot.Config.Status()
}

// Phase returns the rep phase while working.
func (snapshot Snapshot) Phase() machine.Phase {
	return snapshot.Config.Phase()
}

// Matches reports whether state is active.
func (snapshot Snapshot) Matches(state machine.StateID) bool {
	return snapshot.Config.Matches(state)
}

// Event is a Session update for observers.
type Event struct {
	Type     EventType
	Trigger  machine.EventType
	From     machine.StateID
	Snapshot Snapshot
}
