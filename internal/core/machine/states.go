package machine

import "strings"

// StateID is the dotted path of a state in the statechart,
// e.g. "exercise.active.working.down".
type StateID string

// Region roots.
const (
	Settings StateID = "settings"
	Exercise StateID = "exercise"
)

// Settings region.
const (
	SettingsClosed StateID = "settings.closed"
	SettingsOpen   StateID = "settings.open"
)

// Exercise region.
const (
	Idle            StateID = "exercise.idle"
	Active          StateID = "exercise.active"
	Countdown       StateID = "exercise.active.countdown"
	Working         StateID = "exercise.active.working"
	WorkingStart    StateID = "exercise.active.working.start"
	WorkingDown     StateID = "exercise.active.working.down"
	WorkingUp       StateID = "exercise.active.working.up"
	WorkingLastDown StateID = "exercise.active.working.lastDown"
	WorkingLastUp   StateID = "exercise.active.working.lastUp"
	SetComplete     StateID = "exercise.active.setComplete"
	Resting         StateID = "exercise.active.resting"
	Paused          StateID = "exercise.paused"
	Finished        StateID = "exercise.finished"
)

// Parent returns the enclosing state, or "" for a region root.
func (id StateID) Parent() StateID {
	index := strings.LastIndexByte(string(id), '.')
	if index < 0 {
		return ""
	}
	return id[:index]
}

// Name returns the last path segment.
func (id StateID) Name() string {
	index := strings.LastIndexByte(string(id), '.')
	return string(id[index+1:])
}

// Within reports whether id is ancestor or one of its descendants.
func (id StateID) Within(ancestor StateID) bool {
	if ancestor == "" {
		return false
	}
	return id == ancestor || strings.HasPrefix(string(id), string(ancestor)+".")
}

// Path returns id and its ancestors ordered from the region root down.
func (id StateID) Path() []StateID {
	if id == "" {
		return nil
	}
	var path []StateID
	for state := id; state != ""; state = state.Parent() {
		path = append(path, state)
	}
	for left, right := 0, len(path)-1; left < right; left, right = left+1, right-1 {
		path[left], path[right] = path[right], path[left]
	}
	return path
}

// initialChild resolves the default child of a compound state.
func initialChild(id StateID) (StateID, bool) {
	switch id {
	case Settings:
		return SettingsClosed, true
	case Exercise:
		return Idle, true
	case Active:
		return Countdown, true
	case Working:
		return WorkingStart, true
	default:
		return "", false
	}
}

// resolveLeaf follows initial children down to a leaf.
func resolveLeaf(id StateID) StateID {
	for {
		child, ok := initialChild(id)
		if !ok {
			return id
		}
		id = child
	}
}

// Status classifies the exercise region for consumers.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusCountdown Status = "countdown"
	StatusWorking   Status = "working"
	StatusResting   Status = "resting"
	StatusPaused    Status = "paused"
	StatusFinished  Status = "finished"
)

// Phase is the rep phase inside the working state.
type Phase string

const (
	PhaseNone     Phase = ""
	PhaseStart    Phase = "start"
	PhaseDown     Phase = "down"
	PhaseUp       Phase = "up"
	PhaseLastDown Phase = "lastDown"
	PhaseLastUp   Phase = "lastUp"
)

// Configuration is the set of active states across both parallel regions,
// plus the deep-history marker of the active composite.
type Configuration struct {
	Settings StateID
	Exercise StateID

	// History is the exercise leaf that was active when the active composite
	// was last exited towards paused. Empty when there is nothing to restore.
	History StateID

	// Token identifies the current entry of a timed leaf. Delayed and tick
	// events are routed only when they carry the live token.
	Token uint64
	Seq   uint64
}

// InitialConfiguration is the configuration of a new machine.
func InitialConfiguration() Configuration {
	return Configuration{
		Settings: resolveLeaf(Settings),
		Exercise: resolveLeaf(Exercise),
	}
}

// Matches reports whether state is active in either region.
func (config Configuration) Matches(state StateID) bool {
	return config.Settings.Within(state) || config.Exercise.Within(state)
}

// ActiveStates lists every active state, region roots first.
func (config Configuration) ActiveStates() []StateID {
	return append(config.Settings.Path(), config.Exercise.Path()...)
}

// SettingsOpen reports whether the settings region is open.
func (config Configuration) SettingsOpen() bool {
	return config.Settings == SettingsOpen
}

// Status classifies the exercise leaf.
func (config Configuration) Status() Status {
	switch {
	case config.Exercise == Countdown:
		return StatusCountdown
	case config.Exercise.Within(Working), config.Exercise == SetComplete:
		return StatusWorking
	case config.Exercise == Resting:
		return StatusResting
	case config.Exercise == Paused:
		return StatusPaused
	case config.Exercise == Finished:
		return StatusFinished
	default:
		return StatusIdle
	}
}

// Phase returns the rep phase, or PhaseNone outside working.
func (config Configuration) Phase() Phase {
	if !config.Exercise.Within(Working) || config.Exercise == Working {
		return PhaseNone
	}
	return Phase(config.Exercise.Name())
}
