package model

import "time"

// Tempo is the full duration of one rep (down + up) in milliseconds.
type Tempo int

const (
	TempoFast   Tempo = 1500
	TempoNormal Tempo = 2000
	TempoSlow   Tempo = 3000
)

// DefaultTempo is used for new sessions.
const DefaultTempo = TempoNormal

// Peak bounds accepted by SET_PEAK.
const (
	MinPeak     = 3
	MaxPeak     = 20
	DefaultPeak = 10
)

// Tempos lists the supported cadences from fastest to slowest.
func Tempos() []Tempo {
	return []Tempo{TempoFast, TempoNormal, TempoSlow}
}

// Valid reports whether tempo is one of the supported cadences.
func (tempo Tempo) Valid() bool {
	switch tempo {
	case TempoFast, TempoNormal, TempoSlow:
		return true
	default:
		return false
	}
}

// Label returns the short human name of the cadence.
func (tempo Tempo) Label() string {
	switch tempo {
	case TempoFast:
		return "Fast"
	case TempoNormal:
		return "Normal"
	case TempoSlow:
		return "Slow"
	default:
		return "Custom"
	}
}

// PhaseDuration is the length of a single down or up phase.
func (tempo Tempo) PhaseDuration() time.Duration {
	return time.Duration(tempo) * time.Millisecond / 2
}

// Next cycles to the following cadence, wrapping to the fastest.
func (tempo Tempo) Next() Tempo {
	tempos := Tempos()
	for index, candidate := range tempos {
		if candidate == tempo {
			return tempos[(index+1)%len(tempos)]
		}
	}
	return DefaultTempo
}

// ClampPeak keeps a peak inside the supported range.
func ClampPeak(peak int) int {
	if peak < MinPeak {
		return MinPeak
	}
	if peak > MaxPeak {
		return MaxPeak
	}
	return peak
}

// Cue is a symbolic sound identifier sent to the audio subsystem.
type Cue string

const (
	CueDown          Cue = "down"
	CueUp            Cue = "up"
	CueLastDown      Cue = "last-down"
	CueLastUp        Cue = "last-up"
	CueGo            Cue = "go"
	CueRest          Cue = "rest"
	CueFinish        Cue = "finish"
	CueCountdownBeep Cue = "countdown-beep"
)

// Cues lists every cue in the order they typically occur in a session.
func Cues() []Cue {
	return []Cue{CueCountdownBeep, CueGo, CueDown, CueUp, CueLastDown, CueLastUp, CueRest, CueFinish}
}

// SessionConfig contains the timing settings of the workout state machine.
type SessionConfig struct {
	InitialDelay     time.Duration
	CountdownSeconds int
	TickInterval     time.Duration
}

// DefaultSessionConfig returns the stock timings.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		InitialDelay:     600 * time.Millisecond,
		CountdownSeconds: 3,
		TickInterval:     time.Second,
	}
}

// Normalize fills zero or negative timings with defaults.
func (config SessionConfig) Normalize() SessionConfig {
	defaults := DefaultSessionConfig()
	if config.InitialDelay <= 0 {
		config.InitialDelay = defaults.InitialDelay
	}
	if config.CountdownSeconds <= 0 {
		config.CountdownSeconds = defaults.CountdownSeconds
	}
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	return config
}
