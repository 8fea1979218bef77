package model

// Preferences are the user choices restored on every launch.
type Preferences struct {
	Peak              int
	Tempo             Tempo
	Muted             bool
	SoundStyle        string
	HasSeenOnboarding bool
}

// DefaultPreferences returns the preferences of a first launch.
func DefaultPreferences() Preferences {
	return Preferences{
		Peak:       DefaultPeak,
		Tempo:      DefaultTempo,
		SoundStyle: "classic",
	}
}
