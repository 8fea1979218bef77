// Package audio turns symbolic cues into short synthesized clips and plays
// them through a pluggable output backend.
package audio

import (
	"fmt"
	"strings"
	"time"

	"pyramidpush/internal/core/model"
)

// Style selects the tone table used for cues.
type Style string

const (
	StyleClassic Style = "classic"
	StyleMinimal Style = "minimal"
	StyleWarm    Style = "warm"
)

// DefaultStyle is the pure sine table.
const DefaultStyle = StyleClassic

// Styles lists every supported style.
func Styles() []Style {
	return []Style{StyleClassic, StyleMinimal, StyleWarm}
}

// ParseStyle resolves a style name, case-insensitively.
func ParseStyle(name string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Styles() {
		if style == known {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown sound style %q", name)
}

// Description is a one-line summary of the style.
func (style Style) Description() string {
	switch style {
	case StyleMinimal:
		return "Minimal, subliminal, non-fatiguing"
	case StyleWarm:
		return "Warm, soft attack, long tails"
	default:
		return "Pure sine waves, functional"
	}
}

// Envelope shapes the amplitude of a tone.
type Envelope int

const (
	// EnvelopeLinear ramps up linearly over 10ms, then decays exponentially.
	EnvelopeLinear Envelope = iota
	// EnvelopeWarm swells exponentially over 20ms, holds for 30% of the tone,
	// then decays exponentially.
	EnvelopeWarm
)

// Tone is a single sine partial of a cue.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64
	Offset   time.Duration
	Envelope Envelope
}

// Program is the set of tones making up one cue. Tones with equal offsets
// sound together.
type Program []Tone

// Length is the time until the last tone has fully decayed.
func (program Program) Length() time.Duration {
	var length time.Duration
	for _, tone := range program {
		if end := tone.Offset + tone.Duration + tailDuration; end > length {
			length = end
		}
	}
	return length
}

func ms(value float64) time.Duration {
	return time.Duration(value * float64(time.Millisecond))
}

func sine(freq, durationMs, volume float64) Tone {
	return Tone{Freq: freq, Duration: ms(durationMs), Volume: volume}
}

func warm(freq, durationMs, volume float64) Tone {
	return Tone{Freq: freq, Duration: ms(durationMs), Volume: volume, Envelope: EnvelopeWarm}
}

func at(offsetMs float64, tone Tone) Tone {
	tone.Offset += ms(offsetMs)
	return tone
}

// reverb is a warm tone followed by three fading echoes.
func reverb(offsetMs, freq, durationMs, volume float64) Program {
	return Program{
		at(offsetMs, warm(freq, durationMs, volume)),
		at(offsetMs+60, sine(freq, durationMs*0.7, volume*0.15)),
		at(offsetMs+120, sine(freq, durationMs*0.5, volume*0.08)),
		at(offsetMs+180, sine(freq*1.002, durationMs*0.4, volume*0.05)),
	}
}

var classicPrograms = map[model.Cue]Program{
	model.CueDown:     {sine(440, 60, 0.4)},
	model.CueUp:       {sine(800, 50, 0.3)},
	model.CueLastDown: {sine(220, 250, 0.25), sine(440, 250, 0.25), sine(659.25, 250, 0.2)},
	model.CueLastUp:   {sine(220, 400, 0.3), sine(440, 400, 0.3), sine(659.25, 400, 0.25)},
	model.CueGo:       {sine(880, 200, 0.45)},
	model.CueRest:     {sine(440, 150, 0.3), at(120, sine(329.63, 300, 0.4))},
	model.CueFinish: {
		sine(440, 500, 0.25),
		at(100, sine(554.37, 500, 0.25)),
		at(200, sine(659.25, 500, 0.25)),
		at(300, sine(880, 500, 0.25)),
	},
	model.CueCountdownBeep: {sine(880, 50, 0.3)},
}

var minimalPrograms = map[model.Cue]Program{
	model.CueDown:          {sine(1200, 20, 0.18)},
	model.CueUp:            {sine(1600, 15, 0.12)},
	model.CueLastDown:      {sine(800, 60, 0.3), sine(1600, 40, 0.15)},
	model.CueLastUp:        {sine(1046.5, 80, 0.3), sine(2093, 60, 0.12)},
	model.CueGo:            {sine(1046.5, 60, 0.25), sine(2093, 40, 0.1)},
	model.CueRest:          {sine(523.25, 300, 0.25)},
	model.CueFinish:        {sine(783.99, 300, 0.2), at(150, sine(1046.5, 400, 0.25))},
	model.CueCountdownBeep: {sine(1000, 30, 0.2)},
}

var warmPrograms = map[model.Cue]Program{
	model.CueDown:     {warm(440, 60, 0.3), sine(220, 60, 0.1)},
	model.CueUp:       {warm(660, 50, 0.25), sine(330, 50, 0.08)},
	model.CueLastDown: {warm(220, 300, 0.3), warm(330, 280, 0.25), warm(440, 260, 0.2), sine(110, 350, 0.15)},
	model.CueLastUp:   {warm(440, 400, 0.3), warm(660, 350, 0.25), warm(880, 300, 0.2), sine(220, 450, 0.15)},
	model.CueGo:       {warm(880, 200, 0.3), sine(440, 200, 0.1)},
	model.CueRest: concat(
		reverb(0, 261.63, 1200, 0.12),
		reverb(0, 392, 1200, 0.10),
		reverb(0, 523.25, 1200, 0.08),
		reverb(0, 783.99, 1200, 0.06),
	),
	model.CueFinish: concat(
		finishStep(0, 440),
		finishStep(120, 554.37),
		finishStep(240, 659.25),
		finishStep(360, 880),
		finishStep(480, 1108.73),
	),
	model.CueCountdownBeep: {warm(880, 100, 0.3)},
}

func finishStep(offsetMs, freq float64) Program {
	return append(reverb(offsetMs, freq, 800, 0.2), at(offsetMs, sine(freq/2, 600, 0.1)))
}

func concat(programs ...Program) Program {
	var all Program
	for _, program := range programs {
		all = append(all, program...)
	}
	return all
}

// ProgramFor returns the tones of cue in style. Unknown styles fall back to
// classic; unknown cues yield an empty program.
func ProgramFor(style Style, cue model.Cue) Program {
	var table map[model.Cue]Program
	switch style {
	case StyleMinimal:
		table = minimalPrograms
	case StyleWarm:
		table = warmPrograms
	default:
		table = classicPrograms
	}
	return table[cue]
}
