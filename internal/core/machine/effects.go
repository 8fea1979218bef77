package machine

import (
	"fmt"
	"time"

	"pyramidpush/internal/core/model"
)

// EffectType names a side effect requested by a transition.
type EffectType string

const (
	EffectPlayCue         EffectType = "play-cue"
	EffectSetMuted        EffectType = "set-muted"
	EffectAcquireWakeHold EffectType = "acquire-wake-hold"
	EffectReleaseWakeHold EffectType = "release-wake-hold"
	EffectStartTicker     EffectType = "start-ticker"
	EffectStopTicker      EffectType = "stop-ticker"
	EffectScheduleDelay   EffectType = "schedule-delay"
	EffectCancelDelay     EffectType = "cancel-delay"
)

// Effect is a command for the runtime to execute after a transition.
// The machine never observes the outcome.
type Effect struct {
	Type EffectType

	Cue   model.Cue
	Muted bool

	// Tick is the event a started ticker must produce.
	Tick EventType
	// Token owns the ticker or delay; stop and cancel effects reference it.
	Token uint64
	// Delay is the after-delay duration or the ticker interval.
	Delay time.Duration
}

func (effect Effect) String() string {
	switch effect.Type {
	case EffectPlayCue:
		return fmt.Sprintf("%s(%s)", effect.Type, effect.Cue)
	case EffectSetMuted:
		return fmt.Sprintf("%s(%v)", effect.Type, effect.Muted)
	case EffectStartTicker:
		return fmt.Sprintf("%s(%s,%d,%s)", effect.Type, effect.Tick, effect.Token, effect.Delay)
	case EffectScheduleDelay:
		return fmt.Sprintf("%s(%d,%s)", effect.Type, effect.Token, effect.Delay)
	case EffectStopTicker, EffectCancelDelay:
		return fmt.Sprintf("%s(%d)", effect.Type, effect.Token)
	default:
		return string(effect.Type)
	}
}

func playCue(cue model.Cue) Effect {
	return Effect{Type: EffectPlayCue, Cue: cue}
}
