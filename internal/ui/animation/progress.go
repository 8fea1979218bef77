package animation

import (
	"math"
	"time"
)

// Remaining is the time left of an interval anchored at startedAt, clamped
// to [0, duration].
func Remaining(startedAt time.Time, duration time.Duration, now time.Time) time.Duration {
	if duration <= 0 || startedAt.IsZero() {
		return 0
	}
	remaining := duration - now.Sub(startedAt)
	switch {
	case remaining < 0:
		return 0
	case remaining > duration:
		return duration
	default:
		return remaining
	}
}

// Progress is the remaining fraction of the interval in [0, 1]. It drains
// from 1 at the anchor to 0 when the interval elapses.
func Progress(startedAt time.Time, duration time.Duration, now time.Time) float64 {
	if duration <= 0 || startedAt.IsZero() {
		return 0
	}
	return float64(Remaining(startedAt, duration, now)) / float64(duration)
}

// CountdownDisplay is the whole number of seconds to show while an interval
// runs. It never drops below 1 so the last second reads "1", not "0".
func CountdownDisplay(startedAt time.Time, duration time.Duration, now time.Time) int {
	seconds := int(math.Ceil(Remaining(startedAt, duration, now).Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
