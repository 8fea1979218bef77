package workout

import (
	"time"

	"pyramidpush/internal/core/model"
)

const (
	restBaseSeconds   = 5
	restPerRepSeconds = 5
	restCapSeconds    = 60
)

// GeneratePyramid returns 1, 2, ..., peak, ..., 2, 1.
func GeneratePyramid(peak int) []int {
	if peak < 1 {
		return nil
	}
	sets := make([]int, 0, 2*peak-1)
	for reps := 1; reps <= peak; reps++ {
		sets = append(sets, reps)
	}
	for reps := peak - 1; reps >= 1; reps-- {
		sets = append(sets, reps)
	}
	return sets
}

// RestSeconds is the rest after a set of reps: 5s plus 5s per rep, capped at 60s.
func RestSeconds(reps int) int {
	seconds := restBaseSeconds + reps*restPerRepSeconds
	if seconds > restCapSeconds {
		return restCapSeconds
	}
	return seconds
}

// RestDuration is RestSeconds as a duration.
func RestDuration(reps int) time.Duration {
	return time.Duration(RestSeconds(reps)) * time.Second
}

// PlanSet describes one set of a planned workout.
type PlanSet struct {
	Index       int
	Reps        int
	RestSeconds int
	Final       bool
}

// Plan lists the sets for a peak. The final set carries no rest.
func Plan(peak int) []PlanSet {
	sets := GeneratePyramid(peak)
	plan := make([]PlanSet, 0, len(sets))
	for index, reps := range sets {
		entry := PlanSet{Index: index, Reps: reps, Final: index == len(sets)-1}
		if !entry.Final {
			entry.RestSeconds = RestSeconds(reps)
		}
		plan = append(plan, entry)
	}
	return plan
}

// EstimateDuration approximates the wall time of a full pyramid: one
// countdown, initial delay and rep phases per set, plus every rest.
func EstimateDuration(peak int, tempo model.Tempo, config model.SessionConfig) time.Duration {
	config = config.Normalize()
	countdown := time.Duration(config.CountdownSeconds+1) * config.TickInterval
	var total time.Duration
	for _, set := range Plan(peak) {
		total += countdown + config.InitialDelay
		total += time.Duration(set.Reps) * time.Duration(tempo) * time.Millisecond
		if !set.Final {
			total += time.Duration(set.RestSeconds+1) * config.TickInterval
		}
	}
	return total
}
