package session

import (
	"sync"
	"time"

	"pyramidpush/internal/core/ticker"
)

// Timer is a cancellable one-shot or periodic callback.
type Timer interface {
	Stop()
}

// Scheduler provides the clock and timers used by a Session.
type Scheduler interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Timer
	Every(interval time.Duration, fn func()) Timer
}

// SystemScheduler uses the wall clock.
type SystemScheduler struct{}

func (SystemScheduler) Now() time.Time {
	return time.Now()
}

func (SystemScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return oneShot{timer: time.AfterFunc(delay, fn)}
}

func (SystemScheduler) Every(interval time.Duration, fn func()) Timer {
	return ticker.Start(interval, fn)
}

type oneShot struct {
	timer *time.Timer
}

func (shot oneShot) Stop() {
	shot.timer.Stop()
}

// ManualScheduler is a deterministic scheduler whose clock only moves on
// Advance. Callbacks run on the goroutine calling Advance.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	scheduler *ManualScheduler
	due       time.Time
	interval  time.Duration
	fn        func()
	order     int
	stopped   bool
}

// NewManualScheduler starts the clock at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (scheduler *ManualScheduler) Now() time.Time {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.now
}

func (scheduler *ManualScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return scheduler.add(delay, 0, fn)
}

func (scheduler *ManualScheduler) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return scheduler.add(interval, interval, fn)
}

func (scheduler *ManualScheduler) add(delay, interval time.Duration, fn func()) *manualTimer {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.seq++
	timer := &manualTimer{
		scheduler: scheduler,
		due:       scheduler.now.Add(delay),
		interval:  interval,
		fn:        fn,
		order:     scheduler.seq,
	}
	scheduler.timers = append(scheduler.timers, timer)
	return timer
}

func (timer *manualTimer) Stop() {
	timer.scheduler.mu.Lock()
	timer.stopped = true
	timer.scheduler.mu.Unlock()
}

// Advance moves the clock forward by delta, firing every timer that falls
// due in order. Timers created by callbacks fire too if they fall inside
// the window.
func (scheduler *ManualScheduler) Advance(delta time.Duration) {
	scheduler.mu.Lock()
	target := scheduler.now.Add(delta)

	for {
		next := scheduler.nextDueLocked(target)
		if next == nil {
			break
		}
		scheduler.now = next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			next.stopped = true
		}
		fn := next.fn
		scheduler.mu.Unlock()
		fn()
		scheduler.mu.Lock()
	}

	scheduler.now = target
	scheduler.compactLocked()
	scheduler.mu.Unlock()
}

func (scheduler *ManualScheduler) nextDueLocked(limit time.Time) *manualTimer {
	var next *manualTimer
	for _, timer := range scheduler.timers {
		if timer.stopped || timer.due.After(limit) {
			continue
		}
		if next == nil || timer.due.Before(next.due) || (timer.due.Equal(next.due) && timer.order < next.order) {
			next = timer
		}
	}
	return next
}

func (scheduler *ManualScheduler) compactLocked() {
	live := scheduler.timers[:0]
	for _, timer := range scheduler.timers {
		if !timer.stopped {
			live = append(live, timer)
		}
	}
	scheduler.timers = live
}

// Pending counts timers that can still fire.
func (scheduler *ManualScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	count := 0
	for _, timer := range scheduler.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}
