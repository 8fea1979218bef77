// Package ticker provides the interval actor that drives countdown and rest
// phases. It carries no business logic: it calls onTick once per interval
// until stopped.
package ticker

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is a running periodic callback.
type Ticker struct {
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
	done     chan struct{}
}

// Start launches a ticker that calls onTick every interval.
func Start(interval time.Duration, onTick func()) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := &Ticker{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go ticker.run(interval, onTick)
	return ticker
}

// Stop prevents further ticks. It is idempotent, never blocks and is safe
// to call from the tick callback itself. A tick that already passed its stop
// check may still run after Stop returns, so callers holding a lock that
// onTick also takes must discard late ticks themselves.
func (ticker *Ticker) Stop() {
	if ticker == nil {
		return
	}
	ticker.stopOnce.Do(func() {
		ticker.stopped.Store(true)
		close(ticker.stopCh)
	})
}

// Done is closed once the ticker goroutine has exited.
func (ticker *Ticker) Done() <-chan struct{} {
	return ticker.done
}

func (ticker *Ticker) run(interval time.Duration, onTick func()) {
	defer close(ticker.done)

	clock := time.NewTicker(interval)
	defer clock.Stop()

	for {
		select {
		case <-ticker.stopCh:
			return
		case <-clock.C:
			if ticker.stopped.Load() {
				return
			}
			onTick()
		}
	}
}
