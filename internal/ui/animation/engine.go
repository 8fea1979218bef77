package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains animation timing values.
type Config struct {
	FrameInterval time.Duration
}

// Engine drives a frame callback while a timed interval is on screen, so
// progress bars drain smoothly between the session's one-second ticks.
type Engine struct {
	mu      sync.Mutex
	config  Config
	onFrame func(time.Time)
	cancel  context.CancelFunc
	running bool
}

// New creates a new animation engine.
func New(config Config, onFrame func(time.Time)) *Engine {
	if config.FrameInterval <= 0 {
		config = DefaultConfig()
	}
	return &Engine{
		config:  config,
		onFrame: onFrame,
	}
}

// Start begins the frame loop, replacing any loop already running.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.running = true
	engine.mu.Unlock()

	go engine.run(runCtx)
}

// Stop terminates the frame loop.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	engine.running = false
}

// Running reports whether a frame loop is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

func (engine *Engine) run(ctx context.Context) {
	for {
		engine.onFrame(time.Now())
		if !sleepWithContext(ctx, engine.config.FrameInterval) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
