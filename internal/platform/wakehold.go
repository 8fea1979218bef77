package platform

import (
	"errors"
	"sync"

	"pyramidpush/internal/logging"
)

// ErrWakeHoldUnsupported indicates the display cannot be kept awake here.
var ErrWakeHoldUnsupported = errors.New("wake hold unsupported")

// WakeHold keeps the display awake between Acquire and Release. Both calls
// return immediately; platform failures are logged, never returned.
type WakeHold interface {
	Acquire() error
	Release() error
	Close()
}

// inhibitor performs the blocking platform calls.
type inhibitor interface {
	inhibit() error
	uninhibit() error
	close()
}

type wakeRequest int

const (
	wakeAcquire wakeRequest = iota
	wakeRelease
)

// NewWakeHold returns the wake hold for the current OS.
func NewWakeHold(logger *logging.Logger) WakeHold {
	return newAsyncWakeHold(newInhibitor(), logger)
}

// NopWakeHold does nothing.
type NopWakeHold struct{}

func (NopWakeHold) Acquire() error { return nil }
func (NopWakeHold) Release() error { return nil }
func (NopWakeHold) Close()         {}

// asyncWakeHold serializes inhibitor calls on its own goroutine.
type asyncWakeHold struct {
	inhibitor inhibitor
	logger    *logging.Logger
	requests  chan wakeRequest
	done      chan struct{}
	stopped   chan struct{}
	once      sync.Once

	// Owned by the worker goroutine.
	held bool
}

func newAsyncWakeHold(inhibitor inhibitor, logger *logging.Logger) *asyncWakeHold {
	if logger == nil {
		logger = logging.NopLogger()
	}
	hold := &asyncWakeHold{
		inhibitor: inhibitor,
		logger:    logger.WithComponent("wake-hold"),
		requests:  make(chan wakeRequest, 8),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go hold.run()
	return hold
}

func (hold *asyncWakeHold) Acquire() error {
	hold.send(wakeAcquire)
	return nil
}

func (hold *asyncWakeHold) Release() error {
	hold.send(wakeRelease)
	return nil
}

// Close releases a held inhibition and stops the worker.
func (hold *asyncWakeHold) Close() {
	hold.once.Do(func() {
		close(hold.done)
		<-hold.stopped
	})
}

func (hold *asyncWakeHold) send(request wakeRequest) {
	select {
	case <-hold.done:
		return
	default:
	}
	select {
	case hold.requests <- request:
	case <-hold.done:
	default:
		hold.logger.Warn("wake hold queue full, dropping request")
	}
}

func (hold *asyncWakeHold) run() {
	defer close(hold.stopped)
	defer hold.inhibitor.close()
	for {
		select {
		case <-hold.done:
			hold.apply(wakeRelease)
			return
		case request := <-hold.requests:
			hold.apply(request)
		}
	}
}

func (hold *asyncWakeHold) apply(request wakeRequest) {
	switch request {
	case wakeAcquire:
		if hold.held {
			return
		}
		if err := hold.inhibitor.inhibit(); err != nil {
			hold.logger.Warn("acquire wake hold", "error", err)
			return
		}
		hold.held = true
		hold.logger.Debug("wake hold acquired")
	case wakeRelease:
		if !hold.held {
			return
		}
		hold.held = false
		if err := hold.inhibitor.uninhibit(); err != nil {
			hold.logger.Warn("release wake hold", "error", err)
			return
		}
		hold.logger.Debug("wake hold released")
	}
}

type unsupportedInhibitor struct{}

func (unsupportedInhibitor) inhibit() error   { return ErrWakeHoldUnsupported }
func (unsupportedInhibitor) uninhibit() error { return nil }
func (unsupportedInhibitor) close()           {}
