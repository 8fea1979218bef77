//go:build windows

package platform

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

const (
	esContinuous      = 0x80000000
	esDisplayRequired = 0x00000002
)

var setThreadExecutionState = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadExecutionState")

// executionStateInhibitor sets the execution state of a locked OS thread,
// which holds until cleared from that same thread.
type executionStateInhibitor struct {
	requests chan uint32
	results  chan error
}

func newInhibitor() inhibitor {
	inhibitor := &executionStateInhibitor{
		requests: make(chan uint32),
		results:  make(chan error),
	}
	go inhibitor.thread()
	return inhibitor
}

func (inhibitor *executionStateInhibitor) thread() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for flags := range inhibitor.requests {
		result, _, err := setThreadExecutionState.Call(uintptr(flags))
		if result == 0 {
			inhibitor.results <- fmt.Errorf("set thread execution state: %w", err)
			continue
		}
		inhibitor.results <- nil
	}
}

func (inhibitor *executionStateInhibitor) set(flags uint32) error {
	if err := setThreadExecutionState.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrWakeHoldUnsupported, err)
	}
	inhibitor.requests <- flags
	return <-inhibitor.results
}

func (inhibitor *executionStateInhibitor) inhibit() error {
	return inhibitor.set(esContinuous | esDisplayRequired)
}

func (inhibitor *executionStateInhibitor) uninhibit() error {
	return inhibitor.set(esContinuous)
}

func (inhibitor *executionStateInhibitor) close() {
	close(inhibitor.requests)
}
