//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// caffeinateInhibitor keeps a `caffeinate -d` child alive while held.
type caffeinateInhibitor struct {
	cmd *exec.Cmd
}

func newInhibitor() inhibitor {
	return &caffeinateInhibitor{}
}

func (inhibitor *caffeinateInhibitor) inhibit() error {
	path, err := exec.LookPath("caffeinate")
	if err != nil {
		return fmt.Errorf("find caffeinate: %w", ErrWakeHoldUnsupported)
	}
	cmd := exec.Command(path, "-d")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start caffeinate: %w", err)
	}
	inhibitor.cmd = cmd
	return nil
}

func (inhibitor *caffeinateInhibitor) uninhibit() error {
	if inhibitor.cmd == nil || inhibitor.cmd.Process == nil {
		return nil
	}
	cmd := inhibitor.cmd
	inhibitor.cmd = nil
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop caffeinate: %w", err)
	}
	_ = cmd.Wait()
	return nil
}

func (inhibitor *caffeinateInhibitor) close() {
	_ = inhibitor.uninhibit()
}
