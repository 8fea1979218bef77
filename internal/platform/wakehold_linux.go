//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService   = "org.freedesktop.ScreenSaver"
	screenSaverPath      = "/org/freedesktop/ScreenSaver"
	screenSaverInterface = "org.freedesktop.ScreenSaver"
	inhibitReason        = "Workout in progress"
)

// screenSaverInhibitor holds an org.freedesktop.ScreenSaver inhibition
// cookie on a private session bus connection.
type screenSaverInhibitor struct {
	conn   *dbus.Conn
	cookie uint32
}

func newInhibitor() inhibitor {
	return &screenSaverInhibitor{}
}

func (inhibitor *screenSaverInhibitor) connect() (*dbus.Conn, error) {
	if inhibitor.conn != nil && inhibitor.conn.Connected() {
		return inhibitor.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	inhibitor.conn = conn
	return conn, nil
}

func (inhibitor *screenSaverInhibitor) inhibit() error {
	conn, err := inhibitor.connect()
	if err != nil {
		return err
	}
	var cookie uint32
	call := conn.Object(screenSaverService, screenSaverPath).Call(screenSaverInterface+".Inhibit", 0, AppName, inhibitReason)
	if err := call.Store(&cookie); err != nil {
		return fmt.Errorf("screensaver inhibit: %w", err)
	}
	inhibitor.cookie = cookie
	return nil
}

func (inhibitor *screenSaverInhibitor) uninhibit() error {
	if inhibitor.conn == nil {
		return nil
	}
	call := inhibitor.conn.Object(screenSaverService, screenSaverPath).Call(screenSaverInterface+".UnInhibit", 0, inhibitor.cookie)
	inhibitor.cookie = 0
	if call.Err != nil {
		return fmt.Errorf("screensaver uninhibit: %w", call.Err)
	}
	return nil
}

func (inhibitor *screenSaverInhibitor) close() {
	if inhibitor.conn != nil {
		_ = inhibitor.conn.Close()
		inhibitor.conn = nil
	}
}
