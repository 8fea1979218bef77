package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/ui/present"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPrimary     func()
	OnTogglePause func()
	OnSkipRest    func()
	OnReset       func()
	OnToggleMute  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	primary    *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	muteItem   *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true
	manager.primary = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnPrimary))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.pauseItem.Disabled = true
	manager.skipItem = fyne.NewMenuItem("Skip rest", invoke(&manager.callbacks.OnSkipRest))
	manager.skipItem.Disabled = true
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))
	manager.muteItem = fyne.NewMenuItem("Mute", invoke(&manager.callbacks.OnToggleMute))

	manager.refreshMenu()
	return manager
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}

// Update mirrors the workout view into the menu.
func (manager *Manager) Update(view present.View) {
	status := string(view.Status)
	if view.Status == machine.StatusWorking || view.Status == machine.StatusResting {
		status = fmt.Sprintf("%s, %d/%d reps", status, view.CompletedVolume, view.TotalVolume)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.primary.Label = view.ActionLabel

	switch view.Status {
	case machine.StatusPaused:
		manager.pauseItem.Label = "Resume"
		manager.pauseItem.Disabled = false
	case machine.StatusCountdown, machine.StatusWorking, machine.StatusResting:
		manager.pauseItem.Label = "Pause"
		manager.pauseItem.Disabled = false
	default:
		manager.pauseItem.Label = "Pause"
		manager.pauseItem.Disabled = true
	}
	manager.skipItem.Disabled = view.Status != machine.StatusResting

	if view.Muted {
		manager.muteItem.Label = "Unmute"
	} else {
		manager.muteItem.Label = "Mute"
	}
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("Pyramid Push",
		manager.statusItem,
		fyne.NewMenuItem("Show", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.primary,
		manager.pauseItem,
		manager.skipItem,
		manager.resetItem,
		manager.muteItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
