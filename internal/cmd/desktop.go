package cmd

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"pyramidpush/internal/audio"
	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/core/model"
	"pyramidpush/internal/core/session"
	"pyramidpush/internal/platform"
	"pyramidpush/internal/ui/preferences"
	"pyramidpush/internal/ui/present"
	"pyramidpush/internal/ui/tray"
	"pyramidpush/internal/ui/window"
	"pyramidpush/resources"
)

const appID = "app.pyramidpush"

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Open the desktop workout window (default)",
	RunE:  runDesktop,
}

func init() {
	rootCmd.AddCommand(desktopCmd)
}

func runDesktop(cmd *cobra.Command, args []string) error {
	guard, err := platform.AcquireSingleInstance(platform.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if signalErr := platform.SignalRunningInstance(platform.AppName); signalErr != nil {
			return fmt.Errorf("activate running instance: %w", signalErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Pyramid Push is already running.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	w, err := newWorkout(os.Stdout)
	if err != nil {
		return err
	}
	defer w.Close()

	fyneApp := app.NewWithID(appID)
	activeIcon := resources.MustLogo(resources.IconActive)
	pausedIcon := resources.MustLogo(resources.IconPaused)
	fyneApp.SetIcon(activeIcon)

	s := w.session
	mainWindow := window.New(fyneApp, window.Callbacks{
		OnPrimary: func() {
			s.Send(machine.Simple(present.PrimaryAction(s.Snapshot().Status())))
		},
		OnReset:      s.Reset,
		OnToggleMute: s.ToggleMute,
	})

	settings := preferences.FromPreferences(w.Preferences())
	settings.Peak = s.Snapshot().Context.PeakReps
	prefsWindow := preferences.New(fyneApp, settings, preferences.Callbacks{
		OnPeak:  s.SetPeak,
		OnTempo: s.SetTempo,
		OnMute: func(muted bool) {
			if s.Snapshot().Context.IsMuted != muted {
				s.ToggleMute()
			}
		},
		OnStyle: func(style audio.Style) {
			w.SetStyle(style)
			w.player.Play(model.CueGo)
		},
		OnClose: s.CloseSettings,
	})
	openSettings := func() {
		s.OpenSettings()
		prefsWindow.Show()
	}
	mainWindow.SetOnSettings(openSettings)

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: mainWindow.Show,
			OnPrimary: func() {
				s.Send(machine.Simple(present.PrimaryAction(s.Snapshot().Status())))
			},
			OnTogglePause: func() {
				if s.Snapshot().Status() == machine.StatusPaused {
					s.Resume()
				} else {
					s.Pause()
				}
			},
			OnSkipRest:    s.SkipRest,
			OnReset:       s.Reset,
			OnToggleMute:  s.ToggleMute,
			OnPreferences: openSettings,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(activeIcon)
		mainWindow.Fyne().SetCloseIntercept(mainWindow.Fyne().Hide)
	}

	render := func(snapshot session.Snapshot) {
		mainWindow.Render(snapshot)
		prefsWindow.UpdateSettings(preferences.Settings{
			Peak:  snapshot.Context.PeakReps,
			Tempo: snapshot.Context.Tempo,
			Muted: snapshot.Context.IsMuted,
			Style: prefsWindow.Settings().Style,
		})
		if trayManager != nil {
			trayManager.Update(mainWindow.View())
			if snapshot.Status() == machine.StatusPaused {
				desktopApp.SetSystemTrayIcon(pausedIcon)
			} else {
				desktopApp.SetSystemTrayIcon(activeIcon)
			}
		}
	}
	render(s.Snapshot())

	events := s.Subscribe(32)
	go func() {
		for event := range events {
			fyne.Do(func() { render(event.Snapshot) })
		}
	}()
	go func() {
		for range guard.Activations() {
			fyne.Do(mainWindow.Show)
		}
	}()

	mainWindow.Show()
	if !w.Preferences().HasSeenOnboarding {
		mainWindow.ShowOnboarding(w.MarkOnboarded)
	}
	fyneApp.Lifecycle().SetOnStopped(func() {
		mainWindow.Close()
	})
	fyneApp.Run()
	return nil
}
