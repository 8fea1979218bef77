package tray

import (
	"testing"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/ui/present"
)

func TestUpdateMirrorsStatus(t *testing.T) {
	manager := New(nil, Callbacks{})

	tests := []struct {
		name         string
		view         present.View
		status       string
		primary      string
		pause        string
		pauseEnabled bool
		skipEnabled  bool
		mute         string
	}{
		{
			name:    "idle",
			view:    present.View{Status: machine.StatusIdle, ActionLabel: "Start"},
			status:  "Status: idle",
			primary: "Start", pause: "Pause", mute: "Mute",
		},
		{
			name:    "resting muted",
			view:    present.View{Status: machine.StatusResting, ActionLabel: "Skip Rest", CompletedVolume: 3, TotalVolume: 9, Muted: true},
			status:  "Status: resting, 3/9 reps",
			primary: "Skip Rest", pause: "Pause", pauseEnabled: true, skipEnabled: true, mute: "Unmute",
		},
		{
			name:    "paused",
			view:    present.View{Status: machine.StatusPaused, ActionLabel: "Resume"},
			status:  "Status: paused",
			primary: "Resume", pause: "Resume", pauseEnabled: true, mute: "Mute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager.Update(tt.view)
			if manager.statusItem.Label != tt.status {
				t.Errorf("status = %q, want %q", manager.statusItem.Label, tt.status)
			}
			if manager.primary.Label != tt.primary || manager.pauseItem.Label != tt.pause || manager.muteItem.Label != tt.mute {
				t.Errorf("labels = %q %q %q", manager.primary.Label, manager.pauseItem.Label, manager.muteItem.Label)
			}
			if manager.pauseItem.Disabled == tt.pauseEnabled || manager.skipItem.Disabled == tt.skipEnabled {
				t.Errorf("pause disabled %v skip disabled %v", manager.pauseItem.Disabled, manager.skipItem.Disabled)
			}
		})
	}
}

func TestMenuInvokesCallbacks(t *testing.T) {
	var calls []string
	manager := New(nil, Callbacks{
		OnPrimary: func() { calls = append(calls, "primary") },
		OnQuit:    func() { calls = append(calls, "quit") },
	})

	menu := manager.Menu()
	for _, item := range menu.Items {
		if item.Action != nil {
			item.Action()
		}
	}
	if len(calls) != 2 || calls[0] != "primary" || calls[1] != "quit" {
		t.Errorf("calls = %v", calls)
	}
}
