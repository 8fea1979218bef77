package window

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"

	"pyramidpush/internal/core/machine"
	"pyramidpush/internal/core/model"
	"pyramidpush/internal/core/session"
)

var epoch = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func snapshotAfter(t *testing.T, events ...machine.Event) session.Snapshot {
	t.Helper()
	m := machine.New(model.DefaultSessionConfig())
	state := m.Initial()
	for _, event := range events {
		result := m.Transition(state, event, epoch)
		if !result.Handled {
			t.Fatalf("%s not handled", event)
		}
		state = result.State
	}
	return session.Snapshot{Config: state.Config, Context: state.Context, At: epoch}
}

func newTestWindow(t *testing.T, callbacks Callbacks) *Window {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	w := New(app, callbacks)
	w.now = func() time.Time { return epoch }
	t.Cleanup(w.Close)
	return w
}

func TestRenderIdle(t *testing.T) {
	w := newTestWindow(t, Callbacks{})
	w.Render(snapshotAfter(t, machine.SetPeak(4)))

	if w.primary.Text != "Start" || w.subText.Text != "Tap to Start" {
		t.Errorf("primary %q sub %q", w.primary.Text, w.subText.Text)
	}
	if w.currentSet.Text != "1" || w.nextSet.Text != "2" || w.volume.Text != "0 / 16" {
		t.Errorf("stats = %q %q %q", w.currentSet.Text, w.nextSet.Text, w.volume.Text)
	}
	if len(w.bars.Objects) != 7 || len(w.barLayout.heights) != 7 || w.barLayout.heights[3] != 1 {
		t.Errorf("bars = %d heights = %v", len(w.bars.Objects), w.barLayout.heights)
	}
	if w.hint.Text == "" {
		t.Error("idle hint missing")
	}
	if w.engine.Running() {
		t.Error("frame loop running while idle")
	}
}

func TestRenderCountdownStartsFrames(t *testing.T) {
	w := newTestWindow(t, Callbacks{})
	w.Render(snapshotAfter(t, machine.Simple(machine.EventStart)))

	if w.headline.Text != "3" || w.primary.Text != "Pause" {
		t.Errorf("headline %q primary %q", w.headline.Text, w.primary.Text)
	}
	if w.progress.Value != 1 {
		t.Errorf("progress = %v", w.progress.Value)
	}
	if !w.engine.Running() {
		t.Error("frame loop not running during countdown")
	}

	w.Render(snapshotAfter(t, machine.Simple(machine.EventStart), machine.Simple(machine.EventPause)))
	if w.engine.Running() || w.headline.Text != "PAUSED" {
		t.Errorf("paused: running %v headline %q", w.engine.Running(), w.headline.Text)
	}
}

func TestButtonsInvokeCallbacks(t *testing.T) {
	var calls []string
	w := newTestWindow(t, Callbacks{
		OnPrimary:    func() { calls = append(calls, "primary") },
		OnReset:      func() { calls = append(calls, "reset") },
		OnToggleMute: func() { calls = append(calls, "mute") },
		OnSettings:   func() { calls = append(calls, "settings") },
	})

	test.Tap(w.primary)
	test.Tap(w.reset)
	test.Tap(w.mute)
	test.Tap(w.settings)

	want := []string{"primary", "reset", "mute", "settings"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, calls[i], want[i])
		}
	}
}

func TestPyramidLayout(t *testing.T) {
	layout := &pyramidLayout{heights: []float32{0.5, 1, 0}}
	objects := []fyne.CanvasObject{canvas.NewRectangle(nil), canvas.NewRectangle(nil), canvas.NewRectangle(nil)}
	layout.Layout(objects, fyne.NewSize(96, 100))

	if size := objects[1].Size(); size.Height != 100 || size.Width != 30 {
		t.Errorf("peak bar size = %v", size)
	}
	if pos := objects[0].Position(); pos.Y != 50 || pos.X != 0 {
		t.Errorf("first bar position = %v", pos)
	}
	if size := objects[2].Size(); size.Height != 2 {
		t.Errorf("empty bar height = %v, want the 2px floor", size.Height)
	}
	if pos := objects[2].Position(); pos.X != 66 {
		t.Errorf("third bar x = %v", pos.X)
	}
}

func TestSetOnSettingsReplacesHandler(t *testing.T) {
	opened := 0
	w := newTestWindow(t, Callbacks{})
	test.Tap(w.settings)
	w.SetOnSettings(func() { opened++ })
	test.Tap(w.settings)
	if opened != 1 {
		t.Errorf("opened = %d, want 1", opened)
	}
}
