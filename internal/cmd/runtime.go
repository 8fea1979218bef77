package cmd

import (
	"fmt"
	"io"
	"sync"

	"pyramidpush/internal/audio"
	"pyramidpush/internal/config"
	"pyramidpush/internal/core/model"
	"pyramidpush/internal/core/session"
	"pyramidpush/internal/logging"
	"pyramidpush/internal/platform"
	"pyramidpush/internal/storage"
)

// workout bundles a session with the collaborators it drives.
type workout struct {
	cfg      *config.Config
	logger   *logging.Logger
	session  *session.Session
	player   *audio.Player
	wakeHold platform.WakeHold

	prefsPath string
	prefsMu   sync.Mutex
	prefs     model.Preferences
	done      chan struct{}
}

// newWorkout loads configuration and preferences and starts a session with
// the saved peak, tempo and mute restored. bell receives BEL characters when
// the bell audio backend is selected.
func newWorkout(bell io.Writer) (*workout, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	prefsPath, err := storage.DefaultPreferencesPath()
	if err != nil {
		logger.Warn("preferences path unavailable", "error", err)
	}
	prefs := model.DefaultPreferences()
	prefs.SoundStyle = cfg.Audio.Style
	if prefsPath != "" {
		if loaded, err := storage.LoadPreferences(prefsPath); err != nil {
			logger.Warn("failed to load preferences", "path", prefsPath, "error", err)
		} else {
			prefs = loaded
		}
	}

	player, err := newPlayer(cfg, prefs, bell, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	var wakeHold platform.WakeHold = platform.NopWakeHold{}
	if cfg.WakeHold.Enabled {
		wakeHold = platform.NewWakeHold(logger)
	}

	w := &workout{
		cfg:       cfg,
		logger:    logger,
		player:    player,
		wakeHold:  wakeHold,
		prefsPath: prefsPath,
		prefs:     prefs,
		done:      make(chan struct{}),
	}
	w.session = session.New(session.Options{
		Config:   cfg.SessionTimings(),
		Audio:    player,
		WakeHold: wakeHold,
		Logger:   logger,
	})
	w.restore(prefs)

	go w.persist(w.session.Subscribe(16))
	logger.Info("session started", "session_id", w.session.ID(), "peak", prefs.Peak, "tempo_ms", int(prefs.Tempo))
	return w, nil
}

func newPlayer(cfg *config.Config, prefs model.Preferences, bell io.Writer, logger *logging.Logger) (*audio.Player, error) {
	backend := cfg.Audio.Backend
	if !cfg.Audio.Enabled {
		backend = audio.BackendNone
	}
	output, err := audio.NewOutput(backend, cfg.Audio.Player, bell)
	if err != nil {
		if backend != audio.BackendCommand {
			return nil, fmt.Errorf("create audio output: %w", err)
		}
		logger.Warn("audio player unavailable, falling back to bell", "error", err)
		output = &audio.BellOutput{Writer: bell}
	}

	style, err := audio.ParseStyle(prefs.SoundStyle)
	if err != nil {
		style = audio.DefaultStyle
	}
	return audio.NewPlayer(output, audio.PlayerOptions{
		Style:  style,
		Muted:  prefs.Muted,
		Logger: logger,
	}), nil
}

func (w *workout) restore(prefs model.Preferences) {
	w.session.SetPeak(prefs.Peak)
	if prefs.Tempo.Valid() {
		w.session.SetTempo(prefs.Tempo)
	}
	if prefs.Muted {
		w.session.ToggleMute()
	}
}

// persist saves peak, tempo and mute whenever they change. Events only wake
// the loop: the live snapshot is read so a dropped event cannot leave a
// stale value on disk.
func (w *workout) persist(events <-chan session.Event) {
	defer close(w.done)
	for range events {
		ctx := w.session.Snapshot().Context
		w.update(func(prefs *model.Preferences) {
			prefs.Peak = ctx.PeakReps
			prefs.Tempo = ctx.Tempo
			prefs.Muted = ctx.IsMuted
		})
	}
}

// update applies change to the stored preferences and writes them when
// anything differs.
func (w *workout) update(change func(*model.Preferences)) {
	w.prefsMu.Lock()
	defer w.prefsMu.Unlock()

	next := w.prefs
	change(&next)
	if next == w.prefs {
		return
	}
	w.prefs = next
	if w.prefsPath == "" {
		return
	}
	if err := storage.SavePreferences(w.prefsPath, next); err != nil {
		w.logger.Warn("failed to save preferences", "path", w.prefsPath, "error", err)
	}
}

// Preferences returns the last stored preferences.
func (w *workout) Preferences() model.Preferences {
	w.prefsMu.Lock()
	defer w.prefsMu.Unlock()
	return w.prefs
}

// SetStyle switches the sound style and remembers it.
func (w *workout) SetStyle(style audio.Style) {
	w.player.SetStyle(style)
	w.update(func(prefs *model.Preferences) { prefs.SoundStyle = string(style) })
}

// MarkOnboarded records that the first-run note was shown.
func (w *workout) MarkOnboarded() {
	w.update(func(prefs *model.Preferences) { prefs.HasSeenOnboarding = true })
}

// Close stops the session and every collaborator.
func (w *workout) Close() {
	w.session.Close()
	<-w.done
	w.player.Close()
	w.wakeHold.Close()
	_ = w.logger.Close()
}
