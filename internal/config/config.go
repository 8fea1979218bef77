package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"pyramidpush/internal/audio"
	"pyramidpush/internal/core/model"
)

// Config holds all application configuration
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Audio    AudioConfig    `mapstructure:"audio"`
	WakeHold WakeHoldConfig `mapstructure:"wake_hold"`
	Session  SessionConfig  `mapstructure:"session"`
	TUI      TUIConfig      `mapstructure:"tui"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn" or "error"
	Level string `mapstructure:"level"`
	// Dir is where pyramidpush.log is written. Empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// AudioConfig controls cue playback
type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Backend is one of "auto", "command", "bell" or "none"
	Backend string `mapstructure:"backend"`
	// Style is the sound style used until the user picks one
	Style string `mapstructure:"style"`
	// Player is an explicit player command line, e.g. "paplay" or "aplay -q"
	Player string `mapstructure:"player"`
}

// WakeHoldConfig controls whether the display is kept awake during a workout
type WakeHoldConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SessionConfig holds the workout timings
type SessionConfig struct {
	InitialDelayMs   int `mapstructure:"initial_delay_ms"`
	CountdownSeconds int `mapstructure:"countdown_seconds"`
	TickIntervalMs   int `mapstructure:"tick_interval_ms"`
}

// TUIConfig controls the terminal interface
type TUIConfig struct {
	ShowPyramid bool `mapstructure:"show_pyramid"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			Enabled: true,
			Backend: audio.BackendAuto,
			Style:   string(audio.DefaultStyle),
		},
		WakeHold: WakeHoldConfig{
			Enabled: true,
		},
		Session: SessionConfig{
			InitialDelayMs:   600,
			CountdownSeconds: 3,
			TickIntervalMs:   1000,
		},
		TUI: TUIConfig{
			ShowPyramid: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("audio.enabled", defaults.Audio.Enabled)
	viper.SetDefault("audio.backend", defaults.Audio.Backend)
	viper.SetDefault("audio.style", defaults.Audio.Style)
	viper.SetDefault("audio.player", defaults.Audio.Player)

	viper.SetDefault("wake_hold.enabled", defaults.WakeHold.Enabled)

	viper.SetDefault("session.initial_delay_ms", defaults.Session.InitialDelayMs)
	viper.SetDefault("session.countdown_seconds", defaults.Session.CountdownSeconds)
	viper.SetDefault("session.tick_interval_ms", defaults.Session.TickIntervalMs)

	viper.SetDefault("tui.show_pyramid", defaults.TUI.ShowPyramid)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// the loaded values are invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// SessionTimings converts the session section into machine timings
func (c *Config) SessionTimings() model.SessionConfig {
	return model.SessionConfig{
		InitialDelay:     time.Duration(c.Session.InitialDelayMs) * time.Millisecond,
		CountdownSeconds: c.Session.CountdownSeconds,
		TickInterval:     time.Duration(c.Session.TickIntervalMs) * time.Millisecond,
	}.Normalize()
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pyramidpush")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pyramidpush"
	}
	return filepath.Join(home, ".config", "pyramidpush")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// EnvPrefix is prepended to every environment override, e.g.
// PYRAMIDPUSH_AUDIO_BACKEND.
const EnvPrefix = "PYRAMIDPUSH"
