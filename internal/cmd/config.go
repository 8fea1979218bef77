package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyramidpush/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify Pyramid Push configuration",
	Long: `View or modify Pyramid Push configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  pyramidpush config set audio.backend bell
  pyramidpush config set session.countdown_seconds 5

Valid keys:
  logging.level              - debug, info, warn or error
  logging.dir                - Directory for pyramidpush.log (empty logs to stderr)
  audio.enabled              - Play cues (true/false)
  audio.backend              - auto, command, bell or none
  audio.style                - classic, minimal or warm
  audio.player               - Player command line, e.g. "aplay -q"
  wake_hold.enabled          - Keep the display awake during a workout (true/false)
  session.initial_delay_ms   - Pause before the first rep of a set
  session.countdown_seconds  - Countdown length before each set
  session.tick_interval_ms   - Length of one countdown/rest second
  tui.show_pyramid           - Draw the pyramid chart in the terminal UI (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/pyramidpush/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

var configKeyTypes = map[string]string{
	"logging.level":             "string",
	"logging.dir":               "string",
	"audio.enabled":             "bool",
	"audio.backend":             "string",
	"audio.style":               "string",
	"audio.player":              "string",
	"wake_hold.enabled":         "bool",
	"session.initial_delay_ms":  "int",
	"session.countdown_seconds": "int",
	"session.tick_interval_ms":  "int",
	"tui.show_pyramid":          "bool",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	writeConfig(cmd.OutOrStdout(), config.Get(), viper.ConfigFileUsed())
	return nil
}

func writeConfig(out io.Writer, cfg *config.Config, used string) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	if used != "" {
		fmt.Fprintf(out, "Config file: %s\n", used)
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.Dir)

	fmt.Fprintln(out, "audio:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Audio.Enabled)
	fmt.Fprintf(out, "  backend: %s\n", cfg.Audio.Backend)
	fmt.Fprintf(out, "  style: %s\n", cfg.Audio.Style)
	fmt.Fprintf(out, "  player: %s\n", cfg.Audio.Player)

	fmt.Fprintln(out, "wake_hold:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.WakeHold.Enabled)

	fmt.Fprintln(out, "session:")
	fmt.Fprintf(out, "  initial_delay_ms: %d\n", cfg.Session.InitialDelayMs)
	fmt.Fprintf(out, "  countdown_seconds: %d\n", cfg.Session.CountdownSeconds)
	fmt.Fprintf(out, "  tick_interval_ms: %d\n", cfg.Session.TickIntervalMs)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  show_pyramid: %v\n", cfg.TUI.ShowPyramid)
}

// parseConfigValue converts value to the type of key.
func parseConfigValue(key, value string) (any, error) {
	keyType, ok := configKeyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'pyramidpush config set --help' to see valid keys", key)
	}

	switch keyType {
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal <= 0 {
			return nil, fmt.Errorf("invalid value for %s: must be positive", key)
		}
		return intVal, nil
	default:
		if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseConfigValue(key, args[1])
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

const defaultConfigContent = `# Pyramid Push Configuration

# Debug logging
logging:
  # debug, info, warn or error
  level: info
  # Directory for pyramidpush.log; empty logs to stderr
  dir: ""

# Audio cues
audio:
  enabled: true
  # auto tries an installed player (paplay, pw-play, aplay, afplay) then the
  # terminal bell. Options: auto, command, bell, none
  backend: auto
  # Sound style used until one is picked in settings: classic, minimal, warm
  style: classic
  # Explicit player command line for the command backend
  player: ""

# Keep the display awake while a workout is running
wake_hold:
  enabled: true

# Workout timings
session:
  # Pause before the first rep of every set
  initial_delay_ms: 600
  # Countdown before each set, in ticks
  countdown_seconds: 3
  # Length of one countdown or rest tick
  tick_interval_ms: 1000

# Terminal interface
tui:
  show_pyramid: true
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'pyramidpush config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize Pyramid Push.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/pyramidpush/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_AUDIO_BACKEND)\n", config.EnvPrefix, config.EnvPrefix)
	return nil
}
