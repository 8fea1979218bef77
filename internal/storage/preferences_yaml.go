package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pyramidpush/internal/audio"
	"pyramidpush/internal/core/model"
	"pyramidpush/internal/platform"
)

const preferencesFileName = "preferences.yaml"

type yamlPreferences struct {
	Peak              int    `yaml:"peak"`
	TempoMs           int    `yaml:"tempo_ms"`
	Muted             bool   `yaml:"muted"`
	SoundStyle        string `yaml:"sound_style"`
	HasSeenOnboarding bool   `yaml:"has_seen_onboarding"`
}

// DefaultPreferencesPath is preferences.yaml inside the app config directory.
func DefaultPreferencesPath() (string, error) {
	dir, err := platform.AppConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve preferences path: %w", err)
	}
	return filepath.Join(dir, preferencesFileName), nil
}

// LoadPreferences reads preferences from path. A missing file yields the
// defaults; out-of-range values keep their defaults.
func LoadPreferences(path string) (model.Preferences, error) {
	prefs := model.DefaultPreferences()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read preferences file: %w", err)
	}

	var fileData yamlPreferences
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return prefs, fmt.Errorf("parse preferences yaml: %w", err)
	}

	applyYamlPreferences(&prefs, fileData)
	return prefs, nil
}

// SavePreferences writes preferences to path, creating its directory.
func SavePreferences(path string, prefs model.Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlPreferences{
		Peak:              prefs.Peak,
		TempoMs:           int(prefs.Tempo),
		Muted:             prefs.Muted,
		SoundStyle:        prefs.SoundStyle,
		HasSeenOnboarding: prefs.HasSeenOnboarding,
	})
	if err != nil {
		return fmt.Errorf("marshal preferences yaml: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}

func applyYamlPreferences(prefs *model.Preferences, fileData yamlPreferences) {
	if fileData.Peak >= model.MinPeak && fileData.Peak <= model.MaxPeak {
		prefs.Peak = fileData.Peak
	}
	if tempo := model.Tempo(fileData.TempoMs); tempo.Valid() {
		prefs.Tempo = tempo
	}
	if style, err := audio.ParseStyle(fileData.SoundStyle); err == nil {
		prefs.SoundStyle = string(style)
	}

	prefs.Muted = fileData.Muted
	prefs.HasSeenOnboarding = fileData.HasSeenOnboarding
}
