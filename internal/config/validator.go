package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"pyramidpush/internal/audio"
)

// ErrInvalidConfig is matched by ValidationErrors through errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "session.tick_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Is reports ErrInvalidConfig for any non-empty collection.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfig && len(e) > 0
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateAudio()...)
	errors = append(errors, c.validateSession()...)

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateAudio() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(audio.Backends(), c.Audio.Backend) {
		errors = append(errors, ValidationError{
			Field:   "audio.backend",
			Value:   c.Audio.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(audio.Backends(), ", ")),
		})
	}

	if _, err := audio.ParseStyle(c.Audio.Style); err != nil {
		names := make([]string, 0, len(audio.Styles()))
		for _, style := range audio.Styles() {
			names = append(names, string(style))
		}
		errors = append(errors, ValidationError{
			Field:   "audio.style",
			Value:   c.Audio.Style,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(names, ", ")),
		})
	}

	if c.Audio.Backend == audio.BackendCommand && strings.TrimSpace(c.Audio.Player) == "" {
		errors = append(errors, ValidationError{
			Field:   "audio.player",
			Value:   c.Audio.Player,
			Message: "must be set when audio.backend is command",
		})
	}

	return errors
}

func (c *Config) validateSession() []ValidationError {
	var errors []ValidationError

	positive := []struct {
		field string
		value int
	}{
		{"session.initial_delay_ms", c.Session.InitialDelayMs},
		{"session.countdown_seconds", c.Session.CountdownSeconds},
		{"session.tick_interval_ms", c.Session.TickIntervalMs},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be positive",
			})
		}
	}

	return errors
}
