package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, raw string) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")

		logger, err := NewLogger(dir, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		logger.Info("hello", "peak", 10)
		if err := logger.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(dir, FileName))
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		entries := decodeLines(t, string(content))
		if len(entries) != 1 || entries[0]["msg"] != "hello" || entries[0]["peak"] != float64(10) {
			t.Errorf("entries = %v", entries)
		}
	})

	t.Run("empty directory logs to stderr", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.sink != nil {
			t.Error("expected no file sink")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close on stderr logger: %v", err)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		logger, err := NewLogger(t.TempDir(), LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if err := logger.Close(); err != nil {
			t.Fatalf("first Close: %v", err)
		}
		if err := logger.Close(); err != nil {
			t.Errorf("second Close: %v", err)
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{LevelDebug, 4},
		{LevelInfo, 3},
		{LevelWarn, 2},
		{LevelError, 1},
		{"bogus", 3},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWriterLogger(&buf, tt.level)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			if got := len(decodeLines(t, buf.String())); got != tt.want {
				t.Errorf("lines = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPersistentAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger(&buf, LevelDebug)
	child := base.WithSession("abc").WithComponent("audio").With("style", "warm", 42, "skipped")

	child.Info("cue played", "cue", "go")
	base.Info("plain")

	entries := decodeLines(t, buf.String())
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	first := entries[0]
	for key, want := range map[string]any{"session_id": "abc", "component": "audio", "style": "warm", "cue": "go"} {
		if first[key] != want {
			t.Errorf("%s = %v, want %v", key, first[key], want)
		}
	}
	if _, ok := entries[1]["session_id"]; ok {
		t.Error("child attributes leaked into parent")
	}
}

func TestSlogCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, LevelInfo).WithComponent("tui").Slog().Info("via slog")

	entries := decodeLines(t, buf.String())
	if len(entries) != 1 || entries[0]["component"] != "tui" {
		t.Errorf("entries = %v", entries)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"Error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", input, got, want)
		}
	}
	if len(ValidLevels()) != 4 {
		t.Errorf("ValidLevels() = %v", ValidLevels())
	}
}

func TestNilAndNopLoggers(t *testing.T) {
	var logger *Logger
	logger.Info("ignored")
	if err := logger.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	NopLogger().Error("discarded")
}
