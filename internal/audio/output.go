package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pyramidpush/internal/core/model"
)

// ErrNoOutput indicates that no playback backend is available.
var ErrNoOutput = errors.New("no audio output available")

// Backend names accepted in configuration.
const (
	BackendAuto    = "auto"
	BackendCommand = "command"
	BackendBell    = "bell"
	BackendNone    = "none"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendAuto, BackendCommand, BackendBell, BackendNone}
}

// Clip is a rendered cue ready for playback.
type Clip struct {
	Cue model.Cue
	WAV []byte
}

// Output plays clips. Implementations may block until playback finishes.
type Output interface {
	Play(ctx context.Context, clip Clip) error
}

// NopOutput discards every clip.
type NopOutput struct{}

func (NopOutput) Play(context.Context, Clip) error { return nil }

// BellOutput rings the terminal bell, once per cue.
type BellOutput struct {
	mu     sync.Mutex
	Writer io.Writer
}

func (output *BellOutput) Play(_ context.Context, _ Clip) error {
	output.mu.Lock()
	defer output.mu.Unlock()

	writer := output.Writer
	if writer == nil {
		writer = os.Stdout
	}
	if _, err := io.WriteString(writer, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// CommandOutput writes each clip to a temporary WAV file and plays it with
// an external player such as paplay, aplay or afplay.
type CommandOutput struct {
	Player  string
	Args    []string
	TempDir string
}

// knownPlayers are tried in order by FindPlayer.
var knownPlayers = []struct {
	name string
	args []string
	goos string
}{
	{name: "paplay", goos: "linux"},
	{name: "pw-play", goos: "linux"},
	{name: "aplay", args: []string{"-q"}, goos: "linux"},
	{name: "afplay", goos: "darwin"},
}

// FindPlayer returns the first known player present on PATH for this OS.
func FindPlayer() (*CommandOutput, error) {
	for _, candidate := range knownPlayers {
		if candidate.goos != runtime.GOOS {
			continue
		}
		if path, err := exec.LookPath(candidate.name); err == nil {
			return &CommandOutput{Player: path, Args: candidate.args}, nil
		}
	}
	return nil, ErrNoOutput
}

// NewCommandOutput parses a player command line such as "aplay -q".
func NewCommandOutput(commandLine string) (*CommandOutput, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty player command: %w", ErrNoOutput)
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("find player %q: %w", fields[0], err)
	}
	return &CommandOutput{Player: path, Args: fields[1:]}, nil
}

func (output *CommandOutput) Play(ctx context.Context, clip Clip) error {
	file, err := os.CreateTemp(output.TempDir, fmt.Sprintf("pyramidpush-%s-%s-*.wav", clip.Cue, uuid.NewString()[:8]))
	if err != nil {
		return fmt.Errorf("create clip file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.Write(clip.WAV); err != nil {
		file.Close()
		return fmt.Errorf("write clip file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close clip file: %w", err)
	}

	args := append(append([]string(nil), output.Args...), path)
	cmd := exec.CommandContext(ctx, output.Player, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %s: %w: %s", output.Player, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// NewOutput resolves a configured backend. The auto backend prefers an
// external player and falls back to the terminal bell.
func NewOutput(backend, player string, bell io.Writer) (Output, error) {
	switch strings.ToLower(backend) {
	case BackendNone:
		return NopOutput{}, nil
	case BackendBell:
		return &BellOutput{Writer: bell}, nil
	case BackendCommand:
		if player != "" {
			return NewCommandOutput(player)
		}
		return FindPlayer()
	case BackendAuto, "":
		if player != "" {
			if output, err := NewCommandOutput(player); err == nil {
				return output, nil
			}
		}
		if output, err := FindPlayer(); err == nil {
			return output, nil
		}
		return &BellOutput{Writer: bell}, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", backend)
	}
}
