package audio

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"pyramidpush/internal/core/model"
	"pyramidpush/internal/logging"
)

const (
	defaultQueueSize   = 32
	defaultMaxPlayback = 4
)

// PlayerOptions configures a Player.
type PlayerOptions struct {
	Style Style
	Muted bool
	// QueueSize bounds pending commands; further commands are dropped.
	QueueSize int
	// MaxPlayback bounds clips playing at the same time.
	MaxPlayback int
	Logger      *logging.Logger
}

type commandKind int

const (
	commandPlay commandKind = iota
	commandMute
	commandStyle
)

type command struct {
	kind  commandKind
	cue   model.Cue
	muted bool
	style Style
}

// Player is the long-lived audio actor. Its methods never block.
type Player struct {
	output   Output
	logger   *logging.Logger
	commands chan command
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
	playback *pool.Pool

	// Owned by the actor goroutine.
	style Style
	muted bool
	clips map[Style]map[model.Cue]Clip
}

// NewPlayer starts the actor.
func NewPlayer(output Output, options PlayerOptions) *Player {
	if output == nil {
		output = NopOutput{}
	}
	if options.QueueSize <= 0 {
		options.QueueSize = defaultQueueSize
	}
	if options.MaxPlayback <= 0 {
		options.MaxPlayback = defaultMaxPlayback
	}
	if options.Logger == nil {
		options.Logger = logging.NopLogger()
	}
	if _, err := ParseStyle(string(options.Style)); err != nil {
		options.Style = DefaultStyle
	}

	ctx, cancel := context.WithCancel(context.Background())
	player := &Player{
		output:   output,
		logger:   options.Logger.WithComponent("audio"),
		commands: make(chan command, options.QueueSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		playback: pool.New().WithMaxGoroutines(options.MaxPlayback),
		style:    options.Style,
		muted:    options.Muted,
		clips:    make(map[Style]map[model.Cue]Clip),
	}
	go player.run()
	return player
}

// Play queues a cue.
func (player *Player) Play(cue model.Cue) {
	player.send(command{kind: commandPlay, cue: cue})
}

// SetMuted changes the mute flag for subsequently processed cues.
func (player *Player) SetMuted(muted bool) {
	player.send(command{kind: commandMute, muted: muted})
}

// SetStyle switches the tone table.
func (player *Player) SetStyle(style Style) {
	player.send(command{kind: commandStyle, style: style})
}

// Close stops the actor, cancels playing clips and waits for them to end.
func (player *Player) Close() {
	player.once.Do(func() {
		close(player.done)
		player.cancel()
		<-player.stopped
		player.playback.Wait()
	})
}

func (player *Player) send(cmd command) {
	select {
	case <-player.done:
		return
	default:
	}
	select {
	case player.commands <- cmd:
	default:
		player.logger.Debug("audio queue full, dropping command", "cue", string(cmd.cue))
	}
}

func (player *Player) run() {
	defer close(player.stopped)
	for {
		select {
		case <-player.done:
			return
		case cmd := <-player.commands:
			player.handle(cmd)
		}
	}
}

func (player *Player) handle(cmd command) {
	switch cmd.kind {
	case commandMute:
		player.muted = cmd.muted
	case commandStyle:
		if _, err := ParseStyle(string(cmd.style)); err != nil {
			player.logger.Warn("ignoring unknown sound style", "style", string(cmd.style))
			return
		}
		player.style = cmd.style
	case commandPlay:
		if player.muted {
			return
		}
		clip, ok := player.clip(player.style, cmd.cue)
		if !ok {
			player.logger.Warn("no program for cue", "cue", string(cmd.cue), "style", string(player.style))
			return
		}
		player.playback.Go(func() { player.playClip(clip) })
	}
}

func (player *Player) clip(style Style, cue model.Cue) (Clip, bool) {
	byCue, ok := player.clips[style]
	if !ok {
		byCue = make(map[model.Cue]Clip)
		player.clips[style] = byCue
	}
	if clip, ok := byCue[cue]; ok {
		return clip, true
	}
	program := ProgramFor(style, cue)
	if len(program) == 0 {
		return Clip{}, false
	}
	clip := Clip{Cue: cue, WAV: EncodeWAV(Render(program))}
	byCue[cue] = clip
	return clip, true
}

func (player *Player) playClip(clip Clip) {
	defer func() {
		if r := recover(); r != nil {
			player.logger.Error("audio output panicked", "cue", string(clip.Cue), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	if err := player.output.Play(player.ctx, clip); err != nil && player.ctx.Err() == nil {
		player.logger.Warn("audio playback failed", "cue", string(clip.Cue), "error", err)
	}
}
