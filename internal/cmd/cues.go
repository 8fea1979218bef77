package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pyramidpush/internal/audio"
	"pyramidpush/internal/config"
	"pyramidpush/internal/core/model"
	"pyramidpush/internal/logging"
)

var cuesStyle string

var cuesCmd = &cobra.Command{
	Use:   "cues",
	Short: "Play every audio cue of a sound style",
	RunE:  runCues,
}

func init() {
	rootCmd.AddCommand(cuesCmd)
	cuesCmd.Flags().StringVar(&cuesStyle, "style", "", "sound style: classic, minimal or warm (default from config)")
}

const cueGap = 400 * time.Millisecond

func runCues(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	name := cuesStyle
	if name == "" {
		name = cfg.Audio.Style
	}
	style, err := audio.ParseStyle(name)
	if err != nil {
		return err
	}

	output, err := audio.NewOutput(cfg.Audio.Backend, cfg.Audio.Player, os.Stdout)
	if err != nil {
		return fmt.Errorf("create audio output: %w", err)
	}
	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Logging.Level)
	player := audio.NewPlayer(output, audio.PlayerOptions{Style: style, Logger: logger})
	defer player.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", style, style.Description())
	for _, cue := range model.Cues() {
		fmt.Fprintf(out, "  %s\n", cue)
		player.Play(cue)
		time.Sleep(audio.ProgramFor(style, cue).Length() + cueGap)
	}
	return nil
}
