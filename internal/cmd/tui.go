package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"pyramidpush/internal/ui/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the workout in the terminal",
	Long: `Run the workout in the terminal.

Keys: space primary action, p pause/resume, s skip rest, r reset, m mute,
+/- peak, t tempo, "," settings panel, ? help, q quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	w, err := newWorkout(os.Stdout)
	if err != nil {
		return err
	}
	defer w.Close()

	events := w.session.Subscribe(64)
	return tui.Run(w.session, events, tui.Options{ShowPyramid: w.cfg.TUI.ShowPyramid})
}
