package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pyramidpush/internal/config"
	"pyramidpush/internal/core/model"
	coreworkout "pyramidpush/internal/core/workout"
)

var (
	planPeak  int
	planTempo int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the sets, rests and estimated duration of a pyramid",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().IntVar(&planPeak, "peak", model.DefaultPeak, fmt.Sprintf("peak reps (%d-%d)", model.MinPeak, model.MaxPeak))
	planCmd.Flags().IntVar(&planTempo, "tempo", int(model.DefaultTempo), "milliseconds per rep (1500, 2000 or 3000)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if planPeak < model.MinPeak || planPeak > model.MaxPeak {
		return fmt.Errorf("peak must be between %d and %d, got %d", model.MinPeak, model.MaxPeak, planPeak)
	}
	tempo := model.Tempo(planTempo)
	if !tempo.Valid() {
		return fmt.Errorf("tempo must be one of 1500, 2000 or 3000, got %d", planTempo)
	}
	writePlan(cmd.OutOrStdout(), planPeak, tempo, config.Get().SessionTimings())
	return nil
}

var (
	planTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "26", Dark: "81"})
	planHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	planDim    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "244"})
	planPeakSt = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
)

func writePlan(out io.Writer, peak int, tempo model.Tempo, timings model.SessionConfig) {
	plan := coreworkout.Plan(peak)
	total := 0
	for _, set := range plan {
		total += set.Reps
	}

	fmt.Fprintln(out, planTitle.Render(fmt.Sprintf("Pyramid to %d at %s tempo", peak, tempo.Label())))
	fmt.Fprintln(out)
	fmt.Fprintln(out, planHeader.Render(fmt.Sprintf("%-5s %-5s %-6s %s", "Set", "Reps", "Rest", "")))
	for _, set := range plan {
		rest := planDim.Render("-")
		if !set.Final {
			rest = fmt.Sprintf("%ds", set.RestSeconds)
		}
		bar := strings.Repeat("█", set.Reps)
		if set.Reps == peak {
			bar = planPeakSt.Render(bar)
		}
		fmt.Fprintf(out, "%-5d %-5d %-6s %s\n", set.Index+1, set.Reps, rest, bar)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Sets:      %d\n", len(plan))
	fmt.Fprintf(out, "Volume:    %d reps\n", total)
	fmt.Fprintf(out, "Duration:  ~%s\n", formatPlanDuration(coreworkout.EstimateDuration(peak, tempo, timings)))
}

func formatPlanDuration(value time.Duration) string {
	value = value.Round(time.Second)
	minutes := int(value / time.Minute)
	seconds := int((value % time.Minute) / time.Second)
	return fmt.Sprintf("%dm%02ds", minutes, seconds)
}
