package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"scoutviz/internal/weights"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const barWidth = 40

var weightsJSON bool

type assignment struct {
	key   string
	value int
}

func newWeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect and adjust similarity-search weights",
	}
	cmd.PersistentFlags().BoolVar(&weightsJSON, "json", false, "print JSON even on a terminal")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the profile's default weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := cfg.Profile.WeightSet()
			if err != nil {
				return err
			}
			return printWeights(cmd.OutOrStdout(), ws)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY=VALUE...",
		Short: "Apply one or more adjustments, in order, to the default weights",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseAssignments(args)
			if err != nil {
				return err
			}
			ws, err := cfg.Profile.WeightSet()
			if err != nil {
				return err
			}
			ws = applyAssignments(ws, steps)
			return printWeights(cmd.OutOrStdout(), ws)
		},
	})

	return cmd
}

func parseAssignments(args []string) ([]assignment, error) {
	steps := make([]assignment, 0, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected KEY=VALUE, got %q", arg)
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		steps = append(steps, assignment{key: key, value: value})
	}
	return steps, nil
}

func applyAssignments(ws weights.WeightSet, steps []assignment) weights.WeightSet {
	for _, step := range steps {
		if _, ok := ws.Value(step.key); !ok {
			log.Warn().Str("key", step.key).Strs("known", ws.Keys()).Msg("Unknown weight key, ignoring")
			continue
		}
		ws = weights.SetWeight(ws, step.key, step.value)
		log.Debug().Str("key", step.key).Int("value", step.value).Interface("weights", ws).Msg("Weight updated")
	}
	return ws
}

func printWeights(w io.Writer, ws weights.WeightSet) error {
	if weightsJSON || !isTerminal(w) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ws)
	}
	_, err := fmt.Fprintln(w, renderWeights(ws))
	return err
}

var (
	keyStyle   = lipgloss.NewStyle().Bold(true).Width(14)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	valueStyle = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
	totalStyle = lipgloss.NewStyle().Faint(true)
)

// renderWeights draws one proportional bar per weight.
func renderWeights(ws weights.WeightSet) string {
	rows := make([]string, 0, len(ws)+1)
	for _, wt := range ws {
		filled := wt.Value * barWidth / weights.Total
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(wt.Key),
			barStyle.Render(bar),
			valueStyle.Render(strconv.Itoa(wt.Value)+"%"),
		))
	}
	rows = append(rows, totalStyle.Render(fmt.Sprintf("total %d", ws.Sum())))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
