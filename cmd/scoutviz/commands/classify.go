package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"scoutviz/internal/options"

	"github.com/spf13/cobra"
)

const maxLabelWidth = 45

var (
	classifySearch string
	classifySort   bool
	classifyText   bool
	classifyKPI    bool
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Group a JSON array of ML feature names into labelled categories",
		Long: `Reads a JSON array of ML feature names ("-" for stdin) and prints them grouped
by category. With --kpi the input is a KPI catalogue (an array of metric groups)
which is filtered by --search instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if classifyKPI {
				return filterKPIs(cmd.OutOrStdout(), data, classifySearch)
			}

			var raw []string
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("expected a JSON array of strings: %w", err)
			}

			groups := options.Classify(raw, classifySearch)
			if classifySort {
				for i := range groups {
					groups[i] = groups[i].SortedByLabel()
				}
			}

			if classifyText {
				return printGroups(cmd.OutOrStdout(), groups, classifySearch)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(groups)
		},
	}
	cmd.Flags().StringVarP(&classifySearch, "search", "s", "", "case-insensitive filter on id or label")
	cmd.Flags().BoolVar(&classifySort, "sort", false, "sort entries by label within each group")
	cmd.Flags().BoolVar(&classifyText, "text", false, "print an indented listing instead of JSON")
	cmd.Flags().BoolVar(&classifyKPI, "kpi", false, "treat the input as a KPI catalogue and filter it")
	return cmd
}

func printGroups(w io.Writer, groups []options.OptionGroup, search string) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintf(w, "No ML features match %q.\n", search)
		return err
	}
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "%s\n", g.Label); err != nil {
			return err
		}
		for _, e := range g.Entries {
			if _, err := fmt.Fprintf(w, "  %-*s  %s\n", maxLabelWidth, options.Truncate(e.Label, maxLabelWidth), e.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func filterKPIs(w io.Writer, data []byte, search string) error {
	var groups []options.MetricGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return fmt.Errorf("expected a JSON array of metric groups: %w", err)
	}

	filtered := options.FilterMetricGroups(groups, search)
	for i, g := range filtered {
		for j, o := range g.Options {
			filtered[i].Options[j].LabelVariant = g.VariantLabel(o)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(filtered)
}
