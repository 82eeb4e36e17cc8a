package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"scoutviz/internal/visuals"
	"scoutviz/internal/viz"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxParallelReads = 8

var (
	resolveMermaid bool
	resolveOpen    bool
)

type resolvedFile struct {
	Source string             `json:"source"`
	Config viz.RendererConfig `json:"config"`
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve FILE...",
		Short: "Resolve analytics payload files into chart configurations",
		Long: `Reads one JSON payload per file ("-" for stdin) and prints the resolved chart
configurations as JSON, or as Mermaid diagrams with --mermaid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := viz.NewResolver(cfg.Profile.Palette)
			results, err := resolveFiles(cmd.Context(), resolver, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if resolveOpen {
				openPreviews(results)
			}
			if resolveMermaid {
				return printMermaid(cmd.OutOrStdout(), results)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	cmd.Flags().BoolVar(&resolveMermaid, "mermaid", false, "print Mermaid diagrams instead of JSON")
	cmd.Flags().BoolVar(&resolveOpen, "open", false, "open a rendered preview of each chart in the browser")
	return cmd
}

// resolveFiles reads and resolves every path concurrently. Results keep the
// order of paths.
func resolveFiles(ctx context.Context, resolver *viz.Resolver, paths []string, stdin io.Reader) ([]resolvedFile, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]resolvedFile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readSource(path, stdin)
			if err != nil {
				return err
			}
			p, err := viz.ParsePayload(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = resolvedFile{Source: path, Config: resolver.Resolve(p)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Config.Kind == viz.KindUnsupported {
			log.Warn().Str("source", r.Source).Str("type", r.Config.Unsupported.Type).Msg("Unsupported visualization payload")
		}
	}
	return results, nil
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

func printMermaid(w io.Writer, results []resolvedFile) error {
	for _, r := range results {
		block := visuals.GenerateMermaid(r.Config)
		if block == "" {
			block = fmt.Sprintf("%%%% %s: no chart form for %s", r.Source, r.Config.Kind)
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", block); err != nil {
			return err
		}
	}
	return nil
}

func openPreviews(results []resolvedFile) {
	for _, r := range results {
		url := visuals.PreviewURL(r.Config)
		if url == "" {
			continue
		}
		if err := browser.OpenURL(url); err != nil {
			log.Warn().Err(err).Str("source", r.Source).Msg("Failed to open preview")
		}
	}
}
