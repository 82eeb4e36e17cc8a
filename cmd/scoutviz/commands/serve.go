package commands

import (
	"os/signal"
	"syscall"

	"scoutviz/internal/mcp"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server, err := mcp.NewServer(cfg, Version)
			if err != nil {
				return err
			}
			return server.Start(ctx)
		},
	}
}
