package mcp

import (
	"context"
	"fmt"

	"scoutviz/internal/config"
	"scoutviz/internal/options"
	"scoutviz/internal/viz"
	"scoutviz/internal/weights"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const serverName = "scoutviz"

// Server exposes the scouting core as MCP tools. It holds no per-client
// state: callers send the current WeightSet and get the next one back.
type Server struct {
	cfg        *config.AppConfig
	defaults   weights.WeightSet
	resolver   *viz.Resolver
	classifier *options.Classifier
	sdk        *sdk.Server
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig, version string) (*Server, error) {
	defaults, err := cfg.Profile.WeightSet()
	if err != nil {
		return nil, fmt.Errorf("failed to build default weights: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		defaults:   defaults,
		resolver:   viz.NewResolver(cfg.Profile.Palette),
		classifier: options.NewFeatureClassifier(),
	}

	s.sdk = sdk.NewServer(&sdk.Implementation{Name: serverName, Version: version}, nil)
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs the server over stdio until the client disconnects or ctx ends.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Msg("MCP Server starting Stdio loop")
	if err := s.sdk.Run(ctx, &sdk.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}
