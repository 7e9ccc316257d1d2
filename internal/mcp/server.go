// ABOUTME: MCP server initialization and configuration for brewmatch.
// ABOUTME: Exposes the recommendation engine, catalog and profiles as tools over stdio.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/2389-research/brewmatch/internal/catalog"
	"github.com/2389-research/brewmatch/internal/profiles"
	"github.com/2389-research/brewmatch/internal/recommend"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with the engine and its backing services.
type Server struct {
	mcp      *gomcp.Server
	engine   *recommend.Engine
	catalog  *catalog.Service
	profiles *profiles.Service
	logger   zerolog.Logger
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets the logger used for tool calls.
func WithLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger.With().Str("component", "mcp").Logger()
	}
}

// NewServer creates an MCP server with recommendation, catalog and profile tools.
func NewServer(engine *recommend.Engine, cat *catalog.Service, prof *profiles.Service, opts ...ServerOption) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("recommendation engine is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if prof == nil {
		return nil, fmt.Errorf("profile service is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "brewmatch",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		engine:   engine,
		catalog:  cat,
		profiles: prof,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRecommendTools()
	s.registerCatalogTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info().Msg("serving MCP over stdio")
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
