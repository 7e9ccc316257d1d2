// ABOUTME: MCP server command implementation for brewmatch.
// ABOUTME: Serves the engine over stdio and optionally exposes prometheus metrics over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/brewmatch/internal/logging"
	mcppkg "github.com/2389-research/brewmatch/internal/mcp"
)

var metricsAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, allowing AI agents to take the taste
quiz on a user's behalf, manage the catalog and fetch recommendations.
With --metrics-addr (or metrics.addr in config) prometheus metrics are
served at /metrics on that address.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for /metrics, e.g. :9090")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.WithComponent("mcp")

	addr := metricsAddr
	if addr == "" && globalConfig != nil {
		addr = globalConfig.Metrics.Addr
	}
	if addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           metricsMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info().Str("addr", addr).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	server, err := mcppkg.NewServer(globalEngine, globalCatalog, globalProfiles, mcppkg.WithLogger(logging.Logger()))
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", globalMetrics.Handler())
	return mux
}
