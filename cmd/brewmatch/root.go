// ABOUTME: Root Cobra command and global flags for the brewmatch CLI.
// ABOUTME: Loads config, configures logging, opens the store and wires the engine and services.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/brewmatch/internal/catalog"
	"github.com/2389-research/brewmatch/internal/config"
	"github.com/2389-research/brewmatch/internal/logging"
	"github.com/2389-research/brewmatch/internal/metrics"
	"github.com/2389-research/brewmatch/internal/profiles"
	"github.com/2389-research/brewmatch/internal/recommend"
	"github.com/2389-research/brewmatch/internal/storage"
)

var globalConfig *config.Config
var globalStore storage.Store
var globalMetrics *metrics.Collector
var globalEngine *recommend.Engine
var globalCatalog *catalog.Service
var globalProfiles *profiles.Service

var logLevelFlag string

var rootCmd = &cobra.Command{
	Use:   "brewmatch",
	Short: "Coffee recommendations from a taste quiz",
	Long: `
██████╗ ██████╗ ███████╗██╗    ██╗███╗   ███╗ █████╗ ████████╗ ██████╗██╗  ██╗
██╔══██╗██╔══██╗██╔════╝██║    ██║████╗ ████║██╔══██╗╚══██╔══╝██╔════╝██║  ██║
██████╔╝██████╔╝█████╗  ██║ █╗ ██║██╔████╔██║███████║   ██║   ██║     ███████║
██╔══██╗██╔══██╗██╔══╝  ██║███╗██║██║╚██╔╝██║██╔══██║   ██║   ██║     ██╔══██║
██████╔╝██║  ██║███████╗╚███╔███╔╝██║ ╚═╝ ██║██║  ██║   ██║   ╚██████╗██║  ██║
╚═════╝ ╚═╝  ╚═╝╚══════╝ ╚══╝╚══╝ ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝╚═╝  ╚═╝

Match coffees to a drinker's palate. Answers about chocolate, fruit, drinks
and texture become a flavor vector; the catalog is ranked by similarity,
brewing method fit and appetite for adventure.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevelFlag != "" {
			cfg.Log.Level = logLevelFlag
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		globalConfig = cfg

		logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		logger := logging.Logger()

		location, err := cfg.StorageLocation()
		if err != nil {
			return fmt.Errorf("failed to resolve storage location: %w", err)
		}
		store, err := storage.Open(cmd.Context(), cfg.Storage.Driver, location)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		globalStore = store

		globalMetrics = metrics.New()

		engine, err := recommend.NewEngine(store, recommend.Config{
			OverFetchFactor: cfg.Engine.OverFetchFactor,
			DefaultLimit:    cfg.Engine.DefaultLimit,
			AdminLimit:      cfg.Engine.AdminLimit,
		}, recommend.WithLogger(logger), recommend.WithRecorder(globalMetrics))
		if err != nil {
			return err
		}
		globalEngine = engine

		cat, err := catalog.NewService(store, catalog.WithLogger(logger), catalog.WithRecorder(globalMetrics))
		if err != nil {
			return err
		}
		globalCatalog = cat

		prof, err := profiles.NewService(store, profiles.WithLogger(logger))
		if err != nil {
			return err
		}
		globalProfiles = prof

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalStore != nil {
			_ = globalStore.Close()
			globalStore = nil
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override log.level (trace, debug, info, warn, error)")
}
