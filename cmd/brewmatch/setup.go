// ABOUTME: Cobra command for interactive storage setup.
// ABOUTME: Launches a bubbletea TUI wizard to choose and check the database and catalog feed.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/brewmatch/internal/config"
	"github.com/2389-research/brewmatch/internal/storage"
	"github.com/2389-research/brewmatch/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose where brewmatch stores its data",
	Long:  "Interactive wizard to configure the storage driver, database location and optional catalog feed.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	defaultPath, err := config.Default().GetStoragePath()
	if err != nil {
		return fmt.Errorf("failed to resolve default storage path: %w", err)
	}

	current := tui.Settings{
		Driver:     cfg.Storage.Driver,
		FeedURL:    cfg.Feed.URL,
		FeedAPIKey: cfg.Feed.APIKey,
	}
	if cfg.Storage.Driver == storage.DriverPostgres {
		current.Location = cfg.Storage.DSN
	} else {
		current.Location = cfg.Storage.Path
	}

	p := tea.NewProgram(tui.NewSetupModel(current, defaultPath))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	settings := final.Result()
	cfg.Storage.Driver = settings.Driver
	if settings.Driver == storage.DriverPostgres {
		cfg.Storage.DSN = settings.Location
		cfg.Storage.Path = ""
	} else {
		cfg.Storage.Path = settings.Location
		cfg.Storage.DSN = ""
	}
	cfg.Feed.URL = settings.FeedURL
	cfg.Feed.APIKey = settings.FeedAPIKey

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	return nil
}
