// ABOUTME: Connection checks for the setup wizard.
// ABOUTME: Opens and pings the chosen store, then fetches the catalog feed if one was given.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/2389-research/brewmatch/internal/storage"
)

// ValidateSettings opens the store (creating the schema if needed) and, when a feed
// is configured, fetches it once. The context allows cancellation when the user quits.
func ValidateSettings(ctx context.Context, s Settings) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	store, err := storage.Open(ctx, s.Driver, s.Location)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("storage ping failed: %w", err)
	}

	if s.FeedURL == "" {
		return nil
	}
	if _, err := storage.NewFeedClient(s.FeedURL, s.FeedAPIKey).FetchCoffees(ctx); err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	return nil
}
