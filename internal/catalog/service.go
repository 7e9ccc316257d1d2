// ABOUTME: Catalog service: coffee CRUD with explicit embedding regeneration.
// ABOUTME: Also seeds the starter catalog, reindexes, and imports from a remote feed.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/2389-research/brewmatch/internal/embeddings"
	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/storage"
)

// EmbeddingRecorder is told about every regeneration attempt.
type EmbeddingRecorder interface {
	EmbeddingGenerated(err error)
}

// FeedSource supplies coffees for Import. storage.FeedClient implements it.
type FeedSource interface {
	FetchCoffees(ctx context.Context) ([]*models.Coffee, error)
}

// Service mutates the catalog and keeps embeddings in step with attributes.
type Service struct {
	store       storage.CatalogStore
	logger      zerolog.Logger
	recorder    EmbeddingRecorder
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger.With().Str("component", "catalog").Logger()
	}
}

// WithRecorder reports regenerations to r.
func WithRecorder(r EmbeddingRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithConcurrency bounds parallel regenerations during Reindex.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a catalog service over store.
func NewService(store storage.CatalogStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}
	s := &Service{
		store:       store,
		logger:      zerolog.Nop(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Embed computes the flavor embedding for c. It is the storage.EmbeddingFunc used everywhere.
func Embed(c *models.Coffee) []float32 {
	return embeddings.GenerateEmbedding(c).Float32s()
}

// Get returns a coffee by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Coffee, error) {
	return s.store.GetCoffee(ctx, id)
}

// List returns every coffee.
func (s *Service) List(ctx context.Context) ([]*models.Coffee, error) {
	return s.store.ListCoffees(ctx)
}

// Create validates and stores a new coffee, then generates its embedding.
func (s *Service) Create(ctx context.Context, c *models.Coffee) (*models.Coffee, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.FlavorEmbedding = nil
	if err := s.store.CreateCoffee(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Str("coffee_id", c.ID.String()).Str("name", c.Name).Msg("coffee created")
	return s.Regenerate(ctx, c.ID)
}

// Update validates and stores changed fields, then regenerates the embedding.
func (s *Service) Update(ctx context.Context, c *models.Coffee) (*models.Coffee, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.store.GetCoffee(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateCoffee(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("coffee_id", c.ID.String()).
		Bool("attributes_changed", !existing.SameAttributes(c)).
		Msg("coffee updated")
	return s.Regenerate(ctx, c.ID)
}

// Delete removes a coffee.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteCoffee(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("coffee_id", id.String()).Msg("coffee deleted")
	return nil
}

// Regenerate recomputes and persists a coffee's embedding atomically.
func (s *Service) Regenerate(ctx context.Context, id uuid.UUID) (*models.Coffee, error) {
	c, err := s.store.RegenerateEmbedding(ctx, id, Embed)
	if s.recorder != nil {
		s.recorder.EmbeddingGenerated(err)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to regenerate embedding for %s: %w", id, err)
	}
	s.logger.Debug().Str("coffee_id", id.String()).Msg("embedding regenerated")
	return c, nil
}

// Reindex regenerates every coffee's embedding and returns how many were processed.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	coffees, err := s.store.ListCoffees(ctx)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, c := range coffees {
		id := c.ID
		g.Go(func() error {
			_, err := s.Regenerate(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	s.logger.Info().Int("coffees", len(coffees)).Msg("catalog reindexed")
	return len(coffees), nil
}

// SeedResult summarizes a Seed run.
type SeedResult struct {
	Created  int
	Existing int
}

// Seed inserts the starter coffees that are missing by name and refreshes every
// seeded coffee's embedding.
func (s *Service) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	for _, seed := range seedCoffees {
		existing, err := s.store.FindCoffeeByName(ctx, seed.name)
		switch {
		case err == nil:
			if _, err := s.Regenerate(ctx, existing.ID); err != nil {
				return result, err
			}
			result.Existing++
		case errors.Is(err, models.ErrNotFound):
			if _, err := s.Create(ctx, seed.coffee()); err != nil {
				return result, fmt.Errorf("failed to seed %q: %w", seed.name, err)
			}
			result.Created++
		default:
			return result, err
		}
	}
	s.logger.Info().Int("created", result.Created).Int("existing", result.Existing).Msg("catalog seeded")
	return result, nil
}

// ImportResult summarizes an Import run.
type ImportResult struct {
	Created int
	Updated int
	Skipped int
}

// Import upserts coffees from feed, matching by SKU first and then by name.
// Invalid feed entries are skipped and logged.
func (s *Service) Import(ctx context.Context, feed FeedSource) (ImportResult, error) {
	var result ImportResult

	incoming, err := feed.FetchCoffees(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to fetch feed: %w", err)
	}

	for _, c := range incoming {
		if err := c.Validate(); err != nil {
			s.logger.Warn().Err(err).Str("name", c.Name).Msg("skipping invalid feed coffee")
			result.Skipped++
			continue
		}

		existing, err := s.match(ctx, c)
		switch {
		case err == nil:
			c.ID = existing.ID
			if _, err := s.Update(ctx, c); err != nil {
				return result, fmt.Errorf("failed to update %q: %w", c.Name, err)
			}
			result.Updated++
		case errors.Is(err, models.ErrNotFound):
			if _, err := s.Create(ctx, c); err != nil {
				return result, fmt.Errorf("failed to create %q: %w", c.Name, err)
			}
			result.Created++
		default:
			return result, err
		}
	}

	s.logger.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("feed imported")
	return result, nil
}

func (s *Service) match(ctx context.Context, c *models.Coffee) (*models.Coffee, error) {
	if c.SKU != "" {
		existing, err := s.store.FindCoffeeBySKU(ctx, c.SKU)
		if err == nil || !errors.Is(err, models.ErrNotFound) {
			return existing, err
		}
	}
	return s.store.FindCoffeeByName(ctx, c.Name)
}
