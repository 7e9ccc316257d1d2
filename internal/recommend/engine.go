// ABOUTME: Recommendation engine: target vector, nearest-neighbor over-fetch, scoring, ranking.
// ABOUTME: Stateless; safe for concurrent use as long as the candidate index is.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/2389-research/brewmatch/internal/embeddings"
	"github.com/2389-research/brewmatch/internal/models"
)

// CandidateIndex returns up to n embedded coffees closest to query by Euclidean distance.
// Order is not relied on. An empty result is not an error.
type CandidateIndex interface {
	Nearest(ctx context.Context, query []float32, n int) ([]*models.Coffee, error)
}

// Recorder receives per-request outcomes. internal/metrics provides the prometheus one.
type Recorder interface {
	RecommendationServed(candidates, returned int, elapsed time.Duration)
	RecommendationFailed(reason string)
}

type nopRecorder struct{}

func (nopRecorder) RecommendationServed(int, int, time.Duration) {}
func (nopRecorder) RecommendationFailed(string)                  {}

// Config tunes the engine.
type Config struct {
	// OverFetchFactor multiplies the requested limit when querying the index, so
	// re-ranking has room to reorder. It is a heuristic, not a guarantee.
	OverFetchFactor int
	// DefaultLimit is used when a caller passes a limit of zero or less.
	DefaultLimit int
	// AdminLimit is the limit for admin match views.
	AdminLimit int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		OverFetchFactor: 2,
		DefaultLimit:    3,
		AdminLimit:      10,
	}
}

// Validate checks the config for unusable values.
func (c Config) Validate() error {
	if c.OverFetchFactor < 1 {
		return fmt.Errorf("overfetch factor must be at least 1, got %d", c.OverFetchFactor)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default limit must be at least 1, got %d", c.DefaultLimit)
	}
	if c.AdminLimit < 1 {
		return fmt.Errorf("admin limit must be at least 1, got %d", c.AdminLimit)
	}
	return nil
}

// Engine produces ranked coffee recommendations for a taste profile.
type Engine struct {
	index    CandidateIndex
	cfg      Config
	logger   zerolog.Logger
	recorder Recorder
}

// EngineOption configures optional Engine dependencies.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger.With().Str("component", "recommend").Logger()
	}
}

// WithRecorder sets where request outcomes are reported.
func WithRecorder(r Recorder) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// NewEngine creates an engine over a candidate index.
func NewEngine(index CandidateIndex, cfg Config, opts ...EngineOption) (*Engine, error) {
	if index == nil {
		return nil, fmt.Errorf("candidate index is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	e := &Engine{
		index:    index,
		cfg:      cfg,
		logger:   zerolog.Nop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// BuildTargetVector returns the target vector for a profile.
func (e *Engine) BuildTargetVector(p *models.TasteProfile) (embeddings.Vector, error) {
	return embeddings.BuildTargetVector(p)
}

// MethodCompatibility returns the brewing method multiplier for a coffee.
func (e *Engine) MethodCompatibility(c *models.Coffee, method models.BrewingMethod) float64 {
	return MethodCompatibility(c, method)
}

// Recommend returns up to limit coffees for the profile, best first.
// A limit of zero or less uses the configured default.
func (e *Engine) Recommend(ctx context.Context, p *models.TasteProfile, limit int) ([]ScoredCoffee, error) {
	start := time.Now()
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	target, err := embeddings.BuildTargetVector(p)
	if err != nil {
		e.recorder.RecommendationFailed("invalid_profile")
		return nil, err
	}

	fetch := overFetch(limit, e.cfg.OverFetchFactor)
	candidates, err := e.index.Nearest(ctx, target.Float32s(), fetch)
	if err != nil {
		e.recorder.RecommendationFailed("index")
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	scored := make([]ScoredCoffee, 0, len(candidates))
	for _, c := range candidates {
		s, err := Score(target, c, p)
		if err != nil {
			var missing *models.MissingEmbeddingError
			if errors.As(err, &missing) {
				e.logger.Warn().Str("coffee_id", c.ID.String()).Str("name", c.Name).Msg("candidate has no flavor embedding")
				e.recorder.RecommendationFailed("missing_embedding")
			}
			return nil, err
		}
		scored = append(scored, s)
	}

	ranked := Rank(scored, limit)
	elapsed := time.Since(start)
	e.recorder.RecommendationServed(len(candidates), len(ranked), elapsed)
	e.logger.Debug().
		Int("limit", limit).
		Int("fetched", fetch).
		Int("candidates", len(candidates)).
		Int("returned", len(ranked)).
		Dur("elapsed", elapsed).
		Msg("recommendation served")

	return ranked, nil
}

// overFetch returns limit*factor, saturating at math.MaxInt instead of wrapping.
func overFetch(limit, factor int) int {
	if limit > math.MaxInt/factor {
		return math.MaxInt
	}
	return limit * factor
}
