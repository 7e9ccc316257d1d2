// ABOUTME: Profile service: users by email and their questionnaire answers.
// ABOUTME: Submitting answers replaces the user's profile; lookups feed the recommendation engine.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/storage"
)

// ErrNoProfile is returned when a user exists but never took the questionnaire,
// or when no user has the requested email.
var ErrNoProfile = errors.New("no taste profile")

// Answers are the questionnaire responses as submitted by a user.
type Answers struct {
	Chocolate  models.ChocolatePreference `json:"chocolate_preference"`
	Fruit      models.FruitPreference     `json:"fruit_preference"`
	Drink      models.DrinkPreference     `json:"drink_preference"`
	Texture    models.TexturePreference   `json:"texture_preference"`
	Adventure  models.AdventureLevel      `json:"adventure_level"`
	Method     models.BrewingMethod       `json:"brewing_method"`
	HasGrinder bool                       `json:"has_grinder"`
}

// Empty reports whether none of the six answers was given.
func (a Answers) Empty() bool {
	return a.Chocolate == "" && a.Fruit == "" && a.Drink == "" &&
		a.Texture == "" && a.Adventure == "" && a.Method == ""
}

// Profile builds an unsaved profile for userID from the answers.
func (a Answers) Profile(user *models.User) *models.TasteProfile {
	p := models.NewTasteProfile(user.ID)
	p.ChocolatePreference = a.Chocolate
	p.FruitPreference = a.Fruit
	p.DrinkPreference = a.Drink
	p.TexturePreference = a.Texture
	p.AdventureLevel = a.Adventure
	p.BrewingMethod = a.Method
	p.HasGrinder = a.HasGrinder
	return p
}

// Service manages users and taste profiles.
type Service struct {
	store  storage.ProfileStore
	logger zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger.With().Str("component", "profiles").Logger()
	}
}

// NewService creates a profile service over store.
func NewService(store storage.ProfileStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	s := &Service{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit validates the answers and stores them as the user's only profile,
// creating the user on first submission.
func (s *Service) Submit(ctx context.Context, email string, a Answers) (*models.User, *models.TasteProfile, error) {
	email = models.NormalizeEmail(email)
	if err := models.NewUser(email).Validate(); err != nil {
		return nil, nil, err
	}

	// Validate before touching the store so a bad submission creates nothing.
	if err := a.Profile(&models.User{}).Validate(); err != nil {
		return nil, nil, err
	}

	user, err := s.store.FindOrCreateUser(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find or create user: %w", err)
	}

	p := a.Profile(user)
	if err := s.store.ReplaceProfile(ctx, p); err != nil {
		return nil, nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info().
		Str("email", user.Email).
		Str("brewing_method", string(p.BrewingMethod)).
		Str("adventure_level", string(p.AdventureLevel)).
		Msg("taste profile saved")
	return user, p, nil
}

// ForEmail returns the user and profile for email, or ErrNoProfile.
func (s *Service) ForEmail(ctx context.Context, email string) (*models.User, *models.TasteProfile, error) {
	email = models.NormalizeEmail(email)
	if strings.TrimSpace(email) == "" {
		return nil, nil, &models.ValidationError{Fields: []models.FieldError{{Field: "email", Message: "is required"}}}
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w for %s", ErrNoProfile, email)
	}
	if err != nil {
		return nil, nil, err
	}

	p, err := s.store.GetProfile(ctx, user.ID)
	if errors.Is(err, models.ErrNotFound) {
		return user, nil, fmt.Errorf("%w for %s", ErrNoProfile, email)
	}
	if err != nil {
		return user, nil, err
	}
	return user, p, nil
}

// List returns every user with a profile, ordered by email.
func (s *Service) List(ctx context.Context) ([]storage.UserProfile, error) {
	return s.store.ListProfiledUsers(ctx)
}
