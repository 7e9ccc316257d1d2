// ABOUTME: Interface definitions for catalog and profile persistence.
// ABOUTME: Implemented by the SQLite and Postgres stores; Open picks one by driver name.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/2389-research/brewmatch/internal/models"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// EmbeddingFunc computes a coffee's flavor embedding from its attributes.
type EmbeddingFunc func(c *models.Coffee) []float32

// CatalogStore defines operations for coffee persistence and nearest-neighbor lookup.
type CatalogStore interface {
	// CreateCoffee inserts a new coffee.
	CreateCoffee(ctx context.Context, c *models.Coffee) error

	// UpdateCoffee overwrites a coffee's fields. If any of the four flavor attributes
	// changed, the stored embedding is cleared in the same statement.
	UpdateCoffee(ctx context.Context, c *models.Coffee) error

	// DeleteCoffee removes a coffee. Returns models.ErrNotFound if it does not exist.
	DeleteCoffee(ctx context.Context, id uuid.UUID) error

	// GetCoffee returns a coffee by ID, or models.ErrNotFound.
	GetCoffee(ctx context.Context, id uuid.UUID) (*models.Coffee, error)

	// FindCoffeeByName returns a coffee by exact name, or models.ErrNotFound.
	FindCoffeeByName(ctx context.Context, name string) (*models.Coffee, error)

	// FindCoffeeBySKU returns a coffee by SKU, or models.ErrNotFound.
	FindCoffeeBySKU(ctx context.Context, sku string) (*models.Coffee, error)

	// ListCoffees returns every coffee ordered by name.
	ListCoffees(ctx context.Context) ([]*models.Coffee, error)

	// Nearest returns up to n embedded coffees closest to query by Euclidean distance.
	Nearest(ctx context.Context, query []float32, n int) ([]*models.Coffee, error)

	// RegenerateEmbedding reads the coffee, computes fn over it and stores the result
	// in one transaction, so the stored embedding always matches the stored attributes.
	RegenerateEmbedding(ctx context.Context, id uuid.UUID, fn EmbeddingFunc) (*models.Coffee, error)
}

// UserProfile pairs a user with their taste profile.
type UserProfile struct {
	User    *models.User
	Profile *models.TasteProfile
}

// ProfileStore defines operations for users and their taste profiles.
type ProfileStore interface {
	// FindOrCreateUser returns the user with this email, creating it if needed.
	FindOrCreateUser(ctx context.Context, email string) (*models.User, error)

	// GetUserByEmail returns a user, or models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetProfile returns the user's taste profile, or models.ErrNotFound.
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error)

	// ReplaceProfile deletes any existing profile for the user and inserts p.
	ReplaceProfile(ctx context.Context, p *models.TasteProfile) error

	// ListProfiledUsers returns every user that has a profile, ordered by email.
	ListProfiledUsers(ctx context.Context) ([]UserProfile, error)
}

// Store is the full persistence surface.
type Store interface {
	CatalogStore
	ProfileStore

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// Open connects to the store for driver. location is a file path for sqlite
// and a DSN for postgres. The schema is created if missing.
func Open(ctx context.Context, driver, location string) (Store, error) {
	switch driver {
	case DriverSQLite, "":
		s, err := NewSQLiteStore(ctx, location)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		s, err := NewPostgresStore(ctx, location)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
