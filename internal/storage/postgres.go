// ABOUTME: Postgres-backed store using lib/pq and the pgvector extension.
// ABOUTME: Nearest-neighbor lookup runs in the database with the <-> (L2) operator.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/2389-research/brewmatch/internal/embeddings"
	"github.com/2389-research/brewmatch/internal/models"
)

// PostgresStore implements Store over Postgres with pgvector.
type PostgresStore struct {
	*sqlStore
}

// NewPostgresStore connects with dsn and applies the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	s := &PostgresStore{sqlStore: &sqlStore{db: db, d: postgresDialect{}}}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Nearest returns up to n embedded coffees ordered by Euclidean distance to query.
func (s *PostgresStore) Nearest(ctx context.Context, query []float32, n int) ([]*models.Coffee, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.queryCoffees(ctx, `SELECT `+coffeeColumns+` FROM coffees
		WHERE flavor_embedding IS NOT NULL
		ORDER BY flavor_embedding <-> ?, id
		LIMIT ?`, pgvector.NewVector(query), n)
}

type postgresDialect struct{}

func (postgresDialect) schema() []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS coffees (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			roast_level TEXT,
			acidity INTEGER,
			body INTEGER,
			sweetness INTEGER,
			bitterness INTEGER,
			flavor_embedding vector(%d),
			price_cents INTEGER,
			currency TEXT NOT NULL DEFAULT 'BRL',
			url TEXT,
			sku TEXT UNIQUE,
			grind_type TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`, embeddings.Dimensions),
		`CREATE INDEX IF NOT EXISTS idx_coffees_name ON coffees(name)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS taste_profiles (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			chocolate_preference TEXT NOT NULL,
			fruit_preference TEXT NOT NULL,
			drink_preference TEXT NOT NULL,
			texture_preference TEXT NOT NULL,
			adventure_level TEXT NOT NULL,
			brewing_method TEXT NOT NULL,
			has_grinder BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
}

func (postgresDialect) rebind(query string) string { return rebindDollar(query) }

func (postgresDialect) vectorValue(v []float32) (any, error) {
	return pgvector.NewVector(v), nil
}

func (postgresDialect) parseVector(raw string) ([]float32, error) {
	var v pgvector.Vector
	if err := v.Scan(raw); err != nil {
		return nil, err
	}
	return v.Slice(), nil
}

func (postgresDialect) timeValue(t time.Time) any { return t.UTC() }

func (postgresDialect) sameValue() string { return "IS NOT DISTINCT FROM" }

func (postgresDialect) lockRow() string { return " FOR UPDATE" }
