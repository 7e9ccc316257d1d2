// ABOUTME: SQLite-backed store using the pure-Go modernc driver.
// ABOUTME: Embeddings are JSON text; nearest-neighbor ranks embedded rows by Euclidean distance.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/2389-research/brewmatch/internal/embeddings"
	"github.com/2389-research/brewmatch/internal/models"
)

// SQLiteStore implements Store over a single SQLite file.
type SQLiteStore struct {
	*sqlStore
	path string
}

// NewSQLiteStore opens or creates the database at path and applies the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// One connection serializes writers, which keeps RegenerateEmbedding atomic.
	db.SetMaxOpenConns(1)

	for _, p := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA synchronous=NORMAL;"} {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", p, err)
		}
	}

	s := &SQLiteStore{
		sqlStore: &sqlStore{db: db, d: sqliteDialect{}},
		path:     path,
	}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Nearest returns up to n embedded coffees ordered by Euclidean distance to query.
func (s *SQLiteStore) Nearest(ctx context.Context, query []float32, n int) ([]*models.Coffee, error) {
	if n <= 0 {
		return nil, nil
	}
	coffees, err := s.queryCoffees(ctx, `SELECT `+coffeeColumns+` FROM coffees WHERE flavor_embedding IS NOT NULL`)
	if err != nil {
		return nil, err
	}

	distances := make(map[*models.Coffee]float64, len(coffees))
	for _, c := range coffees {
		distances[c] = embeddings.EuclideanDistance(query, c.FlavorEmbedding)
	}
	sort.SliceStable(coffees, func(i, j int) bool {
		return distances[coffees[i]] < distances[coffees[j]]
	})

	if n < len(coffees) {
		coffees = coffees[:n]
	}
	return coffees, nil
}

type sqliteDialect struct{}

func (sqliteDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS coffees (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			roast_level TEXT,
			acidity INTEGER,
			body INTEGER,
			sweetness INTEGER,
			bitterness INTEGER,
			flavor_embedding TEXT,
			price_cents INTEGER,
			currency TEXT NOT NULL DEFAULT 'BRL',
			url TEXT,
			sku TEXT UNIQUE,
			grind_type TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_coffees_name ON coffees(name)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS taste_profiles (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			chocolate_preference TEXT NOT NULL,
			fruit_preference TEXT NOT NULL,
			drink_preference TEXT NOT NULL,
			texture_preference TEXT NOT NULL,
			adventure_level TEXT NOT NULL,
			brewing_method TEXT NOT NULL,
			has_grinder INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
	}
}

func (sqliteDialect) rebind(query string) string { return query }

func (sqliteDialect) vectorValue(v []float32) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (sqliteDialect) parseVector(raw string) ([]float32, error) {
	var v []float32
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (sqliteDialect) timeValue(t time.Time) any {
	return t.UTC().Format(time.RFC3339Nano)
}

func (sqliteDialect) sameValue() string { return "IS" }

func (sqliteDialect) lockRow() string { return "" }
