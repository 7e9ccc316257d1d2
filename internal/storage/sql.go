// ABOUTME: database/sql implementation shared by the SQLite and Postgres stores.
// ABOUTME: Dialect differences (placeholders, vectors, timestamps, locking) live behind dialect.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/brewmatch/internal/models"
)

// dialect captures what differs between the SQL backends.
type dialect interface {
	schema() []string
	// rebind converts ? placeholders to the backend's style.
	rebind(query string) string
	vectorValue(v []float32) (any, error)
	parseVector(raw string) ([]float32, error)
	timeValue(t time.Time) any
	// sameValue is the null-safe equality operator.
	sameValue() string
	// lockRow is appended to a SELECT that precedes an update in the same transaction.
	lockRow() string
}

type sqlStore struct {
	db *sql.DB
	d  dialect
}

const coffeeColumns = `id, name, description, roast_level, acidity, body, sweetness, bitterness,
	flavor_embedding, price_cents, currency, url, sku, grind_type, created_at, updated_at`

const profileColumns = `id, user_id, chocolate_preference, fruit_preference, drink_preference,
	texture_preference, adventure_level, brewing_method, has_grinder, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *sqlStore) ensureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range s.d.schema() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return tx.Commit()
}

// Ping verifies the database is reachable.
func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) q(query string) string {
	return s.d.rebind(query)
}

func (s *sqlStore) embeddingValue(v []float32) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return s.d.vectorValue(v)
}

// CreateCoffee inserts a new coffee.
func (s *sqlStore) CreateCoffee(ctx context.Context, c *models.Coffee) error {
	embedding, err := s.embeddingValue(c.FlavorEmbedding)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.q(`INSERT INTO coffees (`+coffeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID, c.Name, c.Description, nullString(string(c.RoastLevel)),
		c.Acidity, c.Body, c.Sweetness, c.Bitterness,
		embedding, c.PriceCents, c.Currency, nullString(c.URL), nullString(c.SKU),
		nullString(string(c.GrindType)),
		s.d.timeValue(c.CreatedAt), s.d.timeValue(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert coffee: %w", err)
	}
	return nil
}

// UpdateCoffee overwrites a coffee's fields and clears a stale embedding.
func (s *sqlStore) UpdateCoffee(ctx context.Context, c *models.Coffee) error {
	same := s.d.sameValue()
	res, err := s.db.ExecContext(ctx, s.q(`UPDATE coffees SET
		flavor_embedding = CASE
			WHEN acidity `+same+` ? AND body `+same+` ? AND sweetness `+same+` ? AND bitterness `+same+` ?
			THEN flavor_embedding ELSE NULL END,
		name = ?, description = ?, roast_level = ?,
		acidity = ?, body = ?, sweetness = ?, bitterness = ?,
		price_cents = ?, currency = ?, url = ?, sku = ?, grind_type = ?, updated_at = ?
		WHERE id = ?`),
		c.Acidity, c.Body, c.Sweetness, c.Bitterness,
		c.Name, c.Description, nullString(string(c.RoastLevel)),
		c.Acidity, c.Body, c.Sweetness, c.Bitterness,
		c.PriceCents, c.Currency, nullString(c.URL), nullString(c.SKU), nullString(string(c.GrindType)),
		s.d.timeValue(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update coffee: %w", err)
	}
	return requireAffected(res)
}

// DeleteCoffee removes a coffee.
func (s *sqlStore) DeleteCoffee(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM coffees WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete coffee: %w", err)
	}
	return requireAffected(res)
}

// GetCoffee returns a coffee by ID.
func (s *sqlStore) GetCoffee(ctx context.Context, id uuid.UUID) (*models.Coffee, error) {
	return s.findCoffee(ctx, `id = ?`, id)
}

// FindCoffeeByName returns a coffee by exact name.
func (s *sqlStore) FindCoffeeByName(ctx context.Context, name string) (*models.Coffee, error) {
	return s.findCoffee(ctx, `name = ?`, name)
}

// FindCoffeeBySKU returns a coffee by SKU.
func (s *sqlStore) FindCoffeeBySKU(ctx context.Context, sku string) (*models.Coffee, error) {
	if sku == "" {
		return nil, models.ErrNotFound
	}
	return s.findCoffee(ctx, `sku = ?`, sku)
}

func (s *sqlStore) findCoffee(ctx context.Context, where string, arg any) (*models.Coffee, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+coffeeColumns+` FROM coffees WHERE `+where+` LIMIT 1`), arg)
	c, err := s.scanCoffee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read coffee: %w", err)
	}
	return c, nil
}

// ListCoffees returns every coffee ordered by name.
func (s *sqlStore) ListCoffees(ctx context.Context) ([]*models.Coffee, error) {
	return s.queryCoffees(ctx, `SELECT `+coffeeColumns+` FROM coffees ORDER BY name, id`)
}

func (s *sqlStore) queryCoffees(ctx context.Context, query string, args ...any) ([]*models.Coffee, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query coffees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var coffees []*models.Coffee
	for rows.Next() {
		c, err := s.scanCoffee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coffee: %w", err)
		}
		coffees = append(coffees, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coffees: %w", err)
	}
	return coffees, nil
}

// RegenerateEmbedding recomputes and stores a coffee's embedding in one transaction.
func (s *sqlStore) RegenerateEmbedding(ctx context.Context, id uuid.UUID, fn EmbeddingFunc) (*models.Coffee, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, s.q(`SELECT `+coffeeColumns+` FROM coffees WHERE id = ?`+s.d.lockRow()), id)
	c, err := s.scanCoffee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read coffee: %w", err)
	}

	c.FlavorEmbedding = fn(c)
	c.UpdatedAt = time.Now().UTC()

	embedding, err := s.embeddingValue(c.FlavorEmbedding)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.q(`UPDATE coffees SET flavor_embedding = ?, updated_at = ? WHERE id = ?`),
		embedding, s.d.timeValue(c.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to store embedding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit embedding: %w", err)
	}
	return c, nil
}

func (s *sqlStore) scanCoffee(row rowScanner) (*models.Coffee, error) {
	var (
		c                                    models.Coffee
		description, roast, url, sku, grind  sql.NullString
		acidity, body, sweetness, bitterness sql.NullInt64
		price                                sql.NullInt64
		embedding                            sql.NullString
		createdAt, updatedAt                 timestamp
	)
	err := row.Scan(
		&c.ID, &c.Name, &description, &roast, &acidity, &body, &sweetness, &bitterness,
		&embedding, &price, &c.Currency, &url, &sku, &grind, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Description = description.String
	c.RoastLevel = models.RoastLevel(roast.String)
	c.Acidity = intPtr(acidity)
	c.Body = intPtr(body)
	c.Sweetness = intPtr(sweetness)
	c.Bitterness = intPtr(bitterness)
	c.PriceCents = intPtr(price)
	c.URL = url.String
	c.SKU = sku.String
	c.GrindType = models.GrindType(grind.String)
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	if embedding.Valid && embedding.String != "" {
		v, err := s.d.parseVector(embedding.String)
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedding for %s: %w", c.ID, err)
		}
		c.FlavorEmbedding = v
	}
	return &c, nil
}

// FindOrCreateUser returns the user with this email, creating it if needed.
func (s *sqlStore) FindOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	u := models.NewUser(email)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, s.q(`INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)
		ON CONFLICT (email) DO NOTHING`), u.ID, u.Email, s.d.timeValue(u.CreatedAt)); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.GetUserByEmail(ctx, u.Email)
}

// GetUserByEmail returns a user by normalized email.
func (s *sqlStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		u         models.User
		createdAt timestamp
	)
	err := s.db.QueryRowContext(ctx, s.q(`SELECT id, email, created_at FROM users WHERE email = ?`),
		models.NormalizeEmail(email)).Scan(&u.ID, &u.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	u.CreatedAt = createdAt.Time
	return &u, nil
}

// GetProfile returns the user's taste profile.
func (s *sqlStore) GetProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+profileColumns+` FROM taste_profiles WHERE user_id = ?`), userID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return p, nil
}

// ReplaceProfile deletes any existing profile for the user and inserts p.
func (s *sqlStore) ReplaceProfile(ctx context.Context, p *models.TasteProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM taste_profiles WHERE user_id = ?`), p.UserID); err != nil {
		return fmt.Errorf("failed to delete old profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.q(`INSERT INTO taste_profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.UserID,
		string(p.ChocolatePreference), string(p.FruitPreference), string(p.DrinkPreference),
		string(p.TexturePreference), string(p.AdventureLevel), string(p.BrewingMethod),
		p.HasGrinder, s.d.timeValue(p.CreatedAt),
	); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return tx.Commit()
}

// ListProfiledUsers returns every user with a profile, ordered by email.
func (s *sqlStore) ListProfiledUsers(ctx context.Context) ([]UserProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT u.id, u.email, u.created_at,
		p.id, p.user_id, p.chocolate_preference, p.fruit_preference, p.drink_preference,
		p.texture_preference, p.adventure_level, p.brewing_method, p.has_grinder, p.created_at
		FROM users u JOIN taste_profiles p ON p.user_id = u.id
		ORDER BY u.email`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiled users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []UserProfile
	for rows.Next() {
		var (
			u             models.User
			p             models.TasteProfile
			userCreatedAt timestamp
			profCreatedAt timestamp
		)
		if err := rows.Scan(&u.ID, &u.Email, &userCreatedAt,
			&p.ID, &p.UserID, &p.ChocolatePreference, &p.FruitPreference, &p.DrinkPreference,
			&p.TexturePreference, &p.AdventureLevel, &p.BrewingMethod, &p.HasGrinder, &profCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profiled user: %w", err)
		}
		u.CreatedAt = userCreatedAt.Time
		p.CreatedAt = profCreatedAt.Time
		out = append(out, UserProfile{User: &u, Profile: &p})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiled users: %w", err)
	}
	return out, nil
}

func scanProfile(row rowScanner) (*models.TasteProfile, error) {
	var (
		p         models.TasteProfile
		createdAt timestamp
	)
	if err := row.Scan(&p.ID, &p.UserID,
		&p.ChocolatePreference, &p.FruitPreference, &p.DrinkPreference,
		&p.TexturePreference, &p.AdventureLevel, &p.BrewingMethod,
		&p.HasGrinder, &createdAt,
	); err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.Time
	return &p, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// rebindDollar rewrites ? placeholders as $1, $2, ...
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// timestamp scans both native timestamps and RFC 3339 text columns.
type timestamp struct {
	Time time.Time
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v.UTC()
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
	return nil
}

func (t *timestamp) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}
