// ABOUTME: Core data models for coffees, taste profiles, and users.
// ABOUTME: Provides constructor functions, attribute accessors, and commerce helpers.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coffee is a catalog item with raw flavor attributes and a derived flavor embedding.
type Coffee struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description,omitempty"`
	RoastLevel  RoastLevel `json:"roast_level,omitempty" validate:"omitempty,oneof=light medium dark"`

	// Raw attributes on a 0-10 scale. nil means "not rated" and counts as 0.
	Acidity    *int `json:"acidity,omitempty" validate:"omitempty,gte=0,lte=10"`
	Body       *int `json:"body,omitempty" validate:"omitempty,gte=0,lte=10"`
	Sweetness  *int `json:"sweetness,omitempty" validate:"omitempty,gte=0,lte=10"`
	Bitterness *int `json:"bitterness,omitempty" validate:"omitempty,gte=0,lte=10"`

	// FlavorEmbedding is derived from the four attributes. nil until generated.
	FlavorEmbedding []float32 `json:"flavor_embedding,omitempty"`

	PriceCents *int      `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	Currency   string    `json:"currency,omitempty" validate:"omitempty,oneof=BRL USD EUR"`
	URL        string    `json:"url,omitempty" validate:"omitempty,http_url"`
	SKU        string    `json:"sku,omitempty"`
	GrindType  GrindType `json:"grind_type,omitempty" validate:"omitempty,oneof=whole_bean ground"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultCurrency is applied to new coffees.
const DefaultCurrency = "BRL"

// Currencies lists accepted price currencies.
var Currencies = []string{"BRL", "USD", "EUR"}

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
}

// NewCoffee creates a coffee with generated UUID, default currency and timestamps.
func NewCoffee(name string) *Coffee {
	now := time.Now().UTC()
	return &Coffee{
		ID:        uuid.New(),
		Name:      name,
		Currency:  DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Int returns a pointer to v, for filling optional attributes.
func Int(v int) *int {
	return &v
}

// AttributeValue returns the attribute value, treating nil as 0.
func AttributeValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// HasEmbedding reports whether the flavor embedding has been generated.
func (c *Coffee) HasEmbedding() bool {
	return len(c.FlavorEmbedding) > 0
}

// SameAttributes reports whether the four flavor attributes match other's.
func (c *Coffee) SameAttributes(other *Coffee) bool {
	return sameInt(c.Acidity, other.Acidity) &&
		sameInt(c.Body, other.Body) &&
		sameInt(c.Sweetness, other.Sweetness) &&
		sameInt(c.Bitterness, other.Bitterness)
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Price returns the price as a decimal amount, or false if no price is set.
func (c *Coffee) Price() (float64, bool) {
	if c.PriceCents == nil {
		return 0, false
	}
	return float64(*c.PriceCents) / 100.0, true
}

// FormattedPrice renders the price with its currency symbol, e.g. "R$ 49.90".
// Returns an empty string when no price is set.
func (c *Coffee) FormattedPrice() string {
	price, ok := c.Price()
	if !ok {
		return ""
	}
	symbol, found := currencySymbols[c.Currency]
	if !found {
		symbol = c.Currency
	}
	return fmt.Sprintf("%s %.2f", symbol, price)
}

// TasteProfile holds a user's questionnaire answers. A retake replaces it whole.
type TasteProfile struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	ChocolatePreference ChocolatePreference `json:"chocolate_preference" validate:"required,oneof=white milk dark_70 dark_85"`
	FruitPreference     FruitPreference     `json:"fruit_preference" validate:"required,oneof=citrus berries yellow dried"`
	DrinkPreference     DrinkPreference     `json:"drink_preference" validate:"required,oneof=wine_bold wine_light beer_ipa beer_stout"`
	TexturePreference   TexturePreference   `json:"texture_preference" validate:"required,oneof=tea_like creamy syrupy"`
	AdventureLevel      AdventureLevel      `json:"adventure_level" validate:"required,oneof=safe moderate wild"`
	BrewingMethod       BrewingMethod       `json:"brewing_method" validate:"required,oneof=espresso v60 french_press moka capsule"`

	HasGrinder bool `json:"has_grinder"`

	CreatedAt time.Time `json:"created_at"`
}

// NewTasteProfile creates an empty profile for the given user.
func NewTasteProfile(userID uuid.UUID) *TasteProfile {
	return &TasteProfile{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// RequireAnswers checks that all six questionnaire answers are present.
// Unlike Validate it does not check enum membership.
func (p *TasteProfile) RequireAnswers() error {
	if p == nil {
		return &ValidationError{Fields: []FieldError{{Field: "profile", Message: "is required"}}}
	}
	answers := []struct {
		field string
		value string
	}{
		{"chocolate_preference", string(p.ChocolatePreference)},
		{"fruit_preference", string(p.FruitPreference)},
		{"drink_preference", string(p.DrinkPreference)},
		{"texture_preference", string(p.TexturePreference)},
		{"adventure_level", string(p.AdventureLevel)},
		{"brewing_method", string(p.BrewingMethod)},
	}
	var missing []FieldError
	for _, a := range answers {
		if strings.TrimSpace(a.value) == "" {
			missing = append(missing, FieldError{Field: a.field, Message: "is required"})
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// User is identified by email address.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a user with a normalized email.
func NewUser(email string) *User {
	return &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
