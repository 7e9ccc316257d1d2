// ABOUTME: HTTP client for a remote catalog feed that publishes coffees as JSON.
// ABOUTME: Authenticates with an x-api-key header and maps feed items to models.Coffee.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/2389-research/brewmatch/internal/models"
)

// FeedClient reads coffees from a remote catalog feed.
type FeedClient struct {
	feedURL string
	apiKey  string
	client  *http.Client
}

// NewFeedClient creates a feed client for feedURL. apiKey may be empty for open feeds.
func NewFeedClient(feedURL, apiKey string) *FeedClient {
	return &FeedClient{
		feedURL: strings.TrimRight(feedURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// feedCoffee maps a single coffee from the feed.
type feedCoffee struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RoastLevel  string `json:"roast_level"`
	Acidity     *int   `json:"acidity"`
	Body        *int   `json:"body"`
	Sweetness   *int   `json:"sweetness"`
	Bitterness  *int   `json:"bitterness"`
	PriceCents  *int   `json:"price_cents"`
	Currency    string `json:"currency"`
	URL         string `json:"url"`
	SKU         string `json:"sku"`
	GrindType   string `json:"grind_type"`
}

// feedResponse is the top-level envelope from GET {feed}/coffees.
type feedResponse struct {
	Coffees    []feedCoffee `json:"coffees"`
	TotalCount int          `json:"total_count"`
}

// FetchCoffees downloads the feed. Returned coffees have fresh IDs and no embeddings;
// callers match them against the catalog by SKU or name.
func (f *FeedClient) FetchCoffees(ctx context.Context) ([]*models.Coffee, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL+"/coffees", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set("x-api-key", f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("feed returned %d: %s", resp.StatusCode, string(respBody))
	}

	var listResp feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	coffees := make([]*models.Coffee, 0, len(listResp.Coffees))
	for _, fc := range listResp.Coffees {
		c := models.NewCoffee(strings.TrimSpace(fc.Name))
		c.Description = fc.Description
		c.RoastLevel = models.RoastLevel(fc.RoastLevel)
		c.Acidity = fc.Acidity
		c.Body = fc.Body
		c.Sweetness = fc.Sweetness
		c.Bitterness = fc.Bitterness
		c.PriceCents = fc.PriceCents
		if fc.Currency != "" {
			c.Currency = strings.ToUpper(fc.Currency)
		}
		c.URL = fc.URL
		c.SKU = fc.SKU
		c.GrindType = models.GrindType(fc.GrindType)
		coffees = append(coffees, c)
	}

	return coffees, nil
}
