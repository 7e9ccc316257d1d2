// ABOUTME: Tests for the remote catalog feed client using httptest server.
// ABOUTME: Covers decoding, auth header passing, and error responses.
package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/brewmatch/internal/models"
)

const feedBody = `{
  "coffees": [
    {
      "name": "  Ethiopia Yirgacheffe ",
      "description": "Floral and citrus",
      "roast_level": "light",
      "acidity": 9, "body": 3, "sweetness": 6, "bitterness": 2,
      "price_cents": 5990, "currency": "usd",
      "url": "https://example.com/yirga", "sku": "ETH-001", "grind_type": "whole_bean"
    },
    {"name": "Mystery Lot"}
  ],
  "total_count": 2
}`

func TestFeedClientFetchCoffees(t *testing.T) {
	var receivedKey, receivedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedKey = r.Header.Get("x-api-key")
		receivedPath = r.URL.Path
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer server.Close()

	client := NewFeedClient(server.URL+"/", "feed-key")
	coffees, err := client.FetchCoffees(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "feed-key", receivedKey)
	assert.Equal(t, "/coffees", receivedPath)
	require.Len(t, coffees, 2)

	c := coffees[0]
	assert.Equal(t, "Ethiopia Yirgacheffe", c.Name)
	assert.Equal(t, models.RoastLight, c.RoastLevel)
	require.NotNil(t, c.Acidity)
	assert.Equal(t, 9, *c.Acidity)
	assert.Equal(t, "USD", c.Currency)
	assert.Equal(t, "ETH-001", c.SKU)
	assert.False(t, c.HasEmbedding(), "feed coffees should not carry embeddings")

	bare := coffees[1]
	assert.Equal(t, models.DefaultCurrency, bare.Currency)
	assert.Nil(t, bare.Acidity)
}

func TestFeedClientNoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header["X-Api-Key"]
		assert.False(t, ok, "expected no x-api-key header")
		_, _ = w.Write([]byte(`{"coffees": []}`))
	}))
	defer server.Close()

	coffees, err := NewFeedClient(server.URL, "").FetchCoffees(context.Background())
	require.NoError(t, err)
	assert.Empty(t, coffees)
}

func TestFeedClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad key"))
	}))
	defer server.Close()

	_, err := NewFeedClient(server.URL, "wrong").FetchCoffees(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "bad key")
}

func TestFeedClientInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewFeedClient(server.URL, "k").FetchCoffees(context.Background())
	assert.Error(t, err)
}

func TestFeedClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewFeedClient(url, "k").FetchCoffees(context.Background())
	assert.Error(t, err)
}
