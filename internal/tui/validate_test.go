// ABOUTME: Tests for setup wizard connection checks.
// ABOUTME: Uses a temp-dir SQLite store and httptest feeds to cover success and failure paths.
package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSettings_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "brewmatch.db")

	assert.NoError(t, ValidateSettings(context.Background(), Settings{Driver: "sqlite", Location: path}))
}

func TestValidateSettings_UnknownDriver(t *testing.T) {
	assert.Error(t, ValidateSettings(context.Background(), Settings{Driver: "mysql", Location: "x"}))
}

func TestValidateSettings_Feed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coffees", r.URL.Path)
		assert.Equal(t, "feed-key", r.Header.Get("x-api-key"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"coffees":[],"total_count":0}`))
	}))
	defer server.Close()

	err := ValidateSettings(context.Background(), Settings{
		Driver:     "sqlite",
		Location:   filepath.Join(t.TempDir(), "brewmatch.db"),
		FeedURL:    server.URL,
		FeedAPIKey: "feed-key",
	})
	assert.NoError(t, err)
}

func TestValidateSettings_FeedUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer server.Close()

	err := ValidateSettings(context.Background(), Settings{
		Driver:   "sqlite",
		Location: filepath.Join(t.TempDir(), "brewmatch.db"),
		FeedURL:  server.URL,
	})
	assert.Error(t, err, "401 feed response")
}

func TestValidateSettings_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"coffees":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ValidateSettings(ctx, Settings{
		Driver:   "sqlite",
		Location: filepath.Join(t.TempDir(), "brewmatch.db"),
		FeedURL:  server.URL,
	})
	assert.Error(t, err, "cancelled context")
}
