// ABOUTME: Tests for the prometheus collector and its HTTP handler.
// ABOUTME: Uses testutil to read counter values from an isolated registry.
package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationServed(t *testing.T) {
	c := New()
	c.RecommendationServed(6, 3, 2*time.Millisecond)
	c.RecommendationServed(0, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RecommendationsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.RecommendationDuration))
}

func TestRecommendationFailed(t *testing.T) {
	c := New()
	c.RecommendationFailed("missing_embedding")
	c.RecommendationFailed("missing_embedding")
	c.RecommendationFailed("index")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RecommendationsTotal.WithLabelValues("missing_embedding")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RecommendationsTotal.WithLabelValues("index")))
}

func TestEmbeddingGenerated(t *testing.T) {
	c := New()
	c.EmbeddingGenerated(nil)
	c.EmbeddingGenerated(nil)
	c.EmbeddingGenerated(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.EmbeddingsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.EmbeddingsTotal.WithLabelValues("error")))
}

func TestCollectorsAreIsolated(t *testing.T) {
	a := New()
	b := New()
	a.RecommendationFailed("index")

	assert.Zero(t, testutil.ToFloat64(b.RecommendationsTotal.WithLabelValues("index")))
}

func TestHandler(t *testing.T) {
	c := New()
	c.RecommendationServed(4, 2, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "brewmatch_recommendations_total")
	assert.Contains(t, string(body), "go_goroutines")
}
