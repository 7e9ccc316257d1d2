// ABOUTME: Prometheus metrics for recommendations and embedding regeneration.
// ABOUTME: Each Collector owns its registry; Handler exposes it for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records engine and catalog activity.
type Collector struct {
	registry *prometheus.Registry

	RecommendationsTotal    *prometheus.CounterVec
	RecommendationDuration  prometheus.Histogram
	CandidatesFetched       prometheus.Histogram
	RecommendationsReturned prometheus.Histogram
	EmbeddingsTotal         *prometheus.CounterVec
}

// New creates a collector on a fresh registry, with Go and process collectors attached.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		RecommendationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brewmatch_recommendations_total",
				Help: "Recommendation requests by outcome",
			},
			[]string{"outcome"},
		),
		RecommendationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brewmatch_recommendation_duration_seconds",
				Help:    "Time to serve a recommendation request",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		CandidatesFetched: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brewmatch_recommendation_candidates",
				Help:    "Candidates returned by the nearest-neighbor index per request",
				Buckets: prometheus.LinearBuckets(0, 2, 11),
			},
		),
		RecommendationsReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brewmatch_recommendation_results",
				Help:    "Coffees returned per request after ranking",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
		EmbeddingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brewmatch_embeddings_generated_total",
				Help: "Flavor embedding regenerations by result",
			},
			[]string{"result"},
		),
	}
}

// RecommendationServed records a successful request.
func (c *Collector) RecommendationServed(candidates, returned int, elapsed time.Duration) {
	c.RecommendationsTotal.WithLabelValues("ok").Inc()
	c.RecommendationDuration.Observe(elapsed.Seconds())
	c.CandidatesFetched.Observe(float64(candidates))
	c.RecommendationsReturned.Observe(float64(returned))
}

// RecommendationFailed records a failed request under reason.
func (c *Collector) RecommendationFailed(reason string) {
	c.RecommendationsTotal.WithLabelValues(reason).Inc()
}

// EmbeddingGenerated records one regeneration; err nil counts as success.
func (c *Collector) EmbeddingGenerated(err error) {
	if err != nil {
		c.EmbeddingsTotal.WithLabelValues("error").Inc()
		return
	}
	c.EmbeddingsTotal.WithLabelValues("ok").Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
