// Package metrics описывает метрики Prometheus рекомендательного сервиса.
// Метрики регистрируются в глобальном реестре через promauto и отдаются на /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeNoProfile = "no_profile"
	OutcomeRejected  = "rejected"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by algorithm and outcome",
		},
		[]string{"algorithm", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"algorithm"},
	)

	EmbeddingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_requests_total",
			Help: "Total number of embedding model calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	EmbeddingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "embedding_duration_seconds",
			Help:    "Duration of embedding model calls in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	EmbeddingQueryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embedding_query_cache_hits_total",
			Help: "Total number of user query vectors served from cache",
		},
	)

	// EmbeddingBreakerState: 0 = closed, 1 = half-open, 2 = open.
	EmbeddingBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "embedding_breaker_state",
			Help: "State of the embedding model circuit breaker (0=closed, 1=half-open, 2=open)",
		},
	)

	EmbeddingsBackfilledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embeddings_backfilled_total",
			Help: "Total number of project embeddings written by the backfill job",
		},
	)
)

// ObserveRecommendation записывает исход и длительность запроса рекомендаций.
func ObserveRecommendation(algorithm, outcome string, started time.Time) {
	RecommendationsTotal.WithLabelValues(algorithm, outcome).Inc()
	RecommendationDuration.WithLabelValues(algorithm).Observe(time.Since(started).Seconds())
}

// ObserveEmbedding записывает исход и длительность вызова модели.
func ObserveEmbedding(operation, outcome string, started time.Time) {
	EmbeddingRequestsTotal.WithLabelValues(operation, outcome).Inc()
	EmbeddingDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
