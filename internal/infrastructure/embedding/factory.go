package embedding

import (
	"github.com/ignatzorin/projectmatch-backend/internal/config"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/service"
)

// QueryCacheMaxItems ограничивает число закэшированных векторов запросов.
const QueryCacheMaxItems = 10000

// NewFromConfig выбирает провайдера модели и оборачивает его в Resilient.
func NewFromConfig(cfg config.EmbeddingConfig, cache *service.CacheService) *Resilient {
	var inner repository.Embedder
	switch cfg.Provider {
	case config.EmbeddingProviderDeterministic:
		inner = NewDeterministic(cfg.Dimension)
	default:
		inner = NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Dimension, cfg.Timeout)
	}

	return NewResilient(inner, cache, ResilientConfig{
		FailureThreshold: cfg.BreakerFailures,
		OpenTimeout:      cfg.BreakerOpenTimeout,
		QueryCacheTTL:    cfg.QueryCacheTTL,
	})
}
