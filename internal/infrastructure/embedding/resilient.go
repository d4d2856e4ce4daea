package embedding

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/metrics"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/service"
)

const (
	operationEncode      = "encode"
	operationEncodeBatch = "encode_batch"

	breakerName = "embedding-model"
)

// ResilientConfig - параметры обёртки над моделью.
type ResilientConfig struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
	QueryCacheTTL    time.Duration
}

// Resilient оборачивает модель: circuit breaker по подряд идущим сбоям,
// кэш векторов пользовательских запросов и метрики. Любой сбой модели
// превращается в ошибку с кодом UPSTREAM_UNAVAILABLE.
type Resilient struct {
	inner    repository.Embedder
	breaker  *gobreaker.CircuitBreaker[[][]float32]
	cache    *service.CacheService
	cacheTTL time.Duration
}

// NewResilient создаёт обёртку. cache может быть nil, тогда запросы не кэшируются.
func NewResilient(inner repository.Embedder, cache *service.CacheService, cfg ResilientConfig) *Resilient {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	metrics.EmbeddingBreakerState.Set(stateToFloat(gobreaker.StateClosed))

	breaker := gobreaker.NewCircuitBreaker[[][]float32](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Отмена запроса клиентом - не сбой модели.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Component("embedder").WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Смена состояния circuit breaker модели эмбеддингов")
			metrics.EmbeddingBreakerState.Set(stateToFloat(to))
		},
	})

	return &Resilient{
		inner:    inner,
		breaker:  breaker,
		cache:    cache,
		cacheTTL: cfg.QueryCacheTTL,
	}
}

func (r *Resilient) ModelVersion() string { return r.inner.ModelVersion() }

func (r *Resilient) Dimension() int { return r.inner.Dimension() }

// Encode кодирует один текст (обычно запрос пользователя) с использованием кэша.
func (r *Resilient) Encode(ctx context.Context, text string) ([]float32, error) {
	if r.cache == nil || r.cacheTTL <= 0 {
		vectors, err := r.call(ctx, operationEncode, []string{text})
		if err != nil {
			return nil, err
		}
		return vectors[0], nil
	}

	key := service.QueryVectorCacheKey(r.inner.ModelVersion(), text)
	value, hit, err := r.cache.GetOrSet(ctx, key, r.cacheTTL, func(ctx context.Context) (interface{}, error) {
		vectors, err := r.call(ctx, operationEncode, []string{text})
		if err != nil {
			return nil, err
		}
		return vectors[0], nil
	})
	if err != nil {
		return nil, err
	}
	if hit {
		metrics.EmbeddingQueryCacheHits.Inc()
	}
	return value.([]float32), nil
}

// EncodeBatch не кэшируется: пакетные вызовы идут от фоновой генерации каталога.
func (r *Resilient) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	return r.call(ctx, operationEncodeBatch, texts)
}

func (r *Resilient) call(ctx context.Context, operation string, texts []string) ([][]float32, error) {
	started := time.Now()
	vectors, err := r.breaker.Execute(func() ([][]float32, error) {
		out, err := r.inner.EncodeBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(out) != len(texts) {
			return nil, errors.New("embedding: число векторов не совпадает с числом текстов")
		}
		return out, nil
	})
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = metrics.OutcomeRejected
		}
		metrics.ObserveEmbedding(operation, outcome, started)
		logger.Component("embedder").WithFields(logrus.Fields{
			"operation": operation,
			"texts":     len(texts),
			"outcome":   outcome,
		}).WithError(err).Error("Модель эмбеддингов недоступна")
		return nil, apperror.Upstream(err, apperror.ErrEmbedderUnavailable.Message)
	}

	metrics.ObserveEmbedding(operation, metrics.OutcomeSuccess, started)
	return vectors, nil
}

// State возвращает текущее состояние breaker (для /health).
func (r *Resilient) State() gobreaker.State {
	return r.breaker.State()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
