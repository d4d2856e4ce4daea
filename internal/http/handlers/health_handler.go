package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker/v2"
)

// Pinger - проверка доступности базы (*sqlx.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// BreakerStater отдаёт состояние выключателя вокруг модели эмбеддингов.
type BreakerStater interface {
	State() gobreaker.State
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db      Pinger
	breaker BreakerStater
}

// NewHealthHandler создаёт health handler. breaker может быть nil.
func NewHealthHandler(db Pinger, breaker BreakerStater) *HealthHandler {
	return &HealthHandler{db: db, breaker: breaker}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health. Недоступная база даёт 503,
// разомкнутый выключатель модели только помечает сервис как degraded.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	if h.breaker != nil {
		state := h.breaker.State()
		checks["embedder"] = state.String()
		if state == gobreaker.StateOpen && status == "healthy" {
			status = "degraded"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
