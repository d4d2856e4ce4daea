package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/dto"
	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/embedding"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/interaction"
)

// AdminHandler - служебные операции над каталогом и векторами.
type AdminHandler struct {
	statsUC    *embedding.SystemStatsUseCase
	pendingUC  *embedding.PendingEmbeddingsUseCase
	backfillUC *embedding.BackfillEmbeddingsUseCase
	cleanupUC  *interaction.CleanupViewedUseCase
}

func NewAdminHandler(
	statsUC *embedding.SystemStatsUseCase,
	pendingUC *embedding.PendingEmbeddingsUseCase,
	backfillUC *embedding.BackfillEmbeddingsUseCase,
	cleanupUC *interaction.CleanupViewedUseCase,
) *AdminHandler {
	return &AdminHandler{statsUC: statsUC, pendingUC: pendingUC, backfillUC: backfillUC, cleanupUC: cleanupUC}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *AdminHandler) PendingEmbeddings(c *gin.Context) {
	pending, err := h.pendingUC.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.PendingEmbeddingsResponse{Projects: pending, Count: len(pending)})
}

// Backfill синхронно досчитывает недостающие и устаревшие векторы.
func (h *AdminHandler) Backfill(c *gin.Context) {
	report, err := h.backfillUC.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, report)
}

// CleanupInteractions обрабатывает POST /api/admin/cleanup-interactions?days_threshold=.
func (h *AdminHandler) CleanupInteractions(c *gin.Context) {
	days, err := parseIntQuery(c, "days_threshold")
	if err != nil {
		fail(c, err)
		return
	}
	report, err := h.cleanupUC.Execute(c.Request.Context(), days)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, report)
}
