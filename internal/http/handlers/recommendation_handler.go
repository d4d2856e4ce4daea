package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/recommendation"
)

type RecommendationHandler struct {
	getRecommendationsUC *recommendation.GetRecommendationsUseCase
}

func NewRecommendationHandler(getRecommendationsUC *recommendation.GetRecommendationsUseCase) *RecommendationHandler {
	return &RecommendationHandler{getRecommendationsUC: getRecommendationsUC}
}

// GetRecommendations обрабатывает GET /api/recommendations/:user_id.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		fail(c, err)
		return
	}
	limit, err := parseIntQuery(c, "limit")
	if err != nil {
		fail(c, err)
		return
	}

	set, err := h.getRecommendationsUC.Execute(c.Request.Context(), recommendation.GetRecommendationsInput{
		UserID:       userID,
		Limit:        limit,
		Algorithm:    c.Query("algorithm"),
		SourceFilter: c.Query("source_filter"),
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, set)
}
