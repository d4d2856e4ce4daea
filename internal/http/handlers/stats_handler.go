package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/dto"
	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
)

// StatsHandler - агрегаты по каталогу.
type StatsHandler struct {
	difficultyUC   *project.DifficultyStatsUseCase
	combinationsUC *project.SkillCombinationsUseCase
}

func NewStatsHandler(difficultyUC *project.DifficultyStatsUseCase, combinationsUC *project.SkillCombinationsUseCase) *StatsHandler {
	return &StatsHandler{difficultyUC: difficultyUC, combinationsUC: combinationsUC}
}

// ByDifficulty обрабатывает GET /api/stats/projects-by-difficulty.
func (h *StatsHandler) ByDifficulty(c *gin.Context) {
	stats, err := h.difficultyUC.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if stats == nil {
		stats = []entity.DifficultyStats{}
	}
	response.OK(c, dto.DifficultyStatsResponse{DifficultyStats: stats})
}

// SkillCombinations обрабатывает GET /api/stats/skill-combinations?limit=.
func (h *StatsHandler) SkillCombinations(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit")
	if err != nil {
		fail(c, err)
		return
	}
	combos, err := h.combinationsUC.Execute(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	if combos == nil {
		combos = []entity.SkillCombination{}
	}
	response.OK(c, dto.SkillCombinationsResponse{TopCombinations: combos})
}
