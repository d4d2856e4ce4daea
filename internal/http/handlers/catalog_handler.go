package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/dto"
	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
)

type CatalogHandler struct {
	listSkillsUC *project.ListSkillsUseCase
	seedUC       *project.SeedCatalogUseCase
}

func NewCatalogHandler(listSkillsUC *project.ListSkillsUseCase, seedUC *project.SeedCatalogUseCase) *CatalogHandler {
	return &CatalogHandler{listSkillsUC: listSkillsUC, seedUC: seedUC}
}

// Skills обрабатывает GET /api/skills?category=.
func (h *CatalogHandler) Skills(c *gin.Context) {
	skills, err := h.listSkillsUC.Execute(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.SkillsResponse{Skills: skills, Count: len(skills)})
}

// Seed обрабатывает POST /api/seed. Маршрут регистрируется только в development.
func (h *CatalogHandler) Seed(c *gin.Context) {
	report, err := h.seedUC.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, report)
}
