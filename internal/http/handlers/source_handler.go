package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/dto"
	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
)

type SourceHandler struct {
	listSourcesUC  *project.ListSourcesUseCase
	listBySourceUC *project.ListBySourceUseCase
}

func NewSourceHandler(listSourcesUC *project.ListSourcesUseCase, listBySourceUC *project.ListBySourceUseCase) *SourceHandler {
	return &SourceHandler{listSourcesUC: listSourcesUC, listBySourceUC: listBySourceUC}
}

// List обрабатывает GET /api/sources.
func (h *SourceHandler) List(c *gin.Context) {
	sources, err := h.listSourcesUC.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.SourcesResponse{Sources: sources})
}

// Projects обрабатывает GET /api/sources/:source/projects?difficulty=&topic=&limit=.
func (h *SourceHandler) Projects(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit")
	if err != nil {
		fail(c, err)
		return
	}

	projects, err := h.listBySourceUC.Execute(c.Request.Context(), project.ListBySourceInput{
		Source:     c.Param("source"),
		Difficulty: c.Query("difficulty"),
		Topic:      c.Query("topic"),
		Limit:      limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.ProjectListResponse{Projects: projects, Count: len(projects)})
}
