package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/dto"
	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/embedding"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
	"github.com/ignatzorin/projectmatch-backend/internal/validation"
)

type ProjectHandler struct {
	searchUC     *project.SearchProjectsUseCase
	getUC        *project.GetProjectUseCase
	createUC     *project.CreateProjectUseCase
	ensureUC     *embedding.EnsureEmbeddingUseCase
	regenerateUC *embedding.RegenerateEmbeddingUseCase
}

func NewProjectHandler(
	searchUC *project.SearchProjectsUseCase,
	getUC *project.GetProjectUseCase,
	createUC *project.CreateProjectUseCase,
	ensureUC *embedding.EnsureEmbeddingUseCase,
	regenerateUC *embedding.RegenerateEmbeddingUseCase,
) *ProjectHandler {
	return &ProjectHandler{
		searchUC:     searchUC,
		getUC:        getUC,
		createUC:     createUC,
		ensureUC:     ensureUC,
		regenerateUC: regenerateUC,
	}
}

// Search обрабатывает GET /api/projects/search.
func (h *ProjectHandler) Search(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit")
	if err != nil {
		fail(c, err)
		return
	}
	useSemantic, err := parseBoolQuery(c, "use_semantic", true)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.searchUC.Execute(c.Request.Context(), project.SearchProjectsInput{
		Query:       c.Query("q"),
		Difficulty:  c.Query("difficulty"),
		Source:      c.Query("source"),
		UseSemantic: useSemantic,
		Limit:       limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, result)
}

// Get обрабатывает GET /api/projects/:id. С ?user_id= добавляется разбор соответствия.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	userID, err := parseOptionalUUIDQuery(c, "user_id")
	if err != nil {
		fail(c, err)
		return
	}

	detail, err := h.getUC.Execute(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, detail)
}

// Create обрабатывает POST /api/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	if err := validation.ValidateProject(req.Title, req.Description, req.Language, req.RepoURL, req.Topics); err != nil {
		fail(c, err)
		return
	}

	source := req.Source
	if source == "" {
		source = string(valueobject.SourceCurated)
	}

	p, err := h.createUC.Execute(c.Request.Context(), project.CreateProjectInput{
		Title:          req.Title,
		Description:    req.Description,
		RepoURL:        req.RepoURL,
		Difficulty:     req.Difficulty,
		Topics:         req.Topics,
		EstimatedHours: req.EstimatedHours,
		Source:         source,
		Stars:          req.Stars,
		Language:       req.Language,
		SkillIDs:       req.SkillIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, p)
}

// EnsureEmbedding обрабатывает POST /api/projects/:id/embedding.
func (h *ProjectHandler) EnsureEmbedding(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	result, err := h.ensureUC.Execute(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, result)
}

// RegenerateEmbedding обрабатывает PUT /api/projects/:id/embedding.
func (h *ProjectHandler) RegenerateEmbedding(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	result, err := h.regenerateUC.Execute(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, result)
}
