package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/dto"
	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/interaction"
)

type InteractionHandler struct {
	logUC       *interaction.LogInteractionUseCase
	listUC      *interaction.ListInteractionsUseCase
	updateUC    *interaction.UpdateInteractionUseCase
	deleteUC    *interaction.DeleteInteractionUseCase
	bookmarksUC *interaction.ListBookmarksUseCase
	statsUC     *interaction.InteractionStatsUseCase
	summaryUC   *interaction.ActivitySummaryUseCase
}

func NewInteractionHandler(
	logUC *interaction.LogInteractionUseCase,
	listUC *interaction.ListInteractionsUseCase,
	updateUC *interaction.UpdateInteractionUseCase,
	deleteUC *interaction.DeleteInteractionUseCase,
	bookmarksUC *interaction.ListBookmarksUseCase,
	statsUC *interaction.InteractionStatsUseCase,
	summaryUC *interaction.ActivitySummaryUseCase,
) *InteractionHandler {
	return &InteractionHandler{
		logUC:       logUC,
		listUC:      listUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		bookmarksUC: bookmarksUC,
		statsUC:     statsUC,
		summaryUC:   summaryUC,
	}
}

// Create обрабатывает POST /api/interactions.
func (h *InteractionHandler) Create(c *gin.Context) {
	var req dto.CreateInteractionRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		fail(c, apperror.Validation("user_id", "должен быть валидным UUID"))
		return
	}

	in, err := h.logUC.Execute(c.Request.Context(), interaction.LogInteractionInput{
		UserID:          userID,
		ProjectID:       req.ProjectID,
		InteractionType: req.InteractionType,
		Rating:          req.Rating,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, in)
}

// List обрабатывает GET /api/interactions/:user_id?interaction_type=&limit=&offset=.
func (h *InteractionHandler) List(c *gin.Context) {
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
	offset, err := parseIntQuery(c, "offset")
	if err != nil {
		fail(c, err)
		return
	}

	items, err := h.listUC.Execute(c.Request.Context(), interaction.ListInteractionsInput{
		UserID:          userID,
		InteractionType: c.Query("interaction_type"),
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []entity.InteractionWithProject{}
	}
	if limit == 0 {
		limit = interaction.DefaultListLimit
	}
	response.OK(c, dto.InteractionListResponse{
		Interactions: items,
		Count:        len(items),
		Limit:        limit,
		Offset:       offset,
	})
}

// Update обрабатывает PUT /api/interactions/by-id/:id.
func (h *InteractionHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var req dto.UpdateInteractionRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	in, err := h.updateUC.Execute(c.Request.Context(), interaction.UpdateInteractionInput{
		ID:              id,
		InteractionType: req.InteractionType,
		Rating:          req.Rating,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, in)
}

// Delete обрабатывает DELETE /api/interactions/by-id/:id.
func (h *InteractionHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.MessageResponse{Message: "взаимодействие удалено"})
}

// Bookmarks обрабатывает GET /api/interactions/:user_id/bookmarks.
func (h *InteractionHandler) Bookmarks(c *gin.Context) {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		fail(c, err)
		return
	}
	bookmarks, err := h.bookmarksUC.Execute(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	if bookmarks == nil {
		bookmarks = []entity.Bookmark{}
	}
	response.OK(c, dto.BookmarksResponse{Bookmarks: bookmarks, Count: len(bookmarks)})
}

// Stats обрабатывает GET /api/interactions/:user_id/stats.
func (h *InteractionHandler) Stats(c *gin.Context) {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		fail(c, err)
		return
	}
	stats, err := h.statsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, stats)
}

// Summary обрабатывает GET /api/users/:user_id/activity-summary.
func (h *InteractionHandler) Summary(c *gin.Context) {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		fail(c, err)
		return
	}
	summary, err := h.summaryUC.Execute(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, summary)
}
