package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/dto"
	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/profile"
	"github.com/ignatzorin/projectmatch-backend/internal/validation"
)

type ProfileHandler struct {
	upsertUC *profile.UpsertProfileUseCase
	getUC    *profile.GetProfileUseCase
}

func NewProfileHandler(upsertUC *profile.UpsertProfileUseCase, getUC *profile.GetProfileUseCase) *ProfileHandler {
	return &ProfileHandler{upsertUC: upsertUC, getUC: getUC}
}

// Upsert обрабатывает POST /api/users/:user_id/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		fail(c, err)
		return
	}

	var req dto.UpsertProfileRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	if err := validation.ValidateProfile(req.Bio, req.GithubUsername, req.Interests); err != nil {
		fail(c, err)
		return
	}

	skills := make([]profile.SkillInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, profile.SkillInput{SkillID: s.SkillID, Proficiency: s.Proficiency})
	}

	p, err := h.upsertUC.Execute(c.Request.Context(), profile.UpsertProfileInput{
		UserID:                userID,
		SkillLevel:            req.SkillLevel,
		Interests:             req.Interests,
		Bio:                   req.Bio,
		GithubUsername:        req.GithubUsername,
		PreferredProjectTypes: req.PreferredProjectTypes,
		Skills:                skills,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.NewProfileResponse(p))
}

// Get обрабатывает GET /api/users/:user_id/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		fail(c, err)
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.NewProfileResponse(p))
}
