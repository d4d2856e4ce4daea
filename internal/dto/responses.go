package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
)

type SkillResponse struct {
	SkillID     int64  `json:"skill_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
}

type ProfileResponse struct {
	UserID                uuid.UUID         `json:"user_id"`
	SkillLevel            valueobject.Level `json:"skill_level"`
	Interests             []string          `json:"interests"`
	Bio                   string            `json:"bio"`
	GithubUsername        string            `json:"github_username"`
	PreferredProjectTypes []string          `json:"preferred_project_types"`
	Skills                []SkillResponse   `json:"skills"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// NewProfileResponse переводит профиль в JSON-представление; пустые списки отдаются как [].
func NewProfileResponse(p *entity.UserProfile) ProfileResponse {
	skills := make([]SkillResponse, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, SkillResponse{
			SkillID:     s.SkillID,
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
		})
	}
	return ProfileResponse{
		UserID:                p.UserID,
		SkillLevel:            p.SkillLevel,
		Interests:             orEmpty(p.Interests),
		Bio:                   p.Bio,
		GithubUsername:        p.GithubUsername,
		PreferredProjectTypes: orEmpty(p.PreferredProjectTypes),
		Skills:                skills,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

type ProjectListResponse struct {
	Projects []*entity.Project `json:"projects"`
	Count    int               `json:"count"`
}

type SourcesResponse struct {
	Sources []project.SourceInfo `json:"sources"`
}

type InteractionListResponse struct {
	Interactions []entity.InteractionWithProject `json:"interactions"`
	Count        int                             `json:"count"`
	Limit        int                             `json:"limit"`
	Offset       int                             `json:"offset"`
}

type BookmarksResponse struct {
	Bookmarks []entity.Bookmark `json:"bookmarks"`
	Count     int               `json:"count"`
}

type PendingEmbeddingsResponse struct {
	Projects []entity.PendingEmbedding `json:"projects"`
	Count    int                       `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

type SkillsResponse struct {
	Skills []entity.Skill `json:"skills"`
	Count  int            `json:"count"`
}

type DifficultyStatsResponse struct {
	DifficultyStats []entity.DifficultyStats `json:"difficulty_stats"`
}

type SkillCombinationsResponse struct {
	TopCombinations []entity.SkillCombination `json:"top_combinations"`
}
