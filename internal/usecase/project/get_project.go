package project

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

// ProjectDetail - проект с навыками и, если известен пользователь, разбором соответствия.
type ProjectDetail struct {
	*entity.Project
	MatchAnalysis *entity.MatchAnalysis `json:"match_analysis,omitempty"`
}

type GetProjectUseCase struct {
	projects   repository.ProjectRepository
	profiles   repository.ProfileRepository
	embeddings repository.EmbeddingStore
	embedder   repository.Embedder
}

func NewGetProjectUseCase(
	projects repository.ProjectRepository,
	profiles repository.ProfileRepository,
	embeddings repository.EmbeddingStore,
	embedder repository.Embedder,
) *GetProjectUseCase {
	return &GetProjectUseCase{projects: projects, profiles: profiles, embeddings: embeddings, embedder: embedder}
}

// Execute возвращает проект. Разбор соответствия строится, только когда
// передан userID и у пользователя есть профиль; без вектора проекта близость равна 0.
func (uc *GetProjectUseCase) Execute(ctx context.Context, projectID int64, userID *uuid.UUID) (*ProjectDetail, error) {
	p, err := uc.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	detail := &ProjectDetail{Project: p}
	if userID == nil {
		return detail, nil
	}

	profile, err := uc.profiles.FindByUserID(ctx, *userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return detail, nil
		}
		return nil, err
	}

	similarity, err := uc.similarity(ctx, profile, projectID)
	if err != nil {
		return nil, err
	}
	score := recommend.HybridScore(profile, p, similarity)
	detail.MatchAnalysis = &entity.MatchAnalysis{
		Score:              entity.Percent(score.Value),
		MatchingSkills:     score.Matching,
		MissingSkills:      score.Missing,
		Reason:             score.Reason,
		SemanticSimilarity: entity.Percent(math.Max(0, similarity)),
	}
	return detail, nil
}

func (uc *GetProjectUseCase) similarity(ctx context.Context, profile *entity.UserProfile, projectID int64) (float64, error) {
	emb, err := uc.embeddings.Get(ctx, projectID, uc.embedder.ModelVersion())
	if err != nil {
		return 0, err
	}
	if emb == nil {
		return 0, nil
	}
	query, err := uc.embedder.Encode(ctx, recommend.UserQueryText(profile))
	if err != nil {
		return 0, upstream(err)
	}
	return recommend.Cosine(query, emb.Vector), nil
}
