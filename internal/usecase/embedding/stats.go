package embedding

import (
	"context"
	"math"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

// SystemStats - сводка по каталогу и покрытию векторами.
type SystemStats struct {
	TotalProjects     int                        `json:"total_projects"`
	EmbeddedProjects  int                        `json:"projects_with_embeddings"`
	CoveragePercent   float64                    `json:"embedding_coverage"`
	ByDifficulty      map[valueobject.Level]int  `json:"projects_by_difficulty"`
	BySource          map[valueobject.Source]int `json:"projects_by_source"`
	TotalUserProfiles int                        `json:"total_user_profiles"`
	ModelVersion      string                     `json:"embedding_model"`
	Dimension         int                        `json:"embedding_dimension"`
}

type SystemStatsUseCase struct {
	projects   repository.ProjectRepository
	profiles   repository.ProfileRepository
	embeddings repository.EmbeddingStore
	embedder   repository.Embedder
}

func NewSystemStatsUseCase(
	projects repository.ProjectRepository,
	profiles repository.ProfileRepository,
	embeddings repository.EmbeddingStore,
	embedder repository.Embedder,
) *SystemStatsUseCase {
	return &SystemStatsUseCase{projects: projects, profiles: profiles, embeddings: embeddings, embedder: embedder}
}

func (uc *SystemStatsUseCase) Execute(ctx context.Context) (*SystemStats, error) {
	total, err := uc.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	embedded, err := uc.embeddings.Count(ctx, uc.embedder.ModelVersion())
	if err != nil {
		return nil, err
	}
	byDifficulty, err := uc.projects.CountByDifficulty(ctx)
	if err != nil {
		return nil, err
	}
	bySource, err := uc.projects.CountBySource(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := uc.profiles.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SystemStats{
		TotalProjects:     total,
		EmbeddedProjects:  embedded,
		ByDifficulty:      byDifficulty,
		BySource:          bySource,
		TotalUserProfiles: profiles,
		ModelVersion:      uc.embedder.ModelVersion(),
		Dimension:         uc.embedder.Dimension(),
	}
	if total > 0 {
		stats.CoveragePercent = math.Round(float64(embedded)/float64(total)*1000) / 10
	}
	return stats, nil
}
