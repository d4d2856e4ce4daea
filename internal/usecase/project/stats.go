package project

import (
	"context"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

const (
	DefaultCombinationsLimit = 10
	MaxCombinationsLimit     = 100
)

type DifficultyStatsUseCase struct {
	projects repository.ProjectRepository
}

func NewDifficultyStatsUseCase(projects repository.ProjectRepository) *DifficultyStatsUseCase {
	return &DifficultyStatsUseCase{projects: projects}
}

func (uc *DifficultyStatsUseCase) Execute(ctx context.Context) ([]entity.DifficultyStats, error) {
	return uc.projects.DifficultyStats(ctx)
}

// SkillCombinationsUseCase - самые частые пары обязательных навыков в каталоге.
type SkillCombinationsUseCase struct {
	projects repository.ProjectRepository
}

func NewSkillCombinationsUseCase(projects repository.ProjectRepository) *SkillCombinationsUseCase {
	return &SkillCombinationsUseCase{projects: projects}
}

func (uc *SkillCombinationsUseCase) Execute(ctx context.Context, limit int) ([]entity.SkillCombination, error) {
	if limit == 0 {
		limit = DefaultCombinationsLimit
	}
	if limit < 1 || limit > MaxCombinationsLimit {
		return nil, apperror.Validation("limit", "допустимый диапазон от 1 до 100")
	}
	return uc.projects.SkillCombinations(ctx, limit)
}
