package repository

import (
	"context"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

type ProjectRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Project, error)
	// ListWithSkills возвращает весь каталог (с учётом фильтра) вместе с навыками.
	ListWithSkills(ctx context.Context, filter entity.ProjectFilter) ([]*entity.Project, error)
	// SkillsByProjectIDs загружает навыки сразу для набора проектов.
	SkillsByProjectIDs(ctx context.Context, ids []int64) (map[int64][]entity.ProjectSkill, error)
	SearchKeyword(ctx context.Context, query string, filter entity.ProjectFilter, limit int) ([]*entity.Project, error)
	ListBySource(ctx context.Context, filter entity.ProjectFilter, limit int) ([]*entity.Project, error)
	// CreateWithEmbedding вставляет проект, его навыки и вектор в одной транзакции.
	CreateWithEmbedding(ctx context.Context, project *entity.Project, skillIDs []int64, embedding *entity.ProjectEmbedding) error
	CountBySource(ctx context.Context) (map[valueobject.Source]int, error)
	CountByDifficulty(ctx context.Context) (map[valueobject.Level]int, error)
	Count(ctx context.Context) (int, error)
	// DifficultyStats возвращает агрегаты от простого уровня к сложному.
	DifficultyStats(ctx context.Context) ([]entity.DifficultyStats, error)
	// SkillCombinations возвращает самые частые пары обязательных навыков.
	SkillCombinations(ctx context.Context, limit int) ([]entity.SkillCombination, error)
}
