package project

import (
	"context"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

type SourceInfo struct {
	Source      valueobject.Source `json:"source"`
	Count       int                `json:"count"`
	Description string             `json:"description"`
}

type ListSourcesUseCase struct {
	projects repository.ProjectRepository
}

func NewListSourcesUseCase(projects repository.ProjectRepository) *ListSourcesUseCase {
	return &ListSourcesUseCase{projects: projects}
}

// Execute перечисляет все известные источники, включая пустые.
func (uc *ListSourcesUseCase) Execute(ctx context.Context) ([]SourceInfo, error) {
	counts, err := uc.projects.CountBySource(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SourceInfo, 0, len(valueobject.AllSources))
	for _, s := range valueobject.AllSources {
		out = append(out, SourceInfo{Source: s, Count: counts[s], Description: s.Description()})
	}
	return out, nil
}

type ListBySourceInput struct {
	Source     string
	Difficulty string
	Topic      string
	Limit      int
}

type ListBySourceUseCase struct {
	projects repository.ProjectRepository
}

func NewListBySourceUseCase(projects repository.ProjectRepository) *ListBySourceUseCase {
	return &ListBySourceUseCase{projects: projects}
}

// Execute возвращает проекты одного источника, самые популярные первыми.
func (uc *ListBySourceUseCase) Execute(ctx context.Context, input ListBySourceInput) ([]*entity.Project, error) {
	source, err := valueobject.NewSource(input.Source)
	if err != nil {
		return nil, err
	}
	limit, err := normalizeLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)
	if err != nil {
		return nil, err
	}
	level, err := valueobject.ParseOptionalLevel(input.Difficulty)
	if err != nil {
		return nil, err
	}

	filter := entity.ProjectFilter{
		Difficulty: level,
		Sources:    []valueobject.Source{source},
		Topic:      input.Topic,
	}
	return uc.projects.ListBySource(ctx, filter, limit)
}
