package project

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

type CreateProjectInput struct {
	Title          string
	Description    string
	RepoURL        *string
	Difficulty     string
	Topics         []string
	EstimatedHours int
	Source         string
	Stars          int
	Language       string
	SkillIDs       []int64
}

type CreateProjectUseCase struct {
	projects repository.ProjectRepository
	embedder repository.Embedder
}

func NewCreateProjectUseCase(projects repository.ProjectRepository, embedder repository.Embedder) *CreateProjectUseCase {
	return &CreateProjectUseCase{projects: projects, embedder: embedder}
}

// Execute сначала получает вектор, затем одной транзакцией пишет проект,
// навыки и вектор. Если модель недоступна, проект не создаётся.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*entity.Project, error) {
	difficulty, err := valueobject.NewLevel(input.Difficulty)
	if err != nil {
		return nil, apperror.Validation("difficulty", "допустимые значения: beginner, intermediate, advanced")
	}
	source, err := valueobject.NewSource(input.Source)
	if err != nil {
		return nil, err
	}

	p := &entity.Project{
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		RepoURL:        input.RepoURL,
		Difficulty:     difficulty,
		Topics:         input.Topics,
		EstimatedHours: input.EstimatedHours,
		Source:         source,
		Stars:          input.Stars,
		Language:       input.Language,
	}
	if p.Topics == nil {
		p.Topics = []string{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	skillIDs, err := uniqueSkillIDs(input.SkillIDs)
	if err != nil {
		return nil, err
	}

	text := recommend.ProjectText(p)
	vectors, err := uc.embedder.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, upstream(err)
	}
	emb := &entity.ProjectEmbedding{
		Vector:       vectors[0],
		ModelVersion: uc.embedder.ModelVersion(),
		ContentHash:  entity.ContentHash(text),
	}

	if err := uc.projects.CreateWithEmbedding(ctx, p, skillIDs, emb); err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"project_id": p.ID,
		"source":     p.Source,
		"skills":     len(skillIDs),
	}).Info("Проект добавлен в каталог")
	return p, nil
}

func uniqueSkillIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, apperror.Validation("skill_ids", "идентификатор навыка должен быть положительным")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
