package embedding

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

const (
	StatusCreated     = "created"
	StatusUnchanged   = "unchanged"
	StatusRegenerated = "regenerated"
)

// Result описывает, что произошло с вектором проекта.
type Result struct {
	ProjectID    int64  `json:"project_id"`
	ModelVersion string `json:"model_version"`
	Dimension    int    `json:"dimension"`
	Status       string `json:"status"`
}

type EnsureEmbeddingUseCase struct {
	projects   repository.ProjectRepository
	embeddings repository.EmbeddingStore
	embedder   repository.Embedder
}

func NewEnsureEmbeddingUseCase(projects repository.ProjectRepository, embeddings repository.EmbeddingStore, embedder repository.Embedder) *EnsureEmbeddingUseCase {
	return &EnsureEmbeddingUseCase{projects: projects, embeddings: embeddings, embedder: embedder}
}

// Execute создаёт вектор, если его нет или он устарел (другая модель или изменился текст проекта).
func (uc *EnsureEmbeddingUseCase) Execute(ctx context.Context, projectID int64) (*Result, error) {
	p, err := uc.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	text := recommend.ProjectText(p)
	model := uc.embedder.ModelVersion()

	existing, err := uc.embeddings.Get(ctx, projectID, model)
	if err != nil {
		return nil, err
	}
	if !existing.IsStale(model, entity.ContentHash(text)) {
		return &Result{ProjectID: projectID, ModelVersion: model, Dimension: len(existing.Vector), Status: StatusUnchanged}, nil
	}

	status := StatusCreated
	if existing != nil {
		status = StatusRegenerated
	}
	emb, err := embedProject(ctx, uc.embedder, uc.embeddings, projectID, text)
	if err != nil {
		return nil, err
	}
	return &Result{ProjectID: projectID, ModelVersion: model, Dimension: len(emb.Vector), Status: status}, nil
}

type RegenerateEmbeddingUseCase struct {
	projects   repository.ProjectRepository
	embeddings repository.EmbeddingStore
	embedder   repository.Embedder
}

func NewRegenerateEmbeddingUseCase(projects repository.ProjectRepository, embeddings repository.EmbeddingStore, embedder repository.Embedder) *RegenerateEmbeddingUseCase {
	return &RegenerateEmbeddingUseCase{projects: projects, embeddings: embeddings, embedder: embedder}
}

// Execute пересчитывает вектор безусловно.
func (uc *RegenerateEmbeddingUseCase) Execute(ctx context.Context, projectID int64) (*Result, error) {
	p, err := uc.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	emb, err := embedProject(ctx, uc.embedder, uc.embeddings, projectID, recommend.ProjectText(p))
	if err != nil {
		return nil, err
	}
	return &Result{
		ProjectID:    projectID,
		ModelVersion: emb.ModelVersion,
		Dimension:    len(emb.Vector),
		Status:       StatusRegenerated,
	}, nil
}

func embedProject(ctx context.Context, embedder repository.Embedder, store repository.EmbeddingStore, projectID int64, text string) (*entity.ProjectEmbedding, error) {
	vectors, err := embedder.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, upstream(err)
	}
	emb := &entity.ProjectEmbedding{
		ProjectID:    projectID,
		Vector:       vectors[0],
		ModelVersion: embedder.ModelVersion(),
		ContentHash:  entity.ContentHash(text),
	}
	if err := store.Put(ctx, emb); err != nil {
		return nil, err
	}
	logger.L().WithFields(logrus.Fields{
		"project_id": projectID,
		"model":      emb.ModelVersion,
	}).Info("Вектор проекта сохранён")
	return emb, nil
}

func upstream(err error) error {
	if apperror.IsUpstreamUnavailable(err) {
		return err
	}
	return apperror.Upstream(err, apperror.ErrEmbedderUnavailable.Message)
}
