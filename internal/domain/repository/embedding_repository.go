package repository

import (
	"context"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
)

// EmbeddingStore - хранилище векторов проектов.
type EmbeddingStore interface {
	// Get возвращает nil, nil, если вектора для пары (проект, модель) нет.
	Get(ctx context.Context, projectID int64, modelVersion string) (*entity.ProjectEmbedding, error)
	// Put записывает вектор целиком (upsert по проекту и версии модели).
	Put(ctx context.Context, embedding *entity.ProjectEmbedding) error
	PutBatch(ctx context.Context, embeddings []*entity.ProjectEmbedding) error
	// Scan возвращает проекты с векторами указанной версии модели; фильтр применяется на стороне хранилища.
	Scan(ctx context.Context, modelVersion string, filter entity.ProjectFilter) ([]entity.EmbeddedProject, error)
	// Hashes возвращает отпечатки содержимого для всех векторов версии модели.
	Hashes(ctx context.Context, modelVersion string) (map[int64]string, error)
	Count(ctx context.Context, modelVersion string) (int, error)
}

// Embedder - модель, превращающая текст в нормированный вектор фиксированной размерности.
type Embedder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	// EncodeBatch возвращает по вектору на каждый текст или ошибку; частичных результатов нет.
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
	ModelVersion() string
	Dimension() int
}
