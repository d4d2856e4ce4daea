package embedding

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/metrics"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

const (
	ReasonMissing = "missing"
	ReasonStale   = "stale"
)

type pendingProject struct {
	entity.PendingEmbedding
	hash string
}

type PendingEmbeddingsUseCase struct {
	projects   repository.ProjectRepository
	embeddings repository.EmbeddingStore
	embedder   repository.Embedder
}

func NewPendingEmbeddingsUseCase(projects repository.ProjectRepository, embeddings repository.EmbeddingStore, embedder repository.Embedder) *PendingEmbeddingsUseCase {
	return &PendingEmbeddingsUseCase{projects: projects, embeddings: embeddings, embedder: embedder}
}

// Execute возвращает проекты без вектора текущей модели или с устаревшим вектором.
func (uc *PendingEmbeddingsUseCase) Execute(ctx context.Context) ([]entity.PendingEmbedding, error) {
	pending, err := findPending(ctx, uc.projects, uc.embeddings, uc.embedder.ModelVersion())
	if err != nil {
		return nil, err
	}
	out := make([]entity.PendingEmbedding, 0, len(pending))
	for _, p := range pending {
		out = append(out, p.PendingEmbedding)
	}
	return out, nil
}

func findPending(ctx context.Context, projects repository.ProjectRepository, store repository.EmbeddingStore, model string) ([]pendingProject, error) {
	catalog, err := projects.ListWithSkills(ctx, entity.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	hashes, err := store.Hashes(ctx, model)
	if err != nil {
		return nil, err
	}

	out := make([]pendingProject, 0)
	for _, p := range catalog {
		text := recommend.ProjectText(p)
		hash := entity.ContentHash(text)
		existing, ok := hashes[p.ID]
		var reason string
		switch {
		case !ok:
			reason = ReasonMissing
		case existing != hash:
			reason = ReasonStale
		default:
			continue
		}
		out = append(out, pendingProject{
			PendingEmbedding: entity.PendingEmbedding{ProjectID: p.ID, Text: text, Reason: reason},
			hash:             hash,
		})
	}
	return out, nil
}

// BackfillReport - итог фоновой генерации векторов.
type BackfillReport struct {
	Pending  int           `json:"pending"`
	Embedded int           `json:"embedded"`
	Batches  int           `json:"batches"`
	Duration time.Duration `json:"duration_ns"`
}

type BackfillEmbeddingsUseCase struct {
	projects    repository.ProjectRepository
	embeddings  repository.EmbeddingStore
	embedder    repository.Embedder
	batchSize   int
	concurrency int
}

func NewBackfillEmbeddingsUseCase(
	projects repository.ProjectRepository,
	embeddings repository.EmbeddingStore,
	embedder repository.Embedder,
	batchSize, concurrency int,
) *BackfillEmbeddingsUseCase {
	if batchSize <= 0 {
		batchSize = 1
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BackfillEmbeddingsUseCase{
		projects:    projects,
		embeddings:  embeddings,
		embedder:    embedder,
		batchSize:   batchSize,
		concurrency: concurrency,
	}
}

// Execute кодирует недостающие векторы пачками, параллельно не больше concurrency пачек.
// Каждая пачка пишется одной транзакцией; после первой ошибки новые пачки не запускаются.
func (uc *BackfillEmbeddingsUseCase) Execute(ctx context.Context) (*BackfillReport, error) {
	started := time.Now()
	model := uc.embedder.ModelVersion()

	pending, err := findPending(ctx, uc.projects, uc.embeddings, model)
	if err != nil {
		return nil, err
	}
	report := &BackfillReport{Pending: len(pending)}
	if len(pending) == 0 {
		report.Duration = time.Since(started)
		return report, nil
	}

	var embedded atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for start := 0; start < len(pending); start += uc.batchSize {
		batch := pending[start:min(start+uc.batchSize, len(pending))]
		report.Batches++
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := uc.embedBatch(gctx, model, batch)
			if err != nil {
				return err
			}
			embedded.Add(int64(n))
			metrics.EmbeddingsBackfilledTotal.Add(float64(n))
			return nil
		})
	}

	err = g.Wait()
	report.Embedded = int(embedded.Load())
	report.Duration = time.Since(started)

	fields := logrus.Fields{
		"model":    model,
		"pending":  report.Pending,
		"embedded": report.Embedded,
		"batches":  report.Batches,
		"took_ms":  report.Duration.Milliseconds(),
	}
	if err != nil {
		logger.L().WithFields(fields).WithError(err).Error("Генерация векторов прервана")
		return report, err
	}
	logger.L().WithFields(fields).Info("Генерация векторов завершена")
	return report, nil
}

func (uc *BackfillEmbeddingsUseCase) embedBatch(ctx context.Context, model string, batch []pendingProject) (int, error) {
	texts := make([]string, 0, len(batch))
	for _, p := range batch {
		texts = append(texts, p.Text)
	}
	vectors, err := uc.embedder.EncodeBatch(ctx, texts)
	if err != nil {
		return 0, upstream(err)
	}

	items := make([]*entity.ProjectEmbedding, 0, len(batch))
	for i, p := range batch {
		items = append(items, &entity.ProjectEmbedding{
			ProjectID:    p.ProjectID,
			Vector:       vectors[i],
			ModelVersion: model,
			ContentHash:  p.hash,
		})
	}
	if err := uc.embeddings.PutBatch(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
