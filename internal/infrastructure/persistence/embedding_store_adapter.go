package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/repository/common"
)

// EmbeddingStoreAdapter хранит векторы проектов в колонке vector(384) (pgvector).
type EmbeddingStoreAdapter struct {
	db *sqlx.DB
}

func NewEmbeddingStoreAdapter(db *sqlx.DB) *EmbeddingStoreAdapter {
	return &EmbeddingStoreAdapter{db: db}
}

type embeddingRow struct {
	ProjectID    int64           `db:"project_id"`
	ModelVersion string          `db:"model_version"`
	Embedding    pgvector.Vector `db:"embedding"`
	ContentHash  string          `db:"content_hash"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type embeddedProjectRow struct {
	projectRow
	Embedding pgvector.Vector `db:"embedding"`
}

func (r *EmbeddingStoreAdapter) Get(ctx context.Context, projectID int64, modelVersion string) (*entity.ProjectEmbedding, error) {
	var row embeddingRow
	query := `
		SELECT project_id, model_version, embedding, content_hash, created_at, updated_at
		FROM project_embeddings
		WHERE project_id = $1 AND model_version = $2
	`
	if err := r.db.GetContext(ctx, &row, query, projectID, modelVersion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить эмбеддинг проекта")
	}

	return &entity.ProjectEmbedding{
		ProjectID:    row.ProjectID,
		Vector:       row.Embedding.Slice(),
		ModelVersion: row.ModelVersion,
		ContentHash:  row.ContentHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (r *EmbeddingStoreAdapter) Put(ctx context.Context, emb *entity.ProjectEmbedding) error {
	return upsertEmbedding(ctx, r.db, emb)
}

// PutBatch сохраняет пачку векторов в одной транзакции.
func (r *EmbeddingStoreAdapter) PutBatch(ctx context.Context, embeddings []*entity.ProjectEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, emb := range embeddings {
			if err := upsertEmbedding(ctx, tx, emb); err != nil {
				return err
			}
		}
		return nil
	})
}

// Scan отдаёт проекты с векторами текущей модели. Фильтр применяется в SQL.
func (r *EmbeddingStoreAdapter) Scan(ctx context.Context, modelVersion string, filter entity.ProjectFilter) ([]entity.EmbeddedProject, error) {
	var w whereBuilder
	w.add("pe.model_version = ?", modelVersion)
	applyProjectFilter(&w, filter)

	query := `SELECT ` + projectColumns + `, pe.embedding
		FROM projects p
		JOIN project_embeddings pe ON pe.project_id = p.id` + w.String() + `
		ORDER BY p.id`

	var rows []embeddedProjectRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось прочитать векторы проектов")
	}

	out := make([]entity.EmbeddedProject, 0, len(rows))
	for i := range rows {
		out = append(out, entity.EmbeddedProject{
			Project: rows[i].toEntity(),
			Vector:  rows[i].Embedding.Slice(),
		})
	}
	return out, nil
}

func (r *EmbeddingStoreAdapter) Hashes(ctx context.Context, modelVersion string) (map[int64]string, error) {
	var rows []struct {
		ProjectID   int64  `db:"project_id"`
		ContentHash string `db:"content_hash"`
	}
	query := `SELECT project_id, content_hash FROM project_embeddings WHERE model_version = $1`
	if err := r.db.SelectContext(ctx, &rows, query, modelVersion); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отпечатки эмбеддингов")
	}

	out := make(map[int64]string, len(rows))
	for _, row := range rows {
		out[row.ProjectID] = row.ContentHash
	}
	return out, nil
}

func (r *EmbeddingStoreAdapter) Count(ctx context.Context, modelVersion string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM project_embeddings WHERE model_version = $1`
	if err := r.db.GetContext(ctx, &n, query, modelVersion); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать эмбеддинги")
	}
	return n, nil
}
