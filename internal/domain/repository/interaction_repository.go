package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

type InteractionFilter struct {
	Type   *valueobject.InteractionType
	Limit  int
	Offset int
}

type InteractionRepository interface {
	// Create возвращает apperror.ErrInteractionExists при повторе (user, project, type).
	Create(ctx context.Context, interaction *entity.Interaction) error
	FindByID(ctx context.Context, id int64) (*entity.Interaction, error)
	Update(ctx context.Context, interaction *entity.Interaction) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter InteractionFilter) ([]entity.InteractionWithProject, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]entity.Bookmark, error)
	Stats(ctx context.Context, userID uuid.UUID, since time.Time) (*entity.InteractionStats, error)
	// ActivitySummary заполняет все поля сводки, кроме CompletionRate.
	ActivitySummary(ctx context.Context, userID uuid.UUID, since time.Time) (*entity.ActivitySummary, error)
	// DeleteViewedBefore удаляет просмотры старше cutoff; остальные типы не трогает.
	DeleteViewedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
