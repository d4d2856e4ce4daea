package interaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100

	statsWindow = 30 * 24 * time.Hour
)

type LogInteractionInput struct {
	UserID          uuid.UUID
	ProjectID       int64
	InteractionType string
	Rating          *int
}

type LogInteractionUseCase struct {
	interactions repository.InteractionRepository
}

func NewLogInteractionUseCase(interactions repository.InteractionRepository) *LogInteractionUseCase {
	return &LogInteractionUseCase{interactions: interactions}
}

// Execute записывает взаимодействие. Повтор тройки (пользователь, проект, тип)
// возвращает apperror.ErrInteractionExists.
func (uc *LogInteractionUseCase) Execute(ctx context.Context, input LogInteractionInput) (*entity.Interaction, error) {
	t, err := valueobject.NewInteractionType(input.InteractionType)
	if err != nil {
		return nil, err
	}
	if input.ProjectID <= 0 {
		return nil, apperror.Validation("project_id", "идентификатор проекта должен быть положительным")
	}
	in, err := entity.NewInteraction(input.UserID, input.ProjectID, t, input.Rating)
	if err != nil {
		return nil, err
	}
	if err := uc.interactions.Create(ctx, in); err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"user_id":    in.UserID,
		"project_id": in.ProjectID,
		"type":       in.Type,
	}).Debug("Взаимодействие записано")
	return in, nil
}

type ListInteractionsInput struct {
	UserID          uuid.UUID
	InteractionType string
	Limit           int
	Offset          int
}

type ListInteractionsUseCase struct {
	interactions repository.InteractionRepository
}

func NewListInteractionsUseCase(interactions repository.InteractionRepository) *ListInteractionsUseCase {
	return &ListInteractionsUseCase{interactions: interactions}
}

// Execute возвращает историю пользователя, новые записи первыми.
func (uc *ListInteractionsUseCase) Execute(ctx context.Context, input ListInteractionsInput) ([]entity.InteractionWithProject, error) {
	filter := repository.InteractionFilter{Limit: input.Limit, Offset: input.Offset}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		return nil, apperror.Validation("limit", "допустимый диапазон от 1 до 100")
	}
	if filter.Offset < 0 {
		return nil, apperror.Validation("offset", "смещение не может быть отрицательным")
	}
	if input.InteractionType != "" {
		t, err := valueobject.NewInteractionType(input.InteractionType)
		if err != nil {
			return nil, err
		}
		filter.Type = &t
	}
	return uc.interactions.ListByUser(ctx, input.UserID, filter)
}

type UpdateInteractionInput struct {
	ID              int64
	InteractionType *string
	Rating          *int
}

type UpdateInteractionUseCase struct {
	interactions repository.InteractionRepository
}

func NewUpdateInteractionUseCase(interactions repository.InteractionRepository) *UpdateInteractionUseCase {
	return &UpdateInteractionUseCase{interactions: interactions}
}

// Execute меняет тип и/или оценку. Нужно передать хотя бы одно поле.
func (uc *UpdateInteractionUseCase) Execute(ctx context.Context, input UpdateInteractionInput) (*entity.Interaction, error) {
	if input.InteractionType == nil && input.Rating == nil {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "нет полей для обновления")
	}
	if err := valueobject.ValidateRating(input.Rating); err != nil {
		return nil, err
	}

	in, err := uc.interactions.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.InteractionType != nil {
		t, err := valueobject.NewInteractionType(*input.InteractionType)
		if err != nil {
			return nil, err
		}
		in.Type = t
	}
	if input.Rating != nil {
		in.Rating = input.Rating
	}

	if err := uc.interactions.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

type DeleteInteractionUseCase struct {
	interactions repository.InteractionRepository
}

func NewDeleteInteractionUseCase(interactions repository.InteractionRepository) *DeleteInteractionUseCase {
	return &DeleteInteractionUseCase{interactions: interactions}
}

func (uc *DeleteInteractionUseCase) Execute(ctx context.Context, id int64) error {
	return uc.interactions.Delete(ctx, id)
}

type ListBookmarksUseCase struct {
	interactions repository.InteractionRepository
}

func NewListBookmarksUseCase(interactions repository.InteractionRepository) *ListBookmarksUseCase {
	return &ListBookmarksUseCase{interactions: interactions}
}

func (uc *ListBookmarksUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]entity.Bookmark, error) {
	return uc.interactions.ListBookmarks(ctx, userID)
}

type InteractionStatsUseCase struct {
	interactions repository.InteractionRepository
	now          func() time.Time
}

func NewInteractionStatsUseCase(interactions repository.InteractionRepository) *InteractionStatsUseCase {
	return &InteractionStatsUseCase{interactions: interactions, now: time.Now}
}

// Execute считает агрегаты; недавняя активность - за последние 30 дней.
func (uc *InteractionStatsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.InteractionStats, error) {
	return uc.interactions.Stats(ctx, userID, uc.now().Add(-statsWindow))
}

const activityWindow = 7 * 24 * time.Hour

type ActivitySummaryUseCase struct {
	interactions repository.InteractionRepository
	users        repository.UserRepository
	now          func() time.Time
}

func NewActivitySummaryUseCase(interactions repository.InteractionRepository, users repository.UserRepository) *ActivitySummaryUseCase {
	return &ActivitySummaryUseCase{interactions: interactions, users: users, now: time.Now}
}

// Execute возвращает сводку активности; неизвестный пользователь - ErrUserNotFound.
func (uc *ActivitySummaryUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.ActivitySummary, error) {
	ok, err := uc.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	summary, err := uc.interactions.ActivitySummary(ctx, userID, uc.now().Add(-activityWindow))
	if err != nil {
		return nil, err
	}
	summary.FillCompletionRate()
	return summary, nil
}

const (
	DefaultCleanupDays = 180
	MinCleanupDays     = 30
	MaxCleanupDays     = 730
)

type CleanupReport struct {
	Message             string `json:"message"`
	DeletedInteractions int64  `json:"deleted_interactions"`
	DaysThreshold       int    `json:"days_threshold"`
}

// CleanupViewedUseCase удаляет старые просмотры. Закладки, начатые и
// завершённые проекты остаются.
type CleanupViewedUseCase struct {
	interactions repository.InteractionRepository
	now          func() time.Time
}

func NewCleanupViewedUseCase(interactions repository.InteractionRepository) *CleanupViewedUseCase {
	return &CleanupViewedUseCase{interactions: interactions, now: time.Now}
}

// Execute принимает порог в днях; 0 означает DefaultCleanupDays.
func (uc *CleanupViewedUseCase) Execute(ctx context.Context, days int) (*CleanupReport, error) {
	if days == 0 {
		days = DefaultCleanupDays
	}
	if days < MinCleanupDays || days > MaxCleanupDays {
		return nil, apperror.Validation("days_threshold", "допустимый диапазон от 30 до 730")
	}

	deleted, err := uc.interactions.DeleteViewedBefore(ctx, uc.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"days":    days,
		"deleted": deleted,
	}).Info("Старые просмотры удалены")
	return &CleanupReport{
		Message:             "очистка завершена",
		DeletedInteractions: deleted,
		DaysThreshold:       days,
	}, nil
}
