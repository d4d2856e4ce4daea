package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
)

type UserRepository interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type ProfileRepository interface {
	// FindByUserID возвращает профиль с навыками или apperror.ErrProfileNotFound.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	// Replace атомарно заменяет профиль и весь набор навыков.
	Replace(ctx context.Context, profile *entity.UserProfile) error
	Count(ctx context.Context) (int, error)
}
