package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

type SkillInput struct {
	SkillID     int64
	Proficiency int
}

type UpsertProfileInput struct {
	UserID                uuid.UUID
	SkillLevel            string
	Interests             []string
	Bio                   string
	GithubUsername        string
	PreferredProjectTypes []string
	Skills                []SkillInput
}

type UpsertProfileUseCase struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewUpsertProfileUseCase(users repository.UserRepository, profiles repository.ProfileRepository) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{users: users, profiles: profiles}
}

// Execute создаёт или целиком заменяет профиль вместе с набором навыков.
func (uc *UpsertProfileUseCase) Execute(ctx context.Context, input UpsertProfileInput) (*entity.UserProfile, error) {
	level := valueobject.Level(input.SkillLevel).OrDefault()

	skills := make([]entity.UserSkill, 0, len(input.Skills))
	for _, s := range input.Skills {
		skills = append(skills, entity.UserSkill{SkillID: s.SkillID, Proficiency: s.Proficiency})
	}

	p, err := entity.NewUserProfile(input.UserID, level, cleanList(input.Interests), strings.TrimSpace(input.Bio), skills)
	if err != nil {
		return nil, err
	}
	p.GithubUsername = strings.TrimSpace(input.GithubUsername)
	p.PreferredProjectTypes = cleanList(input.PreferredProjectTypes)

	exists, err := uc.users.Exists(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrUserNotFound
	}

	if existing, err := uc.profiles.FindByUserID(ctx, input.UserID); err == nil {
		p.CreatedAt = existing.CreatedAt
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}
	p.UpdatedAt = time.Now()

	if err := uc.profiles.Replace(ctx, p); err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"user_id": input.UserID,
		"skills":  len(skills),
		"level":   level,
	}).Info("Профиль пользователя обновлён")

	// перечитываем, чтобы вернуть имена навыков из справочника
	return uc.profiles.FindByUserID(ctx, input.UserID)
}

type GetProfileUseCase struct {
	profiles repository.ProfileRepository
}

func NewGetProfileUseCase(profiles repository.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profiles: profiles}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	return uc.profiles.FindByUserID(ctx, userID)
}

// cleanList убирает пробелы по краям, пустые строки и повторы, сохраняя порядок.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
