package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

const (
	MinProficiency = 1
	MaxProficiency = 5
)

// UserSkill - навык пользователя с самооценкой владения.
type UserSkill struct {
	SkillID     int64
	Name        string
	Category    string
	Proficiency int
}

// UserProfile хранит всё, что нужно рекомендательному движку о пользователе.
// Профиль и набор навыков заменяются только целиком.
type UserProfile struct {
	UserID                uuid.UUID
	SkillLevel            valueobject.Level
	Interests             []string
	Bio                   string
	GithubUsername        string
	PreferredProjectTypes []string
	Skills                []UserSkill
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func NewUserProfile(userID uuid.UUID, level valueobject.Level, interests []string, bio string, skills []UserSkill) (*UserProfile, error) {
	if userID == uuid.Nil {
		return nil, apperror.Validation("user_id", "идентификатор пользователя обязателен")
	}
	if !level.IsValid() {
		return nil, apperror.Validation("skill_level", "допустимые значения: beginner, intermediate, advanced")
	}

	seen := make(map[int64]struct{}, len(skills))
	for _, s := range skills {
		if s.SkillID <= 0 {
			return nil, apperror.Validation("skill_id", "идентификатор навыка должен быть положительным")
		}
		if s.Proficiency < MinProficiency || s.Proficiency > MaxProficiency {
			return nil, apperror.Validation("proficiency", "уровень владения должен быть от 1 до 5")
		}
		if _, dup := seen[s.SkillID]; dup {
			return nil, apperror.Validation("skills", "навык указан несколько раз")
		}
		seen[s.SkillID] = struct{}{}
	}

	now := time.Now()
	return &UserProfile{
		UserID:     userID,
		SkillLevel: level,
		Interests:  interests,
		Bio:        bio,
		Skills:     skills,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// SkillNames возвращает имена навыков пользователя.
func (p *UserProfile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// ProfileSummary - краткое описание профиля, по которому строились рекомендации.
type ProfileSummary struct {
	SkillLevel  valueobject.Level `json:"skill_level"`
	SkillsCount int               `json:"skills_count"`
	Interests   []string          `json:"interests"`
}

func (p *UserProfile) Summary() ProfileSummary {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return ProfileSummary{
		SkillLevel:  p.SkillLevel,
		SkillsCount: len(p.Skills),
		Interests:   interests,
	}
}
