package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

const (
	MaxTopics         = 10
	MinEstimatedHours = 1
	MaxEstimatedHours = 200
)

// ProjectSkill - навык, который нужен для проекта.
type ProjectSkill struct {
	SkillID    int64  `json:"skill_id"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	IsRequired bool   `json:"is_required"`
}

// Project - учебный проект из каталога. Идентичность определяется ID.
type Project struct {
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	RepoURL        *string            `json:"repo_url,omitempty"`
	Difficulty     valueobject.Level  `json:"difficulty"`
	Topics         []string           `json:"topics"`
	EstimatedHours int                `json:"estimated_hours"`
	Source         valueobject.Source `json:"source"`
	Stars          int                `json:"stars"`
	Language       string             `json:"language,omitempty"`
	Skills         []ProjectSkill     `json:"skills,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Validate проверяет поля проекта перед вставкой в каталог.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return apperror.Validation("title", "название обязательно")
	}
	if strings.TrimSpace(p.Description) == "" {
		return apperror.Validation("description", "описание обязательно")
	}
	if !p.Difficulty.IsValid() {
		return apperror.Validation("difficulty", "допустимые значения: beginner, intermediate, advanced")
	}
	if !p.Source.IsValid() {
		return apperror.Validation("source", "допустимые значения: github, kaggle_competition, kaggle_dataset, curated")
	}
	if len(p.Topics) > MaxTopics {
		return apperror.Validation("topics", "не более 10 тем")
	}
	if p.EstimatedHours < MinEstimatedHours || p.EstimatedHours > MaxEstimatedHours {
		return apperror.Validation("estimated_hours", "оценка трудоёмкости должна быть от 1 до 200 часов")
	}
	if p.Stars < 0 {
		return apperror.Validation("stars", "количество звёзд не может быть отрицательным")
	}
	return nil
}

// SkillNames возвращает имена навыков проекта.
func (p *Project) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// ProjectFilter - категориальные фильтры каталога.
type ProjectFilter struct {
	Difficulty *valueobject.Level
	Sources    []valueobject.Source
	Topic      string
}

// Matches применяет фильтр к одному проекту.
func (f ProjectFilter) Matches(p *Project) bool {
	if f.Difficulty != nil && p.Difficulty != *f.Difficulty {
		return false
	}
	if len(f.Sources) > 0 && !slices.Contains(f.Sources, p.Source) {
		return false
	}
	if f.Topic != "" && !slices.Contains(p.Topics, f.Topic) {
		return false
	}
	return true
}

// DifficultyStats - агрегаты каталога по уровню сложности.
type DifficultyStats struct {
	Difficulty   valueobject.Level `json:"difficulty"`
	ProjectCount int               `json:"project_count"`
	AvgStars     float64           `json:"avg_stars"`
	AvgHours     float64           `json:"avg_hours"`
}

// SkillCombination - пара обязательных навыков и число проектов, где они встречаются вместе.
type SkillCombination struct {
	Skills       [2]string `json:"skills"`
	ProjectCount int       `json:"project_count"`
}
