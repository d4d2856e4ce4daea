package repository

import (
	"context"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
)

type SkillRepository interface {
	// List возвращает справочник по имени; пустая категория означает все навыки.
	List(ctx context.Context, category string) ([]entity.Skill, error)
	// Upsert добавляет отсутствующие навыки и возвращает идентификаторы всех переданных по имени.
	Upsert(ctx context.Context, skills []entity.Skill) (map[string]int64, error)
}
