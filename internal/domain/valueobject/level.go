package valueobject

import "github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"

// Level - уровень подготовки пользователя или сложность проекта.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// DefaultLevel подставляется, когда уровень пользователя не задан.
const DefaultLevel = LevelIntermediate

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

func (l Level) String() string {
	return string(l)
}

// OrDefault возвращает уровень или DefaultLevel для пустого значения.
func (l Level) OrDefault() Level {
	if l == "" {
		return DefaultLevel
	}
	return l
}

func NewLevel(level string) (Level, error) {
	l := Level(level)
	if !l.IsValid() {
		return "", apperror.Validation("skill_level", "допустимые значения: beginner, intermediate, advanced")
	}
	return l, nil
}

// ParseOptionalLevel разбирает необязательный фильтр сложности.
func ParseOptionalLevel(level string) (*Level, error) {
	if level == "" {
		return nil, nil
	}
	l := Level(level)
	if !l.IsValid() {
		return nil, apperror.Validation("difficulty", "допустимые значения: beginner, intermediate, advanced")
	}
	return &l, nil
}
