// Package recommend содержит чистые функции рекомендательного движка:
// построение текстов для эмбеддингов, векторный поиск, сопоставление навыков
// и гибридный скоринг. Пакет не ходит ни в базу, ни в сеть.
package recommend

import (
	"strings"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

const (
	MaxDescriptionChars = 300
	MaxBioChars         = 200

	segmentSeparator = ". "
	listSeparator    = ", "
)

// ProjectText строит каноническое текстовое представление проекта.
func ProjectText(p *entity.Project) string {
	parts := make([]string, 0, 5)
	parts = append(parts, p.Title)
	if p.Description != "" {
		parts = append(parts, truncateRunes(p.Description, MaxDescriptionChars))
	}
	if len(p.Topics) > 0 {
		parts = append(parts, "Topics: "+strings.Join(p.Topics, listSeparator))
	}
	if p.Language != "" {
		parts = append(parts, "Language: "+p.Language)
	}
	if p.Difficulty != "" {
		parts = append(parts, "Difficulty: "+p.Difficulty.String())
	}
	return strings.Join(parts, segmentSeparator)
}

// UserQueryText строит поисковый запрос по профилю пользователя.
func UserQueryText(p *entity.UserProfile) string {
	parts := make([]string, 0, 4)
	if names := p.SkillNames(); len(names) > 0 {
		parts = append(parts, "Skills: "+strings.Join(names, listSeparator))
	}
	if len(p.Interests) > 0 {
		parts = append(parts, "Interests: "+strings.Join(p.Interests, listSeparator))
	}
	parts = append(parts, "Level: "+levelOrDefault(p.SkillLevel))
	if p.Bio != "" {
		parts = append(parts, truncateRunes(p.Bio, MaxBioChars))
	}
	return strings.Join(parts, segmentSeparator)
}

func levelOrDefault(l valueobject.Level) string {
	return l.OrDefault().String()
}

// truncateRunes обрезает строку по символам, не разрывая UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
