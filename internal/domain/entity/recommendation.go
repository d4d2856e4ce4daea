package entity

import (
	"math"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

// Recommendation - одна позиция выдачи. Не сохраняется, считается на каждый запрос.
type Recommendation struct {
	ProjectID          int64              `json:"project_id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	RepoURL            *string            `json:"repo_url,omitempty"`
	Difficulty         valueobject.Level  `json:"difficulty"`
	Topics             []string           `json:"topics"`
	EstimatedHours     int                `json:"estimated_hours"`
	Source             valueobject.Source `json:"source"`
	MatchScore         float64            `json:"match_score"`
	MatchingSkills     []string           `json:"matching_skills"`
	MissingSkills      []string           `json:"missing_skills"`
	Reason             string             `json:"reason"`
	SemanticSimilarity *float64           `json:"semantic_similarity,omitempty"`

	// rawScore - несокращённый балл для сортировки.
	rawScore float64
}

// NewRecommendation копирует поля проекта и переводит балл [0,1] в проценты.
func NewRecommendation(p *Project, score float64, matching, missing []string, reason string) Recommendation {
	if matching == nil {
		matching = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return Recommendation{
		ProjectID:      p.ID,
		Title:          p.Title,
		Description:    p.Description,
		RepoURL:        p.RepoURL,
		Difficulty:     p.Difficulty,
		Topics:         p.Topics,
		EstimatedHours: p.EstimatedHours,
		Source:         p.Source,
		MatchScore:     Percent(clampUnit(score)),
		MatchingSkills: matching,
		MissingSkills:  missing,
		Reason:         reason,
		rawScore:       score,
	}
}

// WithSemantic добавляет семантическую близость в процентах.
func (r Recommendation) WithSemantic(similarity float64) Recommendation {
	v := Percent(clampUnit(similarity))
	r.SemanticSimilarity = &v
	return r
}

// RawScore возвращает балл до округления.
func (r Recommendation) RawScore() float64 {
	return r.rawScore
}

// RecommendationSet - ответ оркестратора.
type RecommendationSet struct {
	Recommendations []Recommendation      `json:"recommendations"`
	Algorithm       valueobject.Algorithm `json:"algorithm"`
	SourceFilter    string                `json:"source_filter"`
	ProfileSummary  ProfileSummary        `json:"user_profile_summary"`
}

// MatchAnalysis - разбор соответствия одного проекта пользователю.
type MatchAnalysis struct {
	Score              float64  `json:"score"`
	MatchingSkills     []string `json:"matching_skills"`
	MissingSkills      []string `json:"missing_skills"`
	Reason             string   `json:"reason"`
	SemanticSimilarity float64  `json:"semantic_similarity"`
}

// Percent переводит долю в проценты с одним знаком после запятой.
func Percent(v float64) float64 {
	return math.Round(v*1000) / 10
}

// clampUnit ограничивает отображаемый балл отрезком [0,1]; порядок выдачи
// определяется несокращённым баллом.
func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
