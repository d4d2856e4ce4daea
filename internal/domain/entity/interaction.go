package entity

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

// Interaction - действие пользователя с проектом. На тройку
// (пользователь, проект, тип) допускается ровно одна запись.
type Interaction struct {
	ID        int64                       `json:"id"`
	UserID    uuid.UUID                   `json:"user_id"`
	ProjectID int64                       `json:"project_id"`
	Type      valueobject.InteractionType `json:"interaction_type"`
	Rating    *int                        `json:"rating,omitempty"`
	CreatedAt time.Time                   `json:"timestamp"`
}

func NewInteraction(userID uuid.UUID, projectID int64, t valueobject.InteractionType, rating *int) (*Interaction, error) {
	if err := valueobject.ValidateRating(rating); err != nil {
		return nil, err
	}
	if !t.IsValid() {
		_, err := valueobject.NewInteractionType(string(t))
		return nil, err
	}
	return &Interaction{
		UserID:    userID,
		ProjectID: projectID,
		Type:      t,
		Rating:    rating,
		CreatedAt: time.Now(),
	}, nil
}

// InteractionWithProject - взаимодействие с полями проекта для истории пользователя.
type InteractionWithProject struct {
	Interaction
	ProjectTitle       string             `json:"project_title"`
	ProjectDescription string             `json:"project_description"`
	Difficulty         valueobject.Level  `json:"difficulty"`
	Topics             []string           `json:"topics"`
	RepoURL            *string            `json:"repo_url,omitempty"`
	EstimatedHours     int                `json:"estimated_hours"`
	Source             valueobject.Source `json:"source"`
}

// Bookmark - проект в закладках пользователя.
type Bookmark struct {
	Project      Project   `json:"project"`
	BookmarkedAt time.Time `json:"bookmarked_at"`
}

// InteractionStats - агрегаты по взаимодействиям пользователя.
type InteractionStats struct {
	TotalInteractions int            `json:"total_interactions"`
	ByType            map[string]int `json:"by_type"`
	AverageRating     *float64       `json:"average_rating"`
	RecentActivity30d int            `json:"recent_activity_30d"`
}

// ActivitySummary - развёрнутая сводка активности пользователя.
type ActivitySummary struct {
	TotalInteractions  int      `json:"total_interactions"`
	ProjectsViewed     int      `json:"projects_viewed"`
	ProjectsBookmarked int      `json:"projects_bookmarked"`
	ProjectsStarted    int      `json:"projects_started"`
	ProjectsCompleted  int      `json:"projects_completed"`
	AverageRating      *float64 `json:"avg_rating"`
	// TotalLearningHours - сумма оценок трудоёмкости завершённых проектов.
	TotalLearningHours int `json:"total_learning_hours"`
	SkillsCount        int `json:"skills_count"`
	// MostActiveCategory - самая частая категория навыков среди проектов,
	// с которыми пользователь взаимодействовал.
	MostActiveCategory *string `json:"most_active_category"`
	RecentActivity7d   int     `json:"recent_activity_7d"`
	CompletionRate     float64 `json:"completion_rate"`
}

// FillCompletionRate считает долю завершённых проектов в процентах.
// Проект можно отметить завершённым без отметки о начале, поэтому
// знаменатель - большее из двух чисел.
func (s *ActivitySummary) FillCompletionRate() {
	base := max(s.ProjectsStarted, s.ProjectsCompleted)
	if base == 0 {
		s.CompletionRate = 0
		return
	}
	s.CompletionRate = math.Round(float64(s.ProjectsCompleted)/float64(base)*1000) / 10
}
