package valueobject

import "github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"

type InteractionType string

const (
	InteractionViewed     InteractionType = "viewed"
	InteractionBookmarked InteractionType = "bookmarked"
	InteractionStarted    InteractionType = "started"
	InteractionCompleted  InteractionType = "completed"
)

const (
	MinRating = 1
	MaxRating = 5
)

func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionViewed, InteractionBookmarked, InteractionStarted, InteractionCompleted:
		return true
	}
	return false
}

func NewInteractionType(t string) (InteractionType, error) {
	it := InteractionType(t)
	if !it.IsValid() {
		return "", apperror.Validation("interaction_type", "допустимые значения: viewed, bookmarked, started, completed")
	}
	return it, nil
}

// ValidateRating проверяет необязательную оценку.
func ValidateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < MinRating || *rating > MaxRating {
		return apperror.Validation("rating", "оценка должна быть от 1 до 5")
	}
	return nil
}
