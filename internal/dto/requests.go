package dto

// SkillRequest - навык в запросе на сохранение профиля.
type SkillRequest struct {
	SkillID     int64 `json:"skill_id" binding:"required,gt=0"`
	Proficiency int   `json:"proficiency" binding:"required,min=1,max=5"`
}

// UpsertProfileRequest заменяет профиль целиком, включая набор навыков.
type UpsertProfileRequest struct {
	SkillLevel            string         `json:"skill_level"`
	Interests             []string       `json:"interests"`
	Bio                   string         `json:"bio"`
	GithubUsername        string         `json:"github_username"`
	PreferredProjectTypes []string       `json:"preferred_project_types"`
	Skills                []SkillRequest `json:"skills" binding:"dive"`
}

// CreateProjectRequest добавляет проект в каталог.
type CreateProjectRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	RepoURL        *string  `json:"repo_url"`
	Difficulty     string   `json:"difficulty" binding:"required"`
	Topics         []string `json:"topics"`
	EstimatedHours int      `json:"estimated_hours" binding:"min=0"`
	Source         string   `json:"source"`
	Stars          int      `json:"stars" binding:"min=0"`
	Language       string   `json:"language"`
	SkillIDs       []int64  `json:"skill_ids"`
}

type CreateInteractionRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	ProjectID       int64  `json:"project_id" binding:"required,gt=0"`
	InteractionType string `json:"interaction_type" binding:"required"`
	Rating          *int   `json:"rating"`
}

// UpdateInteractionRequest: хотя бы одно поле должно быть задано.
type UpdateInteractionRequest struct {
	InteractionType *string `json:"interaction_type"`
	Rating          *int    `json:"rating"`
}
