package entity

// Skill - запись справочника навыков. Имя уникально.
type Skill struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
