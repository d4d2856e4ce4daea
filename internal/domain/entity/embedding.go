package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ProjectEmbedding - вектор проекта для конкретной версии модели.
// На пару (проект, версия модели) хранится не больше одного вектора.
type ProjectEmbedding struct {
	ProjectID    int64
	Vector       []float32
	ModelVersion string
	ContentHash  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ContentHash считает отпечаток текста, из которого получен вектор.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// IsStale сообщает, нужно ли пересчитать вектор: сменилась модель
// или изменились поля проекта, входящие в текст для эмбеддинга.
func (e *ProjectEmbedding) IsStale(modelVersion, contentHash string) bool {
	if e == nil {
		return true
	}
	return e.ModelVersion != modelVersion || e.ContentHash != contentHash
}

// EmbeddedProject - проект вместе с его вектором, результат сканирования хранилища.
type EmbeddedProject struct {
	Project *Project
	Vector  []float32
}

// PendingEmbedding - проект без актуального вектора и текст, который пойдёт в модель.
type PendingEmbedding struct {
	ProjectID int64  `json:"project_id"`
	Text      string `json:"embedding_text"`
	Reason    string `json:"reason"`
}
