package valueobject

import "github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"

// Algorithm - стратегия построения рекомендаций.
type Algorithm string

const (
	AlgorithmHybrid      Algorithm = "hybrid"
	AlgorithmSemantic    Algorithm = "semantic"
	AlgorithmTraditional Algorithm = "traditional"
)

func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmHybrid, AlgorithmSemantic, AlgorithmTraditional:
		return true
	}
	return false
}

// UsesEmbeddings сообщает, нужна ли стратегии модель эмбеддингов.
func (a Algorithm) UsesEmbeddings() bool {
	return a == AlgorithmHybrid || a == AlgorithmSemantic
}

// NewAlgorithm разбирает имя алгоритма; пустая строка означает hybrid.
func NewAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return AlgorithmHybrid, nil
	}
	a := Algorithm(name)
	if !a.IsValid() {
		return "", apperror.Validation("algorithm", "допустимые значения: hybrid, semantic, traditional")
	}
	return a, nil
}
