package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

// DeterministicModelVersion - версия модели, под которой хранятся векторы
// детерминированного провайдера. Не смешивается с векторами настоящей модели.
const DeterministicModelVersion = "deterministic-hash-v1"

// Deterministic раскладывает слова текста по координатам через FNV-хэш.
// Тексты с общими словами получают близкие векторы, сеть не нужна.
type Deterministic struct {
	dim int
}

func NewDeterministic(dim int) *Deterministic {
	if dim <= 0 {
		dim = 384
	}
	return &Deterministic{dim: dim}
}

func (d *Deterministic) ModelVersion() string { return DeterministicModelVersion }

func (d *Deterministic) Dimension() int { return d.dim }

func (d *Deterministic) Encode(_ context.Context, text string) ([]float32, error) {
	return d.vector(text), nil
}

func (d *Deterministic) EncodeBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = d.vector(text)
	}
	return vectors, nil
}

func (d *Deterministic) vector(text string) []float32 {
	v := make([]float32, d.dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	for _, w := range words {
		h := fnv.New64a()
		_, _ = h.Write([]byte(w))
		sum := h.Sum64()
		idx := int(sum % uint64(d.dim))
		// старший бит задаёт знак, чтобы коллизии частично гасили друг друга
		if sum>>63 == 1 {
			v[idx] -= 1
		} else {
			v[idx] += 1
		}
	}
	return recommend.Normalize(v)
}
