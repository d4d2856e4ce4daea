package recommend

import (
	"math"
	"sort"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
)

// ScoredProject - кандидат с косинусной близостью к запросу.
type ScoredProject struct {
	Project    *entity.Project
	Similarity float64
}

// Cosine считает косинусную близость. Нулевой вектор, пустой вектор или
// несовпадение размерностей дают 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	switch {
	case math.IsNaN(sim):
		return 0
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	}
	return sim
}

// Search фильтрует кандидатов, считает близость и возвращает не больше limit
// лучших по убыванию. При равной близости сохраняется порядок входа.
func Search(query []float32, candidates []entity.EmbeddedProject, limit int, filter entity.ProjectFilter) []ScoredProject {
	if limit <= 0 {
		return nil
	}

	scored := make([]ScoredProject, 0, len(candidates))
	for _, c := range candidates {
		if c.Project == nil || !filter.Matches(c.Project) {
			continue
		}
		scored = append(scored, ScoredProject{
			Project:    c.Project,
			Similarity: Cosine(query, c.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Normalize приводит вектор к единичной длине. Нулевой вектор возвращается как есть.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1 / math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}
