package recommend

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

func profileWith(level valueobject.Level, skills ...string) *entity.UserProfile {
	p := &entity.UserProfile{UserID: uuid.New(), SkillLevel: level}
	for i, s := range skills {
		p.Skills = append(p.Skills, entity.UserSkill{SkillID: int64(i + 1), Name: s, Proficiency: 3})
	}
	return p
}

func projectWith(id int64, level valueobject.Level, source valueobject.Source, skills ...string) *entity.Project {
	p := &entity.Project{ID: id, Title: "Project", Difficulty: level, Source: source}
	for i, s := range skills {
		p.Skills = append(p.Skills, entity.ProjectSkill{SkillID: int64(i + 1), Name: s, IsRequired: true})
	}
	return p
}

func TestProjectText(t *testing.T) {
	p := &entity.Project{
		Title:       "Todo API",
		Description: "REST service",
		Topics:      []string{"api", "go"},
		Language:    "Go",
		Difficulty:  valueobject.LevelBeginner,
	}
	assert.Equal(t, "Todo API. REST service. Topics: api, go. Language: Go. Difficulty: beginner", ProjectText(p))

	t.Run("optional fields omitted", func(t *testing.T) {
		assert.Equal(t, "Only title", ProjectText(&entity.Project{Title: "Only title"}))
	})

	t.Run("description truncated by characters", func(t *testing.T) {
		long := strings.Repeat("ж", 350)
		text := ProjectText(&entity.Project{Title: "T", Description: long})
		assert.Equal(t, "T. "+strings.Repeat("ж", MaxDescriptionChars), text)
	})
}

func TestUserQueryText(t *testing.T) {
	p := profileWith(valueobject.LevelAdvanced, "Python", "React")
	p.Interests = []string{"ml", "web"}
	p.Bio = "Backend developer"
	assert.Equal(t, "Skills: Python, React. Interests: ml, web. Level: advanced. Backend developer", UserQueryText(p))

	t.Run("empty profile falls back to intermediate", func(t *testing.T) {
		assert.Equal(t, "Level: intermediate", UserQueryText(&entity.UserProfile{}))
	})

	t.Run("bio truncated", func(t *testing.T) {
		p := &entity.UserProfile{SkillLevel: valueobject.LevelBeginner, Bio: strings.Repeat("a", 250)}
		assert.Equal(t, "Level: beginner. "+strings.Repeat("a", MaxBioChars), UserQueryText(p))
	})
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)

	t.Run("zero vector gives exactly zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}))
		assert.Equal(t, 0.0, Cosine([]float32{1, 2, 3}, []float32{0, 0, 0}))
	})

	t.Run("empty or mismatched", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine(nil, nil))
		assert.Equal(t, 0.0, Cosine([]float32{1}, []float32{1, 2}))
	})

	t.Run("stays within bounds", func(t *testing.T) {
		vectors := [][]float32{
			{0.1, 0.2, 0.3}, {-5, 3, 1e-3}, {1e6, -1e6, 1}, {0.3333, 0.3333, 0.3333},
		}
		for _, a := range vectors {
			for _, b := range vectors {
				sim := Cosine(a, b)
				assert.GreaterOrEqual(t, sim, -1.0)
				assert.LessOrEqual(t, sim, 1.0)
			}
		}
	})
}

func TestSearch_TieBreakKeepsInputOrder(t *testing.T) {
	query := []float32{1, 0}
	// близости: 0.9, 0.3, 0.9
	high := []float32{0.9, 0.43588989}
	low := []float32{0.3, 0.95393920}
	candidates := []entity.EmbeddedProject{
		{Project: &entity.Project{ID: 0}, Vector: high},
		{Project: &entity.Project{ID: 1}, Vector: low},
		{Project: &entity.Project{ID: 2}, Vector: high},
	}

	got := Search(query, candidates, 2, entity.ProjectFilter{})
	require.Len(t, got, 2)
	assert.Equal(t, int64(0), got[0].Project.ID)
	assert.Equal(t, int64(2), got[1].Project.ID)
	assert.InDelta(t, 0.9, got[0].Similarity, 1e-6)
}

func TestSearch_LimitAndFilter(t *testing.T) {
	beginner := valueobject.LevelBeginner
	candidates := []entity.EmbeddedProject{
		{Project: &entity.Project{ID: 1, Difficulty: valueobject.LevelBeginner, Source: valueobject.SourceGithub}, Vector: []float32{1, 0}},
		{Project: &entity.Project{ID: 2, Difficulty: valueobject.LevelAdvanced, Source: valueobject.SourceGithub}, Vector: []float32{1, 0}},
		{Project: &entity.Project{ID: 3, Difficulty: valueobject.LevelBeginner, Source: valueobject.SourceCurated}, Vector: []float32{0, 1}},
		{Project: &entity.Project{ID: 4, Difficulty: valueobject.LevelBeginner, Source: valueobject.SourceGithub}, Vector: []float32{0, 0}},
	}
	query := []float32{1, 0}

	for _, k := range []int{1, 2, 4, 10} {
		assert.Len(t, Search(query, candidates, k, entity.ProjectFilter{}), min(k, len(candidates)))
	}
	assert.Empty(t, Search(query, candidates, 0, entity.ProjectFilter{}))

	filtered := Search(query, candidates, 10, entity.ProjectFilter{
		Difficulty: &beginner,
		Sources:    []valueobject.Source{valueobject.SourceGithub},
	})
	require.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].Project.ID)
	assert.Equal(t, int64(4), filtered[1].Project.ID)
	assert.Equal(t, 0.0, filtered[1].Similarity)
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
	assert.Equal(t, []float32{0, 0}, Normalize([]float32{0, 0}))
}

func TestMatchSkills(t *testing.T) {
	t.Run("no user skills", func(t *testing.T) {
		m := MatchSkills(nil, []string{"Go", "SQL"})
		assert.Equal(t, 0.0, m.Score)
		assert.Empty(t, m.Matching)
		assert.Equal(t, []string{"Go", "SQL"}, m.Missing)
	})

	t.Run("project without skills", func(t *testing.T) {
		m := MatchSkills([]string{"Go"}, nil)
		assert.Equal(t, 0.0, m.Score)
		assert.Empty(t, m.Matching)
		assert.Empty(t, m.Missing)
		assert.NotNil(t, m.Missing)
	})

	t.Run("partial overlap", func(t *testing.T) {
		m := MatchSkills([]string{"React", "Python", "Docker"}, []string{"Python", "React", "PostgreSQL"})
		assert.InDelta(t, 2.0/3.0, m.Score, 1e-9)
		assert.Equal(t, []string{"Python", "React"}, m.Matching)
		assert.Equal(t, []string{"PostgreSQL"}, m.Missing)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		m := MatchSkills([]string{"Go", "Go"}, []string{"Go", "Go", "SQL"})
		assert.InDelta(t, 0.5, m.Score, 1e-9)
	})
}

func TestDifficultyScore(t *testing.T) {
	cases := []struct {
		user, project valueobject.Level
		want          float64
	}{
		{valueobject.LevelBeginner, valueobject.LevelBeginner, 1.0},
		{valueobject.LevelBeginner, valueobject.LevelIntermediate, 0.3},
		{valueobject.LevelBeginner, valueobject.LevelAdvanced, 0.5},
		{valueobject.LevelIntermediate, valueobject.LevelBeginner, 0.8},
		{valueobject.LevelIntermediate, valueobject.LevelIntermediate, 1.0},
		{valueobject.LevelIntermediate, valueobject.LevelAdvanced, 0.4},
		{valueobject.LevelAdvanced, valueobject.LevelBeginner, 0.5},
		{valueobject.LevelAdvanced, valueobject.LevelIntermediate, 0.7},
		{valueobject.LevelAdvanced, valueobject.LevelAdvanced, 1.0},
		{"", valueobject.LevelIntermediate, 1.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DifficultyScore(tc.user, tc.project), "%s/%s", tc.user, tc.project)
	}
}

func TestGrowthScore(t *testing.T) {
	assert.Equal(t, 0.0, GrowthScore(0))
	assert.Equal(t, 1.0, GrowthScore(1))
	assert.Equal(t, 1.0, GrowthScore(2))
	assert.Equal(t, 1.0, GrowthScore(3))
	assert.Equal(t, 0.0, GrowthScore(4))
	assert.Equal(t, 0.0, GrowthScore(10))
}

func TestHybridScore_EndToEnd(t *testing.T) {
	profile := profileWith(valueobject.LevelIntermediate, "Python", "React")
	project := projectWith(7, valueobject.LevelIntermediate, valueobject.SourceCurated, "Python", "React", "PostgreSQL")

	s := HybridScore(profile, project, 0.8)

	assert.InDelta(t, 2.0/3.0, s.Skill, 1e-9)
	assert.Equal(t, 1.0, s.Difficulty)
	assert.Equal(t, 1.0, s.Growth)
	assert.InDelta(t, 0.8167, s.Value, 1e-4)
	assert.Equal(t, 81.7, entity.Percent(s.Value))
	assert.Equal(t, []string{"PostgreSQL"}, s.Missing)
	assert.Equal(t, []string{"Python", "React"}, s.Matching)
	assert.Equal(t,
		"Highly relevant to your profile • Matches 2 of your skills • Appropriate difficulty level • Learn 1 new skill(s)",
		s.Reason)
}

func TestHybridScore_MonotonicInSemantic(t *testing.T) {
	profile := profileWith(valueobject.LevelBeginner, "Go")
	project := projectWith(1, valueobject.LevelAdvanced, valueobject.SourceGithub, "Go", "Kafka")

	prev := HybridScore(profile, project, -1).Value
	for sim := -0.9; sim <= 1.0; sim += 0.1 {
		cur := HybridScore(profile, project, sim).Value
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestHybridScore_StaysInUnitInterval(t *testing.T) {
	profile := profileWith(valueobject.LevelIntermediate, "Python", "React")
	project := projectWith(7, valueobject.LevelIntermediate, valueobject.SourceCurated, "Python", "React", "PostgreSQL")

	s := HybridScore(profile, project, -1)
	assert.Equal(t, 0.0, s.Value)
	assert.Equal(t, -1.0, s.Semantic)
	assert.Equal(t, 0.0, entity.Percent(s.Value))

	full := profileWith(valueobject.LevelAdvanced, "Go")
	s = HybridScore(full, projectWith(1, valueobject.LevelAdvanced, valueobject.SourceGithub, "Go"), 1)
	assert.LessOrEqual(t, s.Value, 1.0)
}

func TestHybridScore_Reason(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		s := HybridScore(profileWith(valueobject.LevelBeginner), projectWith(1, valueobject.LevelAdvanced, valueobject.SourceGithub), 0.1)
		assert.Equal(t, ReasonFallback, s.Reason)
	})

	t.Run("good match and kaggle competition", func(t *testing.T) {
		s := HybridScore(profileWith(valueobject.LevelBeginner), projectWith(1, valueobject.LevelAdvanced, valueobject.SourceKaggleCompetition), 0.6)
		assert.Equal(t, ReasonGoodMatch+" • "+ReasonKaggleCompetition, s.Reason)
	})

	t.Run("kaggle dataset", func(t *testing.T) {
		s := HybridScore(profileWith(valueobject.LevelAdvanced), projectWith(1, valueobject.LevelAdvanced, valueobject.SourceKaggleDataset), 0.5)
		assert.Equal(t, ReasonDifficulty+" • "+ReasonKaggleDataset, s.Reason)
	})

	t.Run("too many missing skills give no growth", func(t *testing.T) {
		s := HybridScore(profileWith(valueobject.LevelBeginner), projectWith(1, valueobject.LevelIntermediate, valueobject.SourceGithub, "a", "b", "c", "d"), 0)
		assert.Equal(t, 0.0, s.Growth)
		assert.Equal(t, ReasonFallback, s.Reason)
	})

	t.Run("deterministic", func(t *testing.T) {
		profile := profileWith(valueobject.LevelIntermediate, "Go")
		project := projectWith(1, valueobject.LevelBeginner, valueobject.SourceCurated, "Go", "Docker")
		assert.Equal(t, HybridScore(profile, project, 0.42), HybridScore(profile, project, 0.42))
	})
}
