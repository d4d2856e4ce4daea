package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

// Веса гибридного балла. Сумма равна 1.
const (
	WeightSemantic   = 0.50
	WeightSkill      = 0.25
	WeightDifficulty = 0.15
	WeightGrowth     = 0.10
)

const (
	// DefaultDifficultyFit используется для пар уровней, которых нет в таблице.
	DefaultDifficultyFit = 0.5

	highRelevanceThreshold = 0.7
	goodMatchThreshold     = 0.5
	goodDifficultyFit      = 0.8
	minGrowthSkills        = 1
	maxGrowthSkills        = 3
)

const (
	ReasonHighlyRelevant    = "Highly relevant to your profile"
	ReasonGoodMatch         = "Good match for your interests"
	ReasonDifficulty        = "Appropriate difficulty level"
	ReasonKaggleCompetition = "🏆 Kaggle competition"
	ReasonKaggleDataset     = "📊 Data analysis project"
	ReasonFallback          = "Potential match"
	ReasonSemanticOnly      = "Semantically similar to your profile"
	ReasonSkillBased        = "Skill-based match"

	reasonSeparator = " • "
)

type levelPair struct {
	user    valueobject.Level
	project valueobject.Level
}

var difficultyFit = map[levelPair]float64{
	{valueobject.LevelBeginner, valueobject.LevelBeginner}:         1.0,
	{valueobject.LevelBeginner, valueobject.LevelIntermediate}:     0.3,
	{valueobject.LevelIntermediate, valueobject.LevelBeginner}:     0.8,
	{valueobject.LevelIntermediate, valueobject.LevelIntermediate}: 1.0,
	{valueobject.LevelIntermediate, valueobject.LevelAdvanced}:     0.4,
	{valueobject.LevelAdvanced, valueobject.LevelIntermediate}:     0.7,
	{valueobject.LevelAdvanced, valueobject.LevelAdvanced}:         1.0,
}

// DifficultyScore оценивает, насколько сложность проекта подходит уровню пользователя.
func DifficultyScore(userLevel, projectLevel valueobject.Level) float64 {
	if v, ok := difficultyFit[levelPair{userLevel.OrDefault(), projectLevel}]; ok {
		return v
	}
	return DefaultDifficultyFit
}

// GrowthScore равен 1, когда проект учит от одного до трёх новым навыкам.
func GrowthScore(missing int) float64 {
	if missing >= minGrowthSkills && missing <= maxGrowthSkills {
		return 1.0
	}
	return 0.0
}

// Score - гибридная оценка проекта для пользователя.
type Score struct {
	Value      float64
	Semantic   float64
	Skill      float64
	Difficulty float64
	Growth     float64
	Matching   []string
	Missing    []string
	Reason     string
}

// HybridScore объединяет семантическую близость, покрытие навыков,
// соответствие сложности и возможность роста в один балл из [0,1].
func HybridScore(profile *entity.UserProfile, project *entity.Project, semanticSimilarity float64) Score {
	skills := MatchSkills(profile.SkillNames(), project.SkillNames())
	difficulty := DifficultyScore(profile.SkillLevel, project.Difficulty)
	growth := GrowthScore(len(skills.Missing))

	value := WeightSemantic*semanticSimilarity +
		WeightSkill*skills.Score +
		WeightDifficulty*difficulty +
		WeightGrowth*growth
	// Отрицательная косинусная близость не должна выводить балл за [0,1].
	value = math.Max(0, math.Min(1, value))

	return Score{
		Value:      value,
		Semantic:   semanticSimilarity,
		Skill:      skills.Score,
		Difficulty: difficulty,
		Growth:     growth,
		Matching:   skills.Matching,
		Missing:    skills.Missing,
		Reason:     buildReason(semanticSimilarity, len(skills.Matching), difficulty, len(skills.Missing), project.Source),
	}
}

func buildReason(semantic float64, matching int, difficulty float64, missing int, source valueobject.Source) string {
	reasons := make([]string, 0, 5)

	switch {
	case semantic > highRelevanceThreshold:
		reasons = append(reasons, ReasonHighlyRelevant)
	case semantic > goodMatchThreshold:
		reasons = append(reasons, ReasonGoodMatch)
	}
	if matching > 0 {
		reasons = append(reasons, fmt.Sprintf("Matches %d of your skills", matching))
	}
	if difficulty >= goodDifficultyFit {
		reasons = append(reasons, ReasonDifficulty)
	}
	if GrowthScore(missing) > 0 {
		reasons = append(reasons, fmt.Sprintf("Learn %d new skill(s)", missing))
	}
	switch source {
	case valueobject.SourceKaggleCompetition:
		reasons = append(reasons, ReasonKaggleCompetition)
	case valueobject.SourceKaggleDataset:
		reasons = append(reasons, ReasonKaggleDataset)
	}

	if len(reasons) == 0 {
		return ReasonFallback
	}
	return strings.Join(reasons, reasonSeparator)
}
