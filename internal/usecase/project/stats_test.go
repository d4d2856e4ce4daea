package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/usecasetest"
)

func statsCatalog() *usecasetest.Projects {
	python := entity.ProjectSkill{SkillID: 1, Name: "Python", Category: "language", IsRequired: true}
	fastapi := entity.ProjectSkill{SkillID: 2, Name: "FastAPI", Category: "framework", IsRequired: true}
	docker := entity.ProjectSkill{SkillID: 3, Name: "Docker", Category: "tool"}
	pandas := entity.ProjectSkill{SkillID: 4, Name: "Pandas", Category: "tool", IsRequired: true}

	projects, _ := usecasetest.NewCatalog()
	projects.Add(&entity.Project{
		Title: "Weather API", Difficulty: valueobject.LevelIntermediate, Source: valueobject.SourceGithub,
		Stars: 50, EstimatedHours: 20, Skills: []entity.ProjectSkill{python, fastapi, docker},
	})
	projects.Add(&entity.Project{
		Title: "Todo API", Difficulty: valueobject.LevelBeginner, Source: valueobject.SourceGithub,
		Stars: 500, EstimatedHours: 15, Skills: []entity.ProjectSkill{fastapi, python},
	})
	projects.Add(&entity.Project{
		Title: "Sales dashboard", Difficulty: valueobject.LevelBeginner, Source: valueobject.SourceKaggleDataset,
		Stars: 900, EstimatedHours: 8, Skills: []entity.ProjectSkill{python, pandas},
	})
	projects.Add(&entity.Project{
		Title: "Compiler", Difficulty: valueobject.LevelAdvanced, Source: valueobject.SourceCurated,
		EstimatedHours: 40,
	})
	return projects
}

func TestDifficultyStats(t *testing.T) {
	stats, err := project.NewDifficultyStatsUseCase(statsCatalog()).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, entity.DifficultyStats{
		Difficulty: valueobject.LevelBeginner, ProjectCount: 2, AvgStars: 700, AvgHours: 11.5,
	}, stats[0])
	assert.Equal(t, entity.DifficultyStats{
		Difficulty: valueobject.LevelIntermediate, ProjectCount: 1, AvgStars: 50, AvgHours: 20,
	}, stats[1])
	assert.Equal(t, valueobject.LevelAdvanced, stats[2].Difficulty)
	assert.Zero(t, stats[2].AvgStars)
}

func TestDifficultyStats_EmptyCatalog(t *testing.T) {
	projects, _ := usecasetest.NewCatalog()
	stats, err := project.NewDifficultyStatsUseCase(projects).Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestSkillCombinations(t *testing.T) {
	uc := project.NewSkillCombinationsUseCase(statsCatalog())

	combos, err := uc.Execute(context.Background(), 0)
	require.NoError(t, err)
	// Docker не обязателен и в пары не попадает
	require.Len(t, combos, 2)
	assert.Equal(t, [2]string{"Python", "FastAPI"}, combos[0].Skills)
	assert.Equal(t, 2, combos[0].ProjectCount)
	assert.Equal(t, [2]string{"Python", "Pandas"}, combos[1].Skills)
	assert.Equal(t, 1, combos[1].ProjectCount)

	top, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 2, top[0].ProjectCount)

	for _, limit := range []int{-1, 101} {
		_, err := uc.Execute(context.Background(), limit)
		assert.True(t, apperror.IsValidation(err), "limit=%d", limit)
	}
}
