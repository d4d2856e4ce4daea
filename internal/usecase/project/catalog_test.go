package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/usecasetest"
)

func sixVectors() [][]float32 {
	out := make([][]float32, 6)
	for i := range out {
		out[i] = []float32{1, float32(i)}
	}
	return out
}

func TestSeedCatalog_EmptyDatabase(t *testing.T) {
	projects, embeddings := usecasetest.NewCatalog()
	skills := projects.Skills()
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	embedder.On("EncodeBatch", mock.Anything, mock.Anything).Return(sixVectors(), nil).Once()

	uc := project.NewSeedCatalogUseCase(skills, projects, embedder)
	report, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(project.CuratedSkills), report.Skills)
	assert.Equal(t, 6, report.Projects)
	assert.False(t, report.ProjectsSkipped)

	all, err := projects.ListWithSkills(context.Background(), entity.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "Personal Portfolio Website", all[0].Title)
	assert.Equal(t, valueobject.SourceCurated, all[0].Source)
	names := make([]string, 0, len(all[0].Skills))
	for _, s := range all[0].Skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"HTML/CSS", "JavaScript", "Web Development"}, names)

	n, err := embeddings.Count(context.Background(), model)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	embedder.AssertExpectations(t)
}

func TestSeedCatalog_IsIdempotent(t *testing.T) {
	projects, _ := usecasetest.NewCatalog()
	skills := projects.Skills()
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	embedder.On("EncodeBatch", mock.Anything, mock.Anything).Return(sixVectors(), nil).Once()
	uc := project.NewSeedCatalogUseCase(skills, projects, embedder)

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, report.ProjectsSkipped)
	assert.Zero(t, report.Projects)

	list, err := skills.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, list, len(project.CuratedSkills))
	embedder.AssertNumberOfCalls(t, "EncodeBatch", 1)
}

func TestSeedCatalog_EmbedderFailure(t *testing.T) {
	projects, _ := usecasetest.NewCatalog()
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	embedder.On("EncodeBatch", mock.Anything, mock.Anything).Return(nil, errors.New("503"))

	_, err := project.NewSeedCatalogUseCase(projects.Skills(), projects, embedder).Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstreamUnavailable(err))

	n, err := projects.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListSkills(t *testing.T) {
	projects, _ := usecasetest.NewCatalog()
	skills := projects.Skills()
	_, err := skills.Upsert(context.Background(), project.CuratedSkills)
	require.NoError(t, err)
	uc := project.NewListSkillsUseCase(skills)

	langs, err := uc.Execute(context.Background(), "language")
	require.NoError(t, err)
	require.Len(t, langs, 5)
	assert.Equal(t, "Go", langs[0].Name)

	_, err = uc.Execute(context.Background(), "hobby")
	assert.True(t, apperror.IsValidation(err))
}
