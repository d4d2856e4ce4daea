package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/usecasetest"
)

const model = "test-model"

func seedCatalog() (*usecasetest.Projects, *usecasetest.Embeddings) {
	projects, embeddings := usecasetest.NewCatalog()
	projects.Add(&entity.Project{
		Title: "Weather API", Description: "REST service with FastAPI", Difficulty: valueobject.LevelIntermediate,
		Source: valueobject.SourceGithub, Stars: 50, EstimatedHours: 20, Topics: []string{"web"},
		Skills: []entity.ProjectSkill{{SkillID: 1, Name: "Python"}, {SkillID: 2, Name: "FastAPI"}},
	})
	projects.Add(&entity.Project{
		Title: "House prices", Description: "Regression on tabular data", Difficulty: valueobject.LevelBeginner,
		Source: valueobject.SourceKaggleCompetition, Stars: 500, EstimatedHours: 15, Topics: []string{"ml"},
	})
	projects.Add(&entity.Project{
		Title: "Sales dashboard", Description: "Analyse a retail dataset", Difficulty: valueobject.LevelBeginner,
		Source: valueobject.SourceKaggleCompetition, Stars: 900, EstimatedHours: 8, Topics: []string{"analytics"},
	})
	embeddings.Seed(1, model, []float32{1, 0}, "h1")
	embeddings.Seed(2, model, []float32{0, 1}, "h2")
	return projects, embeddings
}

func TestSearchProjects_Keyword(t *testing.T) {
	projects, embeddings := seedCatalog()
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	uc := project.NewSearchProjectsUseCase(projects, embeddings, embedder)

	// use_semantic без запроса тоже означает поиск по ключевым словам
	res, err := uc.Execute(context.Background(), project.SearchProjectsInput{Query: "", UseSemantic: true, Difficulty: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, project.SearchTypeKeyword, res.SearchType)
	assert.Equal(t, 2, res.Count)
	require.NotNil(t, res.Filters.Difficulty)
	assert.Equal(t, "beginner", *res.Filters.Difficulty)
	assert.Nil(t, res.Filters.Source)

	res, err = uc.Execute(context.Background(), project.SearchProjectsInput{Query: "fastapi"})
	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "Weather API", res.Projects[0].Title)
	assert.Nil(t, res.Projects[0].Similarity)
	embedder.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything)
}

func TestSearchProjects_Semantic(t *testing.T) {
	projects, embeddings := seedCatalog()
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	embedder.On("Encode", mock.Anything, "tabular regression").Return([]float32{0.6, 0.8}, nil)
	uc := project.NewSearchProjectsUseCase(projects, embeddings, embedder)

	res, err := uc.Execute(context.Background(), project.SearchProjectsInput{
		Query: "  tabular regression ", UseSemantic: true, Limit: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, project.SearchTypeSemantic, res.SearchType)
	require.Len(t, res.Projects, 2)
	assert.Equal(t, int64(2), res.Projects[0].ID)
	require.NotNil(t, res.Projects[0].Similarity)
	assert.InDelta(t, 80.0, *res.Projects[0].Similarity, 1e-9)
	assert.Equal(t, int64(1), res.Projects[1].ID)
}

func TestSearchProjects_Validation(t *testing.T) {
	projects, embeddings := seedCatalog()
	uc := project.NewSearchProjectsUseCase(projects, embeddings, &usecasetest.MockEmbedder{Model: model})

	for _, in := range []project.SearchProjectsInput{
		{Difficulty: "expert"},
		{Source: "gitlab"},
		{Limit: 101},
	} {
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, apperror.IsValidation(err), "%+v", in)
	}
}

func TestSearchProjects_SemanticUpstreamFailure(t *testing.T) {
	projects, embeddings := seedCatalog()
	embedder := &usecasetest.MockEmbedder{Model: model}
	embedder.On("Encode", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	uc := project.NewSearchProjectsUseCase(projects, embeddings, embedder)

	_, err := uc.Execute(context.Background(), project.SearchProjectsInput{Query: "api", UseSemantic: true})
	assert.True(t, apperror.IsUpstreamUnavailable(err))
}

func TestGetProject_WithMatchAnalysis(t *testing.T) {
	projects, embeddings := seedCatalog()
	profiles := usecasetest.NewProfiles()
	userID := uuid.New()
	profiles.Put(&entity.UserProfile{
		UserID:     userID,
		SkillLevel: valueobject.LevelIntermediate,
		Skills:     []entity.UserSkill{{SkillID: 1, Name: "Python", Proficiency: 4}},
	})
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	embedder.On("Encode", mock.Anything, mock.Anything).Return([]float32{0.8, 0.6}, nil)
	uc := project.NewGetProjectUseCase(projects, profiles, embeddings, embedder)

	detail, err := uc.Execute(context.Background(), 1, &userID)
	require.NoError(t, err)
	assert.Equal(t, "Weather API", detail.Title)
	assert.Len(t, detail.Skills, 2)
	require.NotNil(t, detail.MatchAnalysis)

	// 0.5*0.8 + 0.25*0.5 + 0.15*1 + 0.10*1
	assert.InDelta(t, 77.5, detail.MatchAnalysis.Score, 1e-9)
	assert.InDelta(t, 80.0, detail.MatchAnalysis.SemanticSimilarity, 1e-9)
	assert.Equal(t, []string{"Python"}, detail.MatchAnalysis.MatchingSkills)
	assert.Equal(t, []string{"FastAPI"}, detail.MatchAnalysis.MissingSkills)
}

func TestGetProject_OppositeVectorGivesZeroScore(t *testing.T) {
	projects, embeddings := seedCatalog()
	profiles := usecasetest.NewProfiles()
	userID := uuid.New()
	profiles.Put(&entity.UserProfile{
		UserID:     userID,
		SkillLevel: valueobject.LevelIntermediate,
		Skills:     []entity.UserSkill{{SkillID: 1, Name: "Python", Proficiency: 4}},
	})
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	embedder.On("Encode", mock.Anything, mock.Anything).Return([]float32{-1, 0}, nil)
	uc := project.NewGetProjectUseCase(projects, profiles, embeddings, embedder)

	detail, err := uc.Execute(context.Background(), 1, &userID)
	require.NoError(t, err)
	require.NotNil(t, detail.MatchAnalysis)
	assert.Equal(t, 0.0, detail.MatchAnalysis.Score)
	assert.Equal(t, 0.0, detail.MatchAnalysis.SemanticSimilarity)
}

func TestGetProject_WithoutEmbeddingOrProfile(t *testing.T) {
	projects, embeddings := seedCatalog()
	profiles := usecasetest.NewProfiles()
	userID := uuid.New()
	profiles.Put(&entity.UserProfile{UserID: userID, SkillLevel: valueobject.LevelBeginner})
	embedder := &usecasetest.MockEmbedder{Model: model}
	uc := project.NewGetProjectUseCase(projects, profiles, embeddings, embedder)

	// у проекта 3 нет вектора: близость 0, модель не вызывается
	detail, err := uc.Execute(context.Background(), 3, &userID)
	require.NoError(t, err)
	require.NotNil(t, detail.MatchAnalysis)
	assert.Equal(t, 0.0, detail.MatchAnalysis.SemanticSimilarity)
	embedder.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything)

	stranger := uuid.New()
	detail, err = uc.Execute(context.Background(), 3, &stranger)
	require.NoError(t, err)
	assert.Nil(t, detail.MatchAnalysis)

	detail, err = uc.Execute(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Nil(t, detail.MatchAnalysis)

	_, err = uc.Execute(context.Background(), 42, nil)
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)
}

func TestCreateProject(t *testing.T) {
	projects, embeddings := seedCatalog()
	projects.AddSkill(7, "Go")
	embedder := &usecasetest.MockEmbedder{Model: model, Dim: 2}
	embedder.On("EncodeBatch", mock.Anything, mock.Anything).Return([][]float32{{0, 1}}, nil)
	uc := project.NewCreateProjectUseCase(projects, embedder)

	p, err := uc.Execute(context.Background(), project.CreateProjectInput{
		Title:          "URL shortener",
		Description:    "HTTP service in Go",
		Difficulty:     "beginner",
		Source:         "curated",
		EstimatedHours: 6,
		Language:       "Go",
		SkillIDs:       []int64{7, 7},
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	require.Len(t, p.Skills, 1)
	assert.Equal(t, "Go", p.Skills[0].Name)

	emb, err := embeddings.Get(context.Background(), p.ID, model)
	require.NoError(t, err)
	require.NotNil(t, emb)
	assert.Equal(t, entity.ContentHash(recommend.ProjectText(p)), emb.ContentHash)
	assert.Equal(t, []float32{0, 1}, emb.Vector)
}

func TestCreateProject_EmbedderFailureAbortsInsert(t *testing.T) {
	projects, embeddings := seedCatalog()
	embedder := &usecasetest.MockEmbedder{Model: model}
	embedder.On("EncodeBatch", mock.Anything, mock.Anything).Return(nil, errors.New("503"))
	uc := project.NewCreateProjectUseCase(projects, embedder)

	_, err := uc.Execute(context.Background(), project.CreateProjectInput{
		Title: "X", Description: "Y", Difficulty: "beginner", Source: "github", EstimatedHours: 1,
	})
	assert.True(t, apperror.IsUpstreamUnavailable(err))

	n, _ := projects.Count(context.Background())
	assert.Equal(t, 3, n)
	count, _ := embeddings.Count(context.Background(), model)
	assert.Equal(t, 2, count)
}

func TestCreateProject_Validation(t *testing.T) {
	projects, _ := seedCatalog()
	uc := project.NewCreateProjectUseCase(projects, &usecasetest.MockEmbedder{Model: model})

	cases := []project.CreateProjectInput{
		{Title: "", Description: "d", Difficulty: "beginner", Source: "github", EstimatedHours: 1},
		{Title: "t", Description: "d", Difficulty: "guru", Source: "github", EstimatedHours: 1},
		{Title: "t", Description: "d", Difficulty: "beginner", Source: "gitlab", EstimatedHours: 1},
		{Title: "t", Description: "d", Difficulty: "beginner", Source: "github", EstimatedHours: 500},
		{Title: "t", Description: "d", Difficulty: "beginner", Source: "github", EstimatedHours: 1, SkillIDs: []int64{0}},
	}
	for _, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, apperror.IsValidation(err), "%+v", in)
	}
}

func TestListSources(t *testing.T) {
	projects, _ := seedCatalog()
	uc := project.NewListSourcesUseCase(projects)

	sources, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, len(valueobject.AllSources))
	assert.Equal(t, valueobject.SourceGithub, sources[0].Source)
	assert.Equal(t, 1, sources[0].Count)
	assert.Equal(t, 2, sources[1].Count)
	assert.Equal(t, "Data science competitions", sources[1].Description)
	assert.Equal(t, 0, sources[3].Count)
}

func TestListBySource_OrderedByStars(t *testing.T) {
	projects, _ := seedCatalog()
	uc := project.NewListBySourceUseCase(projects)

	list, err := uc.Execute(context.Background(), project.ListBySourceInput{Source: "kaggle_competition"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Sales dashboard", list[0].Title)

	list, err = uc.Execute(context.Background(), project.ListBySourceInput{Source: "kaggle_competition", Topic: "ml"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "House prices", list[0].Title)

	_, err = uc.Execute(context.Background(), project.ListBySourceInput{Source: "all"})
	assert.True(t, apperror.IsValidation(err))
}
