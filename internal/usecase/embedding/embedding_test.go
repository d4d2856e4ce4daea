package embedding_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	embedder "github.com/ignatzorin/projectmatch-backend/internal/infrastructure/embedding"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/embedding"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/usecasetest"
)

func catalogOf(n int) (*usecasetest.Projects, *usecasetest.Embeddings) {
	projects, embeddings := usecasetest.NewCatalog()
	for i := 1; i <= n; i++ {
		projects.Add(&entity.Project{
			Title:          fmt.Sprintf("Project %d", i),
			Description:    "Learning project",
			Difficulty:     valueobject.LevelBeginner,
			Source:         valueobject.SourceCurated,
			EstimatedHours: 10,
		})
	}
	return projects, embeddings
}

func TestEnsureEmbedding(t *testing.T) {
	projects, embeddings := catalogOf(1)
	model := embedder.NewDeterministic(16)
	uc := embedding.NewEnsureEmbeddingUseCase(projects, embeddings, model)
	ctx := context.Background()

	res, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, embedding.StatusCreated, res.Status)
	assert.Equal(t, 16, res.Dimension)

	res, err = uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, embedding.StatusUnchanged, res.Status)

	// изменился текст проекта: вектор устарел
	projects.Add(&entity.Project{
		ID: 1, Title: "Project 1", Description: "Rewritten description",
		Difficulty: valueobject.LevelBeginner, Source: valueobject.SourceCurated, EstimatedHours: 10,
	})
	res, err = uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, embedding.StatusRegenerated, res.Status)

	_, err = uc.Execute(ctx, 99)
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)
}

func TestEnsureEmbedding_OtherModelVersionIsStale(t *testing.T) {
	projects, embeddings := catalogOf(1)
	model := embedder.NewDeterministic(4)
	p, _ := projects.FindByID(context.Background(), 1)
	embeddings.Seed(1, "old-model", []float32{1, 0, 0, 0}, entity.ContentHash(recommend.ProjectText(p)))

	res, err := embedding.NewEnsureEmbeddingUseCase(projects, embeddings, model).Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, embedding.StatusCreated, res.Status)
	assert.Equal(t, embedder.DeterministicModelVersion, res.ModelVersion)
}

func TestRegenerateEmbedding_AlwaysWrites(t *testing.T) {
	projects, embeddings := catalogOf(1)
	mockModel := &usecasetest.MockEmbedder{Model: "m", Dim: 2}
	mockModel.On("EncodeBatch", mock.Anything, mock.Anything).Return([][]float32{{1, 0}}, nil).Once()
	mockModel.On("EncodeBatch", mock.Anything, mock.Anything).Return([][]float32{{0, 1}}, nil).Once()
	uc := embedding.NewRegenerateEmbeddingUseCase(projects, embeddings, mockModel)

	for i := 0; i < 2; i++ {
		res, err := uc.Execute(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, embedding.StatusRegenerated, res.Status)
	}
	emb, err := embeddings.Get(context.Background(), 1, "m")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, emb.Vector)
	mockModel.AssertExpectations(t)
}

func TestRegenerateEmbedding_UpstreamFailure(t *testing.T) {
	projects, embeddings := catalogOf(1)
	mockModel := &usecasetest.MockEmbedder{Model: "m"}
	mockModel.On("EncodeBatch", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := embedding.NewRegenerateEmbeddingUseCase(projects, embeddings, mockModel).Execute(context.Background(), 1)
	assert.True(t, apperror.IsUpstreamUnavailable(err))
	count, _ := embeddings.Count(context.Background(), "m")
	assert.Zero(t, count)
}

func TestPendingEmbeddings(t *testing.T) {
	projects, embeddings := catalogOf(3)
	model := embedder.NewDeterministic(8)
	p1, _ := projects.FindByID(context.Background(), 1)
	embeddings.Seed(1, model.ModelVersion(), []float32{1}, entity.ContentHash(recommend.ProjectText(p1)))
	embeddings.Seed(2, model.ModelVersion(), []float32{1}, "outdated")

	pending, err := embedding.NewPendingEmbeddingsUseCase(projects, embeddings, model).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(2), pending[0].ProjectID)
	assert.Equal(t, embedding.ReasonStale, pending[0].Reason)
	assert.Equal(t, int64(3), pending[1].ProjectID)
	assert.Equal(t, embedding.ReasonMissing, pending[1].Reason)
	assert.Contains(t, pending[1].Text, "Project 3")
}

func TestBackfillEmbeddings(t *testing.T) {
	projects, embeddings := catalogOf(5)
	model := embedder.NewDeterministic(8)
	uc := embedding.NewBackfillEmbeddingsUseCase(projects, embeddings, model, 2, 2)

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, report.Pending)
	assert.Equal(t, 5, report.Embedded)
	assert.Equal(t, 3, report.Batches)

	count, _ := embeddings.Count(context.Background(), model.ModelVersion())
	assert.Equal(t, 5, count)

	report, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Pending)
	assert.Zero(t, report.Batches)
}

func TestBackfillEmbeddings_BatchFailureIsAllOrNothing(t *testing.T) {
	projects, embeddings := catalogOf(2)
	mockModel := &usecasetest.MockEmbedder{Model: "m"}
	mockModel.On("EncodeBatch", mock.Anything, mock.Anything).Return(nil, errors.New("model crashed"))

	report, err := embedding.NewBackfillEmbeddingsUseCase(projects, embeddings, mockModel, 10, 1).Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstreamUnavailable(err))
	assert.Equal(t, 2, report.Pending)
	assert.Zero(t, report.Embedded)

	count, _ := embeddings.Count(context.Background(), "m")
	assert.Zero(t, count)
}

func TestSystemStats(t *testing.T) {
	projects, embeddings := catalogOf(3)
	profiles := usecasetest.NewProfiles()
	profiles.Put(&entity.UserProfile{UserID: uuid.New(), SkillLevel: valueobject.LevelBeginner})
	model := embedder.NewDeterministic(8)
	embeddings.Seed(1, model.ModelVersion(), []float32{1}, "h")
	embeddings.Seed(2, "other", []float32{1}, "h")

	stats, err := embedding.NewSystemStatsUseCase(projects, profiles, embeddings, model).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProjects)
	assert.Equal(t, 1, stats.EmbeddedProjects)
	assert.InDelta(t, 33.3, stats.CoveragePercent, 1e-9)
	assert.Equal(t, 3, stats.ByDifficulty[valueobject.LevelBeginner])
	assert.Equal(t, 3, stats.BySource[valueobject.SourceCurated])
	assert.Equal(t, 1, stats.TotalUserProfiles)
	assert.Equal(t, 8, stats.Dimension)
}
