package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/profile"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/usecasetest"
)

func setup() (*usecasetest.Profiles, *profile.UpsertProfileUseCase, uuid.UUID) {
	repo := usecasetest.NewProfiles()
	repo.AddSkill(1, "Python")
	repo.AddSkill(2, "Go")
	userID := uuid.New()
	repo.AddUser(userID)
	return repo, profile.NewUpsertProfileUseCase(repo, repo), userID
}

func TestUpsertProfile_CreateAndReplace(t *testing.T) {
	repo, uc, userID := setup()
	ctx := context.Background()

	p, err := uc.Execute(ctx, profile.UpsertProfileInput{
		UserID:    userID,
		Interests: []string{" web ", "web", ""},
		Skills:    []profile.SkillInput{{SkillID: 1, Proficiency: 3}, {SkillID: 2, Proficiency: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, valueobject.LevelIntermediate, p.SkillLevel)
	assert.Equal(t, []string{"web"}, p.Interests)
	assert.Equal(t, []string{"Go", "Python"}, p.SkillNames())
	created := p.CreatedAt

	p, err = uc.Execute(ctx, profile.UpsertProfileInput{
		UserID:     userID,
		SkillLevel: "advanced",
		Skills:     []profile.SkillInput{{SkillID: 2, Proficiency: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, valueobject.LevelAdvanced, p.SkillLevel)
	assert.Equal(t, []string{"Go"}, p.SkillNames())
	assert.Equal(t, created, p.CreatedAt)

	got, err := profile.NewGetProfileUseCase(repo).Execute(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, got.Skills, 1)
}

func TestUpsertProfile_Errors(t *testing.T) {
	_, uc, userID := setup()
	ctx := context.Background()

	_, err := uc.Execute(ctx, profile.UpsertProfileInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)

	_, err = uc.Execute(ctx, profile.UpsertProfileInput{UserID: userID, SkillLevel: "guru"})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(ctx, profile.UpsertProfileInput{
		UserID: userID, Skills: []profile.SkillInput{{SkillID: 1, Proficiency: 6}},
	})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(ctx, profile.UpsertProfileInput{
		UserID: userID, Skills: []profile.SkillInput{{SkillID: 1, Proficiency: 2}, {SkillID: 1, Proficiency: 3}},
	})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(ctx, profile.UpsertProfileInput{
		UserID: userID, Skills: []profile.SkillInput{{SkillID: 77, Proficiency: 2}},
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestGetProfile_NotFound(t *testing.T) {
	repo, _, userID := setup()
	_, err := profile.NewGetProfileUseCase(repo).Execute(context.Background(), userID)
	assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
}
