package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/repository/common"
)

type ProfileRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProfileRepositoryAdapter(db *sqlx.DB) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{db: db}
}

type profileRow struct {
	UserID                uuid.UUID      `db:"user_id"`
	SkillLevel            string         `db:"skill_level"`
	Interests             pq.StringArray `db:"interests"`
	Bio                   string         `db:"bio"`
	GithubUsername        string         `db:"github_username"`
	PreferredProjectTypes pq.StringArray `db:"preferred_project_types"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

type userSkillRow struct {
	SkillID     int64  `db:"skill_id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Proficiency int    `db:"proficiency"`
}

// FindByUserID читает профиль и навыки в одном снимке базы, чтобы
// параллельный Replace не смешал старый профиль с новым набором навыков.
func (r *ProfileRepositoryAdapter) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	var (
		row    profileRow
		skills []userSkillRow
	)
	err := common.WithReadSnapshot(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			SELECT user_id, skill_level, interests, bio, github_username, preferred_project_types, created_at, updated_at
			FROM user_profiles
			WHERE user_id = $1
		`
		if err := tx.GetContext(ctx, &row, query, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.ErrProfileNotFound
			}
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить профиль")
		}

		skillsQuery := `
			SELECT us.skill_id, s.name, s.category, us.proficiency
			FROM user_skills us
			JOIN skills s ON s.id = us.skill_id
			WHERE us.user_id = $1
			ORDER BY s.name
		`
		if err := tx.SelectContext(ctx, &skills, skillsQuery, userID); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навыки пользователя")
		}
		return nil
	})
	if err != nil {
		if apperror.CodeOf(err) == apperror.ErrCodeInternal {
			return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить профиль")
		}
		return nil, err
	}

	profile := &entity.UserProfile{
		UserID:                row.UserID,
		SkillLevel:            valueobject.Level(row.SkillLevel),
		Interests:             []string(row.Interests),
		Bio:                   row.Bio,
		GithubUsername:        row.GithubUsername,
		PreferredProjectTypes: []string(row.PreferredProjectTypes),
		Skills:                make([]entity.UserSkill, 0, len(skills)),
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
	for _, s := range skills {
		profile.Skills = append(profile.Skills, entity.UserSkill{
			SkillID:     s.SkillID,
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
		})
	}
	return profile, nil
}

// Replace записывает профиль и полностью заменяет набор навыков в одной транзакции.
func (r *ProfileRepositoryAdapter) Replace(ctx context.Context, profile *entity.UserProfile) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO user_profiles (user_id, skill_level, interests, bio, github_username, preferred_project_types, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id) DO UPDATE
			SET skill_level = EXCLUDED.skill_level,
			    interests = EXCLUDED.interests,
			    bio = EXCLUDED.bio,
			    github_username = EXCLUDED.github_username,
			    preferred_project_types = EXCLUDED.preferred_project_types,
			    updated_at = EXCLUDED.updated_at
		`
		_, err := tx.ExecContext(ctx, query,
			profile.UserID,
			string(profile.SkillLevel),
			pq.Array(nonNil(profile.Interests)),
			profile.Bio,
			profile.GithubUsername,
			pq.Array(nonNil(profile.PreferredProjectTypes)),
			profile.CreatedAt,
			profile.UpdatedAt,
		)
		if err != nil {
			if common.IsForeignKeyViolation(err) {
				return apperror.ErrUserNotFound
			}
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить профиль")
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = $1`, profile.UserID); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось очистить навыки пользователя")
		}

		if len(profile.Skills) == 0 {
			return nil
		}
		bi := common.NewBatchInserter(tx, "INSERT INTO user_skills (user_id, skill_id, proficiency)", 3, 100)
		for _, s := range profile.Skills {
			if err := bi.Add(ctx, profile.UserID, s.SkillID, s.Proficiency); err != nil {
				return mapUserSkillError(err)
			}
		}
		if err := bi.Flush(ctx); err != nil {
			return mapUserSkillError(err)
		}
		return nil
	})
}

func (r *ProfileRepositoryAdapter) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM user_profiles`); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать профили")
	}
	return n, nil
}

func mapUserSkillError(err error) error {
	if common.IsForeignKeyViolation(err) {
		return apperror.Validation("skill_id", "указан несуществующий навык")
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить навыки пользователя")
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// UserRepositoryAdapter отвечает только на вопрос о существовании пользователя:
// учётными записями управляет другой сервис.
type UserRepositoryAdapter struct {
	db *sqlx.DB
}

func NewUserRepositoryAdapter(db *sqlx.DB) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{db: db}
}

func (r *UserRepositoryAdapter) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить пользователя")
	}
	return exists, nil
}
