package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/repository/common"
)

type SkillRepositoryAdapter struct {
	db *sqlx.DB
}

func NewSkillRepositoryAdapter(db *sqlx.DB) *SkillRepositoryAdapter {
	return &SkillRepositoryAdapter{db: db}
}

type skillRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Category string `db:"category"`
}

func (r *SkillRepositoryAdapter) List(ctx context.Context, category string) ([]entity.Skill, error) {
	var w whereBuilder
	if category != "" {
		w.add("category = ?", category)
	}
	query := `SELECT id, name, category FROM skills` + w.String() + ` ORDER BY name`

	var rows []skillRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить справочник навыков")
	}

	out := make([]entity.Skill, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Skill{ID: row.ID, Name: row.Name, Category: row.Category})
	}
	return out, nil
}

// Upsert не меняет категорию уже существующего навыка.
func (r *SkillRepositoryAdapter) Upsert(ctx context.Context, skills []entity.Skill) (map[string]int64, error) {
	ids := make(map[string]int64, len(skills))
	if len(skills) == 0 {
		return ids, nil
	}

	names := make([]string, 0, len(skills))
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		bi := common.NewBatchInserter(tx, "INSERT INTO skills (name, category)", 2, 100).
			WithSuffix("ON CONFLICT (name) DO NOTHING")
		for _, s := range skills {
			names = append(names, s.Name)
			if err := bi.Add(ctx, s.Name, s.Category); err != nil {
				return err
			}
		}
		if err := bi.Flush(ctx); err != nil {
			return err
		}

		var rows []skillRow
		query := `SELECT id, name, category FROM skills WHERE name = ANY($1)`
		if err := tx.SelectContext(ctx, &rows, query, pq.Array(names)); err != nil {
			return err
		}
		for _, row := range rows {
			ids[row.Name] = row.ID
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить справочник навыков")
	}
	return ids, nil
}
