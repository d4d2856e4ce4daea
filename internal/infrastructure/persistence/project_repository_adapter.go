package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/repository/common"
)

type ProjectRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProjectRepositoryAdapter(db *sqlx.DB) *ProjectRepositoryAdapter {
	return &ProjectRepositoryAdapter{db: db}
}

func (r *ProjectRepositoryAdapter) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	row, err := common.GetByID[projectRow](ctx, r.db, "projects p", projectColumns, id, apperror.ErrProjectNotFound)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить проект")
	}

	project := row.toEntity()
	skills, err := r.SkillsByProjectIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	project.Skills = skills[id]
	return project, nil
}

func (r *ProjectRepositoryAdapter) ListWithSkills(ctx context.Context, filter entity.ProjectFilter) ([]*entity.Project, error) {
	var w whereBuilder
	applyProjectFilter(&w, filter)
	query := `SELECT ` + projectColumns + ` FROM projects p` + w.String() + ` ORDER BY p.id`

	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить каталог проектов")
	}

	projects := toProjects(rows)
	if err := r.attachSkills(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepositoryAdapter) SkillsByProjectIDs(ctx context.Context, ids []int64) (map[int64][]entity.ProjectSkill, error) {
	result := make(map[int64][]entity.ProjectSkill, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT ps.project_id, s.id AS skill_id, s.name, s.category, ps.is_required
		FROM project_skills ps
		JOIN skills s ON s.id = ps.skill_id
		WHERE ps.project_id = ANY($1)
		ORDER BY ps.project_id, s.name
	`
	var rows []projectSkillRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навыки проектов")
	}

	for _, row := range rows {
		result[row.ProjectID] = append(result[row.ProjectID], entity.ProjectSkill{
			SkillID:    row.SkillID,
			Name:       row.Name,
			Category:   row.Category,
			IsRequired: row.IsRequired,
		})
	}
	return result, nil
}

func (r *ProjectRepositoryAdapter) SearchKeyword(ctx context.Context, q string, filter entity.ProjectFilter, limit int) ([]*entity.Project, error) {
	var w whereBuilder
	applyProjectFilter(&w, filter)
	if q != "" {
		w.add("(p.title ILIKE ? OR p.description ILIKE ?)", "%"+q+"%")
	}
	query := `SELECT ` + projectColumns + ` FROM projects p` + w.String() +
		` ORDER BY p.id LIMIT ` + w.next(limit)

	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось выполнить поиск проектов")
	}
	return toProjects(rows), nil
}

func (r *ProjectRepositoryAdapter) ListBySource(ctx context.Context, filter entity.ProjectFilter, limit int) ([]*entity.Project, error) {
	var w whereBuilder
	applyProjectFilter(&w, filter)
	query := `SELECT ` + projectColumns + ` FROM projects p` + w.String() +
		` ORDER BY p.stars DESC, p.id LIMIT ` + w.next(limit)

	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить проекты источника")
	}
	return toProjects(rows), nil
}

// CreateWithEmbedding вставляет проект, навыки и вектор одной транзакцией:
// читатель видит либо всё, либо ничего.
func (r *ProjectRepositoryAdapter) CreateWithEmbedding(ctx context.Context, project *entity.Project, skillIDs []int64, emb *entity.ProjectEmbedding) error {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO projects (title, description, repo_url, difficulty, topics, estimated_hours, source, stars, language)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at
		`
		err := tx.QueryRowxContext(ctx, query,
			project.Title,
			project.Description,
			project.RepoURL,
			string(project.Difficulty),
			pq.Array(nonNil(project.Topics)),
			project.EstimatedHours,
			string(project.Source),
			project.Stars,
			project.Language,
		).Scan(&project.ID, &project.CreatedAt)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать проект")
		}

		if len(skillIDs) > 0 {
			bi := common.NewBatchInserter(tx, "INSERT INTO project_skills (project_id, skill_id, is_required)", 3, 100).
				WithSuffix("ON CONFLICT DO NOTHING")
			for _, skillID := range skillIDs {
				if err := bi.Add(ctx, project.ID, skillID, true); err != nil {
					return mapSkillInsertError(err)
				}
			}
			if err := bi.Flush(ctx); err != nil {
				return mapSkillInsertError(err)
			}
		}

		if emb != nil {
			emb.ProjectID = project.ID
			if err := upsertEmbedding(ctx, tx, emb); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	skills, err := r.SkillsByProjectIDs(ctx, []int64{project.ID})
	if err != nil {
		return err
	}
	project.Skills = skills[project.ID]
	return nil
}

func (r *ProjectRepositoryAdapter) CountBySource(ctx context.Context) (map[valueobject.Source]int, error) {
	rows, err := r.countGrouped(ctx, "source")
	if err != nil {
		return nil, err
	}
	out := make(map[valueobject.Source]int, len(rows))
	for k, v := range rows {
		out[valueobject.Source(k)] = v
	}
	return out, nil
}

func (r *ProjectRepositoryAdapter) CountByDifficulty(ctx context.Context) (map[valueobject.Level]int, error) {
	rows, err := r.countGrouped(ctx, "difficulty")
	if err != nil {
		return nil, err
	}
	out := make(map[valueobject.Level]int, len(rows))
	for k, v := range rows {
		out[valueobject.Level(k)] = v
	}
	return out, nil
}

func (r *ProjectRepositoryAdapter) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM projects`); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать проекты")
	}
	return n, nil
}

func (r *ProjectRepositoryAdapter) DifficultyStats(ctx context.Context) ([]entity.DifficultyStats, error) {
	var rows []struct {
		Difficulty   string  `db:"difficulty"`
		ProjectCount int     `db:"project_count"`
		AvgStars     float64 `db:"avg_stars"`
		AvgHours     float64 `db:"avg_hours"`
	}
	query := `
		SELECT difficulty,
		       COUNT(*) AS project_count,
		       ROUND(COALESCE(AVG(stars), 0)::numeric, 2)::float8 AS avg_stars,
		       ROUND(COALESCE(AVG(estimated_hours), 0)::numeric, 2)::float8 AS avg_hours
		FROM projects
		GROUP BY difficulty
		ORDER BY CASE difficulty
			WHEN 'beginner' THEN 1
			WHEN 'intermediate' THEN 2
			WHEN 'advanced' THEN 3
			ELSE 4
		END
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось собрать статистику по сложности")
	}
	out := make([]entity.DifficultyStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.DifficultyStats{
			Difficulty:   valueobject.Level(row.Difficulty),
			ProjectCount: row.ProjectCount,
			AvgStars:     row.AvgStars,
			AvgHours:     row.AvgHours,
		})
	}
	return out, nil
}

// SkillCombinations считает пары внутри проекта; в паре первым идёт навык с меньшим id.
func (r *ProjectRepositoryAdapter) SkillCombinations(ctx context.Context, limit int) ([]entity.SkillCombination, error) {
	var rows []struct {
		First        string `db:"skill_1"`
		Second       string `db:"skill_2"`
		ProjectCount int    `db:"project_count"`
	}
	query := `
		SELECT s1.name AS skill_1, s2.name AS skill_2, COUNT(*) AS project_count
		FROM project_skills a
		JOIN project_skills b ON b.project_id = a.project_id AND a.skill_id < b.skill_id
		JOIN skills s1 ON s1.id = a.skill_id
		JOIN skills s2 ON s2.id = b.skill_id
		WHERE a.is_required AND b.is_required
		GROUP BY s1.name, s2.name
		ORDER BY project_count DESC, skill_1, skill_2
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать сочетания навыков")
	}
	out := make([]entity.SkillCombination, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.SkillCombination{
			Skills:       [2]string{row.First, row.Second},
			ProjectCount: row.ProjectCount,
		})
	}
	return out, nil
}

// countGrouped принимает только имена колонок из кода, не из запроса пользователя.
func (r *ProjectRepositoryAdapter) countGrouped(ctx context.Context, column string) (map[string]int, error) {
	var rows []struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}
	query := fmt.Sprintf(`SELECT %s AS key, COUNT(*) AS count FROM projects GROUP BY %s`, column, column)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось собрать статистику проектов")
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (r *ProjectRepositoryAdapter) attachSkills(ctx context.Context, projects []*entity.Project) error {
	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	skills, err := r.SkillsByProjectIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range projects {
		p.Skills = skills[p.ID]
	}
	return nil
}

func mapSkillInsertError(err error) error {
	if common.IsForeignKeyViolation(err) {
		return apperror.Validation("skill_ids", "указан несуществующий навык")
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить навыки проекта")
}

// upsertEmbedding пишет вектор; повторная запись той же пары (проект, модель) перезаписывает её.
func upsertEmbedding(ctx context.Context, exec sqlx.ExecerContext, emb *entity.ProjectEmbedding) error {
	now := time.Now()
	if emb.CreatedAt.IsZero() {
		emb.CreatedAt = now
	}
	emb.UpdatedAt = now

	query := `
		INSERT INTO project_embeddings (project_id, model_version, embedding, content_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id, model_version) DO UPDATE
		SET embedding = EXCLUDED.embedding,
		    content_hash = EXCLUDED.content_hash,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := exec.ExecContext(ctx, query,
		emb.ProjectID,
		emb.ModelVersion,
		pgvector.NewVector(emb.Vector),
		emb.ContentHash,
		emb.CreatedAt,
		emb.UpdatedAt,
	)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return apperror.ErrProjectNotFound
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить эмбеддинг проекта")
	}
	return nil
}
