package persistence

import (
	"context"
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/repository/common"
)

const interactionColumns = `id, user_id, project_id, interaction_type, rating, created_at`

type InteractionRepositoryAdapter struct {
	db *sqlx.DB
}

func NewInteractionRepositoryAdapter(db *sqlx.DB) *InteractionRepositoryAdapter {
	return &InteractionRepositoryAdapter{db: db}
}

type interactionRow struct {
	ID              int64         `db:"id"`
	UserID          uuid.UUID     `db:"user_id"`
	ProjectID       int64         `db:"project_id"`
	InteractionType string        `db:"interaction_type"`
	Rating          sql.NullInt64 `db:"rating"`
	CreatedAt       time.Time     `db:"created_at"`
}

func (r *interactionRow) toEntity() entity.Interaction {
	i := entity.Interaction{
		ID:        r.ID,
		UserID:    r.UserID,
		ProjectID: r.ProjectID,
		Type:      valueobject.InteractionType(r.InteractionType),
		CreatedAt: r.CreatedAt,
	}
	if r.Rating.Valid {
		v := int(r.Rating.Int64)
		i.Rating = &v
	}
	return i
}

type interactionWithProjectRow struct {
	interactionRow
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Difficulty     string         `db:"difficulty"`
	Topics         pq.StringArray `db:"topics"`
	RepoURL        sql.NullString `db:"repo_url"`
	EstimatedHours int            `db:"estimated_hours"`
	Source         string         `db:"source"`
}

func (r *InteractionRepositoryAdapter) Create(ctx context.Context, in *entity.Interaction) error {
	query := `
		INSERT INTO user_project_interactions (user_id, project_id, interaction_type, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		in.UserID,
		in.ProjectID,
		string(in.Type),
		in.Rating,
		in.CreatedAt,
	).Scan(&in.ID)
	if err != nil {
		return mapInteractionWriteError(err, "не удалось сохранить взаимодействие")
	}
	return nil
}

func (r *InteractionRepositoryAdapter) FindByID(ctx context.Context, id int64) (*entity.Interaction, error) {
	row, err := common.GetByID[interactionRow](ctx, r.db, "user_project_interactions", interactionColumns, id, apperror.ErrInteractionNotFound)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить взаимодействие")
	}
	in := row.toEntity()
	return &in, nil
}

func (r *InteractionRepositoryAdapter) Update(ctx context.Context, in *entity.Interaction) error {
	query := `
		UPDATE user_project_interactions
		SET interaction_type = $2, rating = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, in.ID, string(in.Type), in.Rating)
	if err != nil {
		return mapInteractionWriteError(err, "не удалось обновить взаимодействие")
	}
	return expectAffected(result, apperror.ErrInteractionNotFound)
}

func (r *InteractionRepositoryAdapter) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_project_interactions WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить взаимодействие")
	}
	return expectAffected(result, apperror.ErrInteractionNotFound)
}

func (r *InteractionRepositoryAdapter) ListByUser(ctx context.Context, userID uuid.UUID, filter repository.InteractionFilter) ([]entity.InteractionWithProject, error) {
	var w whereBuilder
	w.add("i.user_id = ?", userID)
	if filter.Type != nil {
		w.add("i.interaction_type = ?", string(*filter.Type))
	}

	query := `
		SELECT i.id, i.user_id, i.project_id, i.interaction_type, i.rating, i.created_at,
		       p.title, p.description, p.difficulty, p.topics, p.repo_url, p.estimated_hours, p.source
		FROM user_project_interactions i
		JOIN projects p ON p.id = i.project_id` + w.String() + `
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT ` + w.next(filter.Limit) + ` OFFSET ` + w.next(filter.Offset)

	var rows []interactionWithProjectRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить историю взаимодействий")
	}

	out := make([]entity.InteractionWithProject, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		item := entity.InteractionWithProject{
			Interaction:        row.interactionRow.toEntity(),
			ProjectTitle:       row.Title,
			ProjectDescription: row.Description,
			Difficulty:         valueobject.Level(row.Difficulty),
			Topics:             nonNil([]string(row.Topics)),
			EstimatedHours:     row.EstimatedHours,
			Source:             valueobject.Source(row.Source),
		}
		if row.RepoURL.Valid {
			url := row.RepoURL.String
			item.RepoURL = &url
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *InteractionRepositoryAdapter) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]entity.Bookmark, error) {
	var rows []struct {
		projectRow
		BookmarkedAt time.Time `db:"bookmarked_at"`
	}
	query := `SELECT ` + projectColumns + `, i.created_at AS bookmarked_at
		FROM user_project_interactions i
		JOIN projects p ON p.id = i.project_id
		WHERE i.user_id = $1 AND i.interaction_type = $2
		ORDER BY i.created_at DESC, i.id DESC`
	if err := r.db.SelectContext(ctx, &rows, query, userID, string(valueobject.InteractionBookmarked)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить закладки")
	}

	out := make([]entity.Bookmark, 0, len(rows))
	for i := range rows {
		out = append(out, entity.Bookmark{
			Project:      *rows[i].projectRow.toEntity(),
			BookmarkedAt: rows[i].BookmarkedAt,
		})
	}
	return out, nil
}

func (r *InteractionRepositoryAdapter) Stats(ctx context.Context, userID uuid.UUID, since time.Time) (*entity.InteractionStats, error) {
	var byType []struct {
		Type  string `db:"interaction_type"`
		Count int    `db:"count"`
	}
	query := `
		SELECT interaction_type, COUNT(*) AS count
		FROM user_project_interactions
		WHERE user_id = $1
		GROUP BY interaction_type
	`
	if err := r.db.SelectContext(ctx, &byType, query, userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать взаимодействия")
	}

	stats := &entity.InteractionStats{ByType: make(map[string]int, len(byType))}
	for _, row := range byType {
		stats.ByType[row.Type] = row.Count
		stats.TotalInteractions += row.Count
	}

	var avg sql.NullFloat64
	avgQuery := `SELECT AVG(rating) FROM user_project_interactions WHERE user_id = $1 AND rating IS NOT NULL`
	if err := r.db.GetContext(ctx, &avg, avgQuery, userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать средний рейтинг")
	}
	if avg.Valid {
		v := math.Round(avg.Float64*100) / 100
		stats.AverageRating = &v
	}

	recentQuery := `SELECT COUNT(*) FROM user_project_interactions WHERE user_id = $1 AND created_at >= $2`
	if err := r.db.GetContext(ctx, &stats.RecentActivity30d, recentQuery, userID, since); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать недавнюю активность")
	}
	return stats, nil
}

// ActivitySummary собирает сводку одним запросом, чтобы все счётчики были согласованы.
func (r *InteractionRepositoryAdapter) ActivitySummary(ctx context.Context, userID uuid.UUID, since time.Time) (*entity.ActivitySummary, error) {
	var row struct {
		Total          int             `db:"total"`
		Viewed         int             `db:"viewed"`
		Bookmarked     int             `db:"bookmarked"`
		Started        int             `db:"started"`
		Completed      int             `db:"completed"`
		AvgRating      sql.NullFloat64 `db:"avg_rating"`
		LearningHours  int             `db:"learning_hours"`
		SkillsCount    int             `db:"skills_count"`
		ActiveCategory sql.NullString  `db:"active_category"`
		Recent         int             `db:"recent"`
	}
	query := `
		SELECT COUNT(i.id) AS total,
		       COUNT(i.id) FILTER (WHERE i.interaction_type = 'viewed') AS viewed,
		       COUNT(i.id) FILTER (WHERE i.interaction_type = 'bookmarked') AS bookmarked,
		       COUNT(i.id) FILTER (WHERE i.interaction_type = 'started') AS started,
		       COUNT(i.id) FILTER (WHERE i.interaction_type = 'completed') AS completed,
		       AVG(i.rating) AS avg_rating,
		       COALESCE(SUM(p.estimated_hours) FILTER (WHERE i.interaction_type = 'completed'), 0) AS learning_hours,
		       (SELECT COUNT(*) FROM user_skills us WHERE us.user_id = $1) AS skills_count,
		       (SELECT s.category
		          FROM user_project_interactions ui
		          JOIN project_skills ps ON ps.project_id = ui.project_id
		          JOIN skills s ON s.id = ps.skill_id
		         WHERE ui.user_id = $1 AND s.category <> ''
		         GROUP BY s.category
		         ORDER BY COUNT(*) DESC, s.category
		         LIMIT 1) AS active_category,
		       COUNT(i.id) FILTER (WHERE i.created_at >= $2) AS recent
		FROM user_project_interactions i
		JOIN projects p ON p.id = i.project_id
		WHERE i.user_id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, userID, since); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось собрать сводку активности")
	}

	summary := &entity.ActivitySummary{
		TotalInteractions:  row.Total,
		ProjectsViewed:     row.Viewed,
		ProjectsBookmarked: row.Bookmarked,
		ProjectsStarted:    row.Started,
		ProjectsCompleted:  row.Completed,
		TotalLearningHours: row.LearningHours,
		SkillsCount:        row.SkillsCount,
		RecentActivity7d:   row.Recent,
	}
	if row.AvgRating.Valid {
		v := math.Round(row.AvgRating.Float64*100) / 100
		summary.AverageRating = &v
	}
	if row.ActiveCategory.Valid {
		category := row.ActiveCategory.String
		summary.MostActiveCategory = &category
	}
	return summary, nil
}

func (r *InteractionRepositoryAdapter) DeleteViewedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_project_interactions WHERE interaction_type = $1 AND created_at < $2`,
		string(valueobject.InteractionViewed), cutoff,
	)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить старые просмотры")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат операции")
	}
	return n, nil
}

func mapInteractionWriteError(err error, message string) error {
	switch {
	case common.IsUniqueViolation(err):
		return apperror.ErrInteractionExists
	case common.IsForeignKeyViolation(err):
		if strings.Contains(common.ConstraintName(err), "project") {
			return apperror.ErrProjectNotFound
		}
		return apperror.ErrUserNotFound
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат операции")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
