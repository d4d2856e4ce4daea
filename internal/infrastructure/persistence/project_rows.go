package persistence

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
)

const projectColumns = `p.id, p.title, p.description, p.repo_url, p.difficulty, p.topics,
	p.estimated_hours, p.source, p.stars, p.language, p.created_at`

type projectRow struct {
	ID             int64          `db:"id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	RepoURL        sql.NullString `db:"repo_url"`
	Difficulty     string         `db:"difficulty"`
	Topics         pq.StringArray `db:"topics"`
	EstimatedHours int            `db:"estimated_hours"`
	Source         string         `db:"source"`
	Stars          int            `db:"stars"`
	Language       string         `db:"language"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (r *projectRow) toEntity() *entity.Project {
	p := &entity.Project{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Difficulty:     valueobject.Level(r.Difficulty),
		Topics:         []string(r.Topics),
		EstimatedHours: r.EstimatedHours,
		Source:         valueobject.Source(r.Source),
		Stars:          r.Stars,
		Language:       r.Language,
		CreatedAt:      r.CreatedAt,
	}
	if p.Topics == nil {
		p.Topics = []string{}
	}
	if r.RepoURL.Valid {
		url := r.RepoURL.String
		p.RepoURL = &url
	}
	return p
}

func toProjects(rows []projectRow) []*entity.Project {
	out := make([]*entity.Project, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out
}

type projectSkillRow struct {
	ProjectID  int64  `db:"project_id"`
	SkillID    int64  `db:"skill_id"`
	Name       string `db:"name"`
	Category   string `db:"category"`
	IsRequired bool   `db:"is_required"`
}

// whereBuilder собирает WHERE с позиционными параметрами $1, $2, ...
// Все "?" в одном условии ссылаются на один и тот же параметр.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

// next возвращает номер следующего параметра для LIMIT/OFFSET.
func (w *whereBuilder) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// applyProjectFilter переносит фильтр каталога в SQL, чтобы отсев шёл на стороне базы.
func applyProjectFilter(w *whereBuilder, f entity.ProjectFilter) {
	if f.Difficulty != nil {
		w.add("p.difficulty = ?", f.Difficulty.String())
	}
	if len(f.Sources) > 0 {
		sources := make([]string, 0, len(f.Sources))
		for _, s := range f.Sources {
			sources = append(sources, string(s))
		}
		w.add("p.source = ANY(?)", pq.Array(sources))
	}
	if f.Topic != "" {
		w.add("? = ANY(p.topics)", f.Topic)
	}
}
