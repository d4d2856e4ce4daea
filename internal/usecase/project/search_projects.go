package project

import (
	"context"
	"strings"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100

	SearchTypeSemantic = "semantic"
	SearchTypeKeyword  = "keyword"
)

type SearchProjectsInput struct {
	Query       string
	Difficulty  string
	Source      string
	UseSemantic bool
	Limit       int
}

// SearchHit - проект в выдаче поиска. Similarity заполняется только в семантическом режиме.
type SearchHit struct {
	*entity.Project
	Similarity *float64 `json:"similarity,omitempty"`
}

type SearchFilters struct {
	Difficulty *string `json:"difficulty"`
	Source     *string `json:"source"`
}

type SearchResult struct {
	Projects   []SearchHit   `json:"projects"`
	Count      int           `json:"count"`
	SearchType string        `json:"search_type"`
	Filters    SearchFilters `json:"filters"`
}

type SearchProjectsUseCase struct {
	projects   repository.ProjectRepository
	embeddings repository.EmbeddingStore
	embedder   repository.Embedder
}

func NewSearchProjectsUseCase(projects repository.ProjectRepository, embeddings repository.EmbeddingStore, embedder repository.Embedder) *SearchProjectsUseCase {
	return &SearchProjectsUseCase{projects: projects, embeddings: embeddings, embedder: embedder}
}

// Execute ищет семантически только при UseSemantic и непустом запросе,
// иначе подстрокой по названию и описанию.
func (uc *SearchProjectsUseCase) Execute(ctx context.Context, input SearchProjectsInput) (*SearchResult, error) {
	limit, err := normalizeLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)
	if err != nil {
		return nil, err
	}
	filter, filters, err := buildFilter(input.Difficulty, input.Source)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(input.Query)
	result := &SearchResult{Filters: filters}

	if input.UseSemantic && query != "" {
		vector, err := uc.embedder.Encode(ctx, query)
		if err != nil {
			return nil, upstream(err)
		}
		candidates, err := uc.embeddings.Scan(ctx, uc.embedder.ModelVersion(), filter)
		if err != nil {
			return nil, err
		}
		scored := recommend.Search(vector, candidates, limit, filter)
		result.SearchType = SearchTypeSemantic
		result.Projects = make([]SearchHit, 0, len(scored))
		for _, s := range scored {
			similarity := entity.Percent(s.Similarity)
			result.Projects = append(result.Projects, SearchHit{Project: s.Project, Similarity: &similarity})
		}
	} else {
		projects, err := uc.projects.SearchKeyword(ctx, query, filter, limit)
		if err != nil {
			return nil, err
		}
		result.SearchType = SearchTypeKeyword
		result.Projects = make([]SearchHit, 0, len(projects))
		for _, p := range projects {
			result.Projects = append(result.Projects, SearchHit{Project: p})
		}
	}

	result.Count = len(result.Projects)
	return result, nil
}

func buildFilter(difficulty, source string) (entity.ProjectFilter, SearchFilters, error) {
	var (
		filter  entity.ProjectFilter
		filters SearchFilters
	)
	level, err := valueobject.ParseOptionalLevel(difficulty)
	if err != nil {
		return filter, filters, err
	}
	if level != nil {
		filter.Difficulty = level
		d := level.String()
		filters.Difficulty = &d
	}
	src, err := valueobject.ParseSourceFilter(source)
	if err != nil {
		return filter, filters, err
	}
	if src != nil {
		filter.Sources = []valueobject.Source{*src}
		s := string(*src)
		filters.Source = &s
	}
	return filter, filters, nil
}

func normalizeLimit(limit, def, max int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 1 || limit > max {
		return 0, apperror.Newf(apperror.ErrCodeValidation, "limit: допустимый диапазон от 1 до %d", max)
	}
	return limit, nil
}

func upstream(err error) error {
	if apperror.IsUpstreamUnavailable(err) {
		return err
	}
	return apperror.Upstream(err, apperror.ErrEmbedderUnavailable.Message)
}
