package recommendation

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/metrics"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50

	// candidateFactor - во сколько раз больше кандидатов берётся из
	// векторного поиска перед пересчётом гибридного балла.
	candidateFactor = 2
)

type GetRecommendationsInput struct {
	UserID       uuid.UUID
	Limit        int
	Algorithm    string
	SourceFilter string
}

type strategyRequest struct {
	profile *entity.UserProfile
	filter  entity.ProjectFilter
	limit   int
}

type strategyFunc func(ctx context.Context, req strategyRequest) ([]entity.Recommendation, error)

type GetRecommendationsUseCase struct {
	profiles      repository.ProfileRepository
	projects      repository.ProjectRepository
	embeddings    repository.EmbeddingStore
	embedder      repository.Embedder
	scanWarnLimit int
	strategies    map[valueobject.Algorithm]strategyFunc
}

// NewGetRecommendationsUseCase создаёт оркестратор рекомендаций.
// scanWarnLimit - размер каталога, после которого полный перебор пишет предупреждение.
func NewGetRecommendationsUseCase(
	profiles repository.ProfileRepository,
	projects repository.ProjectRepository,
	embeddings repository.EmbeddingStore,
	embedder repository.Embedder,
	scanWarnLimit int,
) *GetRecommendationsUseCase {
	uc := &GetRecommendationsUseCase{
		profiles:      profiles,
		projects:      projects,
		embeddings:    embeddings,
		embedder:      embedder,
		scanWarnLimit: scanWarnLimit,
	}
	uc.strategies = map[valueobject.Algorithm]strategyFunc{
		valueobject.AlgorithmHybrid:      uc.hybrid,
		valueobject.AlgorithmSemantic:    uc.semantic,
		valueobject.AlgorithmTraditional: uc.traditional,
	}
	return uc
}

func (uc *GetRecommendationsUseCase) Execute(ctx context.Context, input GetRecommendationsInput) (*entity.RecommendationSet, error) {
	algorithm, err := valueobject.NewAlgorithm(input.Algorithm)
	if err != nil {
		return nil, err
	}
	source, err := valueobject.ParseSourceFilter(input.SourceFilter)
	if err != nil {
		return nil, err
	}
	limit, err := NormalizeLimit(input.Limit)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	profile, err := uc.profiles.FindByUserID(ctx, input.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			metrics.ObserveRecommendation(string(algorithm), metrics.OutcomeNoProfile, started)
			return nil, apperror.ErrNoProfile
		}
		metrics.ObserveRecommendation(string(algorithm), metrics.OutcomeError, started)
		return nil, err
	}

	var filter entity.ProjectFilter
	sourceFilter := valueobject.SourceAll
	if source != nil {
		filter.Sources = []valueobject.Source{*source}
		sourceFilter = string(*source)
	}

	recs, err := uc.strategies[algorithm](ctx, strategyRequest{profile: profile, filter: filter, limit: limit})
	if err != nil {
		metrics.ObserveRecommendation(string(algorithm), metrics.OutcomeError, started)
		logger.L().WithFields(logrus.Fields{
			"user_id":   input.UserID,
			"algorithm": algorithm,
		}).WithError(err).Error("Не удалось построить рекомендации")
		return nil, err
	}
	metrics.ObserveRecommendation(string(algorithm), metrics.OutcomeSuccess, started)

	logger.L().WithFields(logrus.Fields{
		"user_id":   input.UserID,
		"algorithm": algorithm,
		"source":    sourceFilter,
		"returned":  len(recs),
		"took_ms":   time.Since(started).Milliseconds(),
	}).Debug("Рекомендации построены")

	return &entity.RecommendationSet{
		Recommendations: recs,
		Algorithm:       algorithm,
		SourceFilter:    sourceFilter,
		ProfileSummary:  profile.Summary(),
	}, nil
}

// NormalizeLimit подставляет DefaultLimit вместо нуля и проверяет диапазон 1..MaxLimit.
func NormalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultLimit, nil
	}
	if limit < 1 || limit > MaxLimit {
		return 0, apperror.Validation("limit", "допустимый диапазон от 1 до 50")
	}
	return limit, nil
}

// retrieve кодирует запрос пользователя и отбирает до 2·limit ближайших проектов.
func (uc *GetRecommendationsUseCase) retrieve(ctx context.Context, req strategyRequest) ([]recommend.ScoredProject, error) {
	query, err := uc.embedder.Encode(ctx, recommend.UserQueryText(req.profile))
	if err != nil {
		return nil, upstream(err)
	}
	candidates, err := uc.embeddings.Scan(ctx, uc.embedder.ModelVersion(), req.filter)
	if err != nil {
		return nil, err
	}
	return recommend.Search(query, candidates, candidateFactor*req.limit, req.filter), nil
}

func (uc *GetRecommendationsUseCase) hybrid(ctx context.Context, req strategyRequest) ([]entity.Recommendation, error) {
	scored, err := uc.retrieve(ctx, req)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(scored))
	for _, s := range scored {
		ids = append(ids, s.Project.ID)
	}
	skills, err := uc.projects.SkillsByProjectIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	recs := make([]entity.Recommendation, 0, len(scored))
	for _, s := range scored {
		s.Project.Skills = skills[s.Project.ID]
		score := recommend.HybridScore(req.profile, s.Project, s.Similarity)
		rec := entity.NewRecommendation(s.Project, score.Value, score.Matching, score.Missing, score.Reason).
			WithSemantic(s.Similarity)
		recs = append(recs, rec)
	}
	return rankAndTruncate(recs, req.limit), nil
}

func (uc *GetRecommendationsUseCase) semantic(ctx context.Context, req strategyRequest) ([]entity.Recommendation, error) {
	scored, err := uc.retrieve(ctx, req)
	if err != nil {
		return nil, err
	}

	recs := make([]entity.Recommendation, 0, min(len(scored), req.limit))
	for _, s := range scored {
		if len(recs) == req.limit {
			break
		}
		rec := entity.NewRecommendation(s.Project, s.Similarity, nil, nil, recommend.ReasonSemanticOnly).
			WithSemantic(s.Similarity)
		recs = append(recs, rec)
	}
	return recs, nil
}

func (uc *GetRecommendationsUseCase) traditional(ctx context.Context, req strategyRequest) ([]entity.Recommendation, error) {
	projects, err := uc.projects.ListWithSkills(ctx, req.filter)
	if err != nil {
		return nil, err
	}
	if uc.scanWarnLimit > 0 && len(projects) > uc.scanWarnLimit {
		logger.L().WithFields(logrus.Fields{
			"catalog_size": len(projects),
			"threshold":    uc.scanWarnLimit,
		}).Warn("Полный перебор каталога для рекомендаций по навыкам")
	}

	userSkills := req.profile.SkillNames()
	recs := make([]entity.Recommendation, 0, len(projects))
	for _, p := range projects {
		m := recommend.MatchSkills(userSkills, p.SkillNames())
		recs = append(recs, entity.NewRecommendation(p, m.Score, m.Matching, m.Missing, recommend.ReasonSkillBased))
	}
	return rankAndTruncate(recs, req.limit), nil
}

// rankAndTruncate сортирует по баллу (при равенстве сохраняется порядок входа) и обрезает до limit.
func rankAndTruncate(recs []entity.Recommendation, limit int) []entity.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RawScore() > recs[j].RawScore()
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func upstream(err error) error {
	if apperror.IsUpstreamUnavailable(err) {
		return err
	}
	return apperror.Upstream(err, apperror.ErrEmbedderUnavailable.Message)
}
