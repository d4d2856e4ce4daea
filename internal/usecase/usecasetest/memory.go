// Package usecasetest содержит хранилища в памяти и заглушку модели
// эмбеддингов для тестов сценариев. Поведение повторяет SQL-адаптеры:
// те же ошибки, тот же порядок выдачи.
package usecasetest

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

type embeddingKey struct {
	projectID    int64
	modelVersion string
}

type catalog struct {
	mu         sync.Mutex
	nextID     int64
	nextSkill  int64
	skills     map[int64]entity.Skill
	projects   map[int64]*entity.Project
	embeddings map[embeddingKey]*entity.ProjectEmbedding
}

// Projects - каталог проектов в памяти.
type Projects struct{ c *catalog }

// Embeddings - хранилище векторов в памяти, разделяющее каталог с Projects.
type Embeddings struct{ c *catalog }

// NewCatalog создаёт связанные каталог проектов и хранилище векторов.
func NewCatalog() (*Projects, *Embeddings) {
	c := &catalog{
		skills:     make(map[int64]entity.Skill),
		projects:   make(map[int64]*entity.Project),
		embeddings: make(map[embeddingKey]*entity.ProjectEmbedding),
	}
	return &Projects{c: c}, &Embeddings{c: c}
}

func cloneProject(p *entity.Project, withSkills bool) *entity.Project {
	cp := *p
	cp.Topics = append([]string{}, p.Topics...)
	cp.Skills = nil
	if withSkills {
		cp.Skills = append([]entity.ProjectSkill(nil), p.Skills...)
	}
	return &cp
}

// AddSkill регистрирует навык в справочнике.
func (r *Projects) AddSkill(id int64, name string) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.putSkill(entity.Skill{ID: id, Name: name})
}

func (c *catalog) putSkill(s entity.Skill) {
	if s.ID > c.nextSkill {
		c.nextSkill = s.ID
	}
	c.skills[s.ID] = s
}

// Skills возвращает справочник навыков, общий с каталогом.
func (r *Projects) Skills() *Skills { return &Skills{c: r.c} }

// Skills - справочник навыков в памяти.
type Skills struct{ c *catalog }

func (r *Skills) List(_ context.Context, category string) ([]entity.Skill, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	out := make([]entity.Skill, 0, len(r.c.skills))
	for _, s := range r.c.skills {
		if category == "" || s.Category == category {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Skills) Upsert(_ context.Context, skills []entity.Skill) (map[string]int64, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	byName := make(map[string]int64, len(r.c.skills))
	for id, s := range r.c.skills {
		byName[s.Name] = id
	}
	ids := make(map[string]int64, len(skills))
	for _, s := range skills {
		id, ok := byName[s.Name]
		if !ok {
			r.c.nextSkill++
			id = r.c.nextSkill
			r.c.skills[id] = entity.Skill{ID: id, Name: s.Name, Category: s.Category}
			byName[s.Name] = id
		}
		ids[s.Name] = id
	}
	return ids, nil
}

// Add кладёт проект в каталог. Нулевой ID заменяется следующим свободным.
func (r *Projects) Add(p *entity.Project) *entity.Project {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if p.ID == 0 {
		r.c.nextID++
		p.ID = r.c.nextID
	} else if p.ID > r.c.nextID {
		r.c.nextID = p.ID
	}
	if p.Topics == nil {
		p.Topics = []string{}
	}
	for _, s := range p.Skills {
		r.c.putSkill(entity.Skill{ID: s.SkillID, Name: s.Name, Category: s.Category})
	}
	r.c.projects[p.ID] = cloneProject(p, true)
	return p
}

func (r *Projects) FindByID(_ context.Context, id int64) (*entity.Project, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	p, ok := r.c.projects[id]
	if !ok {
		return nil, apperror.ErrProjectNotFound
	}
	return cloneProject(p, true), nil
}

func (r *Projects) sorted(filter entity.ProjectFilter) []*entity.Project {
	out := make([]*entity.Project, 0, len(r.c.projects))
	for _, p := range r.c.projects {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Projects) ListWithSkills(_ context.Context, filter entity.ProjectFilter) ([]*entity.Project, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	out := make([]*entity.Project, 0)
	for _, p := range r.sorted(filter) {
		out = append(out, cloneProject(p, true))
	}
	return out, nil
}

func (r *Projects) SkillsByProjectIDs(_ context.Context, ids []int64) (map[int64][]entity.ProjectSkill, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	out := make(map[int64][]entity.ProjectSkill, len(ids))
	for _, id := range ids {
		if p, ok := r.c.projects[id]; ok && len(p.Skills) > 0 {
			out[id] = append([]entity.ProjectSkill(nil), p.Skills...)
		}
	}
	return out, nil
}

func (r *Projects) SearchKeyword(_ context.Context, q string, filter entity.ProjectFilter, limit int) ([]*entity.Project, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	needle := strings.ToLower(q)
	out := make([]*entity.Project, 0)
	for _, p := range r.sorted(filter) {
		if len(out) >= limit {
			break
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, cloneProject(p, false))
		}
	}
	return out, nil
}

func (r *Projects) ListBySource(_ context.Context, filter entity.ProjectFilter, limit int) ([]*entity.Project, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	items := r.sorted(filter)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Stars > items[j].Stars })
	out := make([]*entity.Project, 0, min(limit, len(items)))
	for _, p := range items {
		if len(out) >= limit {
			break
		}
		out = append(out, cloneProject(p, false))
	}
	return out, nil
}

func (r *Projects) CreateWithEmbedding(_ context.Context, project *entity.Project, skillIDs []int64, emb *entity.ProjectEmbedding) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	skills := make([]entity.ProjectSkill, 0, len(skillIDs))
	for _, id := range skillIDs {
		sk, ok := r.c.skills[id]
		if !ok {
			return apperror.Validation("skill_ids", "указан несуществующий навык")
		}
		skills = append(skills, entity.ProjectSkill{SkillID: id, Name: sk.Name, Category: sk.Category, IsRequired: true})
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })

	r.c.nextID++
	project.ID = r.c.nextID
	project.CreatedAt = time.Now()
	project.Skills = skills
	if project.Topics == nil {
		project.Topics = []string{}
	}
	r.c.projects[project.ID] = cloneProject(project, true)

	if emb != nil {
		emb.ProjectID = project.ID
		r.c.putLocked(emb)
	}
	return nil
}

func (r *Projects) CountBySource(_ context.Context) (map[valueobject.Source]int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	out := make(map[valueobject.Source]int)
	for _, p := range r.c.projects {
		out[p.Source]++
	}
	return out, nil
}

func (r *Projects) CountByDifficulty(_ context.Context) (map[valueobject.Level]int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	out := make(map[valueobject.Level]int)
	for _, p := range r.c.projects {
		out[p.Difficulty]++
	}
	return out, nil
}

func (r *Projects) Count(_ context.Context) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return len(r.c.projects), nil
}

var levelOrder = map[valueobject.Level]int{
	valueobject.LevelBeginner:     1,
	valueobject.LevelIntermediate: 2,
	valueobject.LevelAdvanced:     3,
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (r *Projects) DifficultyStats(_ context.Context) ([]entity.DifficultyStats, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	type acc struct{ n, stars, hours int }
	groups := make(map[valueobject.Level]*acc)
	for _, p := range r.c.projects {
		g, ok := groups[p.Difficulty]
		if !ok {
			g = &acc{}
			groups[p.Difficulty] = g
		}
		g.n++
		g.stars += p.Stars
		g.hours += p.EstimatedHours
	}
	out := make([]entity.DifficultyStats, 0, len(groups))
	for level, g := range groups {
		out = append(out, entity.DifficultyStats{
			Difficulty:   level,
			ProjectCount: g.n,
			AvgStars:     round2(float64(g.stars) / float64(g.n)),
			AvgHours:     round2(float64(g.hours) / float64(g.n)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := levelOrder[out[i].Difficulty], levelOrder[out[j].Difficulty]
		if oi == 0 {
			oi = 4
		}
		if oj == 0 {
			oj = 4
		}
		return oi < oj
	})
	return out, nil
}

func (r *Projects) SkillCombinations(_ context.Context, limit int) ([]entity.SkillCombination, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	counts := make(map[[2]string]int)
	for _, p := range r.c.projects {
		required := make([]entity.ProjectSkill, 0, len(p.Skills))
		for _, s := range p.Skills {
			if s.IsRequired {
				required = append(required, s)
			}
		}
		sort.Slice(required, func(i, j int) bool { return required[i].SkillID < required[j].SkillID })
		for i := range required {
			for j := i + 1; j < len(required); j++ {
				if required[i].SkillID == required[j].SkillID {
					continue
				}
				counts[[2]string{required[i].Name, required[j].Name}]++
			}
		}
	}
	out := make([]entity.SkillCombination, 0, len(counts))
	for pair, n := range counts {
		out = append(out, entity.SkillCombination{Skills: pair, ProjectCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectCount != out[j].ProjectCount {
			return out[i].ProjectCount > out[j].ProjectCount
		}
		if out[i].Skills[0] != out[j].Skills[0] {
			return out[i].Skills[0] < out[j].Skills[0]
		}
		return out[i].Skills[1] < out[j].Skills[1]
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *catalog) putLocked(emb *entity.ProjectEmbedding) {
	now := time.Now()
	key := embeddingKey{emb.ProjectID, emb.ModelVersion}
	cp := *emb
	cp.Vector = append([]float32(nil), emb.Vector...)
	if prev, ok := c.embeddings[key]; ok {
		cp.CreatedAt = prev.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	c.embeddings[key] = &cp
}

// Seed записывает вектор в обход проверок, для подготовки тестов.
func (s *Embeddings) Seed(projectID int64, modelVersion string, vector []float32, contentHash string) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.putLocked(&entity.ProjectEmbedding{
		ProjectID:    projectID,
		ModelVersion: modelVersion,
		Vector:       vector,
		ContentHash:  contentHash,
	})
}

func (s *Embeddings) Get(_ context.Context, projectID int64, modelVersion string) (*entity.ProjectEmbedding, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	emb, ok := s.c.embeddings[embeddingKey{projectID, modelVersion}]
	if !ok {
		return nil, nil
	}
	cp := *emb
	return &cp, nil
}

func (s *Embeddings) Put(_ context.Context, emb *entity.ProjectEmbedding) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if _, ok := s.c.projects[emb.ProjectID]; !ok {
		return apperror.ErrProjectNotFound
	}
	s.c.putLocked(emb)
	return nil
}

func (s *Embeddings) PutBatch(_ context.Context, embeddings []*entity.ProjectEmbedding) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	for _, emb := range embeddings {
		if _, ok := s.c.projects[emb.ProjectID]; !ok {
			return apperror.ErrProjectNotFound
		}
	}
	for _, emb := range embeddings {
		s.c.putLocked(emb)
	}
	return nil
}

// Scan отдаёт проекты без навыков, как и SQL-адаптер.
func (s *Embeddings) Scan(_ context.Context, modelVersion string, filter entity.ProjectFilter) ([]entity.EmbeddedProject, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	out := make([]entity.EmbeddedProject, 0)
	for _, p := range (&Projects{c: s.c}).sorted(filter) {
		emb, ok := s.c.embeddings[embeddingKey{p.ID, modelVersion}]
		if !ok {
			continue
		}
		out = append(out, entity.EmbeddedProject{
			Project: cloneProject(p, false),
			Vector:  append([]float32(nil), emb.Vector...),
		})
	}
	return out, nil
}

func (s *Embeddings) Hashes(_ context.Context, modelVersion string) (map[int64]string, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	out := make(map[int64]string)
	for key, emb := range s.c.embeddings {
		if key.modelVersion == modelVersion {
			out[key.projectID] = emb.ContentHash
		}
	}
	return out, nil
}

func (s *Embeddings) Count(ctx context.Context, modelVersion string) (int, error) {
	hashes, err := s.Hashes(ctx, modelVersion)
	return len(hashes), err
}

// Profiles - пользователи и профили в памяти.
type Profiles struct {
	mu       sync.Mutex
	users    map[uuid.UUID]struct{}
	skills   map[int64]string
	profiles map[uuid.UUID]*entity.UserProfile
}

func NewProfiles() *Profiles {
	return &Profiles{
		users:    make(map[uuid.UUID]struct{}),
		skills:   make(map[int64]string),
		profiles: make(map[uuid.UUID]*entity.UserProfile),
	}
}

func (r *Profiles) AddUser(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id] = struct{}{}
}

func (r *Profiles) AddSkill(id int64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skills[id] = name
}

func (r *Profiles) Exists(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[userID]
	return ok, nil
}

func (r *Profiles) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.ErrProfileNotFound
	}
	cp := *p
	cp.Skills = append([]entity.UserSkill(nil), p.Skills...)
	return &cp, nil
}

func (r *Profiles) Replace(_ context.Context, profile *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[profile.UserID]; !ok {
		return apperror.ErrUserNotFound
	}

	cp := *profile
	cp.Skills = make([]entity.UserSkill, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		name, ok := r.skills[s.SkillID]
		if !ok {
			return apperror.Validation("skill_id", "указан несуществующий навык")
		}
		s.Name = name
		cp.Skills = append(cp.Skills, s)
	}
	sort.Slice(cp.Skills, func(i, j int) bool { return cp.Skills[i].Name < cp.Skills[j].Name })
	if prev, ok := r.profiles[profile.UserID]; ok {
		cp.CreatedAt = prev.CreatedAt
	}
	r.profiles[profile.UserID] = &cp
	return nil
}

// Put кладёт готовый профиль без проверок; пользователь регистрируется автоматически.
func (r *Profiles) Put(profile *entity.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[profile.UserID] = struct{}{}
	cp := *profile
	r.profiles[profile.UserID] = &cp
}

func (r *Profiles) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles), nil
}

type interactionKey struct {
	userID    uuid.UUID
	projectID int64
	kind      valueobject.InteractionType
}

// Interactions - журнал взаимодействий в памяти с тем же ограничением
// уникальности (пользователь, проект, тип), что и таблица.
type Interactions struct {
	mu       sync.Mutex
	nextID   int64
	items    map[int64]*entity.Interaction
	projects *Projects
	users    *Profiles
}

func NewInteractions(projects *Projects, users *Profiles) *Interactions {
	return &Interactions{
		items:    make(map[int64]*entity.Interaction),
		projects: projects,
		users:    users,
	}
}

func (r *Interactions) conflictsLocked(in *entity.Interaction) bool {
	want := interactionKey{in.UserID, in.ProjectID, in.Type}
	for _, existing := range r.items {
		if existing.ID != in.ID && (interactionKey{existing.UserID, existing.ProjectID, existing.Type}) == want {
			return true
		}
	}
	return false
}

func (r *Interactions) Create(ctx context.Context, in *entity.Interaction) error {
	if _, err := r.projects.FindByID(ctx, in.ProjectID); err != nil {
		return err
	}
	if ok, _ := r.users.Exists(ctx, in.UserID); !ok {
		return apperror.ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflictsLocked(in) {
		return apperror.ErrInteractionExists
	}
	r.nextID++
	in.ID = r.nextID
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	cp := *in
	r.items[in.ID] = &cp
	return nil
}

func (r *Interactions) FindByID(_ context.Context, id int64) (*entity.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.items[id]
	if !ok {
		return nil, apperror.ErrInteractionNotFound
	}
	cp := *in
	return &cp, nil
}

func (r *Interactions) Update(_ context.Context, in *entity.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[in.ID]; !ok {
		return apperror.ErrInteractionNotFound
	}
	if r.conflictsLocked(in) {
		return apperror.ErrInteractionExists
	}
	cp := *in
	r.items[in.ID] = &cp
	return nil
}

func (r *Interactions) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperror.ErrInteractionNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Interactions) byUserLocked(userID uuid.UUID) []*entity.Interaction {
	out := make([]*entity.Interaction, 0)
	for _, in := range r.items {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *Interactions) ListByUser(ctx context.Context, userID uuid.UUID, filter repository.InteractionFilter) ([]entity.InteractionWithProject, error) {
	r.mu.Lock()
	items := r.byUserLocked(userID)
	r.mu.Unlock()

	out := make([]entity.InteractionWithProject, 0)
	skipped := 0
	for _, in := range items {
		if filter.Type != nil && in.Type != *filter.Type {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		p, err := r.projects.FindByID(ctx, in.ProjectID)
		if err != nil {
			continue
		}
		out = append(out, entity.InteractionWithProject{
			Interaction:        *in,
			ProjectTitle:       p.Title,
			ProjectDescription: p.Description,
			Difficulty:         p.Difficulty,
			Topics:             p.Topics,
			RepoURL:            p.RepoURL,
			EstimatedHours:     p.EstimatedHours,
			Source:             p.Source,
		})
	}
	return out, nil
}

func (r *Interactions) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]entity.Bookmark, error) {
	r.mu.Lock()
	items := r.byUserLocked(userID)
	r.mu.Unlock()

	out := make([]entity.Bookmark, 0)
	for _, in := range items {
		if in.Type != valueobject.InteractionBookmarked {
			continue
		}
		p, err := r.projects.FindByID(ctx, in.ProjectID)
		if err != nil {
			continue
		}
		p.Skills = nil
		out = append(out, entity.Bookmark{Project: *p, BookmarkedAt: in.CreatedAt})
	}
	return out, nil
}

func (r *Interactions) Stats(_ context.Context, userID uuid.UUID, since time.Time) (*entity.InteractionStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &entity.InteractionStats{ByType: make(map[string]int)}
	var sum, rated int
	for _, in := range r.byUserLocked(userID) {
		stats.TotalInteractions++
		stats.ByType[string(in.Type)]++
		if in.Rating != nil {
			sum += *in.Rating
			rated++
		}
		if !in.CreatedAt.Before(since) {
			stats.RecentActivity30d++
		}
	}
	if rated > 0 {
		v := math.Round(float64(sum)/float64(rated)*100) / 100
		stats.AverageRating = &v
	}
	return stats, nil
}

func (r *Interactions) ActivitySummary(ctx context.Context, userID uuid.UUID, since time.Time) (*entity.ActivitySummary, error) {
	r.mu.Lock()
	items := r.byUserLocked(userID)
	r.mu.Unlock()

	summary := &entity.ActivitySummary{}
	categories := make(map[string]int)
	var sum, rated int
	for _, in := range items {
		p, err := r.projects.FindByID(ctx, in.ProjectID)
		if err != nil {
			continue
		}
		summary.TotalInteractions++
		switch in.Type {
		case valueobject.InteractionViewed:
			summary.ProjectsViewed++
		case valueobject.InteractionBookmarked:
			summary.ProjectsBookmarked++
		case valueobject.InteractionStarted:
			summary.ProjectsStarted++
		case valueobject.InteractionCompleted:
			summary.ProjectsCompleted++
			summary.TotalLearningHours += p.EstimatedHours
		}
		if in.Rating != nil {
			sum += *in.Rating
			rated++
		}
		if !in.CreatedAt.Before(since) {
			summary.RecentActivity7d++
		}
		for _, s := range p.Skills {
			if s.Category != "" {
				categories[s.Category]++
			}
		}
	}
	if rated > 0 {
		v := round2(float64(sum) / float64(rated))
		summary.AverageRating = &v
	}

	best, bestN := "", 0
	for category, n := range categories {
		if n > bestN || (n == bestN && category < best) {
			best, bestN = category, n
		}
	}
	if bestN > 0 {
		summary.MostActiveCategory = &best
	}

	if profile, err := r.users.FindByUserID(ctx, userID); err == nil {
		summary.SkillsCount = len(profile.Skills)
	}
	return summary, nil
}

func (r *Interactions) DeleteViewedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, in := range r.items {
		if in.Type == valueobject.InteractionViewed && in.CreatedAt.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

// MockEmbedder - заглушка модели на testify/mock.
type MockEmbedder struct {
	mock.Mock
	Model string
	Dim   int
}

func (m *MockEmbedder) Encode(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	v, _ := args.Get(0).([]float32)
	return v, args.Error(1)
}

func (m *MockEmbedder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	v, _ := args.Get(0).([][]float32)
	return v, args.Error(1)
}

func (m *MockEmbedder) ModelVersion() string { return m.Model }

func (m *MockEmbedder) Dimension() int { return m.Dim }
