package project

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/domain/entity"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/repository"
	"github.com/ignatzorin/projectmatch-backend/internal/domain/valueobject"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

var skillCategories = map[string]struct{}{
	"language":  {},
	"framework": {},
	"tool":      {},
	"domain":    {},
}

type ListSkillsUseCase struct {
	skills repository.SkillRepository
}

func NewListSkillsUseCase(skills repository.SkillRepository) *ListSkillsUseCase {
	return &ListSkillsUseCase{skills: skills}
}

func (uc *ListSkillsUseCase) Execute(ctx context.Context, category string) ([]entity.Skill, error) {
	if category != "" {
		if _, ok := skillCategories[category]; !ok {
			return nil, apperror.Validation("category", "допустимые значения: language, framework, tool, domain")
		}
	}
	return uc.skills.List(ctx, category)
}

// CuratedSkills - стартовый справочник навыков.
var CuratedSkills = []entity.Skill{
	{Name: "Python", Category: "language"},
	{Name: "JavaScript", Category: "language"},
	{Name: "TypeScript", Category: "language"},
	{Name: "Java", Category: "language"},
	{Name: "Go", Category: "language"},
	{Name: "React", Category: "framework"},
	{Name: "Next.js", Category: "framework"},
	{Name: "Vue.js", Category: "framework"},
	{Name: "HTML/CSS", Category: "framework"},
	{Name: "Node.js", Category: "framework"},
	{Name: "FastAPI", Category: "framework"},
	{Name: "Django", Category: "framework"},
	{Name: "Flask", Category: "framework"},
	{Name: "PostgreSQL", Category: "tool"},
	{Name: "MongoDB", Category: "tool"},
	{Name: "Redis", Category: "tool"},
	{Name: "Machine Learning", Category: "domain"},
	{Name: "Deep Learning", Category: "domain"},
	{Name: "NLP", Category: "domain"},
	{Name: "Computer Vision", Category: "domain"},
	{Name: "Docker", Category: "tool"},
	{Name: "Kubernetes", Category: "tool"},
	{Name: "AWS", Category: "tool"},
	{Name: "Git", Category: "tool"},
	{Name: "API Development", Category: "domain"},
	{Name: "Web Development", Category: "domain"},
}

type curatedProject struct {
	Title          string
	Description    string
	Difficulty     valueobject.Level
	Topics         []string
	EstimatedHours int
	Skills         []string
}

var curatedProjects = []curatedProject{
	{
		Title:          "Personal Portfolio Website",
		Description:    "Build a responsive portfolio website to showcase your projects using modern web technologies",
		Difficulty:     valueobject.LevelBeginner,
		Topics:         []string{"web-development", "html", "css", "javascript", "portfolio"},
		EstimatedHours: 12,
		Skills:         []string{"HTML/CSS", "JavaScript", "Web Development"},
	},
	{
		Title:          "RESTful API with Authentication",
		Description:    "Create a secure REST API with JWT authentication, CRUD operations, and database integration",
		Difficulty:     valueobject.LevelIntermediate,
		Topics:         []string{"backend", "api", "authentication", "database"},
		EstimatedHours: 35,
		Skills:         []string{"Node.js", "API Development", "PostgreSQL"},
	},
	{
		Title:          "Real-time Chat Application",
		Description:    "Build a real-time chat app with WebSockets, user authentication, and message persistence",
		Difficulty:     valueobject.LevelIntermediate,
		Topics:         []string{"websockets", "real-time", "chat", "full-stack"},
		EstimatedHours: 45,
		Skills:         []string{"Node.js", "React", "MongoDB", "Web Development"},
	},
	{
		Title:          "To-Do List with React",
		Description:    "Create an interactive to-do list application with local storage and filtering",
		Difficulty:     valueobject.LevelBeginner,
		Topics:         []string{"react", "frontend", "javascript"},
		EstimatedHours: 10,
		Skills:         []string{"React", "JavaScript"},
	},
	{
		Title:          "E-commerce Product Catalog",
		Description:    "Develop a full-stack e-commerce product catalog with search, filters, and shopping cart",
		Difficulty:     valueobject.LevelAdvanced,
		Topics:         []string{"e-commerce", "full-stack", "database"},
		EstimatedHours: 80,
		Skills:         []string{"React", "Node.js", "PostgreSQL", "API Development"},
	},
	{
		Title:          "Sentiment Analysis Tool",
		Description:    "Build a tool that analyzes sentiment in text using natural language processing",
		Difficulty:     valueobject.LevelIntermediate,
		Topics:         []string{"nlp", "machine-learning", "text-analysis"},
		EstimatedHours: 30,
		Skills:         []string{"Python", "NLP", "Machine Learning"},
	},
}

type SeedReport struct {
	Skills          int  `json:"skills"`
	Projects        int  `json:"projects"`
	ProjectsSkipped bool `json:"projects_skipped"`
}

// SeedCatalogUseCase заполняет пустую базу стартовым справочником и подборкой проектов.
type SeedCatalogUseCase struct {
	skills   repository.SkillRepository
	projects repository.ProjectRepository
	embedder repository.Embedder
}

func NewSeedCatalogUseCase(skills repository.SkillRepository, projects repository.ProjectRepository, embedder repository.Embedder) *SeedCatalogUseCase {
	return &SeedCatalogUseCase{skills: skills, projects: projects, embedder: embedder}
}

// Execute идемпотентен: навыки досоздаются, проекты добавляются только в пустой каталог.
func (uc *SeedCatalogUseCase) Execute(ctx context.Context) (*SeedReport, error) {
	ids, err := uc.skills.Upsert(ctx, CuratedSkills)
	if err != nil {
		return nil, err
	}
	report := &SeedReport{Skills: len(ids)}

	n, err := uc.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		report.ProjectsSkipped = true
		logger.L().WithField("projects", n).Info("Каталог не пуст, стартовые проекты пропущены")
		return report, nil
	}

	projects := make([]*entity.Project, 0, len(curatedProjects))
	texts := make([]string, 0, len(curatedProjects))
	for _, cp := range curatedProjects {
		p := &entity.Project{
			Title:          cp.Title,
			Description:    cp.Description,
			Difficulty:     cp.Difficulty,
			Topics:         append([]string{}, cp.Topics...),
			EstimatedHours: cp.EstimatedHours,
			Source:         valueobject.SourceCurated,
		}
		projects = append(projects, p)
		texts = append(texts, recommend.ProjectText(p))
	}

	vectors, err := uc.embedder.EncodeBatch(ctx, texts)
	if err != nil {
		return nil, upstream(err)
	}

	for i, p := range projects {
		skillIDs := make([]int64, 0, len(curatedProjects[i].Skills))
		for _, name := range curatedProjects[i].Skills {
			if id, ok := ids[name]; ok {
				skillIDs = append(skillIDs, id)
			}
		}
		emb := &entity.ProjectEmbedding{
			Vector:       vectors[i],
			ModelVersion: uc.embedder.ModelVersion(),
			ContentHash:  entity.ContentHash(texts[i]),
		}
		if err := uc.projects.CreateWithEmbedding(ctx, p, skillIDs, emb); err != nil {
			return nil, err
		}
		report.Projects++
	}

	logger.L().WithFields(logrus.Fields{
		"skills":   report.Skills,
		"projects": report.Projects,
	}).Info("Стартовый каталог загружен")
	return report, nil
}
