package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/projectmatch-backend/internal/config"
	"github.com/ignatzorin/projectmatch-backend/internal/http/handlers"
	"github.com/ignatzorin/projectmatch-backend/internal/http/middleware"
)

// Handlers - набор HTTP-обработчиков, собранный в main.
type Handlers struct {
	Health         *handlers.HealthHandler
	Recommendation *handlers.RecommendationHandler
	Project        *handlers.ProjectHandler
	Profile        *handlers.ProfileHandler
	Interaction    *handlers.InteractionHandler
	Source         *handlers.SourceHandler
	Admin          *handlers.AdminHandler
	Catalog        *handlers.CatalogHandler
	Stats          *handlers.StatsHandler
}

func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	limited := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)

	api.GET("/recommendations/:user_id", limited, middleware.UUIDValidator("user_id"), h.Recommendation.GetRecommendations)

	projects := api.Group("/projects")
	{
		projects.GET("/search", limited, h.Project.Search)
		projects.GET("/:id", middleware.IDValidator("id"), h.Project.Get)
		projects.POST("", h.Project.Create)
		projects.POST("/:id/embedding", middleware.IDValidator("id"), h.Project.EnsureEmbedding)
		projects.PUT("/:id/embedding", middleware.IDValidator("id"), h.Project.RegenerateEmbedding)
	}

	users := api.Group("/users/:user_id", middleware.UUIDValidator("user_id"))
	{
		users.GET("/profile", h.Profile.Get)
		users.POST("/profile", h.Profile.Upsert)
		users.GET("/activity-summary", h.Interaction.Summary)
	}

	interactions := api.Group("/interactions")
	{
		interactions.POST("", h.Interaction.Create)
		interactions.GET("/:user_id", middleware.UUIDValidator("user_id"), h.Interaction.List)
		interactions.GET("/:user_id/stats", middleware.UUIDValidator("user_id"), h.Interaction.Stats)
		interactions.GET("/:user_id/bookmarks", middleware.UUIDValidator("user_id"), h.Interaction.Bookmarks)
		interactions.PUT("/by-id/:id", middleware.IDValidator("id"), h.Interaction.Update)
		interactions.DELETE("/by-id/:id", middleware.IDValidator("id"), h.Interaction.Delete)
	}

	api.GET("/skills", h.Catalog.Skills)
	if cfg.Env == "development" {
		api.POST("/seed", h.Catalog.Seed)
	}

	stats := api.Group("/stats")
	{
		stats.GET("/projects-by-difficulty", h.Stats.ByDifficulty)
		stats.GET("/skill-combinations", h.Stats.SkillCombinations)
	}

	sources := api.Group("/sources")
	{
		sources.GET("", h.Source.List)
		sources.GET("/:source/projects", h.Source.Projects)
	}

	admin := api.Group("/admin")
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/projects-needing-embeddings", h.Admin.PendingEmbeddings)
		admin.POST("/embeddings/backfill", h.Admin.Backfill)
		admin.POST("/cleanup-interactions", h.Admin.CleanupInteractions)
	}

	return r
}
