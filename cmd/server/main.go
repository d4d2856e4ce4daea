package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/config"
	"github.com/ignatzorin/projectmatch-backend/internal/db"
	"github.com/ignatzorin/projectmatch-backend/internal/goroutine"
	"github.com/ignatzorin/projectmatch-backend/internal/http/handlers"
	"github.com/ignatzorin/projectmatch-backend/internal/http/router"
	"github.com/ignatzorin/projectmatch-backend/internal/infrastructure/embedding"
	"github.com/ignatzorin/projectmatch-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/service"
	embeddingUC "github.com/ignatzorin/projectmatch-backend/internal/usecase/embedding"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/interaction"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/profile"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/project"
	"github.com/ignatzorin/projectmatch-backend/internal/usecase/recommendation"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env)
	log := logger.L()

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPoolOptions)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Репозитории.
	projectRepo := persistence.NewProjectRepositoryAdapter(dbConn)
	embeddingStore := persistence.NewEmbeddingStoreAdapter(dbConn)
	profileRepo := persistence.NewProfileRepositoryAdapter(dbConn)
	userRepo := persistence.NewUserRepositoryAdapter(dbConn)
	interactionRepo := persistence.NewInteractionRepositoryAdapter(dbConn)
	skillRepo := persistence.NewSkillRepositoryAdapter(dbConn)

	// Модель эмбеддингов создаётся один раз и передаётся во все use case.
	queryCache := service.NewCacheService(embedding.QueryCacheMaxItems)
	defer queryCache.Close()
	embedder := embedding.NewFromConfig(cfg.Embedding, queryCache)

	log.WithFields(logrus.Fields{
		"provider":  cfg.Embedding.Provider,
		"model":     embedder.ModelVersion(),
		"dimension": embedder.Dimension(),
	}).Info("main: модель эмбеддингов настроена")

	backfillUC := embeddingUC.NewBackfillEmbeddingsUseCase(projectRepo, embeddingStore, embedder,
		cfg.Embedding.BatchSize, cfg.Embedding.BackfillConcurrency)

	h := router.Handlers{
		Health: handlers.NewHealthHandler(dbConn, embedder),
		Recommendation: handlers.NewRecommendationHandler(
			recommendation.NewGetRecommendationsUseCase(profileRepo, projectRepo, embeddingStore, embedder, cfg.CatalogScanWarnThreshold),
		),
		Project: handlers.NewProjectHandler(
			project.NewSearchProjectsUseCase(projectRepo, embeddingStore, embedder),
			project.NewGetProjectUseCase(projectRepo, profileRepo, embeddingStore, embedder),
			project.NewCreateProjectUseCase(projectRepo, embedder),
			embeddingUC.NewEnsureEmbeddingUseCase(projectRepo, embeddingStore, embedder),
			embeddingUC.NewRegenerateEmbeddingUseCase(projectRepo, embeddingStore, embedder),
		),
		Profile: handlers.NewProfileHandler(
			profile.NewUpsertProfileUseCase(userRepo, profileRepo),
			profile.NewGetProfileUseCase(profileRepo),
		),
		Interaction: handlers.NewInteractionHandler(
			interaction.NewLogInteractionUseCase(interactionRepo),
			interaction.NewListInteractionsUseCase(interactionRepo),
			interaction.NewUpdateInteractionUseCase(interactionRepo),
			interaction.NewDeleteInteractionUseCase(interactionRepo),
			interaction.NewListBookmarksUseCase(interactionRepo),
			interaction.NewInteractionStatsUseCase(interactionRepo),
			interaction.NewActivitySummaryUseCase(interactionRepo, userRepo),
		),
		Source: handlers.NewSourceHandler(
			project.NewListSourcesUseCase(projectRepo),
			project.NewListBySourceUseCase(projectRepo),
		),
		Admin: handlers.NewAdminHandler(
			embeddingUC.NewSystemStatsUseCase(projectRepo, profileRepo, embeddingStore, embedder),
			embeddingUC.NewPendingEmbeddingsUseCase(projectRepo, embeddingStore, embedder),
			backfillUC,
			interaction.NewCleanupViewedUseCase(interactionRepo),
		),
		Catalog: handlers.NewCatalogHandler(
			project.NewListSkillsUseCase(skillRepo),
			project.NewSeedCatalogUseCase(skillRepo, projectRepo, embedder),
		),
		Stats: handlers.NewStatsHandler(
			project.NewDifficultyStatsUseCase(projectRepo),
			project.NewSkillCombinationsUseCase(projectRepo),
		),
	}

	if cfg.Embedding.BackfillOnStart {
		goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
			if _, err := backfillUC.Execute(ctx); err != nil {
				log.WithError(err).Error("main: фоновая генерация эмбеддингов завершилась с ошибкой")
			}
		})
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router.SetupRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.L().WithError(err).Error("main: ошибка закрытия базы")
	}
}
