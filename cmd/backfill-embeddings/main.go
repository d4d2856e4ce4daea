// Команда backfill-embeddings досчитывает векторы для проектов, у которых
// нет эмбеддинга текущей модели или он устарел, и завершается.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/config"
	"github.com/ignatzorin/projectmatch-backend/internal/db"
	"github.com/ignatzorin/projectmatch-backend/internal/infrastructure/embedding"
	"github.com/ignatzorin/projectmatch-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	embeddingUC "github.com/ignatzorin/projectmatch-backend/internal/usecase/embedding"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "только показать проекты, которым нужен вектор")
	timeout := flag.Duration("timeout", 30*time.Minute, "ограничение на всю генерацию")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("backfill: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel, "development")
	log := logger.Component("backfill")

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxOpenConns:    cfg.Embedding.BackfillConcurrency + 2,
		MaxIdleConns:    cfg.Embedding.BackfillConcurrency,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		log.Fatalf("backfill: ошибка подключения к базе: %v", err)
	}
	defer dbConn.Close()

	projectRepo := persistence.NewProjectRepositoryAdapter(dbConn)
	embeddingStore := persistence.NewEmbeddingStoreAdapter(dbConn)
	embedder := embedding.NewFromConfig(cfg.Embedding, nil)

	if *dryRun {
		pending, err := embeddingUC.NewPendingEmbeddingsUseCase(projectRepo, embeddingStore, embedder).Execute(ctx)
		if err != nil {
			log.Fatalf("backfill: %v", err)
		}
		for _, p := range pending {
			log.WithFields(logrus.Fields{"project_id": p.ProjectID, "reason": p.Reason}).Info("нужен вектор")
		}
		log.Infof("backfill: проектов без актуального вектора: %d", len(pending))
		return
	}

	report, err := embeddingUC.NewBackfillEmbeddingsUseCase(projectRepo, embeddingStore, embedder,
		cfg.Embedding.BatchSize, cfg.Embedding.BackfillConcurrency).Execute(ctx)
	if err != nil {
		log.Fatalf("backfill: %v", err)
	}
	log.WithFields(logrus.Fields{
		"pending":  report.Pending,
		"embedded": report.Embedded,
		"batches":  report.Batches,
		"duration": report.Duration.String(),
	}).Info("backfill: готово")
}
