package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aipaas/console/internal/config"
	"github.com/aipaas/console/internal/handler"
	"github.com/aipaas/console/internal/pkg/database"
	pgrepo "github.com/aipaas/console/internal/repository/postgres"
	"github.com/aipaas/console/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Postgres *database.PostgresDB
	Redis    *redis.Client

	Catalog *service.CatalogService

	ServicesHandler *handler.ServicesHandler
	HealthHandler   *handler.HealthHandler
	DocsHandler     *handler.DocsHandler
}

// initDependencies wires the full dependency graph. Redis is only dialed
// when rate limiting is enabled; everything else works without it.
func initDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	postgres, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	log.Info("connected to postgres",
		zap.String("host", cfg.Postgres.Host),
		zap.String("database", cfg.Postgres.Database),
	)

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			postgres.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))
	}

	serviceRepo := pgrepo.NewServiceRepository(postgres)
	workflowRepo := pgrepo.NewWorkflowRepository(postgres)
	datasetRepo := pgrepo.NewDatasetRepository(postgres)
	modelRepo := pgrepo.NewModelRepository(postgres)
	promptRepo := pgrepo.NewPromptRepository(postgres)
	monitoringRepo := pgrepo.NewMonitoringRepository(postgres)

	catalog := service.NewCatalogService(
		serviceRepo,
		workflowRepo,
		datasetRepo,
		modelRepo,
		promptRepo,
		monitoringRepo,
	)

	return &Dependencies{
		Config:   cfg,
		Logger:   log,
		Postgres: postgres,
		Redis:    redisClient,

		Catalog: catalog,

		ServicesHandler: handler.NewServicesHandler(catalog, log),
		HealthHandler:   handler.NewHealthHandler(postgres.Pool, redisClient, appVersion),
		DocsHandler:     handler.NewDocsHandler(),
	}, nil
}

// Close releases all held connections
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("failed to close redis", zap.Error(err))
		}
	}
	if d.Postgres != nil {
		d.Postgres.Close()
	}
}
