package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/crime_analytics_platform/internal/config"
	v1 "github.com/shenikar/crime_analytics_platform/internal/handler/http/v1"
	"github.com/shenikar/crime_analytics_platform/internal/service"
	"github.com/shenikar/crime_analytics_platform/internal/source"
	"github.com/shenikar/crime_analytics_platform/pkg/logger"
	"github.com/shenikar/crime_analytics_platform/pkg/postgres"
	redisclient "github.com/shenikar/crime_analytics_platform/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/crime_analytics_platform/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Crime Analytics Platform API
// @version 1.0
// @description Filtered views and aggregates over a session collection of crime incident records.
// @host localhost:8080
// @BasePath /api/v1
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// buildSource собирает источник записей по RECORD_SOURCE.
// Недоступный источник подменяется генератором: при ошибке подключения сразу,
// при ошибке загрузки через FallbackSource.
func buildSource(ctx context.Context, cfg *config.Config, log *logrus.Logger) (source.RecordSource, func()) {
	generator := source.NewGenerator(cfg.SampleSize, cfg.SampleSeed)
	noop := func() {}
	sourceLog := log.WithField("source", cfg.RecordSource)

	switch cfg.RecordSource {
	case config.SourceGenerator:
		return generator, noop

	case config.SourceHTTP:
		query := source.RemoteQuery{Limit: cfg.RemoteLimit}
		remote := source.NewHTTPSource(cfg.RemoteAPIURL, cfg.RemoteTimeout, query, log)
		return source.NewFallbackSource(config.SourceHTTP, remote, generator, log), noop

	case config.SourcePostgres:
		if err := runMigrations(cfg, log); err != nil {
			sourceLog.WithError(err).Warn("Database migrations failed, using generated sample records")
			return generator, noop
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, 4)
		if err != nil {
			sourceLog.WithError(err).Warn("Failed to connect to PostgreSQL, using generated sample records")
			return generator, noop
		}
		log.Info("Successfully connected to PostgreSQL")
		pg := source.NewPostgresSource(dbpool, log)
		return source.NewFallbackSource(config.SourcePostgres, pg, generator, log), dbpool.Close

	case config.SourceRedis:
		client, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			sourceLog.WithError(err).Warn("Failed to connect to Redis, using generated sample records")
			return generator, noop
		}
		log.Info("Successfully connected to Redis")
		rs := source.NewRedisSource(client, cfg.RedisRecordsKey, log)
		if cfg.RedisSeedSample {
			if err := seedRedis(ctx, client, cfg.RedisRecordsKey, rs, generator, log); err != nil {
				sourceLog.WithError(err).Warn("Failed to seed Redis with sample records")
			}
		}
		closeClient := func() {
			if err := client.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Redis client")
			}
		}
		return source.NewFallbackSource(config.SourceRedis, rs, generator, log), closeClient
	}

	sourceLog.Warn("Unknown record source, using generated sample records")
	return generator, noop
}

// listLength - часть redis.Client, нужная для проверки наполненности списка
type listLength interface {
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// seedRedis наполняет пустой список демо-записями генератора.
// Если длину списка узнать не удалось, наполнение пропускается.
func seedRedis(ctx context.Context, client listLength, key string, rs *source.RedisSource, generator *source.Generator, log *logrus.Logger) error {
	existing, err := client.LLen(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("could not check length of %s: %w", key, err)
	}
	if existing > 0 {
		return nil
	}
	records := generator.Generate()
	if err := rs.Seed(ctx, records); err != nil {
		return err
	}
	log.WithField("count", len(records)).Info("Redis seeded with sample records")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Источник записей
	recordSource, closeSource := buildSource(ctx, cfg, log)
	defer closeSource()

	// Инициализация сервиса и фоновая загрузка коллекции
	dashboardService := service.NewDashboardService(recordSource, log, cfg)
	dashboardService.Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(dashboardService, log)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.WithField("source", cfg.RecordSource).Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
