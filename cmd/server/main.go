package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/road_hazard_system/internal/cipher"
	"github.com/shenikar/road_hazard_system/internal/config"
	"github.com/shenikar/road_hazard_system/internal/expiry"
	"github.com/shenikar/road_hazard_system/internal/geocode"
	v1 "github.com/shenikar/road_hazard_system/internal/handler/http/v1"
	"github.com/shenikar/road_hazard_system/internal/metrics"
	"github.com/shenikar/road_hazard_system/internal/push"
	"github.com/shenikar/road_hazard_system/internal/repository"
	"github.com/shenikar/road_hazard_system/internal/service"
	"github.com/shenikar/road_hazard_system/pkg/logger"
	"github.com/shenikar/road_hazard_system/pkg/postgres"
	redisclient "github.com/shenikar/road_hazard_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/road_hazard_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Road Hazard System API
// @version 1.0
// @description Road hazard report intake and real-time alert delivery.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
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
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func newRouter(cfg *config.Config, log *logrus.Logger, m *metrics.Metrics, handler *v1.Handler, hub *push.Hub) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), m.GinMiddleware())
	router.Use(cipher.Middleware(cipher.New(cfg.EncryptionKey), cfg.EnableEncryption, log))

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Push-канал, метрики и Swagger UI не шифруются
	router.GET("/hubs/alerts", hub.ServeWS)
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
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
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, postgres.Options{
		MaxConns:        int32(cfg.DBMaxConns),
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		ApplicationName: "road_hazard_server",
	})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	m := metrics.New()

	// Push-канал: публикация через Redis, ретрансляция в локальный hub
	hub := push.NewHub(log, m)
	defer hub.Close()
	var publisher push.Publisher = push.NewLocalPublisher(hub)
	if cfg.PushRedisRelay {
		push.NewRelay(redisClient, hub, log).Start(ctx)
		publisher = push.NewRedisPublisher(redisClient)
	}

	geocoder := geocode.NewNominatimClient(cfg.GeocoderURL, cfg.GeocoderTimeout, cfg.GeocoderRPS, log)

	// Инициализация репозиториев
	hazardRepo := repository.NewHazardRepository(dbpool, redisClient)

	// Инициализация сервисов
	hazardService := service.NewHazardService(hazardRepo, log, cfg, publisher, geocoder, m)

	// Инициализация хэндлеров
	handler := v1.NewHandler(hazardService, log, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: newRouter(cfg, log, m, handler, hub),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return expiry.NewWorker(hazardService, cfg.ExpiryInterval, log).Run(gctx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}

	log.Info("Server gracefully stopped")
}
