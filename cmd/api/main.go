package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/projectflow/projectflow-service/internal/api/http"
	"github.com/projectflow/projectflow-service/internal/api/http/handlers"
	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/clock"
	"github.com/projectflow/projectflow-service/internal/config"
	"github.com/projectflow/projectflow-service/internal/events"
	"github.com/projectflow/projectflow-service/internal/observability"
	"github.com/projectflow/projectflow-service/internal/repository"
	"github.com/projectflow/projectflow-service/internal/seed"
	"github.com/projectflow/projectflow-service/internal/service"
	"github.com/projectflow/projectflow-service/internal/storage"
	"github.com/projectflow/projectflow-service/internal/storage/file"
	"github.com/projectflow/projectflow-service/internal/storage/pgstore"
	"github.com/projectflow/projectflow-service/internal/storage/redisstore"
	"github.com/projectflow/projectflow-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage backend", zap.Error(err))
	}
	defer closeStore()

	clk := clock.New()
	latency := cfg.App.SimulatedLatency()

	seedUsers, err := seed.Users(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to prepare seed users", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(store, seedUsers, logger)
	projectRepo := repository.NewProjectRepository(store, seed.Projects(), logger)
	sessionRepo := repository.NewSessionRepository(store, logger)

	if err := userRepo.Load(ctx); err != nil {
		logger.Fatal("failed to load users", zap.Error(err))
	}
	if err := projectRepo.Load(ctx); err != nil {
		logger.Fatal("failed to load projects", zap.Error(err))
	}
	if err := sessionRepo.Load(ctx, clk.Now()); err != nil {
		logger.Fatal("failed to load sessions", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Dispatcher:  dispatcher,
		Clock:       clk,
		Latency:     latency,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: projectRepo,
		Dispatcher:  dispatcher,
		Clock:       clk,
		Latency:     latency,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Clock:      clk,
		Latency:    latency,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	preferenceService := service.NewPreferenceService(store, logger)
	statsService := service.NewStatsService(projectRepo, userRepo)
	notificationService := service.NewNotificationService(dispatcher, preferenceService, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Auth:           handlers.NewAuthHandler(authService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Users:          handlers.NewUsersHandler(userService),
		Preferences:    handlers.NewPreferencesHandler(preferenceService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		store := redisstore.NewStore(cfg.Redis, logger)
		return store, store.Close, nil
	case config.StorageBackendPostgres:
		store, err := pgstore.NewStore(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := file.NewStore(cfg.Storage.DataDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
