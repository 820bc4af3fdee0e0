package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/paisavault/paisavault/internal/adapter/http"
	"github.com/paisavault/paisavault/internal/adapter/http/handler"
	"github.com/paisavault/paisavault/internal/adapter/http/middleware"
	postgresRepo "github.com/paisavault/paisavault/internal/adapter/repository/postgres"
	redisRepo "github.com/paisavault/paisavault/internal/adapter/repository/redis"
	"github.com/paisavault/paisavault/internal/infrastructure/auth"
	"github.com/paisavault/paisavault/internal/infrastructure/config"
	"github.com/paisavault/paisavault/internal/infrastructure/logger"
	"github.com/paisavault/paisavault/internal/infrastructure/metrics"
	"github.com/paisavault/paisavault/internal/infrastructure/postgres"
	"github.com/paisavault/paisavault/internal/infrastructure/redis"
	"github.com/paisavault/paisavault/internal/usecase"
)

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	incomeRepo := postgresRepo.NewIncomeRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()

	notebookStore := redisRepo.NewNotebookStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	appMetrics := metrics.New()

	// Use cases
	notebookUC := usecase.NewNotebookUseCase(notebookStore, auditRepo, cache, idGen, log, appMetrics)
	incomeUC := usecase.NewIncomeUseCase(incomeRepo, auditRepo, cache, idGen, retrier, log)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, auditRepo, cache, idGen, retrier, log)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	summaryUC := usecase.NewSummaryUseCase(incomeRepo, expenseRepo, userRepo, notebookUC, cache, log, appMetrics)

	// HTTP layer
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(userUC, jwtManager),
		NotebookHandler:  handler.NewNotebookHandler(notebookUC),
		IncomeHandler:    handler.NewIncomeHandler(incomeUC),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		SummaryHandler:   handler.NewSummaryHandler(summaryUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
