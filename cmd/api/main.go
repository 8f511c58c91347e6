package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/imagecache"
	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/router"
	"github.com/pageza/mealwise/backend/internal/server"
	"github.com/pageza/mealwise/backend/internal/service"
)

func main() {
	if err := logger.Init(config.IsProduction()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Warn("redis unavailable, provider cache and rate limiting disabled", zap.Error(err))
			redisClient = nil
		}
	}

	var recipes provider.RecipeProvider = provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderImageBaseURL, cfg.ProviderAPIKey, cfg.ProviderTimeout)
	if redisClient != nil {
		recipes = provider.NewCachingProvider(recipes, provider.NewRedisCache(redisClient), cfg.ProviderCacheTTL)
	}

	var store service.ObjectStore
	if cfg.S3BucketName != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Warn("avatar storage disabled", zap.Error(err))
		} else {
			store = s3Config
		}
	}

	tokens, err := service.NewTokenVerifier(cfg)
	if err != nil {
		log.Fatal("failed to configure token verification", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	images := imagecache.New()
	handler := router.SetupRouter(&router.Dependencies{
		DB:                db,
		Tokens:            tokens,
		Users:             service.NewUserService(db),
		Profiles:          service.NewProfileService(db, store),
		Recipes:           service.NewRecipeService(db, recipes, images),
		MealPlans:         service.NewMealPlanService(db, recipes, images),
		SavedRecipes:      service.NewSavedRecipeService(db, recipes, images),
		Shopping:          service.NewShoppingService(db, recipes),
		GenerationLimiter: middleware.NewMealPlanGenerationRateLimiter(redisClient, cfg.GenerationLimit, cfg.GenerationWindow),
		Metrics:           middleware.NewMetrics(registry),
		CORSOrigins:       cfg.CORSOrigins,
		Production:        cfg.IsProduction(),
	})

	srv := server.New(cfg, handler)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
