package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/mealforge/config"
	"github.com/pageza/mealforge/internal/api"
	"github.com/pageza/mealforge/internal/database"
	"github.com/pageza/mealforge/internal/middleware"
	"github.com/pageza/mealforge/internal/router"
	"github.com/pageza/mealforge/internal/server"
	"github.com/pageza/mealforge/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, caching and rate limiting disabled", zap.Error(err))
		redisClient = nil
	}

	llmService, err := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMAPIURL, logger)
	if err != nil {
		logger.Fatal("failed to initialize LLM client", zap.Error(err))
	}

	scraperService := service.NewScraperService(logger)
	ingredientService := service.NewIngredientService()
	recipeService := service.NewRecipeService(db, ingredientService, scraperService, logger)
	groceryService := service.NewGroceryService(db, redisClient, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	mealPlanService := service.NewMealPlanService(recipeService, groceryService, llmService, rng, logger)

	var mealPlanLimiter *middleware.RateLimiter
	if redisClient != nil {
		mealPlanLimiter = middleware.NewMealPlanRateLimiter(redisClient)
	}

	engine := router.SetupRouter(
		api.NewRecipeHandler(recipeService),
		api.NewGroceryListHandler(groceryService),
		api.NewMealPlanHandler(mealPlanService),
		mealPlanLimiter,
		logger,
	)

	srv := server.New(engine, cfg.ServerPort, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
