package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/recipehub/config"
	"github.com/d60-Lab/recipehub/internal/api"
	"github.com/d60-Lab/recipehub/internal/api/handler"
	"github.com/d60-Lab/recipehub/internal/cache"
	"github.com/d60-Lab/recipehub/internal/repository"
	"github.com/d60-Lab/recipehub/internal/service"
	"github.com/d60-Lab/recipehub/pkg/database"
	"github.com/d60-Lab/recipehub/pkg/logger"
	"github.com/d60-Lab/recipehub/pkg/trace"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// @title recipehub API
// @version 1.0
// @description Recipe sharing backend: recipes, subscriptions, favorites and shopping lists.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTrace := must(trace.Init(cfg, "recipehub"))

	db := must(database.InitDB(cfg))

	// catalog cache is best-effort: run without it if redis is down
	var catalogCache *cache.Catalog
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
	} else {
		catalogCache = cache.NewCatalog(rdb, cfg.Search.CatalogTTL)
	}

	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)

	userSvc := service.NewUserService(cfg, userRepo)
	subSvc := service.NewSubscriptionService(cfg, subRepo, userRepo, recipeRepo)
	catalogSvc := service.NewCatalogService(cfg, tagRepo, ingRepo, catalogCache)
	recipeSvc := service.NewRecipeService(cfg, recipeRepo, tagRepo, ingRepo, favRepo, cartRepo, subRepo)
	engagementSvc := service.NewEngagementService(favRepo, cartRepo, recipeRepo)
	shoppingSvc := service.NewShoppingListService(cartRepo)

	h := handler.NewHandler(cfg, userSvc, subSvc, catalogSvc, recipeSvc, engagementSvc, shoppingSvc)
	r := api.NewRouter(cfg, h, userRepo)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}
	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	if err := shutdownTrace(ctx); err != nil {
		logger.Warn("trace shutdown", zap.Error(err))
	}
}
