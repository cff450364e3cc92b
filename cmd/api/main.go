package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, config.GetEnvironment())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	if cfg.AutoMigrate || cfg.DBDriver == config.DriverSQLite {
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("database schema migrated")
	}

	identity, err := newIdentityProvider(cfg, db, log)
	if err != nil {
		return err
	}

	deps := router.Deps{
		Identity:       identity,
		Profiles:       service.NewProfileService(db),
		Ingredients:    service.NewIngredientService(db),
		Recipes:        service.NewRecipeService(db),
		Parser:         service.NewLLMService(cfg, log.Named("llm")),
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            log,
	}

	if cfg.RedisEnabled() && cfg.RecipeImportLimit > 0 {
		rdb, err := database.NewRedisClient(cfg, log)
		if err != nil {
			// Imports stay available without the limiter
			log.Warn("redis unavailable, recipe import rate limiting disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			deps.ImportLimiter = middleware.NewRecipeImportRateLimiter(rdb, cfg.RecipeImportLimit, log.Named("ratelimit"))
		}
	}

	srv := server.New(cfg, router.SetupRouter(deps), log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
		return nil
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func newIdentityProvider(cfg *config.Config, db *gorm.DB, log *zap.Logger) (service.IdentityProvider, error) {
	switch cfg.AuthProvider {
	case config.ProviderLocal:
		return service.NewAuthService(db, cfg.JWTSecret), nil
	case config.ProviderSupabase:
		return service.NewSupabaseAuthService(cfg.SupabaseURL, cfg.SupabaseAnonKey, log.Named("supabase")), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}
