package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/service"
	"go.uber.org/zap"
)

// Demo accounts for local development against the built-in identity provider
var demoUsers = []struct {
	email    string
	username string
}{
	{"john.doe@example.com", "johndoe"},
	{"jane.smith@example.com", "janesmith"},
	{"bob.wilson@example.com", "bobwilson"},
}

func main() {
	password := flag.String("password", "testpassword123", "password given to every demo user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if config.IsProduction() {
		log.Fatal("refusing to seed demo users in production")
	}
	if cfg.AuthProvider != config.ProviderLocal {
		log.Fatalf("demo users can only be seeded with the %q auth provider", config.ProviderLocal)
	}

	zl, err := logger.New(cfg.LogLevel, config.GetEnvironment())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret)
	profiles := service.NewProfileService(db)

	for _, u := range demoUsers {
		user, err := auth.SignUp(ctx, u.email, *password)
		if errors.Is(err, service.ErrUserExists) {
			fmt.Printf("User already exists: %s\n", u.email)
			continue
		}
		if err != nil {
			zl.Fatal("failed to create user", zap.String("email", u.email), zap.Error(err))
		}
		if err := profiles.UpdateUsername(ctx, user.ID, u.username); err != nil {
			zl.Fatal("failed to set username", zap.String("email", u.email), zap.Error(err))
		}
		fmt.Printf("Created user %s (%s) id=%s\n", u.email, u.username, user.ID)
	}
}
