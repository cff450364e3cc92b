package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/importer"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/service"
	"go.uber.org/zap"
)

func main() {
	userFlag := flag.String("user", "", "id of the user the recipes are created for")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -user <uuid> <file-or-dir>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, config.GetEnvironment())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	paths, err := importer.Collect(flag.Args())
	if err != nil {
		zl.Fatal("failed to collect recipe files", zap.Error(err))
	}

	db, err := database.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	if cfg.AutoMigrate || cfg.DBDriver == config.DriverSQLite {
		if err := database.Migrate(db); err != nil {
			zl.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	im := importer.New(service.NewLLMService(cfg, zl.Named("llm")), service.NewRecipeService(db), zl)
	results := im.ImportFiles(ctx, userID, paths)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("OK   %s -> %s\n", r.Path, r.RecipeID)
	}
	fmt.Printf("Imported %d of %d recipes\n", len(results)-failed, len(results))

	if failed > 0 {
		stop()
		os.Exit(1)
	}
}
