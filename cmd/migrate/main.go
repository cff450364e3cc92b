package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    VARCHAR(64) PRIMARY KEY,
	name       VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "directory holding the *.sql migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DBDriver != config.DriverPostgres {
		log.Fatalf("SQL migrations only target postgres; the %s driver uses AUTO_MIGRATE", cfg.DBDriver)
	}

	db, err := sql.Open("postgres", database.DSN(cfg))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(createMigrationsTable); err != nil {
		log.Fatalf("failed to create schema_migrations: %v", err)
	}

	if *rollback {
		name, err := rollbackLast(db, *dir)
		if err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		fmt.Printf("Successfully rolled back migration: %s\n", name)
		return
	}

	files, err := migrationFiles(*dir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	for _, file := range files {
		applied, err := applyMigration(db, *dir, file)
		if err != nil {
			log.Fatalf("failed to apply migration %s: %v", file, err)
		}
		if applied {
			fmt.Printf("Successfully applied migration: %s\n", file)
		} else {
			fmt.Printf("Migration already applied: %s\n", file)
		}
	}

	fmt.Println("All migrations applied successfully.")
}

// migrationFiles lists forward migrations in apply order, skipping rollback scripts
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, "_rollback.sql") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// version is the filename prefix before the first underscore (0001_init.sql -> 0001)
func version(file string) string {
	return strings.SplitN(file, "_", 2)[0]
}

func rollbackFile(file string) string {
	return strings.TrimSuffix(file, ".sql") + "_rollback.sql"
}

func applyMigration(db *sql.DB, dir, file string) (bool, error) {
	var exists bool
	if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version(file)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if exists {
		return false, nil
	}

	content, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return false, err
	}

	tx, err := db.Begin()
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version(file), file); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("failed to record migration: %w", err)
	}
	return true, tx.Commit()
}

func rollbackLast(db *sql.DB, dir string) (string, error) {
	var ver, name string
	err := db.QueryRow("SELECT version, name FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1").Scan(&ver, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("no migrations to rollback")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, rollbackFile(name)))
	if err != nil {
		return "", fmt.Errorf("rollback file not found: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		_ = tx.Rollback()
		return "", err
	}
	if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", ver); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("failed to remove migration record: %w", err)
	}
	return name, tx.Commit()
}
