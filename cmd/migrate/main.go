// Command migrate applies the SQL files under migrations/ to the contacts database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/contactapp/backend/internal/config"
	"github.com/contactapp/backend/internal/logging"
	"github.com/contactapp/backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations
  status      list migrations and whether they are applied
  reset       drop every table and recreate from the consolidated schema
  fresh       drop every table and apply every migration in order`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.DatabaseURL == "" {
		logging.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	migrationDir := findMigrationDir()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		runIncremental(ctx, pool, migrationDir)
	case "status":
		runStatus(ctx, pool, migrationDir)
	case "reset":
		runDropAll(ctx, pool, migrationDir)
		runConsolidated(ctx, pool, migrationDir)
	case "fresh":
		runDropAll(ctx, pool, migrationDir)
		runIncremental(ctx, pool, migrationDir)
	default:
		usage()
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// collectUpFiles returns the sorted names of the *.up.sql files in dir.
func collectUpFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Fatal("read migrations dir failed", "error", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		logging.Fatal("create schema_migrations failed", "error", err)
	}
}

func appliedMigrations(ctx context.Context, pool *pgxpool.Pool) map[string]bool {
	rows, err := pool.Query(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		logging.Fatal("read schema_migrations failed", "error", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		logging.Fatal("read schema_migrations failed", "error", err)
	}
	applied := make(map[string]bool, len(names))
	for _, n := range names {
		applied[n] = true
	}
	return applied
}

func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)
	done := appliedMigrations(ctx, pool)

	applied := 0
	for _, filename := range collectUpFiles(dir) {
		name := strings.TrimSuffix(filename, ".up.sql")
		if done[name] {
			continue
		}
		if err := applyMigration(ctx, pool, dir, filename, name); err != nil {
			logging.Fatal("migration failed", "migration", name, "error", err)
		}
		applied++
		slog.Info("migration applied", "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
}

// applyMigration runs one file and records it in a single transaction.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, dir, filename, name string) error {
	sql, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name)
		return err
	})
}

func runStatus(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)
	done := appliedMigrations(ctx, pool)
	for _, filename := range collectUpFiles(dir) {
		name := strings.TrimSuffix(filename, ".up.sql")
		state := "pending"
		if done[name] {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
}

func runDropAll(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("dropping all tables")
	sql, err := os.ReadFile(filepath.Join(dir, "000_drop_all.sql"))
	if err != nil {
		logging.Fatal("read 000_drop_all.sql failed", "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("drop all failed", "error", err)
	}
	slog.Info("all tables dropped")
}

func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("applying consolidated schema")
	sql, err := os.ReadFile(filepath.Join(dir, "000_consolidated.sql"))
	if err != nil {
		logging.Fatal("read 000_consolidated.sql failed", "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("consolidated apply failed", "error", err)
	}

	// the consolidated schema already contains every migration
	ensureSchemaMigrations(ctx, pool)
	upFiles := collectUpFiles(dir)
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			logging.Fatal("mark migration failed", "migration", name, "error", err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(upFiles))
}
