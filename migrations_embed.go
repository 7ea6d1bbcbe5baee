package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bar-website/db"
)

// Embed migrations into the binary so `barsite migrate` works regardless of
// the current working directory.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

const schemaMigrationsDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name       TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// pendingMigrations returns the files whose base name is not in applied, in
// name order.
func pendingMigrations(files []string, applied map[string]bool) []string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	var out []string
	for _, f := range sorted {
		if !applied[path.Base(f)] {
			out = append(out, f)
		}
	}
	return out
}

func appliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := db.Pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// applyMigrations runs every embedded migration not yet recorded in
// schema_migrations. Each file commits in one transaction with its row.
func applyMigrations(ctx context.Context, log *zap.Logger) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if _, err := db.Pool.Exec(ctx, schemaMigrationsDDL); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}

	pending := pendingMigrations(names, applied)
	for _, name := range pending {
		if err := applyMigration(ctx, name); err != nil {
			return err
		}
		log.Info("migration applied", zap.String("file", name))
	}
	if len(pending) == 0 {
		log.Info("schema up to date", zap.Int("migrations", len(names)))
	}
	return nil
}

func applyMigration(ctx context.Context, name string) error {
	sqlBytes, err := migrationsFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, path.Base(name)); err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return tx.Commit(ctx)
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations to PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := db.Init(ctx, opts.cfg.DB); err != nil {
				return fmt.Errorf("db: %w", err)
			}
			defer db.Close()
			return applyMigrations(ctx, opts.log)
		},
	}
}
