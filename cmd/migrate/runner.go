package main

import (
	"context"
	"database/sql"
	"fmt"

	"dbtrain-backend/migrations"
)

const createVersionTable = `
    CREATE TABLE IF NOT EXISTS schema_migrations (
        version     VARCHAR(32) PRIMARY KEY,
        name        TEXT        NOT NULL,
        applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`

// run applies pending migrations in the given direction and returns their file names
func run(ctx context.Context, db *sql.DB, direction string, steps int) ([]string, error) {
	all, err := migrations.Load(direction)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, m := range pending(all, applied, direction, steps) {
		if err := apply(ctx, db, m, direction); err != nil {
			return done, fmt.Errorf("%s: %w", m.Name, err)
		}
		done = append(done, m.Name)
	}
	return done, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	versions := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions[v] = true
	}
	return versions, rows.Err()
}

// pending selects what to run: unapplied files for up, applied files (newest first) for down.
// Down defaults to a single step.
func pending(all []migrations.Migration, applied map[string]bool, direction string, steps int) []migrations.Migration {
	if direction == migrations.Down && steps <= 0 {
		steps = 1
	}

	var out []migrations.Migration
	for _, m := range all {
		if applied[m.Version] == (direction == migrations.Up) {
			continue
		}
		out = append(out, m)
		if steps > 0 && len(out) == steps {
			break
		}
	}
	return out
}

func apply(ctx context.Context, db *sql.DB, m migrations.Migration, direction string) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}

	if direction == migrations.Up {
		_, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version)
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}
