// internal/database/db.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the shared connection pool. It stays nil when no database is
// configured, and callers skip persistence in that case.
var DB *pgxpool.Pool

// ConnectDB opens the pool, verifies it and creates the schema.
func ConnectDB(ctx context.Context, url string) error {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return fmt.Errorf("create schema: %w", err)
	}
	DB = pool
	return nil
}

// Close releases the shared pool, if any.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS rachel_games (
	id          UUID PRIMARY KEY,
	final_state JSONB NOT NULL,
	winners     TEXT[] NOT NULL DEFAULT '{}',
	turns       INTEGER NOT NULL DEFAULT 0,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
