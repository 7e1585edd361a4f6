package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDB wraps the database connection pool
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(ctx context.Context, databaseURL string) (*PostgresDB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Configure connection pool
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *PostgresDB) Close() {
	db.Pool.Close()
}

// InitSchema creates the session ledger table.
func (db *PostgresDB) InitSchema(ctx context.Context) error {
	sessionsQuery := `
		CREATE TABLE IF NOT EXISTS oversight_sessions (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			report_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'running',
			steps JSONB,
			results JSONB,
			error_message TEXT,
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			ended_at TIMESTAMP WITH TIME ZONE,
			processing_time DOUBLE PRECISION NOT NULL DEFAULT 0
		);
	`
	if _, err := db.Pool.Exec(ctx, sessionsQuery); err != nil {
		return fmt.Errorf("failed to create oversight_sessions table: %w", err)
	}

	if _, err := db.Pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_oversight_sessions_started_at ON oversight_sessions(started_at DESC)"); err != nil {
		return fmt.Errorf("failed to create index on oversight_sessions: %w", err)
	}

	return nil
}
