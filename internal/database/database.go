package database

import (
	"context"
	"errors"
	"fmt"

	"pereval-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ErrConnectionFailed marks errors caused by the database being
// unreachable, as opposed to query-level failures.
var ErrConnectionFailed = errors.New("database connection failed")

// Connect creates a connection pool from the database configuration and
// verifies it with a ping. Errors are wrapped with ErrConnectionFailed so
// callers can report service-unavailable instead of a generic failure.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	if cfg.Password == "" {
		log.Warn().Msg("Connecting to database without a password")
	}
	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("dbname", cfg.DBName).
		Msg("Database connection established")

	return pool, nil
}
