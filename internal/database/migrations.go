package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Schema statements are idempotent so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		fam VARCHAR(50) NOT NULL,
		name VARCHAR(50) NOT NULL,
		otc VARCHAR(50) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS mountain_passes (
		id BIGSERIAL PRIMARY KEY,
		beauty_title VARCHAR(255) NOT NULL DEFAULT '',
		title VARCHAR(255) NOT NULL,
		other_titles VARCHAR(255) NOT NULL DEFAULT '',
		connect VARCHAR(255) NOT NULL DEFAULT '',
		user_id BIGINT NOT NULL REFERENCES users(id),
		latitude NUMERIC(9,6) NOT NULL,
		longitude NUMERIC(9,6) NOT NULL,
		height INTEGER NOT NULL,
		add_time TIMESTAMPTZ NOT NULL DEFAULT now(),
		status VARCHAR(16) NOT NULL DEFAULT 'new'
			CHECK (status IN ('new', 'pending', 'accepted', 'rejected'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mountain_passes_user_id
		ON mountain_passes(user_id)`,
	`CREATE TABLE IF NOT EXISTS difficulty_levels (
		pass_id BIGINT NOT NULL REFERENCES mountain_passes(id),
		season VARCHAR(10) NOT NULL
			CHECK (season IN ('winter', 'summer', 'autumn', 'spring')),
		level VARCHAR(2) NOT NULL
			CHECK (level IN ('1A', '1B', '2A', '2B', '3A', '3B')),
		UNIQUE (pass_id, season)
	)`,
	`CREATE TABLE IF NOT EXISTS images (
		id BIGSERIAL PRIMARY KEY,
		pass_id BIGINT NOT NULL REFERENCES mountain_passes(id),
		title VARCHAR(255) NOT NULL,
		img_url TEXT NOT NULL
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("Running database migrations")

	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}

	return nil
}
