package postgres

import (
	"context"
	"log/slog"

	"github.com/earcherc/realfoodfinder/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations are idempotent and run in order. The ALTERs upgrade tables
// created before foods/tags and the "other" location type existed.
var migrations = []string{
	`DO $$ BEGIN
		CREATE TYPE location_type AS ENUM ('farm', 'home', 'store', 'dropoff', 'other');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
	`ALTER TYPE location_type ADD VALUE IF NOT EXISTS 'other'`,
	`DO $$ BEGIN
		CREATE TYPE location_status AS ENUM ('pending', 'approved', 'rejected');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
	`CREATE TABLE IF NOT EXISTS locations (
		id              serial PRIMARY KEY,
		name            varchar(120) NOT NULL,
		type            location_type NOT NULL,
		description     text,
		address         text,
		country         varchar(100),
		latitude        double precision NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude       double precision NOT NULL CHECK (longitude BETWEEN -180 AND 180),
		foods           text[] NOT NULL DEFAULT '{}',
		tags            text[] NOT NULL DEFAULT '{}',
		submitter_name  varchar(120),
		submitter_email varchar(255),
		status          location_status NOT NULL DEFAULT 'pending',
		created_at      timestamptz NOT NULL DEFAULT now(),
		updated_at      timestamptz NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE locations ADD COLUMN IF NOT EXISTS foods text[] NOT NULL DEFAULT '{}'`,
	`ALTER TABLE locations ADD COLUMN IF NOT EXISTS tags text[] NOT NULL DEFAULT '{}'`,
	`CREATE INDEX IF NOT EXISTS locations_status_created_idx
		ON locations (status, created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS link_submissions (
		id              serial PRIMARY KEY,
		title           varchar(160) NOT NULL,
		url             varchar(2000) NOT NULL,
		country         varchar(100) NOT NULL,
		description     text,
		products        text[] NOT NULL DEFAULT '{}',
		tags            text[] NOT NULL DEFAULT '{}',
		submitter_name  varchar(120),
		submitter_email varchar(255) NOT NULL,
		status          location_status NOT NULL DEFAULT 'pending',
		created_at      timestamptz NOT NULL DEFAULT now(),
		updated_at      timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS link_submissions_status_created_idx
		ON link_submissions (status, created_at DESC, id DESC)`,
}

// Migrate creates the enums, tables and indexes if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	const op = "postgres.Migrate"

	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Error("migration failed", slog.String("op", op), slog.Int("step", i), slog.Any("error", err))
			return e.WrapError(ctx, op, err)
		}
	}

	logger.Info("schema is up to date", slog.Int("steps", len(migrations)))
	return nil
}
