package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS schedule_rules (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	conditions JSONB NOT NULL DEFAULT '[]',
	actions JSONB NOT NULL DEFAULT '[]',
	priority INTEGER NOT NULL DEFAULT 0,
	enabled BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS scheduled_sequences (
	id UUID PRIMARY KEY,
	sequence_id UUID NOT NULL,
	target_id UUID NOT NULL,
	scheduled_start TIMESTAMPTZ NOT NULL,
	scheduled_end TIMESTAMPTZ NOT NULL,
	actual_start TIMESTAMPTZ,
	actual_end TIMESTAMPTZ,
	status TEXT NOT NULL,
	priority DOUBLE PRECISION NOT NULL DEFAULT 0,
	difficulty TEXT NOT NULL DEFAULT '',
	equipment TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scheduled_sequences_start
	ON scheduled_sequences (scheduled_start);
CREATE INDEX IF NOT EXISTS idx_scheduled_sequences_status
	ON scheduled_sequences (status);
`

// EnsurePostgresSchema creates the scheduler tables if they do not exist.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, postgresSchema)
	return err
}
