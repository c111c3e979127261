package persistence

import (
	"context"
	"database/sql"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schedule_rules (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	conditions TEXT NOT NULL,
	actions TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 0,
	enabled INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scheduled_sequences (
	id TEXT PRIMARY KEY,
	sequence_id TEXT NOT NULL,
	target_id TEXT NOT NULL,
	scheduled_start TEXT NOT NULL,
	scheduled_end TEXT NOT NULL,
	actual_start TEXT,
	actual_end TEXT,
	status TEXT NOT NULL,
	priority REAL NOT NULL DEFAULT 0,
	metadata TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scheduled_sequences_start
	ON scheduled_sequences (scheduled_start);
CREATE INDEX IF NOT EXISTS idx_scheduled_sequences_status
	ON scheduled_sequences (status);
`

// EnsureSQLiteSchema creates the scheduler tables if they do not exist.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, sqliteSchema)
	return err
}
