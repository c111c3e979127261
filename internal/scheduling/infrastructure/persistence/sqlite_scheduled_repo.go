package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// SQLiteScheduledRepository stores placements in SQLite.
type SQLiteScheduledRepository struct {
	db *sql.DB
}

// NewSQLiteScheduledRepository creates a new SQLite scheduled sequence repository.
func NewSQLiteScheduledRepository(db *sql.DB) *SQLiteScheduledRepository {
	return &SQLiteScheduledRepository{db: db}
}

// Save inserts or replaces a placement.
func (r *SQLiteScheduledRepository) Save(ctx context.Context, scheduled *domain.ScheduledSequence) error {
	metadataJSON, err := json.Marshal(scheduled.Metadata())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO scheduled_sequences (
			id, sequence_id, target_id, scheduled_start, scheduled_end,
			actual_start, actual_end, status, priority, metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			actual_start = excluded.actual_start,
			actual_end = excluded.actual_end,
			status = excluded.status,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		scheduled.ID().String(),
		scheduled.SequenceID().String(),
		scheduled.TargetID().String(),
		scheduled.ScheduledStart().Format(time.RFC3339Nano),
		scheduled.ScheduledEnd().Format(time.RFC3339Nano),
		nullTime(scheduled.ActualStart()),
		nullTime(scheduled.ActualEnd()),
		string(scheduled.Status()),
		scheduled.Priority(),
		string(metadataJSON),
		scheduled.CreatedAt().Format(time.RFC3339Nano),
		scheduled.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves a placement.
func (r *SQLiteScheduledRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledSequence, error) {
	query := scheduledSelect + " WHERE id = ?"
	scheduled, err := scanScheduled(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrScheduledNotFound
	}
	return scheduled, err
}

// List returns all placements ordered by scheduled start.
func (r *SQLiteScheduledRepository) List(ctx context.Context) ([]*domain.ScheduledSequence, error) {
	query := scheduledSelect + " ORDER BY scheduled_start"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.ScheduledSequence, 0)
	for rows.Next() {
		scheduled, err := scanScheduled(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, scheduled)
	}
	return out, rows.Err()
}

// Delete removes a placement by id.
func (r *SQLiteScheduledRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM scheduled_sequences WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrScheduledNotFound
	}
	return nil
}

const scheduledSelect = `
	SELECT id, sequence_id, target_id, scheduled_start, scheduled_end,
	       actual_start, actual_end, status, priority, metadata, created_at, updated_at
	FROM scheduled_sequences
`

func scanScheduled(row rowScanner) (*domain.ScheduledSequence, error) {
	var (
		idStr, seqStr, targetStr    string
		startStr, endStr            string
		actualStartStr, actualEndStr sql.NullString
		status                      string
		priority                    float64
		metadataJSON                string
		createdStr, updatedStr      string
	)
	err := row.Scan(&idStr, &seqStr, &targetStr, &startStr, &endStr,
		&actualStartStr, &actualEndStr, &status, &priority, &metadataJSON, &createdStr, &updatedStr)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	sequenceID, err := uuid.Parse(seqStr)
	if err != nil {
		return nil, err
	}
	targetID, err := uuid.Parse(targetStr)
	if err != nil {
		return nil, err
	}

	scheduledStart, err := time.Parse(time.RFC3339Nano, startStr)
	if err != nil {
		return nil, err
	}
	scheduledEnd, err := time.Parse(time.RFC3339Nano, endStr)
	if err != nil {
		return nil, err
	}
	actualStart, err := parseNullTime(actualStartStr)
	if err != nil {
		return nil, err
	}
	actualEnd, err := parseNullTime(actualEndStr)
	if err != nil {
		return nil, err
	}

	var metadata domain.SequenceMetadata
	if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updatedStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateScheduledSequence(
		id, sequenceID, targetID,
		scheduledStart, scheduledEnd,
		actualStart, actualEnd,
		domain.SequenceStatus(status),
		priority, metadata,
		createdAt, updatedAt,
	), nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
