package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgresScheduledRepository stores placements in PostgreSQL. Sequence
// metadata is split into proper columns (difficulty text, equipment text[])
// instead of a JSON blob so placements can be filtered by rig in SQL.
type PostgresScheduledRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduledRepository creates a new PostgreSQL scheduled sequence repository.
func NewPostgresScheduledRepository(pool *pgxpool.Pool) *PostgresScheduledRepository {
	return &PostgresScheduledRepository{pool: pool}
}

// Save inserts or updates a placement.
func (r *PostgresScheduledRepository) Save(ctx context.Context, scheduled *domain.ScheduledSequence) error {
	query := `
		INSERT INTO scheduled_sequences (
			id, sequence_id, target_id, scheduled_start, scheduled_end,
			actual_start, actual_end, status, priority, difficulty, equipment,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			actual_start = EXCLUDED.actual_start,
			actual_end = EXCLUDED.actual_end,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		scheduled.ID(),
		scheduled.SequenceID(),
		scheduled.TargetID(),
		scheduled.ScheduledStart(),
		scheduled.ScheduledEnd(),
		scheduled.ActualStart(),
		scheduled.ActualEnd(),
		string(scheduled.Status()),
		scheduled.Priority(),
		string(scheduled.Metadata().Difficulty),
		pq.Array(scheduled.Metadata().Equipment),
		scheduled.CreatedAt(),
		scheduled.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a placement.
func (r *PostgresScheduledRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledSequence, error) {
	query := pgScheduledSelect + " WHERE id = $1"
	scheduled, err := scanPgScheduled(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScheduledNotFound
	}
	return scheduled, err
}

// List returns all placements ordered by scheduled start.
func (r *PostgresScheduledRepository) List(ctx context.Context) ([]*domain.ScheduledSequence, error) {
	query := pgScheduledSelect + " ORDER BY scheduled_start"
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.ScheduledSequence, 0)
	for rows.Next() {
		scheduled, err := scanPgScheduled(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, scheduled)
	}
	return out, rows.Err()
}

// Delete removes a placement by id.
func (r *PostgresScheduledRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM scheduled_sequences WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduledNotFound
	}
	return nil
}

const pgScheduledSelect = `
	SELECT id, sequence_id, target_id, scheduled_start, scheduled_end,
	       actual_start, actual_end, status, priority, difficulty, equipment,
	       created_at, updated_at
	FROM scheduled_sequences
`

func scanPgScheduled(row pgx.Row) (*domain.ScheduledSequence, error) {
	var (
		id, sequenceID, targetID     uuid.UUID
		scheduledStart, scheduledEnd time.Time
		actualStart, actualEnd       *time.Time
		status, difficulty           string
		priority                     float64
		equipment                    []string
		createdAt, updatedAt         time.Time
	)
	err := row.Scan(&id, &sequenceID, &targetID, &scheduledStart, &scheduledEnd,
		&actualStart, &actualEnd, &status, &priority, &difficulty,
		pq.Array(&equipment), &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	metadata := domain.SequenceMetadata{
		Difficulty: domain.Difficulty(difficulty),
		Equipment:  equipment,
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
