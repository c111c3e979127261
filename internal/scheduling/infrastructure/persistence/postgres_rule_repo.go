package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRuleRepository stores schedule rules in PostgreSQL.
type PostgresRuleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRuleRepository creates a new PostgreSQL rule repository.
func NewPostgresRuleRepository(pool *pgxpool.Pool) *PostgresRuleRepository {
	return &PostgresRuleRepository{pool: pool}
}

// Add inserts a new rule.
func (r *PostgresRuleRepository) Add(ctx context.Context, rule *domain.ScheduleRule) error {
	conditionsJSON, err := json.Marshal(rule.Conditions())
	if err != nil {
		return err
	}
	actionsJSON, err := json.Marshal(rule.Actions())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedule_rules (id, name, conditions, actions, priority, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.pool.Exec(ctx, query,
		rule.ID(), rule.Name(), conditionsJSON, actionsJSON,
		rule.Priority(), rule.IsEnabled(), rule.CreatedAt(), rule.UpdatedAt(),
	)
	return err
}

// Update loads the rule, applies the partial update, and writes it back.
func (r *PostgresRuleRepository) Update(ctx context.Context, id uuid.UUID, update domain.RuleUpdate) (*domain.ScheduleRule, error) {
	rule, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rule.Apply(update); err != nil {
		return nil, err
	}

	conditionsJSON, err := json.Marshal(rule.Conditions())
	if err != nil {
		return nil, err
	}
	actionsJSON, err := json.Marshal(rule.Actions())
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE schedule_rules
		SET name = $2, conditions = $3, actions = $4, priority = $5, enabled = $6, updated_at = $7
		WHERE id = $1
	`
	_, err = r.pool.Exec(ctx, query,
		id, rule.Name(), conditionsJSON, actionsJSON,
		rule.Priority(), rule.IsEnabled(), rule.UpdatedAt(),
	)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete removes a rule by id.
func (r *PostgresRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM schedule_rules WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

// List returns all rules ordered by creation time.
func (r *PostgresRuleRepository) List(ctx context.Context) ([]*domain.ScheduleRule, error) {
	query := `
		SELECT id, name, conditions, actions, priority, enabled, created_at, updated_at
		FROM schedule_rules
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)
	for rows.Next() {
		rule, err := scanPgRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *PostgresRuleRepository) findByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleRule, error) {
	query := `
		SELECT id, name, conditions, actions, priority, enabled, created_at, updated_at
		FROM schedule_rules
		WHERE id = $1
	`
	rule, err := scanPgRule(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRuleNotFound
	}
	return rule, err
}

func scanPgRule(row pgx.Row) (*domain.ScheduleRule, error) {
	var (
		id                           uuid.UUID
		name                         string
		conditionsJSON, actionsJSON  []byte
		priority                     int
		enabled                      bool
		createdAt, updatedAt         time.Time
	)
	if err := row.Scan(&id, &name, &conditionsJSON, &actionsJSON, &priority, &enabled, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var conditions []domain.ScheduleCondition
	if err := json.Unmarshal(conditionsJSON, &conditions); err != nil {
		return nil, err
	}
	var actions []domain.ScheduleAction
	if err := json.Unmarshal(actionsJSON, &actions); err != nil {
		return nil, err
	}

	return domain.RehydrateScheduleRule(id, name, conditions, actions, priority, enabled, createdAt, updatedAt), nil
}
