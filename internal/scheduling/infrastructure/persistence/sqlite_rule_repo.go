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

// SQLiteRuleRepository stores schedule rules in SQLite.
type SQLiteRuleRepository struct {
	db *sql.DB
}

// NewSQLiteRuleRepository creates a new SQLite rule repository.
func NewSQLiteRuleRepository(db *sql.DB) *SQLiteRuleRepository {
	return &SQLiteRuleRepository{db: db}
}

// Add inserts a new rule.
func (r *SQLiteRuleRepository) Add(ctx context.Context, rule *domain.ScheduleRule) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		rule.ID().String(),
		rule.Name(),
		string(conditionsJSON),
		string(actionsJSON),
		rule.Priority(),
		boolToInt64(rule.IsEnabled()),
		rule.CreatedAt().Format(time.RFC3339Nano),
		rule.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// Update loads the rule, applies the partial update, and writes it back.
func (r *SQLiteRuleRepository) Update(ctx context.Context, id uuid.UUID, update domain.RuleUpdate) (*domain.ScheduleRule, error) {
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
		SET name = ?, conditions = ?, actions = ?, priority = ?, enabled = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = r.db.ExecContext(ctx, query,
		rule.Name(),
		string(conditionsJSON),
		string(actionsJSON),
		rule.Priority(),
		boolToInt64(rule.IsEnabled()),
		rule.UpdatedAt().Format(time.RFC3339Nano),
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete removes a rule by id.
func (r *SQLiteRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM schedule_rules WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

// List returns all rules ordered by creation time.
func (r *SQLiteRuleRepository) List(ctx context.Context) ([]*domain.ScheduleRule, error) {
	query := `
		SELECT id, name, conditions, actions, priority, enabled, created_at, updated_at
		FROM schedule_rules
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *SQLiteRuleRepository) findByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleRule, error) {
	query := `
		SELECT id, name, conditions, actions, priority, enabled, created_at, updated_at
		FROM schedule_rules
		WHERE id = ?
	`
	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRuleNotFound
	}
	return rule, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*domain.ScheduleRule, error) {
	var (
		idStr, name, conditionsJSON, actionsJSON string
		priority                                 int
		enabled                                  int64
		createdStr, updatedStr                   string
	)
	if err := row.Scan(&idStr, &name, &conditionsJSON, &actionsJSON, &priority, &enabled, &createdStr, &updatedStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	var conditions []domain.ScheduleCondition
	if err := json.Unmarshal([]byte(conditionsJSON), &conditions); err != nil {
		return nil, err
	}
	var actions []domain.ScheduleAction
	if err := json.Unmarshal([]byte(actionsJSON), &actions); err != nil {
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

	return domain.RehydrateScheduleRule(id, name, conditions, actions, priority, enabled != 0, createdAt, updatedAt), nil
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
