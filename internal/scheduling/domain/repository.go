package domain

import (
	"context"

	"github.com/google/uuid"
)

// RuleRepository is the registry of schedule rules.
type RuleRepository interface {
	// Add persists a new rule.
	Add(ctx context.Context, rule *ScheduleRule) error

	// Update applies a partial update to an existing rule and returns the
	// updated rule. Returns ErrRuleNotFound for unknown ids.
	Update(ctx context.Context, id uuid.UUID, update RuleUpdate) (*ScheduleRule, error)

	// Delete removes a rule by id. Returns ErrRuleNotFound for unknown ids.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all rules ordered by creation time.
	List(ctx context.Context) ([]*ScheduleRule, error)
}

// ScheduledSequenceRepository stores placements produced by the orchestrator.
type ScheduledSequenceRepository interface {
	// Save persists a placement, inserting or updating by id.
	Save(ctx context.Context, scheduled *ScheduledSequence) error

	// FindByID retrieves a placement. Returns ErrScheduledNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*ScheduledSequence, error)

	// List returns all placements ordered by scheduled start.
	List(ctx context.Context) ([]*ScheduledSequence, error)

	// Delete removes a placement by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
