package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/astrosched/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrRuleNotFound  = errors.New("schedule rule not found")
	ErrRuleNameEmpty = errors.New("rule name is required")
)

// ScheduleRule pairs a set of conditions with the actions to take when they
// hold. Rules live in a registry owned by the rule store, not by any single
// scheduling run.
type ScheduleRule struct {
	sharedDomain.BaseEntity
	name       string
	conditions []ScheduleCondition
	actions    []ScheduleAction
	priority   int
	enabled    bool
}

// NewScheduleRule creates an enabled rule with the given conditions and actions.
func NewScheduleRule(name string, conditions []ScheduleCondition, actions []ScheduleAction, priority int) (*ScheduleRule, error) {
	if name == "" {
		return nil, ErrRuleNameEmpty
	}
	return &ScheduleRule{
		BaseEntity: sharedDomain.NewBaseEntity(),
		name:       name,
		conditions: conditions,
		actions:    actions,
		priority:   priority,
		enabled:    true,
	}, nil
}

func (r *ScheduleRule) Name() string                    { return r.name }
func (r *ScheduleRule) Conditions() []ScheduleCondition { return r.conditions }
func (r *ScheduleRule) Actions() []ScheduleAction       { return r.actions }
func (r *ScheduleRule) Priority() int                   { return r.priority }
func (r *ScheduleRule) IsEnabled() bool                 { return r.enabled }

// RuleUpdate is a partial update; nil fields are left unchanged.
type RuleUpdate struct {
	Name       *string
	Conditions *[]ScheduleCondition
	Actions    *[]ScheduleAction
	Priority   *int
	Enabled    *bool
}

// Apply merges the update into the rule and refreshes its modified timestamp.
// Any update, even an empty one, stamps the rule as modified.
func (r *ScheduleRule) Apply(update RuleUpdate) error {
	if update.Name != nil {
		if *update.Name == "" {
			return ErrRuleNameEmpty
		}
		r.name = *update.Name
	}
	if update.Conditions != nil {
		r.conditions = *update.Conditions
	}
	if update.Actions != nil {
		r.actions = *update.Actions
	}
	if update.Priority != nil {
		r.priority = *update.Priority
	}
	if update.Enabled != nil {
		r.enabled = *update.Enabled
	}
	r.Touch()
	return nil
}

// RehydrateScheduleRule recreates a rule from persisted state.
func RehydrateScheduleRule(
	id uuid.UUID,
	name string,
	conditions []ScheduleCondition,
	actions []ScheduleAction,
	priority int,
	enabled bool,
	createdAt, updatedAt time.Time,
) *ScheduleRule {
	return &ScheduleRule{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		name:       name,
		conditions: conditions,
		actions:    actions,
		priority:   priority,
		enabled:    enabled,
	}
}
