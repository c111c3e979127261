package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleRule(t *testing.T) {
	conditions := []ScheduleCondition{{
		Type:     ConditionTypeAltitude,
		Operator: OperatorGreaterThan,
		Value:    30.0,
	}}
	actions := []ScheduleAction{{Type: "notify", Parameters: map[string]any{"channel": "observatory"}}}

	rule, err := NewScheduleRule("high targets only", conditions, actions, 3)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rule.ID())
	assert.Equal(t, "high targets only", rule.Name())
	assert.Equal(t, conditions, rule.Conditions())
	assert.Equal(t, actions, rule.Actions())
	assert.Equal(t, 3, rule.Priority())
	assert.True(t, rule.IsEnabled())
	assert.Equal(t, rule.CreatedAt(), rule.UpdatedAt())
}

func TestNewScheduleRule_EmptyName(t *testing.T) {
	_, err := NewScheduleRule("", nil, nil, 0)
	assert.ErrorIs(t, err, ErrRuleNameEmpty)
}

func TestScheduleRule_Apply(t *testing.T) {
	rule, err := NewScheduleRule("original", nil, nil, 1)
	require.NoError(t, err)
	created := rule.CreatedAt()

	time.Sleep(5 * time.Millisecond)

	name := "renamed"
	priority := 7
	enabled := false
	conditions := []ScheduleCondition{{Type: ConditionTypeEquipmentStatus}}
	require.NoError(t, rule.Apply(RuleUpdate{
		Name:       &name,
		Priority:   &priority,
		Enabled:    &enabled,
		Conditions: &conditions,
	}))

	assert.Equal(t, "renamed", rule.Name())
	assert.Equal(t, 7, rule.Priority())
	assert.False(t, rule.IsEnabled())
	assert.Equal(t, conditions, rule.Conditions())
	assert.Equal(t, created, rule.CreatedAt())
	assert.True(t, rule.UpdatedAt().After(created))
}

func TestScheduleRule_ApplyEmptyUpdateStillTouches(t *testing.T) {
	rule, err := NewScheduleRule("untouched fields", nil, nil, 1)
	require.NoError(t, err)
	before := rule.UpdatedAt()

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, rule.Apply(RuleUpdate{}))

	assert.Equal(t, "untouched fields", rule.Name())
	assert.True(t, rule.UpdatedAt().After(before))
}

func TestScheduleRule_ApplyRejectsEmptyName(t *testing.T) {
	rule, err := NewScheduleRule("keep me", nil, nil, 1)
	require.NoError(t, err)

	empty := ""
	assert.ErrorIs(t, rule.Apply(RuleUpdate{Name: &empty}), ErrRuleNameEmpty)
	assert.Equal(t, "keep me", rule.Name())
}

func TestRehydrateScheduleRule(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)

	rule := RehydrateScheduleRule(id, "persisted", nil, nil, 4, false, created, updated)

	assert.Equal(t, id, rule.ID())
	assert.Equal(t, "persisted", rule.Name())
	assert.Equal(t, 4, rule.Priority())
	assert.False(t, rule.IsEnabled())
	assert.Equal(t, created, rule.CreatedAt())
	assert.Equal(t, updated, rule.UpdatedAt())
}
