package services

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuleService() *RuleService {
	return NewRuleService(persistence.NewMemoryRuleRepository(), nil)
}

func TestAddRule(t *testing.T) {
	svc := newTestRuleService()
	ctx := context.Background()

	conditions := []domain.ScheduleCondition{{
		Type:     domain.ConditionTypeMoonPhase,
		Operator: domain.OperatorLessThan,
		Value:    0.3,
	}}
	actions := []domain.ScheduleAction{{Type: "prefer_narrowband"}}

	rule, err := svc.AddRule(ctx, "avoid bright moon", conditions, actions, 5)
	require.NoError(t, err)

	assert.Equal(t, "avoid bright moon", rule.Name())
	assert.Equal(t, 5, rule.Priority())
	assert.True(t, rule.IsEnabled())
	assert.Equal(t, rule.CreatedAt(), rule.UpdatedAt())

	rules, err := svc.GetRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, rule.ID(), rules[0].ID())
}

func TestAddRule_EmptyName(t *testing.T) {
	svc := newTestRuleService()

	_, err := svc.AddRule(context.Background(), "", nil, nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRuleNameEmpty)
}

func TestUpdateRule_StampsModifiedTime(t *testing.T) {
	svc := newTestRuleService()
	ctx := context.Background()

	rule, err := svc.AddRule(ctx, "clear skies only", nil, nil, 1)
	require.NoError(t, err)
	created := rule.CreatedAt()

	time.Sleep(5 * time.Millisecond)

	newPriority := 9
	updated, err := svc.UpdateRule(ctx, rule.ID(), domain.RuleUpdate{Priority: &newPriority})
	require.NoError(t, err)

	assert.Equal(t, 9, updated.Priority())
	assert.Equal(t, created, updated.CreatedAt())
	assert.True(t, updated.UpdatedAt().After(created))
}

func TestUpdateRule_PartialUpdateKeepsOtherFields(t *testing.T) {
	svc := newTestRuleService()
	ctx := context.Background()

	conditions := []domain.ScheduleCondition{{
		Type:     domain.ConditionTypeWeather,
		Operator: domain.OperatorLessThan,
		Value:    domain.WeatherValue{Parameter: domain.WeatherParamCloudCover, Threshold: 30},
	}}
	rule, err := svc.AddRule(ctx, "clear skies only", conditions, nil, 1)
	require.NoError(t, err)

	disabled := false
	updated, err := svc.UpdateRule(ctx, rule.ID(), domain.RuleUpdate{Enabled: &disabled})
	require.NoError(t, err)

	assert.False(t, updated.IsEnabled())
	assert.Equal(t, "clear skies only", updated.Name())
	assert.Equal(t, conditions, updated.Conditions())
	assert.Equal(t, 1, updated.Priority())
}

func TestUpdateRule_NotFound(t *testing.T) {
	svc := newTestRuleService()

	name := "renamed"
	_, err := svc.UpdateRule(context.Background(), uuid.New(), domain.RuleUpdate{Name: &name})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestDeleteRule(t *testing.T) {
	svc := newTestRuleService()
	ctx := context.Background()

	rule, err := svc.AddRule(ctx, "temporary", nil, nil, 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRule(ctx, rule.ID()))

	rules, err := svc.GetRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)

	err = svc.DeleteRule(ctx, rule.ID())
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}
