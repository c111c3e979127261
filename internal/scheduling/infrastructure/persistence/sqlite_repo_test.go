package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/felixgeelhaar/astrosched/internal/shared/infrastructure/database/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "astrosched_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSQLiteSchema(ctx, db))
	return db
}

func TestSQLiteRuleRepository_RoundTrip(t *testing.T) {
	repo := NewSQLiteRuleRepository(newTestDB(t))
	ctx := context.Background()

	conditions := []domain.ScheduleCondition{{
		Type:     domain.ConditionTypeWeather,
		Operator: domain.OperatorLessThan,
		Value:    map[string]any{"parameter": domain.WeatherParamCloudCover, "threshold": 40.0},
	}}
	actions := []domain.ScheduleAction{{Type: "pause", Parameters: map[string]any{"reason": "clouds"}}}

	rule, err := domain.NewScheduleRule("cloud guard", conditions, actions, 8)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, rule))

	rules, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	loaded := rules[0]
	assert.Equal(t, rule.ID(), loaded.ID())
	assert.Equal(t, "cloud guard", loaded.Name())
	assert.Equal(t, 8, loaded.Priority())
	assert.True(t, loaded.IsEnabled())
	require.Len(t, loaded.Conditions(), 1)
	assert.Equal(t, domain.ConditionTypeWeather, loaded.Conditions()[0].Type)
	require.Len(t, loaded.Actions(), 1)
	assert.Equal(t, "pause", loaded.Actions()[0].Type)
}

func TestSQLiteRuleRepository_Update(t *testing.T) {
	repo := NewSQLiteRuleRepository(newTestDB(t))
	ctx := context.Background()

	rule, err := domain.NewScheduleRule("before", nil, nil, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, rule))

	name := "after"
	disabled := false
	updated, err := repo.Update(ctx, rule.ID(), domain.RuleUpdate{Name: &name, Enabled: &disabled})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name())
	assert.False(t, updated.IsEnabled())

	rules, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "after", rules[0].Name())
	assert.False(t, rules[0].IsEnabled())
	assert.True(t, rules[0].UpdatedAt().After(rules[0].CreatedAt()) ||
		rules[0].UpdatedAt().Equal(rules[0].CreatedAt()))
}

func TestSQLiteRuleRepository_UpdateNotFound(t *testing.T) {
	repo := NewSQLiteRuleRepository(newTestDB(t))

	name := "ghost"
	_, err := repo.Update(context.Background(), uuid.New(), domain.RuleUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestSQLiteRuleRepository_Delete(t *testing.T) {
	repo := NewSQLiteRuleRepository(newTestDB(t))
	ctx := context.Background()

	rule, err := domain.NewScheduleRule("short lived", nil, nil, 0)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, rule))

	require.NoError(t, repo.Delete(ctx, rule.ID()))
	assert.ErrorIs(t, repo.Delete(ctx, rule.ID()), domain.ErrRuleNotFound)

	rules, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestSQLiteScheduledRepository_RoundTrip(t *testing.T) {
	repo := NewSQLiteScheduledRepository(newTestDB(t))
	ctx := context.Background()

	start := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	scheduled, err := domain.NewScheduledSequence(uuid.New(), uuid.New(), start, start.Add(2*time.Hour), 90, domain.SequenceMetadata{
		Difficulty: domain.DifficultyAdvanced,
		Equipment:  []string{"RC8", "ASI6200"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, scheduled))

	loaded, err := repo.FindByID(ctx, scheduled.ID())
	require.NoError(t, err)
	assert.Equal(t, scheduled.SequenceID(), loaded.SequenceID())
	assert.Equal(t, scheduled.TargetID(), loaded.TargetID())
	assert.True(t, loaded.ScheduledStart().Equal(start))
	assert.True(t, loaded.ScheduledEnd().Equal(start.Add(2*time.Hour)))
	assert.Equal(t, domain.StatusPending, loaded.Status())
	assert.Equal(t, 90.0, loaded.Priority())
	assert.Equal(t, domain.DifficultyAdvanced, loaded.Metadata().Difficulty)
	assert.Equal(t, []string{"RC8", "ASI6200"}, loaded.Metadata().Equipment)
	assert.Nil(t, loaded.ActualStart())
	assert.Nil(t, loaded.ActualEnd())
}

func TestSQLiteScheduledRepository_SaveUpdatesStatus(t *testing.T) {
	repo := NewSQLiteScheduledRepository(newTestDB(t))
	ctx := context.Background()

	start := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	scheduled, err := domain.NewScheduledSequence(uuid.New(), uuid.New(), start, start.Add(time.Hour), 10, domain.SequenceMetadata{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, scheduled))

	require.NoError(t, scheduled.TransitionTo(domain.StatusRunning))
	require.NoError(t, repo.Save(ctx, scheduled))

	loaded, err := repo.FindByID(ctx, scheduled.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, loaded.Status())
	require.NotNil(t, loaded.ActualStart())
	assert.Nil(t, loaded.ActualEnd())
}

func TestSQLiteScheduledRepository_ListOrderedByStart(t *testing.T) {
	repo := NewSQLiteScheduledRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		s, err := domain.NewScheduledSequence(uuid.New(), uuid.New(), base.Add(offset), base.Add(offset+time.Hour), 0, domain.SequenceMetadata{})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, s))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].ScheduledStart().After(all[i-1].ScheduledStart()))
	}
}

func TestSQLiteScheduledRepository_FindByIDNotFound(t *testing.T) {
	repo := NewSQLiteScheduledRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrScheduledNotFound)
}

func TestSQLiteScheduledRepository_Delete(t *testing.T) {
	repo := NewSQLiteScheduledRepository(newTestDB(t))
	ctx := context.Background()

	start := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	s, err := domain.NewScheduledSequence(uuid.New(), uuid.New(), start, start.Add(time.Hour), 0, domain.SequenceMetadata{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	require.NoError(t, repo.Delete(ctx, s.ID()))
	assert.ErrorIs(t, repo.Delete(ctx, s.ID()), domain.ErrScheduledNotFound)
}
