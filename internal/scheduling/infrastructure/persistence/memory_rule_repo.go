// Package persistence provides rule and scheduled sequence repositories.
package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// MemoryRuleRepository is the in-process rule registry. The original design
// held rules in unguarded process-wide state; here the registry is an
// explicitly constructed store with single-writer access behind a mutex.
type MemoryRuleRepository struct {
	mu    sync.RWMutex
	rules map[uuid.UUID]*domain.ScheduleRule
}

// NewMemoryRuleRepository creates an empty registry.
func NewMemoryRuleRepository() *MemoryRuleRepository {
	return &MemoryRuleRepository{
		rules: make(map[uuid.UUID]*domain.ScheduleRule),
	}
}

// Add registers a new rule.
func (r *MemoryRuleRepository) Add(_ context.Context, rule *domain.ScheduleRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
	return nil
}

// Update applies a partial update under the write lock.
func (r *MemoryRuleRepository) Update(_ context.Context, id uuid.UUID, update domain.RuleUpdate) (*domain.ScheduleRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, domain.ErrRuleNotFound
	}
	if err := rule.Apply(update); err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete removes a rule by id.
func (r *MemoryRuleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[id]; !ok {
		return domain.ErrRuleNotFound
	}
	delete(r.rules, id)
	return nil
}

// List returns all rules ordered by creation time.
func (r *MemoryRuleRepository) List(_ context.Context) ([]*domain.ScheduleRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ScheduleRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}
