package services

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// RuleService is the rule management surface over the rule registry.
type RuleService struct {
	repo   domain.RuleRepository
	logger *slog.Logger
}

// NewRuleService creates a rule service over the given registry.
func NewRuleService(repo domain.RuleRepository, logger *slog.Logger) *RuleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleService{repo: repo, logger: logger}
}

// AddRule creates and registers a new rule.
func (s *RuleService) AddRule(ctx context.Context, name string, conditions []domain.ScheduleCondition, actions []domain.ScheduleAction, priority int) (*domain.ScheduleRule, error) {
	rule, err := domain.NewScheduleRule(name, conditions, actions, priority)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, rule); err != nil {
		return nil, err
	}
	s.logger.Info("schedule rule added", "id", rule.ID(), "name", name)
	return rule, nil
}

// UpdateRule applies a partial update to a rule.
func (s *RuleService) UpdateRule(ctx context.Context, id uuid.UUID, update domain.RuleUpdate) (*domain.ScheduleRule, error) {
	rule, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info("schedule rule updated", "id", id)
	return rule, nil
}

// DeleteRule removes a rule by id.
func (s *RuleService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("schedule rule deleted", "id", id)
	return nil
}

// GetRules lists the registered rules.
func (s *RuleService) GetRules(ctx context.Context) ([]*domain.ScheduleRule, error) {
	return s.repo.List(ctx)
}
