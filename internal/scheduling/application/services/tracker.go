package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/felixgeelhaar/astrosched/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// Tracker follows in-flight scheduled sequences as the rig executes them.
type Tracker struct {
	repo      domain.ScheduledSequenceRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewTracker creates a tracker over the scheduled sequence store.
func NewTracker(repo domain.ScheduledSequenceRepository, publisher eventbus.Publisher, logger *slog.Logger) *Tracker {
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// NextScheduled returns the earliest pending sequence whose scheduled start
// is still in the future, or nil when nothing is queued.
func (t *Tracker) NextScheduled(ctx context.Context) (*domain.ScheduledSequence, error) {
	all, err := t.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := t.now()
	var next *domain.ScheduledSequence
	for _, s := range all {
		if s.Status() != domain.StatusPending || !s.ScheduledStart().After(now) {
			continue
		}
		if next == nil || s.ScheduledStart().Before(next.ScheduledStart()) {
			next = s
		}
	}
	return next, nil
}

// UpdateStatus transitions a scheduled sequence through its lifecycle,
// stamping actual start and end times. An unknown id is a no-op.
func (t *Tracker) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SequenceStatus) error {
	scheduled, err := t.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrScheduledNotFound) {
			t.logger.Warn("status update for unknown scheduled sequence", "id", id)
			return nil
		}
		return err
	}

	oldStatus := scheduled.Status()
	if err := scheduled.TransitionTo(status); err != nil {
		return err
	}

	if err := t.repo.Save(ctx, scheduled); err != nil {
		return err
	}

	event := domain.NewSequenceStatusChanged(scheduled, oldStatus)
	if err := eventbus.PublishDomainEvent(ctx, t.publisher, event); err != nil {
		t.logger.Error("failed to publish status change", "id", id, "error", err)
	}

	t.logger.Info("scheduled sequence status updated",
		"id", id,
		"from", oldStatus,
		"to", status,
	)
	return nil
}
