// Package commands contains the application command handlers.
package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/application/services"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/felixgeelhaar/astrosched/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// RunScheduleCommand contains the inputs for one scheduling run.
type RunScheduleCommand struct {
	Sequences []domain.Sequence
	Targets   []domain.Target
	Options   domain.SchedulingOptions
}

// RunScheduleHandler executes a scheduling run, persists the placements,
// and publishes the resulting domain events.
type RunScheduleHandler struct {
	scheduler *services.Scheduler
	repo      domain.ScheduledSequenceRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewRunScheduleHandler creates a new RunScheduleHandler.
func NewRunScheduleHandler(
	scheduler *services.Scheduler,
	repo domain.ScheduledSequenceRepository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *RunScheduleHandler {
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RunScheduleHandler{
		scheduler: scheduler,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle runs the orchestrator. The result carries conflicts and warnings
// as data; the returned error is reserved for ephemeris provider outages
// and persistence failures.
func (h *RunScheduleHandler) Handle(ctx context.Context, cmd RunScheduleCommand) (*domain.SchedulingResult, error) {
	result, err := h.scheduler.ScheduleSequences(ctx, cmd.Sequences, cmd.Targets, cmd.Options)
	if err != nil {
		return nil, err
	}

	for _, scheduled := range result.Scheduled {
		if err := h.repo.Save(ctx, scheduled); err != nil {
			return nil, err
		}
		event := domain.NewSequenceScheduled(scheduled)
		if err := eventbus.PublishDomainEvent(ctx, h.publisher, event); err != nil {
			h.logger.Error("failed to publish placement event",
				"sequence_id", scheduled.SequenceID(),
				"error", err,
			)
		}
	}

	runEvent := domain.NewScheduleRunCompleted(uuid.New(), result)
	if err := eventbus.PublishDomainEvent(ctx, h.publisher, runEvent); err != nil {
		h.logger.Error("failed to publish run event", "error", err)
	}

	return result, nil
}
