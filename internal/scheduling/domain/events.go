package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/astrosched/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "ObservationSchedule"

	RoutingKeySequenceScheduled     = "scheduling.sequence.scheduled"
	RoutingKeySequenceStatusChanged = "scheduling.sequence.status_changed"
	RoutingKeyRunCompleted          = "scheduling.run.completed"
)

// SequenceScheduled is emitted when a sequence is placed on the timeline.
type SequenceScheduled struct {
	sharedDomain.BaseEvent
	SequenceID     uuid.UUID `json:"sequence_id"`
	TargetID       uuid.UUID `json:"target_id"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	Priority       float64   `json:"priority"`
}

// NewSequenceScheduled creates a SequenceScheduled event.
func NewSequenceScheduled(scheduled *ScheduledSequence) SequenceScheduled {
	return SequenceScheduled{
		BaseEvent:      sharedDomain.NewBaseEvent(scheduled.ID(), AggregateType, RoutingKeySequenceScheduled),
		SequenceID:     scheduled.SequenceID(),
		TargetID:       scheduled.TargetID(),
		ScheduledStart: scheduled.ScheduledStart(),
		ScheduledEnd:   scheduled.ScheduledEnd(),
		Priority:       scheduled.Priority(),
	}
}

// SequenceStatusChanged is emitted when a tracked sequence transitions state.
type SequenceStatusChanged struct {
	sharedDomain.BaseEvent
	SequenceID uuid.UUID      `json:"sequence_id"`
	OldStatus  SequenceStatus `json:"old_status"`
	NewStatus  SequenceStatus `json:"new_status"`
}

// NewSequenceStatusChanged creates a SequenceStatusChanged event.
func NewSequenceStatusChanged(scheduled *ScheduledSequence, oldStatus SequenceStatus) SequenceStatusChanged {
	return SequenceStatusChanged{
		BaseEvent:  sharedDomain.NewBaseEvent(scheduled.ID(), AggregateType, RoutingKeySequenceStatusChanged),
		SequenceID: scheduled.SequenceID(),
		OldStatus:  oldStatus,
		NewStatus:  scheduled.Status(),
	}
}

// ScheduleRunCompleted is emitted after a full orchestrator run.
type ScheduleRunCompleted struct {
	sharedDomain.BaseEvent
	RunID          uuid.UUID `json:"run_id"`
	Success        bool      `json:"success"`
	ScheduledCount int       `json:"scheduled_count"`
	ConflictCount  int       `json:"conflict_count"`
}

// NewScheduleRunCompleted creates a ScheduleRunCompleted event.
func NewScheduleRunCompleted(runID uuid.UUID, result *SchedulingResult) ScheduleRunCompleted {
	return ScheduleRunCompleted{
		BaseEvent:      sharedDomain.NewBaseEvent(runID, AggregateType, RoutingKeyRunCompleted),
		RunID:          runID,
		Success:        result.Success,
		ScheduledCount: len(result.Scheduled),
		ConflictCount:  len(result.Conflicts),
	}
}
