package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/astrosched/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange        = errors.New("scheduled end must be after scheduled start")
	ErrInvalidStatusTransition = errors.New("invalid scheduled sequence status transition")
	ErrScheduledNotFound       = errors.New("scheduled sequence not found")
)

// SequenceStatus is the execution state of a scheduled sequence.
type SequenceStatus string

const (
	StatusPending   SequenceStatus = "pending"
	StatusRunning   SequenceStatus = "running"
	StatusCompleted SequenceStatus = "completed"
	StatusFailed    SequenceStatus = "failed"
	StatusCancelled SequenceStatus = "cancelled"
)

// IsTerminal reports whether the status ends a sequence's lifecycle.
func (s SequenceStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// ScheduledSequence is a sequence placed on the execution timeline. The
// scheduler creates it in the pending state; status transitions are driven
// externally through the tracker as the sequence actually runs.
type ScheduledSequence struct {
	sharedDomain.BaseEntity
	sequenceID     uuid.UUID
	targetID       uuid.UUID
	scheduledStart time.Time
	scheduledEnd   time.Time
	actualStart    *time.Time
	actualEnd      *time.Time
	status         SequenceStatus
	priority       float64
	metadata       SequenceMetadata
}

// NewScheduledSequence creates a pending placement for a sequence.
func NewScheduledSequence(
	sequenceID, targetID uuid.UUID,
	scheduledStart, scheduledEnd time.Time,
	priority float64,
	metadata SequenceMetadata,
) (*ScheduledSequence, error) {
	if !scheduledEnd.After(scheduledStart) {
		return nil, ErrInvalidTimeRange
	}
	return &ScheduledSequence{
		BaseEntity:     sharedDomain.NewBaseEntity(),
		sequenceID:     sequenceID,
		targetID:       targetID,
		scheduledStart: scheduledStart,
		scheduledEnd:   scheduledEnd,
		status:         StatusPending,
		priority:       priority,
		metadata:       metadata,
	}, nil
}

func (s *ScheduledSequence) SequenceID() uuid.UUID      { return s.sequenceID }
func (s *ScheduledSequence) TargetID() uuid.UUID        { return s.targetID }
func (s *ScheduledSequence) ScheduledStart() time.Time  { return s.scheduledStart }
func (s *ScheduledSequence) ScheduledEnd() time.Time    { return s.scheduledEnd }
func (s *ScheduledSequence) ActualStart() *time.Time    { return s.actualStart }
func (s *ScheduledSequence) ActualEnd() *time.Time      { return s.actualEnd }
func (s *ScheduledSequence) Status() SequenceStatus     { return s.status }
func (s *ScheduledSequence) Priority() float64          { return s.priority }
func (s *ScheduledSequence) Metadata() SequenceMetadata { return s.metadata }

// Window returns the scheduled time range.
func (s *ScheduledSequence) Window() TimeRange {
	return TimeRange{Start: s.scheduledStart, End: s.scheduledEnd}
}

// Duration returns the scheduled duration.
func (s *ScheduledSequence) Duration() time.Duration {
	return s.scheduledEnd.Sub(s.scheduledStart)
}

// OverlapsWith checks if two placements occupy overlapping windows.
func (s *ScheduledSequence) OverlapsWith(other *ScheduledSequence) bool {
	return s.scheduledStart.Before(other.scheduledEnd) && other.scheduledStart.Before(s.scheduledEnd)
}

// TransitionTo moves the sequence through pending -> running -> terminal.
// Entering running stamps ActualStart; entering a terminal state stamps
// ActualEnd.
func (s *ScheduledSequence) TransitionTo(status SequenceStatus) error {
	switch status {
	case StatusRunning:
		if s.status != StatusPending {
			return ErrInvalidStatusTransition
		}
		now := time.Now().UTC()
		s.actualStart = &now
	case StatusCompleted, StatusFailed, StatusCancelled:
		if s.status.IsTerminal() {
			return ErrInvalidStatusTransition
		}
		now := time.Now().UTC()
		s.actualEnd = &now
	case StatusPending:
		return ErrInvalidStatusTransition
	default:
		return ErrInvalidStatusTransition
	}
	s.status = status
	s.Touch()
	return nil
}

// RehydrateScheduledSequence recreates a placement from persisted state.
func RehydrateScheduledSequence(
	id uuid.UUID,
	sequenceID, targetID uuid.UUID,
	scheduledStart, scheduledEnd time.Time,
	actualStart, actualEnd *time.Time,
	status SequenceStatus,
	priority float64,
	metadata SequenceMetadata,
	createdAt, updatedAt time.Time,
) *ScheduledSequence {
	return &ScheduledSequence{
		BaseEntity:     sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		sequenceID:     sequenceID,
		targetID:       targetID,
		scheduledStart: scheduledStart,
		scheduledEnd:   scheduledEnd,
		actualStart:    actualStart,
		actualEnd:      actualEnd,
		status:         status,
		priority:       priority,
		metadata:       metadata,
	}
}
