package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConflictType classifies a scheduling problem.
type ConflictType string

const (
	// ConflictTypeTimeOverlap indicates two placements occupy overlapping windows.
	ConflictTypeTimeOverlap ConflictType = "time_overlap"
	// ConflictTypeTargetVisibility indicates no feasible window exists for a target.
	ConflictTypeTargetVisibility ConflictType = "target_visibility"
)

// ConflictSeverity grades a conflict. Only high severity forces a run to fail.
type ConflictSeverity string

const (
	SeverityLow    ConflictSeverity = "low"
	SeverityMedium ConflictSeverity = "medium"
	SeverityHigh   ConflictSeverity = "high"
)

// SchedulingConflict describes a problem found while building or checking a
// schedule. Conflicts are data, not errors: the orchestrator records them in
// the result and keeps going.
type SchedulingConflict struct {
	Type        ConflictType `json:"type"`
	SequenceIDs []uuid.UUID  `json:"sequences"`
	Description string       `json:"description"`
	Severity    ConflictSeverity `json:"severity"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

// TimeRange represents a half-open time period [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps checks if two time ranges overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Duration returns the duration of the time range.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// DetectOverlaps scans every unordered pair of placements and reports a high
// severity conflict for each overlapping pair.
func DetectOverlaps(scheduled []*ScheduledSequence) []SchedulingConflict {
	conflicts := make([]SchedulingConflict, 0)
	for i := 0; i < len(scheduled); i++ {
		for j := i + 1; j < len(scheduled); j++ {
			a, b := scheduled[i], scheduled[j]
			if !a.OverlapsWith(b) {
				continue
			}
			conflicts = append(conflicts, SchedulingConflict{
				Type:        ConflictTypeTimeOverlap,
				SequenceIDs: []uuid.UUID{a.SequenceID(), b.SequenceID()},
				Description: fmt.Sprintf("sequences %s and %s overlap between %s and %s",
					a.SequenceID(), b.SequenceID(),
					laterOf(a.ScheduledStart(), b.ScheduledStart()).Format(time.RFC3339),
					earlierOf(a.ScheduledEnd(), b.ScheduledEnd()).Format(time.RFC3339)),
				Severity: SeverityHigh,
				Suggestions: []string{
					"reschedule one of the sequences to a later window",
					"reduce the estimated duration of one sequence",
				},
			})
		}
	}
	return conflicts
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
