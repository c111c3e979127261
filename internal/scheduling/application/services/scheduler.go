package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// Scheduler is the orchestrator: it ranks sequences, walks a single global
// time cursor through the scheduling window, and assembles the result.
// The single-cursor design assumes one serialized imaging rig; sequences
// never overlap by construction of the placement loop.
type Scheduler struct {
	ranker *PriorityRanker
	slots  *SlotFinder
	logger *slog.Logger
}

// NewScheduler creates the scheduling orchestrator.
func NewScheduler(ranker *PriorityRanker, slots *SlotFinder, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		ranker: ranker,
		slots:  slots,
		logger: logger,
	}
}

// rankedSequence pairs a sequence with its resolved target and score.
type rankedSequence struct {
	sequence domain.Sequence
	target   domain.Target
	score    float64
}

// ScheduleSequences places each sequence into the earliest feasible window.
// Unplaceable sequences degrade to conflicts and unknown targets to
// warnings; the run continues past both. The only returned error is a hard
// ephemeris provider failure, which aborts the run since the cursor state
// cannot be salvaged mid-flight.
func (s *Scheduler) ScheduleSequences(
	ctx context.Context,
	sequences []domain.Sequence,
	targets []domain.Target,
	options domain.SchedulingOptions,
) (*domain.SchedulingResult, error) {
	start := time.Now()

	targetsByID := make(map[uuid.UUID]domain.Target, len(targets))
	for _, t := range targets {
		targetsByID[t.ID] = t
	}

	result := &domain.SchedulingResult{
		Scheduled: make([]*domain.ScheduledSequence, 0, len(sequences)),
		Conflicts: make([]domain.SchedulingConflict, 0),
		Warnings:  make([]string, 0),
	}

	// Rank what has a target; everything else becomes a warning.
	ranked := make([]rankedSequence, 0, len(sequences))
	for _, sequence := range sequences {
		target, ok := targetsByID[sequence.TargetID]
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Target not found for sequence %s", sequence.Name))
			continue
		}

		score, err := s.ranker.Rank(ctx, sequence, target, options)
		if err != nil {
			return nil, fmt.Errorf("ranking sequence %s: %w", sequence.Name, err)
		}
		ranked = append(ranked, rankedSequence{sequence: sequence, target: target, score: score})
	}

	// Descending by score; ties keep input order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	// Single global cursor: each placement pushes the cursor to its end, so
	// placements are monotonic and disjoint.
	currentTime := options.StartDate
	for _, rs := range ranked {
		window, err := s.slots.FindSlot(ctx, rs.sequence, rs.target, currentTime, options.EndDate, options)
		if err != nil {
			return nil, fmt.Errorf("slot search for sequence %s: %w", rs.sequence.Name, err)
		}

		if window == nil {
			result.Conflicts = append(result.Conflicts, domain.SchedulingConflict{
				Type:        domain.ConflictTypeTargetVisibility,
				SequenceIDs: []uuid.UUID{rs.sequence.ID},
				Description: fmt.Sprintf("no visible time slot found for sequence %s", rs.sequence.Name),
				Severity:    domain.SeverityMedium,
				Suggestions: []string{
					"extend the scheduling window",
					"lower the minimum altitude constraint",
					"choose a target that rises higher at this location",
				},
			})
			continue
		}

		scheduled, err := domain.NewScheduledSequence(
			rs.sequence.ID,
			rs.target.ID,
			window.Start,
			window.End,
			rs.score,
			rs.sequence.Metadata,
		)
		if err != nil {
			// Slot windows are built from positive durations; reaching this
			// means a malformed input sequence, which degrades to a warning.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("could not place sequence %s: %v", rs.sequence.Name, err))
			continue
		}

		result.Scheduled = append(result.Scheduled, scheduled)
		currentTime = window.End
	}

	// Independent safety check on top of the monotonic placement loop.
	result.Conflicts = append(result.Conflicts, domain.DetectOverlaps(result.Scheduled)...)

	result.Statistics = computeStatistics(result.Scheduled, options)
	result.Success = !hasHighSeverity(result.Conflicts)

	s.logger.Info("scheduling run completed",
		"sequences", len(sequences),
		"scheduled", len(result.Scheduled),
		"conflicts", len(result.Conflicts),
		"warnings", len(result.Warnings),
		"success", result.Success,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

func computeStatistics(scheduled []*domain.ScheduledSequence, options domain.SchedulingOptions) domain.Statistics {
	stats := domain.Statistics{SequenceCount: len(scheduled)}

	distinctTargets := make(map[uuid.UUID]struct{}, len(scheduled))
	for _, s := range scheduled {
		stats.TotalTime += s.Duration()
		distinctTargets[s.TargetID()] = struct{}{}
	}
	stats.TargetCount = len(distinctTargets)

	if window := options.EndDate.Sub(options.StartDate); window > 0 {
		stats.UtilizationRate = float64(stats.TotalTime) / float64(window)
	}
	return stats
}

func hasHighSeverity(conflicts []domain.SchedulingConflict) bool {
	for _, c := range conflicts {
		if c.Severity == domain.SeverityHigh {
			return true
		}
	}
	return false
}
