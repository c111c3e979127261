package services

import (
	"context"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/ephemeris"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
)

// Scoring weights for the priority heuristic.
const (
	bonusBeginner     = 10.0
	bonusIntermediate = 20.0
	bonusAdvanced     = 30.0
	bonusVisible      = 50.0
	bonusLowAirmass   = 30.0
	penaltyLong       = 20.0

	longSequenceThreshold = 4 * time.Hour
)

// PriorityRanker scores a sequence against its target's visibility and
// metadata. Higher scores schedule first.
type PriorityRanker struct {
	provider ephemeris.Provider
}

// NewPriorityRanker creates a ranker backed by the given provider.
func NewPriorityRanker(provider ephemeris.Provider) *PriorityRanker {
	return &PriorityRanker{provider: provider}
}

// Rank computes the additive priority score. Visibility is sampled once at
// the start of the scheduling window. The only returned error is a hard
// provider failure.
func (r *PriorityRanker) Rank(ctx context.Context, sequence domain.Sequence, target domain.Target, options domain.SchedulingOptions) (float64, error) {
	score := 0.0

	switch sequence.Metadata.Difficulty {
	case domain.DifficultyBeginner:
		score += bonusBeginner
	case domain.DifficultyIntermediate:
		score += bonusIntermediate
	case domain.DifficultyAdvanced:
		score += bonusAdvanced
	}

	obs, err := r.provider.Observe(ctx, target, options.Location, options.StartDate)
	if err != nil {
		return 0, err
	}
	if obs.AltitudeOrZero() > options.Constraints.MinAltitude {
		score += bonusVisible
	}
	if obs.Airmass != nil && *obs.Airmass < options.Constraints.MaxAirmass {
		score += bonusLowAirmass
	}

	if sequence.EstimatedDuration > longSequenceThreshold {
		score -= penaltyLong
	}

	return score, nil
}
