package services

import (
	"context"
	"sort"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
)

// OptimizeStrategy reworks an existing schedule. It is an explicit
// extension point: the orchestrator is strategy-agnostic, so a local-search
// or constraint-solver reflow can be substituted without touching it.
type OptimizeStrategy interface {
	Optimize(ctx context.Context, scheduled []*domain.ScheduledSequence, options domain.SchedulingOptions) ([]*domain.ScheduledSequence, error)
}

// PrioritySortStrategy is the placeholder default: it only re-orders the
// slice by descending priority and does not move any time windows.
type PrioritySortStrategy struct{}

// Optimize returns a copy sorted by priority, highest first.
func (PrioritySortStrategy) Optimize(_ context.Context, scheduled []*domain.ScheduledSequence, _ domain.SchedulingOptions) ([]*domain.ScheduledSequence, error) {
	out := make([]*domain.ScheduledSequence, len(scheduled))
	copy(out, scheduled)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() > out[j].Priority()
	})
	return out, nil
}
