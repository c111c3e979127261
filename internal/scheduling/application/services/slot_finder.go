package services

import (
	"context"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/ephemeris"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
)

// DefaultSlotIncrement is the step between candidate windows.
const DefaultSlotIncrement = 15 * time.Minute

// SlotFinderConfig tunes the slot search.
type SlotFinderConfig struct {
	// Increment is the step between candidate window starts.
	Increment time.Duration

	// SampleEdges additionally probes visibility at the window start and
	// end. Off by default: the midpoint-only check is a known approximation
	// (a target may dip below the altitude limit near the window edges),
	// kept because a single probe per candidate keeps long searches cheap.
	SampleEdges bool
}

// DefaultSlotFinderConfig returns the default search tuning.
func DefaultSlotFinderConfig() SlotFinderConfig {
	return SlotFinderConfig{Increment: DefaultSlotIncrement}
}

// SlotFinder scans forward in fixed increments for the earliest window in
// which a target meets the visibility constraints.
type SlotFinder struct {
	provider ephemeris.Provider
	config   SlotFinderConfig
}

// NewSlotFinder creates a slot finder over the given provider.
func NewSlotFinder(provider ephemeris.Provider, config SlotFinderConfig) *SlotFinder {
	if config.Increment <= 0 {
		config.Increment = DefaultSlotIncrement
	}
	return &SlotFinder{provider: provider, config: config}
}

// FindSlot returns the earliest feasible window of the sequence's duration
// within [searchStart, searchEnd], or nil when none exists. Feasibility is
// judged at the window midpoint (plus the edges when SampleEdges is set):
// the target's altitude must reach MinAltitude and its airmass must not
// exceed MaxAirmass. A provider error aborts the search.
func (f *SlotFinder) FindSlot(
	ctx context.Context,
	sequence domain.Sequence,
	target domain.Target,
	searchStart, searchEnd time.Time,
	options domain.SchedulingOptions,
) (*domain.TimeRange, error) {
	duration := sequence.EstimatedDuration

	for t := searchStart; !t.Add(duration).After(searchEnd); t = t.Add(f.config.Increment) {
		window := domain.TimeRange{Start: t, End: t.Add(duration)}

		feasible, err := f.windowFeasible(ctx, target, window, options)
		if err != nil {
			return nil, err
		}
		if feasible {
			return &window, nil
		}
	}

	return nil, nil
}

func (f *SlotFinder) windowFeasible(ctx context.Context, target domain.Target, window domain.TimeRange, options domain.SchedulingOptions) (bool, error) {
	probes := []time.Time{window.Start.Add(window.Duration() / 2)}
	if f.config.SampleEdges {
		probes = append(probes, window.Start, window.End)
	}

	for _, at := range probes {
		ok, err := f.probeFeasible(ctx, target, at, options)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (f *SlotFinder) probeFeasible(ctx context.Context, target domain.Target, at time.Time, options domain.SchedulingOptions) (bool, error) {
	obs, err := f.provider.Observe(ctx, target, options.Location, at)
	if err != nil {
		return false, err
	}

	if obs.AltitudeOrZero() < options.Constraints.MinAltitude {
		return false, nil
	}
	// Unknown airmass is treated permissively.
	if obs.Airmass != nil && *obs.Airmass > options.Constraints.MaxAirmass {
		return false, nil
	}
	return true, nil
}
