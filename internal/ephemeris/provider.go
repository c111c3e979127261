// Package ephemeris defines the visibility oracle the scheduler consumes and
// the adapters wrapped around it. The scheduler itself never computes
// celestial mechanics; everything it knows about a target's position comes
// through the Provider interface.
package ephemeris

import (
	"context"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
)

// Observation is the visibility of a target at one place and instant.
// Either field may be absent; callers treat absent values permissively.
type Observation struct {
	// Altitude is the angular elevation above the horizon in degrees.
	Altitude *float64 `json:"altitude,omitempty"`
	// Airmass is the optical path length through the atmosphere relative
	// to zenith. Lower is better for imaging.
	Airmass *float64 `json:"airmass,omitempty"`
}

// AltitudeOrZero returns the altitude, defaulting to 0 when absent.
func (o Observation) AltitudeOrZero() float64 {
	if o.Altitude == nil {
		return 0
	}
	return *o.Altitude
}

// Provider computes target visibility. Implementations must be side-effect
// free and repeatable for the same target and instant.
type Provider interface {
	Observe(ctx context.Context, target domain.Target, location domain.Location, at time.Time) (Observation, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, target domain.Target, location domain.Location, at time.Time) (Observation, error)

// Observe calls f.
func (f ProviderFunc) Observe(ctx context.Context, target domain.Target, location domain.Location, at time.Time) (Observation, error) {
	return f(ctx, target, location, at)
}
