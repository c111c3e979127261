package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDay_J2000Epoch(t *testing.T) {
	// J2000.0 is 2000-01-01 12:00 TT; the UTC offset is under a minute and
	// irrelevant at this tolerance.
	at := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2451545.0, julianDay(at), 0.001)
}

func TestAltitude_PolarisFromNorthernSite(t *testing.T) {
	// Polaris sits within a degree of the pole; its altitude tracks the
	// observer's latitude at any time of day.
	polaris := domain.Target{RA: 2.53, Dec: 89.26}
	munich := domain.Location{Latitude: 48.14, Longitude: 11.58}

	for hour := 0; hour < 24; hour += 6 {
		at := time.Date(2026, 3, 14, hour, 0, 0, 0, time.UTC)
		alt := altitudeDegrees(polaris, munich, at)
		assert.InDelta(t, munich.Latitude, alt, 1.5, "hour %d", hour)
	}
}

func TestAltitude_SouthernTargetStaysBelowHorizon(t *testing.T) {
	// The south celestial pole region never rises for a mid northern site.
	octans := domain.Target{RA: 14.0, Dec: -85.0}
	munich := domain.Location{Latitude: 48.14, Longitude: 11.58}

	for hour := 0; hour < 24; hour++ {
		at := time.Date(2026, 3, 14, hour, 0, 0, 0, time.UTC)
		assert.Negative(t, altitudeDegrees(octans, munich, at), "hour %d", hour)
	}
}

func TestObserve_AirmassOnlyAboveHorizon(t *testing.T) {
	provider := NewAltAzProvider()
	munich := domain.Location{Latitude: 48.14, Longitude: 11.58}

	up, err := provider.Observe(context.Background(), domain.Target{RA: 2.53, Dec: 89.26}, munich, time.Now())
	require.NoError(t, err)
	require.NotNil(t, up.Altitude)
	require.NotNil(t, up.Airmass)
	assert.Positive(t, *up.Airmass)

	down, err := provider.Observe(context.Background(), domain.Target{RA: 14.0, Dec: -85.0}, munich, time.Now())
	require.NoError(t, err)
	require.NotNil(t, down.Altitude)
	assert.Nil(t, down.Airmass)
}

func TestPickeringAirmass(t *testing.T) {
	// Zenith is one atmosphere by definition.
	assert.InDelta(t, 1.0, pickeringAirmass(90), 0.001)

	// Monotonically increasing toward the horizon.
	prev := pickeringAirmass(90)
	for alt := 85.0; alt >= 5; alt -= 5 {
		am := pickeringAirmass(alt)
		assert.Greater(t, am, prev, "altitude %.0f", alt)
		prev = am
	}

	// Canonical textbook value around 30 degrees.
	assert.InDelta(t, 2.0, pickeringAirmass(30), 0.01)
}

func TestObserve_IsRepeatable(t *testing.T) {
	provider := NewAltAzProvider()
	target := domain.Target{RA: 5.6, Dec: -5.4}
	location := domain.Location{Latitude: 48.14, Longitude: 11.58}
	at := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	first, err := provider.Observe(context.Background(), target, location, at)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		obs, err := provider.Observe(context.Background(), target, location, at)
		require.NoError(t, err)
		assert.Equal(t, first, obs)
	}
}
