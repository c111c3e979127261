package ephemeris

import (
	"math"
	"time"
)

// PhaseCalculator computes the lunar phase as a normalized fraction in
// [0, 1), where 0 is new moon and 0.5 is full. It is an interface so a
// precise ephemeris calculation can replace the built-in approximation
// without touching the condition evaluator.
type PhaseCalculator interface {
	Phase(at time.Time) float64
}

// synodicMonth is the mean length of a lunation in days.
const synodicMonth = 29.53058867

// referenceNewMoonJD is the Julian day of the new moon of 2000-01-06.
const referenceNewMoonJD = 2451549.5

// JulianPhaseCalculator derives the phase from the Julian day count since a
// reference new moon. This is an approximation: it tracks the mean lunation
// and ignores orbital eccentricity, so it can be off by up to a day near the
// quarters. Good enough for moon-avoidance scheduling conditions, not for
// eclipse prediction.
type JulianPhaseCalculator struct{}

// Phase returns the normalized phase fraction at the given instant.
func (JulianPhaseCalculator) Phase(at time.Time) float64 {
	jd := julianDay(at)
	lunations := (jd - referenceNewMoonJD) / synodicMonth
	frac := lunations - math.Floor(lunations)
	if frac < 0 {
		frac += 1
	}
	return frac
}
