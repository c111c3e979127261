package ephemeris

import (
	"context"
	"math"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
)

// AltAzProvider computes target visibility from first principles using an
// approximate sidereal-time transformation. It exists so the application can
// run without an external ephemeris service; accuracy is on the order of a
// tenth of a degree, which is ample for minimum-altitude feasibility checks
// but not for pointing.
type AltAzProvider struct{}

// NewAltAzProvider creates the built-in approximate provider.
func NewAltAzProvider() *AltAzProvider {
	return &AltAzProvider{}
}

// Observe computes altitude and airmass for the target at the given instant.
func (p *AltAzProvider) Observe(_ context.Context, target domain.Target, location domain.Location, at time.Time) (Observation, error) {
	altitude := altitudeDegrees(target, location, at)
	obs := Observation{Altitude: &altitude}
	if altitude > 0 {
		airmass := pickeringAirmass(altitude)
		obs.Airmass = &airmass
	}
	return obs, nil
}

// altitudeDegrees converts equatorial coordinates to horizontal altitude via
// the hour angle at the observer's local sidereal time.
func altitudeDegrees(target domain.Target, location domain.Location, at time.Time) float64 {
	lstHours := localSiderealTime(at, location.Longitude)

	hourAngle := (lstHours - target.RA) * 15 // degrees
	haRad := radians(hourAngle)
	decRad := radians(target.Dec)
	latRad := radians(location.Latitude)

	sinAlt := math.Sin(decRad)*math.Sin(latRad) + math.Cos(decRad)*math.Cos(latRad)*math.Cos(haRad)
	return degrees(math.Asin(clamp(sinAlt, -1, 1)))
}

// localSiderealTime returns the local sidereal time in hours for an east
// positive longitude, using the linear GMST approximation referenced to
// J2000.0.
func localSiderealTime(at time.Time, longitude float64) float64 {
	const j2000 = 2451545.0
	jd := julianDay(at)
	d := jd - j2000

	gmstDeg := math.Mod(280.46061837+360.98564736629*d, 360)
	if gmstDeg < 0 {
		gmstDeg += 360
	}

	lstDeg := math.Mod(gmstDeg+longitude, 360)
	if lstDeg < 0 {
		lstDeg += 360
	}
	return lstDeg / 15
}

// julianDay converts a time to a Julian day number.
func julianDay(at time.Time) float64 {
	return float64(at.UnixMilli())/86400000.0 + 2440587.5
}

// pickeringAirmass is Pickering's 2002 interpolative airmass formula,
// accurate to well under a percent down to the horizon.
func pickeringAirmass(altitudeDeg float64) float64 {
	h := altitudeDeg
	return 1 / math.Sin(radians(h+244/(165+47*math.Pow(h, 1.1))))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
