// Package domain contains the observation scheduling domain model.
package domain

import "github.com/google/uuid"

// Target is a celestial object a sequence images. The scheduler only reads
// its identity and coordinates; visibility for a target is computed by an
// external ephemeris provider.
type Target struct {
	ID   uuid.UUID
	Name string
	RA   float64 // right ascension in hours
	Dec  float64 // declination in degrees
}

// Location is an observer's position on Earth.
type Location struct {
	Latitude  float64
	Longitude float64
}

// WeatherSnapshot holds the most recent weather telemetry for the
// observation site. All readings are optional; conditions evaluated against
// an absent reading pass permissively.
type WeatherSnapshot struct {
	CloudCover *float64
	WindSpeed  *float64
	Humidity   *float64
}

// Weather parameter names recognized by weather conditions.
const (
	WeatherParamCloudCover = "cloud_cover"
	WeatherParamWindSpeed  = "wind_speed"
	WeatherParamHumidity   = "humidity"
)

// Reading returns the named parameter and whether it is present.
func (w WeatherSnapshot) Reading(parameter string) (float64, bool) {
	var v *float64
	switch parameter {
	case WeatherParamCloudCover:
		v = w.CloudCover
	case WeatherParamWindSpeed:
		v = w.WindSpeed
	case WeatherParamHumidity:
		v = w.Humidity
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// EquipmentStatusReady is the status an equipment condition requires.
const EquipmentStatusReady = "ready"

// EquipmentState describes the connectivity state of an imaging rig.
type EquipmentState struct {
	Status string
	Errors []string
}

// IsReady reports whether the equipment is connected and error free.
func (e EquipmentState) IsReady() bool {
	return e.Status == EquipmentStatusReady && len(e.Errors) == 0
}
