// Package atmosphere models derived atmospheric quantities over immutable
// condition snapshots: barometric pressure, Pasquill-Gifford stability,
// and the empirical comfort formulas (wind chill, dew point, heat index).
// All derived values are recomputed on demand from the current snapshot;
// nothing is cached, so replacing the snapshot atomically updates every
// derived view.
package atmosphere

import "math"

// Physical constants (SI units).
const (
	gasConstant     = 8.314462  // universal gas constant, J/(mol*K)
	molarMassAir    = 0.0289644 // molar mass of dry air, kg/mol
	standardGravity = 9.80665   // m/s^2
	kelvinOffset    = 273.15
	lapseRateDry    = 0.0098 // dry adiabatic lapse rate, K/m
	lapseRateMoist  = 0.006  // approximate moist lapse rate, K/m
)

// State is an immutable snapshot of surface conditions. Weather ingestion
// replaces the whole value when fresh data arrives; it is never mutated in
// place.
type State struct {
	TemperatureC      float64
	PressureHPa       float64
	HumidityPercent   float64 // 0-100
	WindSpeedMS       float64
	WindDirectionDeg  float64 // meteorological: direction the wind blows FROM
	CloudCoverPercent float64 // 0-100
	Daytime           bool
}

// DefaultState is a mild reference snapshot used before any data lands.
func DefaultState() State {
	return State{
		TemperatureC:      20,
		PressureHPa:       1013.25,
		HumidityPercent:   50,
		WindSpeedMS:       5,
		WindDirectionDeg:  0,
		CloudCoverPercent: 0,
		Daytime:           true,
	}
}

// TemperatureK returns the surface temperature in Kelvin.
func (s State) TemperatureK() float64 {
	return s.TemperatureC + kelvinOffset
}

// PressurePa returns the surface pressure in Pascals.
func (s State) PressurePa() float64 {
	return s.PressureHPa * 100
}

// WindVector returns the wind as (u, v) components in m/s, following the
// meteorological from-direction convention.
func (s State) WindVector() (u, v float64) {
	rad := s.WindDirectionDeg * math.Pi / 180
	u = -s.WindSpeedMS * math.Sin(rad)
	v = -s.WindSpeedMS * math.Cos(rad)
	return u, v
}
