package atmosphere

import "math"

// Model wraps one State snapshot. All methods are pure, total functions of
// the snapshot: once constructed they never fail and never block. Swap the
// snapshot by constructing a new Model around it.
type Model struct {
	state State
}

// NewModel builds a model over the given snapshot.
func NewModel(state State) Model {
	return Model{state: state}
}

// State returns the wrapped snapshot.
func (m Model) State() State {
	return m.state
}

// PressureAtAltitude returns the pressure in hPa at the given altitude in
// meters, using the barometric formula P(h) = P0 * exp(-Mgh / RT).
// PressureAtAltitude(0) equals the surface pressure exactly.
func (m Model) PressureAtAltitude(altitudeM float64) float64 {
	exponent := -(molarMassAir * standardGravity * altitudeM) / (gasConstant * m.state.TemperatureK())
	return m.state.PressurePa() * math.Exp(exponent) / 100
}

// TemperatureAtAltitude returns the temperature in Celsius at the given
// altitude, following the dry (or moist) adiabatic lapse rate.
func (m Model) TemperatureAtAltitude(altitudeM float64, moist bool) float64 {
	lapse := lapseRateDry
	if moist {
		lapse = lapseRateMoist
	}
	return m.state.TemperatureC - lapse*altitudeM
}

// AirDensity returns the air density in kg/m^3 at the given altitude via
// the ideal gas law, rho = PM / RT.
func (m Model) AirDensity(altitudeM float64) float64 {
	p := m.PressureAtAltitude(altitudeM) * 100
	t := m.TemperatureAtAltitude(altitudeM, false) + kelvinOffset
	return (p * molarMassAir) / (gasConstant * t)
}

// SaturationVaporPressure returns the saturation vapor pressure in Pascals
// for a temperature in Celsius, using the Magnus formula.
func SaturationVaporPressure(tempC float64) float64 {
	return 611.2 * math.Exp((magnusA*tempC)/(tempC+magnusB))
}

// VirtualTemperature returns the moisture-corrected temperature in Kelvin,
// Tv = T * (1 + 0.61q) with q the specific humidity.
func (m Model) VirtualTemperature() float64 {
	e := SaturationVaporPressure(m.state.TemperatureC) * m.state.HumidityPercent / 100
	q := 0.622 * e / (m.state.PressurePa() - 0.378*e)
	return m.state.TemperatureK() * (1 + 0.61*q)
}

// TurbulenceIntensity returns a turbulence factor in [0, 1] from the
// stability class and wind speed. It parameterizes the wind force's
// noise-driven flutter.
func (m Model) TurbulenceIntensity() float64 {
	var base float64
	switch m.ClassifyStability() {
	case VeryUnstable:
		base = 0.9
	case Unstable:
		base = 0.7
	case SlightlyUnstable:
		base = 0.5
	case Neutral:
		base = 0.3
	case SlightlyStable:
		base = 0.15
	default:
		base = 0.05
	}
	wind := math.Min(1, m.state.WindSpeedMS/15)
	return math.Min(1, base+wind*0.3)
}

// ThermalUpdraftStrength returns the convective updraft speed in world
// units for a relative solar intensity in [0, 1]. Stable air produces none.
func (m Model) ThermalUpdraftStrength(solarIntensity float64) float64 {
	var multiplier float64
	switch m.ClassifyStability() {
	case VeryUnstable:
		multiplier = 2.0
	case Unstable:
		multiplier = 1.5
	case SlightlyUnstable:
		multiplier = 1.0
	case Neutral:
		multiplier = 0.3
	default:
		return 0
	}
	return 0.5 * solarIntensity * multiplier
}

// VisibilityEstimate returns an estimated visibility in meters from the
// relative humidity (fog, mist, haze).
func (m Model) VisibilityEstimate() float64 {
	rh := m.state.HumidityPercent
	switch {
	case rh >= 100:
		return 100 // fog
	case rh >= 95:
		return 500 // dense mist
	case rh >= 90:
		return 2000 // mist
	case rh >= 80:
		return 5000 // haze
	default:
		return 10000 + (100-rh)*100
	}
}

// WindChill returns the wind chill for the wrapped snapshot. See the
// package-level WindChill for the valid range and fallback.
func (m Model) WindChill() (float64, bool) {
	return WindChill(m.state.TemperatureC, m.state.WindSpeedMS)
}

// DewPoint returns the dew point for the wrapped snapshot.
func (m Model) DewPoint() (float64, bool) {
	return DewPoint(m.state.TemperatureC, m.state.HumidityPercent)
}

// HeatIndex returns the heat index for the wrapped snapshot.
func (m Model) HeatIndex() (float64, bool) {
	return HeatIndex(m.state.TemperatureC, m.state.HumidityPercent)
}
