package atmosphere

import "math"

// Magnus formula constants, shared by saturation vapor pressure and the dew
// point inversion.
const (
	magnusA = 17.67
	magnusB = 243.5
)

// Each empirical formula is valid only inside a documented input range.
// Outside it, the functions return a best-effort fallback flagged by
// extrapolated = true. They never return an error.

// WindChill returns the apparent temperature in Celsius using the
// Environment Canada formula. Valid for temperatures below 10 C and wind
// above 4.8 km/h; outside that range the air temperature is returned
// unmodified with extrapolated = true.
func WindChill(tempC, windSpeedMS float64) (value float64, extrapolated bool) {
	windKMH := windSpeedMS * 3.6
	if tempC >= 10 || windKMH < 4.8 {
		return tempC, true
	}
	wexp := math.Pow(windKMH, 0.16)
	return 13.12 + 0.6215*tempC - 11.37*wexp + 0.3965*tempC*wexp, false
}

// DewPoint returns the dew point in Celsius by inverting the Magnus
// saturation formula. Valid for temperatures in [-40, 50] C and humidity in
// [1, 100] %; outside that range humidity is floored at 1% (or the air
// temperature returned for out-of-range temperatures) with
// extrapolated = true.
func DewPoint(tempC, humidityPercent float64) (value float64, extrapolated bool) {
	if tempC < -40 || tempC > 50 {
		return tempC, true
	}
	rh := humidityPercent
	if rh < 1 {
		rh = 1
		extrapolated = true
	}
	if rh > 100 {
		rh = 100
		extrapolated = true
	}
	gamma := math.Log(rh/100) + (magnusA*tempC)/(magnusB+tempC)
	return magnusB * gamma / (magnusA - gamma), extrapolated
}

// HeatIndex returns the apparent temperature in Celsius using the NOAA
// regression. Valid for temperatures of at least 27 C and humidity of at
// least 40%; outside that range the air temperature is returned unmodified
// with extrapolated = true.
func HeatIndex(tempC, humidityPercent float64) (value float64, extrapolated bool) {
	if tempC < 27 || humidityPercent < 40 {
		return tempC, true
	}

	tf := tempC*9/5 + 32
	rh := humidityPercent

	hi := -42.379 +
		2.04901523*tf +
		10.14333127*rh -
		0.22475541*tf*rh -
		6.83783e-3*tf*tf -
		5.481717e-2*rh*rh +
		1.22874e-3*tf*tf*rh +
		8.5282e-4*tf*rh*rh -
		1.99e-6*tf*tf*rh*rh

	return (hi - 32) * 5 / 9, false
}
