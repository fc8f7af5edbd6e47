package atmosphere

import (
	"math"
	"testing"
)

func TestWindChill_ColderThanAirInRange(t *testing.T) {
	got, extrapolated := WindChill(-10, 8) // 28.8 km/h
	if extrapolated {
		t.Fatal("in-range inputs flagged as extrapolated")
	}
	if got >= -10 {
		t.Errorf("wind chill %v not below air temperature -10", got)
	}
	// Environment Canada chart: -10 C at ~30 km/h is near -20 C.
	if got < -25 || got > -15 {
		t.Errorf("wind chill %v outside plausible band [-25, -15]", got)
	}
}

func TestWindChill_StrongerWindFeelsColder(t *testing.T) {
	mild, _ := WindChill(-5, 3)
	strong, _ := WindChill(-5, 15)
	if strong >= mild {
		t.Errorf("wind chill at 15 m/s (%v) not below 3 m/s (%v)", strong, mild)
	}
}

func TestWindChill_OutOfRangeFallsBack(t *testing.T) {
	cases := []struct {
		name  string
		tempC float64
		wind  float64
	}{
		{"too warm", 15, 10},
		{"calm air", -10, 0.5}, // 1.8 km/h, under the 4.8 km/h floor
	}
	for _, tc := range cases {
		got, extrapolated := WindChill(tc.tempC, tc.wind)
		if !extrapolated {
			t.Errorf("%s: extrapolated = false, want true", tc.name)
		}
		if got != tc.tempC {
			t.Errorf("%s: fallback = %v, want air temperature %v", tc.name, got, tc.tempC)
		}
	}
}

func TestDewPoint_SaturatedAirEqualsTemperature(t *testing.T) {
	got, extrapolated := DewPoint(20, 100)
	if extrapolated {
		t.Fatal("in-range inputs flagged as extrapolated")
	}
	if math.Abs(got-20) > 1e-9 {
		t.Errorf("dew point at 100%% RH = %v, want 20", got)
	}
}

func TestDewPoint_BelowTemperatureWhenUnsaturated(t *testing.T) {
	got, extrapolated := DewPoint(20, 50)
	if extrapolated {
		t.Fatal("in-range inputs flagged as extrapolated")
	}
	if got >= 20 {
		t.Errorf("dew point %v not below air temperature", got)
	}
	// Reference tables put 20 C / 50% RH near 9.3 C.
	if got < 8 || got > 11 {
		t.Errorf("dew point %v outside plausible band [8, 11]", got)
	}
}

func TestDewPoint_ClampsHumidityAndFlags(t *testing.T) {
	low, extrapolated := DewPoint(20, 0.2)
	if !extrapolated {
		t.Error("sub-1% humidity not flagged as extrapolated")
	}
	want, _ := DewPoint(20, 1)
	if low != want {
		t.Errorf("clamped dew point = %v, want value at 1%% RH %v", low, want)
	}

	high, extrapolated := DewPoint(20, 150)
	if !extrapolated {
		t.Error("over-100% humidity not flagged as extrapolated")
	}
	sat, _ := DewPoint(20, 100)
	if high != sat {
		t.Errorf("clamped dew point = %v, want saturated value %v", high, sat)
	}
}

func TestDewPoint_TemperatureOutOfRangeFallsBack(t *testing.T) {
	for _, temp := range []float64{-45, 55} {
		got, extrapolated := DewPoint(temp, 50)
		if !extrapolated {
			t.Errorf("temp %v: extrapolated = false, want true", temp)
		}
		if got != temp {
			t.Errorf("temp %v: fallback = %v, want air temperature", temp, got)
		}
	}
}

func TestHeatIndex_HotterThanAirInRange(t *testing.T) {
	got, extrapolated := HeatIndex(32, 70)
	if extrapolated {
		t.Fatal("in-range inputs flagged as extrapolated")
	}
	if got <= 32 {
		t.Errorf("heat index %v not above air temperature 32", got)
	}
	// NOAA chart: 32 C at 70% RH is ~41 C.
	if got < 38 || got > 44 {
		t.Errorf("heat index %v outside plausible band [38, 44]", got)
	}
}

func TestHeatIndex_HumidityRaisesIt(t *testing.T) {
	dry, _ := HeatIndex(32, 45)
	humid, _ := HeatIndex(32, 85)
	if humid <= dry {
		t.Errorf("heat index at 85%% (%v) not above 45%% (%v)", humid, dry)
	}
}

func TestHeatIndex_OutOfRangeFallsBack(t *testing.T) {
	cases := []struct {
		name     string
		tempC    float64
		humidity float64
	}{
		{"too cool", 22, 80},
		{"too dry", 35, 20},
	}
	for _, tc := range cases {
		got, extrapolated := HeatIndex(tc.tempC, tc.humidity)
		if !extrapolated {
			t.Errorf("%s: extrapolated = false, want true", tc.name)
		}
		if got != tc.tempC {
			t.Errorf("%s: fallback = %v, want air temperature %v", tc.name, got, tc.tempC)
		}
	}
}

func TestModel_ComfortDelegates(t *testing.T) {
	s := State{TemperatureC: -10, PressureHPa: 1013, HumidityPercent: 60, WindSpeedMS: 8}
	m := NewModel(s)

	wc, wcFlag := m.WindChill()
	wantWC, wantFlag := WindChill(-10, 8)
	if wc != wantWC || wcFlag != wantFlag {
		t.Errorf("Model.WindChill = (%v, %v), want (%v, %v)", wc, wcFlag, wantWC, wantFlag)
	}

	dp, _ := m.DewPoint()
	wantDP, _ := DewPoint(-10, 60)
	if dp != wantDP {
		t.Errorf("Model.DewPoint = %v, want %v", dp, wantDP)
	}
}
