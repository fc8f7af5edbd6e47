package atmosphere

import "testing"

func stateFor(windMS, cloudPct float64, daytime bool) State {
	return State{
		TemperatureC:      15,
		PressureHPa:       1013.25,
		HumidityPercent:   50,
		WindSpeedMS:       windMS,
		CloudCoverPercent: cloudPct,
		Daytime:           daytime,
	}
}

func TestStabilityClass_String(t *testing.T) {
	cases := map[StabilityClass]string{
		VeryUnstable:     "A",
		Unstable:         "B",
		SlightlyUnstable: "C",
		Neutral:          "D",
		SlightlyStable:   "E",
		Stable:           "F",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", c, got, want)
		}
	}
}

func TestState_Insolation(t *testing.T) {
	cases := []struct {
		cloud   float64
		daytime bool
		want    Insolation
	}{
		{10, true, StrongInsolation},
		{29.9, true, StrongInsolation},
		{30, true, ModerateInsolation},
		{69.9, true, ModerateInsolation},
		{70, true, SlightInsolation},
		{100, true, SlightInsolation},
		{60, false, NightOvercast},
		{50, false, NightOvercast},
		{49.9, false, NightClear},
		{0, false, NightClear},
	}
	for _, tc := range cases {
		got := stateFor(3, tc.cloud, tc.daytime).Insolation()
		if got != tc.want {
			t.Errorf("Insolation(cloud=%v, day=%v) = %v, want %v", tc.cloud, tc.daytime, got, tc.want)
		}
	}
}

func TestClassifyStability_KnownCombinations(t *testing.T) {
	cases := []struct {
		name    string
		wind    float64
		cloud   float64
		daytime bool
		want    StabilityClass
	}{
		{"calm sunny day", 1, 10, true, VeryUnstable},
		{"calm clear night", 1, 10, false, Stable},
		{"calm overcast night", 1, 80, false, SlightlyStable},
		{"breezy sunny day", 4, 10, true, Unstable},
		{"breezy cloudy day", 4, 80, true, SlightlyUnstable},
		{"windy day", 7, 50, true, Neutral},
		{"windy night", 7, 20, false, Neutral},
		{"moderate clear night", 4, 20, false, SlightlyStable},
	}
	for _, tc := range cases {
		got := NewModel(stateFor(tc.wind, tc.cloud, tc.daytime)).ClassifyStability()
		if got != tc.want {
			t.Errorf("%s: class = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyStability_EveryInputMapsToOneClass(t *testing.T) {
	winds := []float64{0, 1.9, 2, 2.9, 3, 4.9, 5, 5.9, 6, 30}
	clouds := []float64{0, 29, 30, 69, 70, 100}
	for _, w := range winds {
		for _, c := range clouds {
			for _, day := range []bool{true, false} {
				got := NewModel(stateFor(w, c, day)).ClassifyStability()
				if got > Stable {
					t.Errorf("class out of range for wind=%v cloud=%v day=%v: %v", w, c, day, got)
				}
			}
		}
	}
}

func TestClassifyStability_WindBucketBoundariesInclusiveLower(t *testing.T) {
	// At each boundary the class must come from the higher bucket.
	day := func(wind float64) StabilityClass {
		return NewModel(stateFor(wind, 10, true)).ClassifyStability()
	}
	if day(1.999) != VeryUnstable || day(2) != Unstable {
		t.Errorf("2 m/s boundary: below = %v, at = %v", day(1.999), day(2))
	}
	if day(2.999) != Unstable || day(3) != Unstable {
		t.Errorf("3 m/s boundary: below = %v, at = %v", day(2.999), day(3))
	}
	if day(4.999) != Unstable || day(5) != SlightlyUnstable {
		t.Errorf("5 m/s boundary: below = %v, at = %v", day(4.999), day(5))
	}
	if day(5.999) != SlightlyUnstable || day(6) != SlightlyUnstable {
		t.Errorf("6 m/s boundary: below = %v, at = %v", day(5.999), day(6))
	}
}

func TestClassifyStability_HighWindAlwaysNearNeutral(t *testing.T) {
	// Strong mixing suppresses both extremes.
	for _, cloud := range []float64{0, 50, 100} {
		for _, daytime := range []bool{true, false} {
			got := NewModel(stateFor(10, cloud, daytime)).ClassifyStability()
			if got == VeryUnstable || got == SlightlyStable || got == Stable {
				t.Errorf("wind 10 cloud %v day %v: class %v, want C or D", cloud, daytime, got)
			}
		}
	}
}
