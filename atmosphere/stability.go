package atmosphere

// StabilityClass is the Pasquill-Gifford atmospheric stability category,
// A (very unstable) through F (stable).
type StabilityClass uint8

const (
	VeryUnstable     StabilityClass = iota // A: strong daytime convection
	Unstable                               // B: moderate convection
	SlightlyUnstable                       // C: weak convection
	Neutral                                // D: overcast or windy
	SlightlyStable                         // E: light wind, partly clear night
	Stable                                 // F: calm, clear night
)

// String returns the single-letter class name.
func (c StabilityClass) String() string {
	if c > Stable {
		return "?"
	}
	return string(rune('A' + c))
}

// Insolation is the daytime solar heating / nighttime cloud condition axis
// of the Pasquill-Gifford table.
type Insolation uint8

const (
	StrongInsolation Insolation = iota
	ModerateInsolation
	SlightInsolation
	NightOvercast
	NightClear
)

// Insolation derives the table condition from the snapshot's daytime flag
// and cloud cover.
func (s State) Insolation() Insolation {
	if s.Daytime {
		switch {
		case s.CloudCoverPercent < 30:
			return StrongInsolation
		case s.CloudCoverPercent < 70:
			return ModerateInsolation
		default:
			return SlightInsolation
		}
	}
	if s.CloudCoverPercent >= 50 {
		return NightOvercast
	}
	return NightClear
}

// stabilityTable maps [wind bucket][insolation] to a class. Wind buckets use
// an inclusive-lower convention: [0,2) [2,3) [3,5) [5,6) [6,inf) m/s, so
// every speed maps to exactly one row.
var stabilityTable = [5][5]StabilityClass{
	{VeryUnstable, Unstable, Unstable, SlightlyStable, Stable},           // < 2 m/s
	{Unstable, Unstable, SlightlyUnstable, SlightlyStable, Stable},       // 2-3
	{Unstable, SlightlyUnstable, SlightlyUnstable, Neutral, SlightlyStable}, // 3-5
	{SlightlyUnstable, Neutral, Neutral, Neutral, Neutral},               // 5-6
	{SlightlyUnstable, Neutral, Neutral, Neutral, Neutral},               // >= 6
}

// windBucket returns the table row for a wind speed in m/s.
func windBucket(speedMS float64) int {
	switch {
	case speedMS < 2:
		return 0
	case speedMS < 3:
		return 1
	case speedMS < 5:
		return 2
	case speedMS < 6:
		return 3
	default:
		return 4
	}
}

// ClassifyStability returns the Pasquill-Gifford class for the wrapped
// snapshot. Every (wind speed, insolation) input maps to exactly one class.
func (m Model) ClassifyStability() StabilityClass {
	return stabilityTable[windBucket(m.state.WindSpeedMS)][m.state.Insolation()]
}
