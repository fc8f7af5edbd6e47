package atmosphere

import (
	"math"
	"math/rand"
)

// WindProfile models wind dynamics above the surface reading: a power-law
// speed profile with height plus stochastic, exponentially decaying gusts.
// The gust stream is driven by an explicitly seeded RNG so runs are
// reproducible.
type WindProfile struct {
	BaseSpeedMS      float64
	BaseDirectionDeg float64

	gust      float64
	gustTimer float64
	rng       *rand.Rand
}

// NewWindProfile builds a wind profile with the given surface reading and
// gust RNG seed.
func NewWindProfile(baseSpeedMS, baseDirectionDeg float64, seed int64) *WindProfile {
	return &WindProfile{
		BaseSpeedMS:      baseSpeedMS,
		BaseDirectionDeg: baseDirectionDeg,
		rng:              rand.New(rand.NewSource(seed)),
	}
}

// WindAtHeight returns the wind speed at a height in meters using the power
// law profile u(z) = u_ref * (z / z_ref)^alpha with alpha = 0.14 (neutral
// stability over open terrain) and z_ref = 10 m.
func (w *WindProfile) WindAtHeight(heightM float64) float64 {
	const (
		alpha = 0.14
		zRef  = 10.0
	)
	if heightM <= 0 {
		return 0
	}
	return w.BaseSpeedMS * math.Pow(heightM/zRef, alpha)
}

// UpdateGusts advances the gust state by dt seconds. turbulence in [0, 1]
// scales how often new gusts spawn.
func (w *WindProfile) UpdateGusts(dt, turbulence float64) {
	w.gust *= math.Exp(-2 * dt)

	w.gustTimer -= dt
	if w.gustTimer <= 0 {
		if w.rng.Float64() < turbulence*0.1 {
			w.gust = (0.5 + w.rng.Float64()*1.5) * w.BaseSpeedMS
		}
		w.gustTimer = 0.5 + w.rng.Float64()*2.5
	}
}

// Wind returns the current wind vector including the gust contribution.
func (w *WindProfile) Wind() (x, y float64) {
	speed := w.BaseSpeedMS + w.gust
	rad := w.BaseDirectionDeg * math.Pi / 180
	return speed * math.Sin(rad), speed * math.Cos(rad)
}
