package game

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/stormglass/atmosphere"
	"github.com/pthm-cable/stormglass/config"
)

// WeatherFeed is a mock weather source: it perturbs a base atmospheric
// state with a random walk plus wind gusts and publishes snapshots to a
// Slot on a fixed cadence. It stands in for a real observation API and
// exercises the same single-slot hand-off a real feed would use.
type WeatherFeed struct {
	slot     *atmosphere.Slot
	base     atmosphere.State
	interval time.Duration
	jitter   float64
	wind     *atmosphere.WindProfile
	rng      *rand.Rand
}

// NewWeatherFeed builds a feed publishing to slot, starting from the
// configured base state.
func NewWeatherFeed(slot *atmosphere.Slot, cfg *config.Config, seed int64) *WeatherFeed {
	base := atmosphere.State{
		TemperatureC:      cfg.Atmosphere.TemperatureC,
		PressureHPa:       cfg.Atmosphere.PressureHPa,
		HumidityPercent:   cfg.Atmosphere.HumidityPercent,
		WindSpeedMS:       cfg.Atmosphere.WindSpeedMS,
		WindDirectionDeg:  cfg.Atmosphere.WindDirectionDeg,
		CloudCoverPercent: cfg.Atmosphere.CloudCoverPercent,
		Daytime:           cfg.Atmosphere.Daytime,
	}
	return &WeatherFeed{
		slot:     slot,
		base:     base,
		interval: time.Duration(cfg.Atmosphere.PublishIntervalSec * float64(time.Second)),
		jitter:   cfg.Atmosphere.JitterScale,
		wind:     atmosphere.NewWindProfile(base.WindSpeedMS, base.WindDirectionDeg, seed),
		rng:      rand.New(rand.NewSource(seed + 1)),
	}
}

// Run publishes snapshots until ctx is canceled. Intended to run on its own
// goroutine; the slot makes the hand-off safe.
func (f *WeatherFeed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	state := f.base
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state = f.next(state)
			f.slot.Publish(state)
			slog.Debug("weather published",
				"temp_c", state.TemperatureC,
				"wind_ms", state.WindSpeedMS,
				"cloud_pct", state.CloudCoverPercent,
			)
		}
	}
}

// next produces the following snapshot: a bounded random walk around the
// base state, with the wind speed driven by the gust model.
func (f *WeatherFeed) next(prev atmosphere.State) atmosphere.State {
	dt := f.interval.Seconds()
	model := atmosphere.NewModel(prev)
	f.wind.UpdateGusts(dt, model.TurbulenceIntensity())
	gustU, gustV := f.wind.Wind()
	speed := math.Hypot(gustU, gustV)

	next := prev
	next.TemperatureC = walk(f.rng, prev.TemperatureC, f.base.TemperatureC, f.jitter)
	next.HumidityPercent = clampPct(walk(f.rng, prev.HumidityPercent, f.base.HumidityPercent, f.jitter*4))
	next.CloudCoverPercent = clampPct(walk(f.rng, prev.CloudCoverPercent, f.base.CloudCoverPercent, f.jitter*6))
	next.PressureHPa = walk(f.rng, prev.PressureHPa, f.base.PressureHPa, f.jitter)
	next.WindSpeedMS = speed
	next.WindDirectionDeg = walk(f.rng, prev.WindDirectionDeg, f.base.WindDirectionDeg, f.jitter*10)
	return next
}

// walk nudges v by a uniform step scaled to size, with a weak pull back
// toward the base so the series stays bounded.
func walk(rng *rand.Rand, v, base, size float64) float64 {
	step := (rng.Float64()*2 - 1) * size
	return v + step + (base-v)*0.05
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
