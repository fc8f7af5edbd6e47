// Package game wires the particle system, noise fields, atmosphere feed,
// and telemetry into a fixed-timestep weather simulation.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/stormglass/atmosphere"
	"github.com/pthm-cable/stormglass/config"
	"github.com/pthm-cable/stormglass/noise"
	"github.com/pthm-cable/stormglass/physics"
	"github.com/pthm-cable/stormglass/telemetry"
)

// Simulation owns the full per-run state: the particle pool, the noise
// stack, the latest atmosphere snapshot, and the adaptive quality budget.
// All methods must be called from the owning loop goroutine; the only
// cross-goroutine surface is the atmosphere Slot.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	particles  *physics.System
	turbulence physics.TurbulenceField
	field      noise.Field

	budget *telemetry.FrameBudget
	perf   *telemetry.PerfCollector
	stats  *telemetry.RenderStats

	slot    *atmosphere.Slot
	model   atmosphere.Model
	lastSeq uint64

	condition  Condition
	spawnCarry float64
	tick       int64
}

// NewSimulation builds a simulation from the loaded configuration. seed
// overrides the configured noise seed when non-zero.
func NewSimulation(cfg *config.Config, condition Condition, seed int64) (*Simulation, error) {
	if seed == 0 {
		seed = cfg.Noise.Seed
	}

	turbulence, field, err := buildNoiseStack(cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("building noise stack: %w", err)
	}

	integrator, err := parseIntegrator(cfg.Physics.Integrator)
	if err != nil {
		return nil, err
	}

	particles, err := physics.NewSystem(physics.SystemConfig{
		Capacity: cfg.Physics.MaxParticles,
		Bounds: physics.Bounds{
			MinX:   0,
			MinY:   0,
			MaxX:   cfg.Derived.WorldW,
			MaxY:   cfg.Derived.WorldH,
			Margin: cfg.World.Margin,
		},
		Integrator:  integrator,
		Substeps:    cfg.Physics.Substeps,
		MaxVelocity: cfg.Physics.MaxVelocity,
	})
	if err != nil {
		return nil, fmt.Errorf("building particle system: %w", err)
	}

	budget, err := telemetry.NewFrameBudget(telemetry.BudgetConfig{
		TargetFrame:     cfg.Derived.TargetFrame,
		Smoothing:       cfg.Budget.Smoothing,
		OverMargin:      cfg.Budget.OverMargin,
		UnderMargin:     cfg.Budget.UnderMargin,
		DowngradeAfter:  cfg.Budget.DowngradeAfter,
		UpgradeAfter:    cfg.Budget.UpgradeAfter,
		MaxQuality:      cfg.Budget.MaxQuality,
		BaseParticleCap: cfg.Physics.MaxParticles,
	})
	if err != nil {
		return nil, fmt.Errorf("building frame budget: %w", err)
	}

	initial := atmosphere.State{
		TemperatureC:      cfg.Atmosphere.TemperatureC,
		PressureHPa:       cfg.Atmosphere.PressureHPa,
		HumidityPercent:   cfg.Atmosphere.HumidityPercent,
		WindSpeedMS:       cfg.Atmosphere.WindSpeedMS,
		WindDirectionDeg:  cfg.Atmosphere.WindDirectionDeg,
		CloudCoverPercent: cfg.Atmosphere.CloudCoverPercent,
		Daytime:           cfg.Atmosphere.Daytime,
	}

	sim := &Simulation{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		particles:  particles,
		turbulence: turbulence,
		field:      field,
		budget:     budget,
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		stats:      telemetry.NewRenderStats(cfg.Telemetry.RenderStatsWindow, cfg.Derived.TargetFrame),
		slot:       &atmosphere.Slot{},
		condition:  condition,
	}
	sim.slot.Publish(initial)

	if err := sim.applySnapshot(); err != nil {
		return nil, err
	}

	return sim, nil
}

// buildNoiseStack constructs the two noise consumers: a 3D turbulence
// source for the wind force, and the 2D fractal (optionally domain-warped)
// field used for visual texturing.
func buildNoiseStack(cfg *config.Config, seed int64) (physics.TurbulenceField, noise.Field, error) {
	var base interface {
		noise.Field
		physics.TurbulenceField
	}
	switch cfg.Noise.Backend {
	case "simplex":
		base = noise.NewSimplex(seed)
	default:
		base = noise.NewPerlin(seed)
	}

	field, err := noise.NewFractal(base, noise.FractalConfig{
		Octaves:     cfg.Noise.Octaves,
		Persistence: cfg.Noise.Persistence,
		Lacunarity:  cfg.Noise.Lacunarity,
		Scale:       cfg.Noise.Scale,
	})
	if err != nil {
		return nil, nil, err
	}

	if cfg.Noise.WarpStrength > 0 {
		warped, err := noise.NewDomainWarp(field, cfg.Noise.WarpStrength)
		if err != nil {
			return nil, nil, err
		}
		return base, warped, nil
	}
	return base, field, nil
}

// parseIntegrator maps the config string to an integrator.
func parseIntegrator(name string) (physics.Integrator, error) {
	switch name {
	case "euler":
		return physics.SemiImplicitEuler, nil
	case "verlet":
		return physics.Verlet, nil
	case "rk4":
		return physics.RK4, nil
	default:
		return 0, fmt.Errorf("unknown integrator %q", name)
	}
}

// Slot returns the atmosphere hand-off slot. Publishers (the weather feed
// goroutine) write to it; Step consumes it.
func (s *Simulation) Slot() *atmosphere.Slot {
	return s.slot
}

// Condition returns the active weather condition.
func (s *Simulation) Condition() Condition {
	return s.condition
}

// SetCondition switches the emitter preset. The existing particles keep
// falling; only new spawns change.
func (s *Simulation) SetCondition(c Condition) {
	s.condition = c
	s.spawnCarry = 0
}

// Model returns the atmosphere model over the last consumed snapshot.
func (s *Simulation) Model() atmosphere.Model {
	return s.model
}

// Particles returns the particle system for inspection.
func (s *Simulation) Particles() *physics.System {
	return s.particles
}

// Budget returns the adaptive quality controller.
func (s *Simulation) Budget() *telemetry.FrameBudget {
	return s.budget
}

// Perf returns the phase-level performance collector.
func (s *Simulation) Perf() *telemetry.PerfCollector {
	return s.perf
}

// Stats returns the rolling render statistics.
func (s *Simulation) Stats() *telemetry.RenderStats {
	return s.stats
}

// Field returns the 2D noise field for visual texturing and previews.
func (s *Simulation) Field() noise.Field {
	return s.field
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int64 {
	return s.tick
}

// applySnapshot consumes the latest atmosphere snapshot, if it is newer than
// the one the force stack was built from, and rebuilds the force generators.
// Forces stay in place when no fresh snapshot exists.
func (s *Simulation) applySnapshot() error {
	state, seq, ok := s.slot.Latest()
	if !ok || seq == s.lastSeq {
		return nil
	}
	s.lastSeq = seq
	s.model = atmosphere.NewModel(state)

	gravity, err := physics.NewGravity(s.cfg.Physics.Gravity)
	if err != nil {
		return fmt.Errorf("rebuilding gravity: %w", err)
	}
	drag, err := physics.NewDrag(s.cfg.Physics.DragCoeff)
	if err != nil {
		return fmt.Errorf("rebuilding drag: %w", err)
	}

	windU, windV := state.WindVector()
	updraft := s.model.ThermalUpdraftStrength(s.solarIntensity(state))
	wind, err := physics.NewWind(physics.WindConfig{
		X: windU,
		// Screen Y grows downward; thermal updrafts push against it.
		Y:                  -windV - updraft,
		Turbulence:         s.turbulence,
		TurbulenceStrength: s.model.TurbulenceIntensity() * state.WindSpeedMS,
		SpatialScale:       s.cfg.Noise.SpatialScale,
		TimeScale:          s.cfg.Noise.TimeScale,
	})
	if err != nil {
		return fmt.Errorf("rebuilding wind: %w", err)
	}

	if err := s.particles.SetForceGenerators(gravity, drag, wind); err != nil {
		return err
	}

	slog.Debug("atmosphere snapshot applied",
		"seq", seq,
		"wind_ms", state.WindSpeedMS,
		"stability", s.model.ClassifyStability().String(),
		"turbulence", s.model.TurbulenceIntensity(),
	)
	return nil
}

// solarIntensity estimates the 0..1 solar forcing feeding thermal updrafts:
// full sun scaled down by cloud cover, zero at night.
func (s *Simulation) solarIntensity(state atmosphere.State) float64 {
	if !state.Daytime {
		return 0
	}
	return (100 - state.CloudCoverPercent) / 100
}

// spawn emits new particles for the active condition, honoring the quality
// budget's particle cap. Fractional spawn counts carry over between ticks
// so low rates still emit.
func (s *Simulation) spawn(dt float64) {
	em, ok := emitterFor(s.condition)
	if !ok {
		return
	}

	cap := s.budget.Limits().ParticleCap
	if cap > s.particles.Capacity() {
		cap = s.particles.Capacity()
	}

	// Storms throw occasional spark bursts from a discharge point. Bursts
	// claim capacity ahead of the steady emitter so a saturated pool still
	// flashes.
	if s.condition == Storm && s.rng.Float64() < sparkBurstChance {
		cx := s.rng.Float64() * s.cfg.Derived.WorldW
		cy := s.rng.Float64() * s.cfg.Derived.WorldH * 0.5
		for i := 0; i < sparkBurstSize; i++ {
			if s.particles.Size() >= cap {
				break
			}
			vx := (s.rng.Float64() - 0.5) * 12
			vy := -s.rng.Float64() * 6
			s.particles.Spawn(physics.NewSpark(cx, cy, vx, vy))
		}
	}

	s.spawnCarry += s.cfg.Weather.SpawnRate * em.rateFactor * dt
	count := int(s.spawnCarry)
	s.spawnCarry -= float64(count)

	windU, _ := s.model.State().WindVector()
	windX := windU * em.windCoupling

	for i := 0; i < count; i++ {
		if s.particles.Size() >= cap {
			break
		}
		x := s.rng.Float64() * s.cfg.Derived.WorldW
		// Spawn just above the visible region so particles enter falling.
		y := -s.cfg.World.Margin * s.rng.Float64()

		var p physics.Particle
		switch em.kind {
		case physics.KindSnowflake:
			p = physics.NewSnowflake(x, y, windX)
		case physics.KindHailstone:
			p = physics.NewHailstone(x, y, windX)
		case physics.KindDust:
			p = physics.NewDust(x, s.rng.Float64()*s.cfg.Derived.WorldH, windX)
		default:
			p = physics.NewRaindrop(x, y, windX)
		}
		s.particles.Spawn(p)
	}
}

const (
	sparkBurstChance = 0.05
	sparkBurstSize   = 6
)

// Step advances the simulation by one fixed timestep.
func (s *Simulation) Step() error {
	dt := s.cfg.Derived.DT

	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseSnapshot)
	if err := s.applySnapshot(); err != nil {
		return err
	}

	s.perf.StartPhase(telemetry.PhaseSpawn)
	s.spawn(dt)

	s.perf.StartPhase(telemetry.PhasePhysics)
	s.particles.Update(dt)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.stats.RecordParticles(s.particles.Size())

	s.perf.EndTick()
	s.tick++
	return nil
}

// RecordFrame feeds one wall-clock frame duration to the budget controller
// and statistics. Call once per rendered frame, after Step.
func (s *Simulation) RecordFrame(d time.Duration) {
	s.budget.RecordFrameTime(d)
	s.stats.RecordFrame(d)
	s.perf.RecordFrame()
}

// FrameRecord assembles the per-tick telemetry row.
func (s *Simulation) FrameRecord(frame time.Duration) telemetry.FrameRecord {
	return telemetry.FrameRecord{
		Tick:        s.tick,
		FrameMS:     float64(frame) / float64(time.Millisecond),
		Particles:   s.particles.Size(),
		Quality:     s.budget.Quality(),
		ParticleCap: s.budget.Limits().ParticleCap,
		Rejected:    s.particles.Rejected(),
		Culled:      s.particles.Culled(),
	}
}

// Frame returns render snapshots of all live particles in insertion order.
func (s *Simulation) Frame(dst []physics.Snapshot) []physics.Snapshot {
	return s.particles.AppendSnapshots(dst)
}
