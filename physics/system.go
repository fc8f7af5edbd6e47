package physics

import (
	"errors"
	"fmt"
)

// ErrInvalidSystem is wrapped by NewSystem when given malformed parameters.
var ErrInvalidSystem = errors.New("physics: invalid system parameter")

// Integrator selects the numerical integration scheme.
type Integrator uint8

const (
	// SemiImplicitEuler updates velocity before position. Cheapest, good
	// energy behavior; the default.
	SemiImplicitEuler Integrator = iota

	// Verlet integrates position directly from the previous position.
	// Stable over long trajectories (drifting snow).
	Verlet

	// RK4 is the classic fourth-order Runge-Kutta scheme, about 4x the
	// cost. Reserved for precision passes and integrator-accuracy tests.
	RK4
)

// Bounds is the visible region plus a removal margin. Particles farther than
// Margin outside the region are culled.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
	Margin                 float64
}

// SystemConfig configures a particle System.
type SystemConfig struct {
	// Capacity is the fixed maximum live particle count. Spawns beyond it
	// are rejected; existing particles are never evicted to make room.
	Capacity int

	Bounds     Bounds
	Integrator Integrator

	// Substeps divides each Update dt for stability. Defaults to 1.
	Substeps int

	// MaxVelocity clamps particle speed after integration. <= 0 disables
	// the clamp.
	MaxVelocity float64
}

// System owns a fixed-capacity, insertion-ordered pool of particles and a
// list of registered force generators. A single goroutine must own all
// mutation; Update is a bounded synchronous computation with no suspension
// points.
type System struct {
	particles  []Particle
	generators []ForceGenerator
	cfg        SystemConfig

	elapsed  float64
	rejected uint64
	culled   uint64
}

// NewSystem builds a particle system, validating the configuration.
func NewSystem(cfg SystemConfig) (*System, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidSystem, cfg.Capacity)
	}
	if cfg.Bounds.MaxX <= cfg.Bounds.MinX || cfg.Bounds.MaxY <= cfg.Bounds.MinY {
		return nil, fmt.Errorf("%w: empty bounds", ErrInvalidSystem)
	}
	if cfg.Integrator > RK4 {
		return nil, fmt.Errorf("%w: unknown integrator %d", ErrInvalidSystem, cfg.Integrator)
	}
	if cfg.Substeps == 0 {
		cfg.Substeps = 1
	}
	if cfg.Substeps < 1 {
		return nil, fmt.Errorf("%w: substeps %d", ErrInvalidSystem, cfg.Substeps)
	}
	return &System{
		particles: make([]Particle, 0, cfg.Capacity),
		cfg:       cfg,
	}, nil
}

// AddForceGenerator registers a force generator. Generators must come from
// the package constructors, which validate parameters; a nil generator is
// the one registration error left to catch here.
func (s *System) AddForceGenerator(g ForceGenerator) error {
	if g == nil {
		return fmt.Errorf("%w: nil force generator", ErrInvalidForce)
	}
	s.generators = append(s.generators, g)
	return nil
}

// SetForceGenerators replaces the registered generators wholesale. Used when
// a fresh atmospheric snapshot re-parameterizes the wind.
func (s *System) SetForceGenerators(gens ...ForceGenerator) error {
	for _, g := range gens {
		if g == nil {
			return fmt.Errorf("%w: nil force generator", ErrInvalidForce)
		}
	}
	s.generators = append(s.generators[:0], gens...)
	return nil
}

// Spawn copies p into the pool. Returns false without side effects when the
// pool is at capacity (reject-new policy).
func (s *System) Spawn(p Particle) bool {
	if len(s.particles) >= s.cfg.Capacity {
		s.rejected++
		return false
	}
	s.particles = append(s.particles, p)
	return true
}

// Update advances the simulation by dt seconds: per particle, reset the
// force accumulator, apply every registered generator, integrate, then cull
// expired and out-of-bounds particles. Removal compacts in place so the
// surviving particles keep their relative order.
func (s *System) Update(dt float64) {
	sub := dt / float64(s.cfg.Substeps)
	for step := 0; step < s.cfg.Substeps; step++ {
		s.elapsed += sub
		for i := range s.particles {
			p := &s.particles[i]
			p.clearForces()
			for _, g := range s.generators {
				g.Apply(p, sub, s.elapsed)
			}
			s.integrate(p, sub)
			if s.cfg.MaxVelocity > 0 {
				p.Velocity = p.Velocity.Clamped(s.cfg.MaxVelocity)
			}
			p.Age += sub
		}
	}

	alive := 0
	for i := range s.particles {
		if s.particles[i].expired(s.cfg.Bounds) {
			s.culled++
			continue
		}
		s.particles[alive] = s.particles[i]
		alive++
	}
	s.particles = s.particles[:alive]
}

// Clear removes all particles.
func (s *System) Clear() {
	s.particles = s.particles[:0]
}

// Size returns the live particle count.
func (s *System) Size() int {
	return len(s.particles)
}

// Capacity returns the configured maximum particle count.
func (s *System) Capacity() int {
	return s.cfg.Capacity
}

// Rejected returns the cumulative count of spawns rejected at capacity.
func (s *System) Rejected() uint64 {
	return s.rejected
}

// Culled returns the cumulative count of particles removed by expiry or
// leaving bounds.
func (s *System) Culled() uint64 {
	return s.culled
}

// AppendSnapshots appends a snapshot of every live particle to dst and
// returns it. The caller reuses dst across frames to avoid allocation.
func (s *System) AppendSnapshots(dst []Snapshot) []Snapshot {
	for i := range s.particles {
		p := &s.particles[i]
		dst = append(dst, Snapshot{
			Position: p.Position,
			Kind:     p.Kind,
			Age:      p.Age,
			MaxAge:   p.MaxAge,
		})
	}
	return dst
}
