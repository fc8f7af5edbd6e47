package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidForce is wrapped by force constructors when given malformed
// parameters. Validation happens at construction time so Update never fails.
var ErrInvalidForce = errors.New("physics: invalid force parameter")

// ForceGenerator computes a force contribution for one particle and step.
// The set of generators is small and closed (gravity, drag, wind); all are
// stateless aside from configured constants. elapsed is total simulation
// time, letting time-varying fields stay free of hidden mutable state.
type ForceGenerator interface {
	Apply(p *Particle, dt, elapsed float64)
}

// TurbulenceField supplies a scalar noise field with a time phase, used by
// Wind for flutter. Satisfied by noise.Perlin.
type TurbulenceField interface {
	Sample3(x, y, z float64) float64
}

// Gravity pulls particles downward with force mass * g, reduced by each
// particle's buoyancy factor.
type Gravity struct {
	g float64
}

// NewGravity builds a gravity generator. g is acceleration in world units
// per second squared; it must be finite.
func NewGravity(g float64) (*Gravity, error) {
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return nil, fmt.Errorf("%w: gravity %v is not finite", ErrInvalidForce, g)
	}
	return &Gravity{g: g}, nil
}

// Apply accumulates the gravity force on p.
func (f *Gravity) Apply(p *Particle, dt, elapsed float64) {
	effective := f.g * (1 - p.BuoyancyFactor)
	p.ApplyForce(Vector2{0, p.Mass * effective})
}

// Drag applies quadratic drag: F = -coefficient * |v| * v. Quadratic, not
// linear, so rain and snow reach distinct terminal velocities.
type Drag struct {
	coefficient float64
}

// NewDrag builds a drag generator. The coefficient must be finite and
// non-negative.
func NewDrag(coefficient float64) (*Drag, error) {
	if math.IsNaN(coefficient) || math.IsInf(coefficient, 0) || coefficient < 0 {
		return nil, fmt.Errorf("%w: drag coefficient %v", ErrInvalidForce, coefficient)
	}
	return &Drag{coefficient: coefficient}, nil
}

// Apply accumulates the drag force on p.
func (f *Drag) Apply(p *Particle, dt, elapsed float64) {
	speed := p.Velocity.Magnitude()
	if speed < 1e-9 {
		return
	}
	p.ApplyForce(p.Velocity.Scale(-f.coefficient * speed))
}

// WindConfig configures a Wind generator.
type WindConfig struct {
	// X, Y is the constant wind force vector.
	X, Y float64

	// Turbulence, when set, perturbs the wind with noise sampled at the
	// particle position and an evolving time phase.
	Turbulence TurbulenceField

	// TurbulenceStrength scales the noise contribution (force units).
	TurbulenceStrength float64

	// SpatialScale maps world coordinates to noise coordinates.
	// Defaults to 0.1 when zero.
	SpatialScale float64

	// TimeScale maps elapsed seconds to the noise time phase.
	// Defaults to 0.1 when zero.
	TimeScale float64
}

// Wind applies a constant force vector plus optional noise-driven flutter.
type Wind struct {
	base         Vector2
	turbulence   TurbulenceField
	strength     float64
	spatialScale float64
	timeScale    float64
}

// NewWind builds a wind generator, validating the configuration up front.
func NewWind(cfg WindConfig) (*Wind, error) {
	for _, v := range [...]float64{cfg.X, cfg.Y, cfg.TurbulenceStrength, cfg.SpatialScale, cfg.TimeScale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: wind parameter is not finite", ErrInvalidForce)
		}
	}
	if cfg.Turbulence == nil && cfg.TurbulenceStrength != 0 {
		return nil, fmt.Errorf("%w: turbulence strength set without a field", ErrInvalidForce)
	}
	if cfg.TurbulenceStrength < 0 {
		return nil, fmt.Errorf("%w: negative turbulence strength %v", ErrInvalidForce, cfg.TurbulenceStrength)
	}
	w := &Wind{
		base:         Vector2{cfg.X, cfg.Y},
		turbulence:   cfg.Turbulence,
		strength:     cfg.TurbulenceStrength,
		spatialScale: cfg.SpatialScale,
		timeScale:    cfg.TimeScale,
	}
	if w.spatialScale == 0 {
		w.spatialScale = 0.1
	}
	if w.timeScale == 0 {
		w.timeScale = 0.1
	}
	return w, nil
}

// Apply accumulates the wind force on p.
func (f *Wind) Apply(p *Particle, dt, elapsed float64) {
	force := f.base
	if f.turbulence != nil && f.strength > 0 {
		phase := elapsed * f.timeScale
		nx := f.turbulence.Sample3(p.Position.X*f.spatialScale, p.Position.Y*f.spatialScale, phase)
		// Offset keeps the two components decorrelated.
		ny := f.turbulence.Sample3(p.Position.X*f.spatialScale+100, p.Position.Y*f.spatialScale, phase)
		force = force.Add(Vector2{nx * f.strength, ny * f.strength})
	}
	p.ApplyForce(force)
}
