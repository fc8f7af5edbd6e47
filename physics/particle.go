package physics

// Kind tags a particle with its visual/physical archetype. The renderer maps
// kinds to glyphs; the physics side only uses it to pick spawn parameters.
type Kind uint8

const (
	KindRaindrop Kind = iota
	KindSnowflake
	KindHailstone
	KindSpark
	KindDust
)

// String returns the kind name for logs and telemetry.
func (k Kind) String() string {
	switch k {
	case KindRaindrop:
		return "raindrop"
	case KindSnowflake:
		return "snowflake"
	case KindHailstone:
		return "hailstone"
	case KindSpark:
		return "spark"
	case KindDust:
		return "dust"
	}
	return "unknown"
}

// Particle is a physics-enabled particle with a per-step force accumulator.
// Particles are owned exclusively by a System's pool; Spawn copies the value
// in, so callers never hold an alias into the pool.
type Particle struct {
	Position     Vector2
	Velocity     Vector2
	Acceleration Vector2

	// Previous position for Verlet integration. Bootstrapped from the
	// initial velocity on the first Verlet step.
	prevPosition Vector2
	hasPrev      bool

	Mass float64

	// BuoyancyFactor reduces effective gravity: 0 = none, 1 = neutrally
	// buoyant. Snowflakes use this to fall slower than raindrops.
	BuoyancyFactor float64

	Kind Kind

	// Age in seconds; the particle expires once Age exceeds MaxAge.
	// MaxAge <= 0 means immortal.
	Age    float64
	MaxAge float64

	// Force accumulator, reset at the start of every step.
	force Vector2
}

// ApplyForce accumulates a force contribution for the current step.
func (p *Particle) ApplyForce(f Vector2) {
	p.force = p.force.Add(f)
}

// ApplyImpulse applies an instantaneous change in momentum.
func (p *Particle) ApplyImpulse(impulse Vector2) {
	p.Velocity = p.Velocity.Add(impulse.Scale(p.inverseMass()))
}

// clearForces resets the accumulator and derived acceleration.
func (p *Particle) clearForces() {
	p.force = Vector2{}
	p.Acceleration = Vector2{}
}

// inverseMass returns 1/Mass, or 0 for massless (immovable) particles.
func (p *Particle) inverseMass() float64 {
	if p.Mass > 0 {
		return 1 / p.Mass
	}
	return 0
}

// expired reports whether the particle has outlived MaxAge or left the
// bounds (with margin).
func (p *Particle) expired(b Bounds) bool {
	if p.MaxAge > 0 && p.Age >= p.MaxAge {
		return true
	}
	return p.Position.X < b.MinX-b.Margin ||
		p.Position.X > b.MaxX+b.Margin ||
		p.Position.Y < b.MinY-b.Margin ||
		p.Position.Y > b.MaxY+b.Margin
}

// Snapshot is the per-frame particle view handed to rendering collaborators.
type Snapshot struct {
	Position Vector2
	Kind     Kind
	Age      float64
	MaxAge   float64
}
