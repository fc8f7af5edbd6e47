package physics

// integrate advances one particle by dt using the configured scheme.
func (s *System) integrate(p *Particle, dt float64) {
	p.Acceleration = p.force.Scale(p.inverseMass())

	switch s.cfg.Integrator {
	case Verlet:
		s.integrateVerlet(p, dt)
	case RK4:
		s.integrateRK4(p, dt)
	default:
		s.integrateSemiImplicit(p, dt)
	}
}

// integrateSemiImplicit is symplectic Euler: v += a*dt, then p += v*dt.
func (s *System) integrateSemiImplicit(p *Particle, dt float64) {
	p.Velocity = p.Velocity.Add(p.Acceleration.Scale(dt))
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

// integrateVerlet uses position Verlet: p' = 2p - p_old + a*dt^2. Velocity
// is derived afterwards so drag and telemetry still see it.
func (s *System) integrateVerlet(p *Particle, dt float64) {
	if !p.hasPrev {
		// Bootstrap the previous position from the initial velocity.
		p.prevPosition = p.Position.Sub(p.Velocity.Scale(dt))
		p.hasPrev = true
	}
	current := p.Position
	p.Position = p.Position.Scale(2).
		Sub(p.prevPosition).
		Add(p.Acceleration.Scale(dt * dt))
	p.prevPosition = current
	p.Velocity = p.Position.Sub(p.prevPosition).Div(dt)
}

// integrateRK4 is classic fourth-order Runge-Kutta. Force generators are
// re-evaluated at each intermediate state, so the cost is ~4x semi-implicit.
func (s *System) integrateRK4(p *Particle, dt float64) {
	accelAt := func(pos, vel Vector2) Vector2 {
		probe := *p
		probe.Position = pos
		probe.Velocity = vel
		probe.force = Vector2{}
		for _, g := range s.generators {
			g.Apply(&probe, dt, s.elapsed)
		}
		return probe.force.Scale(probe.inverseMass())
	}

	x0, v0 := p.Position, p.Velocity
	half := dt / 2

	k1v := p.Acceleration
	k1x := v0

	k2x := v0.Add(k1v.Scale(half))
	k2v := accelAt(x0.Add(k1x.Scale(half)), k2x)

	k3x := v0.Add(k2v.Scale(half))
	k3v := accelAt(x0.Add(k2x.Scale(half)), k3x)

	k4x := v0.Add(k3v.Scale(dt))
	k4v := accelAt(x0.Add(k3x.Scale(dt)), k4x)

	sixth := dt / 6
	p.Position = x0.Add(k1x.Add(k2x.Scale(2)).Add(k3x.Scale(2)).Add(k4x).Scale(sixth))
	p.Velocity = v0.Add(k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(sixth))
}
