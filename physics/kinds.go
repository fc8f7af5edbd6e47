package physics

// Spawn factories for the weather particle archetypes. Masses and buoyancy
// are tuned for terminal-scale animation, not SI realism: what matters is
// that snow drifts, rain falls straight, and hail punches through wind.

// NewRaindrop builds a raindrop at (x, y) with a horizontal wind bias.
func NewRaindrop(x, y, windX float64) Particle {
	return Particle{
		Position: Vector2{x, y},
		Velocity: Vector2{windX * 0.5, 1.0},
		Mass:     0.5,
		Kind:     KindRaindrop,
		MaxAge:   20,
	}
}

// NewSnowflake builds a snowflake: light, buoyant, long-lived.
func NewSnowflake(x, y, windX float64) Particle {
	return Particle{
		Position:       Vector2{x, y},
		Velocity:       Vector2{windX * 0.3, 0.2},
		Mass:           0.1,
		BuoyancyFactor: 0.4,
		Kind:           KindSnowflake,
		MaxAge:         40,
	}
}

// NewHailstone builds a hailstone: heavy and fast, barely wind-deflected.
func NewHailstone(x, y, windX float64) Particle {
	return Particle{
		Position: Vector2{x, y},
		Velocity: Vector2{windX * 0.2, 2.0},
		Mass:     1.5,
		Kind:     KindHailstone,
		MaxAge:   15,
	}
}

// NewSpark builds a lightning spark: short-lived, initially rising.
func NewSpark(x, y, vx, vy float64) Particle {
	return Particle{
		Position:       Vector2{x, y},
		Velocity:       Vector2{vx, vy},
		Mass:           0.05,
		BuoyancyFactor: 1.2, // rises: buoyancy exceeds weight
		Kind:           KindSpark,
		MaxAge:         2,
	}
}

// NewDust builds a dust mote for sandstorm conditions: near-neutral
// buoyancy, carried almost entirely by wind.
func NewDust(x, y, windX float64) Particle {
	return Particle{
		Position:       Vector2{x, y},
		Velocity:       Vector2{windX, 0},
		Mass:           0.08,
		BuoyancyFactor: 0.9,
		Kind:           KindDust,
		MaxAge:         30,
	}
}
