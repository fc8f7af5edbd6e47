// Package physics implements the particle simulation core: 2D vector math,
// force generators, interchangeable integrators, and a capacity-bounded
// particle system.
package physics

import "math"

// Vector2 is a 2D vector value type. Operations return new values and never
// mutate the receiver.
type Vector2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Div returns v divided by s, or the zero vector when s is zero.
func (v Vector2) Div(s float64) Vector2 {
	if s == 0 {
		return Vector2{}
	}
	return Vector2{v.X / s, v.Y / s}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// Magnitude returns the vector length.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagnitudeSquared returns the squared length, avoiding the sqrt.
func (v Vector2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns a unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vector2) Normalized() Vector2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2{}
	}
	return v.Div(mag)
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Clamped returns v with its magnitude limited to maxMagnitude.
func (v Vector2) Clamped(maxMagnitude float64) Vector2 {
	if v.MagnitudeSquared() > maxMagnitude*maxMagnitude {
		return v.Normalized().Scale(maxMagnitude)
	}
	return v
}

// FromAngle builds a vector from an angle in radians and a magnitude.
func FromAngle(angle, magnitude float64) Vector2 {
	return Vector2{math.Cos(angle) * magnitude, math.Sin(angle) * magnitude}
}
