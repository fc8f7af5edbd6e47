// Package noise provides deterministic procedural noise fields: Perlin,
// simplex, fractal (fBm) summation, and domain warping. Every generator
// builds its tables once from an explicit seed and is afterwards a pure
// function of coordinates, so identical seed and coordinates always yield
// identical output.
package noise

import "errors"

// ErrInvalidConfig is wrapped by constructors when given malformed
// parameters. Once constructed, Sample never fails.
var ErrInvalidConfig = errors.New("noise: invalid configuration")

// Field is a 2D scalar noise field with output in [-1, 1].
type Field interface {
	Sample(x, y float64) float64
}

// fade is the quintic interpolation curve 6t^5 - 15t^4 + 10t^3. Its first
// and second derivatives vanish at t=0 and t=1, giving C2 continuity.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// lerp is linear interpolation a + t(b - a).
func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
