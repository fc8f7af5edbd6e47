package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// Simplex generates simplex-lattice noise, which is more isotropic than the
// square-grid Perlin variant. It wraps a seeded OpenSimplex source; output
// is in [-1, 1] and is a pure function of (seed, coordinates).
type Simplex struct {
	src opensimplex.Noise
}

// NewSimplex creates a simplex noise generator for the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{src: opensimplex.New(seed)}
}

// Sample returns 2D simplex noise at (x, y) in [-1, 1].
func (s *Simplex) Sample(x, y float64) float64 {
	return s.src.Eval2(x, y)
}

// Sample3 returns 3D simplex noise at (x, y, z) in [-1, 1].
func (s *Simplex) Sample3(x, y, z float64) float64 {
	return s.src.Eval3(x, y, z)
}
