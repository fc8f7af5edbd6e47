package noise

import "fmt"

// FractalConfig configures fractal Brownian motion summation.
type FractalConfig struct {
	// Octaves is the number of noise layers summed, at least 1.
	Octaves int

	// Persistence multiplies the amplitude each octave; in (0, 1].
	Persistence float64

	// Lacunarity multiplies the frequency each octave; greater than 1.
	Lacunarity float64

	// Scale multiplies input coordinates before sampling; greater than 0.
	Scale float64
}

// Fractal sums several octaves of a base field at increasing frequency and
// decreasing amplitude, normalized back to [-1, 1]. With Octaves = 1 and
// Scale = 1 the output equals the base field's raw sample.
type Fractal struct {
	base Field
	cfg  FractalConfig
}

// NewFractal builds a fractal field over base. Invalid parameters fail here,
// never silently clamped.
func NewFractal(base Field, cfg FractalConfig) (*Fractal, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base field", ErrInvalidConfig)
	}
	if cfg.Octaves < 1 {
		return nil, fmt.Errorf("%w: octaves %d, need >= 1", ErrInvalidConfig, cfg.Octaves)
	}
	if cfg.Persistence <= 0 || cfg.Persistence > 1 {
		return nil, fmt.Errorf("%w: persistence %v, need (0, 1]", ErrInvalidConfig, cfg.Persistence)
	}
	if cfg.Lacunarity <= 1 {
		return nil, fmt.Errorf("%w: lacunarity %v, need > 1", ErrInvalidConfig, cfg.Lacunarity)
	}
	if cfg.Scale <= 0 {
		return nil, fmt.Errorf("%w: scale %v, need > 0", ErrInvalidConfig, cfg.Scale)
	}
	return &Fractal{base: base, cfg: cfg}, nil
}

// Sample returns fBm noise at (x, y) in [-1, 1].
func (f *Fractal) Sample(x, y float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxAmplitude := 0.0

	for i := 0; i < f.cfg.Octaves; i++ {
		total += f.base.Sample(x*frequency*f.cfg.Scale, y*frequency*f.cfg.Scale) * amplitude
		maxAmplitude += amplitude
		amplitude *= f.cfg.Persistence
		frequency *= f.cfg.Lacunarity
	}

	return total / maxAmplitude
}
