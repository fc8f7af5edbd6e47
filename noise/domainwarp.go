package noise

import (
	"fmt"
	"math"
)

// Fixed offsets decorrelate the two warp components.
const (
	warpOffsetX = 5.2
	warpOffsetY = 1.3
)

// DomainWarp distorts a field's sampling coordinates with the field's own
// output, producing organic swirl. Each sample costs three base samples.
type DomainWarp struct {
	base     Field
	strength float64
}

// NewDomainWarp builds a domain-warped view of base. Strength must be finite
// and non-negative; zero is a pass-through.
func NewDomainWarp(base Field, strength float64) (*DomainWarp, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base field", ErrInvalidConfig)
	}
	if math.IsNaN(strength) || math.IsInf(strength, 0) || strength < 0 {
		return nil, fmt.Errorf("%w: warp strength %v", ErrInvalidConfig, strength)
	}
	return &DomainWarp{base: base, strength: strength}, nil
}

// Sample returns the warped field value at (x, y).
func (w *DomainWarp) Sample(x, y float64) float64 {
	wx := w.base.Sample(x, y) * w.strength
	wy := w.base.Sample(x+warpOffsetX, y+warpOffsetY) * w.strength
	return w.base.Sample(x+wx, y+wy)
}
