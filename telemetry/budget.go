// Package telemetry measures per-frame cost and adaptively throttles
// simulation quality to hold a target frame rate, and exports frame and
// window statistics for offline analysis.
package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrInvalidBudget is wrapped by NewFrameBudget on malformed parameters.
var ErrInvalidBudget = errors.New("telemetry: invalid frame budget parameter")

// BudgetConfig configures the adaptive frame budget controller.
type BudgetConfig struct {
	// TargetFrame is the frame duration the controller tries to hold.
	TargetFrame time.Duration

	// Smoothing is the EWMA factor applied to frame times, in (0, 1].
	// Defaults to 0.2.
	Smoothing float64

	// OverMargin: the average counts as over budget when it exceeds
	// target * OverMargin. Must be >= 1. Defaults to 1.10.
	OverMargin float64

	// UnderMargin: the average counts as comfortably under budget when it
	// is below target * UnderMargin. Must be in (0, 1). Defaults to 0.75.
	UnderMargin float64

	// DowngradeAfter is the number of consecutive over-budget frames
	// before the quality level drops. Defaults to 5.
	DowngradeAfter int

	// UpgradeAfter is the number of consecutive under-budget frames
	// before the quality level rises. Larger than DowngradeAfter so
	// recovery is slower than degradation. Defaults to 30.
	UpgradeAfter int

	// MaxQuality is the highest quality tier. Defaults to 4.
	MaxQuality int

	// BaseParticleCap is the particle cap published at full quality.
	BaseParticleCap int
}

func (c *BudgetConfig) applyDefaults() {
	if c.Smoothing == 0 {
		c.Smoothing = 0.2
	}
	if c.OverMargin == 0 {
		c.OverMargin = 1.10
	}
	if c.UnderMargin == 0 {
		c.UnderMargin = 0.75
	}
	if c.DowngradeAfter == 0 {
		c.DowngradeAfter = 5
	}
	if c.UpgradeAfter == 0 {
		c.UpgradeAfter = 30
	}
	if c.MaxQuality == 0 {
		c.MaxQuality = 4
	}
}

func (c BudgetConfig) validate() error {
	if c.TargetFrame <= 0 {
		return fmt.Errorf("%w: target frame %v", ErrInvalidBudget, c.TargetFrame)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("%w: smoothing %v, need (0, 1]", ErrInvalidBudget, c.Smoothing)
	}
	if c.OverMargin < 1 {
		return fmt.Errorf("%w: over margin %v, need >= 1", ErrInvalidBudget, c.OverMargin)
	}
	if c.UnderMargin <= 0 || c.UnderMargin >= 1 {
		return fmt.Errorf("%w: under margin %v, need (0, 1)", ErrInvalidBudget, c.UnderMargin)
	}
	if c.DowngradeAfter < 1 || c.UpgradeAfter < 1 {
		return fmt.Errorf("%w: hysteresis thresholds %d/%d", ErrInvalidBudget, c.DowngradeAfter, c.UpgradeAfter)
	}
	if c.MaxQuality < 1 {
		return fmt.Errorf("%w: max quality %d", ErrInvalidBudget, c.MaxQuality)
	}
	if c.BaseParticleCap < 1 {
		return fmt.Errorf("%w: base particle cap %d", ErrInvalidBudget, c.BaseParticleCap)
	}
	return nil
}

// QualityLimits are the derived limits published to consumers each frame.
// The budget never enforces them; the particle system and noise call sites
// are responsible for honoring them.
type QualityLimits struct {
	// ParticleCap is the maximum particle count consumers should spawn to.
	ParticleCap int

	// NoiseStride is the sampling stride for noise-textured visuals:
	// 1 = every cell, larger = coarser.
	NoiseStride int
}

// FrameBudget is a small hysteretic state machine: it folds frame times
// into an exponentially weighted rolling average and steps a discrete
// quality level down after DowngradeAfter consecutive over-budget frames,
// or up after UpgradeAfter consecutive under-budget frames. The distinct
// thresholds prevent every-frame oscillation. Mutated only by the render
// loop at frame boundaries.
type FrameBudget struct {
	cfg   BudgetConfig
	clock clockwork.Clock

	frameStart time.Time
	avgMS      float64
	seeded     bool

	quality    int
	overCount  int
	underCount int
}

// NewFrameBudget builds a controller using the real clock.
func NewFrameBudget(cfg BudgetConfig) (*FrameBudget, error) {
	return NewFrameBudgetWithClock(cfg, clockwork.NewRealClock())
}

// NewFrameBudgetWithClock builds a controller with an injected clock so
// tests can drive frame timing deterministically.
func NewFrameBudgetWithClock(cfg BudgetConfig, clock clockwork.Clock) (*FrameBudget, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &FrameBudget{
		cfg:     cfg,
		clock:   clock,
		quality: cfg.MaxQuality,
	}, nil
}

// BeginFrame marks the start of a frame.
func (b *FrameBudget) BeginFrame() {
	b.frameStart = b.clock.Now()
}

// EndFrame measures the frame just finished, records it, and returns the
// elapsed time.
func (b *FrameBudget) EndFrame() time.Duration {
	elapsed := b.clock.Now().Sub(b.frameStart)
	b.RecordFrameTime(elapsed)
	return elapsed
}

// RecordFrameTime folds a frame duration into the rolling average and runs
// the hysteresis state machine.
func (b *FrameBudget) RecordFrameTime(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	if !b.seeded {
		b.avgMS = ms
		b.seeded = true
	} else {
		b.avgMS += b.cfg.Smoothing * (ms - b.avgMS)
	}

	targetMS := float64(b.cfg.TargetFrame) / float64(time.Millisecond)
	switch {
	case b.avgMS > targetMS*b.cfg.OverMargin:
		b.overCount++
		b.underCount = 0
		if b.overCount >= b.cfg.DowngradeAfter {
			if b.quality > 0 {
				b.quality--
			}
			b.overCount = 0
		}
	case b.avgMS < targetMS*b.cfg.UnderMargin:
		b.underCount++
		b.overCount = 0
		if b.underCount >= b.cfg.UpgradeAfter {
			if b.quality < b.cfg.MaxQuality {
				b.quality++
			}
			b.underCount = 0
		}
	default:
		// Between the margins: neither streak survives.
		b.overCount = 0
		b.underCount = 0
	}
}

// Quality returns the current discrete quality level, 0..MaxQuality.
func (b *FrameBudget) Quality() int {
	return b.quality
}

// RollingAverage returns the current EWMA of frame times.
func (b *FrameBudget) RollingAverage() time.Duration {
	return time.Duration(b.avgMS * float64(time.Millisecond))
}

// Limits returns the derived limits for the current quality level. The
// particle cap scales linearly with the tier; the noise stride coarsens as
// quality drops.
func (b *FrameBudget) Limits() QualityLimits {
	tiers := b.cfg.MaxQuality + 1
	cap := b.cfg.BaseParticleCap * (b.quality + 1) / tiers
	if cap < 1 {
		cap = 1
	}
	return QualityLimits{
		ParticleCap: cap,
		NoiseStride: 1 + (b.cfg.MaxQuality - b.quality),
	}
}
