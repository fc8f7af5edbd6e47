package game

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/stormglass/physics"
)

// Condition is the named weather preset driving the particle emitter.
type Condition uint8

const (
	Clear Condition = iota
	Drizzle
	Rain
	Storm
	Snow
	Hail
	Dust
)

var conditionNames = [...]string{"clear", "drizzle", "rain", "storm", "snow", "hail", "dust"}

// String returns the lowercase condition name.
func (c Condition) String() string {
	if int(c) >= len(conditionNames) {
		return "unknown"
	}
	return conditionNames[c]
}

// ParseCondition parses a condition name, case-insensitively.
func ParseCondition(s string) (Condition, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range conditionNames {
		if n == name {
			return Condition(i), nil
		}
	}
	return Clear, fmt.Errorf("unknown weather condition %q", s)
}

// emitter describes how a condition spawns particles: which kind, at what
// rate relative to the configured base rate, and how strongly the ambient
// wind deflects new particles.
type emitter struct {
	kind         physics.Kind
	rateFactor   float64
	windCoupling float64
}

// emitterFor returns the emitter settings for a condition. Clear spawns
// nothing.
func emitterFor(c Condition) (emitter, bool) {
	switch c {
	case Drizzle:
		return emitter{kind: physics.KindRaindrop, rateFactor: 0.3, windCoupling: 0.5}, true
	case Rain:
		return emitter{kind: physics.KindRaindrop, rateFactor: 1.0, windCoupling: 0.7}, true
	case Storm:
		return emitter{kind: physics.KindRaindrop, rateFactor: 2.5, windCoupling: 1.0}, true
	case Snow:
		return emitter{kind: physics.KindSnowflake, rateFactor: 0.6, windCoupling: 1.0}, true
	case Hail:
		return emitter{kind: physics.KindHailstone, rateFactor: 0.8, windCoupling: 0.4}, true
	case Dust:
		return emitter{kind: physics.KindDust, rateFactor: 0.5, windCoupling: 1.0}, true
	default:
		return emitter{}, false
	}
}
