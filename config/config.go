// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Noise      NoiseConfig      `yaml:"noise"`
	Weather    WeatherConfig    `yaml:"weather"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere"`
	Budget     BudgetConfig     `yaml:"budget"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. Dimensions are in character cells.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can be larger than the screen; the margin keeps particles alive a
// little past the edges so wind can blow them back in.
type WorldConfig struct {
	Width  int     `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int     `yaml:"height"` // World height in world units (0 = use screen height)
	Margin float64 `yaml:"margin"` // Cull margin beyond the bounds
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	Integrator   string  `yaml:"integrator"` // euler, verlet, or rk4
	Substeps     int     `yaml:"substeps"`
	MaxParticles int     `yaml:"max_particles"`
	MaxVelocity  float64 `yaml:"max_velocity"` // 0 disables the clamp
	Gravity      float64 `yaml:"gravity"`
	DragCoeff    float64 `yaml:"drag_coeff"`
}

// NoiseConfig holds procedural field generation parameters.
type NoiseConfig struct {
	Seed         int64   `yaml:"seed"`
	Backend      string  `yaml:"backend"` // perlin or simplex
	Scale        float64 `yaml:"scale"`
	Octaves      int     `yaml:"octaves"`
	Persistence  float64 `yaml:"persistence"`
	Lacunarity   float64 `yaml:"lacunarity"`
	WarpStrength float64 `yaml:"warp_strength"` // 0 disables domain warping
	TimeScale    float64 `yaml:"time_scale"`    // Speed of turbulence animation
	SpatialScale float64 `yaml:"spatial_scale"` // World units to noise units
}

// WeatherConfig holds the initial weather condition and emitter tuning.
type WeatherConfig struct {
	Condition string  `yaml:"condition"`  // clear, drizzle, rain, storm, snow, hail, dust
	SpawnRate float64 `yaml:"spawn_rate"` // Particles per second at full intensity
}

// AtmosphereConfig holds the initial atmospheric state and the cadence of
// the mock weather feed.
type AtmosphereConfig struct {
	TemperatureC      float64 `yaml:"temperature_c"`
	PressureHPa       float64 `yaml:"pressure_hpa"`
	HumidityPercent   float64 `yaml:"humidity_percent"`
	WindSpeedMS       float64 `yaml:"wind_speed_ms"`
	WindDirectionDeg  float64 `yaml:"wind_direction_deg"`
	CloudCoverPercent float64 `yaml:"cloud_cover_percent"`
	Daytime           bool    `yaml:"daytime"`

	PublishIntervalSec float64 `yaml:"publish_interval_sec"` // Mock feed cadence
	JitterScale        float64 `yaml:"jitter_scale"`         // Mock feed perturbation size
}

// BudgetConfig holds the adaptive quality controller parameters.
type BudgetConfig struct {
	Smoothing      float64 `yaml:"smoothing"`
	OverMargin     float64 `yaml:"over_margin"`
	UnderMargin    float64 `yaml:"under_margin"`
	DowngradeAfter int     `yaml:"downgrade_after"`
	UpgradeAfter   int     `yaml:"upgrade_after"`
	MaxQuality     int     `yaml:"max_quality"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowSec      float64 `yaml:"stats_window_sec"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	RenderStatsWindow   int     `yaml:"render_stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT          float64       // Fixed timestep, 1 / TargetFPS
	TargetFrame time.Duration // Frame budget target
	WorldW      float64       // Effective world width
	WorldH      float64       // Effective world height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations that would produce undefined simulation
// behavior. Errors here fail startup instead of surfacing mid-run.
func (c *Config) validate() error {
	if c.Screen.TargetFPS < 1 {
		return fmt.Errorf("config: screen.target_fps must be >= 1, got %d", c.Screen.TargetFPS)
	}
	if c.Physics.MaxParticles < 1 {
		return fmt.Errorf("config: physics.max_particles must be >= 1, got %d", c.Physics.MaxParticles)
	}
	if c.Physics.Substeps < 1 {
		return fmt.Errorf("config: physics.substeps must be >= 1, got %d", c.Physics.Substeps)
	}
	switch c.Physics.Integrator {
	case "euler", "verlet", "rk4":
	default:
		return fmt.Errorf("config: physics.integrator must be euler, verlet, or rk4, got %q", c.Physics.Integrator)
	}
	switch c.Noise.Backend {
	case "perlin", "simplex":
	default:
		return fmt.Errorf("config: noise.backend must be perlin or simplex, got %q", c.Noise.Backend)
	}
	if c.Noise.Octaves < 1 {
		return fmt.Errorf("config: noise.octaves must be >= 1, got %d", c.Noise.Octaves)
	}
	if c.Noise.Persistence <= 0 || c.Noise.Persistence > 1 {
		return fmt.Errorf("config: noise.persistence must be in (0, 1], got %v", c.Noise.Persistence)
	}
	if c.Noise.Lacunarity <= 1 {
		return fmt.Errorf("config: noise.lacunarity must be > 1, got %v", c.Noise.Lacunarity)
	}
	if c.Noise.Scale <= 0 {
		return fmt.Errorf("config: noise.scale must be > 0, got %v", c.Noise.Scale)
	}
	if c.Noise.WarpStrength < 0 {
		return fmt.Errorf("config: noise.warp_strength must be >= 0, got %v", c.Noise.WarpStrength)
	}
	if c.Budget.OverMargin < 1 {
		return fmt.Errorf("config: budget.over_margin must be >= 1, got %v", c.Budget.OverMargin)
	}
	if c.Budget.UnderMargin <= 0 || c.Budget.UnderMargin >= 1 {
		return fmt.Errorf("config: budget.under_margin must be in (0, 1), got %v", c.Budget.UnderMargin)
	}
	if c.Budget.DowngradeAfter < 1 || c.Budget.UpgradeAfter < 1 {
		return fmt.Errorf("config: budget thresholds must be >= 1, got %d/%d", c.Budget.DowngradeAfter, c.Budget.UpgradeAfter)
	}
	if c.Weather.SpawnRate < 0 {
		return fmt.Errorf("config: weather.spawn_rate must be >= 0, got %v", c.Weather.SpawnRate)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.TargetFrame = time.Second / time.Duration(c.Screen.TargetFPS)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
