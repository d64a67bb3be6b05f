// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Weapons   WeaponsConfig   `yaml:"weapons"`
	Drones    DronesConfig    `yaml:"drones"`
	Turrets   TurretsConfig   `yaml:"turrets"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT            float64 `yaml:"dt"`
	GridCellSize  float64 `yaml:"grid_cell_size"`
	LinearDamping float64 `yaml:"linear_damping"` // Per-tick velocity retention factor
}

// WeaponsConfig holds shared projectile parameters.
type WeaponsConfig struct {
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileRadius float64 `yaml:"projectile_radius"`
	Damage           int32   `yaml:"damage"`
	Lifetime         float64 `yaml:"lifetime"` // Seconds before a shot expires
}

// DoctrineConfig holds firing envelope parameters. The angular fire
// threshold is target_radius/distance, raised to threshold_floor. A
// near_distance of 0 applies the floor at all ranges; a positive value
// restricts it to closer targets. A max_range of 0 disables the range gate.
type DoctrineConfig struct {
	TargetRadius   float64 `yaml:"target_radius"`
	ThresholdFloor float64 `yaml:"threshold_floor"`
	NearDistance   float64 `yaml:"near_distance"`
	MaxRange       float64 `yaml:"max_range"`
}

// DroneClassConfig defines a drone hull template.
type DroneClassConfig struct {
	HitPoints        int32   `yaml:"hitpoints"`
	RotationSpeedDeg float64 `yaml:"rotation_speed_deg"` // Max turn rate in degrees per second
	Guns             int     `yaml:"guns"`
	RateOfFire       float64 `yaml:"rate_of_fire"` // Shots per second per gun
	BodyRadius       float64 `yaml:"body_radius"`
}

// DronesConfig holds parameters shared by all drone hulls.
type DronesConfig struct {
	Praetor     DroneClassConfig `yaml:"praetor"`
	Infiltrator DroneClassConfig `yaml:"infiltrator"`
	Doctrine    DoctrineConfig   `yaml:"doctrine"`
	Thrust      float64          `yaml:"thrust"`
	Mass        float64          `yaml:"mass"`
	MaxSpeed    float64          `yaml:"max_speed"`
	Standoff    float64          `yaml:"standoff"` // Cut thrust inside this distance to the target
	TurnGain    float64          `yaml:"turn_gain"`
}

// TurretsConfig holds stationary turret parameters.
type TurretsConfig struct {
	HitPoints        int32          `yaml:"hitpoints"`
	RotationSpeedDeg float64        `yaml:"rotation_speed_deg"`
	Barrels          int            `yaml:"barrels"`
	RateOfFire       float64        `yaml:"rate_of_fire"`
	BodyRadius       float64        `yaml:"body_radius"`
	Doctrine         DoctrineConfig `yaml:"doctrine"`
}

// SpawnGroupConfig places a group of entities in the scenario.
type SpawnGroupConfig struct {
	Class    string     `yaml:"class"` // Drone hull name; ignored for turrets and derelicts
	Count    int        `yaml:"count"`
	Position [3]float64 `yaml:"position"` // Group center
	Spacing  float64    `yaml:"spacing"`  // Jitter radius around the center
	Facing   [3]float64 `yaml:"facing"`   // Initial forward direction; zero keeps the default
	Radius   float64    `yaml:"radius"`   // Body radius override for derelicts
}

// ScenarioConfig describes the initial battlefield.
type ScenarioConfig struct {
	Drones    []SpawnGroupConfig `yaml:"drones"`
	Turrets   []SpawnGroupConfig `yaml:"turrets"`
	Derelicts []SpawnGroupConfig `yaml:"derelicts"`
}

// TelemetryConfig holds data collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per aggregation window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks per perf sample window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32               float32 // Physics.DT as float32
	ProjectileSpeed32  float32
	ProjectileRadius32 float32
	DroneRotPraetor    float32 // Praetor turn rate in radians per second
	DroneRotInfil      float32 // Infiltrator turn rate in radians per second
	TurretRot          float32 // Turret slew rate in radians per second
	MaxBodyRadius32    float32 // Largest body radius across all templates
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ProjectileSpeed32 = float32(c.Weapons.ProjectileSpeed)
	c.Derived.ProjectileRadius32 = float32(c.Weapons.ProjectileRadius)
	c.Derived.DroneRotPraetor = float32(c.Drones.Praetor.RotationSpeedDeg * math.Pi / 180)
	c.Derived.DroneRotInfil = float32(c.Drones.Infiltrator.RotationSpeedDeg * math.Pi / 180)
	c.Derived.TurretRot = float32(c.Turrets.RotationSpeedDeg * math.Pi / 180)

	maxRadius := c.Drones.Praetor.BodyRadius
	if c.Drones.Infiltrator.BodyRadius > maxRadius {
		maxRadius = c.Drones.Infiltrator.BodyRadius
	}
	if c.Turrets.BodyRadius > maxRadius {
		maxRadius = c.Turrets.BodyRadius
	}
	for _, group := range c.Scenario.Derelicts {
		if group.Radius > maxRadius {
			maxRadius = group.Radius
		}
	}
	c.Derived.MaxBodyRadius32 = float32(maxRadius)
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
