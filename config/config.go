// Package config provides configuration loading and access for the
// ecosystem simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Plant      PlantConfig      `yaml:"plant"`
	Herbivore  HerbivoreConfig  `yaml:"herbivore"`
	Carnivore  CarnivoreConfig  `yaml:"carnivore"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the bounded square world the creatures inhabit.
// Both axes span [min, max]; positions outside are clamped by the loop.
type WorldConfig struct {
	Min    float64 `yaml:"min"`    // Lower world bound on both axes
	Max    float64 `yaml:"max"`    // Upper world bound on both axes
	Margin float64 `yaml:"margin"` // "Near boundary" distance for soft repulsion
}

// PhysicsConfig holds tick timing parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`             // Seconds per simulation tick
	GridCellSize float64 `yaml:"grid_cell_size"` // Spatial grid cell size in world units
}

// DrivesConfig holds the drive-threshold policy for one archetype.
// Reproduction thresholds are fractions of the max pool; the carnivore
// hunt trigger is an absolute hunger value, preserved as-is from the
// original balance.
type DrivesConfig struct {
	ReproHealthFrac float64 `yaml:"repro_health_frac"` // Reproduce when health > this fraction of max
	ReproEnergyFrac float64 `yaml:"repro_energy_frac"` // ... and energy > this fraction of max
	EatHungerFrac   float64 `yaml:"eat_hunger_frac"`   // Eat when hunger > this fraction of max (herbivore)
	HuntHungerMin   float64 `yaml:"hunt_hunger_min"`   // Hunt when hunger > this absolute value (carnivore)
}

// StockConfig holds the vitals pools and loop-side economy for one
// archetype. The behavior engine never reads these; the game loop does.
type StockConfig struct {
	MaxHealth     float64 `yaml:"max_health"`
	MaxEnergy     float64 `yaml:"max_energy"`
	MaxHunger     float64 `yaml:"max_hunger"`
	HungerRate    float64 `yaml:"hunger_rate"`    // Hunger gained per second
	EnergyRegen   float64 `yaml:"energy_regen"`   // Energy regained per second while fed
	StarveDamage  float64 `yaml:"starve_damage"`  // Health lost per second at full hunger
	ReproCooldown float64 `yaml:"repro_cooldown"` // Seconds between reproductions
}

// PlantConfig holds plant parameters. Plants do not move; their only
// behavior inputs are the drive thresholds.
type PlantConfig struct {
	Drives         DrivesConfig `yaml:"drives"`
	Stock          StockConfig  `yaml:"stock"`
	Photosynthesis float64      `yaml:"photosynthesis"` // Energy gained per second
	Species        []string     `yaml:"species"`
}

// HerbivoreConfig holds herbivore behavior and economy parameters.
type HerbivoreConfig struct {
	Speed          float64 `yaml:"speed"`            // World units per second
	FleeTrigger    float64 `yaml:"flee_trigger"`     // Predator distance that starts a flee
	FleeDuration   float64 `yaml:"flee_duration"`    // Seconds a flee persists without re-trigger
	FleeBoost      float64 `yaml:"flee_boost"`       // Speed multiplier while fleeing
	WanderInterval float64 `yaml:"wander_interval"`  // Seconds between wander re-picks
	FoodRange      float64 `yaml:"food_range"`       // Plant detection radius
	FoodBoost      float64 `yaml:"food_boost"`       // Speed multiplier while approaching food
	Perception     float64 `yaml:"perception"`       // Loop-side nearby-snapshot radius
	EatRange       float64 `yaml:"eat_range"`        // Distance at which grazing lands
	EatRestore     float64 `yaml:"eat_restore"`      // Hunger removed per meal
	GrazeDamage    float64 `yaml:"graze_damage"`     // Health removed from the grazed plant

	Drives  DrivesConfig `yaml:"drives"`
	Stock   StockConfig  `yaml:"stock"`
	Species []string     `yaml:"species"`
}

// CarnivoreConfig holds carnivore behavior and economy parameters.
type CarnivoreConfig struct {
	Speed          float64 `yaml:"speed"`            // World units per second
	HuntRange      float64 `yaml:"hunt_range"`       // Base prey pursuit radius
	WanderInterval float64 `yaml:"wander_interval"`  // Seconds between wander re-picks
	PackSpeedBoost float64 `yaml:"pack_speed_boost"` // Hunt speed multiplier in pack mode
	PackRangeBoost float64 `yaml:"pack_range_boost"` // Hunt range multiplier in pack mode
	PackWindow     float64 `yaml:"pack_window"`      // Seconds pack mode persists without neighbors
	Perception     float64 `yaml:"perception"`       // Loop-side nearby-snapshot radius
	BiteRange      float64 `yaml:"bite_range"`       // Distance at which a bite lands
	BiteDamage     float64 `yaml:"bite_damage"`      // Health removed from the bitten prey
	KillFeed       float64 `yaml:"kill_feed"`        // Hunger removed when a bite kills

	Drives  DrivesConfig `yaml:"drives"`
	Stock   StockConfig  `yaml:"stock"`
	Species []string     `yaml:"species"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	InitialPlants     int `yaml:"initial_plants"`
	InitialHerbivores int `yaml:"initial_herbivores"`
	InitialCarnivores int `yaml:"initial_carnivores"`
	MaxPlants         int `yaml:"max_plants"`
	MaxHerbivores     int `yaml:"max_herbivores"`
	MaxCarnivores     int `yaml:"max_carnivores"`
	RespawnFloor      int `yaml:"respawn_floor"`  // Respawn when an archetype drops below this
	RespawnCount      int `yaml:"respawn_count"`  // How many to respawn at once
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulation per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	WorldMin  float32 // World.Min as float32
	WorldMax  float32 // World.Max as float32
	Margin    float32 // World.Margin as float32
	CenterX   float32 // World center, both axes
	CenterY   float32
	WorldSize float32 // Max - Min
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
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

// Set installs a prepared configuration as the global one. Used by
// tooling that mutates parameters between simulation runs.
func Set(cfg *Config) {
	cfg.computeDerived()
	global = cfg
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.WorldMin = float32(c.World.Min)
	c.Derived.WorldMax = float32(c.World.Max)
	c.Derived.Margin = float32(c.World.Margin)
	c.Derived.WorldSize = float32(c.World.Max - c.World.Min)
	c.Derived.CenterX = float32((c.World.Min + c.World.Max) / 2)
	c.Derived.CenterY = c.Derived.CenterX

	if len(c.Plant.Species) == 0 {
		c.Plant.Species = []string{"fern"}
	}
	if len(c.Herbivore.Species) == 0 {
		c.Herbivore.Species = []string{"rabbit"}
	}
	if len(c.Carnivore.Species) == 0 {
		c.Carnivore.Species = []string{"wolf"}
	}
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
