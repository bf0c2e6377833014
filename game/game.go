// Package game owns the simulation loop: the ECS world, the spatial
// index, per-creature behavior strategies, and population bookkeeping.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/Jonasi-Deetens/ecodungeon/behavior"
	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
	"github.com/Jonasi-Deetens/ecodungeon/systems"
	"github.com/Jonasi-Deetens/ecodungeon/telemetry"
)

// Options configures a simulation run.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	StepsPerUpdate int // Simulation steps per Update call (minimum 1)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	dirs  behavior.DirectionSource

	entityMapper *ecs.Map3[components.Position, components.Vitals, components.Creature]
	entityFilter *ecs.Filter3[components.Position, components.Vitals, components.Creature]
	posMap       *ecs.Map1[components.Position]
	vitalsMap    *ecs.Map1[components.Vitals]
	creatureMap  *ecs.Map1[components.Creature]

	// Strategy storage (per creature by ID). Strategies carry mutable
	// state and are never shared between creatures.
	strategies map[uint32]behavior.Strategy

	grid *systems.SpatialGrid

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	tick   int32
	nextID uint32
	counts [3]int
	speed  int

	// Scratch buffers reused across ticks.
	neighborBuf []systems.Neighbor
	snapshotBuf []components.EntitySnapshot
}

// NewGame creates a simulation from the loaded configuration.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing run config: %w", err)
	}

	speed := opts.StepsPerUpdate
	if speed < 1 {
		speed = 1
	}

	g := &Game{
		world:      world,
		rng:        rng,
		dirs:       behavior.NewRandSource(rng),
		strategies: make(map[uint32]behavior.Strategy),

		entityMapper: ecs.NewMap3[components.Position, components.Vitals, components.Creature](world),
		entityFilter: ecs.NewFilter3[components.Position, components.Vitals, components.Creature](world),
		posMap:       ecs.NewMap1[components.Position](world),
		vitalsMap:    ecs.NewMap1[components.Vitals](world),
		creatureMap:  ecs.NewMap1[components.Creature](world),

		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:    output,
		logStats:  opts.LogStats,
		speed:     speed,
	}

	g.grid = systems.NewSpatialGrid(
		cfg.Derived.WorldMin, cfg.Derived.WorldMin,
		cfg.Derived.WorldMax, cfg.Derived.WorldMax,
		float32(cfg.Physics.GridCellSize),
	)

	g.spawnInitialPopulation()

	slog.Info("simulation ready",
		"seed", opts.Seed,
		"plants", g.counts[components.ArchetypePlant],
		"herbivores", g.counts[components.ArchetypeHerbivore],
		"carnivores", g.counts[components.ArchetypeCarnivore],
	)

	return g, nil
}

// Update runs one or more simulation steps based on the speed setting.
func (g *Game) Update() {
	for i := 0; i < g.speed; i++ {
		g.Step()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Count returns the number of living creatures of one archetype.
func (g *Game) Count(arch components.Archetype) int {
	return g.counts[arch]
}

// Alive returns the total number of living creatures.
func (g *Game) Alive() int {
	return g.counts[0] + g.counts[1] + g.counts[2]
}

// Snapshot returns a point-in-time view of every living creature. This
// is the read surface for external renderers and tooling.
func (g *Game) Snapshot() []components.EntitySnapshot {
	out := make([]components.EntitySnapshot, 0, g.Alive())

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vitals, creature := query.Get()
		if vitals.Health <= 0 {
			continue
		}
		out = append(out, components.EntitySnapshot{
			Archetype: creature.Archetype,
			Species:   creature.Species,
			Pos:       *pos,
		})
	}
	return out
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}
