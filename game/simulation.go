package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/Jonasi-Deetens/ecodungeon/behavior"
	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
	"github.com/Jonasi-Deetens/ecodungeon/systems"
	"github.com/Jonasi-Deetens/ecodungeon/telemetry"
)

// Step runs a single tick of the simulation.
func (g *Game) Step() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseSpatialGrid)
	g.rebuildSpatialGrid()

	g.perf.StartPhase(telemetry.PhaseBehavior)
	g.updateBehavior()

	g.perf.StartPhase(telemetry.PhaseFeeding)
	g.updateFeeding()

	g.perf.StartPhase(telemetry.PhaseVitals)
	g.updateVitals()

	g.perf.StartPhase(telemetry.PhaseReproduction)
	g.updateReproduction()

	g.perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
	g.tick++
}

// rebuildSpatialGrid reindexes all living creatures.
func (g *Game) rebuildSpatialGrid() {
	g.grid.Clear()

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vitals, _ := query.Get()
		if vitals.Health > 0 {
			g.grid.Insert(query.Entity(), pos.X, pos.Y)
		}
	}
}

// updateBehavior runs each mobile creature's strategy and applies the
// resulting movement, clamped to the world bounds.
func (g *Game) updateBehavior() {
	cfg := config.Cfg()
	dt := cfg.Derived.DT32

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vitals, creature := query.Get()

		// Plants hold position; skip the neighbor query entirely.
		if vitals.Health <= 0 || creature.Archetype == components.ArchetypePlant {
			continue
		}

		strategy, ok := g.strategies[creature.ID]
		if !ok {
			continue
		}

		perception := float32(cfg.Herbivore.Perception)
		if creature.Archetype == components.ArchetypeCarnivore {
			perception = float32(cfg.Carnivore.Perception)
		}

		nearby := g.snapshotNeighbors(query.Entity(), pos.X, pos.Y, perception)

		*pos = clampToWorld(strategy.Update(dt, *pos, nearby))
	}
}

// snapshotNeighbors queries the grid around (x, y) and converts the hits
// to snapshots ordered nearest-first. The returned slice is only valid
// until the next call.
func (g *Game) snapshotNeighbors(self ecs.Entity, x, y, radius float32) []components.EntitySnapshot {
	g.neighborBuf = g.grid.QueryRadiusInto(g.neighborBuf[:0], x, y, radius, self, g.posMap)
	systems.SortByDistance(g.neighborBuf)

	g.snapshotBuf = g.snapshotBuf[:0]
	for _, n := range g.neighborBuf {
		creature := g.creatureMap.Get(n.E)
		pos := g.posMap.Get(n.E)
		if creature == nil || pos == nil {
			continue
		}
		g.snapshotBuf = append(g.snapshotBuf, components.EntitySnapshot{
			Archetype: creature.Archetype,
			Species:   creature.Species,
			Pos:       *pos,
		})
	}
	return g.snapshotBuf
}

// updateFeeding handles herbivore grazing and carnivore attacks.
func (g *Game) updateFeeding() {
	cfg := config.Cfg()

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vitals, creature := query.Get()
		if vitals.Health <= 0 {
			continue
		}

		strategy, ok := g.strategies[creature.ID]
		if !ok {
			continue
		}

		switch creature.Archetype {
		case components.ArchetypeHerbivore:
			if !strategy.ShouldEat(vitals.Hunger, vitals.MaxHunger) {
				continue
			}
			g.grazeNearestPlant(query.Entity(), pos, vitals, creature, float32(cfg.Herbivore.EatRange))

		case components.ArchetypeCarnivore:
			g.biteNearestPrey(query.Entity(), pos, vitals, creature, strategy, cfg)
		}
	}
}

// grazeNearestPlant eats the nearest living plant in range, if any.
func (g *Game) grazeNearestPlant(self ecs.Entity, pos *components.Position, vitals *components.Vitals, creature *components.Creature, eatRange float32) {
	g.neighborBuf = g.grid.QueryRadiusInto(g.neighborBuf[:0], pos.X, pos.Y, eatRange, self, g.posMap)
	systems.SortByDistance(g.neighborBuf)

	for _, n := range g.neighborBuf {
		target := g.creatureMap.Get(n.E)
		if target == nil || target.Archetype != components.ArchetypePlant {
			continue
		}
		targetVitals := g.vitalsMap.Get(n.E)
		if targetVitals == nil || targetVitals.Health <= 0 {
			continue
		}

		killed := systems.Graze(vitals, targetVitals)
		g.collector.RecordGraze()
		if killed {
			slog.Debug("plant consumed", "eater", creature.ID, "species", target.Species)
		}
		return // one meal per tick
	}
}

// biteNearestPrey attacks the nearest living herbivore in bite range if
// the hunt drive is active.
func (g *Game) biteNearestPrey(self ecs.Entity, pos *components.Position, vitals *components.Vitals, creature *components.Creature, strategy behavior.Strategy, cfg *config.Config) {
	// The hunt drive considers prey at perception range; landing a bite
	// requires much closer contact.
	prey := g.snapshotNeighbors(self, pos.X, pos.Y, float32(cfg.Carnivore.Perception))
	preyOnly := prey[:0]
	for _, s := range prey {
		if s.Archetype == components.ArchetypeHerbivore {
			preyOnly = append(preyOnly, s)
		}
	}

	if !strategy.ShouldHunt(vitals.Hunger, vitals.MaxHunger, preyOnly) {
		return
	}
	g.collector.RecordBiteAttempt()

	biteRange := float32(cfg.Carnivore.BiteRange)
	g.neighborBuf = g.grid.QueryRadiusInto(g.neighborBuf[:0], pos.X, pos.Y, biteRange, self, g.posMap)
	systems.SortByDistance(g.neighborBuf)

	for _, n := range g.neighborBuf {
		target := g.creatureMap.Get(n.E)
		if target == nil || target.Archetype != components.ArchetypeHerbivore {
			continue
		}
		targetVitals := g.vitalsMap.Get(n.E)
		if targetVitals == nil || targetVitals.Health <= 0 {
			continue
		}

		killed := systems.Bite(vitals, targetVitals)
		g.collector.RecordBiteHit()
		if killed {
			g.collector.RecordKill()
			slog.Debug("kill", "hunter", creature.ID, "prey", target.ID, "species", target.Species)
		}
		return // one bite per tick
	}
}

// updateVitals applies metabolism and decrements reproduction cooldowns.
func (g *Game) updateVitals() {
	dt := config.Cfg().Derived.DT32

	query := g.entityFilter.Query()
	for query.Next() {
		_, vitals, creature := query.Get()
		if vitals.Health <= 0 {
			continue
		}

		systems.UpdateVitals(vitals, creature.Archetype, dt)

		if creature.ReproCooldown > 0 {
			creature.ReproCooldown -= dt
			if creature.ReproCooldown < 0 {
				creature.ReproCooldown = 0
			}
		}
	}
}

// updateReproduction spawns offspring for eligible creatures.
func (g *Game) updateReproduction() {
	cfg := config.Cfg()

	type birth struct {
		arch components.Archetype
		pos  components.Position
	}
	var births []birth
	pending := [3]int{}

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vitals, creature := query.Get()
		if vitals.Health <= 0 || creature.ReproCooldown > 0 {
			continue
		}

		arch := creature.Archetype
		if g.counts[arch]+pending[arch] >= maxCount(cfg, arch) {
			continue
		}

		strategy, ok := g.strategies[creature.ID]
		if !ok {
			continue
		}
		if !strategy.ShouldReproduce(vitals.Health, vitals.MaxHealth, vitals.Energy, vitals.MaxEnergy) {
			continue
		}

		// Reproducing halves the parent's energy and restarts the clock.
		systems.ReproSplit(vitals, arch)
		creature.ReproCooldown = float32(stockFor(arch).ReproCooldown)

		births = append(births, birth{arch: arch, pos: g.offspringPosition(*pos)})
		pending[arch]++
	}

	for _, b := range births {
		g.spawnCreature(b.arch, b.pos)
		g.collector.RecordBirth(b.arch)
	}
}

// cleanupDead removes dead creatures and their strategies, then respawns
// archetypes that have collapsed below the floor.
func (g *Game) cleanupDead() {
	cfg := config.Cfg()

	type deadInfo struct {
		entity ecs.Entity
		id     uint32
		arch   components.Archetype
	}
	var toRemove []deadInfo

	query := g.entityFilter.Query()
	for query.Next() {
		_, vitals, creature := query.Get()
		if vitals.Health <= 0 {
			toRemove = append(toRemove, deadInfo{
				entity: query.Entity(),
				id:     creature.ID,
				arch:   creature.Archetype,
			})
		}
	}

	for _, dead := range toRemove {
		g.entityMapper.Remove(dead.entity)
		delete(g.strategies, dead.id)
		g.counts[dead.arch]--
		g.collector.RecordDeath(dead.arch)
	}

	// Respawn collapsed archetypes once the run is underway.
	if g.tick > 100 {
		for _, arch := range []components.Archetype{
			components.ArchetypePlant,
			components.ArchetypeHerbivore,
			components.ArchetypeCarnivore,
		} {
			if g.counts[arch] < cfg.Population.RespawnFloor {
				for i := 0; i < cfg.Population.RespawnCount; i++ {
					g.spawnCreature(arch, g.randomPosition())
				}
				slog.Info("respawn", "archetype", arch.String(), "count", cfg.Population.RespawnCount)
			}
		}
	}
}

// flushTelemetry emits window stats when the current window closes.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	pop := telemetry.PopulationSample{Counts: g.counts}

	query := g.entityFilter.Query()
	for query.Next() {
		_, vitals, creature := query.Get()
		if vitals.Health <= 0 {
			continue
		}
		switch creature.Archetype {
		case components.ArchetypeHerbivore:
			pop.HerbEnergy = append(pop.HerbEnergy, float64(vitals.Energy))
			pop.HerbHunger = append(pop.HerbHunger, float64(vitals.Hunger))
		case components.ArchetypeCarnivore:
			pop.CarnEnergy = append(pop.CarnEnergy, float64(vitals.Energy))
			pop.CarnHunger = append(pop.CarnHunger, float64(vitals.Hunger))
		}
	}

	stats := g.collector.Flush(g.tick, pop)
	if g.logStats {
		stats.LogStats()
		g.perf.Stats().LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry write failed", "err", err)
	}
	if err := g.output.WritePerf(g.perf.Stats(), g.tick); err != nil {
		slog.Error("perf write failed", "err", err)
	}
}

func maxCount(cfg *config.Config, arch components.Archetype) int {
	switch arch {
	case components.ArchetypeHerbivore:
		return cfg.Population.MaxHerbivores
	case components.ArchetypeCarnivore:
		return cfg.Population.MaxCarnivores
	default:
		return cfg.Population.MaxPlants
	}
}
