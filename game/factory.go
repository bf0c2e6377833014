package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/Jonasi-Deetens/ecodungeon/behavior"
	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
	"github.com/Jonasi-Deetens/ecodungeon/systems"
)

// spawnInitialPopulation creates the starting entities at random
// positions inside the world bounds.
func (g *Game) spawnInitialPopulation() {
	cfg := config.Cfg()

	for i := 0; i < cfg.Population.InitialPlants; i++ {
		g.spawnCreature(components.ArchetypePlant, g.randomPosition())
	}
	for i := 0; i < cfg.Population.InitialHerbivores; i++ {
		g.spawnCreature(components.ArchetypeHerbivore, g.randomPosition())
	}
	for i := 0; i < cfg.Population.InitialCarnivores; i++ {
		g.spawnCreature(components.ArchetypeCarnivore, g.randomPosition())
	}
}

// spawnCreature creates a new creature with a fresh behavior strategy.
func (g *Game) spawnCreature(arch components.Archetype, pos components.Position) ecs.Entity {
	id := g.nextID
	g.nextID++

	species := g.pickSpecies(arch)

	vitals := systems.NewVitals(arch)
	creature := components.Creature{
		ID:            id,
		Archetype:     arch,
		Species:       species,
		ReproCooldown: float32(stockFor(arch).ReproCooldown),
	}

	g.strategies[id] = behavior.New(arch, species, g.dirs)

	entity := g.entityMapper.NewEntity(&pos, &vitals, &creature)
	g.counts[arch]++

	return entity
}

// pickSpecies selects a species tag uniformly from the configured list.
func (g *Game) pickSpecies(arch components.Archetype) string {
	cfg := config.Cfg()
	var list []string
	switch arch {
	case components.ArchetypeHerbivore:
		list = cfg.Herbivore.Species
	case components.ArchetypeCarnivore:
		list = cfg.Carnivore.Species
	default:
		list = cfg.Plant.Species
	}
	return list[g.rng.Intn(len(list))]
}

// randomPosition returns a uniform position inside the world bounds.
func (g *Game) randomPosition() components.Position {
	d := config.Cfg().Derived
	return components.Position{
		X: d.WorldMin + g.rng.Float32()*d.WorldSize,
		Y: d.WorldMin + g.rng.Float32()*d.WorldSize,
	}
}

// offspringPosition returns a spawn point near the parent, clamped to
// the world bounds.
func (g *Game) offspringPosition(parent components.Position) components.Position {
	const spread = 24.0
	return clampToWorld(components.Position{
		X: parent.X + (g.rng.Float32()*2-1)*spread,
		Y: parent.Y + (g.rng.Float32()*2-1)*spread,
	})
}

func clampToWorld(pos components.Position) components.Position {
	d := config.Cfg().Derived
	if pos.X < d.WorldMin {
		pos.X = d.WorldMin
	} else if pos.X > d.WorldMax {
		pos.X = d.WorldMax
	}
	if pos.Y < d.WorldMin {
		pos.Y = d.WorldMin
	} else if pos.Y > d.WorldMax {
		pos.Y = d.WorldMax
	}
	return pos
}

func stockFor(arch components.Archetype) config.StockConfig {
	cfg := config.Cfg()
	switch arch {
	case components.ArchetypeHerbivore:
		return cfg.Herbivore.Stock
	case components.ArchetypeCarnivore:
		return cfg.Carnivore.Stock
	default:
		return cfg.Plant.Stock
	}
}
