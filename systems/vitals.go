package systems

import (
	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

// NewVitals returns a full vitals pool for the given archetype.
func NewVitals(arch components.Archetype) components.Vitals {
	stock := stockFor(arch)
	return components.Vitals{
		Health:    float32(stock.MaxHealth),
		MaxHealth: float32(stock.MaxHealth),
		Energy:    float32(stock.MaxEnergy),
		MaxEnergy: float32(stock.MaxEnergy),
		Hunger:    0,
		MaxHunger: float32(stock.MaxHunger),
	}
}

// UpdateVitals applies one tick of metabolism: hunger accumulation,
// starvation damage at full hunger, energy regeneration while fed, and
// photosynthesis for plants. Returns false if the creature died.
func UpdateVitals(v *components.Vitals, arch components.Archetype, dt float32) bool {
	stock := stockFor(arch)

	v.Hunger += float32(stock.HungerRate) * dt
	if v.Hunger >= v.MaxHunger {
		v.Hunger = v.MaxHunger
		v.Health -= float32(stock.StarveDamage) * dt
	} else {
		// Regeneration only while fed.
		v.Energy += float32(stock.EnergyRegen) * dt
	}

	if arch == components.ArchetypePlant {
		v.Energy += float32(config.Cfg().Plant.Photosynthesis) * dt
	}

	if v.Energy > v.MaxEnergy {
		v.Energy = v.MaxEnergy
	}

	if v.Health <= 0 {
		v.Health = 0
		return false
	}
	return true
}

// Graze transfers a meal from a plant to a herbivore: the plant loses
// health, the herbivore loses hunger. Returns true if the plant died.
func Graze(eater, plant *components.Vitals) bool {
	cfg := config.Cfg().Herbivore

	eater.Hunger -= float32(cfg.EatRestore)
	if eater.Hunger < 0 {
		eater.Hunger = 0
	}

	plant.Health -= float32(cfg.GrazeDamage)
	if plant.Health <= 0 {
		plant.Health = 0
		return true
	}
	return false
}

// Bite applies one carnivore attack to prey. A killing bite also feeds
// the attacker. Returns true if the prey died.
func Bite(attacker, prey *components.Vitals) bool {
	cfg := config.Cfg().Carnivore

	prey.Health -= float32(cfg.BiteDamage)
	if prey.Health <= 0 {
		prey.Health = 0
		attacker.Hunger -= float32(cfg.KillFeed)
		if attacker.Hunger < 0 {
			attacker.Hunger = 0
		}
		return true
	}
	return false
}

// ReproSplit halves the parent's energy to pay for a newborn and returns
// a fresh vitals pool for the child.
func ReproSplit(parent *components.Vitals, arch components.Archetype) components.Vitals {
	parent.Energy /= 2
	return NewVitals(arch)
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
