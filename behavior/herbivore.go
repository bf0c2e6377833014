package behavior

import (
	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

// Herbivore wanders, grazes toward nearby plants, and flees carnivores.
// A flee persists for a fixed window after the last predator sighting
// and overrides every other motion source while active.
type Herbivore struct {
	species string
	wander  wander

	speed        float32
	fleeTrigger  float32
	fleeDuration float32
	fleeBoost    float32
	foodRange    float32
	foodBoost    float32

	reproHealthFrac float32
	reproEnergyFrac float32
	eatHungerFrac   float32

	fleeX, fleeY float32
	fleeing      bool
	fleeTimer    float32
}

// NewHerbivore returns a fresh herbivore strategy using the current
// config. dirs supplies wander direction candidates.
func NewHerbivore(species string, dirs DirectionSource) *Herbivore {
	c := config.Cfg()
	return &Herbivore{
		species:         species,
		wander:          newWander(worldFromConfig(c), dirs, float32(c.Herbivore.WanderInterval)),
		speed:           float32(c.Herbivore.Speed),
		fleeTrigger:     float32(c.Herbivore.FleeTrigger),
		fleeDuration:    float32(c.Herbivore.FleeDuration),
		fleeBoost:       float32(c.Herbivore.FleeBoost),
		foodRange:       float32(c.Herbivore.FoodRange),
		foodBoost:       float32(c.Herbivore.FoodBoost),
		reproHealthFrac: float32(c.Herbivore.Drives.ReproHealthFrac),
		reproEnergyFrac: float32(c.Herbivore.Drives.ReproEnergyFrac),
		eatHungerFrac:   float32(c.Herbivore.Drives.EatHungerFrac),
	}
}

// Update runs one decision tick: predator check, flee continuation,
// wander re-pick, food seeking, then the default wander step.
func (h *Herbivore) Update(dt float32, pos components.Position, nearby []components.EntitySnapshot) components.Position {
	h.wander.advance(dt)
	h.fleeTimer += dt

	// The first carnivore in the caller-ordered list is the threat.
	for i := range nearby {
		if nearby[i].Archetype != components.ArchetypeCarnivore {
			continue
		}
		if d := pos.DistanceTo(nearby[i].Pos); d < h.fleeTrigger {
			h.fleeing = true
			h.fleeTimer = 0
			// A predator on top of us gives no direction; keep the old one.
			if d > 0 {
				h.fleeX = (pos.X - nearby[i].Pos.X) / d
				h.fleeY = (pos.Y - nearby[i].Pos.Y) / d
			}
		}
		break
	}

	if h.fleeing {
		if h.fleeTimer < h.fleeDuration {
			boosted := h.speed * h.fleeBoost
			return components.Position{
				X: pos.X + h.fleeX*boosted*dt,
				Y: pos.Y + h.fleeY*boosted*dt,
			}
		}
		h.fleeing = false
	}

	h.wander.maybeRepick(pos)

	// Food seeking scans for the true nearest plant, not first match.
	var (
		target components.Position
		best   float32 = -1
	)
	for i := range nearby {
		if nearby[i].Archetype != components.ArchetypePlant {
			continue
		}
		d := pos.DistanceTo(nearby[i].Pos)
		if d > h.foodRange {
			continue
		}
		if best < 0 || d < best {
			best = d
			target = nearby[i].Pos
		}
	}
	if best >= 0 {
		return moveToward(pos, target, h.speed*h.foodBoost, dt)
	}

	return h.wander.step(pos, h.speed, dt)
}

// ShouldReproduce is true when health exceeds 70% of max and energy
// exceeds 80% of max (strict).
func (h *Herbivore) ShouldReproduce(health, maxHealth, energy, maxEnergy float32) bool {
	return health > maxHealth*h.reproHealthFrac && energy > maxEnergy*h.reproEnergyFrac
}

// ShouldEat is true when hunger exceeds 60% of max (strict).
func (h *Herbivore) ShouldEat(hunger, maxHunger float32) bool {
	return hunger > maxHunger*h.eatHungerFrac
}

// ShouldHunt is always false; herbivores graze.
func (h *Herbivore) ShouldHunt(_, _ float32, _ []components.EntitySnapshot) bool {
	return false
}
