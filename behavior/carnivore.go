package behavior

import (
	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

// Carnivore wanders and pursues herbivores. Nearby same-species packmates
// put it in pack mode, which boosts hunt speed and range until the pack
// disperses for longer than the pack window.
type Carnivore struct {
	species string
	wander  wander

	speed          float32
	huntRange      float32
	packSpeedBoost float32
	packRangeBoost float32
	packWindow     float32

	reproHealthFrac float32
	reproEnergyFrac float32
	huntHungerMin   float32

	packActive bool
	packTimer  float32
}

// NewCarnivore returns a fresh carnivore strategy using the current
// config. dirs supplies wander direction candidates.
func NewCarnivore(species string, dirs DirectionSource) *Carnivore {
	c := config.Cfg()
	return &Carnivore{
		species:         species,
		wander:          newWander(worldFromConfig(c), dirs, float32(c.Carnivore.WanderInterval)),
		speed:           float32(c.Carnivore.Speed),
		huntRange:       float32(c.Carnivore.HuntRange),
		packSpeedBoost:  float32(c.Carnivore.PackSpeedBoost),
		packRangeBoost:  float32(c.Carnivore.PackRangeBoost),
		packWindow:      float32(c.Carnivore.PackWindow),
		reproHealthFrac: float32(c.Carnivore.Drives.ReproHealthFrac),
		reproEnergyFrac: float32(c.Carnivore.Drives.ReproEnergyFrac),
		huntHungerMin:   float32(c.Carnivore.Drives.HuntHungerMin),
	}
}

// Update runs one decision tick: pack detection, hunting, wander
// re-pick, then the default wander step.
func (c *Carnivore) Update(dt float32, pos components.Position, nearby []components.EntitySnapshot) components.Position {
	c.wander.advance(dt)
	c.packTimer += dt

	// Pack detection: same-species carnivores in sensing range. The
	// snapshot may or may not include self; the >1 threshold is part of
	// the reference balance either way.
	packmates := 0
	for i := range nearby {
		if nearby[i].Archetype == components.ArchetypeCarnivore && nearby[i].Species == c.species {
			packmates++
		}
	}
	if packmates > 1 {
		c.packActive = true
		c.packTimer = 0
	} else if c.packActive && c.packTimer > c.packWindow {
		c.packActive = false
	}

	huntSpeed := c.speed
	huntRange := c.huntRange
	if c.packActive {
		huntSpeed *= c.packSpeedBoost
		huntRange *= c.packRangeBoost
	}

	// The first herbivore in the caller-ordered list is the target.
	for i := range nearby {
		if nearby[i].Archetype != components.ArchetypeHerbivore {
			continue
		}
		if d := pos.DistanceTo(nearby[i].Pos); d > 0 && d < huntRange {
			return moveToward(pos, nearby[i].Pos, huntSpeed, dt)
		}
		break
	}

	c.wander.maybeRepick(pos)
	return c.wander.step(pos, c.speed, dt)
}

// PackActive reports whether pack mode is currently engaged.
func (c *Carnivore) PackActive() bool {
	return c.packActive
}

// ShouldReproduce is true when health exceeds 80% of max and energy
// exceeds 90% of max (strict).
func (c *Carnivore) ShouldReproduce(health, maxHealth, energy, maxEnergy float32) bool {
	return health > maxHealth*c.reproHealthFrac && energy > maxEnergy*c.reproEnergyFrac
}

// ShouldEat is always false; carnivores feed by hunting.
func (c *Carnivore) ShouldEat(_, _ float32) bool {
	return false
}

// ShouldHunt is true when hunger exceeds the absolute hunt threshold and
// prey is in sensing range. The threshold is an absolute value rather
// than a fraction of max, preserved from the original balance.
func (c *Carnivore) ShouldHunt(hunger, _ float32, nearbyPrey []components.EntitySnapshot) bool {
	return hunger > c.huntHungerMin && len(nearbyPrey) > 0
}
