package behavior

import (
	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

// Plant is the stationary archetype. Update is the identity on position;
// plants only participate through the reproduction threshold.
type Plant struct {
	reproHealthFrac float32
	reproEnergyFrac float32
}

// NewPlant returns a fresh plant strategy using the current config.
func NewPlant() *Plant {
	c := config.Cfg()
	return &Plant{
		reproHealthFrac: float32(c.Plant.Drives.ReproHealthFrac),
		reproEnergyFrac: float32(c.Plant.Drives.ReproEnergyFrac),
	}
}

// Update returns the input position unchanged.
func (p *Plant) Update(_ float32, pos components.Position, _ []components.EntitySnapshot) components.Position {
	return pos
}

// ShouldReproduce is true when health exceeds 80% of max and energy
// exceeds 70% of max (strict).
func (p *Plant) ShouldReproduce(health, maxHealth, energy, maxEnergy float32) bool {
	return health > maxHealth*p.reproHealthFrac && energy > maxEnergy*p.reproEnergyFrac
}

// ShouldEat is always false; plants photosynthesize.
func (p *Plant) ShouldEat(_, _ float32) bool {
	return false
}

// ShouldHunt is always false.
func (p *Plant) ShouldHunt(_, _ float32, _ []components.EntitySnapshot) bool {
	return false
}
