// Package behavior implements the per-archetype decision engines that
// drive creature movement and drive eligibility. A strategy instance
// owns the timers and direction vectors for exactly one creature; the
// surrounding game loop calls Update once per tick with elapsed time and
// a proximity-sorted snapshot of nearby entities, and applies the
// returned position itself.
package behavior

import (
	"math/rand"

	"github.com/Jonasi-Deetens/ecodungeon/components"
)

// Strategy computes motion intent and drive eligibility for one creature.
// Instances must never be shared between creatures: the internal timers
// are per-individual.
type Strategy interface {
	// Update advances the internal timers by dt seconds and returns the
	// creature's new position. nearby is the caller-supplied sensory
	// snapshot; strategies act on the first matching entry, so callers
	// should pre-sort it by ascending distance. The result is always
	// finite for finite inputs.
	Update(dt float32, pos components.Position, nearby []components.EntitySnapshot) components.Position

	// ShouldReproduce reports whether the creature's vitals clear the
	// archetype's reproduction thresholds. Stateless and side-effect-free.
	ShouldReproduce(health, maxHealth, energy, maxEnergy float32) bool

	// ShouldEat reports whether the creature is hungry enough to graze.
	ShouldEat(hunger, maxHunger float32) bool

	// ShouldHunt reports whether the creature should pursue prey.
	ShouldHunt(hunger, maxHunger float32, nearbyPrey []components.EntitySnapshot) bool
}

// DirectionSource yields raw wander direction candidates with both
// components uniform in [-1, 1). Injecting a fixed sequence makes the
// wander branch deterministic under test.
type DirectionSource interface {
	Direction() (x, y float32)
}

type randSource struct {
	rng *rand.Rand
}

func (s randSource) Direction() (float32, float32) {
	return s.rng.Float32()*2 - 1, s.rng.Float32()*2 - 1
}

// NewRandSource returns a DirectionSource backed by the given generator.
func NewRandSource(rng *rand.Rand) DirectionSource {
	return randSource{rng: rng}
}

// New returns a fresh, independent strategy instance for the archetype.
// Unrecognized archetypes behave as plants. A nil DirectionSource gets a
// private math/rand generator.
func New(arch components.Archetype, species string, dirs DirectionSource) Strategy {
	if dirs == nil {
		dirs = randSource{rng: rand.New(rand.NewSource(rand.Int63()))}
	}
	switch arch {
	case components.ArchetypeHerbivore:
		return NewHerbivore(species, dirs)
	case components.ArchetypeCarnivore:
		return NewCarnivore(species, dirs)
	default:
		return NewPlant()
	}
}
