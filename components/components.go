// Package components defines the value types shared between the behavior
// engine and the surrounding game loop.
package components

import "math"

// Position represents a point in world space. Positions are immutable
// values; movement produces a new Position rather than mutating in place.
type Position struct {
	X, Y float32
}

// DistanceTo returns the Euclidean distance to another position.
func (p Position) DistanceTo(o Position) float32 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// Archetype is one of the three fixed creature categories. It is set at
// spawn and never changes for the lifetime of a creature.
type Archetype uint8

const (
	ArchetypePlant Archetype = iota
	ArchetypeHerbivore
	ArchetypeCarnivore
)

// String returns the archetype tag used in config files and logs.
func (a Archetype) String() string {
	switch a {
	case ArchetypePlant:
		return "plant"
	case ArchetypeHerbivore:
		return "herbivore"
	case ArchetypeCarnivore:
		return "carnivore"
	}
	return "unknown"
}

// ParseArchetype maps a config tag to an Archetype. Unrecognized tags
// resolve to plant, matching the behavior factory's fallback.
func ParseArchetype(s string) Archetype {
	switch s {
	case "herbivore":
		return ArchetypeHerbivore
	case "carnivore":
		return ArchetypeCarnivore
	default:
		return ArchetypePlant
	}
}

// EntitySnapshot is a read-only, point-in-time view of one nearby
// creature. A slice of these is the only sensory input a behavior
// strategy receives; the game loop rebuilds it every tick, sorted by
// ascending distance from the observer.
type EntitySnapshot struct {
	Archetype Archetype
	Species   string
	Pos       Position
}

// Vitals holds a creature's health, energy, and hunger pools. The game
// loop owns and mutates these; the behavior engine only reads them
// through the eligibility queries.
type Vitals struct {
	Health    float32
	MaxHealth float32
	Energy    float32
	MaxEnergy float32
	Hunger    float32
	MaxHunger float32
}

// Creature holds per-creature identity and loop-side bookkeeping.
type Creature struct {
	ID        uint32
	Archetype Archetype
	Species   string

	// ReproCooldown is seconds until the creature may reproduce again.
	ReproCooldown float32
}
