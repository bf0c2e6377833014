package behavior

import (
	"math"
	"testing"

	"github.com/Jonasi-Deetens/ecodungeon/components"
)

func carnivoreAt(x, y float32) components.EntitySnapshot {
	return components.EntitySnapshot{Archetype: components.ArchetypeCarnivore, Species: "wolf", Pos: components.Position{X: x, Y: y}}
}

func plantAt(x, y float32) components.EntitySnapshot {
	return components.EntitySnapshot{Archetype: components.ArchetypePlant, Species: "fern", Pos: components.Position{X: x, Y: y}}
}

func TestHerbivoreZeroDeltaTime(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})
	pos := components.Position{X: 1500, Y: 1500}
	nearby := []components.EntitySnapshot{plantAt(1500, 1530)}

	if got := h.Update(0, pos, nearby); got != pos {
		t.Errorf("Update(0) = %+v, want unchanged %+v", got, pos)
	}
}

func TestHerbivoreFleesFromPredator(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})
	pos := components.Position{X: 1500, Y: 1500}
	dt := float32(0.1)

	// Predator 50 units east: flee due west at 50 * 1.5 * dt.
	got := h.Update(dt, pos, []components.EntitySnapshot{carnivoreAt(1550, 1500)})
	approx(t, "flee X", got.X, 1500-50*1.5*dt)
	approx(t, "flee Y", got.Y, 1500)
}

func TestHerbivoreFleeOverridesFoodSeeking(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})
	pos := components.Position{X: 1500, Y: 1500}
	dt := float32(0.1)

	// Plant in food range, predator in flee range: flee wins outright.
	nearby := []components.EntitySnapshot{
		plantAt(1500, 1520),
		carnivoreAt(1550, 1500),
	}
	got := h.Update(dt, pos, nearby)
	approx(t, "flee X", got.X, 1500-50*1.5*dt)
	approx(t, "flee Y", got.Y, 1500)
}

func TestHerbivoreFleePersistsThenExpires(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})
	pos := components.Position{X: 1500, Y: 1500}
	dt := float32(0.1)

	// Trigger the flee.
	pos = h.Update(dt, pos, []components.EntitySnapshot{carnivoreAt(1550, 1500)})

	// No predator in sight: the flee keeps running on the stored direction.
	next := h.Update(dt, pos, nil)
	approx(t, "sustained flee X", next.X, pos.X-50*1.5*dt)
	approx(t, "sustained flee Y", next.Y, pos.Y)
	pos = next

	// Past the 2-second window the flag clears and wandering resumes at
	// base speed along the injected direction.
	next = h.Update(2.0, pos, nil)
	approx(t, "post-flee X", next.X, pos.X+50*2.0)
	approx(t, "post-flee Y", next.Y, pos.Y)
}

func TestHerbivoreIgnoresDistantPredator(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{0, 1})
	pos := components.Position{X: 1500, Y: 1500}
	dt := float32(0.1)

	// Predator at 100 > 80: no flee, plain wander along (0, 1).
	got := h.Update(dt, pos, []components.EntitySnapshot{carnivoreAt(1600, 1500)})
	approx(t, "wander X", got.X, 1500)
	approx(t, "wander Y", got.Y, 1500+50*dt)
}

func TestHerbivoreSeeksFood(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})
	pos := components.Position{X: 1500, Y: 1500}
	dt := float32(0.1)

	// Plant 30 units north: approach at 50 * 1.2 * dt regardless of the
	// concurrent wander direction.
	got := h.Update(dt, pos, []components.EntitySnapshot{plantAt(1500, 1470)})
	approx(t, "seek X", got.X, 1500)
	approx(t, "seek Y", got.Y, 1500-50*1.2*dt)
}

func TestHerbivorePicksNearestPlant(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})
	pos := components.Position{X: 1500, Y: 1500}
	dt := float32(0.1)

	// The nearer plant wins even when it is not first in the list; food
	// seeking is a full scan, unlike hunt/flee targeting.
	nearby := []components.EntitySnapshot{
		plantAt(1540, 1500), // 40 east
		plantAt(1500, 1520), // 20 south
	}
	got := h.Update(dt, pos, nearby)
	approx(t, "seek X", got.X, 1500)
	approx(t, "seek Y", got.Y, 1500+50*1.2*dt)
}

func TestHerbivoreIgnoresFoodOutOfRange(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{0, 1})
	pos := components.Position{X: 1500, Y: 1500}
	dt := float32(0.1)

	got := h.Update(dt, pos, []components.EntitySnapshot{plantAt(1500, 1560)}) // 60 > 50
	approx(t, "wander X", got.X, 1500)
	approx(t, "wander Y", got.Y, 1500+50*dt)
}

func TestHerbivoreBoundaryRepulsion(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{-1, 0})
	dt := float32(0.1)

	// x=45 is inside the 100-unit margin of the min edge; the wander
	// direction re-picks toward the world center (1500, 1500).
	got := h.Update(dt, components.Position{X: 45, Y: 1500}, nil)
	approx(t, "boundary X", got.X, 45+50*dt)
	approx(t, "boundary Y", got.Y, 1500)

	// Same at the max edge, pointing back inward.
	got = h.Update(dt, components.Position{X: 2920, Y: 1500}, nil)
	if got.X >= 2920 {
		t.Errorf("boundary repulsion should move inward, got X=%f", got.X)
	}
}

func TestHerbivoreZeroDistancePredatorStaysFinite(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})
	pos := components.Position{X: 1500, Y: 1500}

	// Predator exactly on top: flee triggers but the direction is left
	// unchanged; the result must stay finite.
	got := h.Update(0.1, pos, []components.EntitySnapshot{carnivoreAt(1500, 1500)})
	if math.IsNaN(float64(got.X)) || math.IsNaN(float64(got.Y)) ||
		math.IsInf(float64(got.X), 0) || math.IsInf(float64(got.Y), 0) {
		t.Errorf("position must stay finite, got %+v", got)
	}
}

func TestHerbivoreEligibility(t *testing.T) {
	h := NewHerbivore("rat", fixedDirs{1, 0})

	if !h.ShouldReproduce(71, 100, 81, 100) {
		t.Errorf("ShouldReproduce(71, 100, 81, 100) = false, want true")
	}
	if h.ShouldReproduce(70, 100, 81, 100) {
		t.Errorf("ShouldReproduce(70, 100, 81, 100) = true, want false (strict 70%%)")
	}
	if h.ShouldReproduce(71, 100, 80, 100) {
		t.Errorf("ShouldReproduce(71, 100, 80, 100) = true, want false (strict 80%%)")
	}

	if !h.ShouldEat(61, 100) {
		t.Errorf("ShouldEat(61, 100) = false, want true")
	}
	if h.ShouldEat(60, 100) {
		t.Errorf("ShouldEat(60, 100) = true, want false (strict 60%%)")
	}

	prey := []components.EntitySnapshot{plantAt(0, 0)}
	if h.ShouldHunt(100, 100, prey) {
		t.Errorf("herbivores never hunt")
	}
}
