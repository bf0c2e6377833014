package game

import (
	"testing"

	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

func init() {
	config.MustInit("")
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := NewGame(Options{Seed: seed})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func TestNewGameInitialPopulation(t *testing.T) {
	g := newTestGame(t, 1)

	cfg := config.Cfg()
	if got := g.Count(components.ArchetypePlant); got != cfg.Population.InitialPlants {
		t.Errorf("plants = %d, want %d", got, cfg.Population.InitialPlants)
	}
	if got := g.Count(components.ArchetypeHerbivore); got != cfg.Population.InitialHerbivores {
		t.Errorf("herbivores = %d, want %d", got, cfg.Population.InitialHerbivores)
	}
	if got := g.Count(components.ArchetypeCarnivore); got != cfg.Population.InitialCarnivores {
		t.Errorf("carnivores = %d, want %d", got, cfg.Population.InitialCarnivores)
	}
	if g.Alive() != len(g.Snapshot()) {
		t.Errorf("Alive() = %d, Snapshot has %d entries", g.Alive(), len(g.Snapshot()))
	}
}

func TestStepKeepsCreaturesInBounds(t *testing.T) {
	g := newTestGame(t, 2)
	d := config.Cfg().Derived

	for i := 0; i < 300; i++ {
		g.Step()
	}

	for _, s := range g.Snapshot() {
		if s.Pos.X < d.WorldMin || s.Pos.X > d.WorldMax ||
			s.Pos.Y < d.WorldMin || s.Pos.Y > d.WorldMax {
			t.Fatalf("%s %q escaped the world at %+v", s.Archetype, s.Species, s.Pos)
		}
	}
}

func TestStepPopulationBookkeeping(t *testing.T) {
	g := newTestGame(t, 3)

	for i := 0; i < 600; i++ {
		g.Step()
	}

	counts := [3]int{}
	for _, s := range g.Snapshot() {
		counts[s.Archetype]++
	}
	for _, arch := range []components.Archetype{
		components.ArchetypePlant,
		components.ArchetypeHerbivore,
		components.ArchetypeCarnivore,
	} {
		if g.Count(arch) != counts[arch] {
			t.Errorf("%s: Count() = %d, snapshot has %d", arch, g.Count(arch), counts[arch])
		}
	}

	cfg := config.Cfg()
	if g.Count(components.ArchetypePlant) > cfg.Population.MaxPlants {
		t.Errorf("plant cap exceeded: %d", g.Count(components.ArchetypePlant))
	}
	if g.Count(components.ArchetypeHerbivore) > cfg.Population.MaxHerbivores {
		t.Errorf("herbivore cap exceeded: %d", g.Count(components.ArchetypeHerbivore))
	}
	if g.Count(components.ArchetypeCarnivore) > cfg.Population.MaxCarnivores {
		t.Errorf("carnivore cap exceeded: %d", g.Count(components.ArchetypeCarnivore))
	}
}

func TestDeterministicRuns(t *testing.T) {
	a := newTestGame(t, 42)
	b := newTestGame(t, 42)

	for i := 0; i < 200; i++ {
		a.Step()
		b.Step()
	}

	snapA := a.Snapshot()
	snapB := b.Snapshot()
	if len(snapA) != len(snapB) {
		t.Fatalf("same seed diverged: %d vs %d creatures", len(snapA), len(snapB))
	}
	for i := range snapA {
		if snapA[i] != snapB[i] {
			t.Fatalf("same seed diverged at creature %d: %+v vs %+v", i, snapA[i], snapB[i])
		}
	}
}

func TestUpdateRunsMultipleSteps(t *testing.T) {
	g, err := NewGame(Options{Seed: 4, StepsPerUpdate: 5})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	g.Update()
	if g.Tick() != 5 {
		t.Errorf("Tick() = %d after one Update at speed 5, want 5", g.Tick())
	}
}
