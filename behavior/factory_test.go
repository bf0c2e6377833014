package behavior

import (
	"testing"

	"github.com/Jonasi-Deetens/ecodungeon/components"
)

func TestNewStrategyPerArchetype(t *testing.T) {
	cases := []struct {
		name string
		arch components.Archetype
		want string
	}{
		{"plant", components.ArchetypePlant, "*behavior.Plant"},
		{"herbivore", components.ArchetypeHerbivore, "*behavior.Herbivore"},
		{"carnivore", components.ArchetypeCarnivore, "*behavior.Carnivore"},
		{"unknown", components.Archetype(42), "*behavior.Plant"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.arch, "test", fixedDirs{1, 0})
			var got string
			switch s.(type) {
			case *Plant:
				got = "*behavior.Plant"
			case *Herbivore:
				got = "*behavior.Herbivore"
			case *Carnivore:
				got = "*behavior.Carnivore"
			default:
				t.Fatalf("New(%v) returned unexpected type %T", tc.arch, s)
			}
			if got != tc.want {
				t.Errorf("New(%v) = %s, want %s", tc.arch, got, tc.want)
			}
		})
	}
}

func TestNewStrategyInstancesAreIndependent(t *testing.T) {
	a := New(components.ArchetypeCarnivore, "wolf", fixedDirs{0, 1})
	b := New(components.ArchetypeCarnivore, "wolf", fixedDirs{0, 1})
	if a == b {
		t.Fatalf("New must return a fresh strategy per call")
	}

	pos := components.Position{X: 1500, Y: 1500}
	pack := []components.EntitySnapshot{
		packmateAt("wolf", 1520, 1500),
		packmateAt("wolf", 1480, 1500),
	}
	a.Update(0.1, pos, pack)
	if !a.(*Carnivore).PackActive() {
		t.Fatalf("pack mode should be active on a")
	}
	if b.(*Carnivore).PackActive() {
		t.Errorf("state on one strategy must not leak into another")
	}
}

func TestNewStrategyDefaultDirectionSource(t *testing.T) {
	// A nil direction source falls back to an internal random one.
	s := New(components.ArchetypeHerbivore, "rabbit", nil)
	pos := components.Position{X: 1500, Y: 1500}
	got := s.Update(0.1, pos, nil)
	d := got.DistanceTo(pos)
	if d != d { // NaN check
		t.Fatalf("Update produced NaN position %+v", got)
	}
}
