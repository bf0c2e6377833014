package systems

import (
	"testing"

	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

func init() {
	config.MustInit("")
}

func TestNewVitalsPerArchetype(t *testing.T) {
	cases := []struct {
		arch       components.Archetype
		wantHealth float32
	}{
		{components.ArchetypePlant, 60},
		{components.ArchetypeHerbivore, 100},
		{components.ArchetypeCarnivore, 120},
	}
	for _, tc := range cases {
		v := NewVitals(tc.arch)
		if v.Health != tc.wantHealth || v.Health != v.MaxHealth {
			t.Errorf("%v: health = %v/%v, want %v at full", tc.arch, v.Health, v.MaxHealth, tc.wantHealth)
		}
		if v.Hunger != 0 {
			t.Errorf("%v: newborn hunger = %v, want 0", tc.arch, v.Hunger)
		}
	}
}

func TestUpdateVitalsHungerAndRegen(t *testing.T) {
	v := NewVitals(components.ArchetypeHerbivore)
	v.Energy = 50

	alive := UpdateVitals(&v, components.ArchetypeHerbivore, 1.0)
	if !alive {
		t.Fatalf("creature died after one fed second")
	}
	if v.Hunger != 2.5 {
		t.Errorf("hunger = %v, want 2.5 after 1s", v.Hunger)
	}
	if v.Energy != 54 {
		t.Errorf("energy = %v, want 54 (regen 4/s while fed)", v.Energy)
	}
	if v.Health != v.MaxHealth {
		t.Errorf("fed creature lost health: %v", v.Health)
	}
}

func TestUpdateVitalsStarvation(t *testing.T) {
	v := NewVitals(components.ArchetypeHerbivore)
	v.Hunger = v.MaxHunger
	v.Energy = 50

	UpdateVitals(&v, components.ArchetypeHerbivore, 1.0)
	if v.Health != v.MaxHealth-6 {
		t.Errorf("health = %v, want %v after 1s starving", v.Health, v.MaxHealth-6)
	}
	if v.Energy != 50 {
		t.Errorf("starving creature regenerated energy: %v", v.Energy)
	}
	if v.Hunger != v.MaxHunger {
		t.Errorf("hunger exceeded max: %v", v.Hunger)
	}

	// Starvation eventually kills.
	alive := true
	for i := 0; i < 100 && alive; i++ {
		alive = UpdateVitals(&v, components.ArchetypeHerbivore, 1.0)
	}
	if alive {
		t.Errorf("creature survived 100s of starvation")
	}
	if v.Health != 0 {
		t.Errorf("dead creature health = %v, want 0", v.Health)
	}
}

func TestUpdateVitalsPhotosynthesis(t *testing.T) {
	v := NewVitals(components.ArchetypePlant)
	v.Energy = 10

	UpdateVitals(&v, components.ArchetypePlant, 1.0)
	if v.Energy != 14 {
		t.Errorf("energy = %v, want 14 (photosynthesis 4/s)", v.Energy)
	}

	// Plants never starve.
	for i := 0; i < 100; i++ {
		if !UpdateVitals(&v, components.ArchetypePlant, 1.0) {
			t.Fatalf("plant starved to death")
		}
	}
	if v.Energy != v.MaxEnergy {
		t.Errorf("plant energy = %v, want clamped to %v", v.Energy, v.MaxEnergy)
	}
}

func TestGraze(t *testing.T) {
	eater := NewVitals(components.ArchetypeHerbivore)
	eater.Hunger = 80
	plant := NewVitals(components.ArchetypePlant)

	if Graze(&eater, &plant) {
		t.Fatalf("first graze should not kill a full-health plant")
	}
	if eater.Hunger != 45 {
		t.Errorf("hunger = %v, want 45 (restore 35)", eater.Hunger)
	}
	if plant.Health != 35 {
		t.Errorf("plant health = %v, want 35 (graze damage 25)", plant.Health)
	}

	Graze(&eater, &plant)
	if eater.Hunger != 10 {
		t.Errorf("hunger = %v, want 10", eater.Hunger)
	}
	if !Graze(&eater, &plant) {
		t.Errorf("third graze should kill the plant")
	}
	if plant.Health != 0 {
		t.Errorf("dead plant health = %v, want 0", plant.Health)
	}
	if eater.Hunger != 0 {
		t.Errorf("hunger = %v, want clamped to 0", eater.Hunger)
	}
}

func TestBite(t *testing.T) {
	attacker := NewVitals(components.ArchetypeCarnivore)
	attacker.Hunger = 70
	prey := NewVitals(components.ArchetypeHerbivore)

	// 100 health / 25 damage: the fourth bite kills.
	for i := 0; i < 3; i++ {
		if Bite(&attacker, &prey) {
			t.Fatalf("bite %d killed prematurely", i+1)
		}
	}
	if attacker.Hunger != 70 {
		t.Errorf("non-killing bites fed the attacker: hunger = %v", attacker.Hunger)
	}
	if !Bite(&attacker, &prey) {
		t.Fatalf("fourth bite should kill")
	}
	if attacker.Hunger != 15 {
		t.Errorf("hunger = %v, want 15 (kill feed 55)", attacker.Hunger)
	}
	if prey.Health != 0 {
		t.Errorf("dead prey health = %v, want 0", prey.Health)
	}
}

func TestReproSplit(t *testing.T) {
	parent := NewVitals(components.ArchetypeCarnivore)
	parent.Energy = 90

	child := ReproSplit(&parent, components.ArchetypeCarnivore)
	if parent.Energy != 45 {
		t.Errorf("parent energy = %v, want 45", parent.Energy)
	}
	if child.Health != child.MaxHealth || child.Hunger != 0 {
		t.Errorf("child vitals not fresh: %+v", child)
	}
}
