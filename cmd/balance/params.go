// Package main provides CMA-ES optimization for finding economy
// parameters that keep all three archetypes coexisting.
package main

import (
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
//
// Behavior constants (speeds, ranges, thresholds) are deliberately not
// tunable: the optimizer balances the economy around them.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Plant economy
			{Name: "photosynthesis", Min: 1.0, Max: 12.0, Default: 4.0},
			{Name: "plant_cooldown", Min: 8.0, Max: 60.0, Default: 20.0},
			// Herbivore economy
			{Name: "herb_hunger_rate", Min: 1.0, Max: 6.0, Default: 2.5},
			{Name: "herb_starve_damage", Min: 2.0, Max: 15.0, Default: 6.0},
			{Name: "eat_restore", Min: 15.0, Max: 60.0, Default: 35.0},
			{Name: "graze_damage", Min: 10.0, Max: 50.0, Default: 25.0},
			{Name: "herb_cooldown", Min: 5.0, Max: 30.0, Default: 12.0},
			// Carnivore economy
			{Name: "carn_hunger_rate", Min: 0.8, Max: 5.0, Default: 1.8},
			{Name: "carn_starve_damage", Min: 2.0, Max: 12.0, Default: 5.0},
			{Name: "bite_damage", Min: 10.0, Max: 50.0, Default: 25.0},
			{Name: "kill_feed", Min: 30.0, Max: 90.0, Default: 55.0},
			{Name: "carn_cooldown", Min: 8.0, Max: 40.0, Default: 16.0},
			// Population
			{Name: "initial_plants", Min: 60, Max: 400, Default: 140},
			{Name: "initial_herbivores", Min: 20, Max: 120, Default: 45},
			{Name: "initial_carnivores", Min: 4, Max: 40, Default: 12},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Plant.Photosynthesis = clamped[0]
	cfg.Plant.Stock.ReproCooldown = clamped[1]

	cfg.Herbivore.Stock.HungerRate = clamped[2]
	cfg.Herbivore.Stock.StarveDamage = clamped[3]
	cfg.Herbivore.EatRestore = clamped[4]
	cfg.Herbivore.GrazeDamage = clamped[5]
	cfg.Herbivore.Stock.ReproCooldown = clamped[6]

	cfg.Carnivore.Stock.HungerRate = clamped[7]
	cfg.Carnivore.Stock.StarveDamage = clamped[8]
	cfg.Carnivore.BiteDamage = clamped[9]
	cfg.Carnivore.KillFeed = clamped[10]
	cfg.Carnivore.Stock.ReproCooldown = clamped[11]

	cfg.Population.InitialPlants = int(clamped[12])
	cfg.Population.InitialHerbivores = int(clamped[13])
	cfg.Population.InitialCarnivores = int(clamped[14])
}
