package telemetry

import "github.com/Jonasi-Deetens/ecodungeon/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for the current window, indexed by archetype.
	births [3]int
	deaths [3]int

	grazes         int
	bitesAttempted int
	bitesHit       int
	kills          int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(arch components.Archetype) {
	c.births[arch]++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(arch components.Archetype) {
	c.deaths[arch]++
}

// RecordGraze records a herbivore meal.
func (c *Collector) RecordGraze() {
	c.grazes++
}

// RecordBiteAttempt records a carnivore attack attempt.
func (c *Collector) RecordBiteAttempt() {
	c.bitesAttempted++
}

// RecordBiteHit records a landed bite.
func (c *Collector) RecordBiteHit() {
	c.bitesHit++
}

// RecordKill records a kill.
func (c *Collector) RecordKill() {
	c.kills++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// PopulationSample holds the per-archetype pools sampled at window end.
type PopulationSample struct {
	Counts     [3]int // Living creatures per archetype
	HerbEnergy []float64
	CarnEnergy []float64
	HerbHunger []float64
	CarnHunger []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop PopulationSample) WindowStats {
	var hitRate, killRate float64
	if c.bitesAttempted > 0 {
		hitRate = float64(c.bitesHit) / float64(c.bitesAttempted)
	}
	if c.bitesHit > 0 {
		killRate = float64(c.kills) / float64(c.bitesHit)
	}

	herbEnergy := ComputePoolStats(pop.HerbEnergy)
	carnEnergy := ComputePoolStats(pop.CarnEnergy)
	herbHunger := ComputePoolStats(pop.HerbHunger)
	carnHunger := ComputePoolStats(pop.CarnHunger)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		PlantCount:     pop.Counts[components.ArchetypePlant],
		HerbivoreCount: pop.Counts[components.ArchetypeHerbivore],
		CarnivoreCount: pop.Counts[components.ArchetypeCarnivore],

		PlantBirths:     c.births[components.ArchetypePlant],
		HerbivoreBirths: c.births[components.ArchetypeHerbivore],
		CarnivoreBirths: c.births[components.ArchetypeCarnivore],
		PlantDeaths:     c.deaths[components.ArchetypePlant],
		HerbivoreDeaths: c.deaths[components.ArchetypeHerbivore],
		CarnivoreDeaths: c.deaths[components.ArchetypeCarnivore],

		Grazes:         c.grazes,
		BitesAttempted: c.bitesAttempted,
		BitesHit:       c.bitesHit,
		Kills:          c.kills,
		HitRate:        hitRate,
		KillRate:       killRate,

		HerbHungerMean: herbHunger.Mean,
		HerbHungerStd:  herbHunger.Std,
		CarnHungerMean: carnHunger.Mean,
		CarnHungerStd:  carnHunger.Std,

		HerbEnergyMean: herbEnergy.Mean,
		HerbEnergyP10:  herbEnergy.P10,
		HerbEnergyP50:  herbEnergy.P50,
		HerbEnergyP90:  herbEnergy.P90,

		CarnEnergyMean: carnEnergy.Mean,
		CarnEnergyP10:  carnEnergy.P10,
		CarnEnergyP50:  carnEnergy.P50,
		CarnEnergyP90:  carnEnergy.P90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [3]int{}
	c.deaths = [3]int{}
	c.grazes = 0
	c.bitesAttempted = 0
	c.bitesHit = 0
	c.kills = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
