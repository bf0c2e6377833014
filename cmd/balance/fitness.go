package main

import (
	"math"

	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
	"github.com/Jonasi-Deetens/ecodungeon/game"
)

// Minimum viable population: if herbivores or carnivores stay below
// this for extinctionGraceSec consecutive seconds, the ecosystem counts
// as functionally collapsed.
const (
	minViablePop       = 3
	extinctionGraceSec = 30.0
)

// sampleIntervalSec spaces the population samples used for the quality
// score.
const sampleIntervalSec = 10.0

// FitnessEvaluator runs headless simulations and computes fitness.
// Evaluations mutate the global configuration, so they must run
// sequentially.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	configPath string

	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		configPath: configPath,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32
	plantSamples  []float64
	herbSamples   []float64
	carnSamples   []float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks scaled by a coexistence quality
// bonus: longer, steadier coexistence = lower fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	var totalFitness, totalQuality float64

	for _, seed := range fe.seeds {
		result := fe.runSimulation(x, seed)
		quality := computeQuality(result)
		totalFitness += -(float64(result.survivalTicks) * (1.0 + 0.2*quality))
		totalQuality += quality
	}

	n := float64(len(fe.seeds))
	fe.lastQuality = totalQuality / n
	return totalFitness / n
}

// runSimulation executes a single headless run until collapse or
// maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		panic(err)
	}
	fe.params.ApplyToConfig(cfg, x)
	config.Set(cfg)

	g, err := game.NewGame(game.Options{Seed: seed})
	if err != nil {
		panic(err)
	}
	defer g.Close()

	result := &runResult{}

	dt := cfg.Physics.DT
	graceTicks := int32(extinctionGraceSec / dt)
	warmupTicks := int32(5.0 / dt)
	sampleTicks := int32(sampleIntervalSec / dt)

	var herbBelow, carnBelow int32

	for g.Tick() < fe.maxTicks {
		g.Step()
		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		plants := g.Count(components.ArchetypePlant)
		herbs := g.Count(components.ArchetypeHerbivore)
		carns := g.Count(components.ArchetypeCarnivore)

		if tick%sampleTicks == 0 {
			result.plantSamples = append(result.plantSamples, float64(plants))
			result.herbSamples = append(result.herbSamples, float64(herbs))
			result.carnSamples = append(result.carnSamples, float64(carns))
		}

		// Hard extinction: an archetype completely gone. The respawn
		// floor normally prevents this, so reaching zero means the
		// economy cannot sustain the archetype at all.
		if plants == 0 || herbs == 0 || carns == 0 {
			result.survivalTicks = tick
			return result
		}

		// Functional extinction: below minimum viable population for
		// too long.
		if herbs < minViablePop {
			herbBelow++
		} else {
			herbBelow = 0
		}
		if carns < minViablePop {
			carnBelow++
		} else {
			carnBelow = 0
		}
		if herbBelow >= graceTicks || carnBelow >= graceTicks {
			result.survivalTicks = tick
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.4
	qualityWeightStability = 0.6
)

// computeQuality scores coexistence quality in [0, 1]: a healthy
// herbivore-to-carnivore ratio plus steady population counts.
func computeQuality(r *runResult) float64 {
	if len(r.herbSamples) < 2 {
		return 0
	}

	// Ratio score: herbivores outnumbering carnivores roughly 4:1.
	var ratioSum float64
	var ratioCount int
	for i := range r.herbSamples {
		if r.carnSamples[i] == 0 {
			continue
		}
		ratio := r.herbSamples[i] / r.carnSamples[i]
		logErr := math.Log(ratio / 4.0)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++
	}
	if ratioCount == 0 {
		return 0
	}
	ratioScore := ratioSum / float64(ratioCount)

	// Stability score: low coefficient of variation across samples.
	cvHerb := cv(r.herbSamples)
	cvCarn := cv(r.carnSamples)
	stabilityScore := math.Exp(-(cvHerb*cvHerb + cvCarn*cvCarn))

	return clamp01(qualityWeightRatio*ratioScore + qualityWeightStability*stabilityScore)
}

// cv computes the coefficient of variation (std/mean) of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
