// Package telemetry collects windowed simulation statistics and tick
// timing, and writes both to CSV for offline analysis.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	PlantCount     int `csv:"plants"`
	HerbivoreCount int `csv:"herbivores"`
	CarnivoreCount int `csv:"carnivores"`

	// Events during window
	PlantBirths     int `csv:"plant_births"`
	HerbivoreBirths int `csv:"herbivore_births"`
	CarnivoreBirths int `csv:"carnivore_births"`
	PlantDeaths     int `csv:"plant_deaths"`
	HerbivoreDeaths int `csv:"herbivore_deaths"`
	CarnivoreDeaths int `csv:"carnivore_deaths"`

	// Feeding
	Grazes         int     `csv:"grazes"`
	BitesAttempted int     `csv:"bites_attempted"`
	BitesHit       int     `csv:"bites_hit"`
	Kills          int     `csv:"kills"`
	HitRate        float64 `csv:"hit_rate"`
	KillRate       float64 `csv:"kill_rate"`

	// Hunger distribution (sampled at window end)
	HerbHungerMean float64 `csv:"herb_hunger_mean"`
	HerbHungerStd  float64 `csv:"herb_hunger_std"`
	CarnHungerMean float64 `csv:"carn_hunger_mean"`
	CarnHungerStd  float64 `csv:"carn_hunger_std"`

	// Energy distribution (sampled at window end)
	HerbEnergyMean float64 `csv:"herb_energy_mean"`
	HerbEnergyP10  float64 `csv:"herb_energy_p10"`
	HerbEnergyP50  float64 `csv:"herb_energy_p50"`
	HerbEnergyP90  float64 `csv:"herb_energy_p90"`

	CarnEnergyMean float64 `csv:"carn_energy_mean"`
	CarnEnergyP10  float64 `csv:"carn_energy_p10"`
	CarnEnergyP50  float64 `csv:"carn_energy_p50"`
	CarnEnergyP90  float64 `csv:"carn_energy_p90"`
}

// PoolStats summarizes one vitals pool across the population.
type PoolStats struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// ComputePoolStats calculates mean, standard deviation, and percentiles
// of the given values. Returns zeros for an empty slice.
func ComputePoolStats(values []float64) PoolStats {
	if len(values) == 0 {
		return PoolStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := PoolStats{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("plants", s.PlantCount),
		slog.Int("herbivores", s.HerbivoreCount),
		slog.Int("carnivores", s.CarnivoreCount),
		slog.Int("plant_births", s.PlantBirths),
		slog.Int("herbivore_births", s.HerbivoreBirths),
		slog.Int("carnivore_births", s.CarnivoreBirths),
		slog.Int("plant_deaths", s.PlantDeaths),
		slog.Int("herbivore_deaths", s.HerbivoreDeaths),
		slog.Int("carnivore_deaths", s.CarnivoreDeaths),
		slog.Int("grazes", s.Grazes),
		slog.Int("bites_attempted", s.BitesAttempted),
		slog.Int("bites_hit", s.BitesHit),
		slog.Int("kills", s.Kills),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("kill_rate", s.KillRate),
		slog.Float64("herb_hunger_mean", s.HerbHungerMean),
		slog.Float64("carn_hunger_mean", s.CarnHungerMean),
		slog.Float64("herb_energy_mean", s.HerbEnergyMean),
		slog.Float64("carn_energy_mean", s.CarnEnergyMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"plants", s.PlantCount,
		"herbivores", s.HerbivoreCount,
		"carnivores", s.CarnivoreCount,
		"plant_births", s.PlantBirths,
		"herbivore_births", s.HerbivoreBirths,
		"carnivore_births", s.CarnivoreBirths,
		"plant_deaths", s.PlantDeaths,
		"herbivore_deaths", s.HerbivoreDeaths,
		"carnivore_deaths", s.CarnivoreDeaths,
		"grazes", s.Grazes,
		"bites_attempted", s.BitesAttempted,
		"bites_hit", s.BitesHit,
		"kills", s.Kills,
		"hit_rate", s.HitRate,
		"kill_rate", s.KillRate,
		"herb_hunger_mean", s.HerbHungerMean,
		"carn_hunger_mean", s.CarnHungerMean,
		"herb_energy_mean", s.HerbEnergyMean,
		"carn_energy_mean", s.CarnEnergyMean,
	)
}
