package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated combat statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Force counts at window end
	DroneCount  int `csv:"drones"`
	TurretCount int `csv:"turrets"`

	// Events during window
	DroneShots   int `csv:"drone_shots"`
	TurretShots  int `csv:"turret_shots"`
	Impacts      int `csv:"impacts"`
	DroneKills   int `csv:"drone_kills"`  // Drones destroyed
	TurretKills  int `csv:"turret_kills"` // Turrets destroyed
	LockAcquired int `csv:"locks_acquired"`
	LockDropped  int `csv:"locks_dropped"`
	IdleTicks    int `csv:"idle_ticks"` // Actor ticks spent without a target

	HitRate float64 `csv:"hit_rate"`

	// Lock distance distribution (sampled at window end)
	LockDistMean float64 `csv:"lock_dist_mean"`
	LockDistStd  float64 `csv:"lock_dist_std"`
	LockDistP10  float64 `csv:"lock_dist_p10"`
	LockDistP50  float64 `csv:"lock_dist_p50"`
	LockDistP90  float64 `csv:"lock_dist_p90"`
}

// ComputeDistStats calculates mean, std, and percentiles from lock
// distance samples. Returns zeros for an empty slice.
func ComputeDistStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("drones", s.DroneCount),
		slog.Int("turrets", s.TurretCount),
		slog.Int("drone_shots", s.DroneShots),
		slog.Int("turret_shots", s.TurretShots),
		slog.Int("impacts", s.Impacts),
		slog.Int("drone_kills", s.DroneKills),
		slog.Int("turret_kills", s.TurretKills),
		slog.Int("locks_acquired", s.LockAcquired),
		slog.Int("locks_dropped", s.LockDropped),
		slog.Int("idle_ticks", s.IdleTicks),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("lock_dist_mean", s.LockDistMean),
		slog.Float64("lock_dist_std", s.LockDistStd),
		slog.Float64("lock_dist_p10", s.LockDistP10),
		slog.Float64("lock_dist_p50", s.LockDistP50),
		slog.Float64("lock_dist_p90", s.LockDistP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"drones", s.DroneCount,
		"turrets", s.TurretCount,
		"drone_shots", s.DroneShots,
		"turret_shots", s.TurretShots,
		"impacts", s.Impacts,
		"drone_kills", s.DroneKills,
		"turret_kills", s.TurretKills,
		"locks_acquired", s.LockAcquired,
		"locks_dropped", s.LockDropped,
		"idle_ticks", s.IdleTicks,
		"hit_rate", s.HitRate,
		"lock_dist_mean", s.LockDistMean,
		"lock_dist_std", s.LockDistStd,
		"lock_dist_p10", s.LockDistP10,
		"lock_dist_p50", s.LockDistP50,
		"lock_dist_p90", s.LockDistP90,
	)
}
