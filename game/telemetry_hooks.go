package game

import (
	"log/slog"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	lockDistances := g.sampleLockDistances()

	stats := g.collector.Flush(g.tick, g.droneCount, g.turretCount, lockDistances)
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleLockDistances collects the current target distance of every
// actor holding a lock.
func (g *Game) sampleLockDistances() []float64 {
	var distances []float64

	query := g.actors.Query()
	for query.Next() {
		_, _, gl := query.Get()
		if gl.Distance > 0 {
			distances = append(distances, float64(gl.Distance))
		}
	}

	return distances
}
