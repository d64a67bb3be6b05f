package game

import (
	"fmt"
	"io"
	"time"

	"github.com/voidloop/skirmish/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogPerfStats logs a readable per-phase timing breakdown.
func (g *Game) LogPerfStats() {
	stats := g.perfCollector.Stats()
	Logf("=== Perf @ Tick %d ===", g.tick)
	Logf("Avg tick: %s (%.0f ticks/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond)

	phases := []string{
		telemetry.PhaseSpatialGrid, telemetry.PhaseAiming, telemetry.PhaseFireControl,
		telemetry.PhaseActuation, telemetry.PhaseMovement, telemetry.PhaseGuns,
		telemetry.PhaseProjectiles, telemetry.PhaseCleanup, telemetry.PhaseTelemetry,
	}
	for _, phase := range phases {
		if avg, ok := stats.PhaseAvg[phase]; ok {
			Logf("  %-18s %10s  %5.1f%%", g.registry.GetName(phase), avg.Round(time.Microsecond), stats.PhasePct[phase])
		}
	}
	Logf("")
}

// LogWorldState logs force counts and lock coverage.
func (g *Game) LogWorldState() {
	var actors, locked int

	query := g.actors.Query()
	for query.Next() {
		_, _, gl := query.Get()
		actors++
		if !gl.Idle() {
			locked++
		}
	}

	Logf("=== World @ Tick %d ===", g.tick)
	Logf("Drones: %d  Turrets: %d", g.droneCount, g.turretCount)
	Logf("Actors with a firing solution: %d/%d", locked, actors)
	Logf("")
}
