package telemetry

import (
	"math"
	"testing"

	"github.com/voidloop/skirmish/components"
)

func TestCollectorWindowTicks(t *testing.T) {
	c := NewCollector(5.0, 0.1)
	if got := c.WindowDurationTicks(); got != 50 {
		t.Errorf("WindowDurationTicks() = %d, want 50", got)
	}

	// The float32 step must not truncate the window a tick short.
	c = NewCollector(5.0, 0.0166667)
	if got := c.WindowDurationTicks(); got != 300 {
		t.Errorf("WindowDurationTicks() = %d, want 300", got)
	}

	// A window shorter than one tick still flushes every tick.
	c = NewCollector(0.001, 0.1)
	if got := c.WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks() = %d, want clamped 1", got)
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(5.0, 0.1)

	if c.ShouldFlush(49) {
		t.Errorf("ShouldFlush(49) = true, want false")
	}
	if !c.ShouldFlush(50) {
		t.Errorf("ShouldFlush(50) = false, want true")
	}

	c.Flush(50, 0, 0, nil)

	// The window start advances on flush.
	if c.ShouldFlush(99) {
		t.Errorf("ShouldFlush(99) after flush = true, want false")
	}
	if !c.ShouldFlush(100) {
		t.Errorf("ShouldFlush(100) after flush = false, want true")
	}
}

func TestCollectorFlushAggregatesAndResets(t *testing.T) {
	c := NewCollector(5.0, 0.1)

	c.RecordShot(components.FactionDrones)
	c.RecordShot(components.FactionDrones)
	c.RecordShot(components.FactionTurrets)
	c.RecordImpact()
	c.RecordKill(components.FactionTurrets)
	c.RecordLockAcquired()
	c.RecordLockAcquired()
	c.RecordLockDropped()
	c.RecordIdleTick()

	stats := c.Flush(50, 7, 3, []float64{100, 200})

	if stats.DroneShots != 2 || stats.TurretShots != 1 {
		t.Errorf("shots = %d/%d, want 2/1", stats.DroneShots, stats.TurretShots)
	}
	if stats.Impacts != 1 {
		t.Errorf("impacts = %d, want 1", stats.Impacts)
	}
	if stats.DroneKills != 0 || stats.TurretKills != 1 {
		t.Errorf("kills = %d/%d, want 0/1", stats.DroneKills, stats.TurretKills)
	}
	if stats.LockAcquired != 2 || stats.LockDropped != 1 {
		t.Errorf("locks = %d/%d, want 2/1", stats.LockAcquired, stats.LockDropped)
	}
	if stats.IdleTicks != 1 {
		t.Errorf("idle ticks = %d, want 1", stats.IdleTicks)
	}
	if stats.DroneCount != 7 || stats.TurretCount != 3 {
		t.Errorf("counts = %d/%d, want 7/3", stats.DroneCount, stats.TurretCount)
	}
	if math.Abs(stats.HitRate-1.0/3.0) > 0.001 {
		t.Errorf("hit rate = %v, want 1/3", stats.HitRate)
	}
	if math.Abs(stats.LockDistMean-150) > 0.001 {
		t.Errorf("lock dist mean = %v, want 150", stats.LockDistMean)
	}
	if math.Abs(stats.SimTimeSec-5.0) > 0.001 {
		t.Errorf("sim time = %v, want 5.0", stats.SimTimeSec)
	}

	// Counters reset after flush.
	next := c.Flush(100, 7, 3, nil)
	if next.DroneShots != 0 || next.Impacts != 0 || next.LockAcquired != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 50 {
		t.Errorf("window start = %d, want 50", next.WindowStartTick)
	}
}

func TestCollectorHitRateNoShots(t *testing.T) {
	c := NewCollector(5.0, 0.1)
	stats := c.Flush(50, 0, 0, nil)
	if stats.HitRate != 0 {
		t.Errorf("hit rate = %v, want 0 with no shots", stats.HitRate)
	}
}
