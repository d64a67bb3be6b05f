package telemetry

import (
	"math"

	"github.com/voidloop/skirmish/components"
)

// Collector accumulates combat events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	droneShots   int
	turretShots  int
	impacts      int
	droneKills   int
	turretKills  int
	lockAcquired int
	lockDropped  int
	idleTicks    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// dt widened from float32 can land the quotient just below the
	// integer (5.0/0.1 gives 49.999...), so round rather than truncate.
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordShot records a shot fired by the given faction.
func (c *Collector) RecordShot(faction components.FactionTag) {
	if faction == components.FactionDrones {
		c.droneShots++
	} else {
		c.turretShots++
	}
}

// RecordImpact records a projectile strike.
func (c *Collector) RecordImpact() {
	c.impacts++
}

// RecordKill records a destroyed entity of the given faction.
func (c *Collector) RecordKill(faction components.FactionTag) {
	if faction == components.FactionDrones {
		c.droneKills++
	} else {
		c.turretKills++
	}
}

// RecordLockAcquired records a new target lock.
func (c *Collector) RecordLockAcquired() {
	c.lockAcquired++
}

// RecordLockDropped records a lost target lock.
func (c *Collector) RecordLockDropped() {
	c.lockDropped++
}

// RecordIdleTick records one actor tick spent without a target.
func (c *Collector) RecordIdleTick() {
	c.idleTicks++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides current force counts and the lock distances sampled
// at window end.
func (c *Collector) Flush(
	currentTick int32,
	droneCount, turretCount int,
	lockDistances []float64,
) WindowStats {
	var hitRate float64
	if shots := c.droneShots + c.turretShots; shots > 0 {
		hitRate = float64(c.impacts) / float64(shots)
	}

	mean, std, p10, p50, p90 := ComputeDistStats(lockDistances)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		DroneCount:  droneCount,
		TurretCount: turretCount,

		DroneShots:   c.droneShots,
		TurretShots:  c.turretShots,
		Impacts:      c.impacts,
		DroneKills:   c.droneKills,
		TurretKills:  c.turretKills,
		LockAcquired: c.lockAcquired,
		LockDropped:  c.lockDropped,
		IdleTicks:    c.idleTicks,

		HitRate: hitRate,

		LockDistMean: mean,
		LockDistStd:  std,
		LockDistP10:  p10,
		LockDistP50:  p50,
		LockDistP90:  p90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.droneShots = 0
	c.turretShots = 0
	c.impacts = 0
	c.droneKills = 0
	c.turretKills = 0
	c.lockAcquired = 0
	c.lockDropped = 0
	c.idleTicks = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
