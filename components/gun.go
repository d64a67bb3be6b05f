package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
)

// Trigger latches a fire request for the current tick. The gun system
// consumes and clears it.
type Trigger struct {
	Pulled bool
}

// Pull requests a shot this tick.
func (t *Trigger) Pull() {
	t.Pulled = true
}

// Gun fires projectiles no faster than its configured rate. The timer
// pauses while the trigger is released, so the first shot after a pause
// is immediate.
type Gun struct {
	Interval float32 // seconds between shots
	Elapsed  float32
	Paused   bool
}

// NewGun returns a ready-to-fire gun with the given rate of fire in
// shots per second.
func NewGun(rateOfFire float32) Gun {
	return Gun{Interval: 1.0 / rateOfFire, Paused: true}
}

// Mountpoint attaches a gun to its owning actor at a local offset.
// The mount system copies the owner's pose every tick.
type Mountpoint struct {
	Owner  ecs.Entity
	Offset mgl32.Vec3
}

// Projectile is a fired round in flight.
type Projectile struct {
	Damage   int32
	Lifetime float32 // seconds remaining
	Shooter  ecs.Entity
}
