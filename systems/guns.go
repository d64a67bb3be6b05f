package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// MuzzleFlash describes one shot to be spawned after the gun pass.
// Spawning is deferred because entities cannot be created while a query
// is open.
type MuzzleFlash struct {
	Pos     mgl32.Vec3
	Dir     mgl32.Vec3
	Shooter ecs.Entity
}

// GunSystem advances rate-of-fire timers and fires pulled triggers. A gun
// whose trigger stays pulled emits a steady train of shots at its
// configured rate; releasing the trigger pauses and re-arms the timer so
// the next pull fires immediately. Runs after the fire controller.
type GunSystem struct {
	guns  ecs.Filter4[components.Position, components.Rotation, components.Trigger, components.Gun]
	mpMap *ecs.Map[components.Mountpoint]
	dt    float32

	pending []MuzzleFlash
}

// NewGunSystem creates a new gun system.
func NewGunSystem(w *ecs.World, dt float32) *GunSystem {
	return &GunSystem{
		guns:  *ecs.NewFilter4[components.Position, components.Rotation, components.Trigger, components.Gun](w),
		mpMap: ecs.NewMap[components.Mountpoint](w),
		dt:    dt,
	}
}

// Update consumes triggers and collects the shots fired this tick.
func (s *GunSystem) Update(w *ecs.World) {
	s.pending = s.pending[:0]

	query := s.guns.Query()
	for query.Next() {
		pos, rot, trigger, gun := query.Get()

		fired := false
		if !gun.Paused {
			gun.Elapsed += s.dt
			if gun.Elapsed >= gun.Interval {
				gun.Elapsed -= gun.Interval
				fired = true
			}
		}

		if trigger.Pulled {
			trigger.Pulled = false
			if gun.Paused {
				// First shot after a pause is immediate.
				gun.Paused = false
				gun.Elapsed = 0
				fired = true
			}
		} else if fired {
			// Released as the timer lapsed: swallow the shot and re-arm.
			gun.Elapsed = 0
			gun.Paused = true
			fired = false
		}

		if fired {
			shooter := ecs.Entity{}
			if e := query.Entity(); s.mpMap.Has(e) {
				shooter = s.mpMap.Get(e).Owner
			}
			s.pending = append(s.pending, MuzzleFlash{
				Pos:     pos.Vec3,
				Dir:     rot.Forward(),
				Shooter: shooter,
			})
		}
	}
}

// Pending returns the shots collected by the last Update call. The caller
// spawns the projectiles once all queries are closed.
func (s *GunSystem) Pending() []MuzzleFlash {
	return s.pending
}
