package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

const angularEpsilon = 1e-6

// MovementSystem integrates drone motion: thrust along the hull forward
// axis, linear damping, speed clamping, and angular velocity applied to
// the orientation quaternion.
type MovementSystem struct {
	drones  ecs.Filter4[components.Position, components.Velocity, components.Rotation, components.Chassis]
	dt      float32
	damping float32
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World, dt, linearDamping float32) *MovementSystem {
	return &MovementSystem{
		drones:  *ecs.NewFilter4[components.Position, components.Velocity, components.Rotation, components.Chassis](w),
		dt:      dt,
		damping: linearDamping,
	}
}

// Update advances all drones by one tick.
func (s *MovementSystem) Update(w *ecs.World) {
	query := s.drones.Query()
	for query.Next() {
		pos, vel, rot, chassis := query.Get()

		if chassis.Thrusting && chassis.Mass > 0 {
			accel := chassis.Thrust / chassis.Mass
			vel.Linear = vel.Linear.Add(rot.Forward().Mul(accel * s.dt))
		}

		vel.Linear = vel.Linear.Mul(s.damping)
		if speed := vel.Linear.Len(); speed > chassis.MaxSpeed && chassis.MaxSpeed > 0 {
			vel.Linear = vel.Linear.Mul(chassis.MaxSpeed / speed)
		}

		pos.Vec3 = pos.Add(vel.Linear.Mul(s.dt))

		if rate := vel.Angular.Len(); rate > angularEpsilon {
			axis := vel.Angular.Mul(1.0 / rate)
			rot.Quat = mgl32.QuatRotate(rate*s.dt, axis).Mul(rot.Quat).Normalize()
		}
	}
}
