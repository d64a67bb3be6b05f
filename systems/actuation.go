package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// TurretOrientationSystem rotates turret mounts toward the gun-layer
// solution. The mount only rotates around its pivot axis, so the aim
// rotation is projected onto the pivot and the step clamped by the
// mount's rotation speed. Runs after the gun-layer system.
type TurretOrientationSystem struct {
	turrets ecs.Filter3[components.Rotation, components.GunLayer, components.Mount]
	dt      float32
}

// NewTurretOrientationSystem creates a new turret orientation system.
func NewTurretOrientationSystem(w *ecs.World, dt float32) *TurretOrientationSystem {
	return &TurretOrientationSystem{
		turrets: *ecs.NewFilter3[components.Rotation, components.GunLayer, components.Mount](w),
		dt:      dt,
	}
}

// Update applies one tick of clamped rotation per turret.
func (s *TurretOrientationSystem) Update(w *ecs.World) {
	query := s.turrets.Query()
	for query.Next() {
		rot, gl, mount := query.Get()

		if gl.Angle == 0 {
			continue
		}

		limit := mount.RotationSpeed * s.dt
		step := clampFloat(mount.Pivot.Dot(gl.Axis)*gl.Angle, -limit, limit)
		rot.Quat = mgl32.QuatRotate(step, mount.Pivot).Mul(rot.Quat).Normalize()
	}
}

// DroneSteeringSystem turns the gun-layer solution into drone motion
// intent: angular velocity toward the aim point, clamped by the chassis
// rotation limit, and forward thrust while closing on a distant target.
// Runs after the gun-layer system.
type DroneSteeringSystem struct {
	drones ecs.Filter3[components.Velocity, components.GunLayer, components.Chassis]
}

// NewDroneSteeringSystem creates a new drone steering system.
func NewDroneSteeringSystem(w *ecs.World) *DroneSteeringSystem {
	return &DroneSteeringSystem{
		drones: *ecs.NewFilter3[components.Velocity, components.GunLayer, components.Chassis](w),
	}
}

// Update sets angular velocity and thrust intent per drone. With no
// target (distance 0) the drone stops turning and thrusting.
func (s *DroneSteeringSystem) Update(w *ecs.World) {
	query := s.drones.Query()
	for query.Next() {
		vel, gl, chassis := query.Get()

		rate := clampFloat(gl.Angle*chassis.TurnGain, -chassis.MaxRotationSpeed, chassis.MaxRotationSpeed)
		vel.Angular = gl.Axis.Mul(rate)

		chassis.Thrusting = gl.Distance > chassis.Standoff && gl.Angle <= math.Pi/4
	}
}
