// Package components defines ECS components for the skirmish simulation.
package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
)

// FactionTag enumerates allegiances.
type FactionTag uint8

const (
	FactionDrones FactionTag = iota
	FactionTurrets
)

// String returns the display name for a faction tag.
func (t FactionTag) String() string {
	switch t {
	case FactionDrones:
		return "Drones"
	case FactionTurrets:
		return "Turrets"
	}
	return "Unknown"
}

// Faction tags an entity's allegiance. Entities without the component are
// unaligned and may be engaged by anyone.
type Faction struct {
	Tag FactionTag
}

// GunLayer holds the per-tick aiming solution for a gun-bearing actor:
// the rotation (Axis, Angle) that aligns the actor's forward direction
// with the lead-compensated aim point, and the distance to that point.
// Angle and Distance both zero is the "no target" sentinel; consumers
// must check it before acting.
type GunLayer struct {
	Target   ecs.Entity
	Axis     mgl32.Vec3
	Angle    float32
	Distance float32
}

// Idle reports the no-target sentinel.
func (g *GunLayer) Idle() bool {
	return g.Angle == 0 && g.Distance == 0
}

// FiringDoctrine holds the fire-decision tunables for one actor class.
type FiringDoctrine struct {
	// TargetRadius is the assumed target size; TargetRadius/distance is the
	// base angular threshold under which the actor opens fire.
	TargetRadius float32
	// ThresholdFloor is the minimum angular threshold.
	ThresholdFloor float32
	// NearDistance scopes the floor: when > 0 the floor applies only inside
	// this range; when 0 it applies at all ranges.
	NearDistance float32
	// MaxRange gates engagement distance; 0 disables the gate.
	MaxRange float32
}

// Threshold returns the angular threshold for the given target distance.
func (d FiringDoctrine) Threshold(distance float32) float32 {
	threshold := d.TargetRadius / distance
	if d.NearDistance == 0 || distance < d.NearDistance {
		if threshold < d.ThresholdFloor {
			threshold = d.ThresholdFloor
		}
	}
	return threshold
}

// InRange reports whether the doctrine permits engaging at the distance.
func (d FiringDoctrine) InRange(distance float32) bool {
	return d.MaxRange == 0 || distance < d.MaxRange
}

// Battery links an actor to its gun entities and firing doctrine.
type Battery struct {
	Guns     []ecs.Entity
	Doctrine FiringDoctrine
}

// Chassis holds a drone's flight parameters. Drones aim with their whole
// hull: steering sets the angular velocity from the gun-layer solution.
type Chassis struct {
	MaxRotationSpeed float32 // angular velocity limit, rad/s
	TurnGain         float32 // aim angle to angular rate gain
	Thrust           float32 // force along forward when closing
	Standoff         float32 // hold distance; no thrust when closer
	MaxSpeed         float32
	Mass             float32

	// Thrusting is set by the steering system and consumed by movement.
	Thrusting bool
}

// Mount holds a turret's rotation constraint. Turrets rotate only around
// the pivot axis, at a limited rate.
type Mount struct {
	Pivot         mgl32.Vec3 // world-space pivot axis, unit length
	RotationSpeed float32    // rad/s
}
