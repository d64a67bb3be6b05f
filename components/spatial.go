package components

import "github.com/go-gl/mathgl/mgl32"

// Position is an entity's world-space position.
type Position struct {
	mgl32.Vec3
}

// Velocity holds an entity's linear and angular velocity.
// Angular is an axis-scaled rate vector: direction is the rotation axis,
// magnitude the rate in radians per second.
type Velocity struct {
	Linear  mgl32.Vec3
	Angular mgl32.Vec3
}

// Rotation is an entity's world-space orientation.
type Rotation struct {
	Quat mgl32.Quat
}

// NewRotation returns an identity orientation.
func NewRotation() Rotation {
	return Rotation{Quat: mgl32.QuatIdent()}
}

// Forward returns the entity's forward direction (+Z rotated by the
// orientation).
func (r *Rotation) Forward() mgl32.Vec3 {
	return r.Quat.Rotate(mgl32.Vec3{0, 0, 1})
}

// Up returns the entity's up direction (+Y rotated by the orientation).
func (r *Rotation) Up() mgl32.Vec3 {
	return r.Quat.Rotate(mgl32.Vec3{0, 1, 0})
}
