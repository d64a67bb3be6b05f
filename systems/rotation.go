package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// rotationEpsilon is the sine magnitude below which two directions are
// treated as parallel or anti-parallel.
const rotationEpsilon = 1e-6

// RotationArc returns the minimal rotation (unit axis, angle in [0, π])
// that takes unit vector from onto unit vector to. Parallel inputs yield
// a zero axis and zero angle. Exactly opposed inputs are degenerate (any
// perpendicular axis works), so a deterministic perpendicular is chosen.
func RotationArc(from, to mgl32.Vec3) (mgl32.Vec3, float32) {
	dot := clampFloat(from.Dot(to), -1, 1)
	cross := from.Cross(to)
	sin := cross.Len()

	if sin < rotationEpsilon {
		if dot > 0 {
			return mgl32.Vec3{}, 0
		}
		return perpendicular(from), math.Pi
	}
	return cross.Mul(1 / sin), float32(math.Acos(float64(dot)))
}

// perpendicular returns a unit vector orthogonal to v, built by crossing
// v with the basis axis it is least aligned with.
func perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	basis := mgl32.Vec3{1, 0, 0}
	if absFloat(v.X()) > absFloat(v.Y()) {
		basis = mgl32.Vec3{0, 1, 0}
	}
	return v.Cross(basis).Normalize()
}
