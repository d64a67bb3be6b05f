package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRotationArc_Aligned(t *testing.T) {
	v := mgl32.Vec3{0, 0, 1}

	axis, angle := RotationArc(v, v)

	if angle != 0 {
		t.Errorf("angle = %f, want 0 for aligned vectors", angle)
	}
	if axis.Len() != 0 {
		t.Errorf("axis = %v, want zero vector", axis)
	}
}

func TestRotationArc_Quarter(t *testing.T) {
	from := mgl32.Vec3{0, 0, 1}
	to := mgl32.Vec3{1, 0, 0}

	axis, angle := RotationArc(from, to)

	if absFloat(angle-math.Pi/2) > 1e-5 {
		t.Errorf("angle = %f, want pi/2", angle)
	}
	// Rotating from around the axis by the angle must land on to.
	got := mgl32.QuatRotate(angle, axis).Rotate(from)
	if !vecNear(got, to, 1e-5) {
		t.Errorf("rotated vector = %v, want %v", got, to)
	}
	if absFloat(axis.Len()-1) > 1e-5 {
		t.Errorf("axis length = %f, want unit", axis.Len())
	}
}

func TestRotationArc_Arbitrary(t *testing.T) {
	from := mgl32.Vec3{0, 0, 1}
	to := mgl32.Vec3{1, 2, -0.5}.Normalize()

	axis, angle := RotationArc(from, to)

	got := mgl32.QuatRotate(angle, axis).Rotate(from)
	if !vecNear(got, to, 1e-5) {
		t.Errorf("rotated vector = %v, want %v", got, to)
	}
}

func TestRotationArc_Opposed(t *testing.T) {
	from := mgl32.Vec3{0, 0, 1}
	to := mgl32.Vec3{0, 0, -1}

	axis, angle := RotationArc(from, to)

	if absFloat(angle-math.Pi) > 1e-5 {
		t.Errorf("angle = %f, want pi for opposed vectors", angle)
	}
	// Any perpendicular axis works; it must be unit length and orthogonal.
	if absFloat(axis.Len()-1) > 1e-5 {
		t.Errorf("axis length = %f, want unit", axis.Len())
	}
	if absFloat(axis.Dot(from)) > 1e-5 {
		t.Errorf("axis not perpendicular to from: dot = %f", axis.Dot(from))
	}

	got := mgl32.QuatRotate(angle, axis).Rotate(from)
	if !vecNear(got, to, 1e-5) {
		t.Errorf("rotated vector = %v, want %v", got, to)
	}
}

func TestPerpendicular(t *testing.T) {
	vectors := []mgl32.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
		{-3, 0.5, 2},
	}

	for _, v := range vectors {
		p := perpendicular(v)
		if absFloat(p.Len()-1) > 1e-5 {
			t.Errorf("perpendicular(%v) length = %f, want unit", v, p.Len())
		}
		if absFloat(p.Dot(v)) > 1e-5 {
			t.Errorf("perpendicular(%v) not orthogonal: dot = %f", v, p.Dot(v))
		}
	}
}
