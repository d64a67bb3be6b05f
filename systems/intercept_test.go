package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// vecNear reports whether two vectors agree within tol per axis.
func vecNear(a, b mgl32.Vec3, tol float32) bool {
	return absFloat(a.X()-b.X()) <= tol &&
		absFloat(a.Y()-b.Y()) <= tol &&
		absFloat(a.Z()-b.Z()) <= tol
}

func TestInterceptVector_StationaryTarget(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{0, 0, 50}

	aim := InterceptVector(origin, target, mgl32.Vec3{}, 100)

	// No relative motion: aim straight at the target.
	if !vecNear(aim, mgl32.Vec3{0, 0, 50}, 1e-4) {
		t.Errorf("aim = %v, want {0 0 50}", aim)
	}
}

func TestInterceptVector_CrossingTarget(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{0, 0, 100}
	relVel := mgl32.Vec3{10, 0, 0}

	aim := InterceptVector(origin, target, relVel, 100)

	// Lead point: target position plus velocity times flight time, and
	// the projectile must cover |aim| in exactly that time.
	dist := float64(aim.Len())
	tof := dist / 100
	lead := target.Add(relVel.Mul(float32(tof)))
	if !vecNear(aim, lead, 1e-3) {
		t.Errorf("aim = %v, want lead point %v", aim, lead)
	}
	if aim.X() <= 0 {
		t.Errorf("aim.X = %f, want positive lead in direction of target motion", aim.X())
	}
}

func TestInterceptVector_ClosingTarget(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{0, 0, 200}
	relVel := mgl32.Vec3{0, 0, -50}

	aim := InterceptVector(origin, target, relVel, 100)

	// Head-on approach: lead point is short of the current position.
	if aim.Z() >= 200 {
		t.Errorf("aim.Z = %f, want less than 200 for closing target", aim.Z())
	}
	if aim.Z() <= 0 {
		t.Errorf("aim.Z = %f, want positive", aim.Z())
	}

	// Flight time consistency check.
	tof := aim.Len() / 100
	wantZ := 200 - 50*tof
	if absFloat(aim.Z()-wantZ) > 1e-3 {
		t.Errorf("aim.Z = %f, want %f", aim.Z(), wantZ)
	}
}

func TestInterceptVector_UnreachableTarget(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{0, 0, 100}
	// Receding faster than the projectile can fly.
	relVel := mgl32.Vec3{0, 0, 150}

	aim := InterceptVector(origin, target, relVel, 100)

	// Falls back to pointing at the current position.
	if !vecNear(aim, target.Sub(origin), 1e-4) {
		t.Errorf("aim = %v, want fallback %v", aim, target.Sub(origin))
	}
}

func TestInterceptVector_MatchedSpeeds(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{100, 0, 0}
	// Relative speed equals projectile speed: quadratic degenerates.
	relVel := mgl32.Vec3{0, 100, 0}

	aim := InterceptVector(origin, target, relVel, 100)

	if math.IsNaN(float64(aim.X())) || math.IsNaN(float64(aim.Y())) || math.IsNaN(float64(aim.Z())) {
		t.Fatalf("aim contains NaN: %v", aim)
	}
	if !vecNear(aim, target, 1e-4) {
		t.Errorf("aim = %v, want fallback %v", aim, target)
	}
}

func TestInterceptVector_ZeroDistance(t *testing.T) {
	p := mgl32.Vec3{5, 5, 5}

	aim := InterceptVector(p, p, mgl32.Vec3{1, 2, 3}, 100)

	if aim.Len() > 1e-6 {
		t.Errorf("aim = %v, want zero vector for coincident positions", aim)
	}
}

func TestSmallestPositive(t *testing.T) {
	tests := []struct {
		name string
		a, b float32
		want float32
	}{
		{"both positive", 2, 3, 2},
		{"both positive reversed", 3, 2, 2},
		{"one negative", -1, 4, 4},
		{"other negative", 4, -1, 4},
		{"both negative", -2, -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := smallestPositive(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("smallestPositive(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
