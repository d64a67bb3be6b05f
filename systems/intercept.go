// Package systems contains the per-tick ECS systems for the skirmish
// simulation.
package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// interceptEpsilon guards the quadratic's leading coefficient. When the
// projectile speed and the relative target speed nearly cancel, the
// equation degenerates and lead compensation falls back to a direct shot.
const interceptEpsilon = 1e-6

// InterceptVector returns the lead-compensated aim vector from origin to a
// target at targetPos moving with relVel (target velocity minus shooter
// velocity), for a projectile of the given speed. The result's direction
// is the aim direction; its magnitude is the lead-compensated distance.
//
// The interception time t solves |d + relVel*t| = speed*t, a quadratic
//
//	(speed² - |relVel|²)t² - 2(d·relVel)t - |d|² = 0
//
// with d = targetPos - origin. The smallest strictly positive root is
// used. Unreachable geometry (negative discriminant, no positive root,
// or a near-zero leading coefficient) falls back to t = 0: aim straight
// at the target's current position. A target exactly at the origin yields
// the zero vector; callers must treat that as "no valid aim direction".
func InterceptVector(origin, targetPos, relVel mgl32.Vec3, projectileSpeed float32) mgl32.Vec3 {
	d := targetPos.Sub(origin)

	a := projectileSpeed*projectileSpeed - relVel.Dot(relVel)
	if absFloat(a) < interceptEpsilon {
		return d
	}

	b := d.Dot(relVel)
	disc := b*b + a*d.Dot(d)
	if disc < 0 {
		return d
	}

	root := float32(math.Sqrt(float64(disc)))
	t := smallestPositive((b-root)/a, (b+root)/a)
	if t <= 0 {
		return d
	}
	return d.Add(relVel.Mul(t))
}

// smallestPositive returns the smallest strictly positive of a and b,
// or 0 when neither is positive.
func smallestPositive(a, b float32) float32 {
	switch {
	case a > 0 && b > 0:
		if a < b {
			return a
		}
		return b
	case a > 0:
		return a
	case b > 0:
		return b
	}
	return 0
}
