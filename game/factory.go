package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
	"github.com/voidloop/skirmish/config"
	"github.com/voidloop/skirmish/systems"
)

// DroneClass selects a drone hull template.
type DroneClass uint8

const (
	ClassPraetor DroneClass = iota
	ClassInfiltrator
)

// ParseDroneClass maps a scenario class name to a hull template.
// Unknown names fall back to the Praetor.
func ParseDroneClass(name string) DroneClass {
	if name == "infiltrator" {
		return ClassInfiltrator
	}
	return ClassPraetor
}

// facingRotation builds an orientation whose forward axis points along dir.
// A zero dir keeps the identity orientation.
func facingRotation(dir mgl32.Vec3) components.Rotation {
	rot := components.NewRotation()
	if dir.Len() < 1e-6 {
		return rot
	}
	axis, angle := systems.RotationArc(rot.Forward(), dir.Normalize())
	if angle > 0 {
		rot.Quat = mgl32.QuatRotate(angle, axis).Mul(rot.Quat).Normalize()
	}
	return rot
}

// gunOffsets spreads n mountpoints on a ring just outside the hull radius.
func gunOffsets(n int, bodyRadius float32) []mgl32.Vec3 {
	offsets := make([]mgl32.Vec3, n)
	if n == 1 {
		offsets[0] = mgl32.Vec3{0, bodyRadius * 1.2, 0}
		return offsets
	}
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		offsets[i] = mgl32.Vec3{
			float32(math.Cos(angle)) * bodyRadius * 1.2,
			float32(math.Sin(angle)) * bodyRadius * 1.2,
			0,
		}
	}
	return offsets
}

// attachGuns spawns gun entities mounted on the owner.
func (g *Game) attachGuns(owner ecs.Entity, pos mgl32.Vec3, rot components.Rotation, count int, rateOfFire, bodyRadius float32) []ecs.Entity {
	guns := make([]ecs.Entity, 0, count)
	for _, offset := range gunOffsets(count, bodyRadius) {
		gunPos := components.Position{Vec3: pos.Add(rot.Quat.Rotate(offset))}
		gunRot := rot
		mp := components.Mountpoint{Owner: owner, Offset: offset}
		trigger := components.Trigger{}
		gun := components.NewGun(rateOfFire)
		guns = append(guns, g.gunMapper.NewEntity(&gunPos, &gunRot, &mp, &trigger, &gun))
	}
	return guns
}

func doctrineFromConfig(dc config.DoctrineConfig) components.FiringDoctrine {
	return components.FiringDoctrine{
		TargetRadius:   float32(dc.TargetRadius),
		ThresholdFloor: float32(dc.ThresholdFloor),
		NearDistance:   float32(dc.NearDistance),
		MaxRange:       float32(dc.MaxRange),
	}
}

// SpawnDrone creates a drone of the given class with its guns.
func (g *Game) SpawnDrone(class DroneClass, position, facing mgl32.Vec3) ecs.Entity {
	cfg := g.cfg

	tpl := cfg.Drones.Praetor
	maxRot := cfg.Derived.DroneRotPraetor
	if class == ClassInfiltrator {
		tpl = cfg.Drones.Infiltrator
		maxRot = cfg.Derived.DroneRotInfil
	}

	pos := components.Position{Vec3: position}
	vel := components.Velocity{}
	rot := facingRotation(facing)
	body := components.Body{
		Radius: float32(tpl.BodyRadius),
		HP:     components.NewHitPoints(tpl.HitPoints),
	}
	faction := components.Faction{Tag: components.FactionDrones}
	gl := components.GunLayer{}
	chassis := components.Chassis{
		MaxRotationSpeed: maxRot,
		TurnGain:         float32(cfg.Drones.TurnGain),
		Thrust:           float32(cfg.Drones.Thrust),
		Standoff:         float32(cfg.Drones.Standoff),
		MaxSpeed:         float32(cfg.Drones.MaxSpeed),
		Mass:             float32(cfg.Drones.Mass),
	}
	battery := components.Battery{Doctrine: doctrineFromConfig(cfg.Drones.Doctrine)}

	e := g.droneMapper.NewEntity(&pos, &vel, &rot, &body, &faction, &gl, &chassis, &battery)

	guns := g.attachGuns(e, position, rot, tpl.Guns, float32(tpl.RateOfFire), body.Radius)
	g.batteryMap.Get(e).Guns = guns

	g.droneCount++
	return e
}

// SpawnTurret creates a stationary turret with its barrels.
func (g *Game) SpawnTurret(position, facing mgl32.Vec3) ecs.Entity {
	cfg := g.cfg

	pos := components.Position{Vec3: position}
	rot := facingRotation(facing)
	body := components.Body{
		Radius: float32(cfg.Turrets.BodyRadius),
		HP:     components.NewHitPoints(cfg.Turrets.HitPoints),
	}
	faction := components.Faction{Tag: components.FactionTurrets}
	gl := components.GunLayer{}
	// The slew joint pivots around the turret's up axis as placed.
	mount := components.Mount{
		Pivot:         rot.Up(),
		RotationSpeed: cfg.Derived.TurretRot,
	}
	battery := components.Battery{Doctrine: doctrineFromConfig(cfg.Turrets.Doctrine)}

	e := g.turretMapper.NewEntity(&pos, &rot, &body, &faction, &gl, &mount, &battery)

	barrels := cfg.Turrets.Barrels
	if barrels < 1 {
		barrels = 1
	}
	guns := g.attachGuns(e, position, rot, barrels, float32(cfg.Turrets.RateOfFire), body.Radius)
	g.batteryMap.Get(e).Guns = guns

	g.turretCount++
	return e
}

// SpawnDerelict creates an inert targetable hulk. Derelicts carry no
// faction, so both sides will engage them.
func (g *Game) SpawnDerelict(position mgl32.Vec3, radius float32) ecs.Entity {
	pos := components.Position{Vec3: position}
	body := components.Body{
		Radius: radius,
		HP:     components.NewHitPoints(500),
	}
	return g.wreckMapper.NewEntity(&pos, &body)
}

// spawnProjectile creates a projectile from a muzzle flash.
func (g *Game) spawnProjectile(flash systems.MuzzleFlash) ecs.Entity {
	cfg := g.cfg

	pos := components.Position{Vec3: flash.Pos}
	vel := components.Velocity{Linear: flash.Dir.Mul(cfg.Derived.ProjectileSpeed32)}
	proj := components.Projectile{
		Damage:   cfg.Weapons.Damage,
		Lifetime: float32(cfg.Weapons.Lifetime),
		Shooter:  flash.Shooter,
	}
	return g.projMapper.NewEntity(&pos, &vel, &proj)
}
