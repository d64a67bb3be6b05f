package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
)

// jitter returns a random offset within the given radius on each axis.
func (g *Game) jitter(spacing float64) mgl32.Vec3 {
	s := float32(spacing)
	return mgl32.Vec3{
		(g.rng.Float32()*2 - 1) * s,
		(g.rng.Float32()*2 - 1) * s,
		(g.rng.Float32()*2 - 1) * s,
	}
}

func groupVec(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// spawnScenario populates the battlefield from the scenario config.
func (g *Game) spawnScenario() {
	for _, group := range g.cfg.Scenario.Drones {
		class := ParseDroneClass(group.Class)
		center := groupVec(group.Position)
		facing := groupVec(group.Facing)
		for i := 0; i < group.Count; i++ {
			g.SpawnDrone(class, center.Add(g.jitter(group.Spacing)), facing)
		}
	}

	for _, group := range g.cfg.Scenario.Turrets {
		center := groupVec(group.Position)
		facing := groupVec(group.Facing)
		for i := 0; i < group.Count; i++ {
			g.SpawnTurret(center.Add(g.jitter(group.Spacing)), facing)
		}
	}

	for _, group := range g.cfg.Scenario.Derelicts {
		center := groupVec(group.Position)
		radius := float32(group.Radius)
		if radius <= 0 {
			radius = 10
		}
		for i := 0; i < group.Count; i++ {
			g.SpawnDerelict(center.Add(g.jitter(group.Spacing)), radius)
		}
	}
}

// cleanupDead removes entities whose hit points are exhausted, plus any
// guns they carried. Removal happens after the query closes.
func (g *Game) cleanupDead() {
	var toRemove []ecs.Entity

	query := g.bodies.Query()
	for query.Next() {
		_, body := query.Get()
		if body.HP.Dead() {
			toRemove = append(toRemove, query.Entity())
		}
	}

	for _, dead := range toRemove {
		if g.factionMap.Has(dead) {
			g.collector.RecordKill(g.factionMap.Get(dead).Tag)
		}
		g.totalKills++

		// Remove carried guns first so mounts never dangle.
		if g.batteryMap.Has(dead) {
			for _, gun := range g.batteryMap.Get(dead).Guns {
				if g.world.Alive(gun) {
					g.gunMapper.Remove(gun)
				}
			}
		}

		switch {
		case g.chassisMap.Has(dead):
			g.droneMapper.Remove(dead)
			g.droneCount--
		case g.mountMap.Has(dead):
			g.turretMapper.Remove(dead)
			g.turretCount--
		default:
			g.wreckMapper.Remove(dead)
		}
	}
}
