package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// Impact reports a projectile strike for telemetry.
type Impact struct {
	Shooter ecs.Entity
	Victim  ecs.Entity
	DistSq  float32
}

// ProjectileSystem integrates projectiles, expires them, and tests them
// against targetable bodies via the spatial grid. Hits apply damage and
// consume the projectile. Removal is deferred until all queries are
// closed.
type ProjectileSystem struct {
	projectiles ecs.Filter3[components.Position, components.Velocity, components.Projectile]
	posMap      *ecs.Map1[components.Position]
	bodyMap     *ecs.Map1[components.Body]
	grid        *SpatialGrid
	dt          float32
	radius      float32
	maxBody     float32

	neighbors []Neighbor
	spent     []ecs.Entity
	onHit     func(Impact)
}

// NewProjectileSystem creates a new projectile system. The projectile
// radius pads the collision test; maxBodyRadius bounds the grid search.
func NewProjectileSystem(w *ecs.World, grid *SpatialGrid, dt, projectileRadius, maxBodyRadius float32) *ProjectileSystem {
	return &ProjectileSystem{
		projectiles: *ecs.NewFilter3[components.Position, components.Velocity, components.Projectile](w),
		posMap:      ecs.NewMap1[components.Position](w),
		bodyMap:     ecs.NewMap1[components.Body](w),
		grid:        grid,
		dt:          dt,
		radius:      projectileRadius,
		maxBody:     maxBodyRadius,
		neighbors:   make([]Neighbor, 0, MaxQueryResults),
	}
}

// SetOnHit installs a callback invoked once per strike.
func (s *ProjectileSystem) SetOnHit(fn func(Impact)) {
	s.onHit = fn
}

// Update advances projectiles and applies damage. Call Spent afterwards
// to collect entities that must be removed.
func (s *ProjectileSystem) Update(w *ecs.World) {
	s.spent = s.spent[:0]

	query := s.projectiles.Query()
	for query.Next() {
		pos, vel, proj := query.Get()

		proj.Lifetime -= s.dt
		if proj.Lifetime <= 0 {
			s.spent = append(s.spent, query.Entity())
			continue
		}

		step := vel.Linear.Mul(s.dt)
		pos.Vec3 = pos.Add(step)

		search := step.Len() + s.maxBody + s.radius
		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos.Vec3, search, proj.Shooter, s.posMap)

		for _, n := range s.neighbors {
			body := s.bodyMap.Get(n.E)
			if !body.Targetable() {
				continue
			}
			reach := body.Radius + s.radius
			if n.DistSq > reach*reach {
				continue
			}
			body.HP.Hit(proj.Damage)
			if s.onHit != nil {
				s.onHit(Impact{Shooter: proj.Shooter, Victim: n.E, DistSq: n.DistSq})
			}
			s.spent = append(s.spent, query.Entity())
			break
		}
	}
}

// Spent returns the projectiles consumed by the last Update call.
func (s *ProjectileSystem) Spent() []ecs.Entity {
	return s.spent
}
