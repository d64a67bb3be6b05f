package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// MaxQueryResults caps the number of neighbors returned by a single
// radius query.
const MaxQueryResults = 128

// Neighbor is a single result of a radius query.
type Neighbor struct {
	E      ecs.Entity
	DX     float32
	DY     float32
	DZ     float32
	DistSq float32
}

type gridKey struct {
	X, Y, Z int32
}

// SpatialGrid is a uniform hash grid over 3D space that answers radius
// queries against the entities inserted this tick. It is rebuilt every
// tick; Clear keeps the cell slices to avoid churn.
type SpatialGrid struct {
	cellSize float32
	cells    map[gridKey][]ecs.Entity
}

// NewSpatialGrid creates a grid with the given cell edge length.
func NewSpatialGrid(cellSize float32) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[gridKey][]ecs.Entity),
	}
}

// Clear empties all cells, keeping their backing storage.
func (g *SpatialGrid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

func (g *SpatialGrid) keyFor(pos mgl32.Vec3) gridKey {
	return gridKey{
		X: int32(math.Floor(float64(pos.X() / g.cellSize))),
		Y: int32(math.Floor(float64(pos.Y() / g.cellSize))),
		Z: int32(math.Floor(float64(pos.Z() / g.cellSize))),
	}
}

// Insert adds an entity at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, pos mgl32.Vec3) {
	k := g.keyFor(pos)
	g.cells[k] = append(g.cells[k], e)
}

// QueryRadiusInto appends all entities within radius of pos to dst and
// returns the extended slice. The exclude entity is skipped. Positions
// are looked up through posMap so results reflect the current tick.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, pos mgl32.Vec3, radius float32, exclude ecs.Entity, posMap *ecs.Map1[components.Position]) []Neighbor {
	radiusSq := radius * radius
	min := g.keyFor(pos.Sub(mgl32.Vec3{radius, radius, radius}))
	max := g.keyFor(pos.Add(mgl32.Vec3{radius, radius, radius}))

	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				cell, ok := g.cells[gridKey{X: x, Y: y, Z: z}]
				if !ok {
					continue
				}
				for _, e := range cell {
					if e == exclude {
						continue
					}
					other := posMap.Get(e)
					dx := other.X() - pos.X()
					dy := other.Y() - pos.Y()
					dz := other.Z() - pos.Z()
					distSq := dx*dx + dy*dy + dz*dz
					if distSq > radiusSq {
						continue
					}
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DZ: dz, DistSq: distSq})
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}
	return dst
}

// SpatialGridSystem rebuilds the grid from all targetable bodies each
// tick. Projectile collision queries run against the result.
type SpatialGridSystem struct {
	bodies ecs.Filter2[components.Position, components.Body]
	grid   *SpatialGrid
}

// NewSpatialGridSystem creates a new grid rebuild system.
func NewSpatialGridSystem(w *ecs.World, grid *SpatialGrid) *SpatialGridSystem {
	return &SpatialGridSystem{
		bodies: *ecs.NewFilter2[components.Position, components.Body](w),
		grid:   grid,
	}
}

// Update rebuilds the grid.
func (s *SpatialGridSystem) Update(w *ecs.World) {
	s.grid.Clear()
	query := s.bodies.Query()
	for query.Next() {
		pos, _ := query.Get()
		s.grid.Insert(query.Entity(), pos.Vec3)
	}
}
