package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// spawnBody creates a positioned body for grid tests.
func spawnBody(mapper *ecs.Map2[components.Position, components.Body], pos mgl32.Vec3) ecs.Entity {
	p := components.Position{Vec3: pos}
	body := components.Body{Radius: 1, HP: components.NewHitPoints(10)}
	return mapper.NewEntity(&p, &body)
}

func TestSpatialGrid_QueryRadius(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Body](w)
	posMap := ecs.NewMap1[components.Position](w)

	grid := NewSpatialGrid(50)

	near := spawnBody(mapper, mgl32.Vec3{10, 0, 0})
	alsoNear := spawnBody(mapper, mgl32.Vec3{0, 0, -15})
	far := spawnBody(mapper, mgl32.Vec3{200, 200, 200})

	grid.Insert(near, mgl32.Vec3{10, 0, 0})
	grid.Insert(alsoNear, mgl32.Vec3{0, 0, -15})
	grid.Insert(far, mgl32.Vec3{200, 200, 200})

	results := grid.QueryRadiusInto(nil, mgl32.Vec3{0, 0, 0}, 30, ecs.Entity{}, posMap)

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	found := map[ecs.Entity]bool{}
	for _, n := range results {
		found[n.E] = true
		want := posMap.Get(n.E).Sub(mgl32.Vec3{0, 0, 0})
		gotDistSq := n.DX*n.DX + n.DY*n.DY + n.DZ*n.DZ
		if absFloat(gotDistSq-want.Dot(want)) > 1e-4 {
			t.Errorf("stored distance mismatch for %v", n.E)
		}
		if absFloat(n.DistSq-gotDistSq) > 1e-4 {
			t.Errorf("DistSq = %v, want %v", n.DistSq, gotDistSq)
		}
	}
	if !found[near] || !found[alsoNear] {
		t.Errorf("missing expected neighbors: %v", found)
	}
	if found[far] {
		t.Errorf("far entity returned inside radius")
	}
}

func TestSpatialGrid_ExcludesEntity(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Body](w)
	posMap := ecs.NewMap1[components.Position](w)

	grid := NewSpatialGrid(50)
	self := spawnBody(mapper, mgl32.Vec3{0, 0, 0})
	other := spawnBody(mapper, mgl32.Vec3{5, 0, 0})

	grid.Insert(self, mgl32.Vec3{0, 0, 0})
	grid.Insert(other, mgl32.Vec3{5, 0, 0})

	results := grid.QueryRadiusInto(nil, mgl32.Vec3{0, 0, 0}, 30, self, posMap)

	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].E != other {
		t.Errorf("result = %v, want %v", results[0].E, other)
	}
}

func TestSpatialGrid_SpansCellBoundaries(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Body](w)
	posMap := ecs.NewMap1[components.Position](w)

	grid := NewSpatialGrid(10)
	// Neighboring cells on both sides of the origin plane.
	a := spawnBody(mapper, mgl32.Vec3{-4, 0, 0})
	b := spawnBody(mapper, mgl32.Vec3{4, 0, 0})
	grid.Insert(a, mgl32.Vec3{-4, 0, 0})
	grid.Insert(b, mgl32.Vec3{4, 0, 0})

	results := grid.QueryRadiusInto(nil, mgl32.Vec3{0, 0, 0}, 5, ecs.Entity{}, posMap)
	if len(results) != 2 {
		t.Errorf("results = %d, want 2 across cell boundary", len(results))
	}
}

func TestSpatialGrid_ClearKeepsNothing(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Body](w)
	posMap := ecs.NewMap1[components.Position](w)

	grid := NewSpatialGrid(50)
	e := spawnBody(mapper, mgl32.Vec3{0, 0, 0})
	grid.Insert(e, mgl32.Vec3{0, 0, 0})
	grid.Clear()

	results := grid.QueryRadiusInto(nil, mgl32.Vec3{0, 0, 0}, 100, ecs.Entity{}, posMap)
	if len(results) != 0 {
		t.Errorf("results after Clear = %d, want 0", len(results))
	}
}

func TestSpatialGridSystem_RebuildInsertsBodies(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Body](w)
	posMap := ecs.NewMap1[components.Position](w)

	grid := NewSpatialGrid(50)
	sys := NewSpatialGridSystem(w, grid)

	spawnBody(mapper, mgl32.Vec3{1, 2, 3})
	spawnBody(mapper, mgl32.Vec3{4, 5, 6})

	sys.Update(w)

	results := grid.QueryRadiusInto(nil, mgl32.Vec3{0, 0, 0}, 50, ecs.Entity{}, posMap)
	if len(results) != 2 {
		t.Errorf("results = %d, want 2 after rebuild", len(results))
	}
}
