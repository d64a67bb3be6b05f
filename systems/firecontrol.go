package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// FireControlSystem pulls the triggers of every gun in an actor's battery
// when the gun-layer solution is within the battery's firing doctrine.
// Must run after the gun-layer system.
type FireControlSystem struct {
	actors     ecs.Filter2[components.GunLayer, components.Battery]
	triggerMap *ecs.Map[components.Trigger]
}

// NewFireControlSystem creates a new fire controller.
func NewFireControlSystem(w *ecs.World) *FireControlSystem {
	return &FireControlSystem{
		actors:     *ecs.NewFilter2[components.GunLayer, components.Battery](w),
		triggerMap: ecs.NewMap[components.Trigger](w),
	}
}

// Update evaluates the fire decision per actor. The idle sentinel
// (distance 0) never fires.
func (s *FireControlSystem) Update(w *ecs.World) {
	query := s.actors.Query()
	for query.Next() {
		gl, battery := query.Get()

		if gl.Distance == 0 {
			continue
		}
		if !battery.Doctrine.InRange(gl.Distance) {
			continue
		}
		if gl.Angle >= battery.Doctrine.Threshold(gl.Distance) {
			continue
		}

		for _, gun := range battery.Guns {
			if s.triggerMap.Has(gun) {
				s.triggerMap.Get(gun).Pull()
			}
		}
	}
}
