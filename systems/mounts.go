package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// MountSystem keeps gun entities glued to their owner's pose: position is
// the owner's position plus the rotated local offset, orientation is the
// owner's orientation. Runs after the movement and orientation systems so
// guns fire from the tick's final pose.
type MountSystem struct {
	mounts ecs.Filter3[components.Position, components.Rotation, components.Mountpoint]
	posMap *ecs.Map[components.Position]
	rotMap *ecs.Map[components.Rotation]
}

// NewMountSystem creates a new mount system.
func NewMountSystem(w *ecs.World) *MountSystem {
	return &MountSystem{
		mounts: *ecs.NewFilter3[components.Position, components.Rotation, components.Mountpoint](w),
		posMap: ecs.NewMap[components.Position](w),
		rotMap: ecs.NewMap[components.Rotation](w),
	}
}

// Update repositions all mounted guns. Guns whose owner is gone are left
// in place; cleanup removes them.
func (s *MountSystem) Update(w *ecs.World) {
	query := s.mounts.Query()
	for query.Next() {
		pos, rot, mp := query.Get()

		if !w.Alive(mp.Owner) || !s.posMap.Has(mp.Owner) || !s.rotMap.Has(mp.Owner) {
			continue
		}

		ownerPos := s.posMap.Get(mp.Owner)
		ownerRot := s.rotMap.Get(mp.Owner)
		rot.Quat = ownerRot.Quat
		pos.Vec3 = ownerPos.Add(ownerRot.Quat.Rotate(mp.Offset))
	}
}
