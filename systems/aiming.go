package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
)

// TargetInfo is a snapshot of one candidate target, taken at tick start so
// every actor ranks against the same consistent view of the world.
type TargetInfo struct {
	Entity     ecs.Entity
	Pos        mgl32.Vec3
	Vel        mgl32.Vec3
	Faction    components.FactionTag
	HasFaction bool
}

// ActorState is a snapshot of one gun-bearing actor.
type ActorState struct {
	Entity     ecs.Entity
	Pos        mgl32.Vec3
	Forward    mgl32.Vec3
	Vel        mgl32.Vec3
	Faction    components.FactionTag
	HasFaction bool
	Target     ecs.Entity
}

// AimSolution is the gun-layer output for one actor. The zero value is the
// idle sentinel.
type AimSolution struct {
	Axis     mgl32.Vec3
	Angle    float32
	Distance float32
}

// Eligible reports whether a candidate passes the actor's target filter:
// not the actor itself, and a different faction when both carry one.
// Collidability and the sensor flag are filtered when the snapshot is
// built; the non-zero aim vector condition is checked during scoring.
func Eligible(actor *ActorState, t *TargetInfo) bool {
	if t.Entity == actor.Entity {
		return false
	}
	if actor.HasFaction && t.HasFaction && actor.Faction == t.Faction {
		return false
	}
	return true
}

// SelectTarget scans the candidates and returns the one whose
// lead-compensated aim vector aligns best with the actor's forward
// direction, minimizing the rotation needed to engage. Candidates sitting
// exactly at the actor's position are skipped. Returns the zero entity
// when nothing is eligible. Equal scores resolve to the earlier candidate
// in iteration order.
func SelectTarget(actor *ActorState, targets []TargetInfo, projectileSpeed float32) ecs.Entity {
	var best ecs.Entity
	bestScore := math.Inf(-1)

	for i := range targets {
		t := &targets[i]
		if !Eligible(actor, t) {
			continue
		}
		aim := InterceptVector(actor.Pos, t.Pos, t.Vel.Sub(actor.Vel), projectileSpeed)
		distSq := aim.Dot(aim)
		if distSq <= 0 {
			continue
		}
		score := float64(aim.Dot(actor.Forward)) / math.Sqrt(float64(distSq))
		if betterScore(score, bestScore) {
			bestScore = score
			best = t.Entity
		}
	}
	return best
}

// betterScore is a total-order comparison over candidate scores, with NaN
// ranked below every real value.
func betterScore(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// ComputeGunLayer produces the aim solution for an actor against a target
// snapshot. A nil target, or a target exactly at the actor's position,
// yields the idle sentinel.
func ComputeGunLayer(actor *ActorState, target *TargetInfo, projectileSpeed float32) AimSolution {
	if target == nil {
		return AimSolution{}
	}
	aim := InterceptVector(actor.Pos, target.Pos, target.Vel.Sub(actor.Vel), projectileSpeed)
	distance := aim.Len()
	if distance == 0 {
		return AimSolution{}
	}
	axis, angle := RotationArc(actor.Forward, aim.Mul(1/distance))
	return AimSolution{Axis: axis, Angle: angle, Distance: distance}
}

// LockRecorder receives target-lock lifecycle events.
type LockRecorder interface {
	RecordLockAcquired()
	RecordLockDropped()
}

// TargetSelectorSystem picks a target for every actor whose lock is absent
// or no longer valid. A valid lock is left untouched even when another
// candidate would now score higher, to avoid target flicker.
type TargetSelectorSystem struct {
	actors     ecs.Filter3[components.Position, components.Rotation, components.GunLayer]
	candidates ecs.Filter2[components.Position, components.Body]
	velMap     *ecs.Map[components.Velocity]
	factionMap *ecs.Map[components.Faction]

	projectileSpeed float32
	recorder        LockRecorder

	snapshot []TargetInfo
	index    map[ecs.Entity]int
}

// NewTargetSelectorSystem creates a new target selector.
func NewTargetSelectorSystem(w *ecs.World, projectileSpeed float32) *TargetSelectorSystem {
	return &TargetSelectorSystem{
		actors:          *ecs.NewFilter3[components.Position, components.Rotation, components.GunLayer](w),
		candidates:      *ecs.NewFilter2[components.Position, components.Body](w),
		velMap:          ecs.NewMap[components.Velocity](w),
		factionMap:      ecs.NewMap[components.Faction](w),
		projectileSpeed: projectileSpeed,
		index:           make(map[ecs.Entity]int),
	}
}

// SetRecorder installs a lock event recorder.
func (s *TargetSelectorSystem) SetRecorder(r LockRecorder) {
	s.recorder = r
}

// Snapshot rebuilds the candidate table for this tick: every collidable,
// non-sensor body with its position, velocity and faction. The table is
// reused by the sequential update and the parallel aiming path.
func (s *TargetSelectorSystem) Snapshot() []TargetInfo {
	s.snapshot = s.snapshot[:0]
	clear(s.index)

	query := s.candidates.Query()
	for query.Next() {
		pos, body := query.Get()
		if !body.Targetable() {
			continue
		}
		e := query.Entity()
		info := TargetInfo{Entity: e, Pos: pos.Vec3}
		if s.velMap.Has(e) {
			info.Vel = s.velMap.Get(e).Linear
		}
		if s.factionMap.Has(e) {
			info.Faction = s.factionMap.Get(e).Tag
			info.HasFaction = true
		}
		s.index[e] = len(s.snapshot)
		s.snapshot = append(s.snapshot, info)
	}
	return s.snapshot
}

// Targets returns the candidate table built by the last Snapshot call.
func (s *TargetSelectorSystem) Targets() []TargetInfo {
	return s.snapshot
}

// ActorStateFor assembles the selection snapshot for one actor.
func (s *TargetSelectorSystem) ActorStateFor(e ecs.Entity, pos *components.Position, rot *components.Rotation, gl *components.GunLayer) ActorState {
	actor := ActorState{
		Entity:  e,
		Pos:     pos.Vec3,
		Forward: rot.Forward(),
		Target:  gl.Target,
	}
	if s.velMap.Has(e) {
		actor.Vel = s.velMap.Get(e).Linear
	}
	if s.factionMap.Has(e) {
		actor.Faction = s.factionMap.Get(e).Tag
		actor.HasFaction = true
	}
	return actor
}

// LockValid reports whether the actor's current lock still passes the
// eligibility filter against the current snapshot.
func (s *TargetSelectorSystem) LockValid(actor *ActorState) bool {
	if actor.Target == (ecs.Entity{}) {
		return false
	}
	i, ok := s.index[actor.Target]
	if !ok {
		return false
	}
	t := &s.snapshot[i]
	if !Eligible(actor, t) {
		return false
	}
	// A candidate exactly at the actor's position has no aim direction.
	return t.Pos != actor.Pos
}

// Update rebuilds the candidate snapshot and reselects targets for actors
// without a valid lock.
func (s *TargetSelectorSystem) Update(w *ecs.World) {
	s.Snapshot()

	query := s.actors.Query()
	for query.Next() {
		pos, rot, gl := query.Get()
		actor := s.ActorStateFor(query.Entity(), pos, rot, gl)
		if s.LockValid(&actor) {
			continue
		}
		s.applySelection(gl, SelectTarget(&actor, s.snapshot, s.projectileSpeed))
	}
}

// applySelection writes a new lock and records the lifecycle events.
func (s *TargetSelectorSystem) applySelection(gl *components.GunLayer, target ecs.Entity) {
	if s.recorder != nil {
		if gl.Target != (ecs.Entity{}) && gl.Target != target {
			s.recorder.RecordLockDropped()
		}
		if target != (ecs.Entity{}) && target != gl.Target {
			s.recorder.RecordLockAcquired()
		}
	}
	gl.Target = target
}

// ApplySelection is the parallel path's entry to the same bookkeeping.
func (s *TargetSelectorSystem) ApplySelection(gl *components.GunLayer, target ecs.Entity) {
	s.applySelection(gl, target)
}

// GunLayerSystem recomputes the aim solution for every actor against its
// locked target. Must run after the selector and before the fire
// controller.
type GunLayerSystem struct {
	actors ecs.Filter3[components.Position, components.Rotation, components.GunLayer]
	posMap *ecs.Map[components.Position]
	velMap *ecs.Map[components.Velocity]

	projectileSpeed float32
}

// NewGunLayerSystem creates a new gun-layer system.
func NewGunLayerSystem(w *ecs.World, projectileSpeed float32) *GunLayerSystem {
	return &GunLayerSystem{
		actors:          *ecs.NewFilter3[components.Position, components.Rotation, components.GunLayer](w),
		posMap:          ecs.NewMap[components.Position](w),
		velMap:          ecs.NewMap[components.Velocity](w),
		projectileSpeed: projectileSpeed,
	}
}

// Update computes axis, angle and distance per actor. A missing or
// destroyed target leaves the idle sentinel; that is the expected steady
// state, not an error.
func (s *GunLayerSystem) Update(w *ecs.World) {
	query := s.actors.Query()
	for query.Next() {
		pos, rot, gl := query.Get()

		target, ok := s.lookupTarget(w, gl.Target)
		if !ok {
			gl.Axis, gl.Angle, gl.Distance = mgl32.Vec3{}, 0, 0
			continue
		}

		actor := ActorState{Pos: pos.Vec3, Forward: rot.Forward()}
		if e := query.Entity(); s.velMap.Has(e) {
			actor.Vel = s.velMap.Get(e).Linear
		}

		sol := ComputeGunLayer(&actor, &target, s.projectileSpeed)
		gl.Axis, gl.Angle, gl.Distance = sol.Axis, sol.Angle, sol.Distance
	}
}

// lookupTarget revalidates a lock: the entity must still exist and still
// have a position.
func (s *GunLayerSystem) lookupTarget(w *ecs.World, target ecs.Entity) (TargetInfo, bool) {
	if target == (ecs.Entity{}) || !w.Alive(target) || !s.posMap.Has(target) {
		return TargetInfo{}, false
	}
	info := TargetInfo{Entity: target, Pos: s.posMap.Get(target).Vec3}
	if s.velMap.Has(target) {
		info.Vel = s.velMap.Get(target).Linear
	}
	return info, true
}
