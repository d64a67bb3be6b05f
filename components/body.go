package components

// HitPoints tracks an entity's remaining damage capacity.
type HitPoints struct {
	Maximum int32
	Current int32
}

// NewHitPoints returns a full HitPoints pool.
func NewHitPoints(maximum int32) HitPoints {
	return HitPoints{Maximum: maximum, Current: maximum}
}

// Hit applies damage, saturating at zero.
func (h *HitPoints) Hit(damage int32) *HitPoints {
	h.Current -= damage
	if h.Current < 0 {
		h.Current = 0
	}
	return h
}

// Percent returns remaining hit points as a percentage of the maximum.
func (h *HitPoints) Percent() int32 {
	if h.Maximum == 0 {
		return 0
	}
	return 100 * h.Current / h.Maximum
}

// Dead reports whether the pool is exhausted. Entities without hit points
// (Maximum == 0) are indestructible and never report dead.
func (h *HitPoints) Dead() bool {
	return h.Maximum > 0 && h.Current == 0
}

// Body marks an entity as physically present in the world.
// Sensor volumes are intangible: they register no impacts and are never
// selectable as targets.
type Body struct {
	Radius float32 // bounding-sphere radius for impact tests
	Sensor bool
	HP     HitPoints
}

// Targetable reports whether the body may be engaged.
func (b *Body) Targetable() bool {
	return !b.Sensor
}
