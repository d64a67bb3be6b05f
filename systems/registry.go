package systems

import "github.com/voidloop/skirmish/telemetry"

// SystemInfo describes a simulation system for logging and perf output.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "combat")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so logs and the perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry. Entries are
// keyed by the perf-collector phase names so log output resolves them.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseSpatialGrid, Name: "Spatial Grid", Description: "Rebuilds neighbor lookup grid", Category: "core"})

	// Fire control chain
	r.Register(SystemInfo{ID: telemetry.PhaseAiming, Name: "Aiming", Description: "Acquires target locks and computes intercept solutions", Category: "combat"})
	r.Register(SystemInfo{ID: telemetry.PhaseFireControl, Name: "Fire Control", Description: "Pulls triggers inside the firing cone", Category: "combat"})
	r.Register(SystemInfo{ID: telemetry.PhaseGuns, Name: "Guns", Description: "Runs rate-of-fire timers and spawns shots", Category: "combat"})

	// Actuation and motion
	r.Register(SystemInfo{ID: telemetry.PhaseActuation, Name: "Actuation", Description: "Slews turrets and steers drones toward aim axes", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseMovement, Name: "Movement", Description: "Integrates motion and glues mounted guns to owner pose", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseProjectiles, Name: "Projectiles", Description: "Flies projectiles and resolves strikes", Category: "physics"})

	// Bookkeeping
	r.Register(SystemInfo{ID: telemetry.PhaseCleanup, Name: "Cleanup", Description: "Removes destroyed entities", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Flushes stats windows and perf samples", Category: "core"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
