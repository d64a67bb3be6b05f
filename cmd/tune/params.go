// Package main provides CMA-ES tuning for engagement parameters.
package main

import (
	"github.com/voidloop/skirmish/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Drone fire doctrine
			{Name: "drone_target_radius", Path: "drones.doctrine.target_radius", Min: 2.0, Max: 20.0, Default: 7.0},
			{Name: "drone_threshold_floor", Path: "drones.doctrine.threshold_floor", Min: 0.02, Max: 0.5, Default: 0.1},
			{Name: "drone_max_range", Path: "drones.doctrine.max_range", Min: 500, Max: 5000, Default: 3000},
			// Drone maneuvering
			{Name: "drone_standoff", Path: "drones.standoff", Min: 20.0, Max: 400.0, Default: 100.0},
			{Name: "drone_turn_gain", Path: "drones.turn_gain", Min: 5.0, Max: 300.0, Default: 100.0},
			// Turret fire doctrine
			{Name: "turret_target_radius", Path: "turrets.doctrine.target_radius", Min: 2.0, Max: 30.0, Default: 10.0},
			{Name: "turret_threshold_floor", Path: "turrets.doctrine.threshold_floor", Min: 0.05, Max: 0.8, Default: 0.3},
			{Name: "turret_near_distance", Path: "turrets.doctrine.near_distance", Min: 0, Max: 500, Default: 100},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0

	cfg.Drones.Doctrine.TargetRadius = clamped[i]
	i++
	cfg.Drones.Doctrine.ThresholdFloor = clamped[i]
	i++
	cfg.Drones.Doctrine.MaxRange = clamped[i]
	i++
	cfg.Drones.Standoff = clamped[i]
	i++
	cfg.Drones.TurnGain = clamped[i]
	i++
	cfg.Turrets.Doctrine.TargetRadius = clamped[i]
	i++
	cfg.Turrets.Doctrine.ThresholdFloor = clamped[i]
	i++
	cfg.Turrets.Doctrine.NearDistance = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Drones.Doctrine.TargetRadius,
		cfg.Drones.Doctrine.ThresholdFloor,
		cfg.Drones.Doctrine.MaxRange,
		cfg.Drones.Standoff,
		cfg.Drones.TurnGain,
		cfg.Turrets.Doctrine.TargetRadius,
		cfg.Turrets.Doctrine.ThresholdFloor,
		cfg.Turrets.Doctrine.NearDistance,
	}
}
