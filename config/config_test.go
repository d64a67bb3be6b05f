package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Physics.DT <= 0 {
		t.Errorf("Physics.DT = %f, want positive", cfg.Physics.DT)
	}
	if cfg.Weapons.ProjectileSpeed <= 0 {
		t.Errorf("Weapons.ProjectileSpeed = %f, want positive", cfg.Weapons.ProjectileSpeed)
	}
	if cfg.Drones.Praetor.Guns <= 0 {
		t.Errorf("Drones.Praetor.Guns = %d, want positive", cfg.Drones.Praetor.Guns)
	}
	if len(cfg.Scenario.Drones) == 0 {
		t.Errorf("default scenario has no drone groups")
	}
	if len(cfg.Scenario.Turrets) == 0 {
		t.Errorf("default scenario has no turret groups")
	}
}

func TestLoad_OverlayMergesPartialFile(t *testing.T) {
	defaults, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "override.yaml")
	override := "weapons:\n  projectile_speed: 250\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Weapons.ProjectileSpeed != 250 {
		t.Errorf("ProjectileSpeed = %f, want overridden 250", cfg.Weapons.ProjectileSpeed)
	}
	// Untouched sections keep the defaults.
	if cfg.Physics.DT != defaults.Physics.DT {
		t.Errorf("Physics.DT = %f, want default %f", cfg.Physics.DT, defaults.Physics.DT)
	}
	if cfg.Drones.Praetor.HitPoints != defaults.Drones.Praetor.HitPoints {
		t.Errorf("Praetor.HitPoints = %d, want default %d",
			cfg.Drones.Praetor.HitPoints, defaults.Drones.Praetor.HitPoints)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Errorf("expected error for missing config file")
	}
}

func TestComputeDerived(t *testing.T) {
	cfg := &Config{}
	cfg.Physics.DT = 0.02
	cfg.Weapons.ProjectileSpeed = 120
	cfg.Weapons.ProjectileRadius = 0.5
	cfg.Drones.Praetor.RotationSpeedDeg = 90
	cfg.Drones.Praetor.BodyRadius = 4
	cfg.Drones.Infiltrator.RotationSpeedDeg = 180
	cfg.Drones.Infiltrator.BodyRadius = 3
	cfg.Turrets.RotationSpeedDeg = 45
	cfg.Turrets.BodyRadius = 5
	cfg.Scenario.Derelicts = []SpawnGroupConfig{{Radius: 12}}

	cfg.computeDerived()

	if got, want := cfg.Derived.DroneRotPraetor, float32(math.Pi/2); !near32(got, want) {
		t.Errorf("DroneRotPraetor = %f, want %f", got, want)
	}
	if got, want := cfg.Derived.DroneRotInfil, float32(math.Pi); !near32(got, want) {
		t.Errorf("DroneRotInfil = %f, want %f", got, want)
	}
	if got, want := cfg.Derived.TurretRot, float32(math.Pi/4); !near32(got, want) {
		t.Errorf("TurretRot = %f, want %f", got, want)
	}
	if got := cfg.Derived.MaxBodyRadius32; got != 12 {
		t.Errorf("MaxBodyRadius32 = %f, want derelict 12", got)
	}
	if got := cfg.Derived.DT32; !near32(got, 0.02) {
		t.Errorf("DT32 = %f, want 0.02", got)
	}
}

func TestComputeDerived_MaxBodyFromTemplates(t *testing.T) {
	cfg := &Config{}
	cfg.Drones.Praetor.BodyRadius = 4
	cfg.Drones.Infiltrator.BodyRadius = 3
	cfg.Turrets.BodyRadius = 5

	cfg.computeDerived()

	if got := cfg.Derived.MaxBodyRadius32; got != 5 {
		t.Errorf("MaxBodyRadius32 = %f, want turret 5", got)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	cfg.Weapons.Damage = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.Weapons.Damage != 7 {
		t.Errorf("Damage = %d, want 7 after round trip", loaded.Weapons.Damage)
	}
}

func near32(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}
