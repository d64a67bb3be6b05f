package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/components"
	"github.com/voidloop/skirmish/config"
	"github.com/voidloop/skirmish/systems"
	"github.com/voidloop/skirmish/telemetry"
)

// Options configures a new game instance.
type Options struct {
	Seed           int64
	Config         *config.Config // nil = use the global config
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	// Archetype mappers
	droneMapper *ecs.Map8[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Faction,
		components.GunLayer,
		components.Chassis,
		components.Battery,
	]
	turretMapper *ecs.Map7[
		components.Position,
		components.Rotation,
		components.Body,
		components.Faction,
		components.GunLayer,
		components.Mount,
		components.Battery,
	]
	gunMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Mountpoint,
		components.Trigger,
		components.Gun,
	]
	projMapper *ecs.Map3[
		components.Position,
		components.Velocity,
		components.Projectile,
	]
	wreckMapper *ecs.Map2[
		components.Position,
		components.Body,
	]

	// Individual component mappers for lookups
	posMap     *ecs.Map[components.Position]
	bodyMap    *ecs.Map[components.Body]
	factionMap *ecs.Map[components.Faction]
	glMap      *ecs.Map[components.GunLayer]
	chassisMap *ecs.Map[components.Chassis]
	mountMap   *ecs.Map[components.Mount]
	batteryMap *ecs.Map[components.Battery]
	projMap    *ecs.Map[components.Projectile]

	// Query filters
	bodies ecs.Filter2[components.Position, components.Body]
	actors ecs.Filter3[components.Position, components.Rotation, components.GunLayer]

	// Spatial index
	grid *systems.SpatialGrid

	// Systems, in step order
	gridSystem    *systems.SpatialGridSystem
	selector      *systems.TargetSelectorSystem
	gunLayer      *systems.GunLayerSystem
	fireControl   *systems.FireControlSystem
	turretOrient  *systems.TurretOrientationSystem
	droneSteering *systems.DroneSteeringSystem
	movement      *systems.MovementSystem
	mounts        *systems.MountSystem
	guns          *systems.GunSystem
	projectiles   *systems.ProjectileSystem

	// Parallel target selection
	parallel *parallelState

	// Telemetry
	registry      *systems.SystemRegistry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	tick           int32
	droneCount     int
	turretCount    int
	totalShots     int
	totalKills     int
	stepsPerUpdate int
}

// NewGame creates a game with the global config and default options.
func NewGame(seed int64) *Game {
	return NewGameWithOptions(Options{Seed: seed})
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()
	dt := cfg.Derived.DT32

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		cfg:   cfg,
		droneMapper: ecs.NewMap8[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Faction,
			components.GunLayer,
			components.Chassis,
			components.Battery,
		](world),
		turretMapper: ecs.NewMap7[
			components.Position,
			components.Rotation,
			components.Body,
			components.Faction,
			components.GunLayer,
			components.Mount,
			components.Battery,
		](world),
		gunMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Mountpoint,
			components.Trigger,
			components.Gun,
		](world),
		projMapper: ecs.NewMap3[
			components.Position,
			components.Velocity,
			components.Projectile,
		](world),
		wreckMapper: ecs.NewMap2[
			components.Position,
			components.Body,
		](world),
		posMap:     ecs.NewMap[components.Position](world),
		bodyMap:    ecs.NewMap[components.Body](world),
		factionMap: ecs.NewMap[components.Faction](world),
		glMap:      ecs.NewMap[components.GunLayer](world),
		chassisMap: ecs.NewMap[components.Chassis](world),
		mountMap:   ecs.NewMap[components.Mount](world),
		batteryMap: ecs.NewMap[components.Battery](world),
		projMap:    ecs.NewMap[components.Projectile](world),
		bodies:     *ecs.NewFilter2[components.Position, components.Body](world),
		actors:     *ecs.NewFilter3[components.Position, components.Rotation, components.GunLayer](world),

		grid:     systems.NewSpatialGrid(float32(cfg.Physics.GridCellSize)),
		registry: systems.NewSystemRegistry(),
		logStats: opts.LogStats,

		stepsPerUpdate: opts.StepsPerUpdate,
	}
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = 1
	}

	speed := cfg.Derived.ProjectileSpeed32

	g.gridSystem = systems.NewSpatialGridSystem(world, g.grid)
	g.selector = systems.NewTargetSelectorSystem(world, speed)
	g.gunLayer = systems.NewGunLayerSystem(world, speed)
	g.fireControl = systems.NewFireControlSystem(world)
	g.turretOrient = systems.NewTurretOrientationSystem(world, dt)
	g.droneSteering = systems.NewDroneSteeringSystem(world)
	g.movement = systems.NewMovementSystem(world, dt, float32(cfg.Physics.LinearDamping))
	g.mounts = systems.NewMountSystem(world)
	g.guns = systems.NewGunSystem(world, dt)
	g.projectiles = systems.NewProjectileSystem(world, g.grid, dt, cfg.Derived.ProjectileRadius32, cfg.Derived.MaxBodyRadius32)

	g.parallel = newParallelState()

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, dt)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.selector.SetRecorder(g.collector)
	g.projectiles.SetOnHit(func(systems.Impact) {
		g.collector.RecordImpact()
	})

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	g.spawnScenario()

	return g
}

// World exposes the ECS world for tests and tooling.
func (g *Game) World() *ecs.World {
	return g.world
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Counts returns the number of live drones and turrets.
func (g *Game) Counts() (drones, turrets int) {
	return g.droneCount, g.turretCount
}

// Totals returns cumulative shots fired and kills scored since start.
func (g *Game) Totals() (shots, kills int) {
	return g.totalShots, g.totalKills
}

// Decided reports whether one side has been eliminated.
func (g *Game) Decided() bool {
	return g.droneCount == 0 || g.turretCount == 0
}

// Update advances the simulation by the configured number of steps.
func (g *Game) Update() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Step advances the simulation by one tick.
func (g *Game) Step() {
	perf := g.perfCollector
	perf.StartTick()

	perf.StartPhase(telemetry.PhaseSpatialGrid)
	g.gridSystem.Update(g.world)

	perf.StartPhase(telemetry.PhaseAiming)
	g.updateTargeting()
	g.gunLayer.Update(g.world)
	g.recordIdleActors()

	perf.StartPhase(telemetry.PhaseFireControl)
	g.fireControl.Update(g.world)

	perf.StartPhase(telemetry.PhaseActuation)
	g.turretOrient.Update(g.world)
	g.droneSteering.Update(g.world)

	perf.StartPhase(telemetry.PhaseMovement)
	g.movement.Update(g.world)
	g.mounts.Update(g.world)

	perf.StartPhase(telemetry.PhaseGuns)
	g.guns.Update(g.world)
	g.spawnPendingShots()

	perf.StartPhase(telemetry.PhaseProjectiles)
	g.projectiles.Update(g.world)
	g.removeSpentProjectiles()

	perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	perf.EndTick()
	g.tick++
}

// recordIdleActors counts actor ticks spent without an aim solution.
func (g *Game) recordIdleActors() {
	query := g.actors.Query()
	for query.Next() {
		_, _, gl := query.Get()
		if gl.Idle() {
			g.collector.RecordIdleTick()
		}
	}
}

// spawnPendingShots creates projectiles for shots fired this tick.
func (g *Game) spawnPendingShots() {
	for _, flash := range g.guns.Pending() {
		g.spawnProjectile(flash)

		faction := components.FactionDrones
		if g.factionMap.Has(flash.Shooter) {
			faction = g.factionMap.Get(flash.Shooter).Tag
		}
		g.collector.RecordShot(faction)
		g.totalShots++
	}
}

// removeSpentProjectiles removes projectiles consumed or expired this tick.
func (g *Game) removeSpentProjectiles() {
	for _, e := range g.projectiles.Spent() {
		if g.world.Alive(e) {
			g.projMapper.Remove(e)
		}
	}
}

// Close releases workers and flushes output files.
func (g *Game) Close() error {
	g.parallel.stopWorkers()
	if g.outputManager != nil {
		return g.outputManager.Close()
	}
	return nil
}
