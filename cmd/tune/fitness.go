package main

import (
	"math"
	"sync"

	"github.com/voidloop/skirmish/config"
	"github.com/voidloop/skirmish/game"
)

// FitnessEvaluator runs headless engagements and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastResult  runResult // most recent aggregate, for progress display
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// runResult holds the results from a single engagement run.
type runResult struct {
	ticks       int32
	dronesAlive int
	turretsLeft int
	shots       int
	kills       int
}

// LastResult returns the most recent seed-averaged run outcome.
func (fe *FitnessEvaluator) LastResult() runResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// shotPenalty weights ammunition efficiency against raw speed.
const shotPenalty = 2.0

// Evaluate computes fitness for a parameter vector (lower = better).
// Good parameter sets eliminate the turret line quickly with few shots;
// losing the drone force is heavily penalized.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runEngagement(x, s)
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness float64
	var agg runResult
	for _, r := range results {
		totalFitness += fe.computeFitness(r)
		agg.ticks += r.ticks
		agg.dronesAlive += r.dronesAlive
		agg.turretsLeft += r.turretsLeft
		agg.shots += r.shots
		agg.kills += r.kills
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	agg.ticks = int32(float64(agg.ticks) / n)
	fe.lastResult = agg
	fe.mu.Unlock()

	return avgFitness
}

// computeFitness scores a single run. Lower is better.
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	fitness := float64(r.ticks)

	if r.turretsLeft > 0 {
		// Undecided or lost: charge full time plus the remaining defenses.
		fitness += float64(fe.maxTicks) + float64(r.turretsLeft)*10000
	}

	if r.kills > 0 {
		fitness += float64(r.shots) / float64(r.kills) * shotPenalty
	} else {
		fitness += float64(r.shots) * shotPenalty
	}

	return fitness
}

// runEngagement executes a single headless run until one side is
// eliminated or the tick cap is reached.
func (fe *FitnessEvaluator) runEngagement(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Config:         cfg,
		StatsWindowSec: 10.0,
		StepsPerUpdate: 1,
	})
	defer g.Close()

	for g.Tick() < fe.maxTicks && !g.Decided() {
		g.Step()
	}

	drones, turrets := g.Counts()
	shots, kills := g.Totals()
	return runResult{
		ticks:       g.Tick(),
		dronesAlive: drones,
		turretsLeft: turrets,
		shots:       shots,
		kills:       kills,
	}
}

// copyConfig creates a working copy of the base config. The scenario
// slices are shared but never mutated by a run.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
