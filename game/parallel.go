package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/voidloop/skirmish/systems"
)

// parallelThreshold is the minimum actor count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// selectionIntent captures a computed lock to apply after the parallel phase.
type selectionIntent struct {
	Actor  ecs.Entity
	Target ecs.Entity
	Keep   bool // lock still valid, leave the layer untouched
}

// workChunk represents a range of actors for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for parallel target selection.
type parallelState struct {
	snapshots  []systems.ActorState
	intents    []selectionIntent
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]systems.ActorState, 0, 256),
		intents:    make([]selectionIntent, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.selectChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// updateTargeting runs target selection, parallelized for large fleets.
func (g *Game) updateTargeting() {
	// Phase A: Build target snapshot and actor states (single-threaded)
	g.selector.Snapshot()

	g.parallel.snapshots = g.parallel.snapshots[:0]
	query := g.actors.Query()
	for query.Next() {
		pos, rot, gl := query.Get()
		g.parallel.snapshots = append(g.parallel.snapshots,
			g.selector.ActorStateFor(query.Entity(), pos, rot, gl))
	}

	n := len(g.parallel.snapshots)
	if n == 0 {
		return
	}

	if cap(g.parallel.intents) < n {
		g.parallel.intents = make([]selectionIntent, n)
	}
	g.parallel.intents = g.parallel.intents[:n]

	// Phase B: Compute - choose single or parallel based on actor count
	if n < parallelThreshold {
		g.selectChunk(0, n)
	} else {
		g.selectParallel(n)
	}

	// Phase C: Apply intents (single-threaded, preserves determinism)
	g.applySelections()
}

// selectChunk computes selection intents for a range of actor snapshots.
// Safe to run concurrently: it only reads the snapshot data.
func (g *Game) selectChunk(start, end int) {
	targets := g.selector.Targets()
	speed := g.cfg.Derived.ProjectileSpeed32

	for i := start; i < end; i++ {
		actor := &g.parallel.snapshots[i]
		intent := &g.parallel.intents[i]
		intent.Actor = actor.Entity

		if g.selector.LockValid(actor) {
			intent.Keep = true
			continue
		}
		intent.Keep = false
		intent.Target = systems.SelectTarget(actor, targets, speed)
	}
}

// selectParallel dispatches work to the worker pool.
func (g *Game) selectParallel(n int) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// applySelections writes computed locks back to ECS components.
func (g *Game) applySelections() {
	for i := range g.parallel.intents {
		intent := &g.parallel.intents[i]
		if intent.Keep {
			continue
		}
		g.selector.ApplySelection(g.glMap.Get(intent.Actor), intent.Target)
	}
}
