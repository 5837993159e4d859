// Package sim provides the tick-driven movement scheduler that consumes a
// plan and advances agents on the grid.
package sim

import (
	log "github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/progmat/internal/algo"
	"github.com/elektrokombinacija/progmat/internal/core"
)

// State is the scheduler lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	return [...]string{"Idle", "Running", "Finished"}[s]
}

// Scheduler owns the simulation lifecycle: it computes a plan at Start,
// advances agents tick by tick, and reverts them on Reset. It is the only
// writer of agent positions while running; grid edits go through its edit
// methods and are rejected while running.
type Scheduler struct {
	grid *core.Grid
	cfg  core.Config
	plan *core.Plan

	cursors map[int]int // agent index -> consumed path index

	startAgents  []core.Position
	startTargets []core.Position

	state State
	ticks int // total ticks observed while running
	steps int // completed logical steps
	gate  int // ticks since last logical step
}

// NewScheduler creates an idle scheduler over grid.
func NewScheduler(grid *core.Grid, cfg core.Config) *Scheduler {
	cfg.StepRate = core.ClampStepRate(cfg.StepRate)
	return &Scheduler{grid: grid, cfg: cfg}
}

// Grid exposes the grid for queries.
func (s *Scheduler) Grid() *core.Grid { return s.grid }

// State returns the lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Ticks returns the tick counter.
func (s *Scheduler) Ticks() int { return s.ticks }

// Steps returns the completed logical step count.
func (s *Scheduler) Steps() int { return s.steps }

// Plan returns the active plan, nil when idle.
func (s *Scheduler) Plan() *core.Plan { return s.plan }

// PathFor returns the planned path for an agent, nil when absent.
func (s *Scheduler) PathFor(agent int) core.Path {
	if s.plan == nil {
		return nil
	}
	return s.plan.Paths[agent]
}

// Config returns the current mode selections.
func (s *Scheduler) Config() core.Config { return s.cfg }

// SetAlgorithm selects the pathfinding algorithm for the next Start.
func (s *Scheduler) SetAlgorithm(a core.Algorithm) { s.cfg.Algorithm = a }

// SetStrategy selects the assignment strategy for the next Start.
func (s *Scheduler) SetStrategy(st core.Strategy) { s.cfg.Strategy = st }

// SetMovement selects the stepping discipline.
func (s *Scheduler) SetMovement(m core.Movement) { s.cfg.Movement = m }

// SetDecision selects the decision mode for the next Start.
func (s *Scheduler) SetDecision(d core.Decision) { s.cfg.Decision = d }

// SetStepRate sets ticks per logical step, clamped to the valid range.
func (s *Scheduler) SetStepRate(rate int) { s.cfg.StepRate = core.ClampStepRate(rate) }

// SetTopology sets the grid's neighbor rule; rejected while running.
func (s *Scheduler) SetTopology(t core.Topology) bool {
	if s.state == StateRunning {
		return false
	}
	s.grid.Topology = t
	return true
}

// EditCell writes a cell; rejected while running.
func (s *Scheduler) EditCell(pos core.Position, c core.Cell) bool {
	if s.state == StateRunning {
		return false
	}
	return s.grid.SetCell(pos, c)
}

// PlaceShape stamps a template; rejected while running.
func (s *Scheduler) PlaceShape(template [][]bool, origin core.Position, c core.Cell) bool {
	if s.state == StateRunning {
		return false
	}
	s.grid.PlaceShape(template, origin, c)
	return true
}

// Resize changes the grid dimensions and discards any plan; rejected while
// running.
func (s *Scheduler) Resize(rows, cols int) bool {
	if s.state == StateRunning {
		return false
	}
	s.grid.Resize(rows, cols)
	s.clearPlan()
	s.state = StateIdle
	return true
}

// Start computes a fresh plan (assignment, then paths, then deadlock
// resolution) and transitions Idle->Running. A no-op while already running.
func (s *Scheduler) Start() bool {
	if s.state == StateRunning {
		return false
	}

	assignment := s.assign()
	paths := algo.PlanPaths(s.grid, s.cfg.Algorithm, s.grid.Agents, s.grid.Targets, assignment)
	paths = algo.ResolveDeadlocks(paths)

	s.plan = &core.Plan{Assignment: assignment, Paths: paths}
	s.cursors = make(map[int]int, len(paths))
	for idx := range paths {
		s.cursors[idx] = 0
	}

	s.startAgents = append([]core.Position(nil), s.grid.Agents...)
	s.startTargets = append([]core.Position(nil), s.grid.Targets...)

	s.ticks = 0
	s.steps = 0
	s.gate = 0
	s.state = StateRunning

	log.WithFields(log.Fields{
		"agents":    len(s.grid.Agents),
		"targets":   len(s.grid.Targets),
		"algorithm": s.cfg.Algorithm,
		"strategy":  s.cfg.Strategy,
		"decision":  s.cfg.Decision,
		"movement":  s.cfg.Movement,
		"max_path":  s.plan.MaxPathLen(),
	}).Info("simulation started")

	if s.allFinished() {
		s.state = StateFinished
	}
	return true
}

func (s *Scheduler) assign() core.Assignment {
	if s.cfg.Decision == core.Distributed {
		return algo.DistributedAssign(s.grid.Agents, s.grid.Targets)
	}
	return algo.Assign(s.cfg.Strategy, s.grid.Agents, s.grid.Targets)
}

// Stop freezes agents in place and transitions back to Idle, discarding the
// plan.
func (s *Scheduler) Stop() {
	if s.state != StateRunning {
		return
	}
	s.clearPlan()
	s.state = StateIdle
	log.Debug("simulation stopped")
}

// Reset reverts agents and targets to their plan-start positions, discards
// the plan, and zeroes the clock.
func (s *Scheduler) Reset() {
	if s.startAgents != nil {
		s.grid.RestoreOccupancy(s.startAgents, s.startTargets)
	}
	s.clearPlan()
	s.ticks = 0
	s.steps = 0
	s.gate = 0
	s.state = StateIdle
}

func (s *Scheduler) clearPlan() {
	s.plan = nil
	s.cursors = nil
	s.startAgents = nil
	s.startTargets = nil
}

// Tick advances the clock by one tick and, every StepRate ticks, performs
// one logical movement step. A no-op unless running.
func (s *Scheduler) Tick() {
	if s.state != StateRunning {
		return
	}

	s.ticks++
	s.gate++
	if s.gate < s.cfg.StepRate {
		return
	}
	s.gate = 0

	s.advance()
	s.steps++

	if s.allFinished() {
		s.state = StateFinished
		log.WithFields(log.Fields{"steps": s.steps, "ticks": s.ticks}).Info("simulation finished")
	}
}

// RunToCompletion ticks until the simulation leaves Running, bounded to
// avoid spinning on a livelocked plan. Returns the completed step count.
func (s *Scheduler) RunToCompletion(maxTicks int) int {
	for i := 0; i < maxTicks && s.state == StateRunning; i++ {
		s.Tick()
	}
	return s.steps
}

// hasUnconsumed reports whether agent idx still has path steps left.
func (s *Scheduler) hasUnconsumed(idx int) bool {
	path := s.plan.Paths[idx]
	if path == nil {
		return false // unreachable target: treated as already finished
	}
	return s.cursors[idx] < len(path)-1
}

func (s *Scheduler) allFinished() bool {
	for idx := range s.grid.Agents {
		if _, ok := s.plan.Paths[idx]; ok && s.hasUnconsumed(idx) {
			return false
		}
	}
	return true
}

// advance performs one logical step under the selected discipline.
func (s *Scheduler) advance() {
	switch s.cfg.Movement {
	case core.Parallel:
		s.advanceParallel(func(int) bool { return true })
	case core.Async:
		// Agent i advances only on steps divisible by i+1, so higher
		// indexes stagger behind.
		step := s.steps
		s.advanceParallel(func(idx int) bool { return step%(idx+1) == 0 })
	default:
		s.advanceSequential()
	}
}

// advanceSequential moves only the first agent, by index, with unconsumed
// steps. At most one grid mutation per step.
func (s *Scheduler) advanceSequential() {
	for idx := range s.grid.Agents {
		if !s.hasUnconsumed(idx) {
			continue
		}
		s.cursors[idx]++
		s.grid.MoveAgent(idx, s.plan.Paths[idx][s.cursors[idx]])
		return
	}
}

// advanceParallel moves every eligible agent with unconsumed steps. New
// positions are computed first and applied together.
func (s *Scheduler) advanceParallel(eligible func(int) bool) {
	moves := make(map[int]core.Position)
	for idx := range s.grid.Agents {
		if !eligible(idx) || !s.hasUnconsumed(idx) {
			continue
		}
		moves[idx] = s.plan.Paths[idx][s.cursors[idx]+1]
	}
	s.grid.MoveAgents(moves)
	for idx := range moves {
		s.cursors[idx]++
	}
}
