// Command progmat runs programmable-matter simulations headlessly.
package main

import (
	"flag"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/progmat/internal/algo"
	"github.com/elektrokombinacija/progmat/internal/config"
	"github.com/elektrokombinacija/progmat/internal/core"
	"github.com/elektrokombinacija/progmat/internal/sim"
)

func main() {
	scenarioPath := flag.String("scenario", "", "scenario YAML file (embedded default when empty)")
	sweep := flag.Bool("sweep", false, "run every algorithm x strategy combination")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	scenario := config.Default()
	if *scenarioPath != "" {
		var err error
		scenario, err = config.Load(*scenarioPath)
		if err != nil {
			log.Fatalf("loading scenario: %v", err)
		}
	}

	cfg, err := scenario.EngineConfig()
	if err != nil {
		log.Fatalf("scenario config: %v", err)
	}

	fmt.Printf("=== progmat: %s ===\n", scenario.Name)

	if *sweep {
		runSweep(scenario, cfg)
		return
	}
	runOnce(scenario, cfg)
}

// runOnce runs the scenario with its configured modes.
func runOnce(scenario *config.Scenario, cfg core.Config) {
	grid, err := scenario.BuildGrid()
	if err != nil {
		log.Fatalf("building grid: %v", err)
	}

	fmt.Printf("Grid: %dx%d (%s), %d agents, %d targets, %d walls\n",
		grid.Rows, grid.Cols, grid.Topology, len(grid.Agents), len(grid.Targets), len(grid.Walls))

	result := run(grid, cfg)
	fmt.Printf("%s + %s (%s, %s): %s\n",
		cfg.Algorithm, cfg.Strategy, cfg.Movement, cfg.Decision, result)
}

// runSweep reruns the scenario for every algorithm x strategy combination,
// rebuilding the grid each time so runs do not contaminate one another.
func runSweep(scenario *config.Scenario, cfg core.Config) {
	algorithms := []core.Algorithm{core.BFS, core.AStar, core.Greedy}
	strategies := []core.Strategy{core.Hungarian, core.GreedyMatch, core.Auction}

	for _, a := range algorithms {
		for _, st := range strategies {
			grid, err := scenario.BuildGrid()
			if err != nil {
				log.Fatalf("building grid: %v", err)
			}

			combo := cfg
			combo.Algorithm = a
			combo.Strategy = st

			fmt.Printf("  %-8s + %-12s: %s\n", a, st, run(grid, combo))
		}
	}
}

func run(grid *core.Grid, cfg core.Config) string {
	scheduler := sim.NewScheduler(grid, cfg)

	start := time.Now()
	if !scheduler.Start() {
		return "failed to start"
	}
	plan := scheduler.Plan()
	planned := len(plan.Paths)
	unreachable := 0
	for _, path := range plan.Paths {
		if path == nil {
			unreachable++
		}
	}
	conflicts := algo.CountConflicts(plan.Paths)

	// Generous tick bound: every agent could wait for every other at every
	// step, gated by the step rate.
	maxTicks := cfg.StepRate * plan.MaxPathLen() * (len(grid.Agents) + 1) * 4
	steps := scheduler.RunToCompletion(maxTicks)
	elapsed := time.Since(start)

	status := "finished"
	if scheduler.State() != sim.StateFinished {
		status = "stalled"
	}

	return fmt.Sprintf("%s in %d steps (paths=%d unreachable=%d residual_conflicts=%d total_len=%d) in %v",
		status, steps, planned, unreachable, conflicts, plan.TotalPathLen(), elapsed)
}
