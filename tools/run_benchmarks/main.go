// Command run_benchmarks runs every planner and strategy combination over a
// directory of scenario files and writes CSV and JSON results.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/elektrokombinacija/progmat/internal/algo"
	"github.com/elektrokombinacija/progmat/internal/config"
	"github.com/elektrokombinacija/progmat/internal/core"
	"github.com/elektrokombinacija/progmat/internal/sim"
)

// BenchmarkResult is one row of the results table.
type BenchmarkResult struct {
	Scenario          string  `csv:"scenario" json:"scenario"`
	GridSize          string  `csv:"grid_size" json:"grid_size"`
	Agents            int     `csv:"agents" json:"agents"`
	Targets           int     `csv:"targets" json:"targets"`
	Walls             int     `csv:"walls" json:"walls"`
	Algorithm         string  `csv:"algorithm" json:"algorithm"`
	Strategy          string  `csv:"strategy" json:"strategy"`
	Movement          string  `csv:"movement" json:"movement"`
	PlannedPaths      int     `csv:"planned_paths" json:"planned_paths"`
	Unreachable       int     `csv:"unreachable" json:"unreachable"`
	TotalPathLen      int     `csv:"total_path_len" json:"total_path_len"`
	MaxPathLen        int     `csv:"max_path_len" json:"max_path_len"`
	AssignmentCost    int     `csv:"assignment_cost" json:"assignment_cost"`
	ResidualConflicts int     `csv:"residual_conflicts" json:"residual_conflicts"`
	Steps             int     `csv:"steps" json:"steps"`
	Finished          bool    `csv:"finished" json:"finished"`
	PlanTimeMs        float64 `csv:"plan_time_ms" json:"plan_time_ms"`
	RunTimeMs         float64 `csv:"run_time_ms" json:"run_time_ms"`
}

func main() {
	scenarioDir := flag.String("scenarios", "scenarios", "directory of scenario YAML files")
	outDir := flag.String("out", "results", "output directory")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*scenarioDir, "*.yaml"))
	if err != nil || len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no scenarios found in %s\n", *scenarioDir)
		os.Exit(1)
	}
	sort.Strings(files)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "creating output directory: %v\n", err)
		os.Exit(1)
	}

	var results []*BenchmarkResult
	for _, file := range files {
		scenario, err := config.Load(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", file, err)
			continue
		}
		results = append(results, benchmarkScenario(scenario)...)
	}

	if err := writeResults(results, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d results to %s\n", len(results), *outDir)
}

func benchmarkScenario(scenario *config.Scenario) []*BenchmarkResult {
	algorithms := []core.Algorithm{core.BFS, core.AStar, core.Greedy}
	strategies := []core.Strategy{core.Hungarian, core.GreedyMatch, core.Auction}

	cfg, err := scenario.EngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "skipping %s: %v\n", scenario.Name, err)
		return nil
	}
	cfg.Movement = core.Parallel // fastest discipline for throughput runs
	cfg.StepRate = core.MinStepRate

	var results []*BenchmarkResult
	for _, a := range algorithms {
		for _, st := range strategies {
			combo := cfg
			combo.Algorithm = a
			combo.Strategy = st

			result, err := runCombo(scenario, combo)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %s/%s: %v\n", scenario.Name, a, st, err)
				continue
			}
			results = append(results, result)
		}
	}
	return results
}

func runCombo(scenario *config.Scenario, cfg core.Config) (*BenchmarkResult, error) {
	grid, err := scenario.BuildGrid()
	if err != nil {
		return nil, err
	}

	scheduler := sim.NewScheduler(grid, cfg)
	startAgents := append([]core.Position(nil), grid.Agents...)
	startTargets := append([]core.Position(nil), grid.Targets...)

	planStart := time.Now()
	scheduler.Start()
	planTime := time.Since(planStart)

	plan := scheduler.Plan()
	unreachable := 0
	for _, path := range plan.Paths {
		if path == nil {
			unreachable++
		}
	}

	runStart := time.Now()
	maxTicks := cfg.StepRate * (plan.MaxPathLen() + 1) * (len(grid.Agents) + 1) * 4
	steps := scheduler.RunToCompletion(maxTicks)
	runTime := time.Since(runStart)

	return &BenchmarkResult{
		Scenario:          scenario.Name,
		GridSize:          fmt.Sprintf("%dx%d", grid.Rows, grid.Cols),
		Agents:            len(startAgents),
		Targets:           len(startTargets),
		Walls:             len(grid.Walls),
		Algorithm:         cfg.Algorithm.String(),
		Strategy:          cfg.Strategy.String(),
		Movement:          cfg.Movement.String(),
		PlannedPaths:      len(plan.Paths),
		Unreachable:       unreachable,
		TotalPathLen:      plan.TotalPathLen(),
		MaxPathLen:        plan.MaxPathLen(),
		AssignmentCost:    algo.AssignmentCost(plan.Assignment, startAgents, startTargets),
		ResidualConflicts: algo.CountConflicts(plan.Paths),
		Steps:             steps,
		Finished:          scheduler.State() == sim.StateFinished,
		PlanTimeMs:        float64(planTime.Microseconds()) / 1000.0,
		RunTimeMs:         float64(runTime.Microseconds()) / 1000.0,
	}, nil
}

func writeResults(results []*BenchmarkResult, outDir string) error {
	csvFile, err := os.Create(filepath.Join(outDir, "benchmarks.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()
	if err := gocsv.MarshalFile(&results, csvFile); err != nil {
		return err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "benchmarks.json"), data, 0644)
}
