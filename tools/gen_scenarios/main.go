// Command gen_scenarios generates deterministic random scenario files for
// benchmarking.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/progmat/internal/config"
	"github.com/elektrokombinacija/progmat/internal/core"
)

func main() {
	seed := flag.Int64("seed", 42, "random seed")
	count := flag.Int("count", 10, "number of scenarios")
	agents := flag.Int("agents", 4, "agents (and targets) per scenario")
	wallDensity := flag.Float64("walls", 0.15, "fraction of cells that are walls")
	outDir := flag.String("out", "scenarios", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "creating output directory: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	for i := 0; i < *count; i++ {
		scenario := generate(rng, i, *agents, *wallDensity)
		path := filepath.Join(*outDir, fmt.Sprintf("%s.yaml", scenario.Name))
		if err := scenario.Save(path); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%dx%d, %d agents)\n",
			path, scenario.Grid.Rows, scenario.Grid.Cols, len(scenario.Grid.Agents))
	}
}

// generate builds one random scenario. Agents, targets, and walls land on
// distinct cells so the grid invariant holds by construction.
func generate(rng *rand.Rand, index, agents int, wallDensity float64) *config.Scenario {
	rows := core.MinSize + rng.Intn(core.MaxSize-core.MinSize+1)
	cols := core.MinSize + rng.Intn(core.MaxSize-core.MinSize+1)

	// Agents and targets each take a distinct cell; clamp so pick always has
	// a free cell left and the retry loop terminates.
	if 2*agents > rows*cols {
		agents = rows * cols / 2
	}

	taken := make(map[config.Pos]bool)
	pick := func() config.Pos {
		for {
			p := config.Pos{Row: rng.Intn(rows), Col: rng.Intn(cols)}
			if !taken[p] {
				taken[p] = true
				return p
			}
		}
	}

	scenario := config.Default()
	scenario.Name = fmt.Sprintf("random_%03d", index)
	scenario.Grid = config.GridConfig{Rows: rows, Cols: cols, Topology: "von_neumann"}
	if rng.Intn(2) == 1 {
		scenario.Grid.Topology = "moore"
	}

	for i := 0; i < agents; i++ {
		scenario.Grid.Agents = append(scenario.Grid.Agents, pick())
	}
	for i := 0; i < agents; i++ {
		scenario.Grid.Targets = append(scenario.Grid.Targets, pick())
	}

	walls := int(float64(rows*cols) * wallDensity)
	for i := 0; i < walls && len(taken) < rows*cols; i++ {
		scenario.Grid.Walls = append(scenario.Grid.Walls, pick())
	}

	return scenario
}
