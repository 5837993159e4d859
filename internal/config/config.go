// Package config loads simulation scenarios from YAML.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/progmat/internal/core"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Scenario describes a full simulation setup: grid contents plus every mode
// selection the engine takes.
type Scenario struct {
	Name string     `yaml:"name"`
	Grid GridConfig `yaml:"grid"`
	Sim  SimConfig  `yaml:"sim"`
}

// GridConfig holds grid dimensions and contents.
type GridConfig struct {
	Rows     int        `yaml:"rows"`
	Cols     int        `yaml:"cols"`
	Topology string     `yaml:"topology"` // von_neumann | moore
	Agents   []Pos      `yaml:"agents"`
	Targets  []Pos      `yaml:"targets"`
	Walls    []Pos      `yaml:"walls"`
	Shapes   []ShapeRef `yaml:"shapes"`
}

// Pos is a YAML-friendly grid position.
type Pos struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// ShapeRef places a named template. An absent origin centers the shape.
type ShapeRef struct {
	Name   string `yaml:"name"` // Square | Diamond | Triangle | Line
	Origin *Pos   `yaml:"origin,omitempty"`
	Cell   string `yaml:"cell"` // target | wall | agent
}

// SimConfig holds mode selections.
type SimConfig struct {
	Algorithm string `yaml:"algorithm"` // bfs | astar | greedy
	Strategy  string `yaml:"strategy"`  // hungarian | greedy | auction
	Movement  string `yaml:"movement"`  // sequential | parallel | async
	Decision  string `yaml:"decision"`  // centralized | distributed
	StepRate  int    `yaml:"step_rate"` // ticks per logical step, 1..10
}

// Default returns the embedded default scenario.
func Default() *Scenario {
	s, err := parse(defaultsYAML)
	if err != nil {
		// The embedded defaults are compiled in; failing to parse them is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("config: bad embedded defaults: %v", err))
	}
	return s
}

// Load reads a scenario file, layering it over the embedded defaults.
func Load(path string) (*Scenario, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return s, nil
}

func parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the scenario as YAML.
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// BuildGrid materializes the scenario's grid.
func (s *Scenario) BuildGrid() (*core.Grid, error) {
	grid := core.NewGrid(s.Grid.Rows, s.Grid.Cols)

	topology, err := ParseTopology(s.Grid.Topology)
	if err != nil {
		return nil, err
	}
	grid.Topology = topology

	for _, p := range s.Grid.Walls {
		grid.SetCell(core.Position{Row: p.Row, Col: p.Col}, core.WallCell)
	}
	for _, p := range s.Grid.Targets {
		grid.SetCell(core.Position{Row: p.Row, Col: p.Col}, core.TargetCell)
	}
	for _, p := range s.Grid.Agents {
		grid.SetCell(core.Position{Row: p.Row, Col: p.Col}, core.AgentCell)
	}

	for _, ref := range s.Grid.Shapes {
		template, ok := core.Shapes[ref.Name]
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", ref.Name)
		}
		cell, err := ParseCell(ref.Cell)
		if err != nil {
			return nil, err
		}
		origin := grid.CenterOrigin(template)
		if ref.Origin != nil {
			origin = core.Position{Row: ref.Origin.Row, Col: ref.Origin.Col}
		}
		grid.PlaceShape(template, origin, cell)
	}

	return grid, nil
}

// EngineConfig converts the mode selections to a core.Config.
func (s *Scenario) EngineConfig() (core.Config, error) {
	cfg := core.DefaultConfig()
	var err error

	if cfg.Algorithm, err = ParseAlgorithm(s.Sim.Algorithm); err != nil {
		return cfg, err
	}
	if cfg.Strategy, err = ParseStrategy(s.Sim.Strategy); err != nil {
		return cfg, err
	}
	if cfg.Movement, err = ParseMovement(s.Sim.Movement); err != nil {
		return cfg, err
	}
	if cfg.Decision, err = ParseDecision(s.Sim.Decision); err != nil {
		return cfg, err
	}
	cfg.StepRate = core.ClampStepRate(s.Sim.StepRate)
	return cfg, nil
}

// ParseTopology maps a YAML topology name to its enum.
func ParseTopology(name string) (core.Topology, error) {
	switch name {
	case "", "von_neumann":
		return core.VonNeumann, nil
	case "moore":
		return core.Moore, nil
	default:
		return core.VonNeumann, fmt.Errorf("unknown topology %q", name)
	}
}

// ParseAlgorithm maps a YAML algorithm name to its enum.
func ParseAlgorithm(name string) (core.Algorithm, error) {
	switch name {
	case "bfs":
		return core.BFS, nil
	case "", "astar":
		return core.AStar, nil
	case "greedy":
		return core.Greedy, nil
	default:
		return core.AStar, fmt.Errorf("unknown algorithm %q", name)
	}
}

// ParseStrategy maps a YAML strategy name to its enum.
func ParseStrategy(name string) (core.Strategy, error) {
	switch name {
	case "", "hungarian":
		return core.Hungarian, nil
	case "greedy":
		return core.GreedyMatch, nil
	case "auction":
		return core.Auction, nil
	default:
		return core.Hungarian, fmt.Errorf("unknown strategy %q", name)
	}
}

// ParseCell maps a YAML shape cell name to its enum.
func ParseCell(name string) (core.Cell, error) {
	switch name {
	case "", "target":
		return core.TargetCell, nil
	case "wall":
		return core.WallCell, nil
	case "agent":
		return core.AgentCell, nil
	default:
		return core.TargetCell, fmt.Errorf("unknown cell type %q", name)
	}
}

// ParseMovement maps a YAML movement name to its enum.
func ParseMovement(name string) (core.Movement, error) {
	switch name {
	case "", "sequential":
		return core.Sequential, nil
	case "parallel":
		return core.Parallel, nil
	case "async":
		return core.Async, nil
	default:
		return core.Sequential, fmt.Errorf("unknown movement %q", name)
	}
}

// ParseDecision maps a YAML decision name to its enum.
func ParseDecision(name string) (core.Decision, error) {
	switch name {
	case "", "centralized":
		return core.Centralized, nil
	case "distributed":
		return core.Distributed, nil
	default:
		return core.Centralized, fmt.Errorf("unknown decision mode %q", name)
	}
}
