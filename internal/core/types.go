// Package core defines domain models for the programmable-matter grid engine.
package core

// Cell is the content of a single grid position.
type Cell int

const (
	Empty Cell = iota
	AgentCell
	TargetCell
	WallCell
)

func (c Cell) String() string {
	return [...]string{"Empty", "Agent", "Target", "Wall"}[c]
}

// Topology selects the neighbor-adjacency rule.
type Topology int

const (
	VonNeumann Topology = iota // 4-connected: up, down, left, right
	Moore                      // 8-connected: Von Neumann + diagonals
)

func (t Topology) String() string {
	return [...]string{"VonNeumann", "Moore"}[t]
}

// Algorithm selects the pathfinding procedure.
type Algorithm int

const (
	BFS Algorithm = iota
	AStar
	Greedy
)

func (a Algorithm) String() string {
	return [...]string{"BFS", "AStar", "Greedy"}[a]
}

// Strategy selects the agent-target assignment procedure.
type Strategy int

const (
	Hungarian Strategy = iota
	GreedyMatch
	Auction
)

func (s Strategy) String() string {
	return [...]string{"Hungarian", "GreedyMatch", "Auction"}[s]
}

// Movement selects the stepping discipline.
type Movement int

const (
	Sequential Movement = iota // one agent per logical step
	Parallel                   // all agents per logical step
	Async                      // agent i advances every i+1 logical steps
)

func (m Movement) String() string {
	return [...]string{"Sequential", "Parallel", "Async"}[m]
}

// Decision selects where assignment decisions are made.
type Decision int

const (
	// Centralized runs the configured global assignment strategy.
	Centralized Decision = iota
	// Distributed lets each agent claim its nearest unclaimed target in
	// index order, ignoring the global strategy.
	Distributed
)

func (d Decision) String() string {
	return [...]string{"Centralized", "Distributed"}[d]
}

// Config collects every mode selection the engine consumes. The caller owns
// it; nothing in the engine reads ambient globals.
type Config struct {
	Algorithm Algorithm
	Strategy  Strategy
	Movement  Movement
	Decision  Decision
	StepRate  int // ticks per logical step, clamped to [MinStepRate, MaxStepRate]
}

// Step-rate bounds.
const (
	MinStepRate = 1
	MaxStepRate = 10
)

// DefaultConfig returns the engine's default mode selections.
func DefaultConfig() Config {
	return Config{
		Algorithm: AStar,
		Strategy:  Hungarian,
		Movement:  Sequential,
		Decision:  Centralized,
		StepRate:  5,
	}
}

// ClampStepRate bounds a step rate to the valid range.
func ClampStepRate(rate int) int {
	if rate < MinStepRate {
		return MinStepRate
	}
	if rate > MaxStepRate {
		return MaxStepRate
	}
	return rate
}
