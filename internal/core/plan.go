package core

// Unassigned marks an agent with no target.
const Unassigned = -1

// Assignment maps agent index to target index. Length equals the agent
// count; entries are Unassigned where agents outnumber targets or no match
// exists. No target index repeats.
type Assignment []int

// Assigned reports whether agent idx has a target.
func (a Assignment) Assigned(idx int) bool {
	return idx >= 0 && idx < len(a) && a[idx] != Unassigned
}

// Path is an ordered sequence of positions. Index 0 is the agent's position
// at planning time, the last element the assigned target, both inclusive.
// A nil path means no route exists.
type Path []Position

// At returns the position at tick t, clamped to the last position once the
// path is exhausted (agents wait at their target after arrival). The zero
// Position for an empty path.
func (p Path) At(t int) Position {
	if len(p) == 0 {
		return Position{}
	}
	if t >= len(p) {
		t = len(p) - 1
	}
	return p[t]
}

// Plan is the fixed (assignment, per-agent path) pair computed once at
// simulation start. Agents without an assignment have no path entry.
type Plan struct {
	Assignment Assignment
	Paths      map[int]Path
}

// NewPlan creates an empty plan.
func NewPlan() *Plan {
	return &Plan{Paths: make(map[int]Path)}
}

// MaxPathLen returns the longest path length in the plan.
func (p *Plan) MaxPathLen() int {
	maxLen := 0
	for _, path := range p.Paths {
		if len(path) > maxLen {
			maxLen = len(path)
		}
	}
	return maxLen
}

// TotalPathLen returns the summed length of all paths.
func (p *Plan) TotalPathLen() int {
	total := 0
	for _, path := range p.Paths {
		total += len(path)
	}
	return total
}
