package algo

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/elektrokombinacija/progmat/internal/core"
)

// auctionEpsilon is the fixed price increment of the auction strategy. The
// classic bound: total cost is within epsilon times the number of rounds of
// the optimum.
const auctionEpsilon = 0.01

// Assign runs the selected strategy over the agent and target lists.
// Returns an empty assignment when either list is empty.
func Assign(strategy core.Strategy, agents, targets []core.Position) core.Assignment {
	if len(agents) == 0 || len(targets) == 0 {
		return core.Assignment{}
	}

	switch strategy {
	case core.GreedyMatch:
		return greedyAssign(agents, targets)
	case core.Auction:
		return auctionAssign(agents, targets)
	default:
		return hungarianAssign(agents, targets)
	}
}

// costMatrix builds the n_agents x n_targets Manhattan distance matrix.
func costMatrix(agents, targets []core.Position) *mat.Dense {
	m := mat.NewDense(len(agents), len(targets), nil)
	for i, agent := range agents {
		for j, target := range targets {
			m.Set(i, j, float64(core.ManhattanDistance(agent, target)))
		}
	}
	return m
}

// hungarianAssign is a simplified minimum-cost matcher: reduce rows and
// columns by their minima, greedily cover zeros (row or column with the
// most uncovered zeros first), then extract one assignment per uncovered
// zero column in row order. Approximate, not a certified optimal matching.
func hungarianAssign(agents, targets []core.Position) core.Assignment {
	n, m := len(agents), len(targets)
	cost := costMatrix(agents, targets)

	// Subtract row minima, then column minima.
	for i := 0; i < n; i++ {
		row := cost.RawRowView(i)
		floats.AddConst(-floats.Min(row), row)
	}
	for j := 0; j < m; j++ {
		col := mat.Col(nil, j, cost)
		minVal := floats.Min(col)
		for i := 0; i < n; i++ {
			cost.Set(i, j, cost.At(i, j)-minVal)
		}
	}

	// Greedy line cover over uncovered zeros.
	rowCovered := make([]bool, n)
	colCovered := make([]bool, m)
	want := min(n, m)

	for lines := 0; lines < want; lines++ {
		rowZeros := make([]int, n)
		colZeros := make([]int, m)
		found := false
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				if cost.At(i, j) == 0 && !rowCovered[i] && !colCovered[j] {
					rowZeros[i]++
					colZeros[j]++
					found = true
				}
			}
		}
		if !found {
			break
		}

		bestRow := argmax(rowZeros)
		bestCol := argmax(colZeros)
		if rowZeros[bestRow] >= colZeros[bestCol] {
			rowCovered[bestRow] = true
		} else {
			colCovered[bestCol] = true
		}
	}

	// One assignment per uncovered zero column, in row order.
	assignment := newUnassigned(n)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if cost.At(i, j) == 0 && !colCovered[j] {
				assignment[i] = j
				colCovered[j] = true
				break
			}
		}
	}

	return assignment
}

func argmax(values []int) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func newUnassigned(n int) core.Assignment {
	assignment := make(core.Assignment, n)
	for i := range assignment {
		assignment[i] = core.Unassigned
	}
	return assignment
}

// greedyAssign processes agents in index order; each takes the nearest
// unused target, ties broken by target index ascending.
func greedyAssign(agents, targets []core.Position) core.Assignment {
	assignment := newUnassigned(len(agents))
	used := make(map[int]bool)

	for i, agent := range agents {
		type candidate struct {
			dist, target int
		}
		var candidates []candidate
		for j, target := range targets {
			if !used[j] {
				candidates = append(candidates, candidate{core.ManhattanDistance(agent, target), j})
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.Slice(candidates, func(a, b int) bool {
			if candidates[a].dist != candidates[b].dist {
				return candidates[a].dist < candidates[b].dist
			}
			return candidates[a].target < candidates[b].target
		})
		assignment[i] = candidates[0].target
		used[candidates[0].target] = true
	}

	return assignment
}

// auctionAssign maintains a price per target. Each round an unassigned
// agent bids for the target with the highest net utility (negative distance
// minus price) and raises its price by auctionEpsilon. Terminates at
// min(n, m) assignments or when no biddable target remains.
func auctionAssign(agents, targets []core.Position) core.Assignment {
	n, m := len(agents), len(targets)
	assignment := newUnassigned(n)
	prices := make([]float64, m)
	assigned := make(map[int]bool)

	for len(assigned) < min(n, m) {
		unassigned := -1
		for i := 0; i < n; i++ {
			if assignment[i] == core.Unassigned {
				unassigned = i
				break
			}
		}
		if unassigned == -1 {
			break
		}

		bestTarget := -1
		bestUtility := 0.0
		for j := 0; j < m; j++ {
			if assigned[j] {
				continue
			}
			utility := -float64(core.ManhattanDistance(agents[unassigned], targets[j])) - prices[j]
			if bestTarget == -1 || utility > bestUtility {
				bestTarget = j
				bestUtility = utility
			}
		}
		if bestTarget == -1 {
			break
		}

		assignment[unassigned] = bestTarget
		assigned[bestTarget] = true
		prices[bestTarget] += auctionEpsilon
	}

	return assignment
}

// AssignmentCost sums Manhattan distances over assigned pairs.
func AssignmentCost(assignment core.Assignment, agents, targets []core.Position) int {
	total := 0
	for i, j := range assignment {
		if i < len(agents) && j >= 0 && j < len(targets) {
			total += core.ManhattanDistance(agents[i], targets[j])
		}
	}
	return total
}

// DistributedAssign is the distributed decision mode: each agent, in index
// order, locally claims its nearest unclaimed target. Equivalent in shape
// to prioritized planning, where an agent only sees earlier agents'
// decisions.
func DistributedAssign(agents, targets []core.Position) core.Assignment {
	if len(agents) == 0 || len(targets) == 0 {
		return core.Assignment{}
	}
	return greedyAssign(agents, targets)
}
