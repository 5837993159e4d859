package algo

import (
	"sort"

	"github.com/elektrokombinacija/progmat/internal/core"
)

// maxResolvePasses caps the fixpoint iteration of ResolveDeadlocks. Delay
// insertion cannot untangle cyclic wait conditions, so the resolver gives
// up rather than loop forever on them.
const maxResolvePasses = 64

// insertionBudget bounds total wait insertions. A resolvable conflict set
// needs at most a handful of waits per agent pair; a conflict that keeps
// consuming budget (an agent routed through another agent's parking cell)
// is not resolvable by delay at all.
func insertionBudget(agents int, maxLen int) int {
	return agents * agents * (maxLen + 1) * 4
}

// ResolveDeadlocks splices wait steps (repeated positions) into paths so
// that no two distinct agents occupy the same cell at the same tick.
//
// Tie-break policy: agents are visited in index order within each tick, so
// the lower agent index wins the cell and the higher index waits. The delay
// duplicates the previous tick's position at the conflict tick, shifting
// the remainder one tick later. Exhausted paths clamp to their last
// position (agents wait at their target), and a parked agent cannot be
// delayed; conflicts against it fall to the moving agent.
//
// Sweeps repeat until one inserts nothing, capped at maxResolvePasses.
func ResolveDeadlocks(paths map[int]core.Path) map[int]core.Path {
	if len(paths) == 0 {
		return paths
	}

	agents := make([]int, 0, len(paths))
	for idx := range paths {
		if len(paths[idx]) > 0 {
			agents = append(agents, idx)
		}
	}
	sort.Ints(agents)

	maxLen := 0
	for _, idx := range agents {
		if len(paths[idx]) > maxLen {
			maxLen = len(paths[idx])
		}
	}
	budget := insertionBudget(len(agents), maxLen)

	for pass := 0; pass < maxResolvePasses && budget > 0; pass++ {
		inserted := resolvePass(paths, agents, &budget)
		if inserted == 0 {
			return paths
		}
	}
	return paths
}

// resolvePass sweeps every tick once, returning the number of waits it
// inserted. Insertions stop once the budget is spent.
func resolvePass(paths map[int]core.Path, agents []int, budget *int) int {
	inserted := 0

	maxLen := 0
	for _, idx := range agents {
		if len(paths[idx]) > maxLen {
			maxLen = len(paths[idx])
		}
	}

	for t := 0; t < maxLen && *budget > 0; t++ {
		occupied := make(map[core.Position]int)
		for _, idx := range agents {
			path := paths[idx]
			pos := path.At(t)

			holder, taken := occupied[pos]
			if !taken {
				occupied[pos] = idx
				continue
			}
			if holder == idx {
				continue
			}

			// The later-visited agent waits, if it is still moving.
			if t > 0 && t < len(path) {
				paths[idx] = insertWait(path, t)
				inserted++
				*budget--
				if len(paths[idx]) > maxLen {
					maxLen = len(paths[idx])
				}
				if *budget == 0 {
					return inserted
				}
			}
		}
	}

	return inserted
}

// insertWait duplicates the position at t-1 into index t.
func insertWait(path core.Path, t int) core.Path {
	out := make(core.Path, 0, len(path)+1)
	out = append(out, path[:t]...)
	out = append(out, path[t-1])
	out = append(out, path[t:]...)
	return out
}

// CountConflicts reports how many (tick, cell) collisions remain across the
// paths, clamping exhausted paths to their last position. Zero means the
// resolver's post-condition holds.
func CountConflicts(paths map[int]core.Path) int {
	agents := make([]int, 0, len(paths))
	maxLen := 0
	for idx, path := range paths {
		if len(path) == 0 {
			continue
		}
		agents = append(agents, idx)
		if len(path) > maxLen {
			maxLen = len(path)
		}
	}
	sort.Ints(agents)

	conflicts := 0
	for t := 0; t < maxLen; t++ {
		occupied := make(map[core.Position]int)
		for _, idx := range agents {
			pos := paths[idx].At(t)
			if _, taken := occupied[pos]; taken {
				conflicts++
				continue
			}
			occupied[pos] = idx
		}
	}
	return conflicts
}
